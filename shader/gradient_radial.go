package shader

import (
	"math"

	"github.com/gogpu/bitmap"
	"github.com/gogpu/bitmap/colorspace"
)

// RadialGradient radiates colors from a focal point inside a circle.
// t is 0 at StartRadius and 1 at EndRadius. With the focus away from the
// center, t is the fraction of the way from the focus to the end circle.
type RadialGradient struct {
	gradient
	CX, CY      float64
	FX, FY      float64
	StartRadius float64
	EndRadius   float64
}

// NewRadialGradient creates a gradient around (cx, cy) with the focus at
// the center.
func NewRadialGradient(cx, cy, startRadius, endRadius float64) *RadialGradient {
	return &RadialGradient{
		CX: cx, CY: cy,
		FX: cx, FY: cy,
		StartRadius: startRadius,
		EndRadius:   endRadius,
	}
}

// SetFocus moves the focal point and returns g for chaining.
func (g *RadialGradient) SetFocus(fx, fy float64) *RadialGradient {
	g.FX, g.FY = fx, fy
	return g
}

// AddColorStop adds a color stop and returns g for chaining.
func (g *RadialGradient) AddColorStop(offset float64, c colorspace.Color) *RadialGradient {
	g.addStop(offset, c)
	return g
}

// SetExtend sets the extend mode and returns g for chaining.
func (g *RadialGradient) SetExtend(mode ExtendMode) *RadialGradient {
	g.Extend = mode
	return g
}

// SetSpace sets the interpolation space and returns g for chaining.
func (g *RadialGradient) SetSpace(cs *colorspace.ColorSpace) *RadialGradient {
	g.Space = cs
	return g
}

// SetMatrix sets the local matrix and returns g for chaining.
func (g *RadialGradient) SetMatrix(m bitmap.Matrix) *RadialGradient {
	g.setMatrix(m)
	return g
}

// ColorAt returns the color at (x, y).
func (g *RadialGradient) ColorAt(x, y float64) colorspace.Color {
	x, y, ok := g.toLocal(x, y)
	if !ok {
		return g.transparent()
	}
	if g.EndRadius == g.StartRadius {
		return g.firstStop()
	}
	if g.FX == g.CX && g.FY == g.CY {
		d := math.Hypot(x-g.CX, y-g.CY)
		return g.colorAt((d - g.StartRadius) / (g.EndRadius - g.StartRadius))
	}
	return g.colorAt(g.focalT(x, y))
}

// focalT intersects the ray from the focus through (x, y) with the end
// circle and returns the distance to the point over the distance to the
// intersection.
func (g *RadialGradient) focalT(x, y float64) float64 {
	dx, dy := x-g.FX, y-g.FY
	fx, fy := g.CX-g.FX, g.CY-g.FY

	// |s*(dx,dy) - (fx,fy)|^2 = r^2
	a := dx*dx + dy*dy
	if a == 0 {
		return 0
	}
	b := -2 * (dx*fx + dy*fy)
	c := fx*fx + fy*fy - g.EndRadius*g.EndRadius
	disc := b*b - 4*a*c
	if disc < 0 {
		// the focus is outside the circle and the ray misses it
		return math.NaN()
	}
	root := math.Sqrt(disc)
	s1 := (-b - root) / (2 * a)
	s2 := (-b + root) / (2 * a)
	s := max(s1, s2)
	if s <= 0 {
		return math.NaN()
	}
	return 1 / s
}
