package shader

import (
	"github.com/gogpu/bitmap"
	"github.com/gogpu/bitmap/colorspace"
)

// LinearGradient is a color transition along the line between two points.
//
// Example:
//
//	g := shader.NewLinearGradient(0, 0, 100, 0).
//	    AddColorStop(0, colorspace.ValueOf(0xffff0000)).
//	    AddColorStop(1, colorspace.ValueOf(0xff0000ff))
//	err := shader.Fill(b, g)
type LinearGradient struct {
	gradient
	X0, Y0, X1, Y1 float64
}

// NewLinearGradient creates a gradient from (x0, y0) to (x1, y1).
func NewLinearGradient(x0, y0, x1, y1 float64) *LinearGradient {
	return &LinearGradient{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// AddColorStop adds a color stop and returns g for chaining.
func (g *LinearGradient) AddColorStop(offset float64, c colorspace.Color) *LinearGradient {
	g.addStop(offset, c)
	return g
}

// SetExtend sets the extend mode and returns g for chaining.
func (g *LinearGradient) SetExtend(mode ExtendMode) *LinearGradient {
	g.Extend = mode
	return g
}

// SetSpace sets the interpolation space and returns g for chaining.
func (g *LinearGradient) SetSpace(cs *colorspace.ColorSpace) *LinearGradient {
	g.Space = cs
	return g
}

// SetMatrix sets the local matrix and returns g for chaining.
func (g *LinearGradient) SetMatrix(m bitmap.Matrix) *LinearGradient {
	g.setMatrix(m)
	return g
}

// ColorAt returns the color at (x, y).
func (g *LinearGradient) ColorAt(x, y float64) colorspace.Color {
	x, y, ok := g.toLocal(x, y)
	if !ok {
		return g.transparent()
	}
	dx := g.X1 - g.X0
	dy := g.Y1 - g.Y0
	lengthSq := dx*dx + dy*dy
	if lengthSq == 0 {
		return g.firstStop()
	}

	// projection of the point onto the gradient line
	t := ((x-g.X0)*dx + (y-g.Y0)*dy) / lengthSq
	return g.colorAt(t)
}
