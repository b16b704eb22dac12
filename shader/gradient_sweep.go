package shader

import (
	"math"

	"github.com/gogpu/bitmap"
	"github.com/gogpu/bitmap/colorspace"
)

// SweepGradient is an angular (conic) transition around a center. Angles
// are in radians, measured from the positive x axis towards positive y.
type SweepGradient struct {
	gradient
	CX, CY     float64
	StartAngle float64
	EndAngle   float64
}

// NewSweepGradient creates a full-turn sweep around (cx, cy) starting at
// startAngle.
func NewSweepGradient(cx, cy, startAngle float64) *SweepGradient {
	return &SweepGradient{
		CX: cx, CY: cy,
		StartAngle: startAngle,
		EndAngle:   startAngle + 2*math.Pi,
	}
}

// SetEndAngle sets the end angle and returns g for chaining.
func (g *SweepGradient) SetEndAngle(endAngle float64) *SweepGradient {
	g.EndAngle = endAngle
	return g
}

// AddColorStop adds a color stop and returns g for chaining.
func (g *SweepGradient) AddColorStop(offset float64, c colorspace.Color) *SweepGradient {
	g.addStop(offset, c)
	return g
}

// SetExtend sets the extend mode and returns g for chaining.
func (g *SweepGradient) SetExtend(mode ExtendMode) *SweepGradient {
	g.Extend = mode
	return g
}

// SetSpace sets the interpolation space and returns g for chaining.
func (g *SweepGradient) SetSpace(cs *colorspace.ColorSpace) *SweepGradient {
	g.Space = cs
	return g
}

// SetMatrix sets the local matrix and returns g for chaining.
func (g *SweepGradient) SetMatrix(m bitmap.Matrix) *SweepGradient {
	g.setMatrix(m)
	return g
}

// ColorAt returns the color at (x, y). The center itself takes the first
// stop.
func (g *SweepGradient) ColorAt(x, y float64) colorspace.Color {
	x, y, ok := g.toLocal(x, y)
	if !ok {
		return g.transparent()
	}
	dx, dy := x-g.CX, y-g.CY
	if dx == 0 && dy == 0 {
		return g.firstStop()
	}
	sweep := g.EndAngle - g.StartAngle
	if sweep == 0 {
		return g.firstStop()
	}
	rel := normalizeAngle(math.Atan2(dy, dx)-g.StartAngle, sweep)
	return g.colorAt(rel / sweep)
}

// normalizeAngle wraps angle into [0, 2π) for a positive sweep and
// (-2π, 0] for a negative one.
func normalizeAngle(angle, sweep float64) float64 {
	const twoPi = 2 * math.Pi
	angle = math.Mod(angle, twoPi)
	if sweep > 0 && angle < 0 {
		angle += twoPi
	}
	if sweep < 0 && angle > 0 {
		angle -= twoPi
	}
	return angle
}
