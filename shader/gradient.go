// Package shader evaluates color gradients and paints them into bitmaps.
//
// Stops may be given in any color space. Colors between stops are
// interpolated in the gradient's interpolation space, linear extended sRGB
// unless set otherwise, and results are written through the bitmap's color
// accessors so they land in the bitmap's own space.
package shader

import (
	"math"
	"sort"

	"github.com/gogpu/bitmap"
	"github.com/gogpu/bitmap/colorspace"
)

// Shader returns a color for every point of the plane.
type Shader interface {
	ColorAt(x, y float64) colorspace.Color
}

// ExtendMode defines how gradients extend beyond their defined bounds.
type ExtendMode int

const (
	// Pad extends edge colors beyond bounds.
	Pad ExtendMode = iota
	// Repeat repeats the gradient pattern.
	Repeat
	// Reflect mirrors the gradient pattern.
	Reflect
)

func (m ExtendMode) String() string {
	switch m {
	case Pad:
		return "pad"
	case Repeat:
		return "repeat"
	case Reflect:
		return "reflect"
	default:
		return "unknown"
	}
}

// ColorStop is a color at a position along a gradient.
type ColorStop struct {
	Offset float64 // 0 to 1
	Color  colorspace.Color
}

// DefaultSpace returns the interpolation space used when none is set.
func DefaultSpace() *colorspace.ColorSpace {
	return colorspace.Get(colorspace.LinearExtendedSRGB)
}

// gradient holds what every gradient kind shares.
type gradient struct {
	Stops  []ColorStop
	Extend ExtendMode
	// Space is the interpolation space. Nil means DefaultSpace.
	Space *colorspace.ColorSpace

	inverse  bitmap.Matrix
	local    bool
	singular bool
}

func (g *gradient) addStop(offset float64, c colorspace.Color) {
	g.Stops = append(g.Stops, ColorStop{Offset: offset, Color: c})
}

// setMatrix sets the local matrix. Points are mapped through its inverse
// before the gradient geometry is applied.
func (g *gradient) setMatrix(m bitmap.Matrix) {
	inv, ok := m.Invert()
	g.inverse, g.local, g.singular = inv, !m.IsIdentity(), !ok
}

func (g *gradient) space() *colorspace.ColorSpace {
	if g.Space == nil {
		return DefaultSpace()
	}
	return g.Space
}

// toLocal maps a device point into gradient space. ok is false when the
// local matrix cannot be inverted.
func (g *gradient) toLocal(x, y float64) (float64, float64, bool) {
	if g.singular {
		return 0, 0, false
	}
	if g.local {
		x, y = g.inverse.TransformPoint(x, y)
	}
	return x, y, true
}

func (g *gradient) transparent() colorspace.Color {
	return colorspace.Color{Space: g.space()}
}

// firstStop returns the stop with the lowest offset, converted.
func (g *gradient) firstStop() colorspace.Color {
	if len(g.Stops) == 0 {
		return g.transparent()
	}
	return sortStops(g.Stops)[0].Color.Convert(g.space())
}

// sortStops returns the stops ordered by offset. Equal offsets keep their
// insertion order so hard edges work.
func sortStops(stops []ColorStop) []ColorStop {
	sorted := make([]ColorStop, len(stops))
	copy(sorted, stops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})
	return sorted
}

// applyExtendMode maps t into [0, 1].
func applyExtendMode(t float64, mode ExtendMode) float64 {
	switch mode {
	case Repeat:
		t -= math.Floor(t)
	case Reflect:
		t = math.Abs(t)
		period := math.Floor(t)
		t -= period
		if int(period)%2 == 1 {
			t = 1 - t
		}
	default:
		t = clamp01(t)
	}
	return t
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// colorAt returns the interpolated color at gradient parameter t.
func (g *gradient) colorAt(t float64) colorspace.Color {
	cs := g.space()
	switch len(g.Stops) {
	case 0:
		return g.transparent()
	case 1:
		return g.Stops[0].Color.Convert(cs)
	}
	if math.IsNaN(t) {
		return g.transparent()
	}

	sorted := sortStops(g.Stops)
	t = applyExtendMode(t, g.Extend)

	idx := sort.Search(len(sorted), func(i int) bool {
		return sorted[i].Offset >= t
	})
	if idx == 0 {
		return sorted[0].Color.Convert(cs)
	}
	if idx >= len(sorted) {
		return sorted[len(sorted)-1].Color.Convert(cs)
	}

	lo, hi := sorted[idx-1], sorted[idx]
	if hi.Offset == lo.Offset {
		return lo.Color.Convert(cs)
	}
	return lerp(lo.Color.Convert(cs), hi.Color.Convert(cs), (t-lo.Offset)/(hi.Offset-lo.Offset))
}

// lerp interpolates two colors of the same space component-wise.
func lerp(a, b colorspace.Color, t float64) colorspace.Color {
	t32 := float32(t)
	return colorspace.Color{
		R:     a.R + t32*(b.R-a.R),
		G:     a.G + t32*(b.G-a.G),
		B:     a.B + t32*(b.B-a.B),
		A:     a.A + t32*(b.A-a.A),
		Space: a.Space,
	}
}
