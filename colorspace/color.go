package colorspace

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/x448/float16"
)

// Color is a color value in a given space. For RGB spaces R, G and B are the
// encoded red, green and blue components; for XYZ and Lab they hold the
// three components of the model in order. A nil Space means sRGB.
type Color struct {
	R, G, B, A float32
	Space      *ColorSpace
}

// ColorSpace returns the space of c.
func (c Color) ColorSpace() *ColorSpace {
	if c.Space == nil {
		return Get(SRGB)
	}
	return c.Space
}

// ValueOf returns the sRGB color of a packed 0xAARRGGBB integer.
func ValueOf(argb uint32) Color {
	return Color{
		R:     float32((argb>>16)&0xff) / 255,
		G:     float32((argb>>8)&0xff) / 255,
		B:     float32(argb&0xff) / 255,
		A:     float32(argb>>24) / 255,
		Space: Get(SRGB),
	}
}

// ARGB packs 8-bit components into 0xAARRGGBB.
func ARGB(a, r, g, b uint8) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// SplitARGB returns the 8-bit components of 0xAARRGGBB.
func SplitARGB(argb uint32) (a, r, g, b uint8) {
	return uint8(argb >> 24), uint8(argb >> 16), uint8(argb >> 8), uint8(argb)
}

func saturate(v float32) float32 {
	return math32.Min(math32.Max(v, 0), 1)
}

func to8(v float32) uint32 {
	return uint32(saturate(v)*255 + 0.5)
}

// ToArgb converts c to sRGB and packs it as 0xAARRGGBB. Components are
// clamped to [0, 1].
func (c Color) ToArgb() uint32 {
	cs := c.ColorSpace()
	if !cs.IsSrgb() {
		c = c.Convert(Get(SRGB))
	}
	return to8(c.A)<<24 | to8(c.R)<<16 | to8(c.G)<<8 | to8(c.B)
}

// Convert returns c in dst using a perceptual connector. Alpha is kept.
func (c Color) Convert(dst *ColorSpace) Color {
	if dst == nil {
		dst = Get(SRGB)
	}
	v := Connect(c.ColorSpace(), dst).Transform([3]float64{float64(c.R), float64(c.G), float64(c.B)})
	return Color{R: float32(v[0]), G: float32(v[1]), B: float32(v[2]), A: c.A, Space: dst}
}

// Luminance returns the relative luminance of an RGB color, computed on
// linear components with the Rec. 709 weights and clamped to [0, 1].
func (c Color) Luminance() (float32, error) {
	cs := c.ColorSpace()
	if cs.model != ModelRGB {
		return 0, fmt.Errorf("colorspace: luminance is only defined for RGB color spaces, not %s: %w",
			cs.model, ErrInvalidArgument)
	}
	t := cs.rgb.transfer
	r := t.Decode(float64(c.R))
	g := t.Decode(float64(c.G))
	b := t.Decode(float64(c.B))
	return saturate(float32(0.2126*r + 0.7152*g + 0.0722*b)), nil
}

// Pack encodes c as a ColorLong.
func (c Color) Pack() (ColorLong, error) {
	return Pack(c.R, c.G, c.B, c.A, c.ColorSpace())
}

// ColorLong is a color packed in 64 bits.
//
// sRGB colors store 0xAARRGGBB in the upper 32 bits and zero in the lower
// 32. Other spaces store red, green and blue as half floats in bits 48, 32
// and 16, a 10-bit alpha in bits 6 to 15 and the space id in the low 6 bits.
type ColorLong uint64

// Pack encodes components of cs. Custom spaces cannot be packed because the
// encoding only has room for a registry id.
func Pack(r, g, b, a float32, cs *ColorSpace) (ColorLong, error) {
	if cs == nil {
		cs = Get(SRGB)
	}
	if cs.IsSrgb() {
		argb := to8(a)<<24 | to8(r)<<16 | to8(g)<<8 | to8(b)
		return ColorLong(uint64(argb) << 32), nil
	}
	if cs.id == MinID {
		return 0, fmt.Errorf("colorspace: unknown color space %q, use a color space returned by Get: %w",
			cs.name, ErrInvalidArgument)
	}
	a10 := uint64(saturate(a)*1023 + 0.5)
	return ColorLong(uint64(half(r))<<48 |
		uint64(half(g))<<32 |
		uint64(half(b))<<16 |
		(a10&0x3ff)<<6 |
		uint64(cs.id)&0x3f), nil
}

func half(v float32) uint16 {
	return float16.Fromfloat32(v).Bits()
}

func unhalf(bits uint16) float32 {
	return float16.Frombits(bits).Float32()
}

// IsSrgb reports whether l uses the sRGB encoding.
func (l ColorLong) IsSrgb() bool { return l&0x3f == 0 }

// SpaceID returns the 6-bit color space id.
func (l ColorLong) SpaceID() int { return int(l & 0x3f) }

// Space returns the color space of l. Ids outside the registry are an
// error.
func (l ColorLong) Space() (*ColorSpace, error) {
	return GetByID(l.SpaceID())
}

// Red returns the first component.
func (l ColorLong) Red() float32 {
	if l.IsSrgb() {
		return float32((l>>48)&0xff) / 255
	}
	return unhalf(uint16(l >> 48))
}

// Green returns the second component.
func (l ColorLong) Green() float32 {
	if l.IsSrgb() {
		return float32((l>>40)&0xff) / 255
	}
	return unhalf(uint16(l >> 32))
}

// Blue returns the third component.
func (l ColorLong) Blue() float32 {
	if l.IsSrgb() {
		return float32((l>>32)&0xff) / 255
	}
	return unhalf(uint16(l >> 16))
}

// Alpha returns the alpha component in [0, 1].
func (l ColorLong) Alpha() float32 {
	if l.IsSrgb() {
		return float32((l>>56)&0xff) / 255
	}
	return float32((l>>6)&0x3ff) / 1023
}

// Color unpacks l.
func (l ColorLong) Color() (Color, error) {
	cs, err := l.Space()
	if err != nil {
		return Color{}, err
	}
	return Color{R: l.Red(), G: l.Green(), B: l.Blue(), A: l.Alpha(), Space: cs}, nil
}
