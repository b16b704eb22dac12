// Package color holds the per-pixel encodings used by bitmap storage:
// 8-bit and float premultiplication, RGB 565 packing, half floats and the
// sRGB lookup tables.
package color

// ColorF32 is a pixel with float components. RGB are encoded in the
// bitmap's color space; alpha is always linear.
type ColorF32 struct {
	R, G, B, A float32
}

// ColorU8 is a pixel with 8-bit components.
type ColorU8 struct {
	R, G, B, A uint8
}

// ARGB returns c packed as 0xAARRGGBB.
func (c ColorU8) ARGB() uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// FromARGB unpacks 0xAARRGGBB.
func FromARGB(argb uint32) ColorU8 {
	return ColorU8{R: uint8(argb >> 16), G: uint8(argb >> 8), B: uint8(argb), A: uint8(argb >> 24)}
}

// U8ToF32 maps each component from [0,255] to [0,1].
func U8ToF32(c ColorU8) ColorF32 {
	return ColorF32{
		R: float32(c.R) / 255,
		G: float32(c.G) / 255,
		B: float32(c.B) / 255,
		A: float32(c.A) / 255,
	}
}

// F32ToU8 clamps each component to [0,1] and rounds it to 8 bits.
func F32ToU8(c ColorF32) ColorU8 {
	return ColorU8{
		R: Unit8(c.R),
		G: Unit8(c.G),
		B: Unit8(c.B),
		A: Unit8(c.A),
	}
}

// Unit8 clamps v to [0,1] and converts it to uint8 with rounding.
// NaN maps to 0.
func Unit8(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
