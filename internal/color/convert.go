package color

import (
	"encoding/binary"

	"github.com/x448/float16"
)

// Premul8 multiplies a component by alpha, rounding to nearest.
func Premul8(c, a uint8) uint8 {
	return uint8((uint32(c)*uint32(a) + 127) / 255)
}

// Unpremul8 divides a premultiplied component by alpha. A zero alpha yields
// zero; the result saturates at 255.
func Unpremul8(c, a uint8) uint8 {
	if a == 0 {
		return 0
	}
	v := (uint32(c)*255 + uint32(a)/2) / uint32(a)
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// PremulU8 premultiplies the color components of c.
func PremulU8(c ColorU8) ColorU8 {
	if c.A == 255 {
		return c
	}
	return ColorU8{R: Premul8(c.R, c.A), G: Premul8(c.G, c.A), B: Premul8(c.B, c.A), A: c.A}
}

// UnpremulU8 reverses PremulU8.
func UnpremulU8(c ColorU8) ColorU8 {
	if c.A == 255 {
		return c
	}
	return ColorU8{R: Unpremul8(c.R, c.A), G: Unpremul8(c.G, c.A), B: Unpremul8(c.B, c.A), A: c.A}
}

// PremulF32 premultiplies the color components of c.
func PremulF32(c ColorF32) ColorF32 {
	return ColorF32{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}

// UnpremulF32 reverses PremulF32. A zero alpha yields zero components.
func UnpremulF32(c ColorF32) ColorF32 {
	if c.A == 0 {
		return ColorF32{}
	}
	if c.A == 1 {
		return c
	}
	return ColorF32{R: c.R / c.A, G: c.G / c.A, B: c.B / c.A, A: c.A}
}

// Pack565 truncates an opaque color to 5-6-5 bits.
func Pack565(c ColorU8) uint16 {
	return uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
}

// Unpack565 expands 5-6-5 bits to an opaque 8-bit color by replicating the
// high bits into the low ones.
func Unpack565(v uint16) ColorU8 {
	r := uint8(v>>11) & 0x1f
	g := uint8(v>>5) & 0x3f
	b := uint8(v) & 0x1f
	return ColorU8{R: r<<3 | r>>2, G: g<<2 | g>>4, B: b<<3 | b>>2, A: 255}
}

// Load565 reads a little-endian 565 pixel.
func Load565(p []byte) ColorU8 {
	return Unpack565(binary.LittleEndian.Uint16(p))
}

// Store565 writes a little-endian 565 pixel.
func Store565(p []byte, c ColorU8) {
	binary.LittleEndian.PutUint16(p, Pack565(c))
}

// LoadF16 reads four little-endian half floats in R, G, B, A order.
func LoadF16(p []byte) ColorF32 {
	return ColorF32{
		R: float16.Frombits(binary.LittleEndian.Uint16(p[0:])).Float32(),
		G: float16.Frombits(binary.LittleEndian.Uint16(p[2:])).Float32(),
		B: float16.Frombits(binary.LittleEndian.Uint16(p[4:])).Float32(),
		A: float16.Frombits(binary.LittleEndian.Uint16(p[6:])).Float32(),
	}
}

// StoreF16 writes c as four little-endian half floats.
func StoreF16(p []byte, c ColorF32) {
	binary.LittleEndian.PutUint16(p[0:], float16.Fromfloat32(c.R).Bits())
	binary.LittleEndian.PutUint16(p[2:], float16.Fromfloat32(c.G).Bits())
	binary.LittleEndian.PutUint16(p[4:], float16.Fromfloat32(c.B).Bits())
	binary.LittleEndian.PutUint16(p[6:], float16.Fromfloat32(c.A).Bits())
}

// Load8888 reads an R, G, B, A byte quadruple.
func Load8888(p []byte) ColorU8 {
	return ColorU8{R: p[0], G: p[1], B: p[2], A: p[3]}
}

// Store8888 writes c as R, G, B, A bytes.
func Store8888(p []byte, c ColorU8) {
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
}
