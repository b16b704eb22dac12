package color

import "math"

// srgbDecode8 maps an 8-bit sRGB value to linear light.
var srgbDecode8 [256]float32

// srgbEncode12 maps a 12-bit linear value to 8-bit sRGB.
var srgbEncode12 [4096]uint8

func init() {
	for i := range srgbDecode8 {
		srgbDecode8[i] = float32(SRGBToLinear(float64(i) / 255))
	}
	for i := range srgbEncode12 {
		s := SRGBFromLinear(float64(i) / 4095)
		srgbEncode12[i] = uint8(math.Min(math.Max(s*255+0.5, 0), 255))
	}
}

// SRGBToLinear is the sRGB decoding curve on [0,1].
func SRGBToLinear(s float64) float64 {
	if s < 0.04045 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

// SRGBFromLinear is the sRGB encoding curve on [0,1].
func SRGBFromLinear(l float64) float64 {
	if l < 0.04045/12.92 {
		return l * 12.92
	}
	return 1.055*math.Pow(l, 1/2.4) - 0.055
}

// DecodeSRGB8 returns the linear value of an 8-bit sRGB component.
func DecodeSRGB8(s uint8) float32 {
	return srgbDecode8[s]
}

// EncodeSRGB8 returns the 8-bit sRGB encoding of a linear component.
// Input outside [0,1] is clamped; the table has 12 bits of precision.
func EncodeSRGB8(l float32) uint8 {
	if !(l > 0) {
		return srgbEncode12[0]
	}
	if l >= 1 {
		return srgbEncode12[4095]
	}
	return srgbEncode12[int(l*4095+0.5)]
}
