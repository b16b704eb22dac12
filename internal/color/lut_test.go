package color

import (
	"math"
	"testing"
)

func TestDecodeSRGB8(t *testing.T) {
	for i := 0; i < 256; i++ {
		want := SRGBToLinear(float64(i) / 255)
		if got := DecodeSRGB8(uint8(i)); math.Abs(float64(got)-want) > 1e-6 {
			t.Errorf("DecodeSRGB8(%d) = %v, want %v", i, got, want)
		}
	}
	if DecodeSRGB8(0) != 0 || DecodeSRGB8(255) != 1 {
		t.Errorf("DecodeSRGB8 endpoints = %v, %v", DecodeSRGB8(0), DecodeSRGB8(255))
	}
}

func TestEncodeSRGB8(t *testing.T) {
	tests := []struct {
		in   float32
		want uint8
	}{
		{-1, 0},
		{0, 0},
		{1, 255},
		{3, 255},
		{0.5, 188},
	}
	for _, tt := range tests {
		if got := EncodeSRGB8(tt.in); got != tt.want {
			t.Errorf("EncodeSRGB8(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSRGBRoundTrip(t *testing.T) {
	for i := 0; i < 256; i++ {
		got := EncodeSRGB8(DecodeSRGB8(uint8(i)))
		if d := int(got) - i; d < -1 || d > 1 {
			t.Errorf("EncodeSRGB8(DecodeSRGB8(%d)) = %d", i, got)
		}
	}
}

func TestCurvesInverse(t *testing.T) {
	for i := 0; i <= 100; i++ {
		x := float64(i) / 100
		if got := SRGBFromLinear(SRGBToLinear(x)); math.Abs(got-x) > 1e-9 {
			t.Errorf("SRGBFromLinear(SRGBToLinear(%v)) = %v", x, got)
		}
	}
}

func BenchmarkDecodeSRGB8(b *testing.B) {
	var sum float32
	for i := 0; i < b.N; i++ {
		sum += DecodeSRGB8(uint8(i))
	}
	_ = sum
}

func BenchmarkEncodeSRGB8(b *testing.B) {
	var sum int
	for i := 0; i < b.N; i++ {
		sum += int(EncodeSRGB8(float32(i&1023) / 1023))
	}
	_ = sum
}
