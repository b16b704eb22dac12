package color

import "testing"

func TestUnit8(t *testing.T) {
	tests := []struct {
		in   float32
		want uint8
	}{
		{-1, 0},
		{0, 0},
		{0.5, 128},
		{1, 255},
		{2, 255},
		{1.0 / 255, 1},
	}
	for _, tt := range tests {
		if got := Unit8(tt.in); got != tt.want {
			t.Errorf("Unit8(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestARGBRoundTrip(t *testing.T) {
	c := FromARGB(0x80ff4020)
	if c != (ColorU8{R: 0xff, G: 0x40, B: 0x20, A: 0x80}) {
		t.Errorf("FromARGB() = %+v", c)
	}
	if got := c.ARGB(); got != 0x80ff4020 {
		t.Errorf("ARGB() = %#x, want 0x80ff4020", got)
	}
}

func TestPremul8(t *testing.T) {
	tests := []struct {
		in, want ColorU8
	}{
		{ColorU8{255, 254, 253, 2}, ColorU8{2, 2, 2, 2}},
		{ColorU8{255, 128, 0, 128}, ColorU8{128, 64, 0, 128}},
		{ColorU8{10, 20, 30, 255}, ColorU8{10, 20, 30, 255}},
		{ColorU8{10, 20, 30, 0}, ColorU8{0, 0, 0, 0}},
	}
	for _, tt := range tests {
		if got := PremulU8(tt.in); got != tt.want {
			t.Errorf("PremulU8(%+v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestUnpremul8(t *testing.T) {
	tests := []struct {
		in, want ColorU8
	}{
		{ColorU8{2, 2, 2, 2}, ColorU8{255, 255, 255, 2}},
		{ColorU8{128, 64, 0, 128}, ColorU8{255, 128, 0, 128}},
		{ColorU8{9, 9, 9, 0}, ColorU8{0, 0, 0, 0}},
		{ColorU8{200, 200, 200, 100}, ColorU8{255, 255, 255, 100}},
	}
	for _, tt := range tests {
		if got := UnpremulU8(tt.in); got != tt.want {
			t.Errorf("UnpremulU8(%+v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestPremulF32(t *testing.T) {
	c := ColorF32{R: 1, G: 0.5, B: 0.25, A: 0.5}
	p := PremulF32(c)
	if p != (ColorF32{R: 0.5, G: 0.25, B: 0.125, A: 0.5}) {
		t.Errorf("PremulF32() = %+v", p)
	}
	if got := UnpremulF32(p); got != c {
		t.Errorf("UnpremulF32() = %+v, want %+v", got, c)
	}
	if got := UnpremulF32(ColorF32{R: 1, A: 0}); got != (ColorF32{}) {
		t.Errorf("UnpremulF32(alpha 0) = %+v, want zero", got)
	}
}

func Test565(t *testing.T) {
	tests := []struct {
		in   ColorU8
		bits uint16
		back ColorU8
	}{
		{ColorU8{255, 255, 255, 255}, 0xffff, ColorU8{255, 255, 255, 255}},
		{ColorU8{0, 0, 0, 255}, 0, ColorU8{0, 0, 0, 255}},
		{ColorU8{255, 0, 0, 255}, 0xf800, ColorU8{255, 0, 0, 255}},
		{ColorU8{0x80, 0x80, 0x80, 255}, 0x8410, ColorU8{132, 130, 132, 255}},
	}
	for _, tt := range tests {
		if got := Pack565(tt.in); got != tt.bits {
			t.Errorf("Pack565(%+v) = %#x, want %#x", tt.in, got, tt.bits)
		}
		if got := Unpack565(tt.bits); got != tt.back {
			t.Errorf("Unpack565(%#x) = %+v, want %+v", tt.bits, got, tt.back)
		}
	}

	var p [2]byte
	Store565(p[:], ColorU8{255, 0, 0, 255})
	if p != [2]byte{0x00, 0xf8} {
		t.Errorf("Store565() bytes = %v, want little-endian [0 248]", p)
	}
	if got := Load565(p[:]); got != (ColorU8{255, 0, 0, 255}) {
		t.Errorf("Load565() = %+v", got)
	}
}

func TestF16(t *testing.T) {
	var p [8]byte
	in := ColorF32{R: 1, G: -0.5, B: 2.25, A: 0.75}
	StoreF16(p[:], in)
	if p[0] != 0x00 || p[1] != 0x3c {
		t.Errorf("StoreF16() red bytes = %#x %#x, want 0x00 0x3c", p[0], p[1])
	}
	if got := LoadF16(p[:]); got != in {
		t.Errorf("LoadF16() = %+v, want %+v", got, in)
	}
}

func Test8888(t *testing.T) {
	var p [4]byte
	Store8888(p[:], ColorU8{1, 2, 3, 4})
	if p != [4]byte{1, 2, 3, 4} {
		t.Errorf("Store8888() = %v, want R, G, B, A order", p)
	}
	if got := Load8888(p[:]); got != (ColorU8{1, 2, 3, 4}) {
		t.Errorf("Load8888() = %+v", got)
	}
}
