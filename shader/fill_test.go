package shader

import (
	"errors"
	"testing"

	"github.com/gogpu/bitmap"
	"github.com/gogpu/bitmap/colorspace"
)

func channel(argb uint32, shift int) int { return int(argb >> shift & 0xff) }

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

func TestFill(t *testing.T) {
	b, err := bitmap.New(4, 1, bitmap.ARGB8888)
	if err != nil {
		t.Fatal(err)
	}
	g := NewLinearGradient(0, 0, 4, 0).
		AddColorStop(0, red).
		AddColorStop(1, blue).
		SetSpace(colorspace.Get(colorspace.SRGB))
	gen := b.GenerationID()
	if err := Fill(b, g); err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	if b.GenerationID() == gen {
		t.Error("Fill() did not change the generation id")
	}

	// pixel centers sit at t = 1/8, 3/8, 5/8, 7/8
	for x, wantR := range []int{223, 159, 96, 32} {
		px, err := b.Pixel(x, 0)
		if err != nil {
			t.Fatal(err)
		}
		if absDiff(channel(px, 16), wantR) > 1 || absDiff(channel(px, 0), 255-wantR) > 1 || px>>24 != 0xff {
			t.Errorf("Pixel(%d, 0) = %#08x, want red %d", x, px, wantR)
		}
	}
}

func TestFillConvertsToBitmapSpace(t *testing.T) {
	p3 := colorspace.Get(colorspace.DisplayP3)
	b, err := bitmap.New(2, 2, bitmap.RGBAF16, bitmap.WithColorSpace(p3))
	if err != nil {
		t.Fatal(err)
	}
	g := NewLinearGradient(0, 0, 1, 0).AddColorStop(0, red)
	if err := Fill(b, g); err != nil {
		t.Fatalf("Fill() error = %v", err)
	}

	c, err := b.Color(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	want := red.Convert(p3)
	checkColor(t, "Color(1, 1)", c, want.R, want.G, want.B, 1)
	if c.Space != p3 {
		t.Errorf("Color().Space = %v, want %v", c.Space, p3)
	}
}

func TestFillAlpha8(t *testing.T) {
	b, err := bitmap.New(2, 1, bitmap.Alpha8)
	if err != nil {
		t.Fatal(err)
	}
	g := NewLinearGradient(0, 0, 2, 0).
		AddColorStop(0, colorspace.Color{A: 0}).
		AddColorStop(1, colorspace.Color{A: 1})
	if err := Fill(b, g); err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	for x, want := range []int{64, 191} {
		px, _ := b.Pixel(x, 0)
		if absDiff(channel(px, 24), want) > 1 {
			t.Errorf("Pixel(%d, 0) alpha = %d, want %d", x, channel(px, 24), want)
		}
	}
}

func TestFillParallelRows(t *testing.T) {
	const h = parallelRows * 3
	b, err := bitmap.New(3, h, bitmap.ARGB8888)
	if err != nil {
		t.Fatal(err)
	}
	g := NewLinearGradient(0, 0, 0, h).
		AddColorStop(0, black).
		AddColorStop(1, white).
		SetSpace(colorspace.Get(colorspace.SRGB))
	if err := Fill(b, g); err != nil {
		t.Fatalf("Fill() error = %v", err)
	}

	prev := -1
	for y := 0; y < h; y++ {
		left, _ := b.Pixel(0, y)
		right, _ := b.Pixel(2, y)
		if left != right {
			t.Fatalf("row %d differs: %#08x vs %#08x", y, left, right)
		}
		v := channel(left, 8)
		if v < prev {
			t.Fatalf("row %d green = %d, below row above (%d)", y, v, prev)
		}
		prev = v
	}
}

func TestFillErrors(t *testing.T) {
	g := NewLinearGradient(0, 0, 1, 0).AddColorStop(0, red)

	b, err := bitmap.New(1, 1, bitmap.ARGB8888)
	if err != nil {
		t.Fatal(err)
	}
	if err := Fill(nil, g); !errors.Is(err, bitmap.ErrInvalidArgument) {
		t.Errorf("Fill(nil) error = %v, want ErrInvalidArgument", err)
	}
	if err := Fill(b, nil); !errors.Is(err, bitmap.ErrInvalidArgument) {
		t.Errorf("Fill(b, nil) error = %v, want ErrInvalidArgument", err)
	}

	frozen, err := b.Copy(bitmap.ARGB8888, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := Fill(frozen, g); !errors.Is(err, bitmap.ErrIllegalState) {
		t.Errorf("Fill(immutable) error = %v, want ErrIllegalState", err)
	}

	b.Recycle()
	if err := Fill(b, g); !errors.Is(err, bitmap.ErrIllegalState) {
		t.Errorf("Fill(recycled) error = %v, want ErrIllegalState", err)
	}
}
