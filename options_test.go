package bitmap

import (
	"errors"
	"testing"

	"github.com/gogpu/bitmap/colorspace"
)

func TestNewDefaults(t *testing.T) {
	b, err := New(100, 100, ARGB8888)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if b.Width() != 100 {
		t.Errorf("Width() = %d, want 100", b.Width())
	}
	if b.Height() != 100 {
		t.Errorf("Height() = %d, want 100", b.Height())
	}
	if !b.IsMutable() {
		t.Error("IsMutable() = false, want true")
	}
	if !b.HasAlpha() || !b.IsPremultiplied() {
		t.Errorf("HasAlpha() = %v, IsPremultiplied() = %v, want true, true", b.HasAlpha(), b.IsPremultiplied())
	}
	if b.ColorSpace() != colorspace.Get(colorspace.SRGB) {
		t.Errorf("ColorSpace() = %v, want sRGB", b.ColorSpace())
	}
	if b.Density() != DefaultDensity() {
		t.Errorf("Density() = %d, want %d", b.Density(), DefaultDensity())
	}
	if b.pool != defaultPool {
		t.Error("pool is not the default pool")
	}
}

func TestWithColorSpace(t *testing.T) {
	p3 := colorspace.Get(colorspace.DisplayP3)
	b, err := New(4, 4, ARGB8888, WithColorSpace(p3))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if b.ColorSpace() != p3 {
		t.Errorf("ColorSpace() = %v, want %v", b.ColorSpace(), p3)
	}

	// Custom spaces equal to a named one resolve to the named instance.
	srgb := colorspace.Get(colorspace.SRGB)
	tf := srgb.Transfer()
	custom, err := colorspace.NewRGB("my sRGB", srgb.Primaries(), srgb.WhitePoint(), tf)
	if err != nil {
		t.Fatalf("NewRGB() error = %v", err)
	}
	b, err = New(4, 4, ARGB8888, WithColorSpace(custom))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if b.ColorSpace() != srgb {
		t.Errorf("ColorSpace() = %v, want the sRGB singleton", b.ColorSpace())
	}
}

func TestWithColorSpaceRejected(t *testing.T) {
	tests := []struct {
		name string
		cs   *colorspace.ColorSpace
	}{
		{"xyz", colorspace.Get(colorspace.CIEXYZ)},
		{"lab", colorspace.Get(colorspace.CIELab)},
		{"hlg", colorspace.Get(colorspace.BT2020HLG)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(4, 4, ARGB8888, WithColorSpace(tt.cs))
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("New(%s) error = %v, want ErrInvalidArgument", tt.cs.Name(), err)
			}
		})
	}

	// Alpha8 ignores the color space entirely.
	b, err := New(4, 4, Alpha8, WithColorSpace(colorspace.Get(colorspace.CIELab)))
	if err != nil {
		t.Fatalf("New(Alpha8) error = %v", err)
	}
	if b.ColorSpace() != nil {
		t.Errorf("Alpha8 ColorSpace() = %v, want nil", b.ColorSpace())
	}
}

func TestWithHasAlpha(t *testing.T) {
	for _, cfg := range []Config{ARGB8888, RGBAF16} {
		t.Run(cfg.String(), func(t *testing.T) {
			b, err := New(3, 2, cfg, WithHasAlpha(false))
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if b.HasAlpha() {
				t.Error("HasAlpha() = true, want false")
			}
			px, err := b.Pixel(2, 1)
			if err != nil {
				t.Fatalf("Pixel() error = %v", err)
			}
			if px != 0xff000000 {
				t.Errorf("Pixel() = %#08x, want opaque black", px)
			}
		})
	}
}

func TestWithPremultiplied(t *testing.T) {
	b, err := New(1, 1, ARGB8888, WithPremultiplied(false))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if b.IsPremultiplied() {
		t.Error("IsPremultiplied() = true, want false")
	}
	if !b.HasAlpha() {
		t.Error("HasAlpha() = false, want true")
	}
}

func TestWithDensity(t *testing.T) {
	b, err := New(1, 1, ARGB8888, WithDensity(320))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if b.Density() != 320 {
		t.Errorf("Density() = %d, want 320", b.Density())
	}
}

func TestWithPool(t *testing.T) {
	p := NewPool(4)
	b, err := New(10, 10, ARGB8888, WithPool(p))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := b.EraseColor(0xffff0000); err != nil {
		t.Fatalf("EraseColor() error = %v", err)
	}
	b.Recycle()
	if got := p.Pooled(400); got != 1 {
		t.Fatalf("Pooled(400) = %d, want 1", got)
	}

	// A bitmap of the same byte size takes the storage back, cleared.
	b2, err := New(20, 5, ARGB8888, WithPool(p))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := p.Pooled(400); got != 0 {
		t.Errorf("Pooled(400) after reuse = %d, want 0", got)
	}
	if px, _ := b2.Pixel(0, 0); px != 0 {
		t.Errorf("reused Pixel(0, 0) = %#08x, want 0", px)
	}

	// nil keeps the default.
	b3, err := New(1, 1, ARGB8888, WithPool(nil))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if b3.pool != defaultPool {
		t.Error("WithPool(nil) replaced the default pool")
	}
}
