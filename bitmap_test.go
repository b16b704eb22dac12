package bitmap

import (
	"errors"
	"testing"

	"github.com/gogpu/bitmap/colorspace"
)

func mustNew(t *testing.T, w, h int, cfg Config, opts ...Option) *Bitmap {
	t.Helper()
	b, err := New(w, h, cfg, opts...)
	if err != nil {
		t.Fatalf("New(%d, %d, %s) error = %v", w, h, cfg, err)
	}
	return b
}

func TestNewInvalid(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		cfg  Config
	}{
		{"zero width", 0, 10, ARGB8888},
		{"negative height", 10, -1, ARGB8888},
		{"unknown config", 10, 10, Config(42)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.w, tt.h, tt.cfg); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("New() error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestGeometry(t *testing.T) {
	tests := []struct {
		cfg      Config
		want     Config
		rowBytes int
	}{
		{Alpha8, Alpha8, 10},
		{RGB565, RGB565, 20},
		{ARGB4444, ARGB8888, 40},
		{ARGB8888, ARGB8888, 40},
		{RGBAF16, RGBAF16, 80},
	}
	for _, tt := range tests {
		t.Run(tt.cfg.String(), func(t *testing.T) {
			b := mustNew(t, 10, 20, tt.cfg)
			if b.Config() != tt.want {
				t.Errorf("Config() = %s, want %s", b.Config(), tt.want)
			}
			if b.RowBytes() != tt.rowBytes {
				t.Errorf("RowBytes() = %d, want %d", b.RowBytes(), tt.rowBytes)
			}
			if b.ByteCount() != tt.rowBytes*20 {
				t.Errorf("ByteCount() = %d, want %d", b.ByteCount(), tt.rowBytes*20)
			}
			if b.AllocationByteCount() != b.ByteCount() {
				t.Errorf("AllocationByteCount() = %d, want %d", b.AllocationByteCount(), b.ByteCount())
			}
		})
	}
}

func TestAlphaState(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		opts      []Option
		hasAlpha  bool
		premul    bool
		wantSpace *colorspace.ColorSpace
	}{
		{"8888", ARGB8888, nil, true, true, colorspace.Get(colorspace.SRGB)},
		{"8888 unpremul", ARGB8888, []Option{WithPremultiplied(false)}, true, false, colorspace.Get(colorspace.SRGB)},
		{"565 is opaque", RGB565, nil, false, false, colorspace.Get(colorspace.SRGB)},
		{"alpha8 unpremul coerced", Alpha8, []Option{WithPremultiplied(false)}, true, true, nil},
		{"f16 widens srgb", RGBAF16, nil, true, true, colorspace.Get(colorspace.ExtendedSRGB)},
		{"f16 widens linear", RGBAF16, []Option{WithColorSpace(colorspace.Get(colorspace.LinearSRGB))}, true, true,
			colorspace.Get(colorspace.LinearExtendedSRGB)},
		{"8888 narrows extended", ARGB8888, []Option{WithColorSpace(colorspace.Get(colorspace.ExtendedSRGB))}, true, true,
			colorspace.Get(colorspace.SRGB)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustNew(t, 2, 2, tt.cfg, tt.opts...)
			if b.HasAlpha() != tt.hasAlpha {
				t.Errorf("HasAlpha() = %v, want %v", b.HasAlpha(), tt.hasAlpha)
			}
			if b.IsPremultiplied() != tt.premul {
				t.Errorf("IsPremultiplied() = %v, want %v", b.IsPremultiplied(), tt.premul)
			}
			if b.ColorSpace() != tt.wantSpace {
				t.Errorf("ColorSpace() = %v, want %v", b.ColorSpace(), tt.wantSpace)
			}
		})
	}
}

func TestReconfigureKeepsAllocation(t *testing.T) {
	b := mustNew(t, 100, 200, RGB565)
	if b.AllocationByteCount() != 40000 {
		t.Fatalf("AllocationByteCount() = %d, want 40000", b.AllocationByteCount())
	}
	if err := b.Reconfigure(50, 100, Alpha8); err != nil {
		t.Fatalf("Reconfigure() error = %v", err)
	}
	if b.ByteCount() != 5000 {
		t.Errorf("ByteCount() = %d, want 5000", b.ByteCount())
	}
	if b.AllocationByteCount() != 40000 {
		t.Errorf("AllocationByteCount() = %d, want 40000", b.AllocationByteCount())
	}
	if b.Width() != 50 || b.Height() != 100 || b.Config() != Alpha8 {
		t.Errorf("geometry = %dx%d %s, want 50x100 ALPHA_8", b.Width(), b.Height(), b.Config())
	}
	if b.ColorSpace() != nil {
		t.Errorf("ColorSpace() = %v, want nil for ALPHA_8", b.ColorSpace())
	}
	// Leaving 565 restores alpha.
	if !b.HasAlpha() {
		t.Error("HasAlpha() = false after reconfigure from RGB_565, want true")
	}
}

func TestReconfigureTooLarge(t *testing.T) {
	b := mustNew(t, 10, 10, ARGB8888)
	tests := []struct {
		name string
		fn   func() error
	}{
		{"reconfigure", func() error { return b.Reconfigure(11, 10, ARGB8888) }},
		{"set width", func() error { return b.SetWidth(11) }},
		{"set height", func() error { return b.SetHeight(11) }},
		{"set config", func() error { return b.SetConfig(RGBAF16) }},
		{"zero width", func() error { return b.SetWidth(0) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("error = %v, want ErrInvalidArgument", err)
			}
		})
	}
	if b.Width() != 10 || b.Height() != 10 || b.Config() != ARGB8888 {
		t.Errorf("failed reconfigure changed geometry to %dx%d %s", b.Width(), b.Height(), b.Config())
	}
}

func TestReconfigureShrinkThenGrow(t *testing.T) {
	b := mustNew(t, 10, 10, ARGB8888)
	if err := b.SetConfig(RGB565); err != nil {
		t.Fatalf("SetConfig(RGB565) error = %v", err)
	}
	if err := b.SetWidth(20); err != nil {
		t.Fatalf("SetWidth(20) error = %v", err)
	}
	if b.ByteCount() != 400 {
		t.Errorf("ByteCount() = %d, want 400", b.ByteCount())
	}
	if err := b.SetWidth(21); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("SetWidth(21) error = %v, want ErrInvalidArgument", err)
	}
}

func TestReconfigureOpaqueStaysOpaque(t *testing.T) {
	b := mustNew(t, 4, 4, ARGB8888, WithHasAlpha(false))
	if err := b.SetWidth(2); err != nil {
		t.Fatalf("SetWidth() error = %v", err)
	}
	if b.HasAlpha() {
		t.Error("HasAlpha() = true, want false")
	}
}

func TestRecycle(t *testing.T) {
	b := mustNew(t, 12, 34, ARGB8888)
	b.Recycle()
	b.Recycle()

	if !b.IsRecycled() {
		t.Error("IsRecycled() = false, want true")
	}
	if b.Width() != 12 || b.Height() != 34 || b.Config() != ARGB8888 {
		t.Errorf("metadata after recycle = %dx%d %s, want 12x34 ARGB_8888", b.Width(), b.Height(), b.Config())
	}
	if _, err := b.Pixel(0, 0); !errors.Is(err, ErrIllegalState) {
		t.Errorf("Pixel() error = %v, want ErrIllegalState", err)
	}
	if b.ByteCount() != 0 || b.AllocationByteCount() != 0 {
		t.Errorf("ByteCount() = %d, AllocationByteCount() = %d, want 0, 0", b.ByteCount(), b.AllocationByteCount())
	}

	ops := map[string]func() error{
		"SetPixel":      func() error { return b.SetPixel(0, 0, 0) },
		"EraseColor":    func() error { return b.EraseColor(0) },
		"Reconfigure":   func() error { return b.Reconfigure(1, 1, ARGB8888) },
		"SetHasAlpha":   func() error { return b.SetHasAlpha(false) },
		"SetColorSpace": func() error { return b.SetColorSpace(colorspace.Get(colorspace.DisplayP3)) },
		"Pixels":        func() error { return b.Pixels(make([]uint32, 1), 0, 1, 0, 0, 1, 1) },
		"ExtractAlpha": func() error {
			_, err := b.ExtractAlpha()
			return err
		},
		"Copy": func() error {
			_, err := b.Copy(ARGB8888, true)
			return err
		},
	}
	for name, op := range ops {
		if err := op(); !errors.Is(err, ErrIllegalState) {
			t.Errorf("%s() on recycled bitmap error = %v, want ErrIllegalState", name, err)
		}
	}
}

func TestImmutableRejectsWrites(t *testing.T) {
	colors := []uint32{0xff112233, 0xff445566, 0xff778899, 0xffaabbcc}
	b, err := CreateBitmapFromColors(colors, 0, 2, 2, 2, ARGB8888)
	if err != nil {
		t.Fatalf("CreateBitmapFromColors() error = %v", err)
	}
	if b.IsMutable() {
		t.Fatal("IsMutable() = true, want false")
	}
	before := make([]byte, b.ByteCount())
	if _, err := b.CopyPixelsToBuffer(before); err != nil {
		t.Fatalf("CopyPixelsToBuffer() error = %v", err)
	}
	gen := b.GenerationID()

	ops := map[string]func() error{
		"SetPixel":   func() error { return b.SetPixel(0, 0, 0xffffffff) },
		"SetPixels":  func() error { return b.SetPixels(make([]uint32, 4), 0, 2, 0, 0, 2, 2) },
		"EraseColor": func() error { return b.EraseColor(0xffffffff) },
		"SetWidth":   func() error { return b.SetWidth(1) },
		"SetColor":   func() error { return b.SetColor(0, 0, colorspace.ValueOf(0xffffffff)) },
		"CopyPixelsFromBuffer": func() error {
			_, err := b.CopyPixelsFromBuffer(make([]byte, 16))
			return err
		},
	}
	for name, op := range ops {
		if err := op(); !errors.Is(err, ErrIllegalState) {
			t.Errorf("%s() on immutable bitmap error = %v, want ErrIllegalState", name, err)
		}
	}

	after := make([]byte, b.ByteCount())
	if _, err := b.CopyPixelsToBuffer(after); err != nil {
		t.Fatalf("CopyPixelsToBuffer() error = %v", err)
	}
	if string(before) != string(after) {
		t.Error("pixels changed after rejected writes")
	}
	if b.GenerationID() != gen {
		t.Errorf("GenerationID() = %d, want %d", b.GenerationID(), gen)
	}
}

func TestSetHasAlphaAndPremultiplied(t *testing.T) {
	b := mustNew(t, 2, 2, ARGB8888)

	if err := b.SetPremultiplied(false); err != nil {
		t.Fatalf("SetPremultiplied() error = %v", err)
	}
	if b.IsPremultiplied() {
		t.Error("IsPremultiplied() = true, want false")
	}
	if err := b.SetHasAlpha(false); err != nil {
		t.Fatalf("SetHasAlpha() error = %v", err)
	}
	if b.HasAlpha() || b.IsPremultiplied() {
		t.Errorf("opaque: HasAlpha() = %v, IsPremultiplied() = %v, want false, false", b.HasAlpha(), b.IsPremultiplied())
	}
	// The request survives while opaque.
	if err := b.SetPremultiplied(true); err != nil {
		t.Fatalf("SetPremultiplied() error = %v", err)
	}
	if err := b.SetHasAlpha(true); err != nil {
		t.Fatalf("SetHasAlpha() error = %v", err)
	}
	if !b.IsPremultiplied() {
		t.Error("IsPremultiplied() = false after restoring alpha, want true")
	}

	c := mustNew(t, 2, 2, RGB565)
	if err := c.SetHasAlpha(true); err != nil {
		t.Fatalf("SetHasAlpha() error = %v", err)
	}
	if c.HasAlpha() {
		t.Error("RGB_565 HasAlpha() = true, want false")
	}
}

func TestSetColorSpace(t *testing.T) {
	b := mustNew(t, 2, 2, ARGB8888)
	p3 := colorspace.Get(colorspace.DisplayP3)
	if err := b.SetColorSpace(p3); err != nil {
		t.Fatalf("SetColorSpace(P3) error = %v", err)
	}
	if b.ColorSpace() != p3 {
		t.Errorf("ColorSpace() = %v, want %v", b.ColorSpace(), p3)
	}

	invalid := []*colorspace.ColorSpace{
		nil,
		colorspace.Get(colorspace.CIELab),
		colorspace.Get(colorspace.CIEXYZ),
		colorspace.Get(colorspace.BT2020PQ),
	}
	for _, cs := range invalid {
		if err := b.SetColorSpace(cs); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("SetColorSpace(%v) error = %v, want ErrInvalidArgument", cs, err)
		}
	}
	if b.ColorSpace() != p3 {
		t.Errorf("ColorSpace() after rejected calls = %v, want %v", b.ColorSpace(), p3)
	}

	a := mustNew(t, 2, 2, Alpha8)
	if err := a.SetColorSpace(p3); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Alpha8 SetColorSpace() error = %v, want ErrInvalidArgument", err)
	}
}

func TestSetColorSpaceRange(t *testing.T) {
	b := mustNew(t, 2, 2, RGBAF16)
	if b.ColorSpace() != colorspace.Get(colorspace.ExtendedSRGB) {
		t.Fatalf("ColorSpace() = %v, want EXTENDED_SRGB", b.ColorSpace())
	}
	// Display P3 clamps to [0, 1], narrower than the extended range.
	if err := b.SetColorSpace(colorspace.Get(colorspace.DisplayP3)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("SetColorSpace(P3) error = %v, want ErrInvalidArgument", err)
	}
	if b.ColorSpace() != colorspace.Get(colorspace.ExtendedSRGB) {
		t.Errorf("ColorSpace() = %v, want EXTENDED_SRGB kept", b.ColorSpace())
	}
	// sRGB is widened for F16 storage, so it is accepted.
	if err := b.SetColorSpace(colorspace.Get(colorspace.SRGB)); err != nil {
		t.Errorf("SetColorSpace(sRGB) error = %v", err)
	}
}

func TestSetColorSpaceImmutable(t *testing.T) {
	b, err := CreateBitmapFromColors([]uint32{0xff000000}, 0, 1, 1, 1, ARGB8888)
	if err != nil {
		t.Fatalf("CreateBitmapFromColors() error = %v", err)
	}
	if err := b.SetColorSpace(colorspace.Get(colorspace.AdobeRGB)); err != nil {
		t.Errorf("SetColorSpace() on immutable bitmap error = %v, want nil", err)
	}
}

func TestGenerationID(t *testing.T) {
	b := mustNew(t, 4, 4, ARGB8888)
	gen := b.GenerationID()

	reads := []func(){
		func() { _, _ = b.Pixel(1, 1) },
		func() { _, _ = b.Color(1, 1) },
		func() { _ = b.Density() },
		func() { b.SetDensity(240) },
		func() { _ = b.GenerationID() },
	}
	for i, read := range reads {
		read()
		if b.GenerationID() != gen {
			t.Errorf("read %d changed GenerationID()", i)
		}
	}

	writes := map[string]func() error{
		"SetPixel":         func() error { return b.SetPixel(0, 0, 0xff00ff00) },
		"EraseColor":       func() error { return b.EraseColor(0xff0000ff) },
		"Reconfigure":      func() error { return b.Reconfigure(2, 2, ARGB8888) },
		"SetColorSpace":    func() error { return b.SetColorSpace(colorspace.Get(colorspace.DisplayP3)) },
		"SetHasAlpha":      func() error { return b.SetHasAlpha(false) },
		"SetPremultiplied": func() error { return b.SetPremultiplied(false) },
	}
	for name, write := range writes {
		before := b.GenerationID()
		if err := write(); err != nil {
			t.Fatalf("%s() error = %v", name, err)
		}
		if b.GenerationID() == before {
			t.Errorf("%s() did not change GenerationID()", name)
		}
	}

	other := mustNew(t, 4, 4, ARGB8888)
	if other.GenerationID() == b.GenerationID() {
		t.Error("two bitmaps share a generation id")
	}
}

func TestDensityScaling(t *testing.T) {
	tests := []struct {
		size, src, dst int
		want           int
	}{
		{100, 160, 320, 200},
		{100, 320, 160, 50},
		{101, 320, 160, 51},
		{100, DensityNone, 320, 100},
		{100, 160, DensityNone, 100},
		{100, 240, 240, 100},
		{33, 160, 240, 50},
	}
	for _, tt := range tests {
		if got := ScaleFromDensity(tt.size, tt.src, tt.dst); got != tt.want {
			t.Errorf("ScaleFromDensity(%d, %d, %d) = %d, want %d", tt.size, tt.src, tt.dst, got, tt.want)
		}
	}

	b := mustNew(t, 100, 50, ARGB8888, WithDensity(160))
	if got := b.ScaledWidth(320); got != 200 {
		t.Errorf("ScaledWidth(320) = %d, want 200", got)
	}
	if got := b.ScaledHeight(80); got != 25 {
		t.Errorf("ScaledHeight(80) = %d, want 25", got)
	}
}

func TestDefaultDensity(t *testing.T) {
	old := DefaultDensity()
	defer SetDefaultDensity(old)

	SetDefaultDensity(480)
	b := mustNew(t, 1, 1, ARGB8888)
	if b.Density() != 480 {
		t.Errorf("Density() = %d, want 480", b.Density())
	}
}

func TestConfigString(t *testing.T) {
	for _, cfg := range []Config{Alpha8, RGB565, ARGB4444, ARGB8888, RGBAF16} {
		got, err := ParseConfig(cfg.String())
		if err != nil {
			t.Errorf("ParseConfig(%q) error = %v", cfg.String(), err)
			continue
		}
		if got != cfg {
			t.Errorf("ParseConfig(%q) = %v, want %v", cfg.String(), got, cfg)
		}
	}
	if _, err := ParseConfig("HARDWARE"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("ParseConfig(HARDWARE) error = %v, want ErrInvalidArgument", err)
	}
	if info := RGBAF16.Info(); !info.ExtendedRange || info.BytesPerPixel != 8 {
		t.Errorf("RGBAF16.Info() = %+v, want extended range and 8 bytes", info)
	}
	if info := Alpha8.Info(); info.HasColor {
		t.Errorf("Alpha8.Info().HasColor = true, want false")
	}
}
