package bitmap

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func TestImageInterface(t *testing.T) {
	b := mustNew(t, 3, 2, ARGB8888)
	if err := b.SetPixel(2, 1, 0x80ff8000); err != nil {
		t.Fatal(err)
	}

	if got := b.Bounds(); got != image.Rect(0, 0, 3, 2) {
		t.Errorf("Bounds() = %v, want (0,0)-(3,2)", got)
	}
	if b.ColorModel() != color.NRGBAModel {
		t.Error("ColorModel() is not NRGBAModel")
	}

	tests := []struct {
		name string
		x, y int
		want color.NRGBA
	}{
		{"set pixel", 2, 1, color.NRGBA{R: 0xff, G: 0x80, A: 0x80}},
		{"untouched", 0, 0, color.NRGBA{}},
		{"outside", 3, 0, color.NRGBA{}},
		{"negative", -1, -1, color.NRGBA{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.At(tt.x, tt.y); got != tt.want {
				t.Errorf("At(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestImageDraw(t *testing.T) {
	b := mustNew(t, 4, 4, RGB565)
	if err := b.EraseColor(0xff00ff00); err != nil {
		t.Fatal(err)
	}
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	draw.Draw(dst, dst.Bounds(), b, image.Point{}, draw.Src)
	if got := dst.RGBAAt(3, 3); got != (color.RGBA{G: 0xff, A: 0xff}) {
		t.Errorf("drawn RGBAAt(3, 3) = %v, want opaque green", got)
	}
}

func TestImageRecycled(t *testing.T) {
	b := mustNew(t, 2, 2, ARGB8888)
	if err := b.EraseColor(0xffffffff); err != nil {
		t.Fatal(err)
	}
	b.Recycle()
	if got := b.At(0, 0); got != (color.NRGBA{}) {
		t.Errorf("At() on recycled = %v, want transparent", got)
	}
	if got := b.Bounds(); got != image.Rect(0, 0, 2, 2) {
		t.Errorf("Bounds() on recycled = %v, want (0,0)-(2,2)", got)
	}
}

func TestNativeImage(t *testing.T) {
	b := mustNew(t, 1, 1, Alpha8)
	if err := b.EraseColor(0x40ffffff); err != nil {
		t.Fatal(err)
	}
	img := b.nativeImage()
	if got := img.NRGBA64At(0, 0); got != (color.NRGBA64{A: 0x4040}) {
		t.Errorf("NRGBA64At(0, 0) = %v, want black with alpha 0x4040", got)
	}

	tests := []struct {
		v    float32
		want uint16
	}{
		{-0.5, 0},
		{0, 0},
		{0.5, 0x8000},
		{1, 0xffff},
		{1.5, 0xffff},
	}
	for _, tt := range tests {
		if got := unit16(tt.v); got != tt.want {
			t.Errorf("unit16(%v) = %#04x, want %#04x", tt.v, got, tt.want)
		}
	}
}
