package bitmap

import (
	"image"
	"image/color"
)

var _ image.Image = (*Bitmap)(nil)

// ColorModel returns color.NRGBAModel. Colors from At are in sRGB.
func (b *Bitmap) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds returns the rectangle (0, 0, Width, Height).
func (b *Bitmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width(), b.Height())
}

// At returns the sRGB color at (x, y) as color.NRGBA. Coordinates outside
// the bitmap and recycled bitmaps yield transparent black.
func (b *Bitmap) At(x, y int) color.Color {
	argb, err := b.Pixel(x, y)
	if err != nil {
		return color.NRGBA{}
	}
	return color.NRGBA{R: uint8(argb >> 16), G: uint8(argb >> 8), B: uint8(argb), A: uint8(argb >> 24)}
}

// componentRange returns the interval nativeImage maps onto [0, 1]. It is
// wider than [0, 1] only for RGBA_F16 bitmaps in extended-range spaces.
func (b *Bitmap) componentRange() (lo, hi float32) {
	if b.config != RGBAF16 || b.colorSpace == nil {
		return 0, 1
	}
	return float32(b.colorSpace.MinValue(0)), float32(b.colorSpace.MaxValue(0))
}

// nativeImage returns the pixels as unpremultiplied 16-bit components in
// the bitmap's own color space. Color components are mapped linearly from
// componentRange to [0, 1] and clamped; resampling commutes with that
// mapping. Alpha8 bitmaps yield black with their alpha.
func (b *Bitmap) nativeImage() *image.NRGBA64 {
	w, h := b.Width(), b.Height()
	lo, hi := b.componentRange()
	scale := 1 / (hi - lo)
	img := image.NewNRGBA64(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := b.load(b.buf.PixelBytes(x, y))
			img.SetNRGBA64(x, y, color.NRGBA64{
				R: unit16((c.R - lo) * scale),
				G: unit16((c.G - lo) * scale),
				B: unit16((c.B - lo) * scale),
				A: unit16(c.A),
			})
		}
	}
	return img
}

func unit16(v float32) uint16 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 0xffff
	}
	return uint16(v*0xffff + 0.5)
}
