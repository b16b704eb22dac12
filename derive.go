package bitmap

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/transform"
	"golang.org/x/image/draw"

	"github.com/gogpu/bitmap/colorspace"
	pixel "github.com/gogpu/bitmap/internal/color"
)

// derived allocates a bitmap that inherits the color space, premultiplied
// request, density and pool of b.
func (b *Bitmap) derived(width, height int, config Config, hasAlpha bool) (*Bitmap, error) {
	return New(width, height, config,
		WithColorSpace(b.colorSpace),
		WithHasAlpha(hasAlpha),
		WithPremultiplied(b.reqPremul),
		WithDensity(b.density),
		WithPool(b.pool))
}

// Copy returns a new bitmap with the pixels of b converted to config.
// Color channels become black when either side is Alpha8, and copies into
// RGB565 are composited over black.
func (b *Bitmap) Copy(config Config, mutable bool) (*Bitmap, error) {
	if err := b.checkRecycled("Copy"); err != nil {
		return nil, err
	}
	if !config.IsValid() {
		return nil, fmt.Errorf("bitmap: copy: %w: %w", errInvalidConfig(config), ErrInvalidArgument)
	}
	dst, err := b.derived(b.Width(), b.Height(), config, b.HasAlpha())
	if err != nil {
		return nil, err
	}
	if dst.config == b.config && dst.alpha == b.alpha && dst.colorSpace == b.colorSpace {
		copy(dst.buf.Data(), b.buf.Data())
	} else {
		b.convertPixels(dst)
	}
	dst.mutable = mutable
	Logger().Debug("bitmap: copy", "from", b.config, "to", dst.config, "mutable", mutable)
	return dst, nil
}

// convertPixels writes every pixel of b into dst, which has the same size.
func (b *Bitmap) convertPixels(dst *Bitmap) {
	var conn *colorspace.Connector
	if b.colorSpace != nil && dst.colorSpace != nil && b.colorSpace != dst.colorSpace {
		conn = colorspace.Connect(b.colorSpace, dst.colorSpace)
	}
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			c := b.load(b.buf.PixelBytes(x, y))
			if conn != nil {
				v := conn.Transform([3]float64{float64(c.R), float64(c.G), float64(c.B)})
				c.R, c.G, c.B = float32(v[0]), float32(v[1]), float32(v[2])
			}
			dst.store(dst.buf.PixelBytes(x, y), c)
		}
	}
	dst.notifyChanged()
}

// ExtractAlpha returns a mutable Alpha8 bitmap holding the alpha of b.
// Opaque bitmaps yield fully opaque alpha.
func (b *Bitmap) ExtractAlpha() (*Bitmap, error) {
	if err := b.checkRecycled("ExtractAlpha"); err != nil {
		return nil, err
	}
	return b.Copy(Alpha8, true)
}

// SameAs reports whether other has the same dimensions, config and pixel
// bytes as b. Recycled bitmaps are never the same as anything.
func (b *Bitmap) SameAs(other *Bitmap) bool {
	if other == nil || b.recycled || other.recycled {
		return false
	}
	if b == other {
		return true
	}
	if b.Width() != other.Width() || b.Height() != other.Height() || b.config != other.config {
		return false
	}
	return bytes.Equal(b.buf.Data(), other.buf.Data())
}

// CreateBitmapFromColors returns an immutable bitmap built from a block of
// unpremultiplied sRGB 0xAARRGGBB colors. Row r is read from
// colors[offset+r*stride:]; stride may be negative.
func CreateBitmapFromColors(colors []uint32, offset, stride, width, height int, config Config, opts ...Option) (*Bitmap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("bitmap: width and height must be > 0, got %dx%d: %w", width, height, ErrInvalidArgument)
	}
	if abs(stride) < width {
		return nil, fmt.Errorf("bitmap: abs(stride) (%d) must be >= width (%d): %w", abs(stride), width, ErrInvalidArgument)
	}
	last := offset + (height-1)*stride
	n := len(colors)
	if offset < 0 || offset+width > n || last < 0 || last+width > n {
		return nil, fmt.Errorf("bitmap: colors [%d, %d) with stride %d outside array of %d: %w",
			offset, last+width, stride, n, ErrOutOfBounds)
	}
	b, err := New(width, height, config, opts...)
	if err != nil {
		return nil, err
	}
	if err := b.SetPixels(colors, offset, stride, 0, 0, width, height); err != nil {
		return nil, err
	}
	b.mutable = false
	return b, nil
}

// CreateBitmap returns the w×h region of src at (x, y), transformed by m
// when it is non-nil. filter selects bilinear over nearest-neighbor
// sampling. The result is a new mutable bitmap, except that an immutable
// src is returned as is when the region covers it and m is nil or the
// identity.
func CreateBitmap(src *Bitmap, x, y, width, height int, m *Matrix, filter bool) (*Bitmap, error) {
	if x < 0 || y < 0 {
		return nil, fmt.Errorf("bitmap: x (%d) and y (%d) must be >= 0: %w", x, y, ErrInvalidArgument)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("bitmap: width and height must be > 0, got %dx%d: %w", width, height, ErrInvalidArgument)
	}
	if x+width > src.Width() {
		return nil, fmt.Errorf("bitmap: x + width (%d) must be <= source width (%d): %w", x+width, src.Width(), ErrInvalidArgument)
	}
	if y+height > src.Height() {
		return nil, fmt.Errorf("bitmap: y + height (%d) must be <= source height (%d): %w", y+height, src.Height(), ErrInvalidArgument)
	}
	if src.recycled {
		return nil, fmt.Errorf("bitmap: cannot use a recycled source: %w", ErrInvalidArgument)
	}
	identity := m == nil || m.IsIdentity()
	if !src.mutable && identity && x == 0 && y == 0 && width == src.Width() && height == src.Height() {
		return src, nil
	}

	if identity {
		return src.cropped(x, y, width, height)
	}
	return src.transformed(image.Rect(x, y, x+width, y+height), *m, filter)
}

func (b *Bitmap) cropped(x, y, width, height int) (*Bitmap, error) {
	dst, err := b.derived(width, height, b.config, b.HasAlpha())
	if err != nil {
		return nil, err
	}
	bpp := b.config.BytesPerPixel()
	for r := 0; r < height; r++ {
		copy(dst.buf.RowBytes(r), b.buf.RowBytes(y+r)[x*bpp:(x+width)*bpp])
	}
	return dst, nil
}

// rectStaysRect reports whether m maps axis-aligned rectangles to
// axis-aligned rectangles.
func (m Matrix) rectStaysRect() bool {
	return (m.B == 0 && m.D == 0) || (m.A == 0 && m.E == 0)
}

// transformed draws the region r of b through m into a new bitmap sized to
// the transformed bounds. Rotations and skews need alpha around the
// content, so RGB565 and Alpha8 sources then produce ARGB8888.
func (b *Bitmap) transformed(r image.Rectangle, m Matrix, filter bool) (*Bitmap, error) {
	bounds := m.mapRect(float64(r.Dx()), float64(r.Dy()))
	if bounds.Empty() {
		return nil, fmt.Errorf("bitmap: transform maps %v to an empty bitmap: %w", r.Size(), ErrInvalidArgument)
	}
	config := b.config
	hasAlpha := b.HasAlpha()
	if !m.rectStaysRect() {
		hasAlpha = true
		if config != ARGB8888 && config != RGBAF16 {
			config = ARGB8888
		}
	}
	dst, err := b.derived(bounds.Dx(), bounds.Dy(), config, hasAlpha)
	if err != nil {
		return nil, err
	}

	s2d := Translate(-float64(bounds.Min.X), -float64(bounds.Min.Y)).
		Multiply(m).
		Multiply(Translate(-float64(r.Min.X), -float64(r.Min.Y)))
	var interp draw.Interpolator = draw.NearestNeighbor
	if filter {
		interp = draw.BiLinear
	}
	canvas := image.NewRGBA64(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	interp.Transform(canvas, s2d.aff3(), b.nativeImage(), r, draw.Src, nil)
	lo, hi := b.componentRange()
	dst.storeImage(canvas, lo, hi)
	return dst, nil
}

// storeImage writes img into b. The components of img are in the bitmap's
// own color space, mapped from [lo, hi] to [0, 1] as nativeImage does. img
// must have b's bounds at the origin.
func (b *Bitmap) storeImage(img image.Image, lo, hi float32) {
	span := (hi - lo) / 0xffff
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			c := color.NRGBA64Model.Convert(img.At(x, y)).(color.NRGBA64)
			if c.A == 0 {
				b.store(b.buf.PixelBytes(x, y), pixel.ColorF32{})
				continue
			}
			b.store(b.buf.PixelBytes(x, y), pixel.ColorF32{
				R: lo + float32(c.R)*span,
				G: lo + float32(c.G)*span,
				B: lo + float32(c.B)*span,
				A: float32(c.A) / 0xffff,
			})
		}
	}
	b.notifyChanged()
}

// CreateScaledBitmap returns src scaled to width×height. filter selects
// bilinear over nearest-neighbor sampling. The result is mutable, except
// that an immutable src that already has the requested size is returned
// as is.
func CreateScaledBitmap(src *Bitmap, width, height int, filter bool) (*Bitmap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("bitmap: width and height must be > 0, got %dx%d: %w", width, height, ErrInvalidArgument)
	}
	if src.recycled {
		return nil, fmt.Errorf("bitmap: cannot use a recycled source: %w", ErrInvalidArgument)
	}
	if !src.mutable && width == src.Width() && height == src.Height() {
		return src, nil
	}
	dst, err := src.derived(width, height, src.config, src.HasAlpha())
	if err != nil {
		return nil, err
	}

	lo, hi := src.componentRange()
	if src.config == RGBAF16 {
		// 16 bits per channel over the whole extended range
		var interp draw.Interpolator = draw.NearestNeighbor
		if filter {
			interp = draw.BiLinear
		}
		canvas := image.NewRGBA64(image.Rect(0, 0, width, height))
		interp.Scale(canvas, canvas.Bounds(), src.nativeImage(), src.Bounds(), draw.Src, nil)
		dst.storeImage(canvas, lo, hi)
	} else {
		resample := transform.NearestNeighbor
		if filter {
			resample = transform.Linear
		}
		dst.storeImage(transform.Resize(src.nativeImage(), width, height, resample), lo, hi)
	}
	return dst, nil
}
