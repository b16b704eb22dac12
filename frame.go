package bitmap

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/bitmap/colorspace"
	pixel "github.com/gogpu/bitmap/internal/color"
)

// Frame is decoded image content waiting to become a Bitmap.
//
// Pixels holds Height rows of Width pixels, tightly packed in the storage
// encoding of Config, premultiplied when Premultiplied and HasAlpha are set.
type Frame struct {
	Width, Height int
	Config        Config
	ColorSpace    *colorspace.ColorSpace
	HasAlpha      bool
	Premultiplied bool
	Density       int
	Pixels        []byte
}

func (f *Frame) validate() error {
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("bitmap: frame size must be > 0, got %dx%d: %w", f.Width, f.Height, ErrInvalidArgument)
	}
	if !f.Config.IsValid() {
		return fmt.Errorf("bitmap: frame: %w: %w", errInvalidConfig(f.Config), ErrInvalidArgument)
	}
	if need := f.Config.format().ImageBytes(f.Width, f.Height); len(f.Pixels) < need {
		return fmt.Errorf("bitmap: frame has %d bytes of pixels, need %d: %w", len(f.Pixels), need, ErrInvalidArgument)
	}
	if f.Config != Alpha8 && f.ColorSpace != nil {
		return checkColorSpace(f.ColorSpace)
	}
	return nil
}

// Adopt turns f into a bitmap. When reuse is a mutable bitmap whose
// allocation can hold the frame, its storage is overwritten and reuse
// itself is returned with all of its metadata taken from f. An immutable
// reuse bitmap is ignored. A recycled one, or one that is too small, is an
// error.
func Adopt(f *Frame, reuse *Bitmap, mutable bool) (*Bitmap, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}
	config := f.Config.canonical()
	if reuse != nil {
		if reuse.recycled {
			return nil, fmt.Errorf("bitmap: cannot reuse a recycled bitmap: %w", ErrInvalidArgument)
		}
		if !reuse.mutable {
			Logger().Warn("bitmap: unable to reuse an immutable bitmap, allocating a new one")
			reuse = nil
		}
	}
	if reuse == nil {
		b, err := New(f.Width, f.Height, config,
			WithColorSpace(f.ColorSpace),
			WithHasAlpha(f.HasAlpha),
			WithPremultiplied(f.Premultiplied),
			WithDensity(f.Density))
		if err != nil {
			return nil, err
		}
		copy(b.buf.Data(), f.Pixels)
		b.mutable = mutable
		return b, nil
	}

	if err := reuse.buf.Reshape(f.Width, f.Height, config.format()); err != nil {
		return nil, fmt.Errorf("bitmap: reuse bitmap of %d bytes cannot hold a %dx%d %s frame: %w",
			reuse.buf.Cap(), f.Width, f.Height, config, ErrInvalidArgument)
	}
	cs := f.ColorSpace
	if cs != nil && config != Alpha8 {
		cs = colorspace.Canonical(cs)
	}
	reuse.config = config
	reuse.alpha = validAlpha(config, requestedAlpha(f.HasAlpha, f.Premultiplied))
	reuse.reqPremul = f.Premultiplied
	reuse.setColorSpace(config.spaceFor(cs))
	reuse.density = f.Density
	reuse.mutable = true
	copy(reuse.buf.Data(), f.Pixels)
	reuse.notifyChanged()
	Logger().Debug("bitmap: reused allocation", "bytes", reuse.buf.Cap(), "width", f.Width, "height", f.Height)
	return reuse, nil
}

// FrameFromImage converts img, whose colors are encoded in src, into a
// frame of config whose colors are encoded in dst. A nil space means sRGB.
// The frame has alpha unless the image's color model cannot carry it.
func FrameFromImage(img image.Image, config Config, src, dst *colorspace.ColorSpace, premultiplied bool) (*Frame, error) {
	if !config.IsValid() {
		return nil, fmt.Errorf("bitmap: %w: %w", errInvalidConfig(config), ErrInvalidArgument)
	}
	config = config.canonical()
	if src == nil {
		src = colorspace.Get(colorspace.SRGB)
	}
	if dst != nil && config != Alpha8 {
		if err := checkColorSpace(dst); err != nil {
			return nil, err
		}
		dst = colorspace.Canonical(dst)
	}
	dst = config.spaceFor(dst)

	hasAlpha := modelHasAlpha(img.ColorModel())
	r := img.Bounds()
	if r.Empty() {
		return nil, fmt.Errorf("bitmap: empty image: %w", ErrInvalidArgument)
	}
	enc := &Bitmap{
		config:     config,
		alpha:      validAlpha(config, requestedAlpha(hasAlpha, premultiplied)),
		colorSpace: dst,
	}
	f := &Frame{
		Width:         r.Dx(),
		Height:        r.Dy(),
		Config:        config,
		ColorSpace:    dst,
		HasAlpha:      enc.alpha != alphaOpaque,
		Premultiplied: premultiplied,
		Density:       DefaultDensity(),
		Pixels:        make([]byte, config.format().ImageBytes(r.Dx(), r.Dy())),
	}

	convert := colorConverter(img.ColorModel(), src, dst)
	bpp := config.BytesPerPixel()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := color.NRGBA64Model.Convert(img.At(x, y)).(color.NRGBA64)
			off := ((y-r.Min.Y)*f.Width + (x - r.Min.X)) * bpp
			enc.store(f.Pixels[off:off+bpp], convert(c))
		}
	}
	return f, nil
}

// colorConverter returns the per-pixel conversion from src to dst. Decoding
// 8-bit sRGB into linear sRGB goes through the lookup table.
func colorConverter(model color.Model, src, dst *colorspace.ColorSpace) func(color.NRGBA64) pixel.ColorF32 {
	alpha := func(c color.NRGBA64) float32 { return float32(c.A) / 0xffff }
	if dst == nil {
		return func(c color.NRGBA64) pixel.ColorF32 { return pixel.ColorF32{A: alpha(c)} }
	}
	linear := dst == colorspace.Get(colorspace.LinearSRGB) || dst == colorspace.Get(colorspace.LinearExtendedSRGB)
	if src == colorspace.Get(colorspace.SRGB) && linear && is8Bit(model) {
		return func(c color.NRGBA64) pixel.ColorF32 {
			return pixel.ColorF32{
				R: pixel.DecodeSRGB8(uint8(c.R >> 8)),
				G: pixel.DecodeSRGB8(uint8(c.G >> 8)),
				B: pixel.DecodeSRGB8(uint8(c.B >> 8)),
				A: alpha(c),
			}
		}
	}
	conn := colorspace.Connect(src, dst)
	return func(c color.NRGBA64) pixel.ColorF32 {
		v := conn.Transform([3]float64{float64(c.R) / 0xffff, float64(c.G) / 0xffff, float64(c.B) / 0xffff})
		return pixel.ColorF32{R: float32(v[0]), G: float32(v[1]), B: float32(v[2]), A: alpha(c)}
	}
}

// modelHasAlpha reports whether colors of m may be translucent. A palette
// has alpha only if one of its entries does.
func modelHasAlpha(m color.Model) bool {
	switch m {
	case color.GrayModel, color.Gray16Model, color.YCbCrModel, color.CMYKModel:
		return false
	}
	if p, ok := m.(color.Palette); ok {
		for _, c := range p {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return true
			}
		}
		return false
	}
	return true
}

func is8Bit(m color.Model) bool {
	switch m {
	case color.RGBAModel, color.NRGBAModel, color.GrayModel, color.YCbCrModel, color.NYCbCrAModel, color.CMYKModel:
		return true
	}
	return false
}
