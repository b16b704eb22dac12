// Package codec decodes and encodes bitmaps through the standard image
// package.
//
// Decoding sniffs the format, reads any embedded ICC profile (PNG iCCP,
// JPEG APP2) and converts the pixels into the requested config and color
// space. PNG, JPEG, GIF, BMP, TIFF and WebP are registered.
package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG
	"io"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"  // register BMP
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register TIFF
	_ "golang.org/x/image/webp" // register WebP

	"github.com/gogpu/bitmap"
	"github.com/gogpu/bitmap/colorspace"
)

// Decode reads an image from r. A nil opts means DefaultOptions. With
// opts.JustBounds set, only the Info is filled in and the bitmap is nil.
func Decode(r io.Reader, opts *Options) (*bitmap.Bitmap, Info, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, Info{}, fmt.Errorf("codec: read: %w", err)
	}
	return DecodeBytes(data, opts)
}

// DecodeBounds returns the Info of the image in r without decoding pixels.
func DecodeBounds(r io.Reader) (Info, error) {
	opts := DefaultOptions()
	opts.JustBounds = true
	_, info, err := Decode(r, opts)
	return info, err
}

// DecodeBytes is Decode on an in-memory image.
func DecodeBytes(data []byte, opts *Options) (*bitmap.Bitmap, Info, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if len(data) == 0 {
		return nil, Info{}, fmt.Errorf("codec: empty data: %w", bitmap.ErrInvalidArgument)
	}
	if !opts.Config.IsValid() {
		return nil, Info{}, fmt.Errorf("codec: invalid config %v: %w", opts.Config, bitmap.ErrInvalidArgument)
	}
	kind, _ := filetype.Match(data)
	if kind == filetype.Unknown {
		return nil, Info{}, fmt.Errorf("codec: unrecognized image data: %w", bitmap.ErrUnsupported)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, Info{}, fmt.Errorf("codec: %s: %v: %w", kind.MIME.Value, err, bitmap.ErrUnsupported)
	}
	info := Info{MimeType: kind.MIME.Value}
	w, h, scaled := opts.outputSize(cfg.Width, cfg.Height)
	info.Width, info.Height = w, h

	src, hasICC := sourceSpace(kind.MIME.Value, data)
	info.HasICC = hasICC
	info.Config = outputConfig(opts.Config, cfg.ColorModel)
	dst := opts.ColorSpace
	if dst == nil {
		dst = src
	}
	info.ColorSpace = storedSpace(info.Config, dst)
	if opts.JustBounds {
		return nil, info, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, info, fmt.Errorf("codec: decode %s: %v: %w", kind.MIME.Value, err, bitmap.ErrInvalidArgument)
	}
	if sb := img.Bounds(); sb.Dx() != w || sb.Dy() != h {
		img = resample(img, w, h, scaled)
	}

	f, err := bitmap.FrameFromImage(img, info.Config, src, dst, opts.Premultiplied)
	if err != nil {
		return nil, info, err
	}
	if f.HasAlpha && opaqueEncoding(kind.MIME.Value, data) {
		f.HasAlpha = false
	}
	f.Density = opts.density(scaled)
	b, err := bitmap.Adopt(f, opts.Reuse, opts.Mutable)
	if err != nil {
		return nil, info, err
	}
	bitmap.Logger().Debug("codec: decoded",
		"mime", info.MimeType, "width", w, "height", h, "config", b.Config(), "colorspace", b.ColorSpace())
	return b, info, nil
}

// sourceSpace returns the color space the encoded pixels are in. Profiles
// that cannot be represented fall back to sRGB.
func sourceSpace(mime string, data []byte) (*colorspace.ColorSpace, bool) {
	srgb := colorspace.Get(colorspace.SRGB)
	profile, err := embeddedICC(mime, data)
	if err != nil {
		bitmap.Logger().Warn("codec: unreadable ICC profile, assuming sRGB", "mime", mime, "err", err)
		return srgb, true
	}
	if profile == nil {
		return srgb, false
	}
	cs, err := ColorSpaceFromICC(profile)
	if err != nil {
		bitmap.Logger().Warn("codec: unrecognized ICC profile, assuming sRGB", "mime", mime, "err", err)
		return srgb, true
	}
	return cs, true
}

// outputConfig picks the decoded config. Sources with 16 bits per channel
// keep their precision in RGBA_F16.
func outputConfig(preferred bitmap.Config, model color.Model) bitmap.Config {
	if preferred == bitmap.ARGB8888 || preferred == bitmap.ARGB4444 {
		switch model {
		case color.RGBA64Model, color.NRGBA64Model, color.Gray16Model:
			return bitmap.RGBAF16
		}
		return bitmap.ARGB8888
	}
	return preferred
}

// storedSpace mirrors the range rules bitmaps apply to their color space.
func storedSpace(config bitmap.Config, cs *colorspace.ColorSpace) *colorspace.ColorSpace {
	pairs := [][2]colorspace.Named{
		{colorspace.SRGB, colorspace.ExtendedSRGB},
		{colorspace.LinearSRGB, colorspace.LinearExtendedSRGB},
	}
	cs = colorspace.Canonical(cs)
	switch config {
	case bitmap.Alpha8:
		return nil
	case bitmap.RGBAF16:
		for _, p := range pairs {
			if cs == colorspace.Get(p[0]) {
				return colorspace.Get(p[1])
			}
		}
	default:
		for _, p := range pairs {
			if cs == colorspace.Get(p[1]) {
				return colorspace.Get(p[0])
			}
		}
	}
	return cs
}

// resample scales img to w×h. Density scaling filters; plain subsampling
// picks the nearest pixel.
func resample(img image.Image, w, h int, filter bool) image.Image {
	dst := image.NewRGBA64(image.Rect(0, 0, w, h))
	var interp draw.Interpolator = draw.NearestNeighbor
	if filter {
		interp = draw.ApproxBiLinear
	}
	interp.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
