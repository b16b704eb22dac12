package codec

import (
	"github.com/gogpu/bitmap"
	"github.com/gogpu/bitmap/colorspace"
)

// Options control decoding. Start from DefaultOptions; the zero value asks
// for ALPHA_8 output and unpremultiplied pixels.
type Options struct {
	// Config is the preferred pixel config. 16-bit sources requested as
	// ARGB_8888 decode to RGBA_F16.
	Config bitmap.Config

	// ColorSpace is the space to decode into. nil keeps the space of the
	// embedded profile, or sRGB without one.
	ColorSpace *colorspace.ColorSpace

	// Mutable requests a mutable result.
	Mutable bool

	// Premultiplied stores translucent pixels premultiplied.
	Premultiplied bool

	// Reuse is a bitmap whose storage the decoder should fill in place.
	// See bitmap.Adopt for the rules.
	Reuse *bitmap.Bitmap

	// SampleSize subsamples the image: each dimension is divided by it.
	// Values below 1 mean 1.
	SampleSize int

	// Density is the density of the source image, and TargetDensity the
	// density of the destination. With Scaled set and both non-zero, the
	// image is scaled by TargetDensity/Density.
	Density       int
	TargetDensity int
	Scaled        bool

	// JustBounds makes Decode fill in the Info without decoding pixels.
	JustBounds bool
}

// DefaultOptions returns the options used for a nil *Options.
func DefaultOptions() *Options {
	return &Options{
		Config:        bitmap.ARGB8888,
		Premultiplied: true,
		Scaled:        true,
	}
}

// Info describes a decoded image or one read with DecodeBounds.
type Info struct {
	// Width and Height are the output size after sampling and scaling.
	Width, Height int

	// MimeType is the sniffed type, e.g. "image/png".
	MimeType string

	// Config is the config the pixels decode to.
	Config bitmap.Config

	// ColorSpace is the space the pixels decode to. It is nil for ALPHA_8.
	ColorSpace *colorspace.ColorSpace

	// HasICC reports whether the data embeds an ICC profile.
	HasICC bool
}

func (o *Options) sampleSize() int {
	if o.SampleSize < 1 {
		return 1
	}
	return o.SampleSize
}

// outputSize applies sampling and density scaling to a source size. scaled
// reports whether density scaling changed anything.
func (o *Options) outputSize(w, h int) (int, int, bool) {
	s := o.sampleSize()
	w, h = max(w/s, 1), max(h/s, 1)
	if !o.Scaled || o.Density == bitmap.DensityNone || o.TargetDensity == bitmap.DensityNone || o.Density == o.TargetDensity {
		return w, h, false
	}
	return max(bitmap.ScaleFromDensity(w, o.Density, o.TargetDensity), 1),
		max(bitmap.ScaleFromDensity(h, o.Density, o.TargetDensity), 1), true
}

// density returns the density recorded on the decoded bitmap.
func (o *Options) density(scaled bool) int {
	switch {
	case scaled:
		return o.TargetDensity
	case o.Density != bitmap.DensityNone:
		return o.Density
	default:
		return bitmap.DefaultDensity()
	}
}
