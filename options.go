package bitmap

import (
	"github.com/gogpu/bitmap/colorspace"
	"github.com/gogpu/bitmap/internal/image"
)

// Option configures a Bitmap during creation.
//
// Example:
//
//	// Opaque Display P3 bitmap
//	b, err := bitmap.New(64, 64, bitmap.ARGB8888,
//	    bitmap.WithHasAlpha(false),
//	    bitmap.WithColorSpace(colorspace.Get(colorspace.DisplayP3)))
type Option func(*options)

type options struct {
	hasAlpha      bool
	premultiplied bool
	colorSpace    *colorspace.ColorSpace
	density       int
	pool          *Pool
}

func defaultOptions() options {
	return options{
		hasAlpha:      true,
		premultiplied: true,
		density:       DefaultDensity(),
		pool:          defaultPool,
	}
}

func collectOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithHasAlpha sets whether the bitmap carries alpha. Opaque ARGB8888 and
// RGBAF16 bitmaps start filled with opaque black. Ignored for RGB565.
func WithHasAlpha(hasAlpha bool) Option {
	return func(o *options) {
		o.hasAlpha = hasAlpha
	}
}

// WithPremultiplied sets whether color is stored premultiplied by alpha.
// The default is true.
func WithPremultiplied(premultiplied bool) Option {
	return func(o *options) {
		o.premultiplied = premultiplied
	}
}

// WithColorSpace sets the color space. It must be an RGB space with
// parametric transfer parameters. Defaults to sRGB.
func WithColorSpace(cs *colorspace.ColorSpace) Option {
	return func(o *options) {
		o.colorSpace = cs
	}
}

// WithDensity sets the density. Defaults to DefaultDensity().
func WithDensity(density int) Option {
	return func(o *options) {
		o.density = density
	}
}

// WithPool sets the pool pixel storage is taken from and returned to on
// Recycle.
func WithPool(p *Pool) Option {
	return func(o *options) {
		if p != nil {
			o.pool = p
		}
	}
}

// Pool recycles pixel storage between bitmaps of the same byte size.
// It is safe for concurrent use.
type Pool struct {
	p *image.Pool
}

// NewPool returns a pool that keeps at most maxPerSize allocations of each
// byte size. Zero means unlimited.
func NewPool(maxPerSize int) *Pool {
	return &Pool{p: image.NewPool(maxPerSize)}
}

// Pooled returns the number of pooled allocations of the given byte size.
func (p *Pool) Pooled(byteSize int) int {
	return p.p.Len(byteSize)
}

var defaultPool = &Pool{p: image.Default()}
