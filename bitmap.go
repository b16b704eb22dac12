package bitmap

import (
	"errors"
	"fmt"

	"github.com/gogpu/bitmap/colorspace"
	"github.com/gogpu/bitmap/internal/image"
)

// Bitmap is a raster image: pixel storage plus the metadata needed to
// interpret it (config, alpha state, color space and density).
//
// A Bitmap is mutable or immutable for its whole life, and becomes recycled
// after Recycle. A recycled bitmap keeps its geometry and config but has no
// pixels. Bitmap is not safe for concurrent mutation.
type Bitmap struct {
	buf  *image.Buf
	pool *Pool

	config     Config
	alpha      alphaState
	reqPremul  bool
	colorSpace *colorspace.ColorSpace
	density    int
	mutable    bool
	recycled   bool
	generation uint64

	// connectors between sRGB and colorSpace, built on first use
	toSRGB   *colorspace.Connector
	fromSRGB *colorspace.Connector
}

// New allocates a mutable bitmap filled with transparent black, or opaque
// black when created without alpha.
func New(width, height int, config Config, opts ...Option) (*Bitmap, error) {
	o := collectOptions(opts)
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("bitmap: width and height must be > 0, got %dx%d: %w", width, height, ErrInvalidArgument)
	}
	if !config.IsValid() {
		return nil, fmt.Errorf("bitmap: %w: %w", errInvalidConfig(config), ErrInvalidArgument)
	}
	config = config.canonical()
	cs := o.colorSpace
	if config != Alpha8 && cs != nil {
		if err := checkColorSpace(cs); err != nil {
			return nil, err
		}
		cs = colorspace.Canonical(cs)
	}
	buf, err := o.pool.p.Get(width, height, config.format())
	if err != nil {
		return nil, fmt.Errorf("bitmap: %w: %w", err, ErrInvalidArgument)
	}
	b := &Bitmap{
		buf:        buf,
		pool:       o.pool,
		config:     config,
		alpha:      validAlpha(config, requestedAlpha(o.hasAlpha, o.premultiplied)),
		reqPremul:  o.premultiplied,
		colorSpace: config.spaceFor(cs),
		density:    o.density,
		mutable:    true,
	}
	if !o.hasAlpha && (config == ARGB8888 || config == RGBAF16) {
		b.fill(b.encodeARGB(0xff000000))
	}
	b.notifyChanged()
	return b, nil
}

func errInvalidConfig(c Config) error {
	return fmt.Errorf("unknown config %d", uint8(c))
}

// checkColorSpace accepts RGB spaces with parametric transfer functions.
func checkColorSpace(cs *colorspace.ColorSpace) error {
	if cs == nil {
		return fmt.Errorf("bitmap: the color space cannot be nil: %w", ErrInvalidArgument)
	}
	if cs.Model() != colorspace.ModelRGB {
		return fmt.Errorf("bitmap: only RGB color spaces are supported, got %s: %w", cs.Model(), ErrInvalidArgument)
	}
	if _, ok := cs.TransferParameters(); !ok {
		return fmt.Errorf("bitmap: the color space %q must use a parametric transfer function: %w", cs.Name(), ErrInvalidArgument)
	}
	return nil
}

func (b *Bitmap) checkRecycled(op string) error {
	if b.recycled {
		return fmt.Errorf("bitmap: can't call %s on a recycled bitmap: %w", op, ErrIllegalState)
	}
	return nil
}

func (b *Bitmap) checkMutable(op string) error {
	if !b.mutable {
		return fmt.Errorf("bitmap: can't call %s on an immutable bitmap: %w", op, ErrIllegalState)
	}
	return nil
}

// checkWritable runs the recycled then immutable checks.
func (b *Bitmap) checkWritable(op string) error {
	if err := b.checkRecycled(op); err != nil {
		return err
	}
	return b.checkMutable(op)
}

// Width returns the width in pixels. It stays valid after Recycle.
func (b *Bitmap) Width() int { return b.buf.Width() }

// Height returns the height in pixels. It stays valid after Recycle.
func (b *Bitmap) Height() int { return b.buf.Height() }

// Config returns the pixel format.
func (b *Bitmap) Config() Config { return b.config }

// RowBytes returns the number of bytes between rows.
func (b *Bitmap) RowBytes() int { return b.buf.Stride() }

// ByteCount returns the number of bytes used by the pixels, or 0 once the
// bitmap is recycled.
func (b *Bitmap) ByteCount() int {
	if b.recycled {
		Logger().Warn("bitmap: ByteCount called on a recycled bitmap")
		return 0
	}
	return b.buf.ByteSize()
}

// AllocationByteCount returns the size of the pixel storage, which can be
// larger than ByteCount after Reconfigure. It is 0 once the bitmap is
// recycled.
func (b *Bitmap) AllocationByteCount() int {
	if b.recycled {
		Logger().Warn("bitmap: AllocationByteCount called on a recycled bitmap")
		return 0
	}
	return b.buf.Cap()
}

// IsMutable reports whether the pixels and geometry can be changed.
func (b *Bitmap) IsMutable() bool { return b.mutable }

// IsRecycled reports whether Recycle has been called.
func (b *Bitmap) IsRecycled() bool { return b.recycled }

// HasAlpha reports whether the alpha channel is significant.
func (b *Bitmap) HasAlpha() bool { return b.alpha != alphaOpaque }

// IsPremultiplied reports whether color is stored premultiplied by alpha.
// Opaque bitmaps report false.
func (b *Bitmap) IsPremultiplied() bool { return b.alpha == alphaPremul }

// ColorSpace returns the color space, or nil for Alpha8 bitmaps.
func (b *Bitmap) ColorSpace() *colorspace.ColorSpace { return b.colorSpace }

// Recycle releases the pixel storage to the pool. It cannot be undone;
// later pixel access fails with ErrIllegalState. Recycling twice is a no-op.
func (b *Bitmap) Recycle() {
	if b.recycled {
		return
	}
	Logger().Debug("bitmap: recycle", "bytes", b.buf.Cap())
	b.recycled = true
	b.pool.p.Put(b.buf)
}

// Reconfigure changes the geometry and config without reallocating. The
// new pixels must fit in AllocationByteCount. Pixel contents are not
// converted and should be treated as undefined.
func (b *Bitmap) Reconfigure(width, height int, config Config) error {
	if err := b.checkRecycled("Reconfigure"); err != nil {
		return err
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("bitmap: width and height must be > 0, got %dx%d: %w", width, height, ErrInvalidArgument)
	}
	if !config.IsValid() {
		return fmt.Errorf("bitmap: %w: %w", errInvalidConfig(config), ErrInvalidArgument)
	}
	if err := b.checkMutable("Reconfigure"); err != nil {
		return err
	}
	config = config.canonical()
	if err := b.buf.Reshape(width, height, config.format()); err != nil {
		if errors.Is(err, image.ErrDataTooSmall) {
			return fmt.Errorf("bitmap: reconfigure to %dx%d %s needs %d bytes, allocation is %d: %w",
				width, height, config, config.format().ImageBytes(width, height), b.buf.Cap(), ErrInvalidArgument)
		}
		return fmt.Errorf("bitmap: reconfigure: %w: %w", err, ErrInvalidArgument)
	}

	alpha := b.alpha
	if b.config == RGB565 || alpha != alphaOpaque {
		alpha = requestedAlpha(true, b.reqPremul)
	}
	Logger().Debug("bitmap: reconfigure",
		"from", b.config, "to", config, "width", width, "height", height, "alpha", validAlpha(config, alpha))

	b.alpha = validAlpha(config, alpha)
	b.config = config
	b.setColorSpace(config.spaceFor(b.colorSpace))
	b.notifyChanged()
	return nil
}

// SetWidth is Reconfigure with a new width.
func (b *Bitmap) SetWidth(width int) error {
	return b.Reconfigure(width, b.Height(), b.config)
}

// SetHeight is Reconfigure with a new height.
func (b *Bitmap) SetHeight(height int) error {
	return b.Reconfigure(b.Width(), height, b.config)
}

// SetConfig is Reconfigure with a new config.
func (b *Bitmap) SetConfig(config Config) error {
	return b.Reconfigure(b.Width(), b.Height(), config)
}

// SetHasAlpha marks the alpha channel as significant or not. The stored
// pixels are unchanged. RGB565 bitmaps stay opaque.
func (b *Bitmap) SetHasAlpha(hasAlpha bool) error {
	if err := b.checkRecycled("SetHasAlpha"); err != nil {
		return err
	}
	b.alpha = validAlpha(b.config, requestedAlpha(hasAlpha, b.reqPremul))
	b.notifyChanged()
	return nil
}

// SetPremultiplied sets whether stored color is premultiplied. The stored
// pixels are reinterpreted, not converted. Opaque bitmaps remember the
// request for when alpha is restored.
func (b *Bitmap) SetPremultiplied(premultiplied bool) error {
	if err := b.checkRecycled("SetPremultiplied"); err != nil {
		return err
	}
	b.reqPremul = premultiplied
	if b.alpha != alphaOpaque {
		b.alpha = validAlpha(b.config, requestedAlpha(true, premultiplied))
	}
	b.notifyChanged()
	return nil
}

// SetColorSpace changes how the stored pixels are interpreted. The space
// must be an RGB space with a parametric transfer function, and it may not
// narrow the range of the current space. Immutable bitmaps accept it too.
func (b *Bitmap) SetColorSpace(cs *colorspace.ColorSpace) error {
	if err := b.checkRecycled("SetColorSpace"); err != nil {
		return err
	}
	if err := checkColorSpace(cs); err != nil {
		return err
	}
	if b.config == Alpha8 {
		return fmt.Errorf("bitmap: cannot set a color space on an %s bitmap: %w", Alpha8, ErrInvalidArgument)
	}
	next := b.config.spaceFor(colorspace.Canonical(cs))
	old := b.colorSpace
	for i := 0; i < old.ComponentCount(); i++ {
		if old.MinValue(i) < next.MinValue(i) {
			return fmt.Errorf("bitmap: the new color space cannot increase the minimum value of component %d: %w", i, ErrInvalidArgument)
		}
		if old.MaxValue(i) > next.MaxValue(i) {
			return fmt.Errorf("bitmap: the new color space cannot decrease the maximum value of component %d: %w", i, ErrInvalidArgument)
		}
	}
	b.setColorSpace(next)
	b.notifyChanged()
	return nil
}

func (b *Bitmap) setColorSpace(cs *colorspace.ColorSpace) {
	if b.colorSpace == cs {
		return
	}
	b.colorSpace = cs
	b.toSRGB, b.fromSRGB = nil, nil
}

func (b *Bitmap) toSRGBConnector() *colorspace.Connector {
	if b.toSRGB == nil {
		b.toSRGB = colorspace.Connect(b.colorSpace, colorspace.Get(colorspace.SRGB))
	}
	return b.toSRGB
}

func (b *Bitmap) fromSRGBConnector() *colorspace.Connector {
	if b.fromSRGB == nil {
		b.fromSRGB = colorspace.Connect(colorspace.Get(colorspace.SRGB), b.colorSpace)
	}
	return b.fromSRGB
}

// String returns a short description for logs.
func (b *Bitmap) String() string {
	name := "none"
	if b.colorSpace != nil {
		name = b.colorSpace.Name()
	}
	return fmt.Sprintf("Bitmap(%dx%d %s, alpha=%s, space=%s, mutable=%v, recycled=%v)",
		b.Width(), b.Height(), b.config, b.alpha, name, b.mutable, b.recycled)
}
