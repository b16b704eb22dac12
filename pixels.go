package bitmap

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/gogpu/bitmap/colorspace"
	"github.com/gogpu/bitmap/internal/color"
)

// load decodes the stored pixel p into an unpremultiplied color in the
// bitmap's own space.
func (b *Bitmap) load(p []byte) color.ColorF32 {
	switch b.config {
	case Alpha8:
		return color.ColorF32{A: float32(p[0]) / 255}
	case RGB565:
		return color.U8ToF32(color.Load565(p))
	case RGBAF16:
		c := color.LoadF16(p)
		if b.alpha == alphaPremul {
			c = color.UnpremulF32(c)
		}
		return c
	default:
		return color.U8ToF32(b.load8888(p))
	}
}

func (b *Bitmap) load8888(p []byte) color.ColorU8 {
	c := color.Load8888(p)
	if b.alpha == alphaPremul {
		c = color.UnpremulU8(c)
	}
	return c
}

// store encodes the unpremultiplied color c, given in the bitmap's own
// space, into p.
func (b *Bitmap) store(p []byte, c color.ColorF32) {
	switch b.config {
	case Alpha8:
		p[0] = color.Unit8(c.A)
	case RGB565:
		color.Store565(p, color.PremulU8(color.F32ToU8(c)))
	case RGBAF16:
		c = b.clampF32(c)
		if b.alpha == alphaPremul {
			c = color.PremulF32(c)
		}
		color.StoreF16(p, c)
	default:
		b.store8888(p, color.F32ToU8(c))
	}
}

func (b *Bitmap) store8888(p []byte, c color.ColorU8) {
	if b.alpha == alphaPremul {
		c = color.PremulU8(c)
	}
	color.Store8888(p, c)
}

// clampF32 clamps color components to the range of the color space and
// alpha to [0, 1].
func (b *Bitmap) clampF32(c color.ColorF32) color.ColorF32 {
	cs := b.colorSpace
	clampTo := func(v float32, i int) float32 {
		if math32.IsNaN(v) {
			return 0
		}
		return math32.Min(math32.Max(v, float32(cs.MinValue(i))), float32(cs.MaxValue(i)))
	}
	return color.ColorF32{
		R: clampTo(c.R, 0),
		G: clampTo(c.G, 1),
		B: clampTo(c.B, 2),
		A: math32.Min(math32.Max(c.A, 0), 1),
	}
}

// loadARGB decodes p to unpremultiplied sRGB 0xAARRGGBB.
func (b *Bitmap) loadARGB(p []byte) uint32 {
	switch {
	case b.config == Alpha8:
		return uint32(p[0]) << 24
	case b.config == RGB565 && b.colorSpace == colorspace.Get(colorspace.SRGB):
		return color.Load565(p).ARGB()
	case b.config == ARGB8888 && b.colorSpace == colorspace.Get(colorspace.SRGB):
		return b.load8888(p).ARGB()
	}
	c := b.load(p)
	v := b.toSRGBConnector().Transform([3]float64{float64(c.R), float64(c.G), float64(c.B)})
	return color.F32ToU8(color.ColorF32{R: float32(v[0]), G: float32(v[1]), B: float32(v[2]), A: c.A}).ARGB()
}

// storeARGB encodes unpremultiplied sRGB 0xAARRGGBB into p.
func (b *Bitmap) storeARGB(p []byte, argb uint32) {
	switch {
	case b.config == Alpha8:
		p[0] = uint8(argb >> 24)
		return
	case b.config == RGB565 && b.colorSpace == colorspace.Get(colorspace.SRGB):
		color.Store565(p, color.PremulU8(color.FromARGB(argb)))
		return
	case b.config == ARGB8888 && b.colorSpace == colorspace.Get(colorspace.SRGB):
		b.store8888(p, color.FromARGB(argb))
		return
	}
	c := color.U8ToF32(color.FromARGB(argb))
	v := b.fromSRGBConnector().Transform([3]float64{float64(c.R), float64(c.G), float64(c.B)})
	b.store(p, color.ColorF32{R: float32(v[0]), G: float32(v[1]), B: float32(v[2]), A: c.A})
}

// encodeARGB returns the stored form of an sRGB color.
func (b *Bitmap) encodeARGB(argb uint32) []byte {
	px := make([]byte, b.config.BytesPerPixel())
	b.storeARGB(px, argb)
	return px
}

func (b *Bitmap) fill(px []byte) {
	for _, v := range px {
		if v != 0 {
			b.buf.FillPixel(px)
			return
		}
	}
	b.buf.Clear()
}

func (b *Bitmap) checkXY(x, y int) error {
	if x < 0 || x >= b.Width() || y < 0 || y >= b.Height() {
		return fmt.Errorf("bitmap: pixel (%d, %d) outside %dx%d: %w", x, y, b.Width(), b.Height(), ErrOutOfBounds)
	}
	return nil
}

// Pixel returns the pixel at (x, y) as unpremultiplied sRGB 0xAARRGGBB.
// Alpha8 bitmaps return black with the stored alpha.
func (b *Bitmap) Pixel(x, y int) (uint32, error) {
	if err := b.checkRecycled("Pixel"); err != nil {
		return 0, err
	}
	if err := b.checkXY(x, y); err != nil {
		return 0, err
	}
	return b.loadARGB(b.buf.PixelBytes(x, y)), nil
}

// Color returns the unpremultiplied color at (x, y) in the bitmap's color
// space, or in sRGB for Alpha8 bitmaps.
func (b *Bitmap) Color(x, y int) (colorspace.Color, error) {
	if err := b.checkRecycled("Color"); err != nil {
		return colorspace.Color{}, err
	}
	if err := b.checkXY(x, y); err != nil {
		return colorspace.Color{}, err
	}
	p := b.buf.PixelBytes(x, y)
	if b.config == Alpha8 {
		return colorspace.Color{A: float32(p[0]) / 255, Space: colorspace.Get(colorspace.SRGB)}, nil
	}
	c := b.clampF32(b.load(p))
	return colorspace.Color{R: c.R, G: c.G, B: c.B, A: c.A, Space: b.colorSpace}, nil
}

// SetPixel writes unpremultiplied sRGB 0xAARRGGBB at (x, y), converting it
// to the bitmap's color space and premultiplying as needed.
func (b *Bitmap) SetPixel(x, y int, argb uint32) error {
	if err := b.checkWritable("SetPixel"); err != nil {
		return err
	}
	if err := b.checkXY(x, y); err != nil {
		return err
	}
	b.storeARGB(b.buf.PixelBytes(x, y), argb)
	b.notifyChanged()
	return nil
}

// SetColor writes c at (x, y), converting it from its own space to the
// bitmap's space.
func (b *Bitmap) SetColor(x, y int, c colorspace.Color) error {
	if err := b.checkWritable("SetColor"); err != nil {
		return err
	}
	if err := b.checkXY(x, y); err != nil {
		return err
	}
	b.store(b.buf.PixelBytes(x, y), b.convertIn(c))
	b.notifyChanged()
	return nil
}

// convertIn returns c in the bitmap's own space.
func (b *Bitmap) convertIn(c colorspace.Color) color.ColorF32 {
	if b.config == Alpha8 {
		return color.ColorF32{A: c.A}
	}
	v := [3]float64{float64(c.R), float64(c.G), float64(c.B)}
	if src := c.ColorSpace(); src != b.colorSpace {
		v = colorspace.Connect(src, b.colorSpace).Transform(v)
	}
	return color.ColorF32{R: float32(v[0]), G: float32(v[1]), B: float32(v[2]), A: c.A}
}

// checkPixelsAccess validates a block transfer between the bitmap and an
// array of n colors.
func (b *Bitmap) checkPixelsAccess(n, offset, stride, x, y, w, h int) error {
	if x < 0 || y < 0 {
		return fmt.Errorf("bitmap: x (%d) and y (%d) must be >= 0: %w", x, y, ErrOutOfBounds)
	}
	if w < 0 || h < 0 {
		return fmt.Errorf("bitmap: width (%d) and height (%d) must be >= 0: %w", w, h, ErrInvalidArgument)
	}
	if x+w > b.Width() {
		return fmt.Errorf("bitmap: x + width (%d) must be <= bitmap width (%d): %w", x+w, b.Width(), ErrOutOfBounds)
	}
	if y+h > b.Height() {
		return fmt.Errorf("bitmap: y + height (%d) must be <= bitmap height (%d): %w", y+h, b.Height(), ErrOutOfBounds)
	}
	if abs(stride) < w {
		return fmt.Errorf("bitmap: abs(stride) (%d) must be >= width (%d): %w", abs(stride), w, ErrInvalidArgument)
	}
	if offset < 0 || offset+w > n {
		return fmt.Errorf("bitmap: offset %d with width %d outside array of %d: %w", offset, w, n, ErrOutOfBounds)
	}
	last := offset + (h-1)*stride
	if last < 0 || last+w > n {
		return fmt.Errorf("bitmap: last scanline at %d outside array of %d: %w", last, n, ErrOutOfBounds)
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Pixels copies a w×h block starting at (x, y) into dst as unpremultiplied
// sRGB 0xAARRGGBB. Row r of the block lands at dst[offset+r*stride:];
// stride may be negative.
func (b *Bitmap) Pixels(dst []uint32, offset, stride, x, y, w, h int) error {
	if err := b.checkRecycled("Pixels"); err != nil {
		return err
	}
	if w == 0 || h == 0 {
		return nil
	}
	if err := b.checkPixelsAccess(len(dst), offset, stride, x, y, w, h); err != nil {
		return err
	}
	for r := 0; r < h; r++ {
		row := dst[offset+r*stride:]
		for c := 0; c < w; c++ {
			row[c] = b.loadARGB(b.buf.PixelBytes(x+c, y+r))
		}
	}
	return nil
}

// SetPixels writes a w×h block of unpremultiplied sRGB 0xAARRGGBB colors
// read from src, laid out as for Pixels.
func (b *Bitmap) SetPixels(src []uint32, offset, stride, x, y, w, h int) error {
	if err := b.checkWritable("SetPixels"); err != nil {
		return err
	}
	if w == 0 || h == 0 {
		return nil
	}
	if err := b.checkPixelsAccess(len(src), offset, stride, x, y, w, h); err != nil {
		return err
	}
	for r := 0; r < h; r++ {
		row := src[offset+r*stride:]
		for c := 0; c < w; c++ {
			b.storeARGB(b.buf.PixelBytes(x+c, y+r), row[c])
		}
	}
	b.notifyChanged()
	return nil
}

// EraseColor fills the bitmap with an unpremultiplied sRGB color.
func (b *Bitmap) EraseColor(argb uint32) error {
	if err := b.checkWritable("EraseColor"); err != nil {
		return err
	}
	b.fill(b.encodeARGB(argb))
	b.notifyChanged()
	return nil
}

// EraseColorLong fills the bitmap with a packed color. The color's space
// must be a registry RGB space with transfer parameters.
func (b *Bitmap) EraseColorLong(l colorspace.ColorLong) error {
	if err := b.checkWritable("EraseColorLong"); err != nil {
		return err
	}
	c, err := l.Color()
	if err != nil {
		return fmt.Errorf("bitmap: erase color: %w", err)
	}
	cs := c.ColorSpace()
	if cs.Model() != colorspace.ModelRGB {
		return fmt.Errorf("bitmap: erase color: %s model of %q has no RGB transform: %w: %w",
			cs.Model(), cs.Name(), ErrInvalidArgument, ErrUnsupported)
	}
	if _, ok := cs.TransferParameters(); !ok {
		return fmt.Errorf("bitmap: erase color: %q has no transfer parameters: %w: %w",
			cs.Name(), ErrInvalidArgument, ErrUnsupported)
	}
	px := make([]byte, b.config.BytesPerPixel())
	b.store(px, b.convertIn(c))
	b.fill(px)
	b.notifyChanged()
	return nil
}

// CopyPixelsToBuffer copies the stored pixel bytes into dst and returns the
// number of bytes copied.
func (b *Bitmap) CopyPixelsToBuffer(dst []byte) (int, error) {
	if err := b.checkRecycled("CopyPixelsToBuffer"); err != nil {
		return 0, err
	}
	if len(dst) < b.ByteCount() {
		return 0, fmt.Errorf("bitmap: buffer of %d bytes is not large enough for %d bytes of pixels: %w",
			len(dst), b.ByteCount(), ErrInvalidArgument)
	}
	return copy(dst, b.buf.Data()), nil
}

// CopyPixelsFromBuffer replaces the stored pixel bytes with src. The bytes
// are not converted. It returns the number of bytes consumed.
func (b *Bitmap) CopyPixelsFromBuffer(src []byte) (int, error) {
	if err := b.checkWritable("CopyPixelsFromBuffer"); err != nil {
		return 0, err
	}
	if len(src) < b.ByteCount() {
		return 0, fmt.Errorf("bitmap: buffer of %d bytes is not large enough for %d bytes of pixels: %w",
			len(src), b.ByteCount(), ErrInvalidArgument)
	}
	n := copy(b.buf.Data(), src)
	b.notifyChanged()
	return n, nil
}
