package image

import "errors"

// Common errors for buffer operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrInvalidFormat is returned when the format is not recognized.
	ErrInvalidFormat = errors.New("image: invalid format")

	// ErrDataTooSmall is returned when an allocation cannot hold the pixels.
	ErrDataTooSmall = errors.New("image: data buffer too small")

	// ErrReleased is returned when a buffer is used after Release.
	ErrReleased = errors.New("image: buffer released")
)

// Buf is pixel storage with a fixed allocation. Rows are tightly packed:
// the stride is always width × bytes per pixel. The geometry can change
// with Reshape as long as the pixels fit in the allocation.
//
// Buf is not safe for concurrent mutation.
type Buf struct {
	alloc  []byte
	width  int
	height int
	format Format
}

// NewBuf allocates a zeroed buffer.
func NewBuf(width, height int, format Format) (*Buf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}
	return &Buf{
		alloc:  make([]byte, format.ImageBytes(width, height)),
		width:  width,
		height: height,
		format: format,
	}, nil
}

// FromRaw wraps data without copying. The whole slice becomes the
// allocation, so it may be larger than the pixels.
func FromRaw(data []byte, width, height int, format Format) (*Buf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}
	if len(data) < format.ImageBytes(width, height) {
		return nil, ErrDataTooSmall
	}
	return &Buf{alloc: data, width: width, height: height, format: format}, nil
}

// Width returns the width in pixels.
func (b *Buf) Width() int {
	return b.width
}

// Height returns the height in pixels.
func (b *Buf) Height() int {
	return b.height
}

// Stride returns the number of bytes per row.
func (b *Buf) Stride() int {
	return b.format.RowBytes(b.width)
}

// Format returns the pixel format.
func (b *Buf) Format() Format {
	return b.format
}

// ByteSize returns the number of bytes used by the pixels.
func (b *Buf) ByteSize() int {
	return b.format.ImageBytes(b.width, b.height)
}

// Cap returns the size of the allocation.
func (b *Buf) Cap() int {
	return len(b.alloc)
}

// Released reports whether the allocation has been taken away.
func (b *Buf) Released() bool {
	return b.alloc == nil
}

// Data returns the pixel bytes.
func (b *Buf) Data() []byte {
	return b.alloc[:b.ByteSize()]
}

// Reshape changes the geometry in place. Pixel bytes are reinterpreted,
// not converted.
func (b *Buf) Reshape(width, height int, format Format) error {
	if b.alloc == nil {
		return ErrReleased
	}
	if width <= 0 || height <= 0 {
		return ErrInvalidDimensions
	}
	if !format.IsValid() {
		return ErrInvalidFormat
	}
	if format.ImageBytes(width, height) > len(b.alloc) {
		return ErrDataTooSmall
	}
	b.width, b.height, b.format = width, height, format
	return nil
}

// RowBytes returns the bytes of row y, or nil if y is out of bounds.
func (b *Buf) RowBytes(y int) []byte {
	if y < 0 || y >= b.height {
		return nil
	}
	stride := b.Stride()
	return b.alloc[y*stride : (y+1)*stride]
}

// PixelOffset returns the byte offset of pixel (x, y), or -1 if the
// coordinates are out of bounds.
func (b *Buf) PixelOffset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return y*b.Stride() + x*b.format.BytesPerPixel()
}

// PixelBytes returns the bytes of pixel (x, y), or nil if out of bounds.
func (b *Buf) PixelBytes(x, y int) []byte {
	offset := b.PixelOffset(x, y)
	if offset < 0 {
		return nil
	}
	return b.alloc[offset : offset+b.format.BytesPerPixel()]
}

// Clear zeroes the whole allocation.
func (b *Buf) Clear() {
	clear(b.alloc)
}

// FillPixel writes the encoded pixel px to every pixel.
func (b *Buf) FillPixel(px []byte) {
	bpp := b.format.BytesPerPixel()
	if len(px) != bpp {
		return
	}
	data := b.Data()
	if len(data) == 0 {
		return
	}
	copy(data, px)
	// Double the filled prefix until the buffer is full.
	for n := bpp; n < len(data); n *= 2 {
		copy(data[n:], data[:n])
	}
}

// Release detaches and returns the allocation. The buffer keeps its
// geometry but has no storage afterwards.
func (b *Buf) Release() []byte {
	data := b.alloc
	b.alloc = nil
	return data
}
