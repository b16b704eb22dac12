// Package image provides pixel storage for bitmaps: the catalog of pixel
// formats, a strided buffer with a fixed allocation and a pool that recycles
// allocations by size.
package image

// Format is a pixel storage format.
type Format uint8

const (
	// FormatAlpha8 stores only alpha, 1 byte per pixel.
	FormatAlpha8 Format = iota

	// FormatRGB565 stores opaque color in 16 bits, little-endian, with red
	// in the high 5 bits.
	FormatRGB565

	// FormatRGBA8888 stores R, G, B, A bytes.
	FormatRGBA8888

	// FormatRGBAF16 stores R, G, B, A as little-endian IEEE half floats.
	FormatRGBAF16

	formatCount
)

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// BytesPerPixel is the number of bytes per pixel.
	BytesPerPixel int

	// Channels is the number of stored channels.
	Channels int

	// HasColor is false for alpha-only formats.
	HasColor bool

	// HasAlpha reports whether the format stores alpha.
	HasAlpha bool

	// IsFloat reports half-float storage.
	IsFloat bool

	// BitsPerChannel is the widest channel size.
	BitsPerChannel int
}

var formatInfoTable = [formatCount]FormatInfo{
	FormatAlpha8: {
		BytesPerPixel:  1,
		Channels:       1,
		HasAlpha:       true,
		BitsPerChannel: 8,
	},
	FormatRGB565: {
		BytesPerPixel:  2,
		Channels:       3,
		HasColor:       true,
		BitsPerChannel: 6,
	},
	FormatRGBA8888: {
		BytesPerPixel:  4,
		Channels:       4,
		HasColor:       true,
		HasAlpha:       true,
		BitsPerChannel: 8,
	},
	FormatRGBAF16: {
		BytesPerPixel:  8,
		Channels:       4,
		HasColor:       true,
		HasAlpha:       true,
		IsFloat:        true,
		BitsPerChannel: 16,
	},
}

// Info returns the FormatInfo for this format.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// BytesPerPixel returns the number of bytes per pixel for this format.
func (f Format) BytesPerPixel() int {
	return f.Info().BytesPerPixel
}

// HasAlpha returns true if this format stores alpha.
func (f Format) HasAlpha() bool {
	return f.Info().HasAlpha
}

// HasColor returns false for alpha-only formats.
func (f Format) HasColor() bool {
	return f.Info().HasColor
}

// IsFloat returns true for half-float storage.
func (f Format) IsFloat() bool {
	return f.Info().IsFloat
}

func (f Format) String() string {
	switch f {
	case FormatAlpha8:
		return "Alpha8"
	case FormatRGB565:
		return "RGB565"
	case FormatRGBA8888:
		return "RGBA8888"
	case FormatRGBAF16:
		return "RGBAF16"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the format is a known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// RowBytes calculates the number of bytes needed for a row of the given width.
func (f Format) RowBytes(width int) int {
	return width * f.BytesPerPixel()
}

// ImageBytes calculates the total number of bytes needed for an image.
func (f Format) ImageBytes(width, height int) int {
	return f.RowBytes(width) * height
}
