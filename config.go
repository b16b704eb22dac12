package bitmap

import (
	"fmt"

	"github.com/gogpu/bitmap/colorspace"
	"github.com/gogpu/bitmap/internal/image"
)

// Config is the pixel format of a bitmap.
type Config uint8

const (
	// Alpha8 stores a single 8-bit alpha channel.
	Alpha8 Config = iota
	// RGB565 stores opaque color in 16 bits.
	RGB565
	// ARGB4444 is accepted for compatibility. Bitmaps requested with it
	// are created as ARGB8888.
	ARGB4444
	// ARGB8888 stores 8 bits per channel in R, G, B, A byte order.
	ARGB8888
	// RGBAF16 stores a half float per channel.
	RGBAF16
)

func (c Config) String() string {
	switch c {
	case Alpha8:
		return "ALPHA_8"
	case RGB565:
		return "RGB_565"
	case ARGB4444:
		return "ARGB_4444"
	case ARGB8888:
		return "ARGB_8888"
	case RGBAF16:
		return "RGBA_F16"
	default:
		return fmt.Sprintf("Config(%d)", uint8(c))
	}
}

// ParseConfig returns the Config named by s, as printed by String.
func ParseConfig(s string) (Config, error) {
	for c := Alpha8; c <= RGBAF16; c++ {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("bitmap: unknown config %q: %w", s, ErrInvalidArgument)
}

// IsValid reports whether c is a known config.
func (c Config) IsValid() bool {
	return c <= RGBAF16
}

// canonical maps legacy configs onto the stored ones.
func (c Config) canonical() Config {
	if c == ARGB4444 {
		return ARGB8888
	}
	return c
}

func (c Config) format() image.Format {
	switch c.canonical() {
	case Alpha8:
		return image.FormatAlpha8
	case RGB565:
		return image.FormatRGB565
	case RGBAF16:
		return image.FormatRGBAF16
	default:
		return image.FormatRGBA8888
	}
}

// ConfigInfo describes the storage of a config.
type ConfigInfo struct {
	BytesPerPixel int
	HasColor      bool
	HasAlpha      bool
	// ExtendedRange reports storage that can hold values outside [0, 1].
	ExtendedRange bool
}

// Info returns the storage description of c.
func (c Config) Info() ConfigInfo {
	fi := c.format().Info()
	return ConfigInfo{
		BytesPerPixel: fi.BytesPerPixel,
		HasColor:      fi.HasColor,
		HasAlpha:      fi.HasAlpha,
		ExtendedRange: fi.IsFloat,
	}
}

// BytesPerPixel returns the storage size of one pixel.
func (c Config) BytesPerPixel() int {
	return c.format().BytesPerPixel()
}

// spaceFor returns the color space a bitmap of config c stores for the
// requested space: none for Alpha8, sRGB when nothing was requested, and
// the extended or narrow variant of sRGB depending on the storage range.
func (c Config) spaceFor(cs *colorspace.ColorSpace) *colorspace.ColorSpace {
	if c == Alpha8 {
		return nil
	}
	if cs == nil {
		cs = colorspace.Get(colorspace.SRGB)
	}
	if c == RGBAF16 {
		switch cs {
		case colorspace.Get(colorspace.SRGB):
			return colorspace.Get(colorspace.ExtendedSRGB)
		case colorspace.Get(colorspace.LinearSRGB):
			return colorspace.Get(colorspace.LinearExtendedSRGB)
		}
		return cs
	}
	switch cs {
	case colorspace.Get(colorspace.ExtendedSRGB):
		return colorspace.Get(colorspace.SRGB)
	case colorspace.Get(colorspace.LinearExtendedSRGB):
		return colorspace.Get(colorspace.LinearSRGB)
	}
	return cs
}

// alphaState is the interpretation of the alpha channel.
type alphaState uint8

const (
	alphaPremul alphaState = iota
	alphaUnpremul
	alphaOpaque
)

func (a alphaState) String() string {
	switch a {
	case alphaPremul:
		return "premul"
	case alphaUnpremul:
		return "unpremul"
	default:
		return "opaque"
	}
}

// validAlpha coerces a for config c: RGB565 is always opaque and Alpha8
// cannot be unpremultiplied.
func validAlpha(c Config, a alphaState) alphaState {
	switch c {
	case RGB565:
		return alphaOpaque
	case Alpha8:
		if a == alphaUnpremul {
			return alphaPremul
		}
	}
	return a
}

func requestedAlpha(hasAlpha, premultiplied bool) alphaState {
	switch {
	case !hasAlpha:
		return alphaOpaque
	case premultiplied:
		return alphaPremul
	default:
		return alphaUnpremul
	}
}
