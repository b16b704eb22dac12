// Package bitmap provides color-managed raster bitmaps for Go.
//
// # Overview
//
// A Bitmap is pixel storage in one of a few configs (ALPHA_8, RGB_565,
// ARGB_8888, RGBA_F16) plus the metadata needed to interpret it: alpha
// state, color space and density. Pixel accessors convert between the
// stored encoding and unpremultiplied sRGB or any color space from the
// colorspace package.
//
// # Quick Start
//
//	import "github.com/gogpu/bitmap"
//
//	b, err := bitmap.New(64, 64, bitmap.ARGB8888,
//	    bitmap.WithColorSpace(colorspace.Get(colorspace.DisplayP3)))
//	if err != nil {
//	    return err
//	}
//	defer b.Recycle()
//
//	b.EraseColor(0xff336699)
//	argb, _ := b.Pixel(0, 0) // back in sRGB
//
// # Lifecycle
//
// Bitmaps from New are mutable. Bitmaps built from color arrays are
// immutable, and so is anything passed through Copy with mutable=false.
// Writes to an immutable or recycled bitmap fail with ErrIllegalState.
// Recycle returns the storage to a Pool; the width, height and config
// remain queryable afterwards.
//
// Reconfigure reuses the existing allocation for a new geometry or config
// as long as it fits, and Adopt lets a decoder fill a mutable bitmap in
// place.
//
// # Errors
//
// Failures wrap one of ErrInvalidArgument, ErrIllegalState, ErrOutOfBounds
// or ErrUnsupported; test them with errors.Is.
//
// # Architecture
//
// The library is organized into:
//   - Public API: Bitmap, Config, Matrix, Frame, Pool
//   - colorspace: color spaces, connectors and packed colors
//   - codec: decoding and encoding through image.Decode
//   - shader: gradients evaluated in a chosen color space
//   - Internal: image (storage and pooling), color (pixel encodings),
//     matrix (3x3 math)
//
// # Coordinate System
//
// Uses standard raster coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
package bitmap

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
