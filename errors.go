package bitmap

import (
	"errors"

	"github.com/gogpu/bitmap/colorspace"
)

// Error kinds. Every error returned by this module wraps at least one of
// them; test with errors.Is.
var (
	// ErrInvalidArgument reports malformed parameters: bad geometry,
	// unsupported color spaces, short arrays or allocations.
	ErrInvalidArgument = colorspace.ErrInvalidArgument

	// ErrUnsupported reports a conversion with no defined transform.
	ErrUnsupported = colorspace.ErrUnsupported

	// ErrIllegalState reports an operation on a recycled or immutable bitmap.
	ErrIllegalState = errors.New("illegal state")

	// ErrOutOfBounds reports a pixel coordinate or array offset outside the
	// valid range.
	ErrOutOfBounds = errors.New("out of bounds")
)
