package colorspace

import "errors"

// Error kinds shared with package bitmap. Every error returned by this
// package wraps one of them, so callers can test with errors.Is.
var (
	// ErrInvalidArgument is returned for malformed construction parameters,
	// wrong array lengths and unknown ids.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnsupported is returned when a conversion is requested for a color
	// model that has no RGB transform.
	ErrUnsupported = errors.New("unsupported")
)
