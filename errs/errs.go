// Package errs defines the sentinel errors returned by the la716 packages.
//
// Errors are wrapped with additional context using fmt.Errorf("%w: ...") so
// callers should compare with errors.Is rather than equality.
package errs

import "errors"

// Header errors.
var (
	// ErrInvalidHeader is returned when the header buffer is empty or too short
	// to hold the fixed 512-byte header region.
	ErrInvalidHeader = errors.New("invalid la716 header")
)

// Geometry errors.
var (
	// ErrMalformedGeometry is returned when the header fields cannot produce a
	// usable body layout: non-positive or non-integral spcpr, non-positive rlev,
	// non-finite depths, or endep < stdep.
	ErrMalformedGeometry = errors.New("malformed la716 body geometry")
	// ErrBodyTooLarge is returned when the derived body size exceeds the configured limit.
	ErrBodyTooLarge = errors.New("la716 body exceeds size limit")
)

// Body errors.
var (
	// ErrInvalidBody is returned when the curve count is outside [1, 40] or the
	// body buffer is empty or shorter than the derived body size.
	ErrInvalidBody = errors.New("invalid la716 body")
)

// Session errors.
var (
	ErrSessionState = errors.New("operation not allowed in current session state")
)

// Source errors.
var (
	ErrShortRead              = errors.New("short read from byte source")
	ErrNotFound               = errors.New("la716 file not found")
	ErrInvalidName            = errors.New("invalid la716 file name")
	ErrUnsupportedCompression = errors.New("unsupported compression type")
)
