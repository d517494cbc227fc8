package video

import "errors"

// Sentinel errors for video package operations.
// These errors enable reliable error classification using errors.Is().

// Conversion errors.
var (
	// ErrInvalidSourceFrame indicates a nil or empty source frame.
	ErrInvalidSourceFrame = errors.New("invalid source frame")

	// ErrInvalidOutputFormat indicates an unregistered output format.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrEmptyRect indicates a crop or destination rectangle with no area.
	ErrEmptyRect = errors.New("empty rectangle")

	// ErrCacheExhausted indicates a cache slot beyond the converter cap.
	ErrCacheExhausted = errors.New("conversion plan cache exhausted")
)

// Frame errors.
var (
	// ErrInvalidBitmap indicates a malformed or unsupported BMP stream.
	ErrInvalidBitmap = errors.New("invalid bitmap")

	// ErrInvalidFrame indicates an operation on an empty frame.
	ErrInvalidFrame = errors.New("invalid frame")
)

// Adjustment errors.
var (
	// ErrNilFrame indicates a nil frame passed to an effect.
	ErrNilFrame = errors.New("input frame cannot be nil")

	// ErrUnsupportedFormat indicates an effect input not in ARGB pack format.
	ErrUnsupportedFormat = errors.New("unsupported pixel format")
)
