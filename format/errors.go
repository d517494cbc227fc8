package format

import "errors"

// Sentinel errors for format package operations.
var (
	// ErrUnknownFormat indicates a pixel format id or name not in the registry.
	ErrUnknownFormat = errors.New("unknown pixel format")

	// ErrInvalidGeometry indicates a non-positive width or height.
	ErrInvalidGeometry = errors.New("invalid frame geometry")

	// ErrInvalidFraction indicates a frame rate that could not be parsed.
	ErrInvalidFraction = errors.New("invalid fraction")
)
