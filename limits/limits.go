// Package limits provides centralized frame and cache limits for the
// conversion engine. This ensures consistent validation across frames,
// converters and frame sources.
package limits

import (
	"errors"
	"fmt"
)

const (
	// MaxFrameDimension is the largest accepted frame width or height.
	MaxFrameDimension = 16384

	// MaxFrameBufferSize is the largest buffer a single frame may own (512MB).
	// An 8K ARGB64 frame needs about half of it.
	MaxFrameBufferSize = 512 * 1024 * 1024

	// MaxCacheSlots caps the number of conversion plans one converter keeps.
	MaxCacheSlots = 16

	// DefaultCacheSlots is the slot cap used when none is configured.
	DefaultCacheSlots = 4
)

var (
	// ErrInvalidDimensions indicates a zero or negative width or height
	ErrInvalidDimensions = errors.New("invalid frame dimensions")

	// ErrFrameTooLarge indicates a width or height above MaxFrameDimension
	ErrFrameTooLarge = errors.New("frame too large")

	// ErrBufferTooLarge indicates a buffer above MaxFrameBufferSize
	ErrBufferTooLarge = errors.New("frame buffer too large")

	// ErrInvalidCacheSlots indicates a slot count outside 1..MaxCacheSlots
	ErrInvalidCacheSlots = errors.New("invalid cache slot count")
)

// ValidateDimensions validates a frame size against MaxFrameDimension.
// Returns an error with context if either side is not positive or too large.
func ValidateDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width > MaxFrameDimension || height > MaxFrameDimension {
		return fmt.Errorf("%w: %dx%d exceeds limit %d", ErrFrameTooLarge, width, height, MaxFrameDimension)
	}
	return nil
}

// ValidateBufferSize validates a frame buffer size against MaxFrameBufferSize.
func ValidateBufferSize(size int) error {
	if size <= 0 {
		return fmt.Errorf("%w: buffer size %d", ErrInvalidDimensions, size)
	}
	if size > MaxFrameBufferSize {
		return fmt.Errorf("%w: size %d exceeds limit %d", ErrBufferTooLarge, size, MaxFrameBufferSize)
	}
	return nil
}

// ValidateCacheSlots validates a converter cache slot count.
func ValidateCacheSlots(slots int) error {
	if slots < 1 || slots > MaxCacheSlots {
		return fmt.Errorf("%w: %d not in 1..%d", ErrInvalidCacheSlots, slots, MaxCacheSlots)
	}
	return nil
}
