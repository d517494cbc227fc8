package interfaces

import (
	"errors"
	"fmt"

	"github.com/opd-ai/vcam/colorconv"
	"github.com/opd-ai/vcam/format"
	"github.com/opd-ai/vcam/limits"
	"github.com/opd-ai/vcam/video"
)

// IFrameConverter defines the conversion operations a frame pipeline needs.
// *video.Converter implements it.
type IFrameConverter interface {
	// Convert returns src converted into the output geometry
	Convert(src *video.Frame) (*video.Frame, error)

	// SetOutputFormat sets the output geometry
	SetOutputFormat(output format.Geometry)

	// OutputFormat returns the output geometry
	OutputFormat() format.Geometry

	// Begin starts a batch of conversions using consecutive cache slots
	Begin() bool

	// End closes the current batch
	End()

	// Reset drops every cached plan
	Reset()
}

// IFrameSource defines a producer of camera frames.
// This abstraction allows switching between simulated and file backed sources.
type IFrameSource interface {
	// NextFrame returns the next frame in the source geometry
	NextFrame() (*video.Frame, error)

	// Geometry returns the geometry of produced frames
	Geometry() format.Geometry

	// Close releases the source; later NextFrame calls fail
	Close() error

	// IsSimulation returns true if this is a simulation implementation
	IsSimulation() bool
}

var (
	// ErrInvalidColorSpace indicates an unknown YUV standard or range type
	ErrInvalidColorSpace = errors.New("invalid color space")

	// ErrInvalidScalingMode indicates an unknown scaling mode
	ErrInvalidScalingMode = errors.New("invalid scaling mode")

	// ErrInvalidAspectRatioMode indicates an unknown aspect ratio mode
	ErrInvalidAspectRatioMode = errors.New("invalid aspect ratio mode")

	// ErrSourceClosed indicates a frame request on a closed source
	ErrSourceClosed = errors.New("frame source closed")
)

// ConverterConfig holds configuration shared by converters and frame sources
type ConverterConfig struct {
	// YuvColorSpace selects the YUV standard
	YuvColorSpace colorconv.YuvColorSpace

	// YuvColorSpaceType selects studio or full swing coding
	YuvColorSpaceType colorconv.ColorSpaceType

	// ScalingMode selects the resampling filter
	ScalingMode video.ScalingMode

	// AspectRatioMode selects how the source aspect ratio is honoured
	AspectRatioMode video.AspectRatioMode

	// CacheSlots caps the number of cached conversion plans
	CacheSlots int

	// UseSimulation determines whether to use simulated or file backed sources
	UseSimulation bool
}

// Validate checks every field against its known values and bounds.
func (c *ConverterConfig) Validate() error {
	if c.YuvColorSpace.String() == "Unknown" {
		return fmt.Errorf("%w: standard %d", ErrInvalidColorSpace, c.YuvColorSpace)
	}

	if c.YuvColorSpaceType.String() == "Unknown" {
		return fmt.Errorf("%w: type %d", ErrInvalidColorSpace, c.YuvColorSpaceType)
	}

	if c.ScalingMode.String() == "Unknown" {
		return fmt.Errorf("%w: %d", ErrInvalidScalingMode, c.ScalingMode)
	}

	if c.AspectRatioMode.String() == "Unknown" {
		return fmt.Errorf("%w: %d", ErrInvalidAspectRatioMode, c.AspectRatioMode)
	}

	return limits.ValidateCacheSlots(c.CacheSlots)
}

// Apply configures a converter with the colour, scaling, aspect and cache
// settings.
func (c *ConverterConfig) Apply(conv *video.Converter) error {
	if err := c.Validate(); err != nil {
		return err
	}

	conv.SetColorSpace(c.YuvColorSpace, c.YuvColorSpaceType)
	conv.SetScalingMode(c.ScalingMode)
	conv.SetAspectRatioMode(c.AspectRatioMode)

	return conv.SetMaxCacheSlots(c.CacheSlots)
}

// NewConverter creates a converter for output configured with c.
func (c *ConverterConfig) NewConverter(output format.Geometry) (*video.Converter, error) {
	conv := video.NewConverter(output)
	if err := c.Apply(conv); err != nil {
		return nil, err
	}

	return conv, nil
}
