// Package interfaces defines the abstractions shared by converters, frame
// sources and the factory in vcam.
//
// This package provides the interfaces that enable switching between the
// simulated and the bitmap backed frame source, together with the
// configuration both are built from.
//
// # Core Interfaces
//
// [IFrameSource] produces frames in a fixed geometry:
//
//	src, err := factory.NewConverterFactory().CreateFrameSource(g, path)
//	frame, err := src.NextFrame()
//	if err != nil {
//	    log.Printf("frame failed: %v", err)
//	}
//
// [IFrameConverter] is the subset of *video.Converter a pipeline needs,
// so stages can be tested against fakes.
//
// # Configuration
//
// [ConverterConfig] carries the colour space, scaling, aspect ratio and
// cache settings. Validate rejects unknown enum values and cache slot
// counts outside limits.MaxCacheSlots; Apply and NewConverter configure a
// *video.Converter from it:
//
//	config := &ConverterConfig{
//	    YuvColorSpace:     colorconv.YuvColorSpaceBT709,
//	    YuvColorSpaceType: colorconv.FullSwing,
//	    ScalingMode:       video.ScalingLinear,
//	    AspectRatioMode:   video.AspectRatioFit,
//	    CacheSlots:        2,
//	}
//	conv, err := config.NewConverter(output)
//
// # Errors
//
// Validation errors wrap ErrInvalidColorSpace, ErrInvalidScalingMode,
// ErrInvalidAspectRatioMode or limits.ErrInvalidCacheSlots. Sources return
// ErrSourceClosed after Close.
package interfaces
