// Package limits provides centralized frame size and plan cache limits with
// validation functions. Frames, converters, the factory and frame sources
// all validate against the same constants.
//
// # Limits
//
//   - MaxFrameDimension (16384): the largest accepted width or height.
//
//   - MaxFrameBufferSize (512MB): the largest buffer one frame may own.
//     Frames whose aligned buffer would exceed it are not allocated.
//
//   - MaxCacheSlots (16): the most conversion plans one converter keeps.
//     Requests for further slots fail instead of growing the cache.
//
//   - DefaultCacheSlots (4): the slot cap used when none is configured.
//
// # Validation Functions
//
//	if err := limits.ValidateDimensions(width, height); err != nil {
//	    // ErrInvalidDimensions or ErrFrameTooLarge
//	}
//
// ValidateBufferSize and ValidateCacheSlots follow the same pattern. Every
// returned error wraps one of the package sentinels, so callers classify
// them with errors.Is.
package limits
