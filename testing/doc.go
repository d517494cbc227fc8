// Package testing provides a simulated frame source for deterministic
// testing of vcam pipelines.
//
// # Overview
//
// SimulatedFrameSource mirrors a real camera source but generates its
// frames in memory: vertical colour bars that move one bar per frame,
// converted into the requested geometry with the configured converter
// settings. Tests verify pipelines without bitmap files or devices.
//
// # Simulation vs Real Implementation
//
//   - Simulation (this package): frames are generated from ColorBars and
//     every request is recorded in a frame log.
//
//   - Real (real package): frames come from a bitmap file converted once
//     into the output geometry.
//
// Both implementations conform to interfaces.IFrameSource, allowing
// switching via the factory package.
//
// # Usage
//
//	config := &interfaces.ConverterConfig{
//	    YuvColorSpace: colorconv.YuvColorSpaceBT601,
//	    CacheSlots:    1,
//	}
//	sim, err := testing.NewSimulatedFrameSource(geometry, config)
//
//	frame, err := sim.NextFrame()
//
//	// Verify requests via logs
//	log := sim.GetFrameLog()
//	if len(log) != 1 || !log[0].Success {
//	    t.Error("expected a generated frame")
//	}
//
// BarsFrame builds the raw PixelFormatARGBPack pattern directly for tests
// that need a known input frame.
//
// # Thread Safety
//
// All methods on SimulatedFrameSource are safe for concurrent use from
// multiple goroutines. Internal synchronization uses sync.RWMutex.
package testing
