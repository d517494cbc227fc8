// Package factory provides a factory pattern implementation for creating
// converters and frame sources in vcam.
//
// The factory abstracts the creation of frame sources, allowing seamless
// switching between the simulated colour bar source (for testing) and the
// bitmap backed source without changing consuming code.
//
// # Configuration
//
// The factory supports configuration via environment variables:
//   - VCAM_YUV_COLOR_SPACE: AVG, BT601, BT709, BT2020 or SMPTE240M
//   - VCAM_YUV_COLOR_SPACE_TYPE: StudioSwing or FullSwing
//   - VCAM_SCALING_MODE: Fast or Linear
//   - VCAM_ASPECT_RATIO_MODE: Ignore, Keep, Expanding or Fit
//   - VCAM_CACHE_SLOTS: integer number of cached conversion plans (1-16)
//   - VCAM_USE_SIMULATION: "true" or "false" to enable simulation mode
//
// Names are matched case-insensitively. Unparsable or out-of-bounds values
// are logged as warnings and the default is kept.
//
// # Usage
//
//	// Create factory with default configuration
//	factory := NewConverterFactory()
//
//	// Create a converter for the camera output
//	conv, err := factory.CreateConverter(output)
//
//	// Create a bitmap backed source
//	src, err := factory.CreateFrameSource(output, "placeholder.bmp")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Testing Support
//
// For testing scenarios, use CreateSimulationForTesting() which creates a
// simulated source with a single cache slot. Functional options override
// individual settings:
//
//	func TestMyFeature(t *testing.T) {
//	    factory := NewConverterFactory()
//	    sim, err := factory.CreateSimulationForTesting(g, WithScalingMode(video.ScalingLinear))
//	    // Use sim in tests...
//	}
//
// # Mode Switching
//
// The factory supports runtime mode switching for integration testing:
//
//	factory := NewConverterFactory()
//	factory.SwitchToSimulation()  // Switch to simulation mode
//	factory.SwitchToReal()        // Switch back to bitmap mode
package factory
