package factory

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/vcam/colorconv"
	"github.com/opd-ai/vcam/format"
	"github.com/opd-ai/vcam/interfaces"
	"github.com/opd-ai/vcam/limits"
	"github.com/opd-ai/vcam/real"
	"github.com/opd-ai/vcam/testing"
	"github.com/opd-ai/vcam/video"
)

// Environment variables read by NewConverterFactory.
const (
	EnvYuvColorSpace     = "VCAM_YUV_COLOR_SPACE"
	EnvYuvColorSpaceType = "VCAM_YUV_COLOR_SPACE_TYPE"
	EnvScalingMode       = "VCAM_SCALING_MODE"
	EnvAspectRatioMode   = "VCAM_ASPECT_RATIO_MODE"
	EnvCacheSlots        = "VCAM_CACHE_SLOTS"
	EnvUseSimulation     = "VCAM_USE_SIMULATION"
)

// ConverterFactory creates converters and frame sources based on configuration.
// It is safe for concurrent use; all methods are protected by an internal mutex.
type ConverterFactory struct {
	mu            sync.RWMutex
	defaultConfig *interfaces.ConverterConfig
}

// TestConfigOption is a functional option for customizing test simulation configuration.
type TestConfigOption func(*interfaces.ConverterConfig)

// NewConverterFactory creates a new factory with default configuration
func NewConverterFactory() *ConverterFactory {
	defaultConfig := createDefaultConfig()
	applyEnvironmentOverrides(defaultConfig)
	logConfigurationInfo(defaultConfig)

	return &ConverterFactory{
		defaultConfig: defaultConfig,
	}
}

// createDefaultConfig initializes the default converter configuration.
//
// Default values:
//   - YuvColorSpace: BT601, the standard of SD webcams
//   - YuvColorSpaceType: StudioSwing, what most YUV consumers expect
//   - ScalingMode: Fast
//   - AspectRatioMode: Ignore
//   - CacheSlots: limits.DefaultCacheSlots
//   - UseSimulation: false; simulation must be explicitly enabled
func createDefaultConfig() *interfaces.ConverterConfig {
	return &interfaces.ConverterConfig{
		YuvColorSpace:     colorconv.YuvColorSpaceBT601,
		YuvColorSpaceType: colorconv.StudioSwing,
		ScalingMode:       video.ScalingFast,
		AspectRatioMode:   video.AspectRatioIgnore,
		CacheSlots:        limits.DefaultCacheSlots,
		UseSimulation:     false,
	}
}

// applyEnvironmentOverrides updates configuration based on environment variables.
// It checks for VCAM_* environment variables and overrides defaults if valid values are found.
func applyEnvironmentOverrides(config *interfaces.ConverterConfig) {
	parseEnumSetting(EnvYuvColorSpace, colorconv.ParseYuvColorSpace, &config.YuvColorSpace)
	parseEnumSetting(EnvYuvColorSpaceType, colorconv.ParseColorSpaceType, &config.YuvColorSpaceType)
	parseEnumSetting(EnvScalingMode, video.ParseScalingMode, &config.ScalingMode)
	parseEnumSetting(EnvAspectRatioMode, video.ParseAspectRatioMode, &config.AspectRatioMode)
	parseCacheSlotsSetting(config)
	parseSimulationSetting(config)
}

// parseEnumSetting stores the parsed value of envVar in target. Unset
// variables are ignored; unknown names log a warning and keep target.
func parseEnumSetting[T fmt.Stringer](envVar string, parse func(string) (T, error), target *T) {
	value := os.Getenv(envVar)
	if value == "" {
		return
	}

	parsed, err := parse(value)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function":    "parseEnumSetting",
			"env_var":     envVar,
			"value":       value,
			"error":       err.Error(),
			"using_value": (*target).String(),
		}).Warn("Failed to parse environment variable, using default")
		return
	}

	*target = parsed
}

// parseCacheSlotsSetting updates the CacheSlots config from VCAM_CACHE_SLOTS environment variable.
// It validates the value is within bounds [1, limits.MaxCacheSlots] and logs warnings for
// invalid values. Only updates config if parsing succeeds and value is within valid range.
func parseCacheSlotsSetting(config *interfaces.ConverterConfig) {
	if slotsStr := os.Getenv(EnvCacheSlots); slotsStr != "" {
		slots, err := strconv.Atoi(slotsStr)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"function":    "parseCacheSlotsSetting",
				"env_var":     EnvCacheSlots,
				"value":       slotsStr,
				"error":       err.Error(),
				"using_value": config.CacheSlots,
			}).Warn("Failed to parse VCAM_CACHE_SLOTS environment variable, using default")
			return
		}
		if err := limits.ValidateCacheSlots(slots); err != nil {
			logrus.WithFields(logrus.Fields{
				"function":    "parseCacheSlotsSetting",
				"env_var":     EnvCacheSlots,
				"value":       slots,
				"min":         1,
				"max":         limits.MaxCacheSlots,
				"using_value": config.CacheSlots,
			}).Warn("VCAM_CACHE_SLOTS value out of bounds, using default")
			return
		}
		config.CacheSlots = slots
	}
}

// parseSimulationSetting updates the UseSimulation config from VCAM_USE_SIMULATION environment variable.
// It safely parses the boolean value, logs a warning if parsing fails, and only updates config if parsing succeeds.
func parseSimulationSetting(config *interfaces.ConverterConfig) {
	if useSimStr := os.Getenv(EnvUseSimulation); useSimStr != "" {
		useSim, err := strconv.ParseBool(useSimStr)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"function":    "parseSimulationSetting",
				"env_var":     EnvUseSimulation,
				"value":       useSimStr,
				"error":       err.Error(),
				"using_value": config.UseSimulation,
			}).Warn("Failed to parse VCAM_USE_SIMULATION environment variable, using default")
			return
		}
		config.UseSimulation = useSim
	}
}

// logConfigurationInfo logs the final configuration settings for debugging purposes.
func logConfigurationInfo(config *interfaces.ConverterConfig) {
	logrus.WithFields(logrus.Fields{
		"function":          "NewConverterFactory",
		"yuv_color_space":   config.YuvColorSpace.String(),
		"color_space_type":  config.YuvColorSpaceType.String(),
		"scaling_mode":      config.ScalingMode.String(),
		"aspect_ratio_mode": config.AspectRatioMode.String(),
		"cache_slots":       config.CacheSlots,
		"use_simulation":    config.UseSimulation,
	}).Info("Created converter factory with configuration")
}

// CreateConverter creates a converter for output with the current configuration
func (f *ConverterFactory) CreateConverter(output format.Geometry) (*video.Converter, error) {
	config := f.GetCurrentConfig()

	logrus.WithFields(logrus.Fields{
		"function":     "CreateConverter",
		"output":       output.String(),
		"scaling_mode": config.ScalingMode.String(),
		"cache_slots":  config.CacheSlots,
	}).Info("Creating converter")

	return config.NewConverter(output)
}

// CreateFrameSource creates a frame source producing frames in g. The
// simulated source ignores bitmapPath; the real source requires it.
func (f *ConverterFactory) CreateFrameSource(g format.Geometry, bitmapPath string) (interfaces.IFrameSource, error) {
	return f.CreateFrameSourceWithConfig(g, bitmapPath, nil)
}

// CreateFrameSourceWithConfig creates a frame source with custom configuration.
// A nil config selects the factory default.
func (f *ConverterFactory) CreateFrameSourceWithConfig(g format.Geometry, bitmapPath string, config *interfaces.ConverterConfig) (interfaces.IFrameSource, error) {
	if config == nil {
		config = f.GetCurrentConfig()
	}

	logrus.WithFields(logrus.Fields{
		"function":       "CreateFrameSourceWithConfig",
		"geometry":       g.String(),
		"use_simulation": config.UseSimulation,
	}).Info("Creating frame source")

	if config.UseSimulation {
		logrus.WithFields(logrus.Fields{
			"function": "CreateFrameSourceWithConfig",
			"type":     "simulation",
		}).Info("Creating simulated frame source")

		sim, err := testing.NewSimulatedFrameSource(g, config)
		if err != nil {
			return nil, err
		}
		return sim, nil
	}

	if bitmapPath == "" {
		return nil, fmt.Errorf("bitmap path is required for real frame source implementation")
	}

	logrus.WithFields(logrus.Fields{
		"function": "CreateFrameSourceWithConfig",
		"type":     "real",
		"path":     bitmapPath,
	}).Info("Creating bitmap frame source")

	src, err := real.NewBitmapFrameSource(bitmapPath, g, config)
	if err != nil {
		return nil, err
	}
	return src, nil
}

// WithColorSpace sets the YUV standard and range for the test configuration.
func WithColorSpace(space colorconv.YuvColorSpace, t colorconv.ColorSpaceType) TestConfigOption {
	return func(c *interfaces.ConverterConfig) {
		c.YuvColorSpace = space
		c.YuvColorSpaceType = t
	}
}

// WithScalingMode sets the scaling mode for the test configuration.
func WithScalingMode(mode video.ScalingMode) TestConfigOption {
	return func(c *interfaces.ConverterConfig) {
		c.ScalingMode = mode
	}
}

// WithAspectRatioMode sets the aspect ratio mode for the test configuration.
func WithAspectRatioMode(mode video.AspectRatioMode) TestConfigOption {
	return func(c *interfaces.ConverterConfig) {
		c.AspectRatioMode = mode
	}
}

// WithCacheSlots sets the plan cache size for the test configuration.
func WithCacheSlots(slots int) TestConfigOption {
	return func(c *interfaces.ConverterConfig) {
		c.CacheSlots = slots
	}
}

// CreateSimulationForTesting creates a simulated frame source specifically for testing.
// It accepts optional TestConfigOption functions to override default test values.
// Default test configuration uses BT601 studio swing, Fast scaling, Ignore
// aspect ratio and a single cache slot.
func (f *ConverterFactory) CreateSimulationForTesting(g format.Geometry, opts ...TestConfigOption) (*testing.SimulatedFrameSource, error) {
	testConfig := &interfaces.ConverterConfig{
		YuvColorSpace:     colorconv.YuvColorSpaceBT601,
		YuvColorSpaceType: colorconv.StudioSwing,
		ScalingMode:       video.ScalingFast,
		AspectRatioMode:   video.AspectRatioIgnore,
		CacheSlots:        1,
		UseSimulation:     true,
	}

	// Apply optional overrides
	for _, opt := range opts {
		opt(testConfig)
	}

	logrus.WithFields(logrus.Fields{
		"function":          "CreateSimulationForTesting",
		"geometry":          g.String(),
		"scaling_mode":      testConfig.ScalingMode.String(),
		"aspect_ratio_mode": testConfig.AspectRatioMode.String(),
		"cache_slots":       testConfig.CacheSlots,
	}).Info("Creating simulation implementation for testing")

	return testing.NewSimulatedFrameSource(g, testConfig)
}

// SwitchToSimulation switches the configuration to use simulation
func (f *ConverterFactory) SwitchToSimulation() {
	f.mu.Lock()
	defer f.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"function": "SwitchToSimulation",
		"previous": f.defaultConfig.UseSimulation,
	}).Info("Switching factory to simulation mode")

	f.defaultConfig.UseSimulation = true
}

// SwitchToReal switches the configuration to use the bitmap source
func (f *ConverterFactory) SwitchToReal() {
	f.mu.Lock()
	defer f.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"function": "SwitchToReal",
		"previous": f.defaultConfig.UseSimulation,
	}).Info("Switching factory to real mode")

	f.defaultConfig.UseSimulation = false
}

// GetCurrentConfig returns a copy of the current default configuration
func (f *ConverterFactory) GetCurrentConfig() *interfaces.ConverterConfig {
	f.mu.RLock()
	defer f.mu.RUnlock()

	config := *f.defaultConfig
	return &config
}

// IsUsingSimulation returns true if the factory is configured for simulation
func (f *ConverterFactory) IsUsingSimulation() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.defaultConfig.UseSimulation
}

// UpdateConfig validates and installs a copy of config as the factory default
func (f *ConverterFactory) UpdateConfig(config *interfaces.ConverterConfig) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if err := config.Validate(); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "UpdateConfig",
			"error":    err.Error(),
		}).Warn("Rejected factory configuration")

		return fmt.Errorf("invalid config: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"function":         "UpdateConfig",
		"old_simulation":   f.defaultConfig.UseSimulation,
		"new_simulation":   config.UseSimulation,
		"old_scaling_mode": f.defaultConfig.ScalingMode.String(),
		"new_scaling_mode": config.ScalingMode.String(),
	}).Info("Updating factory configuration")

	updated := *config
	f.defaultConfig = &updated

	return nil
}
