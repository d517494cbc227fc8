package factory

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/opd-ai/vcam/colorconv"
	"github.com/opd-ai/vcam/format"
	"github.com/opd-ai/vcam/interfaces"
	"github.com/opd-ai/vcam/limits"
	"github.com/opd-ai/vcam/video"
)

var allEnvVars = []string{
	EnvYuvColorSpace,
	EnvYuvColorSpaceType,
	EnvScalingMode,
	EnvAspectRatioMode,
	EnvCacheSlots,
	EnvUseSimulation,
}

// clearEnv unsets every VCAM_* variable for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range allEnvVars {
		t.Setenv(key, "")
	}
}

func testGeometry() format.Geometry {
	return format.NewGeometry(format.PixelFormatNV12, 16, 8, format.Fraction{Num: 30, Den: 1})
}

// TestNewConverterFactory verifies default factory creation
func TestNewConverterFactory(t *testing.T) {
	clearEnv(t)

	factory := NewConverterFactory()
	require.NotNil(t, factory)

	config := factory.GetCurrentConfig()
	require.NotNil(t, config)

	assert.Equal(t, colorconv.YuvColorSpaceBT601, config.YuvColorSpace)
	assert.Equal(t, colorconv.StudioSwing, config.YuvColorSpaceType)
	assert.Equal(t, video.ScalingFast, config.ScalingMode)
	assert.Equal(t, video.AspectRatioIgnore, config.AspectRatioMode)
	assert.Equal(t, limits.DefaultCacheSlots, config.CacheSlots)
	assert.False(t, config.UseSimulation)
	assert.NoError(t, config.Validate())
}

// TestEnvironmentVariableParsing verifies environment variable handling
func TestEnvironmentVariableParsing(t *testing.T) {
	tests := []struct {
		name     string
		envKey   string
		envValue string
		check    func(t *testing.T, c *interfaces.ConverterConfig)
	}{
		{
			name:     "valid color space",
			envKey:   EnvYuvColorSpace,
			envValue: "bt709",
			check: func(t *testing.T, c *interfaces.ConverterConfig) {
				assert.Equal(t, colorconv.YuvColorSpaceBT709, c.YuvColorSpace)
			},
		},
		{
			name:     "invalid color space keeps default",
			envKey:   EnvYuvColorSpace,
			envValue: "bt999",
			check: func(t *testing.T, c *interfaces.ConverterConfig) {
				assert.Equal(t, colorconv.YuvColorSpaceBT601, c.YuvColorSpace)
			},
		},
		{
			name:     "full swing",
			envKey:   EnvYuvColorSpaceType,
			envValue: "full",
			check: func(t *testing.T, c *interfaces.ConverterConfig) {
				assert.Equal(t, colorconv.FullSwing, c.YuvColorSpaceType)
			},
		},
		{
			name:     "linear scaling",
			envKey:   EnvScalingMode,
			envValue: "Linear",
			check: func(t *testing.T, c *interfaces.ConverterConfig) {
				assert.Equal(t, video.ScalingLinear, c.ScalingMode)
			},
		},
		{
			name:     "invalid scaling keeps default",
			envKey:   EnvScalingMode,
			envValue: "cubic",
			check: func(t *testing.T, c *interfaces.ConverterConfig) {
				assert.Equal(t, video.ScalingFast, c.ScalingMode)
			},
		},
		{
			name:     "fit aspect ratio",
			envKey:   EnvAspectRatioMode,
			envValue: "fit",
			check: func(t *testing.T, c *interfaces.ConverterConfig) {
				assert.Equal(t, video.AspectRatioFit, c.AspectRatioMode)
			},
		},
		{
			name:     "valid cache slots",
			envKey:   EnvCacheSlots,
			envValue: "8",
			check: func(t *testing.T, c *interfaces.ConverterConfig) {
				assert.Equal(t, 8, c.CacheSlots)
			},
		},
		{
			name:     "cache slots above limit",
			envKey:   EnvCacheSlots,
			envValue: "17",
			check: func(t *testing.T, c *interfaces.ConverterConfig) {
				assert.Equal(t, limits.DefaultCacheSlots, c.CacheSlots)
			},
		},
		{
			name:     "zero cache slots",
			envKey:   EnvCacheSlots,
			envValue: "0",
			check: func(t *testing.T, c *interfaces.ConverterConfig) {
				assert.Equal(t, limits.DefaultCacheSlots, c.CacheSlots)
			},
		},
		{
			name:     "non numeric cache slots",
			envKey:   EnvCacheSlots,
			envValue: "many",
			check: func(t *testing.T, c *interfaces.ConverterConfig) {
				assert.Equal(t, limits.DefaultCacheSlots, c.CacheSlots)
			},
		},
		{
			name:     "simulation enabled",
			envKey:   EnvUseSimulation,
			envValue: "true",
			check: func(t *testing.T, c *interfaces.ConverterConfig) {
				assert.True(t, c.UseSimulation)
			},
		},
		{
			name:     "invalid simulation keeps default",
			envKey:   EnvUseSimulation,
			envValue: "maybe",
			check: func(t *testing.T, c *interfaces.ConverterConfig) {
				assert.False(t, c.UseSimulation)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.envKey, tt.envValue)

			config := NewConverterFactory().GetCurrentConfig()
			tt.check(t, config)
			assert.NoError(t, config.Validate())
		})
	}
}

func TestCreateConverter(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvScalingMode, "linear")
	t.Setenv(EnvCacheSlots, "2")

	factory := NewConverterFactory()

	conv, err := factory.CreateConverter(testGeometry())
	require.NoError(t, err)

	assert.Equal(t, testGeometry(), conv.OutputFormat())
	assert.Equal(t, video.ScalingLinear, conv.ScalingMode())
	assert.Equal(t, 2, conv.MaxCacheSlots())
}

func TestCreateFrameSource(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 255
	}

	path := filepath.Join(dir, "still.bmp")
	file, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, bmp.Encode(file, img))
	require.NoError(t, file.Close())

	tests := []struct {
		name       string
		simulation bool
		path       string
		wantSim    bool
		wantErr    bool
	}{
		{name: "simulation ignores path", simulation: true, wantSim: true},
		{name: "real with bitmap", path: path},
		{name: "real without path", wantErr: true},
		{name: "real with missing file", path: filepath.Join(dir, "missing.bmp"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory := NewConverterFactory()
			if tt.simulation {
				factory.SwitchToSimulation()
			}

			src, err := factory.CreateFrameSource(testGeometry(), tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			defer src.Close()

			assert.Equal(t, tt.wantSim, src.IsSimulation())

			frame, err := src.NextFrame()
			require.NoError(t, err)
			assert.Equal(t, format.PixelFormatNV12, frame.Format().Format)
		})
	}
}

func TestCreateFrameSourceWithConfig(t *testing.T) {
	clearEnv(t)

	factory := NewConverterFactory()

	config := factory.GetCurrentConfig()
	config.UseSimulation = true

	src, err := factory.CreateFrameSourceWithConfig(testGeometry(), "", config)
	require.NoError(t, err)
	assert.True(t, src.IsSimulation())
	assert.False(t, factory.IsUsingSimulation(), "factory default is untouched")

	config.CacheSlots = 0
	_, err = factory.CreateFrameSourceWithConfig(testGeometry(), "", config)
	assert.ErrorIs(t, err, limits.ErrInvalidCacheSlots)
}

func TestCreateSimulationForTesting(t *testing.T) {
	factory := NewConverterFactory()

	sim, err := factory.CreateSimulationForTesting(testGeometry(),
		WithScalingMode(video.ScalingLinear),
		WithAspectRatioMode(video.AspectRatioFit),
		WithCacheSlots(3),
		WithColorSpace(colorconv.YuvColorSpaceBT709, colorconv.FullSwing),
	)
	require.NoError(t, err)
	assert.True(t, sim.IsSimulation())

	stats := sim.GetStats()
	assert.Equal(t, "Linear", stats["scaling_mode"])

	_, err = factory.CreateSimulationForTesting(testGeometry(), WithCacheSlots(limits.MaxCacheSlots+1))
	assert.ErrorIs(t, err, limits.ErrInvalidCacheSlots)
}

func TestSwitchModes(t *testing.T) {
	clearEnv(t)

	factory := NewConverterFactory()
	assert.False(t, factory.IsUsingSimulation())

	factory.SwitchToSimulation()
	assert.True(t, factory.IsUsingSimulation())

	factory.SwitchToReal()
	assert.False(t, factory.IsUsingSimulation())
}

func TestGetCurrentConfigReturnsCopy(t *testing.T) {
	clearEnv(t)

	factory := NewConverterFactory()

	config := factory.GetCurrentConfig()
	config.CacheSlots = 9
	config.UseSimulation = true

	current := factory.GetCurrentConfig()
	assert.Equal(t, limits.DefaultCacheSlots, current.CacheSlots)
	assert.False(t, current.UseSimulation)
}

func TestUpdateConfig(t *testing.T) {
	clearEnv(t)

	factory := NewConverterFactory()

	assert.Error(t, factory.UpdateConfig(nil))

	invalid := factory.GetCurrentConfig()
	invalid.ScalingMode = video.ScalingMode(42)
	err := factory.UpdateConfig(invalid)
	assert.ErrorIs(t, err, interfaces.ErrInvalidScalingMode)
	assert.Equal(t, video.ScalingFast, factory.GetCurrentConfig().ScalingMode)

	updated := factory.GetCurrentConfig()
	updated.ScalingMode = video.ScalingLinear
	updated.UseSimulation = true
	require.NoError(t, factory.UpdateConfig(updated))

	updated.CacheSlots = 1
	current := factory.GetCurrentConfig()
	assert.Equal(t, video.ScalingLinear, current.ScalingMode)
	assert.Equal(t, limits.DefaultCacheSlots, current.CacheSlots, "factory keeps its own copy")
	assert.True(t, factory.IsUsingSimulation())
}
