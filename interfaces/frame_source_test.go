package interfaces

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/vcam/colorconv"
	"github.com/opd-ai/vcam/format"
	"github.com/opd-ai/vcam/limits"
	"github.com/opd-ai/vcam/video"
)

var _ IFrameConverter = (*video.Converter)(nil)

func validConfig() ConverterConfig {
	return ConverterConfig{
		YuvColorSpace:     colorconv.YuvColorSpaceBT601,
		YuvColorSpaceType: colorconv.StudioSwing,
		ScalingMode:       video.ScalingFast,
		AspectRatioMode:   video.AspectRatioIgnore,
		CacheSlots:        limits.DefaultCacheSlots,
	}
}

func TestConverterConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *ConverterConfig)
		wantErr error
	}{
		{
			name:   "valid defaults",
			modify: func(c *ConverterConfig) {},
		},
		{
			name: "valid linear fit",
			modify: func(c *ConverterConfig) {
				c.ScalingMode = video.ScalingLinear
				c.AspectRatioMode = video.AspectRatioFit
				c.CacheSlots = limits.MaxCacheSlots
			},
		},
		{
			name:    "unknown color space",
			modify:  func(c *ConverterConfig) { c.YuvColorSpace = colorconv.YuvColorSpace(99) },
			wantErr: ErrInvalidColorSpace,
		},
		{
			name:    "unknown range type",
			modify:  func(c *ConverterConfig) { c.YuvColorSpaceType = colorconv.ColorSpaceType(7) },
			wantErr: ErrInvalidColorSpace,
		},
		{
			name:    "unknown scaling mode",
			modify:  func(c *ConverterConfig) { c.ScalingMode = video.ScalingMode(5) },
			wantErr: ErrInvalidScalingMode,
		},
		{
			name:    "unknown aspect mode",
			modify:  func(c *ConverterConfig) { c.AspectRatioMode = video.AspectRatioMode(-1) },
			wantErr: ErrInvalidAspectRatioMode,
		},
		{
			name:    "zero cache slots",
			modify:  func(c *ConverterConfig) { c.CacheSlots = 0 },
			wantErr: limits.ErrInvalidCacheSlots,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			tt.modify(&config)

			err := config.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConverterConfigNewConverter(t *testing.T) {
	config := validConfig()
	config.YuvColorSpace = colorconv.YuvColorSpaceBT709
	config.YuvColorSpaceType = colorconv.FullSwing
	config.ScalingMode = video.ScalingLinear
	config.AspectRatioMode = video.AspectRatioKeep
	config.CacheSlots = 2

	output := format.NewGeometry(format.PixelFormatNV12, 64, 48, format.Fraction{Num: 30, Den: 1})
	conv, err := config.NewConverter(output)
	require.NoError(t, err)

	assert.Equal(t, output, conv.OutputFormat())
	assert.Equal(t, colorconv.YuvColorSpaceBT709, conv.YuvColorSpace())
	assert.Equal(t, colorconv.FullSwing, conv.YuvColorSpaceType())
	assert.Equal(t, video.ScalingLinear, conv.ScalingMode())
	assert.Equal(t, video.AspectRatioKeep, conv.AspectRatioMode())
	assert.Equal(t, 2, conv.MaxCacheSlots())

	config.CacheSlots = 0
	_, err = config.NewConverter(output)
	assert.ErrorIs(t, err, limits.ErrInvalidCacheSlots)
}
