package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/vcam/format"
)

func TestEffectChain(t *testing.T) {
	chain := NewEffectChain()
	frame := createARGBFrame(2, 2, func(x, y int) uint32 { return RGB(1, 2, 3, 255) })

	t.Run("nil frame", func(t *testing.T) {
		result, err := chain.Apply(nil)
		assert.ErrorIs(t, err, ErrNilFrame)
		assert.Nil(t, result)
	})

	t.Run("empty chain clones", func(t *testing.T) {
		result, err := chain.Apply(frame)
		require.NoError(t, err)
		assert.NotSame(t, frame, result)
		assert.Equal(t, frame.Data(), result.Data())
	})

	t.Run("effects run in order", func(t *testing.T) {
		chain.AddEffect(NewSwapRGBEffect())
		chain.AddEffect(NewGrayscaleEffect())
		assert.Equal(t, 2, chain.GetEffectCount())

		result, err := chain.Apply(frame)
		require.NoError(t, err)

		// swapped (3, 2, 1) then (11*3 + 16*2 + 5*1) / 32
		assert.Equal(t, RGB(2, 2, 2, 255), argbAt(result, 0, 0))
		assert.Equal(t, RGB(1, 2, 3, 255), argbAt(frame, 0, 0), "input must be unchanged")
	})

	t.Run("errors carry the effect name", func(t *testing.T) {
		gray := createGrayFrame(2, 2, func(x, y int) uint8 { return 0 })

		_, err := chain.Apply(gray)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
		assert.Contains(t, err.Error(), "SwapRGB")
	})

	t.Run("clear", func(t *testing.T) {
		chain.Clear()
		assert.Equal(t, 0, chain.GetEffectCount())
	})
}

func TestHSLEffect(t *testing.T) {
	tests := []struct {
		name   string
		effect *HSLEffect
		input  uint32
		want   uint32
	}{
		{
			name:   "hue rotation keeps gray",
			effect: NewHSLEffect(90, 0, 0),
			input:  RGB(100, 100, 100, 255),
			want:   RGB(100, 100, 100, 255),
		},
		{
			name:   "luminance shift",
			effect: NewHSLEffect(0, 0, 10),
			input:  RGB(100, 100, 100, 7),
			want:   RGB(110, 110, 110, 7),
		},
		{
			name:   "luminance saturates",
			effect: NewHSLEffect(0, 0, 255),
			input:  RGB(100, 100, 100, 255),
			want:   RGB(255, 255, 255, 255),
		},
		{
			name:   "red rotated to green",
			effect: NewHSLEffect(120, 0, 0),
			input:  RGB(255, 0, 0, 255),
			want:   RGB(0, 254, 0, 255),
		},
		{
			name:   "desaturate",
			effect: NewHSLEffect(0, -255, 0),
			input:  RGB(255, 0, 0, 255),
			want:   RGB(127, 127, 127, 255),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := createARGBFrame(1, 1, func(x, y int) uint32 { return tt.input })

			result, err := tt.effect.Apply(frame)
			require.NoError(t, err)
			assert.Equal(t, tt.want, argbAt(result, 0, 0))
		})
	}

	assert.Equal(t, "HSL(+10,-5,+0)", NewHSLEffect(10, -5, 0).GetName())
}

func TestRGBToHSL(t *testing.T) {
	tests := []struct {
		r, g, b int
		h, s, l int
	}{
		{255, 0, 0, 0, 255, 127},
		{0, 255, 0, 120, 255, 127},
		{0, 0, 255, 240, 255, 127},
		{255, 255, 255, 0, 0, 255},
		{0, 0, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		h, s, l := rgbToHSL(tt.r, tt.g, tt.b)
		assert.Equal(t, []int{tt.h, tt.s, tt.l}, []int{h, s, l}, "rgb(%d,%d,%d)", tt.r, tt.g, tt.b)
	}
}

func TestTableEffects(t *testing.T) {
	tables := NewTables()
	frame := createARGBFrame(3, 1, func(x, y int) uint32 {
		v := []uint8{0, 128, 255}[x]
		return RGB(v, v, v, 200)
	})

	t.Run("neutral contrast", func(t *testing.T) {
		result, err := NewContrastEffect(tables, 0).Apply(frame)
		require.NoError(t, err)
		assert.Equal(t, frame.Data(), result.Data())
	})

	t.Run("full contrast", func(t *testing.T) {
		result, err := NewContrastEffect(tables, 255).Apply(frame)
		require.NoError(t, err)
		assert.Equal(t, RGB(0, 0, 0, 200), argbAt(result, 0, 0))
		assert.Equal(t, RGB(128, 128, 128, 200), argbAt(result, 1, 0))
		assert.Equal(t, RGB(255, 255, 255, 200), argbAt(result, 2, 0))
	})

	t.Run("gamma", func(t *testing.T) {
		bright, err := NewGammaEffect(tables, 100).Apply(frame)
		require.NoError(t, err)
		dark, err := NewGammaEffect(tables, -100).Apply(frame)
		require.NoError(t, err)

		assert.Greater(t, Red(argbAt(bright, 1, 0)), uint8(128))
		assert.Less(t, Red(argbAt(dark, 1, 0)), uint8(128))
		assert.Equal(t, uint8(200), Alpha(argbAt(bright, 1, 0)))
	})

	t.Run("settings are clamped", func(t *testing.T) {
		assert.Equal(t, "Contrast(+255)", NewContrastEffect(tables, 999).GetName())
		assert.Equal(t, "Gamma(-255)", NewGammaEffect(tables, -999).GetName())
	})
}

func TestMirrorEffect(t *testing.T) {
	frame := createARGBFrame(3, 2, func(x, y int) uint32 { return uint32(10*y + x) })

	tests := []struct {
		name       string
		horizontal bool
		vertical   bool
		want       [2][3]uint32
	}{
		{"horizontal", true, false, [2][3]uint32{{2, 1, 0}, {12, 11, 10}}},
		{"vertical", false, true, [2][3]uint32{{10, 11, 12}, {0, 1, 2}}},
		{"both", true, true, [2][3]uint32{{12, 11, 10}, {2, 1, 0}}},
		{"none", false, false, [2][3]uint32{{0, 1, 2}, {10, 11, 12}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewMirrorEffect(tt.horizontal, tt.vertical).Apply(frame)
			require.NoError(t, err)

			for y := 0; y < 2; y++ {
				for x := 0; x < 3; x++ {
					assert.Equal(t, tt.want[y][x], argbAt(result, x, y), "pixel (%d,%d)", x, y)
				}
			}
		})
	}
}

func TestEffectsRejectOtherFormats(t *testing.T) {
	tables := NewTables()
	rgb := NewFrame(format.NewGeometry(format.PixelFormatRGB24, 2, 2, testFPS))

	effects := []Effect{
		NewHSLEffect(1, 0, 0),
		NewContrastEffect(tables, 1),
		NewGammaEffect(tables, 1),
		NewGrayscaleEffect(),
		NewSwapRGBEffect(),
		NewMirrorEffect(true, false),
	}

	for _, effect := range effects {
		t.Run(effect.GetName(), func(t *testing.T) {
			_, err := effect.Apply(rgb)
			assert.ErrorIs(t, err, ErrUnsupportedFormat)

			_, err = effect.Apply(nil)
			assert.ErrorIs(t, err, ErrNilFrame)
		})
	}
}
