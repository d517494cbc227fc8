package colorconv

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/vcam/format"
)

var bits8 = [3]int{8, 8, 8}

func TestRGB2YUVCoefficients(t *testing.T) {
	m := NewColorMatrix(RGB2YUV, YuvColorSpaceBT601, StudioSwing, bits8, bits8)

	want := [3][4]int64{
		{66, 129, 25, 4224},
		{-38, -74, 112, 32896},
		{112, -94, -18, 32896},
	}
	if diff := cmp.Diff(want, m.M); diff != "" {
		t.Errorf("RGB2YUV coefficients mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, uint(8), m.ColorShift)
	assert.Equal(t, [3]int64{16, 16, 16}, m.Min)
	assert.Equal(t, [3]int64{235, 240, 240}, m.Max)
}

func TestRGB2YUVExtremes(t *testing.T) {
	m := NewColorMatrix(RGB2YUV, YuvColorSpaceBT601, StudioSwing, bits8, bits8)

	y, u, v := m.Apply(255, 255, 255)
	assert.Equal(t, []int64{235, 128, 128}, []int64{y, u, v})

	y, u, v = m.Apply(0, 0, 0)
	assert.Equal(t, []int64{16, 128, 128}, []int64{y, u, v})
}

func TestYUV2RGBCoefficients(t *testing.T) {
	m := NewColorMatrix(YUV2RGB, YuvColorSpaceBT601, StudioSwing, bits8, bits8)

	want := [3][4]int64{
		{298, 0, 409, -56992},
		{298, -100, -208, 34784},
		{298, 516, 0, -70688},
	}
	if diff := cmp.Diff(want, m.M); diff != "" {
		t.Errorf("YUV2RGB coefficients mismatch (-want +got):\n%s", diff)
	}

	r, g, b := m.Apply(235, 128, 128)
	assert.Equal(t, []int64{255, 255, 255}, []int64{r, g, b})

	r, g, b = m.Apply(16, 128, 128)
	assert.Equal(t, []int64{0, 0, 0}, []int64{r, g, b})
}

func TestYUV2RGBClampsSaturatedColours(t *testing.T) {
	for _, space := range []YuvColorSpace{YuvColorSpaceBT601, YuvColorSpaceBT709, YuvColorSpaceBT2020} {
		m := NewColorMatrix(YUV2RGB, space, StudioSwing, bits8, bits8)

		for y := int64(0); y <= 255; y += 17 {
			for u := int64(0); u <= 255; u += 17 {
				for v := int64(0); v <= 255; v += 17 {
					r, g, b := m.Apply(y, u, v)
					for _, c := range []int64{r, g, b} {
						require.GreaterOrEqual(t, c, int64(0))
						require.LessOrEqual(t, c, int64(255))
					}
				}
			}
		}
	}
}

func TestRGB2YUVStaysInLegalRange(t *testing.T) {
	m := NewColorMatrix(RGB2YUV, YuvColorSpaceBT601, StudioSwing, bits8, bits8)

	for r := int64(0); r <= 255; r += 15 {
		for g := int64(0); g <= 255; g += 15 {
			for b := int64(0); b <= 255; b += 15 {
				y, u, v := m.Transform(r, g, b)
				require.True(t, y >= 16 && y <= 235, "y=%d for %d,%d,%d", y, r, g, b)
				require.True(t, u >= 16 && u <= 240, "u=%d for %d,%d,%d", u, r, g, b)
				require.True(t, v >= 16 && v <= 240, "v=%d for %d,%d,%d", v, r, g, b)
			}
		}
	}
}

func TestRGB2YUVStaysInLegalRangeAllDepths(t *testing.T) {
	inputs := [][3]int{{5, 6, 5}, {5, 5, 5}, bits8, {16, 16, 16}}
	outputs := []int{8, 10, 16}
	spaces := []YuvColorSpace{
		YuvColorSpaceAVG,
		YuvColorSpaceBT601,
		YuvColorSpaceBT709,
		YuvColorSpaceBT2020,
		YuvColorSpaceSMPTE240M,
	}

	for _, in := range inputs {
		for _, out := range outputs {
			for _, space := range spaces {
				for _, swing := range []ColorSpaceType{StudioSwing, FullSwing} {
					obits := [3]int{out, out, out}
					m := NewColorMatrix(RGB2YUV, space, swing, in, obits)

					rmax, gmax, bmax := maxValue(in[0]), maxValue(in[1]), maxValue(in[2])
					for i := int64(0); i <= 8; i++ {
						for j := int64(0); j <= 8; j++ {
							for k := int64(0); k <= 8; k++ {
								r, g, b := i*rmax/8, j*gmax/8, k*bmax/8
								x, y, z := m.Transform(r, g, b)
								for c, v := range []int64{x, y, z} {
									require.True(t, v >= m.Min[c] && v <= m.Max[c],
										"%s %s %v->%d: channel %d = %d outside [%d, %d] for %d,%d,%d",
										space, swing, in, out, c, v, m.Min[c], m.Max[c], r, g, b)
								}
							}
						}
					}
				}
			}
		}
	}
}

func TestABC2XYZRescale(t *testing.T) {
	m := NewColorMatrix(ABC2XYZ, YuvColorSpaceBT601, StudioSwing, [3]int{5, 6, 5}, bits8)

	assert.Equal(t, uint(8), m.ColorShift)
	assert.Equal(t, int64(2106), m.M[0][0])
	assert.Equal(t, int64(1036), m.M[1][1])
	assert.Equal(t, int64(2106), m.M[2][2])

	x, y, z := m.ApplyVector(31, 63, 31)
	assert.Equal(t, []int64{255, 255, 255}, []int64{x, y, z})

	x, y, z = m.ApplyVector(0, 0, 0)
	assert.Equal(t, []int64{0, 0, 0}, []int64{x, y, z})
}

func TestIdentityRescale(t *testing.T) {
	m := NewColorMatrix(ABC2XYZ, YuvColorSpaceBT601, StudioSwing, bits8, bits8)

	for v := int64(0); v <= 255; v++ {
		x, y, z := m.ApplyVector(v, v, v)
		require.Equal(t, []int64{v, v, v}, []int64{x, y, z})
		require.Equal(t, v, m.ApplyPoint(v))
	}
}

func TestGrayTransforms(t *testing.T) {
	t.Run("gray to rgb", func(t *testing.T) {
		m := NewColorMatrix(Gray2RGB, YuvColorSpaceBT601, StudioSwing, bits8, bits8)
		assert.Equal(t, int64(256), m.M[0][0])

		for v := int64(0); v <= 255; v++ {
			r, g, b := m.ApplyPoint3(v)
			require.Equal(t, []int64{v, v, v}, []int64{r, g, b})
		}
	})

	t.Run("rgb to gray", func(t *testing.T) {
		m := NewColorMatrix(RGB2Gray, YuvColorSpaceBT601, StudioSwing, bits8, bits8)
		assert.Equal(t, [4]int64{77, 150, 29, 128}, m.M[0])
		assert.Equal(t, int64(255), m.ApplyPoint1(255, 255, 255))
		assert.Equal(t, int64(0), m.ApplyPoint1(0, 0, 0))
	})

	t.Run("gray to yuv", func(t *testing.T) {
		m := NewColorMatrix(Gray2YUV, YuvColorSpaceBT601, StudioSwing, bits8, bits8)
		assert.Equal(t, int64(220), m.M[0][0])
		assert.Equal(t, int64(4224), m.M[0][3])

		y, u, v := m.ApplyPoint3(255)
		assert.Equal(t, []int64{235, 128, 128}, []int64{y, u, v})

		y, u, v = m.ApplyPoint3(0)
		assert.Equal(t, []int64{16, 128, 128}, []int64{y, u, v})
	})

	t.Run("yuv to gray", func(t *testing.T) {
		m := NewColorMatrix(YUV2Gray, YuvColorSpaceBT601, StudioSwing, bits8, bits8)
		assert.Equal(t, int64(298), m.M[0][0])
		assert.Equal(t, int64(-4641), m.M[0][3])
		assert.Equal(t, int64(255), m.ApplyPoint1(235, 128, 128))
		assert.Equal(t, int64(0), m.ApplyPoint1(16, 128, 128))

		for y := int64(16); y <= 235; y++ {
			g, _, _ := m.Transform(y, 128, 128)
			require.True(t, g >= 0 && g <= 255, "gray=%d for y=%d", g, y)
		}
	})
}

func TestAlphaRGB(t *testing.T) {
	var m Matrix
	m.Min = [3]int64{0, 0, 0}
	m.Max = [3]int64{255, 255, 255}
	m.LoadAlpha(format.ChannelRGB, StudioSwing, 8, bits8)

	assert.Equal(t, uint(16), m.AlphaShift)
	assert.Equal(t, [3]int64{257, 0, 32768}, m.A[0])

	for v := int64(0); v <= 255; v++ {
		x, y, z := m.ApplyAlpha(255, v, v, v)
		require.Equal(t, []int64{v, v, v}, []int64{x, y, z})

		x, y, z = m.ApplyAlpha(0, v, v, v)
		require.Equal(t, []int64{0, 0, 0}, []int64{x, y, z})
	}
}

func TestAlphaYUV(t *testing.T) {
	m := NewColorMatrix(RGB2YUV, YuvColorSpaceBT601, StudioSwing, bits8, bits8)
	m.LoadAlpha(format.ChannelYUV, StudioSwing, 8, bits8)

	assert.Equal(t, [3]int64{257, -4112, 1081344}, m.A[0])
	assert.Equal(t, int64(8421376), m.A[1][2])

	y, u, v := m.ApplyAlpha(0, 235, 200, 50)
	assert.Equal(t, []int64{16, 128, 128}, []int64{y, u, v})

	for y := int64(16); y <= 235; y++ {
		for c := int64(16); c <= 240; c += 7 {
			gy, gu, gv := m.ApplyAlpha(255, y, c, c)
			require.Equal(t, []int64{y, c, c}, []int64{gy, gu, gv})
		}
	}
}

func TestAlphaGray(t *testing.T) {
	m := NewColorMatrix(RGB2Gray, YuvColorSpaceBT601, StudioSwing, bits8, bits8)
	m.LoadAlpha(format.ChannelGray, StudioSwing, 8, bits8)

	assert.Equal(t, int64(257), m.A[0][0])

	for v := int64(0); v <= 255; v++ {
		require.Equal(t, v, m.ApplyAlpha1(255, v))
		require.Equal(t, int64(0), m.ApplyAlpha1(0, v))
	}
}

func TestKindFor(t *testing.T) {
	tests := []struct {
		from, to format.ChannelType
		want     MatrixKind
	}{
		{format.ChannelRGB, format.ChannelYUV, RGB2YUV},
		{format.ChannelRGB, format.ChannelGray, RGB2Gray},
		{format.ChannelYUV, format.ChannelRGB, YUV2RGB},
		{format.ChannelYUV, format.ChannelGray, YUV2Gray},
		{format.ChannelGray, format.ChannelRGB, Gray2RGB},
		{format.ChannelGray, format.ChannelYUV, Gray2YUV},
		{format.ChannelRGB, format.ChannelRGB, ABC2XYZ},
		{format.ChannelYUV, format.ChannelYUV, ABC2XYZ},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, KindFor(tt.from, tt.to))
		})
	}
}

func TestChannelDepths(t *testing.T) {
	assert.Equal(t, [3]int{5, 6, 5}, ChannelDepths(format.Lookup(format.PixelFormatRGB565LE)))
	assert.Equal(t, [3]int{10, 10, 10}, ChannelDepths(format.Lookup(format.PixelFormatP010LE)))
	assert.Equal(t, [3]int{8, 8, 8}, ChannelDepths(format.Lookup(format.PixelFormatGray8)))
}

func TestNewMatrix(t *testing.T) {
	t.Run("yuv source", func(t *testing.T) {
		m := NewMatrix(format.Lookup(format.PixelFormatNV12), format.Lookup(format.PixelFormatXRGB),
			YuvColorSpaceBT601, StudioSwing)
		assert.Equal(t, YUV2RGB, m.Kind)
		assert.Equal(t, uint(0), m.AlphaShift)
	})

	t.Run("alpha source", func(t *testing.T) {
		m := NewMatrix(format.Lookup(format.PixelFormatARGB), format.Lookup(format.PixelFormatNV12),
			YuvColorSpaceBT601, StudioSwing)
		assert.Equal(t, RGB2YUV, m.Kind)
		assert.Equal(t, uint(16), m.AlphaShift)
	})

	t.Run("invalid layout", func(t *testing.T) {
		m := NewMatrix(format.Layout{}, format.Lookup(format.PixelFormatNV12),
			YuvColorSpaceBT601, StudioSwing)
		assert.Equal(t, Matrix{}, m)
	})
}

func TestWideDepthsDoNotOverflow(t *testing.T) {
	m := NewColorMatrix(ABC2XYZ, YuvColorSpaceBT601, StudioSwing, [3]int{32, 32, 32}, [3]int{32, 32, 32})
	top := int64(1)<<32 - 1

	assert.Equal(t, top, m.ApplyPoint(top))
	assert.Equal(t, int64(0), m.ApplyPoint(0))
}

func TestApplyAlphaInPlace(t *testing.T) {
	m := NewColorMatrix(RGB2YUV, YuvColorSpaceBT601, StudioSwing, bits8, bits8)
	m.LoadAlpha(format.ChannelYUV, StudioSwing, 8, bits8)

	v := [3]int64{235, 128, 128}
	m.ApplyAlphaInPlace(0, &v)
	assert.Equal(t, [3]int64{16, 128, 128}, v)
}
