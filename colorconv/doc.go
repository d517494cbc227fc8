// Package colorconv derives and applies fixed-point colour transforms.
//
// # Matrices
//
// A Matrix holds integer coefficients scaled by 2^ColorShift, an additive
// rounding term per row, and the legal output range of each channel. It is
// derived once from the channel depths of both sides, the YUV standard and
// the range coding:
//
//	from := format.Lookup(format.PixelFormatXRGB)
//	to := format.Lookup(format.PixelFormatNV12)
//	m := colorconv.NewMatrix(from, to, colorconv.YuvColorSpaceBT601, colorconv.StudioSwing)
//	y, u, v := m.Apply(255, 255, 255) // 235 128 128
//
// Every apply function is integer-only and clamps its results to the
// output range.
//
// # Alpha
//
// When the source carries alpha and the destination does not, the alpha
// rows blend the converted colour toward black for RGB and Gray, and toward
// the legal minimum luma and neutral chroma for YUV. An opaque alpha leaves
// every value unchanged.
//
// # Ranges
//
// LimitsY and LimitsUV return the legal ranges of a channel depth. Studio
// swing reserves a 9% overshoot margin, giving 16..235 for 8-bit luma and
// 16..240 for 8-bit chroma.
package colorconv
