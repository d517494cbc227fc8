package video

import (
	"github.com/opd-ai/vcam/format"
)

var testFPS = format.Fraction{Num: 30, Den: 1}

// createGrayFrame builds a Gray8 frame whose pixels come from fn.
func createGrayFrame(width, height int, fn func(x, y int) uint8) *Frame {
	f := NewFrame(format.NewGeometry(format.PixelFormatGray8, width, height, testFPS))

	for y := 0; y < height; y++ {
		line := f.Line(0, y)
		for x := 0; x < width; x++ {
			line[x] = fn(x, y)
		}
	}

	return f
}

// createARGBFrame builds an ARGB pack frame whose pixels come from fn.
func createARGBFrame(width, height int, fn func(x, y int) uint32) *Frame {
	f := NewFrame(format.NewGeometry(format.PixelFormatARGBPack, width, height, testFPS))

	for y := 0; y < height; y++ {
		line := f.Line(0, y)
		for x := 0; x < width; x++ {
			putARGB(line[4*x:], fn(x, y))
		}
	}

	return f
}

// grayRow returns the meaningful bytes of row y of a Gray8 frame.
func grayRow(f *Frame, y int) []byte {
	return f.Line(0, y)[:f.Width()]
}

// argbAt returns the pixel at (x, y) of an ARGB pack frame.
func argbAt(f *Frame, x, y int) uint32 {
	return getARGB(f.Line(0, y)[4*x:])
}
