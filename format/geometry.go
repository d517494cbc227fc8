package format

import (
	"fmt"
	"math"
)

// Align is the byte alignment of lines, planes and whole frame buffers.
const Align = 32

// AlignUp rounds value up to a multiple of align (a power of two).
func AlignUp(value, align int) int {
	return (value + align - 1) &^ (align - 1)
}

// Geometry is a pixel format together with frame dimensions and rate.
type Geometry struct {
	Format PixelFormat
	Width  int
	Height int
	FPS    Fraction
}

// NewGeometry builds a geometry with the given frame rate.
func NewGeometry(f PixelFormat, width, height int, fps Fraction) Geometry {
	return Geometry{Format: f, Width: width, Height: height, FPS: fps}
}

// IsValid reports whether the format is registered and both dimensions are
// positive. Invalid geometries produce empty frames.
func (g Geometry) IsValid() bool {
	return g.Format.IsRegistered() && g.Width > 0 && g.Height > 0
}

// Validate returns a descriptive error for invalid geometries.
func (g Geometry) Validate() error {
	if !g.Format.IsRegistered() {
		return fmt.Errorf("%w: %s", ErrUnknownFormat, g.Format)
	}

	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidGeometry, g.Width, g.Height)
	}

	return nil
}

// Layout returns the registered layout of the format.
func (g Geometry) Layout() Layout {
	return Lookup(g.Format)
}

// BitsPerPixel returns the layout bits per pixel.
func (g Geometry) BitsPerPixel() int {
	return g.Layout().BitsPerPixel()
}

// Planes returns the number of planes of the layout.
func (g Geometry) Planes() int {
	return g.Layout().Planes()
}

// IsSameFormat compares format and dimensions, ignoring the frame rate.
func (g Geometry) IsSameFormat(other Geometry) bool {
	return g.Format == other.Format && g.Width == other.Width && g.Height == other.Height
}

// PlaneGeometry holds the memory parameters of one plane of a frame.
type PlaneGeometry struct {
	Offset    int
	Size      int
	LineSize  int
	BytesUsed int
	Rows      int
	PixelSize int
	WidthDiv  int
	HeightDiv int
}

// PlaneGeometries computes the per plane offsets and strides of a frame
// buffer and the total aligned buffer size.
func (g Geometry) PlaneGeometries() ([]PlaneGeometry, int) {
	if !g.IsValid() {
		return nil, 0
	}

	layout := g.Layout()
	planes := make([]PlaneGeometry, layout.Planes())
	offset := 0

	for i := range planes {
		plane := layout.Plane(i)
		bytesUsed := planeBytesUsed(plane, g.Width)
		lineSize := AlignUp(bytesUsed, Align)
		hdiv := plane.HeightDiv()
		rows := (g.Height + (1 << uint(hdiv)) - 1) >> uint(hdiv)
		size := AlignUp(lineSize*rows, Align)

		planes[i] = PlaneGeometry{
			Offset:    offset,
			Size:      size,
			LineSize:  lineSize,
			BytesUsed: bytesUsed,
			Rows:      rows,
			PixelSize: plane.PixelSize(),
			WidthDiv:  plane.WidthDiv(),
			HeightDiv: hdiv,
		}
		offset += size
	}

	return planes, AlignUp(offset, Align)
}

// planeBytesUsed returns the bytes one line of plane needs at the given
// width. Subsampled components of odd widths round up, so the last column
// always has its own sample.
func planeBytesUsed(plane Plane, width int) int {
	used := plane.BitsSize() * width / 8

	for i := 0; i < plane.Len(); i++ {
		c := plane.Component(i)
		used = max(used, c.ByteOffset(width-1)+c.ByteDepth)
	}

	return used
}

// BufferSize returns the aligned number of bytes needed by a frame.
func (g Geometry) BufferSize() int {
	_, size := g.PlaneGeometries()
	return size
}

// Nearest returns the candidate closest to g. The distance adds a format
// mismatch flag to the squared differences of width, height, bits per
// pixel, plane count and, when plane counts differ, total component depth.
// The first candidate with the smallest distance wins.
func (g Geometry) Nearest(candidates []Geometry) (Geometry, bool) {
	if len(candidates) == 0 {
		return Geometry{}, false
	}

	src := g.Layout()
	best := 0
	var bestK uint64 = math.MaxUint64

	for i, c := range candidates {
		layout := c.Layout()

		var diffFourcc uint64
		if c.Format != g.Format {
			diffFourcc = 1
		}

		dw := int64(c.Width - g.Width)
		dh := int64(c.Height - g.Height)
		dbpp := int64(layout.BitsPerPixel() - src.BitsPerPixel())
		dplanes := int64(layout.Planes() - src.Planes())
		var dbits int64

		if layout.Planes() != src.Planes() {
			dbits = int64(totalDepth(layout) - totalDepth(src))
		}

		k := diffFourcc + uint64(dw*dw) + uint64(dh*dh) + uint64(dbpp*dbpp) +
			uint64(dplanes*dplanes) + uint64(dbits*dbits)

		if k < bestK {
			best = i
			bestK = k
		}
	}

	return candidates[best], true
}

func totalDepth(l Layout) int {
	depth := 0

	for i := 0; i < l.Planes(); i++ {
		for _, c := range l.Plane(i).components {
			depth += c.Depth
		}
	}

	return depth
}

// String formats the geometry as "NV12 640x480 30/1".
func (g Geometry) String() string {
	return fmt.Sprintf("%s %dx%d %s", g.Format, g.Width, g.Height, g.FPS)
}
