package video

import (
	"image"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/vcam/format"
	"github.com/opd-ai/vcam/limits"
)

// Frame owns one aligned byte buffer holding every plane of an image in a
// registered pixel format. Frames never share their buffers.
type Frame struct {
	geometry format.Geometry
	planes   []format.PlaneGeometry
	data     []byte
}

// NewFrame allocates a zeroed frame. Invalid geometries, or geometries over
// the frame limits, produce an empty frame.
func NewFrame(g format.Geometry) *Frame {
	if err := g.Validate(); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "NewFrame",
			"geometry": g.String(),
			"error":    err.Error(),
		}).Debug("Creating empty frame")

		return &Frame{}
	}

	planes, size := g.PlaneGeometries()

	if err := validateFrameSize(g, size); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "NewFrame",
			"geometry": g.String(),
			"error":    err.Error(),
		}).Warn("Frame exceeds limits")

		return &Frame{}
	}

	return &Frame{
		geometry: g,
		planes:   planes,
		data:     make([]byte, size),
	}
}

func validateFrameSize(g format.Geometry, size int) error {
	if err := limits.ValidateDimensions(g.Width, g.Height); err != nil {
		return err
	}

	return limits.ValidateBufferSize(size)
}

// IsValid reports whether the frame holds a buffer.
func (f *Frame) IsValid() bool {
	return f != nil && len(f.data) > 0
}

// Format returns the frame geometry.
func (f *Frame) Format() format.Geometry {
	return f.geometry
}

// Width returns the frame width in pixels.
func (f *Frame) Width() int {
	return f.geometry.Width
}

// Height returns the frame height in pixels.
func (f *Frame) Height() int {
	return f.geometry.Height
}

// Bounds returns the frame rectangle anchored at the origin.
func (f *Frame) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.geometry.Width, f.geometry.Height)
}

// Size returns the buffer size in bytes.
func (f *Frame) Size() int {
	return len(f.data)
}

// Data returns the whole buffer.
func (f *Frame) Data() []byte {
	return f.data
}

// Planes returns the number of planes.
func (f *Frame) Planes() int {
	return len(f.planes)
}

// Plane returns the bytes of plane p.
func (f *Frame) Plane(p int) []byte {
	pg := f.planes[p]
	return f.data[pg.Offset : pg.Offset+pg.Size]
}

// Line returns row y of plane p. Rows of subsampled planes are counted
// after subsampling.
func (f *Frame) Line(p, y int) []byte {
	pg := f.planes[p]
	start := pg.Offset + y*pg.LineSize

	return f.data[start : start+pg.LineSize]
}

// lineOffset returns the buffer offset of row y of plane p.
func (f *Frame) lineOffset(p, y int) int {
	pg := f.planes[p]
	return pg.Offset + y*pg.LineSize
}

// LineSize returns the aligned stride of plane p.
func (f *Frame) LineSize(p int) int {
	return f.planes[p].LineSize
}

// BytesUsed returns the number of meaningful bytes per line of plane p.
func (f *Frame) BytesUsed(p int) int {
	return f.planes[p].BytesUsed
}

// PlaneSize returns the aligned size of plane p.
func (f *Frame) PlaneSize(p int) int {
	return f.planes[p].Size
}

// PlaneRows returns the number of rows of plane p.
func (f *Frame) PlaneRows(p int) int {
	return f.planes[p].Rows
}

// PixelSize returns the byte step of the widest component of plane p.
func (f *Frame) PixelSize(p int) int {
	return f.planes[p].PixelSize
}

// WidthDiv returns the log2 horizontal subsampling of plane p.
func (f *Frame) WidthDiv(p int) int {
	return f.planes[p].WidthDiv
}

// HeightDiv returns the log2 vertical subsampling of plane p.
func (f *Frame) HeightDiv(p int) int {
	return f.planes[p].HeightDiv
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	if !f.IsValid() {
		return &Frame{}
	}

	return &Frame{
		geometry: f.geometry,
		planes:   append([]format.PlaneGeometry(nil), f.planes...),
		data:     append([]byte(nil), f.data...),
	}
}

// Copy returns a new frame holding the part of f inside rect. The rectangle
// is clipped to the frame bounds; an empty intersection yields an empty
// frame.
func (f *Frame) Copy(rect image.Rectangle) *Frame {
	if !f.IsValid() {
		return &Frame{}
	}

	rect = rect.Canon().Intersect(f.Bounds())
	if rect.Empty() {
		return &Frame{}
	}

	g := f.geometry
	g.Width = rect.Dx()
	g.Height = rect.Dy()
	out := NewFrame(g)

	if !out.IsValid() {
		return out
	}

	for p, pg := range f.planes {
		offset := rect.Min.X * pg.BytesUsed / f.geometry.Width
		copyBytes := min(rect.Dx()*pg.BytesUsed/f.geometry.Width, out.planes[p].LineSize, pg.LineSize-offset)
		firstRow := rect.Min.Y >> uint(pg.HeightDiv)
		rows := min(out.planes[p].Rows, pg.Rows-firstRow)

		for y := 0; y < rows; y++ {
			src := f.Line(p, firstRow+y)
			copy(out.Line(p, y)[:copyBytes], src[offset:offset+copyBytes])
		}
	}

	return out
}

// FillRGB paints the whole frame with one ARGB colour. The colour is
// converted once for a minimal pixel group, which is then replicated along
// the first row of every plane and copied down the remaining rows.
func (f *Frame) FillRGB(argb uint32) {
	if !f.IsValid() {
		return
	}

	group := f.pixelGroup()
	seed := seedFrame(f.geometry, group, argb)

	if !seed.IsValid() {
		logrus.WithFields(logrus.Fields{
			"function": "Frame.FillRGB",
			"geometry": f.geometry.String(),
		}).Warn("Failed to convert fill colour")

		return
	}

	for p, pg := range f.planes {
		pattern := seed.Line(p, 0)[:seed.planes[p].BytesUsed]
		row0 := f.Line(p, 0)

		for x := 0; x < len(row0); x += len(pattern) {
			copy(row0[x:], pattern)
		}

		for y := 1; y < pg.Rows; y++ {
			copy(f.Line(p, y), row0)
		}
	}
}

// pixelGroup returns the smallest number of pixels whose samples fill whole
// bytes on every plane.
func (f *Frame) pixelGroup() int {
	layout := f.geometry.Layout()
	group := max(8*f.planes[0].PixelSize/layout.BitsPerPixel(), 1)

	for _, pg := range f.planes {
		group = max(group, 1<<uint(pg.WidthDiv))
	}

	return group
}

// seedFrame converts a one row patch of group pixels of argb into the
// geometry's format.
func seedFrame(g format.Geometry, group int, argb uint32) *Frame {
	src := NewFrame(format.NewGeometry(format.PixelFormatARGBPack, group, 1, g.FPS))
	if !src.IsValid() {
		return src
	}

	line := src.Line(0, 0)
	for x := 0; x < group; x++ {
		putARGB(line[4*x:], argb)
	}

	out := g
	out.Width = group
	out.Height = 1

	seed, err := newConverter(out).Convert(src)
	if err != nil {
		return &Frame{}
	}

	return seed
}
