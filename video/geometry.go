package video

import (
	"fmt"
	"image"

	"github.com/opd-ai/vcam/format"
)

// layoutGeometry is the resolved placement of a conversion: the output
// frame geometry, the source rectangle that is read and the output
// rectangle that is written.
type layoutGeometry struct {
	output format.Geometry
	crop   image.Rectangle
	active image.Rectangle
}

// resolveGeometry combines the source, the requested output, the input
// crop and the aspect ratio mode. Output sizes of zero or less take the
// size of the cropped source; an unset output frame rate takes the source
// rate.
func resolveGeometry(src, out format.Geometry, rect image.Rectangle, mode AspectRatioMode) (layoutGeometry, error) {
	bounds := image.Rect(0, 0, src.Width, src.Height)
	crop := bounds

	if rect != (image.Rectangle{}) {
		crop = rect.Canon().Intersect(bounds)
		if crop.Empty() {
			return layoutGeometry{}, fmt.Errorf("%w: input rect %v outside %v", ErrEmptyRect, rect, bounds)
		}
	}

	if out.Width <= 0 {
		out.Width = crop.Dx()
	}

	if out.Height <= 0 {
		out.Height = crop.Dy()
	}

	if !out.FPS.IsValid() {
		out.FPS = src.FPS
	}

	cw, ch := int64(crop.Dx()), int64(crop.Dy())
	ow, oh := int64(out.Width), int64(out.Height)
	active := image.Rect(0, 0, out.Width, out.Height)

	switch mode {
	case AspectRatioKeep:
		if ow*ch > oh*cw {
			ow = oh * cw / ch
		} else {
			oh = ow * ch / cw
		}

		out.Width, out.Height = int(ow), int(oh)
		active = image.Rect(0, 0, out.Width, out.Height)
	case AspectRatioExpanding:
		if cw*oh > ch*ow {
			w := ch * ow / oh
			x := crop.Min.X + int(cw-w)/2
			crop = image.Rect(x, crop.Min.Y, x+int(w), crop.Max.Y)
		} else {
			h := cw * oh / ow
			y := crop.Min.Y + int(ch-h)/2
			crop = image.Rect(crop.Min.X, y, crop.Max.X, y+int(h))
		}
	case AspectRatioFit:
		if cw*oh > ch*ow {
			h := ow * ch / cw
			y := int(oh-h) / 2
			active = image.Rect(0, y, out.Width, y+int(h))
		} else {
			w := oh * cw / ch
			x := int(ow-w) / 2
			active = image.Rect(x, 0, x+int(w), out.Height)
		}
	}

	if crop.Empty() || active.Empty() {
		return layoutGeometry{}, fmt.Errorf("%w: %v to %dx%d in %s mode", ErrEmptyRect, crop, out.Width, out.Height, mode)
	}

	return layoutGeometry{output: out, crop: crop, active: active}, nil
}
