package video

import (
	"image"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/vcam/colorconv"
	"github.com/opd-ai/vcam/format"
)

// alphaIndex is the slot of alpha in per-pixel sample vectors and channel
// tables. Colour channels use slots 0 to 2.
const alphaIndex = 3

// bilinearBits is the precision of interpolation weights.
const bilinearBits = 8

// planKey identifies every input of a plan build. Frame rates are not part
// of it.
type planKey struct {
	srcFormat format.PixelFormat
	srcWidth  int
	srcHeight int
	dstFormat format.PixelFormat
	dstWidth  int
	dstHeight int
	space     colorconv.YuvColorSpace
	spaceType colorconv.ColorSpaceType
	scaling   ScalingMode
	aspect    AspectRatioMode
	rect      image.Rectangle
}

// plan holds everything resolved for one source/destination combination:
// geometry, colour matrix, dispatch choices and index tables. Tables live
// in an arena owned by the plan.
type plan struct {
	key    planKey
	geom   layoutGeometry
	shape  Shape
	alpha  AlphaMode
	fast   bool
	xDir   ScaleDirection
	yDir   ScaleDirection
	matrix colorconv.Matrix

	in       [4]channel
	out      [4]channel
	inSlots  []int
	outSlots []int
	dstSwap  int

	read  sampleReader
	write sampleWriter
	color func(v *[4]int64)
	run   func(p *plan, src, dst *Frame)

	arena *arena

	// nearest and bilinear tables, one entry per active output column/row
	xs, xs1 [4][]int
	ys, ys1 [4][]int
	wx, wy  []int

	// output tables
	xd [4][]int
	yd [4][]int

	// box filter tables: source spans per output column/row, source
	// offsets per source column/row and one integral image per channel
	bx0, bx1 []int
	by0, by1 []int
	sxs      [4][]int
	sys      [4][]int
	integral [4][]uint64

	blank []byte
}

// arena hands out sub-slices of one owned allocation.
type arena struct {
	buf  []int
	used int
}

func newArena(n int) *arena {
	return &arena{buf: make([]int, n)}
}

func (a *arena) take(n int) []int {
	s := a.buf[a.used : a.used+n : a.used+n]
	a.used += n

	return s
}

func selectShape(src, dst format.Layout) Shape {
	switch {
	case src.MainComponents() == 3 && dst.MainComponents() == 3:
		if src.Type == dst.Type {
			return ShapeVector
		}
		return ShapeThreeToThree
	case src.MainComponents() == 3:
		return ShapeThreeToOne
	case dst.MainComponents() == 3:
		return ShapeOneToThree
	default:
		return ShapeOneToOne
	}
}

func selectAlphaMode(src, dst format.Layout) AlphaMode {
	in := src.Contains(format.ComponentA)
	out := dst.Contains(format.ComponentA)

	switch {
	case in && out:
		return AlphaBoth
	case in:
		return AlphaSourceOnly
	case out:
		return AlphaDestOnly
	default:
		return AlphaNone
	}
}

func isFastPair(src, dst format.Layout) bool {
	return src.IsFast() && dst.IsFast() && src.ByteDepth() == 1 && dst.ByteDepth() == 1
}

// bindChannels resolves the colour channels of a layout into slots 0..n-1
// and alpha into alphaIndex, returning the used slots.
func bindChannels(l format.Layout, chans *[4]channel) []int {
	slots := make([]int, 0, 4)

	for i, t := range l.MainComponentTypes() {
		chans[i], _ = newChannel(l, t)
		slots = append(slots, i)
	}

	if a, ok := newChannel(l, format.ComponentA); ok {
		chans[alphaIndex] = a
		slots = append(slots, alphaIndex)
	}

	return slots
}

// newPlan resolves a conversion from src to the requested output.
func newPlan(key planKey, src, out format.Geometry) (*plan, error) {
	geom, err := resolveGeometry(src, out, key.rect, key.aspect)
	if err != nil {
		return nil, err
	}

	srcLayout := src.Layout()
	dstLayout := geom.output.Layout()

	p := &plan{
		key:    key,
		geom:   geom,
		shape:  selectShape(srcLayout, dstLayout),
		alpha:  selectAlphaMode(srcLayout, dstLayout),
		fast:   isFastPair(srcLayout, dstLayout),
		xDir:   scaleDirection(geom.crop.Dx(), geom.active.Dx()),
		yDir:   scaleDirection(geom.crop.Dy(), geom.active.Dy()),
		matrix: colorconv.NewMatrix(srcLayout, dstLayout, key.space, key.spaceType),
	}

	p.inSlots = bindChannels(srcLayout, &p.in)
	p.outSlots = bindChannels(dstLayout, &p.out)
	p.read = readerFor(srcLayout.ByteDepth(), p.fast)
	p.write = writerFor(dstLayout.ByteDepth(), p.fast)
	p.color = p.colorStage()

	if dstLayout.ByteOrder != format.NativeByteOrder {
		p.dstSwap = dstLayout.ByteDepth()
	}

	srcPlanes, _ := src.PlaneGeometries()
	dstPlanes, _ := geom.output.PlaneGeometries()

	useBox := key.scaling == ScalingLinear && (p.xDir == ScaleDown || p.yDir == ScaleDown)
	useBilinear := key.scaling == ScalingLinear && !useBox

	p.arena = newArena(p.arenaSize(src, useBox, useBilinear))
	p.buildOutputTables(dstPlanes)

	switch {
	case useBox:
		p.buildBoxTables(src, srcPlanes)
		p.run = (*plan).runBox
	case useBilinear:
		p.buildBilinearTables(srcPlanes)
		p.run = (*plan).runBilinear
	default:
		p.buildNearestTables(srcPlanes)
		p.run = (*plan).runNearest
	}

	if geom.active != image.Rect(0, 0, geom.output.Width, geom.output.Height) {
		p.blank = blankBuffer(geom.output, p.dstSwap)
	}

	logrus.WithFields(logrus.Fields{
		"function": "newPlan",
		"source":   src.String(),
		"output":   geom.output.String(),
		"crop":     geom.crop.String(),
		"active":   geom.active.String(),
		"shape":    p.shape.String(),
		"alpha":    p.alpha.String(),
		"fast":     p.fast,
		"x_scale":  p.xDir.String(),
		"y_scale":  p.yDir.String(),
	}).Info("Conversion plan rebuilt")

	return p, nil
}

func (p *plan) arenaSize(src format.Geometry, useBox, useBilinear bool) int {
	aw, ah := p.geom.active.Dx(), p.geom.active.Dy()
	n := len(p.outSlots) * (aw + ah)

	switch {
	case useBox:
		n += 2*(aw+ah) + len(p.inSlots)*(src.Width+src.Height)
	case useBilinear:
		n += aw + ah + 2*len(p.inSlots)*(aw+ah)
	default:
		n += len(p.inSlots) * (aw + ah)
	}

	return n
}

// blankBuffer returns an output buffer filled with transparent black, in
// native byte order when the output is swapped after the pass.
func blankBuffer(g format.Geometry, swap int) []byte {
	f := NewFrame(g)
	f.FillRGB(0)

	if swap > 1 {
		swapBuffer(f.data, swap)
	}

	return f.data
}

func (p *plan) buildOutputTables(planes []format.PlaneGeometry) {
	active := p.geom.active

	for _, s := range p.outSlots {
		c := &p.out[s]
		pg := planes[c.plane]
		p.xd[s] = p.arena.take(active.Dx())
		p.yd[s] = p.arena.take(active.Dy())

		for i := range p.xd[s] {
			p.xd[s][i] = c.comp.ByteOffset(active.Min.X + i)
		}

		for j := range p.yd[s] {
			p.yd[s][j] = pg.Offset + ((active.Min.Y+j)>>uint(c.comp.HeightDiv))*pg.LineSize
		}
	}
}

// nearestIndex maps output index i of n onto a source span of size m
// starting at lo.
func nearestIndex(lo, m, n, i int) int {
	return lo + int(int64(i)*int64(m)/int64(n))
}

func (p *plan) buildNearestTables(planes []format.PlaneGeometry) {
	crop, active := p.geom.crop, p.geom.active

	for _, s := range p.inSlots {
		c := &p.in[s]
		pg := planes[c.plane]
		p.xs[s] = p.arena.take(active.Dx())
		p.ys[s] = p.arena.take(active.Dy())

		for i := range p.xs[s] {
			p.xs[s][i] = c.comp.ByteOffset(nearestIndex(crop.Min.X, crop.Dx(), active.Dx(), i))
		}

		for j := range p.ys[s] {
			y := nearestIndex(crop.Min.Y, crop.Dy(), active.Dy(), j)
			p.ys[s][j] = pg.Offset + (y>>uint(c.comp.HeightDiv))*pg.LineSize
		}
	}
}

// bilinearIndex maps output index i of n onto a source span of size m
// starting at lo with corner alignment, returning both neighbours and the
// weight of the far one.
func bilinearIndex(lo, m, n, i int) (near, far, weight int) {
	if n < 2 || m < 2 {
		near = nearestIndex(lo, m, n, i)
		return near, near, 0
	}

	num := int64(i) * int64(m-1)
	den := int64(n - 1)
	near = lo + int(num/den)
	far = min(near+1, lo+m-1)
	weight = int(((num % den) << bilinearBits) / den)

	return near, far, weight
}

func (p *plan) buildBilinearTables(planes []format.PlaneGeometry) {
	crop, active := p.geom.crop, p.geom.active
	aw, ah := active.Dx(), active.Dy()

	p.wx = p.arena.take(aw)
	p.wy = p.arena.take(ah)
	x0 := make([]int, aw)
	x1 := make([]int, aw)
	y0 := make([]int, ah)
	y1 := make([]int, ah)

	for i := range p.wx {
		x0[i], x1[i], p.wx[i] = bilinearIndex(crop.Min.X, crop.Dx(), aw, i)
	}

	for j := range p.wy {
		y0[j], y1[j], p.wy[j] = bilinearIndex(crop.Min.Y, crop.Dy(), ah, j)
	}

	for _, s := range p.inSlots {
		c := &p.in[s]
		pg := planes[c.plane]
		hdiv := uint(c.comp.HeightDiv)
		p.xs[s], p.xs1[s] = p.arena.take(aw), p.arena.take(aw)
		p.ys[s], p.ys1[s] = p.arena.take(ah), p.arena.take(ah)

		for i := range x0 {
			p.xs[s][i] = c.comp.ByteOffset(x0[i])
			p.xs1[s][i] = c.comp.ByteOffset(x1[i])
		}

		for j := range y0 {
			p.ys[s][j] = pg.Offset + (y0[j]>>hdiv)*pg.LineSize
			p.ys1[s][j] = pg.Offset + (y1[j]>>hdiv)*pg.LineSize
		}
	}
}

// boxSpan returns the half-open source span averaged into output index i.
// Reduced axes split the source evenly; other axes take the nearest pixel.
func boxSpan(lo, m, n, i int, dir ScaleDirection) (int, int) {
	if dir != ScaleDown {
		x := nearestIndex(lo, m, n, i)
		return x, x + 1
	}

	return nearestIndex(lo, m, n, i), nearestIndex(lo, m, n, i+1)
}

func (p *plan) buildBoxTables(src format.Geometry, planes []format.PlaneGeometry) {
	crop, active := p.geom.crop, p.geom.active
	aw, ah := active.Dx(), active.Dy()

	p.bx0, p.bx1 = p.arena.take(aw), p.arena.take(aw)
	p.by0, p.by1 = p.arena.take(ah), p.arena.take(ah)

	for i := 0; i < aw; i++ {
		p.bx0[i], p.bx1[i] = boxSpan(crop.Min.X, crop.Dx(), aw, i, p.xDir)
	}

	for j := 0; j < ah; j++ {
		p.by0[j], p.by1[j] = boxSpan(crop.Min.Y, crop.Dy(), ah, j, p.yDir)
	}

	stride := (src.Width + 1) * (src.Height + 1)
	integrals := make([]uint64, len(p.inSlots)*stride)

	for k, s := range p.inSlots {
		c := &p.in[s]
		pg := planes[c.plane]
		p.sxs[s] = p.arena.take(src.Width)
		p.sys[s] = p.arena.take(src.Height)
		p.integral[s] = integrals[k*stride : (k+1)*stride : (k+1)*stride]

		for x := range p.sxs[s] {
			p.sxs[s][x] = c.comp.ByteOffset(x)
		}

		for y := range p.sys[s] {
			p.sys[s][y] = pg.Offset + (y>>uint(c.comp.HeightDiv))*pg.LineSize
		}
	}
}

// colorStage composes the shape transform with the alpha handling.
func (p *plan) colorStage() func(v *[4]int64) {
	m := &p.matrix

	var transform func(v *[4]int64)

	switch p.shape {
	case ShapeVector:
		transform = func(v *[4]int64) {
			v[0], v[1], v[2] = m.ApplyVector(v[0], v[1], v[2])
		}
	case ShapeThreeToThree:
		transform = func(v *[4]int64) {
			v[0], v[1], v[2] = m.Apply(v[0], v[1], v[2])
		}
	case ShapeThreeToOne:
		transform = func(v *[4]int64) {
			v[0] = m.ApplyPoint1(v[0], v[1], v[2])
		}
	case ShapeOneToThree:
		transform = func(v *[4]int64) {
			v[0], v[1], v[2] = m.ApplyPoint3(v[0])
		}
	default:
		transform = func(v *[4]int64) {
			v[0] = m.ApplyPoint(v[0])
		}
	}

	aiMax := int64(p.in[alphaIndex].max)
	aoMax := int64(p.out[alphaIndex].max)
	threeOut := p.shape != ShapeThreeToOne && p.shape != ShapeOneToOne

	switch p.alpha {
	case AlphaSourceOnly:
		if threeOut {
			return func(v *[4]int64) {
				transform(v)
				v[0], v[1], v[2] = m.ApplyAlpha(v[alphaIndex], v[0], v[1], v[2])
			}
		}

		return func(v *[4]int64) {
			transform(v)
			v[0] = m.ApplyAlpha1(v[alphaIndex], v[0])
		}
	case AlphaDestOnly:
		return func(v *[4]int64) {
			transform(v)
			v[alphaIndex] = aoMax
		}
	case AlphaBoth:
		if aiMax == aoMax {
			return transform
		}

		return func(v *[4]int64) {
			transform(v)
			v[alphaIndex] = colorconv.RoundedDiv(v[alphaIndex]*aoMax, aiMax)
		}
	default:
		return transform
	}
}

// convert runs the plan over src and returns a new output frame.
func (p *plan) convert(src *Frame) *Frame {
	dst := NewFrame(p.geom.output)
	if !dst.IsValid() {
		return dst
	}

	if p.blank != nil {
		copy(dst.data, p.blank)
	}

	p.run(p, src, dst)

	if p.dstSwap > 1 {
		swapBuffer(dst.data, p.dstSwap)
	}

	return dst
}
