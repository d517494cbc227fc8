package colorconv

import (
	"github.com/opd-ai/vcam/format"
)

// productBits bounds every intermediate product of a derivation or of an
// apply function. Shifts are lowered for 32-bit outputs to stay below it.
const productBits = 62

// Matrix is a fixed-point colour transform between two channel sets.
//
// Colour rows compute (a*M[i][0] + b*M[i][1] + c*M[i][2] + M[i][3]) >> ColorShift.
// Alpha rows compute (alpha*(v*A[i][0] + A[i][1]) + A[i][2]) >> AlphaShift.
// Results are clamped to [Min[i], Max[i]].
type Matrix struct {
	Kind       MatrixKind
	M          [3][4]int64
	A          [3][3]int64
	Min        [3]int64
	Max        [3]int64
	ColorShift uint
	AlphaShift uint
}

// colorShift picks the coefficient scale: the widest input or output depth,
// lowered when the output is so wide that the products would overflow.
// Scales below the output depth leave coefficient rounding errors large
// enough to step outside the legal output range.
func colorShift(ibits [3]int, obits [3]int) int {
	shift := max(ibits[0], ibits[1], ibits[2], obits[0], obits[1], obits[2])

	if limit := productBits - 16 - max(obits[0], obits[1], obits[2]); shift > limit {
		shift = limit
	}

	return shift
}

// NewColorMatrix derives the colour rows for a transform kind. ibits and
// obits are the depths of the input and output channels in matrix order.
// Single channel sides repeat the gray depth.
func NewColorMatrix(kind MatrixKind, space YuvColorSpace, t ColorSpaceType, ibits, obits [3]int) Matrix {
	m := Matrix{Kind: kind}

	switch kind {
	case ABC2XYZ:
		m.loadABC2XYZ(ibits, obits)
	case RGB2YUV:
		m.loadRGB2YUV(space, t, ibits, obits)
	case YUV2RGB:
		m.loadYUV2RGB(space, t, ibits, obits)
	case RGB2Gray:
		m.loadRGB2Gray(space, ibits, obits[0])
	case Gray2RGB:
		m.loadGray2RGB(ibits[0], obits)
	case YUV2Gray:
		m.loadYUV2Gray(t, ibits, obits[0])
	case Gray2YUV:
		m.loadGray2YUV(t, ibits[0], obits)
	}

	return m
}

func (m *Matrix) loadABC2XYZ(ibits, obits [3]int) {
	shift := colorShift(ibits, obits)
	shiftDiv := int64(1) << uint(shift)
	rounding := int64(1) << uint(abs(shift-1))

	kx := RoundedDiv(shiftDiv*maxValue(obits[0]), maxValue(ibits[0]))
	ky := RoundedDiv(shiftDiv*maxValue(obits[1]), maxValue(ibits[1]))
	kz := RoundedDiv(shiftDiv*maxValue(obits[2]), maxValue(ibits[2]))

	m.M = [3][4]int64{
		{kx, 0, 0, rounding},
		{0, ky, 0, rounding},
		{0, 0, kz, rounding},
	}
	m.Min = [3]int64{0, 0, 0}
	m.Max = [3]int64{maxValue(obits[0]), maxValue(obits[1]), maxValue(obits[2])}
	m.ColorShift = uint(shift)
}

func (m *Matrix) loadRGB2YUV(space YuvColorSpace, t ColorSpaceType, ibits, obits [3]int) {
	kyr, kyb, div := space.LumaConstants()
	kyg := div - kyr - kyb

	kur := -kyr
	kug := -kyg
	kub := div - kyb

	kvr := div - kyr
	kvg := -kyg
	kvb := -kyb

	shift := colorShift(ibits, obits)
	shiftDiv := int64(1) << uint(shift)
	rounding := int64(1) << uint(shift-1)

	rmax := maxValue(ibits[0])
	gmax := maxValue(ibits[1])
	bmax := maxValue(ibits[2])

	minY, maxY := LimitsY(obits[0], t)
	diffY := maxY - minY

	kiyr := RoundedDiv(shiftDiv*diffY*kyr, div*rmax)
	kiyg := RoundedDiv(shiftDiv*diffY*kyg, div*gmax)
	kiyb := RoundedDiv(shiftDiv*diffY*kyb, div*bmax)

	minU, maxU := LimitsUV(obits[1], t)
	diffU := maxU - minU

	kiur := RoundedDiv(shiftDiv*diffU*kur, 2*rmax*kub)
	kiug := RoundedDiv(shiftDiv*diffU*kug, 2*gmax*kub)
	kiub := RoundedDiv(shiftDiv*diffU, 2*bmax)

	minV, maxV := LimitsUV(obits[2], t)
	diffV := maxV - minV

	kivr := RoundedDiv(shiftDiv*diffV, 2*rmax)
	kivg := RoundedDiv(shiftDiv*diffV*kvg, 2*gmax*kvr)
	kivb := RoundedDiv(shiftDiv*diffV*kvb, 2*bmax*kvr)

	ciy := rounding + shiftDiv*minY
	ciu := rounding + shiftDiv*(minU+maxU)/2
	civ := rounding + shiftDiv*(minV+maxV)/2

	m.M = [3][4]int64{
		{kiyr, kiyg, kiyb, ciy},
		{kiur, kiug, kiub, ciu},
		{kivr, kivg, kivb, civ},
	}
	m.Min = [3]int64{minY, minU, minV}
	m.Max = [3]int64{maxY, maxU, maxV}
	m.ColorShift = uint(shift)
}

func (m *Matrix) loadYUV2RGB(space YuvColorSpace, t ColorSpaceType, ibits, obits [3]int) {
	kyr, kyb, div := space.LumaConstants()
	kyg := div - kyr - kyb

	minY, maxY := LimitsY(ibits[0], t)
	diffY := maxY - minY

	minU, maxU := LimitsUV(ibits[1], t)
	diffU := maxU - minU

	minV, maxV := LimitsUV(ibits[2], t)
	diffV := maxV - minV

	shift := colorShift(ibits, obits)
	shiftDiv := int64(1) << uint(shift)
	rounding := int64(1) << uint(shift-1)

	rmax := maxValue(obits[0])
	gmax := maxValue(obits[1])
	bmax := maxValue(obits[2])

	kry := RoundedDiv(shiftDiv*rmax, diffY)
	krv := RoundedDiv(2*shiftDiv*rmax*(div-kyr), div*diffV)

	kgy := RoundedDiv(shiftDiv*gmax, diffY)
	kgu := RoundedDiv(2*shiftDiv*gmax*kyb*(kyb-div), div*kyg*diffU)
	kgv := RoundedDiv(2*shiftDiv*gmax*kyr*(kyr-div), div*kyg*diffV)

	kby := RoundedDiv(shiftDiv*bmax, diffY)
	kbu := RoundedDiv(2*shiftDiv*bmax*(div-kyb), div*diffU)

	cir := rounding - kry*minY - krv*(minV+maxV)/2
	cig := rounding - kgy*minY - (kgu*(minU+maxU)+kgv*(minV+maxV))/2
	cib := rounding - kby*minY - kbu*(minU+maxU)/2

	m.M = [3][4]int64{
		{kry, 0, krv, cir},
		{kgy, kgu, kgv, cig},
		{kby, kbu, 0, cib},
	}
	m.Min = [3]int64{0, 0, 0}
	m.Max = [3]int64{rmax, gmax, bmax}
	m.ColorShift = uint(shift)
}

func (m *Matrix) loadRGB2Gray(space YuvColorSpace, ibits [3]int, graybits int) {
	kyr, kyb, div := space.LumaConstants()
	kyg := div - kyr - kyb

	shift := colorShift(ibits, [3]int{graybits, graybits, graybits})
	shiftDiv := int64(1) << uint(shift)
	rounding := int64(1) << uint(shift-1)

	rmax := maxValue(ibits[0])
	gmax := maxValue(ibits[1])
	bmax := maxValue(ibits[2])

	minY, maxY := LimitsY(graybits, FullSwing)
	diffY := maxY - minY

	kiyr := RoundedDiv(shiftDiv*diffY*kyr, div*rmax)
	kiyg := RoundedDiv(shiftDiv*diffY*kyg, div*gmax)
	kiyb := RoundedDiv(shiftDiv*diffY*kyb, div*bmax)

	minU, maxU := LimitsUV(graybits, FullSwing)
	minV, maxV := LimitsUV(graybits, FullSwing)

	ciy := rounding + shiftDiv*minY
	ciu := rounding + shiftDiv*(minU+maxU)/2
	civ := rounding + shiftDiv*(minV+maxV)/2

	m.M = [3][4]int64{
		{kiyr, kiyg, kiyb, ciy},
		{0, 0, 0, ciu},
		{0, 0, 0, civ},
	}
	m.Min = [3]int64{minY, minU, minV}
	m.Max = [3]int64{maxY, maxU, maxV}
	m.ColorShift = uint(shift)
}

func (m *Matrix) loadGray2RGB(graybits int, obits [3]int) {
	shift := colorShift([3]int{graybits, graybits, graybits}, obits)
	shiftDiv := int64(1) << uint(shift)
	rounding := int64(1) << uint(shift-1)

	graymax := maxValue(graybits)
	rmax := maxValue(obits[0])
	gmax := maxValue(obits[1])
	bmax := maxValue(obits[2])

	kr := RoundedDiv(shiftDiv*rmax, graymax)
	kg := RoundedDiv(shiftDiv*gmax, graymax)
	kb := RoundedDiv(shiftDiv*bmax, graymax)

	m.M = [3][4]int64{
		{kr, 0, 0, rounding},
		{kg, 0, 0, rounding},
		{kb, 0, 0, rounding},
	}
	m.Min = [3]int64{0, 0, 0}
	m.Max = [3]int64{rmax, gmax, bmax}
	m.ColorShift = uint(shift)
}

func (m *Matrix) loadYUV2Gray(t ColorSpaceType, ibits [3]int, graybits int) {
	shift := colorShift([3]int{ibits[0], ibits[0], ibits[0]}, [3]int{graybits, graybits, graybits})
	shiftDiv := int64(1) << uint(shift)
	rounding := int64(1) << uint(shift-1)

	graymax := maxValue(graybits)
	minY, maxY := LimitsY(ibits[0], t)
	diffY := maxY - minY

	ky := RoundedDiv(shiftDiv*graymax, diffY)

	minU, maxU := LimitsUV(graybits, FullSwing)
	minV, maxV := LimitsUV(graybits, FullSwing)

	ciy := rounding - RoundedDiv(shiftDiv*minY*graymax, diffY)
	ciu := rounding + shiftDiv*(minU+maxU)/2
	civ := rounding + shiftDiv*(minV+maxV)/2

	m.M = [3][4]int64{
		{ky, 0, 0, ciy},
		{0, 0, 0, ciu},
		{0, 0, 0, civ},
	}
	m.Min = [3]int64{0, 0, 0}
	m.Max = [3]int64{graymax, graymax, graymax}
	m.ColorShift = uint(shift)
}

func (m *Matrix) loadGray2YUV(t ColorSpaceType, graybits int, obits [3]int) {
	shift := colorShift([3]int{graybits, graybits, graybits}, obits)
	shiftDiv := int64(1) << uint(shift)
	rounding := int64(1) << uint(shift-1)

	graymax := maxValue(graybits)
	minY, maxY := LimitsY(obits[0], t)
	diffY := maxY - minY

	ky := RoundedDiv(shiftDiv*diffY, graymax)

	minU, maxU := LimitsUV(obits[1], t)
	minV, maxV := LimitsUV(obits[2], t)

	ciy := rounding + shiftDiv*minY
	ciu := rounding + shiftDiv*(minU+maxU)/2
	civ := rounding + shiftDiv*(minV+maxV)/2

	m.M = [3][4]int64{
		{ky, 0, 0, ciy},
		{0, 0, 0, ciu},
		{0, 0, 0, civ},
	}
	m.Min = [3]int64{minY, minU, minV}
	m.Max = [3]int64{maxY, maxU, maxV}
	m.ColorShift = uint(shift)
}

// alphaShift doubles the alpha depth so an opaque alpha maps every value
// onto itself, lowered when products would overflow.
func alphaShift(abits int, obits [3]int) int {
	shift := 2 * abits

	if limit := productBits - max(obits[0], obits[1], obits[2]); shift > limit {
		shift = limit
	}

	return shift
}

// LoadAlpha derives the alpha rows used when the source carries alpha and
// the destination does not. RGB and Gray blend toward black; YUV luma
// blends toward its legal minimum and chroma toward the mid point.
func (m *Matrix) LoadAlpha(to format.ChannelType, t ColorSpaceType, abits int, obits [3]int) {
	shift := alphaShift(abits, obits)
	amax := maxValue(abits)
	shiftDiv := int64(1) << uint(shift)
	rounding := int64(1) << uint(shift-1)
	k := RoundedDiv(shiftDiv, amax)

	switch to {
	case format.ChannelRGB:
		m.A = [3][3]int64{
			{k, 0, rounding},
			{k, 0, rounding},
			{k, 0, rounding},
		}
	case format.ChannelYUV:
		minY, _ := LimitsY(obits[0], t)
		minU, maxU := LimitsUV(obits[1], t)
		minV, maxV := LimitsUV(obits[2], t)

		ky := -RoundedDiv(shiftDiv*minY, amax)
		ku := -RoundedDiv(shiftDiv*(minU+maxU), 2*amax)
		kv := -RoundedDiv(shiftDiv*(minV+maxV), 2*amax)

		ciy := rounding + shiftDiv*minY
		ciu := rounding + shiftDiv*(minU+maxU)/2
		civ := rounding + shiftDiv*(minV+maxV)/2

		m.A = [3][3]int64{
			{k, ky, ciy},
			{k, ku, ciu},
			{k, kv, civ},
		}
	case format.ChannelGray:
		minU, maxU := LimitsUV(obits[0], FullSwing)
		minV, maxV := LimitsUV(obits[0], FullSwing)

		ciu := rounding + shiftDiv*(minU+maxU)/2
		civ := rounding + shiftDiv*(minV+maxV)/2

		m.A = [3][3]int64{
			{k, 0, rounding},
			{0, 0, ciu},
			{0, 0, civ},
		}
	}

	m.AlphaShift = uint(shift)
}

// KindFor returns the transform kind between two colour models.
func KindFor(from, to format.ChannelType) MatrixKind {
	switch {
	case from == format.ChannelRGB && to == format.ChannelYUV:
		return RGB2YUV
	case from == format.ChannelRGB && to == format.ChannelGray:
		return RGB2Gray
	case from == format.ChannelYUV && to == format.ChannelRGB:
		return YUV2RGB
	case from == format.ChannelYUV && to == format.ChannelGray:
		return YUV2Gray
	case from == format.ChannelGray && to == format.ChannelRGB:
		return Gray2RGB
	case from == format.ChannelGray && to == format.ChannelYUV:
		return Gray2YUV
	default:
		return ABC2XYZ
	}
}

// ChannelDepths returns the depths of the main channels of a layout in
// matrix order. Gray layouts repeat the gray depth three times.
func ChannelDepths(l format.Layout) [3]int {
	var depths [3]int
	types := l.MainComponentTypes()

	for i := range depths {
		c, _ := l.Component(types[min(i, len(types)-1)])
		depths[i] = c.Depth
	}

	return depths
}

// NewMatrix derives the full transform between two layouts: colour rows for
// the pair of colour models and, when the source has alpha, alpha rows for
// the destination colour model.
func NewMatrix(from, to format.Layout, space YuvColorSpace, t ColorSpaceType) Matrix {
	if !from.IsValid() || !to.IsValid() {
		return Matrix{}
	}

	ibits := ChannelDepths(from)
	obits := ChannelDepths(to)
	m := NewColorMatrix(KindFor(from.Type, to.Type), space, t, ibits, obits)

	if a, ok := from.Component(format.ComponentA); ok {
		m.LoadAlpha(to.Type, t, a.Depth, obits)
	}

	return m
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
