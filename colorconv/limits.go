package colorconv

import "math"

// gibbs is the overshoot percentage reserved by studio swing coding.
const gibbs = 9

// RoundedDiv divides rounding half away from zero. A zero denominator
// saturates to the largest value of the numerator's sign.
func RoundedDiv(num, den int64) int64 {
	if den == 0 {
		if num < 0 {
			return math.MinInt64
		}

		return math.MaxInt64
	}

	if (num < 0 && den > 0) || (num > 0 && den < 0) {
		return (2*num - den) / (2 * den)
	}

	return (2*num + den) / (2 * den)
}

// NearestPowOf2 returns the power of two closest to value, preferring the
// larger one on ties.
func NearestPowOf2(value int64) int64 {
	res := 0

	for v := value >> 1; v != 0; v >>= 1 {
		res++
	}

	lo := int64(1) << uint(res)
	hi := lo << 1

	if abs64(hi-value) <= abs64(lo-value) {
		return hi
	}

	return lo
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}

	return v
}

func maxValue(bits int) int64 {
	return int64(1)<<uint(bits) - 1
}

// LimitsY returns the legal luma range for the given depth.
func LimitsY(bits int, t ColorSpaceType) (minY, maxY int64) {
	top := maxValue(bits)

	if t == FullSwing {
		return 0, top
	}

	minY = NearestPowOf2(RoundedDiv(top*gibbs, 2*gibbs+100))
	maxY = top * (gibbs + 100) / (2*gibbs + 100)

	return minY, maxY
}

// LimitsUV returns the legal chroma range for the given depth. Studio
// swing chroma is symmetric around the mid point.
func LimitsUV(bits int, t ColorSpaceType) (minUV, maxUV int64) {
	top := maxValue(bits)

	if t == FullSwing {
		return 0, top
	}

	minUV = NearestPowOf2(RoundedDiv(top*gibbs, 2*gibbs+100))
	maxUV = int64(1)<<uint(bits) - minUV

	return minUV, maxUV
}
