package colorconv

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}

// Transform applies the colour rows without clamping.
func (m *Matrix) Transform(a, b, c int64) (x, y, z int64) {
	x = (a*m.M[0][0] + b*m.M[0][1] + c*m.M[0][2] + m.M[0][3]) >> m.ColorShift
	y = (a*m.M[1][0] + b*m.M[1][1] + c*m.M[1][2] + m.M[1][3]) >> m.ColorShift
	z = (a*m.M[2][0] + b*m.M[2][1] + c*m.M[2][2] + m.M[2][3]) >> m.ColorShift

	return x, y, z
}

// Apply maps three channels onto three channels.
func (m *Matrix) Apply(a, b, c int64) (x, y, z int64) {
	x, y, z = m.Transform(a, b, c)

	return clamp(x, m.Min[0], m.Max[0]),
		clamp(y, m.Min[1], m.Max[1]),
		clamp(z, m.Min[2], m.Max[2])
}

// ApplyVector rescales three channels independently using the diagonal.
func (m *Matrix) ApplyVector(a, b, c int64) (x, y, z int64) {
	x = (a*m.M[0][0] + m.M[0][3]) >> m.ColorShift
	y = (b*m.M[1][1] + m.M[1][3]) >> m.ColorShift
	z = (c*m.M[2][2] + m.M[2][3]) >> m.ColorShift

	return clamp(x, m.Min[0], m.Max[0]),
		clamp(y, m.Min[1], m.Max[1]),
		clamp(z, m.Min[2], m.Max[2])
}

// ApplyPoint3 expands one channel onto three.
func (m *Matrix) ApplyPoint3(p int64) (x, y, z int64) {
	x = (p*m.M[0][0] + m.M[0][3]) >> m.ColorShift
	y = (p*m.M[1][0] + m.M[1][3]) >> m.ColorShift
	z = (p*m.M[2][0] + m.M[2][3]) >> m.ColorShift

	return clamp(x, m.Min[0], m.Max[0]),
		clamp(y, m.Min[1], m.Max[1]),
		clamp(z, m.Min[2], m.Max[2])
}

// ApplyPoint1 reduces three channels to one.
func (m *Matrix) ApplyPoint1(a, b, c int64) int64 {
	x := (a*m.M[0][0] + b*m.M[0][1] + c*m.M[0][2] + m.M[0][3]) >> m.ColorShift

	return clamp(x, m.Min[0], m.Max[0])
}

// ApplyPoint maps one channel onto one.
func (m *Matrix) ApplyPoint(p int64) int64 {
	x := (p*m.M[0][0] + m.M[0][3]) >> m.ColorShift

	return clamp(x, m.Min[0], m.Max[0])
}

// ApplyAlpha blends three converted channels with the source alpha.
func (m *Matrix) ApplyAlpha(a, x, y, z int64) (int64, int64, int64) {
	x = ((x*m.A[0][0]+m.A[0][1])*a + m.A[0][2]) >> m.AlphaShift
	y = ((y*m.A[1][0]+m.A[1][1])*a + m.A[1][2]) >> m.AlphaShift
	z = ((z*m.A[2][0]+m.A[2][1])*a + m.A[2][2]) >> m.AlphaShift

	return clamp(x, m.Min[0], m.Max[0]),
		clamp(y, m.Min[1], m.Max[1]),
		clamp(z, m.Min[2], m.Max[2])
}

// ApplyAlpha1 blends one converted channel with the source alpha.
func (m *Matrix) ApplyAlpha1(a, p int64) int64 {
	p = ((p*m.A[0][0]+m.A[0][1])*a + m.A[0][2]) >> m.AlphaShift

	return clamp(p, m.Min[0], m.Max[0])
}

// ApplyAlphaInPlace blends a converted pixel held in v with the source
// alpha.
func (m *Matrix) ApplyAlphaInPlace(a int64, v *[3]int64) {
	v[0], v[1], v[2] = m.ApplyAlpha(a, v[0], v[1], v[2])
}
