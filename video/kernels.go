package video

// emit converts one gathered pixel and writes it at output column i of
// active row j.
func (p *plan) emit(dd []byte, v *[4]int64, i, j int) {
	p.color(v)

	for _, s := range p.outSlots {
		p.write(&p.out[s], dd, p.yd[s][j]+p.xd[s][i], v[s])
	}
}

func (p *plan) runNearest(src, dst *Frame) {
	sd, dd := src.data, dst.data
	aw, ah := p.geom.active.Dx(), p.geom.active.Dy()

	var v [4]int64

	for j := 0; j < ah; j++ {
		for i := 0; i < aw; i++ {
			for _, s := range p.inSlots {
				v[s] = p.read(&p.in[s], sd, p.ys[s][j]+p.xs[s][i])
			}

			p.emit(dd, &v, i, j)
		}
	}
}

// blend interpolates between near and far with a weight in 1/256 steps.
func blend(near, far int64, w int) int64 {
	return (int64(w)*(far-near)*2 + near<<(bilinearBits+1)) >> (bilinearBits + 1)
}

func (p *plan) runBilinear(src, dst *Frame) {
	sd, dd := src.data, dst.data
	aw, ah := p.geom.active.Dx(), p.geom.active.Dy()

	var v [4]int64

	for j := 0; j < ah; j++ {
		wy := p.wy[j]

		for i := 0; i < aw; i++ {
			wx := p.wx[i]

			for _, s := range p.inSlots {
				c := &p.in[s]
				y0, y1 := p.ys[s][j], p.ys1[s][j]
				x0, x1 := p.xs[s][i], p.xs1[s][i]

				top := blend(p.read(c, sd, y0+x0), p.read(c, sd, y0+x1), wx)
				bottom := blend(p.read(c, sd, y1+x0), p.read(c, sd, y1+x1), wx)
				v[s] = blend(top, bottom, wy)
			}

			p.emit(dd, &v, i, j)
		}
	}
}

// buildIntegrals fills one summed area table per source channel. Entry
// (x, y) holds the sum of every sample above and left of pixel (x, y).
func (p *plan) buildIntegrals(src *Frame) {
	sd := src.data
	w, h := src.Width(), src.Height()
	stride := w + 1

	for _, s := range p.inSlots {
		c := &p.in[s]
		sum := p.integral[s]
		xs, ys := p.sxs[s], p.sys[s]

		for y := 0; y < h; y++ {
			var row uint64
			above := sum[y*stride : (y+1)*stride]
			cur := sum[(y+1)*stride : (y+2)*stride]

			for x := 0; x < w; x++ {
				row += uint64(p.read(c, sd, ys[y]+xs[x]))
				cur[x+1] = above[x+1] + row
			}
		}
	}
}

func (p *plan) runBox(src, dst *Frame) {
	p.buildIntegrals(src)

	dd := dst.data
	stride := src.Width() + 1
	aw, ah := p.geom.active.Dx(), p.geom.active.Dy()

	var v [4]int64

	for j := 0; j < ah; j++ {
		y0, y1 := p.by0[j]*stride, p.by1[j]*stride
		dy := uint64(p.by1[j] - p.by0[j])

		for i := 0; i < aw; i++ {
			x0, x1 := p.bx0[i], p.bx1[i]
			area := dy * uint64(x1-x0)

			for _, s := range p.inSlots {
				sum := p.integral[s]
				v[s] = int64((sum[y1+x1] + sum[y0+x0] - sum[y0+x1] - sum[y1+x0]) / area)
			}

			p.emit(dd, &v, i, j)
		}
	}
}
