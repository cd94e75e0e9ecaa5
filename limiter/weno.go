package limiter

import (
	"math"

	"github.com/leshihua/fvens/utils"
)

const (
	// wenoCentralWeight biases the blend toward the cell's own gradient in
	// smooth regions; near discontinuities the oscillation indicators take
	// over regardless of the bias.
	wenoCentralWeight = 1000.0
	wenoPower         = 4.0
	wenoEps           = 1e-10
)

// WENOLimiter replaces each cell's gradient with a nonlinear blend of its
// own gradient and its face neighbors' gradients, weighted inversely by a
// gradient-magnitude oscillation indicator. Unlike the scaling limiters it
// never clips to zero on smooth extrema, so design-order accuracy is kept.
type WENOLimiter struct {
	base

	// scratch blended gradients, allocated on first use
	ldx, ldy []float64
}

func wenoWeight(gx, gy, lambda float64) float64 {
	beta := gx*gx + gy*gy
	return lambda / math.Pow(beta+wenoEps, wenoPower)
}

func (l *WENOLimiter) ComputeFaceValues(u, ug, dudx, dudy, uleft, uright []float64) {
	var (
		m      = l.m
		nvars  = l.nvars
		nbface = m.NumBoundaryFaces()
		ncells = m.NumCells()
	)
	if l.ldx == nil {
		l.ldx = make([]float64, ncells*nvars)
		l.ldy = make([]float64, ncells*nvars)
	}
	var (
		wsum = make([]float64, ncells*nvars)
		wgx  = l.ldx
		wgy  = l.ldy
	)
	for c := 0; c < ncells; c++ {
		for ivar := 0; ivar < nvars; ivar++ {
			i := c*nvars + ivar
			w := wenoWeight(dudx[i], dudy[i], wenoCentralWeight)
			wsum[i] = w
			wgx[i] = w * dudx[i]
			wgy[i] = w * dudy[i]
		}
	}
	// Ghost cells carry no gradient, so only interior faces contribute
	// neighbor stencils.
	l.pm.RunParallel(func(fMin, fMax int) {
		for f := fMin; f < fMax; f++ {
			if f < nbface {
				continue
			}
			left, right := m.FaceCells(f)
			for ivar := 0; ivar < nvars; ivar++ {
				var (
					il = left*nvars + ivar
					ir = right*nvars + ivar
					wl = wenoWeight(dudx[il], dudy[il], 1)
					wr = wenoWeight(dudx[ir], dudy[ir], 1)
				)
				utils.AtomicAddFloat64(&wsum[left*nvars+ivar], wr)
				utils.AtomicAddFloat64(&wgx[left*nvars+ivar], wr*dudx[ir])
				utils.AtomicAddFloat64(&wgy[left*nvars+ivar], wr*dudy[ir])
				utils.AtomicAddFloat64(&wsum[right*nvars+ivar], wl)
				utils.AtomicAddFloat64(&wgx[right*nvars+ivar], wl*dudx[il])
				utils.AtomicAddFloat64(&wgy[right*nvars+ivar], wl*dudy[il])
			}
		}
	})
	for i := range wsum {
		wgx[i] /= wsum[i]
		wgy[i] /= wsum[i]
	}
	l.extrapolate(u, wgx, wgy, nil, uleft, uright)
}
