package limiter

import (
	"math"

	"github.com/leshihua/fvens/utils"
)

// bounded is the shared machinery of the cell-wise limiters that scale the
// whole gradient by a single factor per cell and variable. Three face-loop
// passes: gather the min/max of the adjacent averages per cell, reduce the
// limiting factor over the cell's faces, then extrapolate with the scaled
// gradient. Each pass is order independent, so the face loops run in
// parallel with atomic reductions.
type bounded struct {
	base
	// factor maps an extrapolated increment d and the allowed bounds around
	// the cell average to a scaling in [0,1]. h is the cell length scale.
	factor func(d, umin, umax, uc, h float64) float64
}

func barthJespersenFactor(d, umin, umax, uc, h float64) float64 {
	switch {
	case d > 0:
		return math.Min(1, (umax-uc)/d)
	case d < 0:
		return math.Min(1, (umin-uc)/d)
	}
	return 1
}

// venkatakrishnanK controls how aggressively the smooth limiter switches
// off in nearly uniform regions.
const venkatakrishnanK = 5.0

func venkatakrishnanFactor(d, umin, umax, uc, h float64) float64 {
	eps2 := venkatakrishnanK * h
	eps2 = eps2 * eps2 * eps2
	var dp float64
	switch {
	case d > 0:
		dp = umax - uc
	case d < 0:
		dp = umin - uc
	default:
		return 1
	}
	return (dp*dp + 2*dp*d + eps2) / (dp*dp + 2*d*d + dp*d + eps2)
}

func (l *bounded) ComputeFaceValues(u, ug, dudx, dudy, uleft, uright []float64) {
	var (
		m      = l.m
		nvars  = l.nvars
		nbface = m.NumBoundaryFaces()
		ncells = m.NumCells()
		umin   = make([]float64, ncells*nvars)
		umax   = make([]float64, ncells*nvars)
		phi    = make([]float64, ncells*nvars)
	)
	for c := 0; c < ncells; c++ {
		for ivar := 0; ivar < nvars; ivar++ {
			umin[c*nvars+ivar] = u[c*nvars+ivar]
			umax[c*nvars+ivar] = u[c*nvars+ivar]
			phi[c*nvars+ivar] = 1
		}
	}
	l.pm.RunParallel(func(fMin, fMax int) {
		for f := fMin; f < fMax; f++ {
			left, right := m.FaceCells(f)
			for ivar := 0; ivar < nvars; ivar++ {
				var un float64
				if f < nbface {
					un = ug[f*nvars+ivar]
				} else {
					un = u[right*nvars+ivar]
				}
				utils.AtomicMinFloat64(&umin[left*nvars+ivar], un)
				utils.AtomicMaxFloat64(&umax[left*nvars+ivar], un)
				if f >= nbface {
					utils.AtomicMinFloat64(&umin[right*nvars+ivar], u[left*nvars+ivar])
					utils.AtomicMaxFloat64(&umax[right*nvars+ivar], u[left*nvars+ivar])
				}
			}
		}
	})
	l.pm.RunParallel(func(fMin, fMax int) {
		for f := fMin; f < fMax; f++ {
			var (
				left, right = l.m.FaceCells(f)
				qp          = l.gc.QuadPoints[f][0]
			)
			l.reduceCell(left, qp, u, dudx, dudy, umin, umax, phi)
			if f >= nbface {
				l.reduceCell(right, qp, u, dudx, dudy, umin, umax, phi)
			}
		}
	})
	l.extrapolate(u, dudx, dudy, phi, uleft, uright)
}

func (l *bounded) reduceCell(cell int, qp [2]float64, u, dudx, dudy, umin, umax, phi []float64) {
	var (
		nvars = l.nvars
		rc    = l.gc.CellCentroid[cell]
		h     = math.Sqrt(l.m.CellArea(cell))
	)
	for ivar := 0; ivar < nvars; ivar++ {
		i := cell*nvars + ivar
		d := dudx[i]*(qp[0]-rc[0]) + dudy[i]*(qp[1]-rc[1])
		utils.AtomicMinFloat64(&phi[i], l.factor(d, umin[i], umax[i], u[i], h))
	}
}
