package limiter

import "math"

// muscl blending parameter; 1/3 gives the third-order-accurate upwind-biased
// interpolation on uniform grids.
const musclKappa = 1. / 3.

const vanAlbadaEps = 1e-12

// VanAlbada is the MUSCL face interpolation with the van Albada slope
// limiter: each side blends its own gradient projected on the line between
// the centroids with the central difference across the face, weighted by
// the smoothness ratio of the two.
type VanAlbada struct {
	base
}

func (l *VanAlbada) ComputeFaceValues(u, ug, dudx, dudy, uleft, uright []float64) {
	var (
		m      = l.m
		nvars  = l.nvars
		nbface = m.NumBoundaryFaces()
	)
	l.pm.RunParallel(func(fMin, fMax int) {
		for f := fMin; f < fMax; f++ {
			var (
				left, right = m.FaceCells(f)
				rcl         = l.gc.CellCentroid[left]
				rcr         = l.gc.NeighborCentroid(m, f)
				dx, dy      = rcr[0] - rcl[0], rcr[1] - rcl[1]
			)
			for ivar := 0; ivar < nvars; ivar++ {
				il := left*nvars + ivar
				var dc float64 // central difference across the face
				if f < nbface {
					dc = ug[f*nvars+ivar] - u[il]
				} else {
					dc = u[right*nvars+ivar] - u[il]
				}
				// one-sided slope extrapolated from the left gradient
				dm := 2*(dudx[il]*dx+dudy[il]*dy) - dc
				phi := math.Max(0, (2*dm*dc+vanAlbadaEps)/(dm*dm+dc*dc+vanAlbadaEps))
				uleft[f*nvars+ivar] = u[il] +
					0.25*phi*((1-musclKappa*phi)*dm+(1+musclKappa*phi)*dc)
				if f >= nbface {
					ir := right*nvars + ivar
					dp := 2*(dudx[ir]*dx+dudy[ir]*dy) - dc
					phi = math.Max(0, (2*dp*dc+vanAlbadaEps)/(dp*dp+dc*dc+vanAlbadaEps))
					uright[f*nvars+ivar] = u[ir] -
						0.25*phi*((1-musclKappa*phi)*dp+(1+musclKappa*phi)*dc)
				}
			}
		}
	})
}
