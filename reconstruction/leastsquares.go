package reconstruction

import (
	"math"

	"github.com/leshihua/fvens/geometry"
	"github.com/leshihua/fvens/mesh"
	"github.com/leshihua/fvens/utils"
)

// WeightedLeastSquares fits a linear field per cell over its face neighbors,
// weighted by inverse squared centroid distance. The 2x2 normal matrix
// depends only on geometry, so it is inverted once at construction. Cells
// whose neighbor configuration is nearly collinear get a singular normal
// matrix; those cells are flagged and fall back to a zero gradient, which
// locally reduces the scheme to first order.
type WeightedLeastSquares struct {
	m     mesh.Mesh
	gc    *geometry.Cache
	nvars int
	pm    *utils.PartitionMap // over faces

	// inv holds the inverse normal matrix per cell as [a11,a12,a21,a22];
	// degenerate marks cells using the zero-gradient fallback.
	inv        [][4]float64
	degenerate []bool
}

const singularTol = 1e-12

func newWeightedLeastSquares(m mesh.Mesh, gc *geometry.Cache, nvars int) *WeightedLeastSquares {
	var (
		ncells = m.NumCells()
		ls     = &WeightedLeastSquares{
			m:          m,
			gc:         gc,
			nvars:      nvars,
			pm:         utils.NewPartitionMap(0, m.NumFaces()),
			inv:        make([][4]float64, ncells),
			degenerate: make([]bool, ncells),
		}
		a = make([][3]float64, ncells) // symmetric [sum w dx2, sum w dxdy, sum w dy2]
	)
	accumulate := func(cell int, dx, dy float64) {
		w := 1. / (dx*dx + dy*dy)
		a[cell][0] += w * dx * dx
		a[cell][1] += w * dx * dy
		a[cell][2] += w * dy * dy
	}
	for f := 0; f < m.NumFaces(); f++ {
		left, right := m.FaceCells(f)
		rc := gc.CellCentroid[left]
		rn := gc.NeighborCentroid(m, f)
		accumulate(left, rn[0]-rc[0], rn[1]-rc[1])
		if right >= 0 {
			accumulate(right, rc[0]-rn[0], rc[1]-rn[1])
		}
	}
	for c := 0; c < ncells; c++ {
		det := a[c][0]*a[c][2] - a[c][1]*a[c][1]
		scale := a[c][0] + a[c][2]
		if math.Abs(det) <= singularTol*scale*scale {
			ls.degenerate[c] = true
			continue
		}
		oodet := 1. / det
		ls.inv[c] = [4]float64{a[c][2] * oodet, -a[c][1] * oodet, -a[c][1] * oodet, a[c][0] * oodet}
	}
	return ls
}

// Degenerate reports whether the given cell uses the zero-gradient fallback.
func (ls *WeightedLeastSquares) Degenerate(cell int) bool { return ls.degenerate[cell] }

func (ls *WeightedLeastSquares) ComputeGradients(u, ug, dudx, dudy []float64) {
	var (
		m      = ls.m
		gc     = ls.gc
		nvars  = ls.nvars
		nbface = m.NumBoundaryFaces()
		ncells = m.NumCells()
		// right-hand sides, accumulated per cell: sum w dx du, sum w dy du
		bx = make([]float64, ncells*nvars)
		by = make([]float64, ncells*nvars)
	)
	ls.pm.RunParallel(func(fMin, fMax int) {
		for f := fMin; f < fMax; f++ {
			var (
				left, right = m.FaceCells(f)
				rc          = gc.CellCentroid[left]
				rn          = gc.NeighborCentroid(m, f)
				dx, dy      = rn[0] - rc[0], rn[1] - rc[1]
				w           = 1. / (dx*dx + dy*dy)
			)
			for ivar := 0; ivar < nvars; ivar++ {
				var du float64
				if f < nbface {
					du = ug[f*nvars+ivar] - u[left*nvars+ivar]
				} else {
					du = u[right*nvars+ivar] - u[left*nvars+ivar]
				}
				utils.AtomicAddFloat64(&bx[left*nvars+ivar], w*dx*du)
				utils.AtomicAddFloat64(&by[left*nvars+ivar], w*dy*du)
				if right >= 0 {
					// du flips sign together with (dx,dy), so the products repeat
					utils.AtomicAddFloat64(&bx[right*nvars+ivar], w*dx*du)
					utils.AtomicAddFloat64(&by[right*nvars+ivar], w*dy*du)
				}
			}
		}
	})
	for c := 0; c < ncells; c++ {
		if ls.degenerate[c] {
			for ivar := 0; ivar < nvars; ivar++ {
				dudx[c*nvars+ivar] = 0
				dudy[c*nvars+ivar] = 0
			}
			continue
		}
		iv := ls.inv[c]
		for ivar := 0; ivar < nvars; ivar++ {
			gx := iv[0]*bx[c*nvars+ivar] + iv[1]*by[c*nvars+ivar]
			gy := iv[2]*bx[c*nvars+ivar] + iv[3]*by[c*nvars+ivar]
			dudx[c*nvars+ivar] = gx
			dudy[c*nvars+ivar] = gy
		}
	}
}
