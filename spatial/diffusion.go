package spatial

import (
	"math"

	"github.com/leshihua/fvens/geometry"
	"github.com/leshihua/fvens/mesh"
	"github.com/leshihua/fvens/reconstruction"
	"github.com/leshihua/fvens/utils"
)

// Diffusion is a scalar model operator on the same face-based assembly
// skeleton as the Euler discretization: R(u) per cell is the surface
// integral of the diffusive flux -nu grad(u) minus the volume source. It is
// mainly a shakedown vehicle for reconstruction and Jacobian plumbing on a
// single variable, and doubles as a manufactured-solution test bed.
type Diffusion struct {
	M  mesh.Mesh
	GC *geometry.Cache

	nu  float64
	rec reconstruction.Reconstructor
	// Dirichlet boundary value at (x,y); applied on every marker.
	boundary func(x, y float64) float64
	// optional volume source at (x,y)
	source func(x, y float64) float64

	pmFaces    *utils.PartitionMap
	ug         []float64
	dudx, dudy []float64
}

func NewDiffusion(m mesh.Mesh, rt reconstruction.Type, nu float64,
	boundary, source func(x, y float64) float64) (d *Diffusion, err error) {
	d = &Diffusion{
		M:        m,
		nu:       nu,
		boundary: boundary,
		source:   source,
		pmFaces:  utils.NewPartitionMap(0, m.NumFaces()),
		ug:       make([]float64, m.NumBoundaryFaces()),
		dudx:     make([]float64, m.NumCells()),
		dudy:     make([]float64, m.NumCells()),
	}
	if d.GC, err = geometry.NewCache(m, geometry.GhostAboutMidpoint, 1); err != nil {
		return nil, err
	}
	if d.rec, err = reconstruction.New(rt, m, d.GC, 1); err != nil {
		return nil, err
	}
	return
}

func (d *Diffusion) ghostValue(f int, ui float64) float64 {
	n1, n2 := d.M.FaceNodes(f)
	x1, y1 := d.M.NodeCoords(n1)
	x2, y2 := d.M.NodeCoords(n2)
	// linear extrapolation through the prescribed face midpoint value
	return 2*d.boundary(0.5*(x1+x2), 0.5*(y1+y2)) - ui
}

// ComputeResidual assembles R(u) into res (both ncells long, res zeroed
// here). The face gradient is the mean of the two cell gradients with the
// compact jump correction along the line between the centroids.
func (d *Diffusion) ComputeResidual(u, res []float64) {
	var (
		m      = d.M
		nbface = m.NumBoundaryFaces()
	)
	for i := range res {
		res[i] = 0
	}
	for f := 0; f < nbface; f++ {
		left, _ := m.FaceCells(f)
		d.ug[f] = d.ghostValue(f, u[left])
	}
	d.rec.ComputeGradients(u, d.ug, d.dudx, d.dudy)

	d.pmFaces.RunParallel(func(fMin, fMax int) {
		for f := fMin; f < fMax; f++ {
			var (
				left, right = m.FaceCells(f)
				nx, ny      = m.FaceNormal(f)
				length      = m.FaceLength(f)
				rc          = d.GC.CellCentroid[left]
				rn          = d.GC.NeighborCentroid(m, f)
				dist        = math.Hypot(rn[0]-rc[0], rn[1]-rc[1])
				ex, ey      = (rn[0] - rc[0]) / dist, (rn[1] - rc[1]) / dist
			)
			var un, gx, gy float64
			if f < nbface {
				un = d.ug[f]
				gx, gy = d.dudx[left], d.dudy[left]
			} else {
				un = u[right]
				gx = 0.5 * (d.dudx[left] + d.dudx[right])
				gy = 0.5 * (d.dudy[left] + d.dudy[right])
			}
			jump := (un-u[left])/dist - (gx*ex + gy*ey)
			gx += jump * ex
			gy += jump * ey
			fl := -d.nu * (gx*nx + gy*ny) * length
			utils.AtomicAddFloat64(&res[left], fl)
			if right >= 0 {
				utils.AtomicAddFloat64(&res[right], -fl)
			}
		}
	})

	if d.source != nil {
		for c := 0; c < m.NumCells(); c++ {
			rc := d.GC.CellCentroid[c]
			res[c] -= d.source(rc[0], rc[1]) * m.CellArea(c)
		}
	}
}

// ComputeJacobian assembles the compact two-point linearization of the
// diffusive flux, nu*len/dist per face, into the 1x1-block matrix A. The
// gradient-average part of the face flux is not differentiated, matching
// the frozen treatment of the Euler Jacobian.
func (d *Diffusion) ComputeJacobian(A utils.BlockMatrix) {
	var (
		m      = d.M
		nbface = m.NumBoundaryFaces()
		blk    [1]float64
	)
	A.Zero()
	for f := 0; f < m.NumFaces(); f++ {
		var (
			left, right = m.FaceCells(f)
			length      = m.FaceLength(f)
			coeff       = d.nu * length / d.GC.CentroidDistance(m, f)
		)
		blk[0] = coeff
		A.AddToBlock(left, left, blk[:])
		if f >= nbface {
			A.AddToBlock(right, right, blk[:])
			blk[0] = -coeff
			A.AddToBlock(left, right, blk[:])
			A.AddToBlock(right, left, blk[:])
		} else {
			// the ghost value moves opposite the interior value, doubling
			// the diagonal coupling
			A.AddToBlock(left, left, blk[:])
		}
	}
}
