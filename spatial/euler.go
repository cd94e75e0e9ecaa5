// Package spatial assembles the cell-centered finite volume discretization
// of the 2D compressible Euler equations: residual evaluation with per-cell
// time step bounds, analytic block Jacobian assembly and matrix-free
// Jacobian action. The discretization is defined over any mesh.Mesh; all
// scheme choices are fixed at construction.
package spatial

import (
	"fmt"
	"math"

	"github.com/leshihua/fvens/flux"
	"github.com/leshihua/fvens/geometry"
	"github.com/leshihua/fvens/limiter"
	"github.com/leshihua/fvens/mesh"
	"github.com/leshihua/fvens/physics"
	"github.com/leshihua/fvens/reconstruction"
	"github.com/leshihua/fvens/utils"
)

// Options selects the scheme combination of an Euler discretization. The
// zero value asks for first-order Van Leer with no reconstruction, which is
// the most robust (and least accurate) combination.
type Options struct {
	InviscidFlux flux.Type
	// JacobianFlux may differ from InviscidFlux; a cheaper scheme here
	// gives a frozen (inexact Newton) Jacobian.
	JacobianFlux   flux.Type
	Reconstruction reconstruction.Type
	Limiter        limiter.Type
	GhostPolicy    geometry.GhostPolicy
	// NGauss is the number of quadrature points per face; 0 means 1.
	NGauss      int
	SecondOrder bool
	// ReconstructPrimitive reconstructs and limits (rho, u, v, p) instead
	// of the conserved variables.
	ReconstructPrimitive bool
	// BCs binds each boundary marker id of the mesh to a condition.
	BCs map[int]BC

	Verbose bool
}

// Euler is the spatial discretization of the compressible Euler equations
// on one mesh. Scratch buffers are reused across evaluations, so a single
// Euler value must not be used from multiple goroutines at once; the
// parallelism lives inside each evaluation.
type Euler struct {
	M  mesh.Mesh
	FS *physics.FreeStream
	GC *geometry.Cache

	opts    Options
	rsolver flux.RiemannSolver
	jsolver flux.RiemannSolver
	rec     reconstruction.Reconstructor
	lim     limiter.Limiter
	bcs     *boundaries

	pmFaces  *utils.PartitionMap
	pmBFaces *utils.PartitionMap
	pmCells  *utils.PartitionMap

	// per-evaluation scratch
	uleft, uright []float64 // nfaces*NVARS face state pair
	ug            []float64 // nbfaces*NVARS ghost averages
	dudx, dudy    []float64 // ncells*NVARS gradients
	integ         []float64 // ncells wave speed integral
	wcell, wghost []float64 // primitive scratch, allocated on demand
}

func NewEuler(m mesh.Mesh, fs *physics.FreeStream, opts Options) (e *Euler, err error) {
	if opts.NGauss == 0 {
		opts.NGauss = 1
	}
	e = &Euler{
		M:        m,
		FS:       fs,
		opts:     opts,
		pmFaces:  utils.NewPartitionMap(0, m.NumFaces()),
		pmBFaces: utils.NewPartitionMap(0, m.NumBoundaryFaces()),
		pmCells:  utils.NewPartitionMap(0, m.NumCells()),
		uleft:    make([]float64, m.NumFaces()*physics.NVARS),
		uright:   make([]float64, m.NumFaces()*physics.NVARS),
		ug:       make([]float64, m.NumBoundaryFaces()*physics.NVARS),
		dudx:     make([]float64, m.NumCells()*physics.NVARS),
		dudy:     make([]float64, m.NumCells()*physics.NVARS),
		integ:    make([]float64, m.NumCells()),
	}
	if e.GC, err = geometry.NewCache(m, opts.GhostPolicy, opts.NGauss); err != nil {
		return nil, err
	}
	if e.rsolver, err = flux.New(opts.InviscidFlux, fs.Gamma); err != nil {
		return nil, err
	}
	if e.jsolver, err = flux.New(opts.JacobianFlux, fs.Gamma); err != nil {
		return nil, err
	}
	if e.rec, err = reconstruction.New(opts.Reconstruction, m, e.GC, physics.NVARS); err != nil {
		return nil, err
	}
	if e.lim, err = limiter.New(opts.Limiter, m, e.GC, physics.NVARS); err != nil {
		return nil, err
	}
	if e.bcs, err = newBoundaries(m, fs, opts.BCs); err != nil {
		return nil, err
	}
	if opts.Verbose {
		fmt.Printf("Euler discretization: %d cells, %d faces (%d boundary)\n",
			m.NumCells(), m.NumFaces(), m.NumBoundaryFaces())
		fmt.Printf("  flux: %v, jacobian flux: %v, second order: %v\n",
			opts.InviscidFlux, opts.JacobianFlux, opts.SecondOrder)
		fmt.Printf("  free stream: Mach %.4f, alpha %.4f rad, gamma %.3f\n",
			fs.Minf, fs.Alpha, fs.Gamma)
	}
	return
}

// InitializeFreeStream sets every cell average to the free-stream state.
func (e *Euler) InitializeFreeStream(u []float64) {
	for c := 0; c < e.M.NumCells(); c++ {
		copy(u[c*physics.NVARS:], e.FS.Qinf[:])
	}
}

// InitializeVortexFlow sets a circling initial guess for the supersonic
// vortex case: free-stream density and energy with a unit-magnitude
// clockwise velocity about the origin at each cell centroid.
func (e *Euler) InitializeVortexFlow(u []float64) {
	for c := 0; c < e.M.NumCells(); c++ {
		var (
			rc    = e.GC.CellCentroid[c]
			theta = math.Atan2(rc[1], rc[0]) - 0.5*math.Pi
		)
		u[c*physics.NVARS+0] = e.FS.Rhoinf
		u[c*physics.NVARS+1] = e.FS.Rhoinf * math.Cos(theta)
		u[c*physics.NVARS+2] = e.FS.Rhoinf * math.Sin(theta)
		u[c*physics.NVARS+3] = e.FS.Qinf[3]
	}
}

// ComputeResidual assembles the flux integral R(u) per cell into res (both
// ncells*NVARS, res zeroed here). If dtm is non-nil it additionally receives
// the per-cell explicit time step bound, area over the wave speed integral
// sum((|vn|+c)*len) of the cell's faces.
func (e *Euler) ComputeResidual(u, res, dtm []float64) {
	var (
		m      = e.M
		nvars  = physics.NVARS
		nbface = m.NumBoundaryFaces()
	)
	for i := range res {
		res[i] = 0
	}
	for c := range e.integ {
		e.integ[c] = 0
	}

	// Boundary faces see the owner average as their left state; the second
	// order path overwrites it with the reconstructed value below.
	e.pmBFaces.RunParallel(func(fMin, fMax int) {
		for f := fMin; f < fMax; f++ {
			left, _ := m.FaceCells(f)
			copy(e.uleft[f*nvars:(f+1)*nvars], u[left*nvars:(left+1)*nvars])
		}
	})

	if e.opts.SecondOrder {
		e.computeGhostAverages(u)
		if e.opts.ReconstructPrimitive {
			e.reconstructPrimitive(u)
		} else {
			e.rec.ComputeGradients(u, e.ug, e.dudx, e.dudy)
			e.lim.ComputeFaceValues(u, e.ug, e.dudx, e.dudy, e.uleft, e.uright)
		}
	} else {
		e.pmFaces.RunParallel(func(fMin, fMax int) {
			for f := fMin; f < fMax; f++ {
				if f < nbface {
					continue
				}
				left, right := m.FaceCells(f)
				copy(e.uleft[f*nvars:(f+1)*nvars], u[left*nvars:(left+1)*nvars])
				copy(e.uright[f*nvars:(f+1)*nvars], u[right*nvars:(right+1)*nvars])
			}
		})
	}

	// Ghost right states for boundary faces, from the (possibly
	// reconstructed) left face states.
	e.pmBFaces.RunParallel(func(fMin, fMax int) {
		for f := fMin; f < fMax; f++ {
			var ins [4]float64
			copy(ins[:], e.uleft[f*nvars:(f+1)*nvars])
			bs := e.bcs.ghostState(f, ins, u)
			copy(e.uright[f*nvars:(f+1)*nvars], bs[:])
		}
	})

	e.pmFaces.RunParallel(func(fMin, fMax int) {
		for f := fMin; f < fMax; f++ {
			var (
				left, right = m.FaceCells(f)
				nx, ny      = m.FaceNormal(f)
				length      = m.FaceLength(f)
				ul, ur      [4]float64
			)
			copy(ul[:], e.uleft[f*nvars:(f+1)*nvars])
			copy(ur[:], e.uright[f*nvars:(f+1)*nvars])
			fl := e.rsolver.Flux(ul, ur, nx, ny)
			for ivar := 0; ivar < nvars; ivar++ {
				utils.AtomicAddFloat64(&res[left*nvars+ivar], fl[ivar]*length)
			}
			if right >= 0 {
				for ivar := 0; ivar < nvars; ivar++ {
					utils.AtomicAddFloat64(&res[right*nvars+ivar], -fl[ivar]*length)
				}
			}
			cl, vnl := physics.SoundSpeedAndNormalVel(e.FS.Gamma, ul, nx, ny)
			utils.AtomicAddFloat64(&e.integ[left], (math.Abs(vnl)+cl)*length)
			if right >= 0 {
				cr, vnr := physics.SoundSpeedAndNormalVel(e.FS.Gamma, ur, nx, ny)
				utils.AtomicAddFloat64(&e.integ[right], (math.Abs(vnr)+cr)*length)
			}
		}
	})

	if dtm != nil {
		e.pmCells.RunParallel(func(cMin, cMax int) {
			for c := cMin; c < cMax; c++ {
				dtm[c] = m.CellArea(c) / e.integ[c]
			}
		})
	}
}

// computeGhostAverages fills e.ug with the ghost cell averages synthesized
// from the owner cell averages.
func (e *Euler) computeGhostAverages(u []float64) {
	var (
		m     = e.M
		nvars = physics.NVARS
	)
	e.pmBFaces.RunParallel(func(fMin, fMax int) {
		for f := fMin; f < fMax; f++ {
			left, _ := m.FaceCells(f)
			var ins [4]float64
			copy(ins[:], u[left*nvars:(left+1)*nvars])
			bs := e.bcs.ghostState(f, ins, u)
			copy(e.ug[f*nvars:(f+1)*nvars], bs[:])
		}
	})
}

// reconstructPrimitive runs gradient reconstruction and limiting on the
// primitive variables (rho, u, v, p), then converts the face states back to
// conserved variables.
func (e *Euler) reconstructPrimitive(u []float64) {
	var (
		m      = e.M
		fs     = e.FS
		nvars  = physics.NVARS
		nbface = m.NumBoundaryFaces()
	)
	if e.wcell == nil {
		e.wcell = make([]float64, m.NumCells()*nvars)
		e.wghost = make([]float64, nbface*nvars)
	}
	for c := 0; c < m.NumCells(); c++ {
		var q [4]float64
		copy(q[:], u[c*nvars:(c+1)*nvars])
		w := fs.ConservedToPrimitive(q)
		copy(e.wcell[c*nvars:], w[:])
	}
	for f := 0; f < nbface; f++ {
		var q [4]float64
		copy(q[:], e.ug[f*nvars:(f+1)*nvars])
		w := fs.ConservedToPrimitive(q)
		copy(e.wghost[f*nvars:], w[:])
	}
	e.rec.ComputeGradients(e.wcell, e.wghost, e.dudx, e.dudy)
	e.lim.ComputeFaceValues(e.wcell, e.wghost, e.dudx, e.dudy, e.uleft, e.uright)
	for f := 0; f < m.NumFaces(); f++ {
		var w [4]float64
		copy(w[:], e.uleft[f*nvars:(f+1)*nvars])
		q := fs.PrimitiveToConserved(w)
		copy(e.uleft[f*nvars:], q[:])
		if f >= nbface {
			copy(w[:], e.uright[f*nvars:(f+1)*nvars])
			q = fs.PrimitiveToConserved(w)
			copy(e.uright[f*nvars:], q[:])
		}
	}
}
