package spatial

import (
	"math"

	"github.com/leshihua/fvens/physics"
)

// EntropyError returns the area-weighted L2 norm of the relative entropy
// deviation from the free stream,
//
//	sqrt( sum_cells ((s - sinf)/sinf)^2 * area ),
//
// with s = p / rho^gamma. For an isentropic exact solution such as the
// supersonic vortex this is a pure discretization error measure, and its
// decay under mesh refinement exposes the spatial order of accuracy.
func (e *Euler) EntropyError(u []float64) float64 {
	var (
		fs   = e.FS
		sinf = fs.GetFlowFunctionQQ(fs.Qinf, physics.Entropy)
		err  float64
	)
	for c := 0; c < e.M.NumCells(); c++ {
		s := fs.GetFlowFunction(u, c, physics.Entropy)
		ds := (s - sinf) / sinf
		err += ds * ds * e.M.CellArea(c)
	}
	return math.Sqrt(err)
}

// MeshSize is the nominal length scale used when reporting convergence,
// one over the square root of the cell count.
func (e *Euler) MeshSize() float64 {
	return 1. / math.Sqrt(float64(e.M.NumCells()))
}

// PostprocessCell extracts (density, Mach number, pressure) and the velocity
// per cell for plotting.
func (e *Euler) PostprocessCell(u []float64) (scalars [][3]float64, velocities [][2]float64) {
	var (
		fs     = e.FS
		ncells = e.M.NumCells()
	)
	scalars = make([][3]float64, ncells)
	velocities = make([][2]float64, ncells)
	for c := 0; c < ncells; c++ {
		scalars[c][0] = fs.GetFlowFunction(u, c, physics.Density)
		scalars[c][1] = fs.GetFlowFunction(u, c, physics.Mach)
		scalars[c][2] = fs.GetFlowFunction(u, c, physics.StaticPressure)
		velocities[c][0] = fs.GetFlowFunction(u, c, physics.XVelocity)
		velocities[c][1] = fs.GetFlowFunction(u, c, physics.YVelocity)
	}
	return
}

// PostprocessPoint area-averages the cell states onto mesh nodes and
// extracts the same quantities as PostprocessCell, per node.
func (e *Euler) PostprocessPoint(u []float64) (scalars [][3]float64, velocities [][2]float64) {
	var (
		m       = e.M
		fs      = e.FS
		nvars   = physics.NVARS
		npoin   = m.NumNodes()
		up      = make([]float64, npoin*nvars)
		areasum = make([]float64, npoin)
	)
	for c := 0; c < m.NumCells(); c++ {
		area := m.CellArea(c)
		for _, n := range m.CellNodes(c) {
			for ivar := 0; ivar < nvars; ivar++ {
				up[n*nvars+ivar] += u[c*nvars+ivar] * area
			}
			areasum[n] += area
		}
	}
	scalars = make([][3]float64, npoin)
	velocities = make([][2]float64, npoin)
	for n := 0; n < npoin; n++ {
		ooa := 1. / areasum[n]
		for ivar := 0; ivar < nvars; ivar++ {
			up[n*nvars+ivar] *= ooa
		}
		scalars[n][0] = fs.GetFlowFunction(up, n, physics.Density)
		scalars[n][1] = fs.GetFlowFunction(up, n, physics.Mach)
		scalars[n][2] = fs.GetFlowFunction(up, n, physics.StaticPressure)
		velocities[n][0] = fs.GetFlowFunction(up, n, physics.XVelocity)
		velocities[n][1] = fs.GetFlowFunction(up, n, physics.YVelocity)
	}
	return
}
