package spatial

import (
	"math"

	"github.com/leshihua/fvens/physics"
)

// jvEps is the base finite-difference step of the matrix-free product,
// scaled by the inverse norm of the direction vector.
var jvEps = math.Sqrt(math.Nextafter(1, 2)-1) / 10.

// MatrixFree wraps an Euler discretization as a Jacobian-vector operator
// for Krylov solvers: Apply approximates (dR/du + diag(area/dt)) v by a
// one-sided finite difference of the residual, without ever forming the
// matrix. The base residual R(u) is computed once in Set and reused across
// products at the same state.
type MatrixFree struct {
	e *Euler

	u    []float64 // state the product is linearized at
	res  []float64 // R(u)
	dt   []float64 // per-cell time step; nil disables the mass term
	up   []float64 // scratch, u + eps*v
	resp []float64 // scratch, R(u + eps*v)
}

func NewMatrixFree(e *Euler) *MatrixFree {
	n := e.M.NumCells() * physics.NVARS
	return &MatrixFree{
		e:    e,
		u:    make([]float64, n),
		res:  make([]float64, n),
		up:   make([]float64, n),
		resp: make([]float64, n),
	}
}

// Set fixes the linearization state. dt, if non-nil, adds the pseudo-time
// mass term diag(area/dt) to the operator, which is what an implicit
// pseudo-transient iteration solves against.
func (mf *MatrixFree) Set(u, dt []float64) {
	copy(mf.u, u)
	mf.dt = dt
	mf.e.ComputeResidual(mf.u, mf.res, nil)
}

// Apply computes w = J v. A zero direction returns a zero product exactly
// rather than dividing by the zero norm.
func (mf *MatrixFree) Apply(v, w []float64) {
	var vnorm float64
	for _, x := range v {
		vnorm += x * x
	}
	vnorm = math.Sqrt(vnorm)
	if vnorm == 0 {
		for i := range w {
			w[i] = 0
		}
		return
	}
	eps := jvEps / vnorm
	for i := range mf.up {
		mf.up[i] = mf.u[i] + eps*v[i]
	}
	mf.e.ComputeResidual(mf.up, mf.resp, nil)
	ooeps := 1. / eps
	for i := range w {
		w[i] = (mf.resp[i] - mf.res[i]) * ooeps
	}
	if mf.dt != nil {
		for c := 0; c < mf.e.M.NumCells(); c++ {
			fac := mf.e.M.CellArea(c) / mf.dt[c]
			for ivar := 0; ivar < physics.NVARS; ivar++ {
				w[c*physics.NVARS+ivar] += fac * v[c*physics.NVARS+ivar]
			}
		}
	}
}
