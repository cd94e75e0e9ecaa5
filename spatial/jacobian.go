package spatial

import (
	"github.com/leshihua/fvens/mesh"
	"github.com/leshihua/fvens/physics"
	"github.com/leshihua/fvens/utils"
)

// InteriorConnectivity lists the (owner, neighbor) cell pair of every
// interior face, in face order. This is the sparsity graph a utils.BlockDLU
// for this mesh is built on.
func InteriorConnectivity(m mesh.Mesh) [][2]int {
	conn := make([][2]int, 0, m.NumFaces()-m.NumBoundaryFaces())
	for f := m.NumBoundaryFaces(); f < m.NumFaces(); f++ {
		left, right := m.FaceCells(f)
		conn = append(conn, [2]int{left, right})
	}
	return conn
}

// ComputeJacobian assembles d(residual)/d(u) at the cell averages u into A.
// The face flux F(ul, ur) enters the owner residual with a plus sign and
// the neighbor residual with a minus sign, so with L = -dF/d(ul)*len and
// U = +dF/d(ur)*len per interior face the blocks are
//
//	A[owner, owner]    += -L      A[owner, neighbor] += U
//	A[neighbor, owner] += L       A[neighbor, neighbor] += -U
//
// For a boundary face the ghost state is held frozen: only dF/d(ul) enters,
// on the owner's diagonal. The linearization is therefore exact only up to
// the ghost-state coupling and any wave-speed freezing inside the scheme's
// Jacobian; both approximations affect Newton convergence rate, not the
// converged solution.
func (e *Euler) ComputeJacobian(u []float64, A utils.BlockMatrix) {
	var (
		m      = e.M
		nvars  = physics.NVARS
		nbface = m.NumBoundaryFaces()
		blk    [16]float64
	)
	A.Zero()

	for f := 0; f < nbface; f++ {
		var (
			left, _ = m.FaceCells(f)
			nx, ny  = m.FaceNormal(f)
			length  = m.FaceLength(f)
			ins     [4]float64
		)
		copy(ins[:], u[left*nvars:(left+1)*nvars])
		bs := e.bcs.ghostState(f, ins, u)
		dfdl, _ := e.jsolver.Jacobian(ins, bs, nx, ny)
		for n := range blk {
			blk[n] = dfdl[n] * length
		}
		A.AddToBlock(left, left, blk[:])
	}

	for f := nbface; f < m.NumFaces(); f++ {
		var (
			left, right = m.FaceCells(f)
			nx, ny      = m.FaceNormal(f)
			length      = m.FaceLength(f)
			ul, ur      [4]float64
		)
		copy(ul[:], u[left*nvars:(left+1)*nvars])
		copy(ur[:], u[right*nvars:(right+1)*nvars])
		dfdl, dfdr := e.jsolver.Jacobian(ul, ur, nx, ny)

		for n := range blk {
			blk[n] = -dfdl[n] * length
		}
		A.AddToBlock(right, left, blk[:]) // L
		for n := range blk {
			blk[n] = -blk[n]
		}
		A.AddToBlock(left, left, blk[:]) // -L

		for n := range blk {
			blk[n] = dfdr[n] * length
		}
		A.AddToBlock(left, right, blk[:]) // U
		for n := range blk {
			blk[n] = -blk[n]
		}
		A.AddToBlock(right, right, blk[:]) // -U
	}
}
