package utils

import (
	"fmt"

	"github.com/james-bowman/sparse"
)

// BlockMatrix is the sparse block-matrix contract the Jacobian assembler
// writes against. Block (i,j) is a bs x bs row-major dense block addressed by
// block-row i and block-column j. AddToBlock accumulates, so repeated
// contributions to the same block (diagonal blocks in particular) sum up.
type BlockMatrix interface {
	BlockSize() int
	Zero()
	AddToBlock(i, j int, vals []float64)
}

// BlockDLU stores a block matrix whose sparsity follows a face-connectivity
// graph: one diagonal block per cell, plus one lower and one upper block per
// interior face. Storage for each group is contiguous; an address map takes a
// block coordinate to its offset, so AddToBlock works for any (i,j) that the
// connectivity allows and panics for one it does not.
type BlockDLU struct {
	Ncells, Nfaces int
	bs             int
	D, L, U        []float64
	conn           [][2]int       // owner, neighbor per interior face
	addr           map[[2]int]int // off-diagonal block coordinate -> offset; negative offsets index U
}

// NewBlockDLU allocates the triplet storage for ncells cells and the given
// interior-face connectivity (conn[f] = [owner, neighbor]).
func NewBlockDLU(ncells, bs int, conn [][2]int) (bm *BlockDLU) {
	var (
		nf  = len(conn)
		bs2 = bs * bs
	)
	bm = &BlockDLU{
		Ncells: ncells,
		Nfaces: nf,
		bs:     bs,
		D:      make([]float64, ncells*bs2),
		L:      make([]float64, nf*bs2),
		U:      make([]float64, nf*bs2),
		conn:   conn,
		addr:   make(map[[2]int]int, 2*nf),
	}
	for f, c := range conn {
		owner, nbr := c[0], c[1]
		// Lower block lives at (neighbor row, owner column), upper at
		// (owner row, neighbor column).
		bm.addr[[2]int{nbr, owner}] = f*bs2 + 1
		bm.addr[[2]int{owner, nbr}] = -(f*bs2 + 1)
	}
	return
}

func (bm *BlockDLU) BlockSize() int { return bm.bs }

func (bm *BlockDLU) Zero() {
	for i := range bm.D {
		bm.D[i] = 0
	}
	for i := range bm.L {
		bm.L[i] = 0
		bm.U[i] = 0
	}
}

func (bm *BlockDLU) AddToBlock(i, j int, vals []float64) {
	var (
		bs2 = bm.bs * bm.bs
	)
	if i == j {
		d := bm.D[i*bs2 : (i+1)*bs2]
		for n, v := range vals {
			d[n] += v
		}
		return
	}
	off, ok := bm.addr[[2]int{i, j}]
	if !ok {
		panic(fmt.Sprintf("block (%d,%d) is not in the face connectivity", i, j))
	}
	blk := bm.L
	if off < 0 {
		blk = bm.U
		off = -off
	}
	b := blk[off-1 : off-1+bs2]
	for n, v := range vals {
		b[n] += v
	}
}

// DiagBlock returns the diagonal block of cell i as a slice view.
func (bm *BlockDLU) DiagBlock(i int) []float64 {
	bs2 := bm.bs * bm.bs
	return bm.D[i*bs2 : (i+1)*bs2]
}

// LowerBlock returns the block at (neighbor row, owner column) of interior
// face f; UpperBlock the block at (owner row, neighbor column).
func (bm *BlockDLU) LowerBlock(f int) []float64 {
	bs2 := bm.bs * bm.bs
	return bm.L[f*bs2 : (f+1)*bs2]
}

func (bm *BlockDLU) UpperBlock(f int) []float64 {
	bs2 := bm.bs * bm.bs
	return bm.U[f*bs2 : (f+1)*bs2]
}

// MulVec computes y = A x for a state-sized vector x (len ncells*bs).
func (bm *BlockDLU) MulVec(x, y []float64) {
	var (
		bs  = bm.bs
		bs2 = bs * bs
	)
	for i := 0; i < bm.Ncells; i++ {
		d := bm.D[i*bs2 : (i+1)*bs2]
		for r := 0; r < bs; r++ {
			var sum float64
			for c := 0; c < bs; c++ {
				sum += d[r*bs+c] * x[i*bs+c]
			}
			y[i*bs+r] = sum
		}
	}
	for f, cn := range bm.conn {
		owner, nbr := cn[0], cn[1]
		l := bm.L[f*bs2 : (f+1)*bs2]
		u := bm.U[f*bs2 : (f+1)*bs2]
		for r := 0; r < bs; r++ {
			var sumL, sumU float64
			for c := 0; c < bs; c++ {
				sumL += l[r*bs+c] * x[owner*bs+c] // row nbr, col owner
				sumU += u[r*bs+c] * x[nbr*bs+c]   // row owner, col nbr
			}
			y[nbr*bs+r] += sumL
			y[owner*bs+r] += sumU
		}
	}
}

// SparseBlockAdapter scatters block contributions into an externally owned
// DOK sparse matrix, for callers that hand the linear system to a scalar
// sparse solver. The DOK can be converted to CSR after assembly.
type SparseBlockAdapter struct {
	M  *sparse.DOK
	bs int
}

func NewSparseBlockAdapter(m *sparse.DOK, bs int) *SparseBlockAdapter {
	return &SparseBlockAdapter{M: m, bs: bs}
}

func (sa *SparseBlockAdapter) BlockSize() int { return sa.bs }

func (sa *SparseBlockAdapter) Zero() {
	sa.M.DoNonZero(func(i, j int, _ float64) {
		sa.M.Set(i, j, 0)
	})
}

func (sa *SparseBlockAdapter) AddToBlock(i, j int, vals []float64) {
	var (
		bs = sa.bs
	)
	for r := 0; r < bs; r++ {
		for c := 0; c < bs; c++ {
			row, col := i*bs+r, j*bs+c
			sa.M.Set(row, col, sa.M.At(row, col)+vals[r*bs+c])
		}
	}
}
