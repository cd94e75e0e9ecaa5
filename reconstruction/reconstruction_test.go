package reconstruction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leshihua/fvens/geometry"
	"github.com/leshihua/fvens/mesh"
)

// linearField fills cell averages and ghost averages by evaluating an affine
// function at the cell and ghost centroids. For an affine field the centroid
// value equals the cell average, so exact reconstruction is well defined.
func linearField(m mesh.Mesh, gc *geometry.Cache, nvars int, a, bx, by float64) (u, ug []float64) {
	u = make([]float64, m.NumCells()*nvars)
	ug = make([]float64, m.NumBoundaryFaces()*nvars)
	for c := 0; c < m.NumCells(); c++ {
		rc := gc.CellCentroid[c]
		for ivar := 0; ivar < nvars; ivar++ {
			u[c*nvars+ivar] = a + bx*rc[0] + by*rc[1] + float64(ivar)
		}
	}
	for f := 0; f < m.NumBoundaryFaces(); f++ {
		rg := gc.GhostCentroid[f]
		for ivar := 0; ivar < nvars; ivar++ {
			ug[f*nvars+ivar] = a + bx*rg[0] + by*rg[1] + float64(ivar)
		}
	}
	return
}

func TestParseReconstructionType(t *testing.T) {
	for name, want := range Names {
		got, err := ParseType(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseType("cubic")
	assert.Error(t, err)
}

func TestConstantReconstruction(t *testing.T) {
	m, err := mesh.RectTriGrid(0, 0, 1, 1, 3, 3, 1, 1, 1, 1)
	require.NoError(t, err)
	gc, err := geometry.NewCache(m, geometry.GhostAboutMidpoint, 1)
	require.NoError(t, err)
	r, err := New(NONE, m, gc, 2)
	require.NoError(t, err)

	u, ug := linearField(m, gc, 2, 1, 3, -2)
	var (
		dudx = make([]float64, m.NumCells()*2)
		dudy = make([]float64, m.NumCells()*2)
	)
	// scribble first to prove the variant overwrites
	for i := range dudx {
		dudx[i], dudy[i] = 7, -7
	}
	r.ComputeGradients(u, ug, dudx, dudy)
	for i := range dudx {
		assert.Zero(t, dudx[i])
		assert.Zero(t, dudy[i])
	}
}

func TestGreenGaussConstantField(t *testing.T) {
	// Green-Gauss is exact at least for constants on any closed cell
	m, err := mesh.RectTriGrid(0, 0, 1, 1, 4, 4, 1, 1, 1, 1)
	require.NoError(t, err)
	gc, err := geometry.NewCache(m, geometry.GhostAboutMidpoint, 1)
	require.NoError(t, err)
	r, err := New(GREENGAUSS, m, gc, 1)
	require.NoError(t, err)

	u, ug := linearField(m, gc, 1, 4.2, 0, 0)
	var (
		dudx = make([]float64, m.NumCells())
		dudy = make([]float64, m.NumCells())
	)
	r.ComputeGradients(u, ug, dudx, dudy)
	for c := 0; c < m.NumCells(); c++ {
		assert.InDelta(t, 0., dudx[c], 1e-13)
		assert.InDelta(t, 0., dudy[c], 1e-13)
	}
}

func TestGreenGaussQuadGridLinearField(t *testing.T) {
	// on an orthogonal quad grid the face-average quadrature is exact for
	// affine fields, so the gradients are recovered to roundoff
	m, err := mesh.RectQuadGrid(0, 0, 2, 1, 4, 2, 1, 1, 1, 1)
	require.NoError(t, err)
	gc, err := geometry.NewCache(m, geometry.GhostAboutMidpoint, 1)
	require.NoError(t, err)
	r, err := New(GREENGAUSS, m, gc, 1)
	require.NoError(t, err)

	u, ug := linearField(m, gc, 1, 0.5, 1.5, -2.5)
	var (
		dudx = make([]float64, m.NumCells())
		dudy = make([]float64, m.NumCells())
	)
	r.ComputeGradients(u, ug, dudx, dudy)
	for c := 0; c < m.NumCells(); c++ {
		assert.InDelta(t, 1.5, dudx[c], 1e-12)
		assert.InDelta(t, -2.5, dudy[c], 1e-12)
	}
}

func TestLeastSquaresLinearExactness(t *testing.T) {
	// weighted least squares reproduces affine fields exactly on any mesh
	m, err := mesh.RectTriGrid(0, 0, 2, 1, 5, 3, 1, 2, 3, 4)
	require.NoError(t, err)
	gc, err := geometry.NewCache(m, geometry.GhostAboutMidpoint, 1)
	require.NoError(t, err)
	r, err := New(LEASTSQUARES, m, gc, 2)
	require.NoError(t, err)

	u, ug := linearField(m, gc, 2, -1, 0.7, 2.2)
	var (
		dudx = make([]float64, m.NumCells()*2)
		dudy = make([]float64, m.NumCells()*2)
	)
	r.ComputeGradients(u, ug, dudx, dudy)
	ls := r.(*WeightedLeastSquares)
	for c := 0; c < m.NumCells(); c++ {
		require.False(t, ls.Degenerate(c))
		for ivar := 0; ivar < 2; ivar++ {
			assert.InDelta(t, 0.7, dudx[c*2+ivar], 1e-11)
			assert.InDelta(t, 2.2, dudy[c*2+ivar], 1e-11)
		}
	}
}

func TestLeastSquaresDegenerateFallback(t *testing.T) {
	// an extremely flat strip makes every stencil nearly collinear; those
	// cells must be flagged and fall back to zero gradients instead of
	// amplifying roundoff through a near-singular normal matrix
	m, err := mesh.RectTriGrid(0, 0, 1, 1e-9, 4, 1, 1, 1, 1, 1)
	require.NoError(t, err)
	gc, err := geometry.NewCache(m, geometry.GhostAboutMidpoint, 1)
	require.NoError(t, err)
	r, err := New(LEASTSQUARES, m, gc, 1)
	require.NoError(t, err)
	ls := r.(*WeightedLeastSquares)

	nDegenerate := 0
	for c := 0; c < m.NumCells(); c++ {
		if ls.Degenerate(c) {
			nDegenerate++
		}
	}
	require.Greater(t, nDegenerate, 0)

	u, ug := linearField(m, gc, 1, 0, 1, 0)
	var (
		dudx = make([]float64, m.NumCells())
		dudy = make([]float64, m.NumCells())
	)
	r.ComputeGradients(u, ug, dudx, dudy)
	for c := 0; c < m.NumCells(); c++ {
		if ls.Degenerate(c) {
			assert.Zero(t, dudx[c])
			assert.Zero(t, dudy[c])
		}
	}
}
