package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leshihua/fvens/mesh"
)

func TestCacheCentroids(t *testing.T) {
	m, err := mesh.TwoTriangles(1)
	require.NoError(t, err)
	gc, err := NewCache(m, GhostAboutMidpoint, 1)
	require.NoError(t, err)

	{ // node-average centroids of the two unit-square triangles
		for c := 0; c < m.NumCells(); c++ {
			var cx, cy float64
			nodes := m.CellNodes(c)
			for _, n := range nodes {
				x, y := m.NodeCoords(n)
				cx += x
				cy += y
			}
			assert.InDelta(t, cx/3, gc.CellCentroid[c][0], 1e-14)
			assert.InDelta(t, cy/3, gc.CellCentroid[c][1], 1e-14)
		}
	}
	{ // midpoint reflection: ghost = 2*mid - owner centroid
		for f := 0; f < m.NumBoundaryFaces(); f++ {
			owner, _ := m.FaceCells(f)
			n1, n2 := m.FaceNodes(f)
			x1, y1 := m.NodeCoords(n1)
			x2, y2 := m.NodeCoords(n2)
			rc := gc.CellCentroid[owner]
			assert.InDelta(t, x1+x2-rc[0], gc.GhostCentroid[f][0], 1e-14)
			assert.InDelta(t, y1+y2-rc[1], gc.GhostCentroid[f][1], 1e-14)
		}
	}
}

func TestCacheGhostAboutFace(t *testing.T) {
	m, err := mesh.TwoTriangles(1)
	require.NoError(t, err)
	gc, err := NewCache(m, GhostAboutFace, 1)
	require.NoError(t, err)

	// reflection about the face line: the ghost is the owner centroid's
	// mirror image, so its distance to both face endpoints matches
	for f := 0; f < m.NumBoundaryFaces(); f++ {
		owner, _ := m.FaceCells(f)
		n1, n2 := m.FaceNodes(f)
		x1, y1 := m.NodeCoords(n1)
		x2, y2 := m.NodeCoords(n2)
		var (
			rc = gc.CellCentroid[owner]
			rg = gc.GhostCentroid[f]
		)
		assert.InDelta(t, math.Hypot(rc[0]-x1, rc[1]-y1), math.Hypot(rg[0]-x1, rg[1]-y1), 1e-13)
		assert.InDelta(t, math.Hypot(rc[0]-x2, rc[1]-y2), math.Hypot(rg[0]-x2, rg[1]-y2), 1e-13)
		// and it lies on the other side
		nx, ny := m.FaceNormal(f)
		mx, my := 0.5*(x1+x2), 0.5*(y1+y2)
		assert.Less(t, ((rc[0]-mx)*nx+(rc[1]-my)*ny)*((rg[0]-mx)*nx+(rg[1]-my)*ny), 0.)
	}
}

func TestCacheQuadPoints(t *testing.T) {
	m, err := mesh.TwoTriangles(1)
	require.NoError(t, err)

	{ // a single point sits at the face midpoint
		gc, err := NewCache(m, GhostAboutMidpoint, 1)
		require.NoError(t, err)
		for f := 0; f < m.NumFaces(); f++ {
			n1, n2 := m.FaceNodes(f)
			x1, y1 := m.NodeCoords(n1)
			x2, y2 := m.NodeCoords(n2)
			require.Len(t, gc.QuadPoints[f], 1)
			assert.InDelta(t, 0.5*(x1+x2), gc.QuadPoints[f][0][0], 1e-14)
			assert.InDelta(t, 0.5*(y1+y2), gc.QuadPoints[f][0][1], 1e-14)
		}
	}
	{ // two points split the face at 1/3 and 2/3
		gc, err := NewCache(m, GhostAboutMidpoint, 2)
		require.NoError(t, err)
		f := 0
		n1, n2 := m.FaceNodes(f)
		x1, _ := m.NodeCoords(n1)
		x2, _ := m.NodeCoords(n2)
		assert.InDelta(t, x1+(x2-x1)/3, gc.QuadPoints[f][0][0], 1e-14)
		assert.InDelta(t, x1+2*(x2-x1)/3, gc.QuadPoints[f][1][0], 1e-14)
	}
	{ // zero quadrature points is a configuration error
		_, err := NewCache(m, GhostAboutMidpoint, 0)
		assert.Error(t, err)
	}
}

func TestNeighborCentroidAndDistance(t *testing.T) {
	m, err := mesh.TwoTriangles(1)
	require.NoError(t, err)
	gc, err := NewCache(m, GhostAboutMidpoint, 1)
	require.NoError(t, err)

	{ // interior face: the other cell's centroid
		f := m.NumBoundaryFaces()
		_, right := m.FaceCells(f)
		assert.Equal(t, gc.CellCentroid[right], gc.NeighborCentroid(m, f))
	}
	{ // boundary face: the ghost centroid
		assert.Equal(t, gc.GhostCentroid[0], gc.NeighborCentroid(m, 0))
	}
	{ // distance is the straight-line centroid separation
		f := m.NumBoundaryFaces()
		left, right := m.FaceCells(f)
		rc, rn := gc.CellCentroid[left], gc.CellCentroid[right]
		assert.InDelta(t, math.Hypot(rn[0]-rc[0], rn[1]-rc[1]), gc.CentroidDistance(m, f), 1e-14)
	}
}
