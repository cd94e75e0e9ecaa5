// Package geometry derives and stores the cell and face geometry the
// spatial discretization needs beyond the raw mesh: cell centroids, ghost
// cell centroids for boundary faces, and face quadrature points. Everything
// is computed once at construction and is immutable afterwards, so a Cache
// is safe to share across concurrent evaluations.
package geometry

import (
	"fmt"
	"math"

	"github.com/leshihua/fvens/mesh"
)

// GhostPolicy selects how the ghost cell centroid of a boundary face is
// placed. The two policies are mutually exclusive and fixed at construction.
type GhostPolicy uint8

const (
	// GhostAboutMidpoint reflects the owner centroid about the face
	// midpoint: rg = 2*mid - rc. Default.
	GhostAboutMidpoint GhostPolicy = iota
	// GhostAboutFace reflects the owner centroid about the face line.
	GhostAboutFace
)

type Cache struct {
	// Centroid of each real cell, node-coordinate average.
	CellCentroid [][2]float64
	// Ghost cell centroid per boundary face.
	GhostCentroid [][2]float64
	// NGauss quadrature points per face, evenly spaced between the face
	// endpoints, indexed [face][gauss].
	QuadPoints [][][2]float64
	NGauss     int
}

func NewCache(m mesh.Mesh, policy GhostPolicy, ngauss int) (gc *Cache, err error) {
	if ngauss < 1 {
		return nil, fmt.Errorf("need at least one quadrature point per face, have %d", ngauss)
	}
	gc = &Cache{
		CellCentroid:  make([][2]float64, m.NumCells()),
		GhostCentroid: make([][2]float64, m.NumBoundaryFaces()),
		QuadPoints:    make([][][2]float64, m.NumFaces()),
		NGauss:        ngauss,
	}
	for c := 0; c < m.NumCells(); c++ {
		nodes := m.CellNodes(c)
		var cx, cy float64
		for _, n := range nodes {
			x, y := m.NodeCoords(n)
			cx += x
			cy += y
		}
		gc.CellCentroid[c][0] = cx / float64(len(nodes))
		gc.CellCentroid[c][1] = cy / float64(len(nodes))
	}
	for f := 0; f < m.NumBoundaryFaces(); f++ {
		owner, _ := m.FaceCells(f)
		rc := gc.CellCentroid[owner]
		n1, n2 := m.FaceNodes(f)
		x1, y1 := m.NodeCoords(n1)
		x2, y2 := m.NodeCoords(n2)
		switch policy {
		case GhostAboutMidpoint:
			gc.GhostCentroid[f][0] = x1 + x2 - rc[0]
			gc.GhostCentroid[f][1] = y1 + y2 - rc[1]
		case GhostAboutFace:
			// Project the centroid onto the face line, then reflect.
			var (
				ex, ey = x2 - x1, y2 - y1
				el2    = ex*ex + ey*ey
				t      = ((rc[0]-x1)*ex + (rc[1]-y1)*ey) / el2
				px, py = x1 + t*ex, y1 + t*ey
			)
			gc.GhostCentroid[f][0] = 2*px - rc[0]
			gc.GhostCentroid[f][1] = 2*py - rc[1]
		default:
			return nil, fmt.Errorf("unknown ghost centroid policy %d", policy)
		}
	}
	for f := 0; f < m.NumFaces(); f++ {
		n1, n2 := m.FaceNodes(f)
		x1, y1 := m.NodeCoords(n1)
		x2, y2 := m.NodeCoords(n2)
		pts := make([][2]float64, ngauss)
		for g := 0; g < ngauss; g++ {
			frac := float64(g+1) / float64(ngauss+1)
			pts[g][0] = x1 + frac*(x2-x1)
			pts[g][1] = y1 + frac*(y2-y1)
		}
		gc.QuadPoints[f] = pts
	}
	return
}

// NeighborCentroid returns the centroid on the right side of a face: the
// neighbor cell centroid for interior faces, the ghost centroid for
// boundary faces.
func (gc *Cache) NeighborCentroid(m mesh.Mesh, f int) [2]float64 {
	if f < m.NumBoundaryFaces() {
		return gc.GhostCentroid[f]
	}
	_, right := m.FaceCells(f)
	return gc.CellCentroid[right]
}

// Distance between the two centroids adjacent to a face.
func (gc *Cache) CentroidDistance(m mesh.Mesh, f int) float64 {
	left, _ := m.FaceCells(f)
	rc := gc.CellCentroid[left]
	rn := gc.NeighborCentroid(m, f)
	return math.Hypot(rn[0]-rc[0], rn[1]-rc[1])
}
