package mesh

import (
	"fmt"
	"math"
)

type face struct {
	left, right int
	n1, n2      int
	nx, ny      float64
	length      float64
	marker      int
}

// Grid is an in-memory unstructured mesh built from node coordinates and
// cell-to-node lists (counterclockwise). Face topology, outward normals and
// areas are derived at construction. It satisfies Mesh.
type Grid struct {
	coords   [][2]float64
	cells    [][]int
	areas    []float64
	faces    []face // boundary faces first
	nbface   int
	periodic map[int]int // boundary face -> cell across the periodic seam
}

// NewGrid derives the face topology of the given cells. markerFor assigns a
// boundary marker id to each unshared (boundary) edge, given its two node
// ids in the owner cell's counterclockwise order.
func NewGrid(coords [][2]float64, cells [][]int, markerFor func(n1, n2 int) int) (*Grid, error) {
	g := &Grid{
		coords: coords,
		cells:  cells,
		areas:  make([]float64, len(cells)),
	}
	for c, nodes := range cells {
		if len(nodes) < 3 {
			return nil, fmt.Errorf("cell %d has %d nodes, need at least 3", c, len(nodes))
		}
		g.areas[c] = polygonArea(coords, nodes)
		if g.areas[c] <= 0 {
			return nil, fmt.Errorf("cell %d has non-positive area %g; nodes must be counterclockwise", c, g.areas[c])
		}
	}

	type edgeUse struct {
		cell, n1, n2 int
	}
	firstUse := make(map[[2]int]edgeUse)
	var interior, boundary []face
	for c, nodes := range cells {
		for i := range nodes {
			n1, n2 := nodes[i], nodes[(i+1)%len(nodes)]
			key := [2]int{min(n1, n2), max(n1, n2)}
			if prev, seen := firstUse[key]; seen {
				f := newFace(coords, prev.cell, c, prev.n1, prev.n2, 0)
				if f.length == 0 {
					return nil, fmt.Errorf("degenerate face between cells %d and %d", prev.cell, c)
				}
				interior = append(interior, f)
				delete(firstUse, key)
			} else {
				firstUse[key] = edgeUse{cell: c, n1: n1, n2: n2}
			}
		}
	}
	// second pass in cell order so the boundary numbering is deterministic
	for c, nodes := range cells {
		for i := range nodes {
			n1, n2 := nodes[i], nodes[(i+1)%len(nodes)]
			key := [2]int{min(n1, n2), max(n1, n2)}
			if use, unshared := firstUse[key]; unshared && use.cell == c {
				f := newFace(coords, c, -1, n1, n2, markerFor(n1, n2))
				if f.length == 0 {
					return nil, fmt.Errorf("degenerate boundary face on cell %d", c)
				}
				boundary = append(boundary, f)
			}
		}
	}
	g.nbface = len(boundary)
	g.faces = append(boundary, interior...)
	return g, nil
}

func newFace(coords [][2]float64, left, right, n1, n2, marker int) face {
	var (
		dx  = coords[n2][0] - coords[n1][0]
		dy  = coords[n2][1] - coords[n1][1]
		len = math.Hypot(dx, dy)
	)
	// With counterclockwise cells, (dy,-dx) points out of the owner.
	return face{
		left: left, right: right,
		n1: n1, n2: n2,
		nx: dy / len, ny: -dx / len,
		length: len,
		marker: marker,
	}
}

func polygonArea(coords [][2]float64, nodes []int) (area float64) {
	for i := range nodes {
		p, q := coords[nodes[i]], coords[nodes[(i+1)%len(nodes)]]
		area += p[0]*q[1] - q[0]*p[1]
	}
	return 0.5 * area
}

func (g *Grid) NumCells() int         { return len(g.cells) }
func (g *Grid) NumNodes() int         { return len(g.coords) }
func (g *Grid) NumFaces() int         { return len(g.faces) }
func (g *Grid) NumBoundaryFaces() int { return g.nbface }

func (g *Grid) FaceCells(f int) (left, right int) { return g.faces[f].left, g.faces[f].right }
func (g *Grid) FaceNormal(f int) (nx, ny float64) { return g.faces[f].nx, g.faces[f].ny }
func (g *Grid) FaceLength(f int) float64          { return g.faces[f].length }
func (g *Grid) FaceMarker(f int) int              { return g.faces[f].marker }
func (g *Grid) FaceNodes(f int) (n1, n2 int)      { return g.faces[f].n1, g.faces[f].n2 }

func (g *Grid) NodeCoords(n int) (x, y float64) { return g.coords[n][0], g.coords[n][1] }
func (g *Grid) CellNodes(c int) []int           { return g.cells[c] }
func (g *Grid) CellArea(c int) float64          { return g.areas[c] }
