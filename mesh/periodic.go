package mesh

import (
	"fmt"
	"math"
)

// PairPeriodic matches the boundary faces of two markers by translated face
// midpoints: the two marker strips must be congruent up to one constant
// offset, which is inferred from the midpoint centroids. Each paired face
// records the cell owning its partner, so boundary conditions can read the
// state across the periodic seam.
func (g *Grid) PairPeriodic(markerA, markerB int) error {
	var facesA, facesB []int
	for f := 0; f < g.nbface; f++ {
		switch g.faces[f].marker {
		case markerA:
			facesA = append(facesA, f)
		case markerB:
			facesB = append(facesB, f)
		}
	}
	if len(facesA) == 0 || len(facesA) != len(facesB) {
		return fmt.Errorf("periodic markers %d and %d have %d and %d faces",
			markerA, markerB, len(facesA), len(facesB))
	}

	mid := func(f int) (x, y float64) {
		x1, y1 := g.NodeCoords(g.faces[f].n1)
		x2, y2 := g.NodeCoords(g.faces[f].n2)
		return 0.5 * (x1 + x2), 0.5 * (y1 + y2)
	}
	var ox, oy float64 // offset from strip A to strip B
	for i := range facesA {
		xa, ya := mid(facesA[i])
		xb, yb := mid(facesB[i])
		ox += (xb - xa) / float64(len(facesA))
		oy += (yb - ya) / float64(len(facesA))
	}

	if g.periodic == nil {
		g.periodic = make(map[int]int)
	}
	var tol float64
	for _, f := range facesA {
		tol = math.Max(tol, 1e-6*g.faces[f].length)
	}
	for _, fa := range facesA {
		xa, ya := mid(fa)
		found := -1
		for _, fb := range facesB {
			xb, yb := mid(fb)
			if math.Hypot(xb-xa-ox, yb-ya-oy) <= tol {
				found = fb
				break
			}
		}
		if found < 0 {
			return fmt.Errorf("no periodic partner for face %d on marker %d", fa, markerA)
		}
		g.periodic[fa] = g.faces[found].left
		g.periodic[found] = g.faces[fa].left
	}
	return nil
}

// PeriodicCell returns the cell owning the partner of a paired periodic
// boundary face. Unpaired faces return -1.
func (g *Grid) PeriodicCell(f int) int {
	cell, ok := g.periodic[f]
	if !ok {
		return -1
	}
	return cell
}
