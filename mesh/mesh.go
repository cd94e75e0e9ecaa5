package mesh

// Mesh is the read-only contract the discretization queries. Faces are
// numbered with the boundary block first: [0, NumBoundaryFaces) are boundary
// faces, [NumBoundaryFaces, NumFaces) are interior faces. Every component of
// the discretization relies on that ordering.
type Mesh interface {
	NumCells() int
	NumNodes() int
	NumFaces() int
	NumBoundaryFaces() int

	// FaceCells returns the owner (left) cell and the neighbor (right)
	// cell of a face. Boundary faces return right == -1.
	FaceCells(f int) (left, right int)
	// FaceNormal is the unit normal pointing out of the owner cell.
	FaceNormal(f int) (nx, ny float64)
	FaceLength(f int) float64
	// FaceMarker is the boundary-condition marker id of a boundary face;
	// interior faces return 0.
	FaceMarker(f int) int
	FaceNodes(f int) (n1, n2 int)

	NodeCoords(n int) (x, y float64)
	CellNodes(c int) []int
	CellArea(c int) float64
}
