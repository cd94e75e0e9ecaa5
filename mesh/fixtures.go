package mesh

import "math"

// Small canonical grids used by tests and convergence studies.

// TwoTriangles builds the unit square split along the diagonal into two
// triangles. Every boundary edge gets the given marker.
func TwoTriangles(marker int) (*Grid, error) {
	coords := [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	cells := [][]int{{0, 1, 2}, {0, 2, 3}}
	return NewGrid(coords, cells, func(n1, n2 int) int { return marker })
}

// RectTriGrid triangulates an nx x ny structured grid over the rectangle
// [x0,x1] x [y0,y1], splitting each quad along its diagonal. Boundary edges
// receive the marker for the side they lie on.
func RectTriGrid(x0, y0, x1, y1 float64, nx, ny int,
	markerBottom, markerRight, markerTop, markerLeft int) (*Grid, error) {
	var (
		coords [][2]float64
		cells  [][]int
		dx     = (x1 - x0) / float64(nx)
		dy     = (y1 - y0) / float64(ny)
	)
	node := func(i, j int) int { return i + j*(nx+1) }
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			coords = append(coords, [2]float64{x0 + float64(i)*dx, y0 + float64(j)*dy})
		}
	}
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			a, b, c, d := node(i, j), node(i+1, j), node(i+1, j+1), node(i, j+1)
			cells = append(cells, []int{a, b, c}, []int{a, c, d})
		}
	}
	eps := 1e-12 * (math.Abs(x1-x0) + math.Abs(y1-y0))
	markerFor := func(n1, n2 int) int {
		mx := 0.5 * (coords[n1][0] + coords[n2][0])
		my := 0.5 * (coords[n1][1] + coords[n2][1])
		switch {
		case math.Abs(my-y0) < eps:
			return markerBottom
		case math.Abs(mx-x1) < eps:
			return markerRight
		case math.Abs(my-y1) < eps:
			return markerTop
		default:
			return markerLeft
		}
	}
	return NewGrid(coords, cells, markerFor)
}

// RectQuadGrid builds an nx x ny grid of axis-aligned quadrilaterals over
// [x0,x1] x [y0,y1]. All face normals are axis-aligned, which makes it the
// fixture of choice when a scheme's exact branches require supersonic
// normal velocity on every face.
func RectQuadGrid(x0, y0, x1, y1 float64, nx, ny int,
	markerBottom, markerRight, markerTop, markerLeft int) (*Grid, error) {
	var (
		coords [][2]float64
		cells  [][]int
		dx     = (x1 - x0) / float64(nx)
		dy     = (y1 - y0) / float64(ny)
	)
	node := func(i, j int) int { return i + j*(nx+1) }
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			coords = append(coords, [2]float64{x0 + float64(i)*dx, y0 + float64(j)*dy})
		}
	}
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			cells = append(cells, []int{node(i, j), node(i+1, j), node(i+1, j+1), node(i, j+1)})
		}
	}
	eps := 1e-12 * (math.Abs(x1-x0) + math.Abs(y1-y0))
	markerFor := func(n1, n2 int) int {
		mx := 0.5 * (coords[n1][0] + coords[n2][0])
		my := 0.5 * (coords[n1][1] + coords[n2][1])
		switch {
		case math.Abs(my-y0) < eps:
			return markerBottom
		case math.Abs(mx-x1) < eps:
			return markerRight
		case math.Abs(my-y1) < eps:
			return markerTop
		default:
			return markerLeft
		}
	}
	return NewGrid(coords, cells, markerFor)
}

// AnnularTriGrid triangulates the quarter annulus r in [ri,ro], theta in
// [0,pi/2]. The vortex circles the origin clockwise, so the theta=pi/2 arc
// (on the y axis) is the inflow and the theta=0 arc (on the x axis) is the
// outflow; the inner and outer circles get the wall markers. This is the
// supersonic-vortex verification domain.
func AnnularTriGrid(ri, ro float64, nr, ntheta int,
	markerInner, markerOuter, markerInflow, markerOutflow int) (*Grid, error) {
	var (
		coords [][2]float64
		cells  [][]int
	)
	node := func(i, j int) int { return i + j*(nr+1) }
	for j := 0; j <= ntheta; j++ {
		theta := 0.5 * math.Pi * float64(j) / float64(ntheta)
		for i := 0; i <= nr; i++ {
			r := ri + (ro-ri)*float64(i)/float64(nr)
			coords = append(coords, [2]float64{r * math.Cos(theta), r * math.Sin(theta)})
		}
	}
	for j := 0; j < ntheta; j++ {
		for i := 0; i < nr; i++ {
			a, b, c, d := node(i, j), node(i+1, j), node(i+1, j+1), node(i, j+1)
			cells = append(cells, []int{a, b, c}, []int{a, c, d})
		}
	}
	eps := 1e-10 * ro
	markerFor := func(n1, n2 int) int {
		mx := 0.5 * (coords[n1][0] + coords[n2][0])
		my := 0.5 * (coords[n1][1] + coords[n2][1])
		r := math.Hypot(mx, my)
		switch {
		case math.Abs(my) < eps:
			return markerOutflow
		case math.Abs(mx) < eps:
			return markerInflow
		case r < 0.5*(ri+ro):
			return markerInner
		default:
			return markerOuter
		}
	}
	return NewGrid(coords, cells, markerFor)
}
