// Package reconstruction estimates per-cell solution gradients from cell
// averages and boundary ghost averages. The variants form a closed set
// selected by configuration; all of them write gradients for every variable
// of an nvars-wide state field.
package reconstruction

import (
	"fmt"
	"strings"

	"github.com/leshihua/fvens/geometry"
	"github.com/leshihua/fvens/mesh"
	"github.com/leshihua/fvens/utils"
)

type Type uint

const (
	NONE Type = iota
	GREENGAUSS
	LEASTSQUARES
)

var Names = map[string]Type{
	"none":         NONE,
	"greengauss":   GREENGAUSS,
	"leastsquares": LEASTSQUARES,
}

func ParseType(label string) (t Type, err error) {
	var ok bool
	if t, ok = Names[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unknown reconstruction scheme %q", label)
	}
	return
}

// Reconstructor computes dudx, dudy (ncells*nvars each) from the cell
// state field u (ncells*nvars) and the boundary ghost states ug
// (nbfaces*nvars). Implementations never mutate u or ug.
type Reconstructor interface {
	ComputeGradients(u, ug, dudx, dudy []float64)
}

func New(t Type, m mesh.Mesh, gc *geometry.Cache, nvars int) (r Reconstructor, err error) {
	switch t {
	case NONE:
		r = &Constant{}
	case GREENGAUSS:
		r = newGreenGauss(m, gc, nvars)
	case LEASTSQUARES:
		r = newWeightedLeastSquares(m, gc, nvars)
	default:
		err = fmt.Errorf("unknown reconstruction scheme %d", t)
	}
	return
}

// Constant returns zero gradients, reducing the scheme to first order.
type Constant struct{}

func (c *Constant) ComputeGradients(u, ug, dudx, dudy []float64) {
	for i := range dudx {
		dudx[i] = 0
		dudy[i] = 0
	}
}

// GreenGauss integrates face-averaged states against outward normals over
// each cell boundary, divided by the cell area.
type GreenGauss struct {
	m     mesh.Mesh
	nvars int
	pm    *utils.PartitionMap // over faces
}

func newGreenGauss(m mesh.Mesh, gc *geometry.Cache, nvars int) *GreenGauss {
	return &GreenGauss{
		m:     m,
		nvars: nvars,
		pm:    utils.NewPartitionMap(0, m.NumFaces()),
	}
}

func (gg *GreenGauss) ComputeGradients(u, ug, dudx, dudy []float64) {
	var (
		m      = gg.m
		nvars  = gg.nvars
		nbface = m.NumBoundaryFaces()
	)
	for i := range dudx {
		dudx[i] = 0
		dudy[i] = 0
	}
	gg.pm.RunParallel(func(fMin, fMax int) {
		for f := fMin; f < fMax; f++ {
			var (
				left, right = m.FaceCells(f)
				nx, ny      = m.FaceNormal(f)
				len         = m.FaceLength(f)
			)
			for ivar := 0; ivar < nvars; ivar++ {
				var ubar float64
				if f < nbface {
					ubar = 0.5 * (u[left*nvars+ivar] + ug[f*nvars+ivar])
				} else {
					ubar = 0.5 * (u[left*nvars+ivar] + u[right*nvars+ivar])
				}
				utils.AtomicAddFloat64(&dudx[left*nvars+ivar], ubar*nx*len)
				utils.AtomicAddFloat64(&dudy[left*nvars+ivar], ubar*ny*len)
				if f >= nbface {
					utils.AtomicAddFloat64(&dudx[right*nvars+ivar], -ubar*nx*len)
					utils.AtomicAddFloat64(&dudy[right*nvars+ivar], -ubar*ny*len)
				}
			}
		}
	})
	for c := 0; c < m.NumCells(); c++ {
		ooarea := 1. / m.CellArea(c)
		for ivar := 0; ivar < nvars; ivar++ {
			dudx[c*nvars+ivar] *= ooarea
			dudy[c*nvars+ivar] *= ooarea
		}
	}
}
