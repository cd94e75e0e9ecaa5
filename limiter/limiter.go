// Package limiter converts cell averages and gradients into left/right
// face-extrapolated states. The limited variants keep extrapolated values
// inside the range spanned by the adjacent cell averages; all variants
// reduce to plain linear extrapolation on locally monotone data.
package limiter

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
	WENO
	VANALBADA
	BARTHJESPERSEN
	VENKATAKRISHNAN
)

var Names = map[string]Type{
	"none":            NONE,
	"weno":            WENO,
	"vanalbada":       VANALBADA,
	"barthjespersen":  BARTHJESPERSEN,
	"venkatakrishnan": VENKATAKRISHNAN,
}

func ParseType(label string) (t Type, err error) {
	var ok bool
	if t, ok = Names[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unknown limiter %q", label)
	}
	return
}

// Limiter computes face states uleft, uright (nfaces*nvars each) from cell
// states u, ghost states ug and gradients dudx, dudy. For boundary faces
// only uleft is written; the right state there is the synthesized ghost
// state, filled in by the assembler.
type Limiter interface {
	ComputeFaceValues(u, ug, dudx, dudy, uleft, uright []float64)
}

func New(t Type, m mesh.Mesh, gc *geometry.Cache, nvars int) (l Limiter, err error) {
	base := newBase(m, gc, nvars)
	switch t {
	case NONE:
		l = &None{base}
	case WENO:
		l = &WENOLimiter{base: base}
	case VANALBADA:
		l = &VanAlbada{base}
	case BARTHJESPERSEN:
		l = &bounded{base: base, factor: barthJespersenFactor}
	case VENKATAKRISHNAN:
		l = &bounded{base: base, factor: venkatakrishnanFactor}
	default:
		err = fmt.Errorf("unknown limiter %d", t)
	}
	return
}

type base struct {
	m     mesh.Mesh
	gc    *geometry.Cache
	nvars int
	pm    *utils.PartitionMap // over faces
}

func newBase(m mesh.Mesh, gc *geometry.Cache, nvars int) base {
	return base{m: m, gc: gc, nvars: nvars, pm: utils.NewPartitionMap(0, m.NumFaces())}
}

// extrapolate writes linear face values at the first quadrature point using
// per-cell gradients scaled by scale (scale == nil means unlimited).
func (b *base) extrapolate(u, dudx, dudy, scale, uleft, uright []float64) {
	var (
		m      = b.m
		nvars  = b.nvars
		nbface = m.NumBoundaryFaces()
	)
	b.pm.RunParallel(func(fMin, fMax int) {
		for f := fMin; f < fMax; f++ {
			var (
				left, right = m.FaceCells(f)
				qp          = b.gc.QuadPoints[f][0]
				rcl         = b.gc.CellCentroid[left]
			)
			for ivar := 0; ivar < nvars; ivar++ {
				il := left*nvars + ivar
				phi := 1.0
				if scale != nil {
					phi = scale[il]
				}
				uleft[f*nvars+ivar] = u[il] + phi*(dudx[il]*(qp[0]-rcl[0])+dudy[il]*(qp[1]-rcl[1]))
			}
			if f >= nbface {
				rcr := b.gc.CellCentroid[right]
				for ivar := 0; ivar < nvars; ivar++ {
					ir := right*nvars + ivar
					phi := 1.0
					if scale != nil {
						phi = scale[ir]
					}
					uright[f*nvars+ivar] = u[ir] + phi*(dudx[ir]*(qp[0]-rcr[0])+dudy[ir]*(qp[1]-rcr[1]))
				}
			}
		}
	})
}

// None applies the raw linear reconstruction with no limiting.
type None struct {
	base
}

func (l *None) ComputeFaceValues(u, ug, dudx, dudy, uleft, uright []float64) {
	l.extrapolate(u, dudx, dudy, nil, uleft, uright)
}
