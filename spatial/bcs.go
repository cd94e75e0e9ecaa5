package spatial

import (
	"fmt"
	"math"
	"strings"

	"github.com/leshihua/fvens/mesh"
	"github.com/leshihua/fvens/physics"
)

// BCKind identifies a boundary condition policy. Each boundary marker id of
// the mesh is bound to exactly one kind at construction.
type BCKind uint8

const (
	// SlipWall mirrors the normal momentum, leaving density, energy and
	// tangential momentum unchanged.
	SlipWall BCKind = iota
	// IsothermalWall zeroes the ghost velocity and recomputes the energy
	// from a prescribed wall temperature.
	IsothermalWall
	// AdiabaticWall zeroes the ghost velocity and recomputes the energy
	// from the interior temperature.
	AdiabaticWall
	// Farfield sets the ghost state to the free-stream reference state
	// unconditionally.
	Farfield
	// InflowOutflow switches between free stream and interior extrapolation
	// on the normal Mach number. Alternate far-field policy; it has never
	// been validated against a known solution, prefer Farfield.
	InflowOutflow
	// VortexInflow prescribes the isentropic supersonic vortex solution of
	// Krivodonova and Berger at the face's radial position.
	VortexInflow
	// Periodic copies the cell average of the paired cell across the domain;
	// the pairing itself is the mesh's concern.
	Periodic
)

var bcNames = map[string]BCKind{
	"slipwall":       SlipWall,
	"isothermalwall": IsothermalWall,
	"adiabaticwall":  AdiabaticWall,
	"farfield":       Farfield,
	"inflowoutflow":  InflowOutflow,
	"vortexinflow":   VortexInflow,
	"periodic":       Periodic,
}

func ParseBCKind(label string) (k BCKind, err error) {
	var ok bool
	if k, ok = bcNames[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unknown boundary condition %q", label)
	}
	return
}

// BC binds a boundary condition kind to its parameters.
type BC struct {
	Kind BCKind
	// WallTemperature is the non-dimensional wall temperature for
	// IsothermalWall; unused otherwise.
	WallTemperature float64
	// Vortex parameters for VortexInflow: Mach number, density and radius
	// at the inner circle of the annulus.
	VortexMach, VortexDensity, VortexRadius float64
}

// PeriodicPairer is implemented by meshes that carry periodic face pairing.
// PeriodicCell returns the real cell on the far side of a periodic boundary
// face.
type PeriodicPairer interface {
	PeriodicCell(f int) int
}

// boundaries dispatches ghost state synthesis on the face marker.
type boundaries struct {
	m        mesh.Mesh
	fs       *physics.FreeStream
	byMarker map[int]BC
	pairer   PeriodicPairer // non-nil iff a Periodic BC is configured
}

// newBoundaries checks up front that every boundary face's marker is bound
// to a condition, so a face with a stray marker fails construction instead
// of silently producing an uninitialized ghost state during assembly.
func newBoundaries(m mesh.Mesh, fs *physics.FreeStream, byMarker map[int]BC) (*boundaries, error) {
	b := &boundaries{m: m, fs: fs, byMarker: byMarker}
	for f := 0; f < m.NumBoundaryFaces(); f++ {
		bc, ok := byMarker[m.FaceMarker(f)]
		if !ok {
			return nil, fmt.Errorf("boundary face %d has marker %d with no boundary condition bound to it",
				f, m.FaceMarker(f))
		}
		if bc.Kind == Periodic {
			if b.pairer == nil {
				p, ok := m.(PeriodicPairer)
				if !ok {
					return nil, fmt.Errorf("marker %d is periodic but the mesh carries no face pairing",
						m.FaceMarker(f))
				}
				b.pairer = p
			}
			if b.pairer.PeriodicCell(f) < 0 {
				return nil, fmt.Errorf("periodic boundary face %d (marker %d) has no paired partner",
					f, m.FaceMarker(f))
			}
		}
	}
	return b, nil
}

// ghostState synthesizes the exterior state of boundary face f from the
// interior state ins. u is the full cell state field, consulted only by the
// periodic condition.
func (b *boundaries) ghostState(f int, ins [4]float64, u []float64) (bs [4]float64) {
	var (
		g      = b.fs.Gamma
		nx, ny = b.m.FaceNormal(f)
		bc     = b.byMarker[b.m.FaceMarker(f)]
	)
	switch bc.Kind {
	case SlipWall:
		vni := (ins[1]*nx + ins[2]*ny) / ins[0]
		bs[0] = ins[0]
		bs[1] = ins[1] - 2*vni*nx*ins[0]
		bs[2] = ins[2] - 2*vni*ny*ins[0]
		bs[3] = ins[3]

	case IsothermalWall:
		// T = g*p/rho, so p = rho*T/g
		bs[0] = ins[0]
		bs[3] = ins[0] * bc.WallTemperature / g / (g - 1.)

	case AdiabaticWall:
		pi := (g - 1.) * (ins[3] - 0.5*(ins[1]*ins[1]+ins[2]*ins[2])/ins[0])
		bs[0] = ins[0]
		bs[3] = pi / (g - 1.)

	case Farfield:
		bs = b.fs.Qinf

	case InflowOutflow:
		var (
			vni = (ins[1]*nx + ins[2]*ny) / ins[0]
			pi  = (g - 1.) * (ins[3] - 0.5*(ins[1]*ins[1]+ins[2]*ins[2])/ins[0])
			ci  = math.Sqrt(g * pi / ins[0])
		)
		if vni/ci < 1 {
			bs = b.fs.Qinf
		} else {
			bs = ins
		}

	case VortexInflow:
		n1, n2 := b.m.FaceNodes(f)
		x1, y1 := b.m.NodeCoords(n1)
		x2, y2 := b.m.NodeCoords(n2)
		bs = supersonicVortexState(g, bc.VortexMach, bc.VortexRadius, bc.VortexDensity,
			0.5*(x1+x2), 0.5*(y1+y2))

	case Periodic:
		cell := b.pairer.PeriodicCell(f)
		copy(bs[:], u[cell*physics.NVARS:cell*physics.NVARS+physics.NVARS])
	}
	return
}

// GhostState exposes the ghost state of boundary face f for the interior
// state ins, for diagnostics and verification. u is the cell state field,
// needed only when the face is periodic.
func (e *Euler) GhostState(f int, ins [4]float64, u []float64) [4]float64 {
	return e.bcs.ghostState(f, ins, u)
}

// supersonicVortexState evaluates the isentropic vortex of Krivodonova and
// Berger (JCP 211, 2006) at point (x,y): flow circles the origin clockwise
// with Mach number Mi, density rhoi at the inner radius ri.
func supersonicVortexState(g, Mi, ri, rhoi, x, y float64) (q [4]float64) {
	var (
		r    = math.Hypot(x, y)
		fac  = 1. + 0.5*(g-1.)*Mi*Mi*(1.-ri*ri/(r*r))
		rho  = rhoi * math.Pow(fac, 1./(g-1.))
		ci   = math.Sqrt(math.Pow(rhoi, g-1.))
		vmag = ci * Mi * ri / r
		p    = math.Pow(rho, g) / g
	)
	q[0] = rho
	q[1] = rho * vmag * y / r
	q[2] = -rho * vmag * x / r
	q[3] = p/(g-1.) + 0.5*rho*vmag*vmag
	return
}
