package physics

import "math"

const (
	// NVARS is the number of conserved variables: density, two momentum
	// components and total energy.
	NVARS = 4
	// NDIM is the spatial dimension of the discretization.
	NDIM = 2
)

type FlowFunction uint8

const (
	Density FlowFunction = iota
	XMomentum
	YMomentum
	Energy
	Mach
	StaticPressure
	SoundSpeed
	Velocity
	XVelocity
	YVelocity
	Enthalpy
	Temperature
	Entropy
)

func (pf FlowFunction) String() string {
	strings := []string{
		"Density",
		"XMomentum",
		"YMomentum",
		"Energy",
		"Mach",
		"Static Pressure",
		"Sound Speed",
		"Velocity",
		"XVelocity",
		"YVelocity",
		"Enthalpy",
		"Temperature",
		"Entropy",
	}
	return strings[int(pf)]
}

// FreeStream holds the non-dimensional reference state. Density at infinity
// is the density reference and the free-stream velocity magnitude is the
// velocity reference, so Qinf is built directly from Mach number and angle
// of attack.
type FreeStream struct {
	Gamma      float64
	Minf       float64
	Alpha      float64 // radians
	Rhoinf     float64
	Qinf       [4]float64
	Pinf, Cinf float64
	// Viscous reference quantities, carried for wall boundary conditions
	// and future Navier-Stokes terms.
	Tinf, Reinf, Prandtl float64
}

func NewFreeStream(Minf, Gamma, Alpha, Rhoinf float64) (fs *FreeStream) {
	var (
		vinf = 1.0 // velocity magnitude is the reference
		uinf = vinf * math.Cos(Alpha)
		winf = vinf * math.Sin(Alpha)
		pinf = Rhoinf * vinf * vinf / (Gamma * Minf * Minf)
	)
	fs = &FreeStream{
		Gamma:  Gamma,
		Minf:   Minf,
		Alpha:  Alpha,
		Rhoinf: Rhoinf,
		Qinf: [4]float64{
			Rhoinf,
			Rhoinf * uinf,
			Rhoinf * winf,
			pinf/(Gamma-1) + 0.5*Rhoinf*vinf*vinf,
		},
	}
	fs.Pinf = fs.GetFlowFunctionQQ(fs.Qinf, StaticPressure)
	fs.Cinf = fs.GetFlowFunctionQQ(fs.Qinf, SoundSpeed)
	return
}

// GetFlowFunction reads the state of cell at index ind from a flat
// cell-major state field (NVARS entries per cell).
func (fs *FreeStream) GetFlowFunction(u []float64, ind int, pf FlowFunction) (f float64) {
	i := ind * NVARS
	return fs.GetFlowFunctionBase(u[i], u[i+1], u[i+2], u[i+3], pf)
}

func (fs *FreeStream) GetFlowFunctionQQ(q [4]float64, pf FlowFunction) (f float64) {
	return fs.GetFlowFunctionBase(q[0], q[1], q[2], q[3], pf)
}

func (fs *FreeStream) GetFlowFunctionBase(rho, rhoU, rhoV, E float64, pf FlowFunction) (f float64) {
	var (
		Gamma = fs.Gamma
		GM1   = Gamma - 1.
		oorho = 1. / rho
		q     = 0.5 * (rhoU*rhoU + rhoV*rhoV) * oorho
		p     = GM1 * (E - q)
	)
	switch pf {
	case Density:
		f = rho
	case XMomentum:
		f = rhoU
	case YMomentum:
		f = rhoV
	case Energy:
		f = E
	case StaticPressure:
		f = p
	case SoundSpeed:
		f = math.Sqrt(math.Abs(Gamma * p * oorho))
	case Velocity:
		f = math.Sqrt((rhoU*rhoU + rhoV*rhoV)) * oorho
	case XVelocity:
		f = rhoU * oorho
	case YVelocity:
		f = rhoV * oorho
	case Mach:
		C := math.Sqrt(math.Abs(Gamma * p * oorho))
		U := math.Sqrt((rhoU*rhoU + rhoV*rhoV)) * oorho
		f = U / C
	case Enthalpy:
		f = (E + p) * oorho
	case Temperature:
		// Non-dimensional ideal gas: T = gamma p / rho
		f = Gamma * p * oorho
	case Entropy:
		f = p / math.Pow(rho, Gamma)
	}
	return
}

// SoundSpeedAndNormalVel returns the sound speed and the velocity component
// along (nx,ny) of a conserved state.
func SoundSpeedAndNormalVel(g float64, q [4]float64, nx, ny float64) (c, vn float64) {
	var (
		oorho = 1. / q[0]
		p     = (g - 1.) * (q[3] - 0.5*(q[1]*q[1]+q[2]*q[2])*oorho)
	)
	c = math.Sqrt(math.Abs(g * p * oorho))
	vn = (q[1]*nx + q[2]*ny) * oorho
	return
}

// ConservedToPrimitive converts (rho, rhoU, rhoV, E) to (rho, u, v, p).
func (fs *FreeStream) ConservedToPrimitive(q [4]float64) (w [4]float64) {
	var (
		oorho = 1. / q[0]
	)
	w[0] = q[0]
	w[1] = q[1] * oorho
	w[2] = q[2] * oorho
	w[3] = (fs.Gamma - 1.) * (q[3] - 0.5*(q[1]*q[1]+q[2]*q[2])*oorho)
	return
}

// PrimitiveToConserved converts (rho, u, v, p) back to conserved variables.
func (fs *FreeStream) PrimitiveToConserved(w [4]float64) (q [4]float64) {
	q[0] = w[0]
	q[1] = w[0] * w[1]
	q[2] = w[0] * w[2]
	q[3] = w[3]/(fs.Gamma-1.) + 0.5*w[0]*(w[1]*w[1]+w[2]*w[2])
	return
}
