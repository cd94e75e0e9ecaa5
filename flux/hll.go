package flux

import "math"

// waveSpeedEstimates returns the Einfeldt-style left and right signal speed
// bounds built from the one-sided states and the Roe average.
func waveSpeedEstimates(g float64, ul, ur [4]float64, nx, ny float64) (sl, sr float64) {
	var (
		cl, vnl      = soundSpeedAndNormalVel(g, ul, nx, ny)
		cr, vnr      = soundSpeedAndNormalVel(g, ur, nx, ny)
		gm1          = g - 1.
		rhoLs, rhoRs = math.Sqrt(ul[0]), math.Sqrt(ur[0])
		rhoLsRs      = rhoLs + rhoRs
		uL, vL       = ul[1] / ul[0], ul[2] / ul[0]
		uR, vR       = ur[1] / ur[0], ur[2] / ur[0]
		pL           = gm1 * (ul[3] - 0.5*(ul[1]*ul[1]+ul[2]*ul[2])/ul[0])
		pR           = gm1 * (ur[3] - 0.5*(ur[1]*ur[1]+ur[2]*ur[2])/ur[0])
		hL           = (ul[3] + pL) / ul[0]
		hR           = (ur[3] + pR) / ur[0]
		u            = (rhoLs*uL + rhoRs*uR) / rhoLsRs
		v            = (rhoLs*vL + rhoRs*vR) / rhoLsRs
		h            = (rhoLs*hL + rhoRs*hR) / rhoLsRs
		c            = sqrtAbs(gm1 * (h - 0.5*(u*u+v*v)))
		vn           = u*nx + v*ny
	)
	sl = math.Min(vnl-cl, vn-c)
	sr = math.Max(vnr+cr, vn+c)
	return
}

// HLLSolver is the two-wave HLL approximate Riemann solver.
type HLLSolver struct {
	g float64
}

func (s *HLLSolver) Flux(ul, ur [4]float64, nx, ny float64) (f [4]float64) {
	var (
		sl, sr = waveSpeedEstimates(s.g, ul, ur, nx, ny)
		fl     = PhysicalFlux(s.g, ul, nx, ny)
		fr     = PhysicalFlux(s.g, ur, nx, ny)
	)
	switch {
	case sl >= 0:
		f = fl
	case sr <= 0:
		f = fr
	default:
		oosd := 1. / (sr - sl)
		for n := 0; n < 4; n++ {
			f[n] = (sr*fl[n] - sl*fr[n] + sl*sr*(ur[n]-ul[n])) * oosd
		}
	}
	return
}

// Jacobian differentiates the HLL formula holding the signal speed
// estimates fixed.
func (s *HLLSolver) Jacobian(ul, ur [4]float64, nx, ny float64) (dfdl, dfdr [16]float64) {
	var (
		sl, sr = waveSpeedEstimates(s.g, ul, ur, nx, ny)
		al     = PhysicalFluxJacobian(s.g, ul, nx, ny)
		ar     = PhysicalFluxJacobian(s.g, ur, nx, ny)
	)
	switch {
	case sl >= 0:
		dfdl = al
	case sr <= 0:
		dfdr = ar
	default:
		oosd := 1. / (sr - sl)
		for n := 0; n < 16; n++ {
			dfdl[n] = sr * al[n] * oosd
			dfdr[n] = -sl * ar[n] * oosd
		}
		for n := 0; n < 4; n++ {
			dfdl[n*5] -= sl * sr * oosd
			dfdr[n*5] += sl * sr * oosd
		}
	}
	return
}

// HLLCSolver restores the contact wave on top of the HLL signal speeds.
type HLLCSolver struct {
	g float64
}

func (s *HLLCSolver) Flux(ul, ur [4]float64, nx, ny float64) (f [4]float64) {
	var (
		g      = s.g
		gm1    = g - 1.
		sl, sr = waveSpeedEstimates(g, ul, ur, nx, ny)
		fl     = PhysicalFlux(g, ul, nx, ny)
		fr     = PhysicalFlux(g, ur, nx, ny)
		vnl    = (ul[1]*nx + ul[2]*ny) / ul[0]
		vnr    = (ur[1]*nx + ur[2]*ny) / ur[0]
		pL     = gm1 * (ul[3] - 0.5*(ul[1]*ul[1]+ul[2]*ul[2])/ul[0])
		pR     = gm1 * (ur[3] - 0.5*(ur[1]*ur[1]+ur[2]*ur[2])/ur[0])
	)
	switch {
	case sl >= 0:
		return fl
	case sr <= 0:
		return fr
	}
	// Contact (middle) wave speed
	sm := (ur[0]*vnr*(sr-vnr) - ul[0]*vnl*(sl-vnl) + pL - pR) /
		(ur[0]*(sr-vnr) - ul[0]*(sl-vnl))

	starState := func(q [4]float64, vn, p, sk float64) (us [4]float64) {
		fac := q[0] * (sk - vn) / (sk - sm)
		us[0] = fac
		us[1] = fac * (q[1]/q[0] + (sm-vn)*nx)
		us[2] = fac * (q[2]/q[0] + (sm-vn)*ny)
		us[3] = fac * (q[3]/q[0] + (sm-vn)*(sm+p/(q[0]*(sk-vn))))
		return
	}
	if sm >= 0 {
		us := starState(ul, vnl, pL, sl)
		for n := 0; n < 4; n++ {
			f[n] = fl[n] + sl*(us[n]-ul[n])
		}
	} else {
		us := starState(ur, vnr, pR, sr)
		for n := 0; n < 4; n++ {
			f[n] = fr[n] + sr*(us[n]-ur[n])
		}
	}
	return
}

// Jacobian falls back to the frozen-wavespeed HLL linearization; the
// contact-wave dependence on the states is not differentiated.
func (s *HLLCSolver) Jacobian(ul, ur [4]float64, nx, ny float64) (dfdl, dfdr [16]float64) {
	hll := HLLSolver{g: s.g}
	return hll.Jacobian(ul, ur, nx, ny)
}
