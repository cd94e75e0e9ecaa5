package flux

import "math"

func sqrtAbs(x float64) float64 { return math.Sqrt(math.Abs(x)) }

// LaxFriedrichs is the local Lax-Friedrichs (Rusanov) flux: central average
// plus scalar dissipation scaled by the largest local wave speed.
type LaxFriedrichs struct {
	g float64
}

func (s *LaxFriedrichs) maxWaveSpeed(ul, ur [4]float64, nx, ny float64) float64 {
	cl, vnl := soundSpeedAndNormalVel(s.g, ul, nx, ny)
	cr, vnr := soundSpeedAndNormalVel(s.g, ur, nx, ny)
	return math.Max(math.Abs(vnl)+cl, math.Abs(vnr)+cr)
}

func (s *LaxFriedrichs) Flux(ul, ur [4]float64, nx, ny float64) (f [4]float64) {
	var (
		fl  = PhysicalFlux(s.g, ul, nx, ny)
		fr  = PhysicalFlux(s.g, ur, nx, ny)
		lam = s.maxWaveSpeed(ul, ur, nx, ny)
	)
	for n := 0; n < 4; n++ {
		f[n] = 0.5*(fl[n]+fr[n]) - 0.5*lam*(ur[n]-ul[n])
	}
	return
}

// Jacobian freezes the spectral radius: dF/dul = (A(ul) + lam I)/2,
// dF/dur = (A(ur) - lam I)/2.
func (s *LaxFriedrichs) Jacobian(ul, ur [4]float64, nx, ny float64) (dfdl, dfdr [16]float64) {
	var (
		al  = PhysicalFluxJacobian(s.g, ul, nx, ny)
		ar  = PhysicalFluxJacobian(s.g, ur, nx, ny)
		lam = s.maxWaveSpeed(ul, ur, nx, ny)
	)
	for n := 0; n < 16; n++ {
		dfdl[n] = 0.5 * al[n]
		dfdr[n] = 0.5 * ar[n]
	}
	for n := 0; n < 4; n++ {
		dfdl[n*5] += 0.5 * lam
		dfdr[n*5] -= 0.5 * lam
	}
	return
}
