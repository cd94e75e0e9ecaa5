package flux

import "math"

// VanLeer is the van Leer flux-vector splitting: the flux is the sum of a
// forward-split flux of the left state and a backward-split flux of the
// right state, each a polynomial in the one-sided normal Mach number.
type VanLeer struct {
	g float64
}

func (s *VanLeer) Flux(ul, ur [4]float64, nx, ny float64) (f [4]float64) {
	var (
		g       = s.g
		cl, vnl = soundSpeedAndNormalVel(g, ul, nx, ny)
		cr, vnr = soundSpeedAndNormalVel(g, ur, nx, ny)
		Ml      = vnl / cl
		Mr      = vnr / cr
		fp, fm  [4]float64
		vmagL2  = (ul[1]*ul[1] + ul[2]*ul[2]) / (ul[0] * ul[0])
		vmagR2  = (ur[1]*ur[1] + ur[2]*ur[2]) / (ur[0] * ur[0])
		oog2m1  = 1. / (2. * (g*g - 1.))
		gm1     = g - 1.
	)
	switch {
	case Ml >= 1:
		fp = PhysicalFlux(g, ul, nx, ny)
	case Ml > -1:
		fp[0] = 0.25 * ul[0] * cl * (Ml + 1) * (Ml + 1)
		fp[1] = fp[0] * (ul[1]/ul[0] + nx*(2*cl-vnl)/g)
		fp[2] = fp[0] * (ul[2]/ul[0] + ny*(2*cl-vnl)/g)
		fp[3] = fp[0] * (0.5*(vmagL2-vnl*vnl) + (gm1*vnl+2*cl)*(gm1*vnl+2*cl)*oog2m1)
	}
	switch {
	case Mr <= -1:
		fm = PhysicalFlux(g, ur, nx, ny)
	case Mr < 1:
		fm[0] = -0.25 * ur[0] * cr * (Mr - 1) * (Mr - 1)
		fm[1] = fm[0] * (ur[1]/ur[0] + nx*(-2*cr-vnr)/g)
		fm[2] = fm[0] * (ur[2]/ur[0] + ny*(-2*cr-vnr)/g)
		fm[3] = fm[0] * (0.5*(vmagR2-vnr*vnr) + (gm1*vnr-2*cr)*(gm1*vnr-2*cr)*oog2m1)
	}
	for n := 0; n < 4; n++ {
		f[n] = fp[n] + fm[n]
	}
	return
}

// Jacobian is exact in the supersonic regimes, where the split fluxes
// degenerate to the one-sided physical flux; in the subsonic range the
// splitting coefficients are frozen and the scalar wave-speed bound stands
// in for the split-flux derivatives.
func (s *VanLeer) Jacobian(ul, ur [4]float64, nx, ny float64) (dfdl, dfdr [16]float64) {
	var (
		g       = s.g
		cl, vnl = soundSpeedAndNormalVel(g, ul, nx, ny)
		cr, vnr = soundSpeedAndNormalVel(g, ur, nx, ny)
		Ml      = vnl / cl
		Mr      = vnr / cr
	)
	if Ml >= 1 {
		dfdl = PhysicalFluxJacobian(g, ul, nx, ny)
	} else if Ml > -1 {
		al := PhysicalFluxJacobian(g, ul, nx, ny)
		lam := math.Abs(vnl) + cl
		for n := 0; n < 16; n++ {
			dfdl[n] = 0.5 * al[n]
		}
		for n := 0; n < 4; n++ {
			dfdl[n*5] += 0.5 * lam
		}
	}
	if Mr <= -1 {
		dfdr = PhysicalFluxJacobian(g, ur, nx, ny)
	} else if Mr < 1 {
		ar := PhysicalFluxJacobian(g, ur, nx, ny)
		lam := math.Abs(vnr) + cr
		for n := 0; n < 16; n++ {
			dfdr[n] = 0.5 * ar[n]
		}
		for n := 0; n < 4; n++ {
			dfdr[n*5] -= 0.5 * lam
		}
	}
	return
}
