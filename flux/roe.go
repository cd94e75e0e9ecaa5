package flux

import "math"

// Roe computes the Roe approximate Riemann solver. The momentum is rotated
// into the face frame, the one-dimensional Roe wave decomposition is applied
// along the normal, and the result is rotated back to Cartesian components.
type Roe struct {
	g float64
}

func rotateIn(q [4]float64, nx, ny float64) (qr [4]float64) {
	qr[0] = q[0]
	qr[1] = q[1]*nx + q[2]*ny
	qr[2] = -q[1]*ny + q[2]*nx
	qr[3] = q[3]
	return
}

func (s *Roe) Flux(ul, ur [4]float64, nx, ny float64) (f [4]float64) {
	var (
		g   = s.g
		gm1 = g - 1.
		ql  = rotateIn(ul, nx, ny)
		qr  = rotateIn(ur, nx, ny)
	)
	var (
		rhoL, uL, vL = ql[0], ql[1] / ql[0], ql[2] / ql[0]
		rhoR, uR, vR = qr[0], qr[1] / qr[0], qr[2] / qr[0]
		pL           = gm1 * (ql[3] - 0.5*(ql[1]*ql[1]+ql[2]*ql[2])/ql[0])
		pR           = gm1 * (qr[3] - 0.5*(qr[1]*qr[1]+qr[2]*qr[2])/qr[0])
		hL           = (ql[3] + pL) / rhoL
		hR           = (qr[3] + pR) / rhoR
	)
	// In the rotated frame the face normal is (1,0).
	fL := PhysicalFlux(g, ql, 1, 0)
	fR := PhysicalFlux(g, qr, 1, 0)

	// Roe average state
	rhoLs, rhoRs := math.Sqrt(rhoL), math.Sqrt(rhoR)
	rhoLsRs := rhoLs + rhoRs
	rho := rhoLs * rhoRs
	u := (rhoLs*uL + rhoRs*uR) / rhoLsRs
	v := (rhoLs*vL + rhoRs*vR) / rhoLsRs
	h := (rhoLs*hL + rhoRs*hR) / rhoLsRs
	c2 := gm1 * (h - 0.5*(u*u+v*v))
	c := sqrtAbs(c2)

	// Wave strengths scaled by the wave-speed magnitudes
	dW1 := -0.5*(rho*(uR-uL))/c + 0.5*(pR-pL)/c2
	dW2 := (rhoR - rhoL) - (pR-pL)/c2
	dW3 := rho * (vR - vL)
	dW4 := 0.5*(rho*(uR-uL))/c + 0.5*(pR-pL)/c2
	dW1 = math.Abs(u-c) * dW1
	dW2 = math.Abs(u) * dW2
	dW3 = math.Abs(u) * dW3
	dW4 = math.Abs(u+c) * dW4

	f[0] = 0.5*(fL[0]+fR[0]) - 0.5*(dW1+dW2+dW4)
	f[1] = 0.5*(fL[1]+fR[1]) - 0.5*(dW1*(u-c)+dW2*u+dW4*(u+c))
	f[2] = 0.5*(fL[2]+fR[2]) - 0.5*(dW1*v+dW2*v+dW3+dW4*v)
	f[3] = 0.5*(fL[3]+fR[3]) - 0.5*(dW1*(h-u*c)+0.5*dW2*(u*u+v*v)+dW3*v+dW4*(h+u*c))

	// rotate momentum back to Cartesian
	f[1], f[2] = nx*f[1]-ny*f[2], ny*f[1]+nx*f[2]
	return
}

// Jacobian freezes the Roe-average dissipation at its scalar bound
// |vn|+c, giving the same structure as the Rusanov linearization but with
// the Roe average wave speed. The exact Roe derivative would also
// differentiate the average state; that term is dropped deliberately.
func (s *Roe) Jacobian(ul, ur [4]float64, nx, ny float64) (dfdl, dfdr [16]float64) {
	var (
		g            = s.g
		al           = PhysicalFluxJacobian(g, ul, nx, ny)
		ar           = PhysicalFluxJacobian(g, ur, nx, ny)
		cl, vnl      = soundSpeedAndNormalVel(g, ul, nx, ny)
		cr, vnr      = soundSpeedAndNormalVel(g, ur, nx, ny)
		rhoLs, rhoRs = math.Sqrt(ul[0]), math.Sqrt(ur[0])
		vn           = (rhoLs*vnl + rhoRs*vnr) / (rhoLs + rhoRs)
		c            = (rhoLs*cl + rhoRs*cr) / (rhoLs + rhoRs)
		lam          = math.Abs(vn) + c
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
