package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFreeStream(t *testing.T) {
	var (
		alpha = 15. * math.Pi / 180.
		fs    = NewFreeStream(0.8, 1.4, alpha, 1.0)
	)
	{ // The free-stream state reproduces its own defining parameters
		assert.InDelta(t, 0.8, fs.GetFlowFunctionQQ(fs.Qinf, Mach), 1e-14)
		assert.InDelta(t, 1.0, fs.GetFlowFunctionQQ(fs.Qinf, Density), 1e-14)
		assert.InDelta(t, 1.0, fs.GetFlowFunctionQQ(fs.Qinf, Velocity), 1e-14)
		assert.InDelta(t, alpha,
			math.Atan2(fs.GetFlowFunctionQQ(fs.Qinf, YVelocity), fs.GetFlowFunctionQQ(fs.Qinf, XVelocity)),
			1e-14)
		assert.InDelta(t, fs.Pinf, fs.GetFlowFunctionQQ(fs.Qinf, StaticPressure), 1e-14)
		assert.InDelta(t, fs.Cinf, fs.GetFlowFunctionQQ(fs.Qinf, SoundSpeed), 1e-14)
	}
	{ // Derived quantities hang together: c^2 = g*p/rho, T = g*p/rho, H = (E+p)/rho
		var (
			p   = fs.GetFlowFunctionQQ(fs.Qinf, StaticPressure)
			c   = fs.GetFlowFunctionQQ(fs.Qinf, SoundSpeed)
			T   = fs.GetFlowFunctionQQ(fs.Qinf, Temperature)
			H   = fs.GetFlowFunctionQQ(fs.Qinf, Enthalpy)
			rho = fs.Qinf[0]
		)
		assert.InDelta(t, fs.Gamma*p/rho, c*c, 1e-14)
		assert.InDelta(t, fs.Gamma*p/rho, T, 1e-14)
		assert.InDelta(t, (fs.Qinf[3]+p)/rho, H, 1e-14)
		assert.InDelta(t, p/math.Pow(rho, fs.Gamma), fs.GetFlowFunctionQQ(fs.Qinf, Entropy), 1e-14)
	}
}

func TestPrimitiveConversion(t *testing.T) {
	fs := NewFreeStream(2.0, 1.4, 0.1, 1.2)
	q := [4]float64{1.3, 0.7, -0.4, 2.9}
	w := fs.ConservedToPrimitive(q)
	assert.InDelta(t, q[0], w[0], 1e-14)
	assert.InDelta(t, q[1]/q[0], w[1], 1e-14)
	assert.InDelta(t, fs.GetFlowFunctionQQ(q, StaticPressure), w[3], 1e-14)

	back := fs.PrimitiveToConserved(w)
	for n := 0; n < NVARS; n++ {
		assert.InDelta(t, q[n], back[n], 1e-14)
	}
}

func TestFlatFieldAccess(t *testing.T) {
	// GetFlowFunction indexes a flat cell-major field
	fs := NewFreeStream(0.5, 1.4, 0, 1.0)
	u := make([]float64, 3*NVARS)
	copy(u[NVARS:], []float64{2, 1, 0, 4})
	assert.Equal(t, 2., fs.GetFlowFunction(u, 1, Density))
	assert.Equal(t, 0.5, fs.GetFlowFunction(u, 1, XVelocity))
	assert.Equal(t, 4., fs.GetFlowFunction(u, 1, Energy))
}

func TestSoundSpeedAndNormalVel(t *testing.T) {
	var (
		q      = [4]float64{1, 0.3, -0.2, 1.5}
		c, vn  = SoundSpeedAndNormalVel(1.4, q, 0, 1)
		fs     = NewFreeStream(1, 1.4, 0, 1)
		cMatch = fs.GetFlowFunctionQQ(q, SoundSpeed)
	)
	assert.InDelta(t, cMatch, c, 1e-14)
	assert.InDelta(t, -0.2, vn, 1e-14)
}
