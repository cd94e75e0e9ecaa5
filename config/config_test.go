package config

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leshihua/fvens/flux"
	"github.com/leshihua/fvens/geometry"
	"github.com/leshihua/fvens/limiter"
	"github.com/leshihua/fvens/reconstruction"
	"github.com/leshihua/fvens/spatial"
)

const caseYAML = `
Title: inviscid cylinder
FluxScheme: hllc
JacobianFluxScheme: vanleer
Reconstruction: leastsquares
Limiter: venkatakrishnan
SecondOrder: true
GhostPolicy: face
NGauss: 2
Minf: 0.38
Alpha: 2.0
Markers:
  cylinder: 1
  farfield: 2
BCs:
  1:
    Type: slipwall
  2:
    Type: farfield
`

func TestParseAndValidate(t *testing.T) {
	var cfg Config
	require.NoError(t, cfg.Parse([]byte(caseYAML)))

	assert.Equal(t, "inviscid cylinder", cfg.Title)
	assert.Equal(t, map[string]int{"cylinder": 1, "farfield": 2}, cfg.Markers)

	fs, opts, err := cfg.Validate()
	require.NoError(t, err)

	// defaults fill in
	assert.Equal(t, 1.4, fs.Gamma)
	assert.Equal(t, 1.0, fs.Rhoinf)
	assert.Equal(t, 0.38, fs.Minf)
	assert.InDelta(t, 2*math.Pi/180, fs.Alpha, 1e-15)

	assert.Equal(t, flux.HLLC, opts.InviscidFlux)
	assert.Equal(t, flux.VANLEER, opts.JacobianFlux)
	assert.Equal(t, reconstruction.LEASTSQUARES, opts.Reconstruction)
	assert.Equal(t, limiter.VENKATAKRISHNAN, opts.Limiter)
	assert.Equal(t, geometry.GhostAboutFace, opts.GhostPolicy)
	assert.Equal(t, 2, opts.NGauss)
	assert.True(t, opts.SecondOrder)
	require.Len(t, opts.BCs, 2)
	assert.Equal(t, spatial.SlipWall, opts.BCs[1].Kind)
	assert.Equal(t, spatial.Farfield, opts.BCs[2].Kind)
}

func TestValidateJacobianFluxDefaultsToFluxScheme(t *testing.T) {
	var cfg Config
	require.NoError(t, cfg.Parse([]byte(caseYAML)))
	cfg.JacobianFluxScheme = ""
	_, opts, err := cfg.Validate()
	require.NoError(t, err)
	assert.Equal(t, flux.HLLC, opts.JacobianFlux)
}

func TestValidateFirstOrderOmitsSchemes(t *testing.T) {
	var cfg Config
	require.NoError(t, cfg.Parse([]byte(caseYAML)))
	cfg.SecondOrder = false
	cfg.Reconstruction = ""
	cfg.Limiter = ""
	_, opts, err := cfg.Validate()
	require.NoError(t, err)
	assert.Equal(t, reconstruction.NONE, opts.Reconstruction)
	assert.Equal(t, limiter.NONE, opts.Limiter)
}

func TestValidateVortexDefaults(t *testing.T) {
	var cfg Config
	require.NoError(t, cfg.Parse([]byte(caseYAML)))
	cfg.BCs[1] = BCSpec{Type: "vortexinflow"}
	_, opts, err := cfg.Validate()
	require.NoError(t, err)
	bc := opts.BCs[1]
	assert.Equal(t, spatial.VortexInflow, bc.Kind)
	assert.Equal(t, 2.25, bc.VortexMach)
	assert.Equal(t, 1.0, bc.VortexDensity)
	assert.Equal(t, 1.0, bc.VortexRadius)
}

func TestValidateErrors(t *testing.T) {
	mutate := func(f func(*Config)) error {
		var cfg Config
		require.NoError(t, cfg.Parse([]byte(caseYAML)))
		f(&cfg)
		_, _, err := cfg.Validate()
		return err
	}
	assert.Error(t, mutate(func(c *Config) { c.Minf = 0 }))
	assert.Error(t, mutate(func(c *Config) { c.FluxScheme = "ausm" }))
	assert.Error(t, mutate(func(c *Config) { c.JacobianFluxScheme = "ausm" }))
	assert.Error(t, mutate(func(c *Config) { c.Reconstruction = "cubic" }))
	assert.Error(t, mutate(func(c *Config) { c.Limiter = "minmod" }))
	assert.Error(t, mutate(func(c *Config) { c.GhostPolicy = "mirror" }))
	assert.Error(t, mutate(func(c *Config) { c.BCs = nil }))
	assert.Error(t, mutate(func(c *Config) { c.BCs[1] = BCSpec{Type: "hovercraft"} }))
	assert.Error(t, mutate(func(c *Config) { c.BCs[1] = BCSpec{Type: "isothermalwall"} }))
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	var cfg Config
	assert.Error(t, cfg.Parse([]byte("Minf: [not a number")))
}
