// Package config reads the YAML case description and resolves it into the
// constructor inputs of the spatial discretization. All name-to-scheme
// resolution happens in Validate, so a bad case file fails before any mesh
// work starts.
package config

import (
	"fmt"
	"math"
	"sort"

	"github.com/ghodss/yaml"

	"github.com/leshihua/fvens/flux"
	"github.com/leshihua/fvens/geometry"
	"github.com/leshihua/fvens/limiter"
	"github.com/leshihua/fvens/physics"
	"github.com/leshihua/fvens/reconstruction"
	"github.com/leshihua/fvens/spatial"
)

// BCSpec binds one mesh boundary marker to a condition.
type BCSpec struct {
	Type string `yaml:"Type"`
	// Wall temperature for isothermal walls, non-dimensional.
	WallTemperature float64 `yaml:"WallTemperature"`
	// Inner-radius vortex parameters for the vortex inflow condition.
	VortexMach    float64 `yaml:"VortexMach"`
	VortexDensity float64 `yaml:"VortexDensity"`
	VortexRadius  float64 `yaml:"VortexRadius"`
}

// Parameters obtained from the YAML case file.
type Config struct {
	Title string `yaml:"Title"`

	FluxScheme string `yaml:"FluxScheme"`
	// JacobianFluxScheme defaults to FluxScheme when empty.
	JacobianFluxScheme   string `yaml:"JacobianFluxScheme"`
	Reconstruction       string `yaml:"Reconstruction"`
	Limiter              string `yaml:"Limiter"`
	SecondOrder          bool   `yaml:"SecondOrder"`
	ReconstructPrimitive bool   `yaml:"ReconstructPrimitive"`
	// GhostPolicy is "midpoint" (default) or "face".
	GhostPolicy string `yaml:"GhostPolicy"`
	NGauss      int    `yaml:"NGauss"`

	Minf   float64 `yaml:"Minf"`
	Gamma  float64 `yaml:"Gamma"`
	Alpha  float64 `yaml:"Alpha"` // degrees
	Rhoinf float64 `yaml:"Rhoinf"`

	// Markers maps mesh file boundary tag names to the integer marker ids
	// the BCs section is keyed on.
	Markers map[string]int `yaml:"Markers"`
	// BCs keys are mesh boundary marker ids.
	BCs map[int]BCSpec `yaml:"BCs"`

	Verbose bool `yaml:"Verbose"`
}

func (cfg *Config) Parse(data []byte) error {
	return yaml.Unmarshal(data, cfg)
}

func (cfg *Config) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", cfg.Title)
	fmt.Printf("[%s]\t\t\t= Flux Scheme\n", cfg.FluxScheme)
	fmt.Printf("[%s]\t\t= Reconstruction\n", cfg.Reconstruction)
	fmt.Printf("[%s]\t\t\t= Limiter\n", cfg.Limiter)
	fmt.Printf("%8.5f\t\t= Minf\n", cfg.Minf)
	fmt.Printf("%8.5f\t\t= Alpha (deg)\n", cfg.Alpha)
	keys := make([]int, 0, len(cfg.BCs))
	for k := range cfg.BCs {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, key := range keys {
		fmt.Printf("BCs[%d] = %v\n", key, cfg.BCs[key])
	}
}

// Validate resolves every name in the case file and returns the free stream
// and discretization options. Defaults: gamma 1.4, unit free-stream density,
// Jacobian flux same as the residual flux.
func (cfg *Config) Validate() (fs *physics.FreeStream, opts spatial.Options, err error) {
	if cfg.Gamma == 0 {
		cfg.Gamma = 1.4
	}
	if cfg.Rhoinf == 0 {
		cfg.Rhoinf = 1.0
	}
	if cfg.Minf == 0 {
		return nil, opts, fmt.Errorf("free-stream Mach number is required")
	}
	fs = physics.NewFreeStream(cfg.Minf, cfg.Gamma, cfg.Alpha*math.Pi/180., cfg.Rhoinf)

	if opts.InviscidFlux, err = flux.ParseType(cfg.FluxScheme); err != nil {
		return nil, opts, err
	}
	jf := cfg.JacobianFluxScheme
	if jf == "" {
		jf = cfg.FluxScheme
	}
	if opts.JacobianFlux, err = flux.ParseType(jf); err != nil {
		return nil, opts, err
	}
	// reconstruction and limiter only matter at second order; an omitted
	// name means none
	if cfg.Reconstruction == "" {
		cfg.Reconstruction = "none"
	}
	if cfg.Limiter == "" {
		cfg.Limiter = "none"
	}
	if opts.Reconstruction, err = reconstruction.ParseType(cfg.Reconstruction); err != nil {
		return nil, opts, err
	}
	if opts.Limiter, err = limiter.ParseType(cfg.Limiter); err != nil {
		return nil, opts, err
	}
	switch cfg.GhostPolicy {
	case "", "midpoint":
		opts.GhostPolicy = geometry.GhostAboutMidpoint
	case "face":
		opts.GhostPolicy = geometry.GhostAboutFace
	default:
		return nil, opts, fmt.Errorf("unknown ghost centroid policy %q", cfg.GhostPolicy)
	}
	opts.NGauss = cfg.NGauss
	opts.SecondOrder = cfg.SecondOrder
	opts.ReconstructPrimitive = cfg.ReconstructPrimitive
	opts.Verbose = cfg.Verbose

	if len(cfg.BCs) == 0 {
		return nil, opts, fmt.Errorf("no boundary conditions configured")
	}
	opts.BCs = make(map[int]spatial.BC, len(cfg.BCs))
	for marker, spec := range cfg.BCs {
		kind, kerr := spatial.ParseBCKind(spec.Type)
		if kerr != nil {
			return nil, opts, fmt.Errorf("marker %d: %w", marker, kerr)
		}
		bc := spatial.BC{
			Kind:            kind,
			WallTemperature: spec.WallTemperature,
			VortexMach:      spec.VortexMach,
			VortexDensity:   spec.VortexDensity,
			VortexRadius:    spec.VortexRadius,
		}
		if kind == spatial.IsothermalWall && bc.WallTemperature == 0 {
			return nil, opts, fmt.Errorf("marker %d: isothermal wall needs WallTemperature", marker)
		}
		if kind == spatial.VortexInflow {
			if bc.VortexMach == 0 {
				bc.VortexMach = 2.25
			}
			if bc.VortexDensity == 0 {
				bc.VortexDensity = 1.0
			}
			if bc.VortexRadius == 0 {
				bc.VortexRadius = 1.0
			}
		}
		opts.BCs[marker] = bc
	}
	return
}
