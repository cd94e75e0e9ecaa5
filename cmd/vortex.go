package cmd

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/leshihua/fvens/flux"
	"github.com/leshihua/fvens/limiter"
	"github.com/leshihua/fvens/mesh"
	"github.com/leshihua/fvens/physics"
	"github.com/leshihua/fvens/reconstruction"
	"github.com/leshihua/fvens/spatial"
)

// boundary marker ids of the built-in annular domain
const (
	vtxInner = iota + 1
	vtxOuter
	vtxInflow
	vtxOutflow
)

var vortexCmd = &cobra.Command{
	Use:   "vortex",
	Short: "Supersonic vortex grid convergence study",
	Long: `vortex drives the isentropic supersonic vortex case on a sequence
of refined quarter-annulus grids and prints log10(h) against log10(entropy
error), from which the spatial order of accuracy can be read off. The flow
is relaxed with explicit local pseudo-time stepping.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			levels, _  = cmd.Flags().GetInt("levels")
			n0, _      = cmd.Flags().GetInt("size")
			second, _  = cmd.Flags().GetBool("secondorder")
			maxiter, _ = cmd.Flags().GetInt("maxiter")
		)
		for l := 0; l < levels; l++ {
			n := n0 << l
			if err := vortexLevel(n, second, maxiter); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	vortexCmd.Flags().Int("levels", 3, "number of refinement levels")
	vortexCmd.Flags().Int("size", 8, "radial cell count of the coarsest grid")
	vortexCmd.Flags().Bool("secondorder", true, "use linear reconstruction")
	vortexCmd.Flags().Int("maxiter", 20000, "pseudo-time iteration limit")
	rootCmd.AddCommand(vortexCmd)
}

func vortexLevel(n int, second bool, maxiter int) error {
	m, err := mesh.AnnularTriGrid(1.0, 1.384, n, 2*n, vtxInner, vtxOuter, vtxInflow, vtxOutflow)
	if err != nil {
		return err
	}
	const machInner = 2.25
	fs := physics.NewFreeStream(machInner, 1.4, 0, 1.0)
	opts := spatial.Options{
		InviscidFlux:   flux.VANLEER,
		JacobianFlux:   flux.VANLEER,
		Reconstruction: reconstruction.LEASTSQUARES,
		Limiter:        limiter.VENKATAKRISHNAN,
		SecondOrder:    second,
		BCs: map[int]spatial.BC{
			vtxInner:   {Kind: spatial.SlipWall},
			vtxOuter:   {Kind: spatial.SlipWall},
			vtxInflow:  {Kind: spatial.VortexInflow, VortexMach: machInner, VortexDensity: 1, VortexRadius: 1},
			vtxOutflow: {Kind: spatial.InflowOutflow},
		},
	}
	e, err := spatial.NewEuler(m, fs, opts)
	if err != nil {
		return err
	}

	var (
		ncells = m.NumCells()
		u      = make([]float64, ncells*physics.NVARS)
		res    = make([]float64, ncells*physics.NVARS)
		dtm    = make([]float64, ncells)
	)
	e.InitializeVortexFlow(u)

	// explicit pseudo-time relaxation with local time steps
	const cfl = 0.4
	var res0 float64
	for iter := 0; iter < maxiter; iter++ {
		e.ComputeResidual(u, res, dtm)
		rnorm := floats.Norm(res, 2)
		if iter == 0 {
			res0 = rnorm
		}
		if rnorm < 1e-8*res0 {
			break
		}
		for c := 0; c < ncells; c++ {
			fac := cfl * dtm[c] / m.CellArea(c)
			for ivar := 0; ivar < physics.NVARS; ivar++ {
				u[c*physics.NVARS+ivar] -= fac * res[c*physics.NVARS+ivar]
			}
		}
	}

	fmt.Printf("%.6f  %.10f\n", math.Log10(e.MeshSize()), math.Log10(e.EntropyError(u)))
	return nil
}
