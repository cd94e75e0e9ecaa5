package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fvens",
	Short: "Cell-centered finite volume discretization of the 2D Euler equations",
	Long: `fvens assembles finite volume residuals and Jacobians for the
compressible Euler equations on unstructured 2D meshes. Case setup comes
from a YAML file, meshes from SU2 ASCII grid files.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
