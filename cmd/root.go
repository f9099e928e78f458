// Package cmd holds the onlinefem command line interface.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is stamped by the build.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "onlinefem",
	Short: "FEM record API and mesh microservice",
	Long: `onlinefem runs the two services of the online FEM system: the
front-end record API and the mesh microservice, plus offline tools for
generating and inspecting meshes of the built-in geometries.`,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	rootCmd.Version = Version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
