package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/onlinefem/onlinefem/internal/solver"
	"github.com/onlinefem/onlinefem/mesh"
)

var meshCmd = &cobra.Command{
	Use:   "mesh [a|b|c]",
	Short: "Generate a built-in geometry to .geo and .msh files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lc, _ := cmd.Flags().GetFloat64("lc")
		eps, _ := cmd.Flags().GetFloat64("eps")
		w, _ := cmd.Flags().GetFloat64("w")
		h, _ := cmd.Flags().GetFloat64("h")
		out, _ := cmd.Flags().GetString("out")
		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "geo", "msh", "all":
		default:
			return fmt.Errorf("bad format %q, want geo, msh or all", format)
		}

		g, err := solver.BuildTemplate(solver.MeshRequest{
			Geometry: args[0], Lc: lc, Eps: eps, W: w, H: h,
		})
		if err != nil {
			return err
		}

		if format == "geo" || format == "all" {
			path, err := g.Save(out, "")
			if err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
		}
		if format == "msh" || format == "all" {
			m, err := mesh.Generate(g, 2)
			if err != nil {
				return err
			}
			path := filepath.Join(out, g.Tag+".msh")
			if err := m.WriteFile(path); err != nil {
				return err
			}
			fmt.Printf("wrote %s (%d vertices, %d elements)\n",
				path, m.NumVertices(), m.NumCells())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(meshCmd)
	meshCmd.Flags().Float64("lc", 0.1, "characteristic length at the coarse corners")
	meshCmd.Flags().Float64("eps", 1e-6, "gap between the stacked rectangles")
	meshCmd.Flags().Float64("w", 1, "width of geometry c")
	meshCmd.Flags().Float64("h", 0.5, "height of geometry c")
	meshCmd.Flags().StringP("out", "o", ".", "output directory")
	meshCmd.Flags().StringP("format", "f", "all", "output format: geo, msh or all")
}
