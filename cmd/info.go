package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/onlinefem/onlinefem/mesh"
)

var infoCmd = &cobra.Command{
	Use:   "info <file.msh>",
	Short: "Print a summary of a mesh file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := mesh.ReadFile(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s\n", args[0])
		fmt.Printf("  vertices:       %d\n", m.NumVertices())
		fmt.Printf("  elements:       %d\n", m.NumCells())
		fmt.Printf("  boundary edges: %d\n", len(m.Boundary))
		fmt.Printf("  total area:     %g\n", m.TotalArea())
		if len(m.Physicals) > 0 {
			fmt.Println("  physical groups:")
			for _, p := range m.Physicals {
				fmt.Printf("    dim %d tag %d %q\n", p.Dim, p.Tag, p.Name)
			}
		}
		for _, link := range m.Periodic {
			fmt.Printf("  periodic: curve %d -> %d (%d node pairs)\n",
				link.SlaveTag, link.MasterTag, len(link.Pairs))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
