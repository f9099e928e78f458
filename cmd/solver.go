package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/onlinefem/onlinefem/internal/config"
	"github.com/onlinefem/onlinefem/internal/solver"
	"github.com/onlinefem/onlinefem/internal/web"
)

var solverCmd = &cobra.Command{
	Use:   "solver",
	Short: "Run the mesh microservice",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger := cfg.Logger()

		ctx, stop := signal.NotifyContext(context.Background(),
			syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		h := solver.NewHandlers(logger)
		return web.Serve(ctx, cfg.SolverAddr, h.Router(), logger)
	},
}

func init() {
	rootCmd.AddCommand(solverCmd)
}
