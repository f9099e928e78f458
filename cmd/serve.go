package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/onlinefem/onlinefem/internal/api"
	"github.com/onlinefem/onlinefem/internal/config"
	"github.com/onlinefem/onlinefem/internal/store"
	"github.com/onlinefem/onlinefem/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the front-end record API service",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger := cfg.Logger()

		if cfg.DatabaseURL == "" {
			return fmt.Errorf("ONLINEFEM_DATABASE_URL is not set")
		}

		ctx, stop := signal.NotifyContext(context.Background(),
			syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer pool.Close()

		tm := store.NewTransactionManager(pool)
		records := store.NewFEMStore(tm.GetConnection(ctx))
		if err := records.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}

		solverClient := api.NewSolverClient(cfg.SolverURL)
		h := api.NewHandlers(records, solverClient, logger)
		return web.Serve(ctx, cfg.APIAddr, h.Router(), logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
