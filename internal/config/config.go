// Package config reads service configuration from the environment, with an
// optional .env file for development.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every knob of the two services.
type Config struct {
	// APIAddr is the front-end service listen address.
	APIAddr string
	// SolverAddr is the mesh microservice listen address.
	SolverAddr string
	// SolverURL is where the front end forwards mesh requests.
	SolverURL string
	// DatabaseURL is the PostgreSQL DSN for the record store.
	DatabaseURL string
	// TempDir receives generated geometry and mesh files.
	TempDir string

	LogLevel  slog.Level
	LogFormat string // "text" or "json"
}

// Load builds a Config from the environment. A .env file in the working
// directory is merged in first when present; real environment variables win.
func Load() (*Config, error) {
	// godotenv.Load never overrides variables already set
	_ = godotenv.Load()

	cfg := &Config{
		APIAddr:     getenv("ONLINEFEM_API_ADDR", ":8000"),
		SolverAddr:  getenv("ONLINEFEM_SOLVER_ADDR", ":5555"),
		SolverURL:   getenv("ONLINEFEM_SOLVER_URL", "http://femdolfinx:5555"),
		DatabaseURL: os.Getenv("ONLINEFEM_DATABASE_URL"),
		TempDir:     getenv("ONLINEFEM_TEMP_DIR", os.TempDir()),
		LogFormat:   getenv("ONLINEFEM_LOG_FORMAT", "text"),
	}

	level, err := parseLevel(getenv("ONLINEFEM_LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("bad ONLINEFEM_LOG_FORMAT %q, want text or json", cfg.LogFormat)
	}
	return cfg, nil
}

// Logger builds the process logger from the config.
func (c *Config) Logger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	var h slog.Handler
	if c.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		h = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(h)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("bad ONLINEFEM_LOG_LEVEL %q", s)
}
