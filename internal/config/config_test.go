package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.APIAddr)
	assert.Equal(t, ":5555", cfg.SolverAddr)
	assert.Equal(t, "http://femdolfinx:5555", cfg.SolverURL)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.NotEmpty(t, cfg.TempDir)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ONLINEFEM_API_ADDR", ":9000")
	t.Setenv("ONLINEFEM_SOLVER_URL", "http://localhost:5555")
	t.Setenv("ONLINEFEM_DATABASE_URL", "postgres://fem:fem@db/fem")
	t.Setenv("ONLINEFEM_LOG_LEVEL", "debug")
	t.Setenv("ONLINEFEM_LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.APIAddr)
	assert.Equal(t, "http://localhost:5555", cfg.SolverURL)
	assert.Equal(t, "postgres://fem:fem@db/fem", cfg.DatabaseURL)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.NotNil(t, cfg.Logger())
}

func TestLoadBadLevel(t *testing.T) {
	t.Setenv("ONLINEFEM_LOG_LEVEL", "loud")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadBadFormat(t *testing.T) {
	t.Setenv("ONLINEFEM_LOG_FORMAT", "xml")
	_, err := Load()
	assert.Error(t, err)
}
