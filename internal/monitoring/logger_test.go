package monitoring_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caremesh/triage-gateway/internal/monitoring"
)

func TestLogger_New_LevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gateway.log")
	logger := monitoring.New(monitoring.LoggerConfig{
		Level:  "warn",
		Format: "json",
		Output: path,
	})

	logger.Info().Msg("below threshold")
	logger.Warn().Msg("at threshold")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "below threshold")
	assert.Contains(t, string(data), "at threshold")
}

func TestLogger_New_UnknownLevelFallsBackToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gateway.log")
	logger := monitoring.New(monitoring.LoggerConfig{
		Level:  "verbose",
		Format: "json",
		Output: path,
	})

	logger.Debug().Msg("debug line")
	logger.Info().Msg("info line")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "debug line")
	assert.Contains(t, string(data), "info line")
}

func TestLogger_New_ConsoleFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gateway.log")
	logger := monitoring.New(monitoring.LoggerConfig{
		Level:  "info",
		Format: "console",
		Output: path,
	})

	logger.Info().Msg("console line")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "console line")
	assert.NotContains(t, string(data), `"message"`)
}

func TestLogger_Global_InstallsProcessLogger(t *testing.T) {
	previous := log.Logger
	t.Cleanup(func() { log.Logger = previous })

	path := filepath.Join(t.TempDir(), "gateway.log")
	monitoring.Global(monitoring.LoggerConfig{
		Level:  "info",
		Format: "json",
		Output: path,
	})

	log.Debug().Msg("filtered line")
	log.Info().Msg("process line")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "process line")
	assert.NotContains(t, string(data), "filtered line")
}

func TestLogger_RequestIDContext_RoundTrip(t *testing.T) {
	ctx := monitoring.WithRequestIDContext(context.Background(), "req-42")
	assert.Equal(t, "req-42", monitoring.RequestIDFromContext(ctx))
	assert.Empty(t, monitoring.RequestIDFromContext(context.Background()))
}
