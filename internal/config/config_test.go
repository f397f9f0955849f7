package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
	assert.Equal(t, 15*time.Second, cfg.APITimeout)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.NotEmpty(t, cfg.DataDir)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("BACKOFFICE_API_URL", "https://api.costamaya.mx")
	t.Setenv("BACKOFFICE_API_TIMEOUT_SECONDS", "30")
	t.Setenv("BACKOFFICE_LOG_LEVEL", "debug")
	t.Setenv("BACKOFFICE_DATA_DIR", "/tmp/backoffice-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.costamaya.mx", cfg.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.APITimeout)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "/tmp/backoffice-test", cfg.DataDir)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("BACKOFFICE_API_TIMEOUT_SECONDS", "soon")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsUnknownLogLevel(t *testing.T) {
	t.Setenv("BACKOFFICE_LOG_LEVEL", "loud")
	_, err := Load()
	assert.Error(t, err)
}
