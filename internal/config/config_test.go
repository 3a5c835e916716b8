package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultEndpoint, cfg.Endpoint)
	assert.Equal(t, 2*time.Second, cfg.ReconnectDelay)
	assert.Equal(t, 200*time.Millisecond, cfg.StepInterval)
	assert.False(t, cfg.TUI)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("LADDERS_ENDPOINT", "wss://game.local:9000/ws")
	t.Setenv("LADDERS_RECONNECT_DELAY", "500ms")
	t.Setenv("LADDERS_STEP_INTERVAL", "50ms")
	t.Setenv("LADDERS_HTTP_ADDR", "")
	t.Setenv("LADDERS_LOCALE", "en")
	t.Setenv("LADDERS_TUI", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "wss://game.local:9000/ws", cfg.Endpoint)
	assert.Equal(t, 500*time.Millisecond, cfg.ReconnectDelay)
	assert.Equal(t, 50*time.Millisecond, cfg.StepInterval)
	assert.Empty(t, cfg.HTTPAddr, "an explicitly empty address disables the API")
	assert.Equal(t, "en", cfg.Locale)
	assert.True(t, cfg.TUI)
}

func TestLoad_InvalidDuration(t *testing.T) {
	for _, raw := range []string{"soon", "0s", "-1s"} {
		t.Setenv("LADDERS_RECONNECT_DELAY", raw)
		_, err := Load()
		assert.ErrorIs(t, err, ErrInvalidDuration, raw)
	}
}

func TestLoad_InvalidEndpoint(t *testing.T) {
	for _, raw := range []string{"http://host:1", "host:8765", "ws://"} {
		t.Setenv("LADDERS_ENDPOINT", raw)
		_, err := Load()
		assert.ErrorIs(t, err, ErrInvalidEndpoint, raw)
	}
}

func TestLoadDotEnv(t *testing.T) {
	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LADDERS_LOCALE=fr\n"), 0o600))
	t.Setenv("LADDERS_LOCALE", "")
	require.NoError(t, os.Unsetenv("LADDERS_LOCALE"))

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "fr", os.Getenv("LADDERS_LOCALE"))
}
