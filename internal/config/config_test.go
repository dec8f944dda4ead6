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

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 64, cfg.MaxSessions)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTimeout)
	assert.Equal(t, slog.LevelInfo, cfg.Level())
	assert.Equal(t, 6.0, cfg.Control().ControlRadius)
	assert.Equal(t, 24.0, cfg.Control().RotateHandleOffset)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.Origins())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("CONTROL_RADIUS", "8.5")
	t.Setenv("SESSION_IDLE_TIMEOUT", "90s")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, 8.5, cfg.Control().ControlRadius)
	assert.Equal(t, 90*time.Second, cfg.SessionIdleTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Origins())
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("MAX_SESSIONS", "lots")
	_, err := Load()
	assert.Error(t, err)
}
