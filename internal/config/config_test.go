package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8096, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 30*time.Minute, cfg.Session.IdleTimeout)
	assert.Equal(t, time.Minute, cfg.Session.SweepInterval)
	assert.Equal(t, 1000, cfg.Session.MaxSessions)
	assert.Empty(t, cfg.Seed.File)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "9100")
	t.Setenv("SESSION_IDLE_TIMEOUT", "90s")
	t.Setenv("SESSION_MAX", "3")
	t.Setenv("SEED_FILE", "/tmp/world.yaml")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, 90*time.Second, cfg.Session.IdleTimeout)
	assert.Equal(t, 3, cfg.Session.MaxSessions)
	assert.Equal(t, "/tmp/world.yaml", cfg.Seed.File)
	assert.Equal(t, "debug", cfg.Log.Level)
}
