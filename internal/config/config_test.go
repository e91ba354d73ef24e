package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	assert.Equal(t, 10000, cfg.MaxRows)
	assert.Equal(t, 15, cfg.FooterRows)
	assert.Equal(t, 2*time.Hour, cfg.JobTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("RECONWEB_LISTEN_ADDR", ":9090")
	t.Setenv("RECONWEB_FOOTER_ROWS", "20")
	t.Setenv("RECONWEB_JOB_TTL", "30m")
	t.Setenv("RECONWEB_LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, 20, cfg.FooterRows)
	assert.Equal(t, 30*time.Minute, cfg.JobTTL)
	assert.Equal(t, "json", cfg.LogFormat)
}
