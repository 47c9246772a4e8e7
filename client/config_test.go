package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("JIKAN_TEST_EMPTY")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.False(t, cfg.EnableLogging)
	assert.Equal(t, CacheOptions{}, cfg.Cache)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("JIKAN_ENABLE_LOGGING", "true")
	t.Setenv("JIKAN_BASE_URL", "http://localhost:8080/v4")
	t.Setenv("JIKAN_HTTP_TIMEOUT", "5s")
	t.Setenv("JIKAN_CACHE_TTL", "1m")
	t.Setenv("JIKAN_CACHE_IGNORE_HEADERS", "true")
	t.Setenv("JIKAN_CACHE_DIR", "/tmp/jikan")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.True(t, cfg.EnableLogging)
	assert.Equal(t, "http://localhost:8080/v4", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, time.Minute, cfg.Cache.TTL)
	assert.True(t, cfg.Cache.IgnoreHeaders)
	assert.Equal(t, "/tmp/jikan", cfg.Cache.Dir)
	assert.False(t, cfg.Cache.Disabled)
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	t.Setenv("JIKAN_HTTP_TIMEOUT", "soon")
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestNewFromConfig_UsesLoadedConfig(t *testing.T) {
	t.Setenv("JIKAN_CACHE_DISABLED", "true")
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	c, err := NewFromConfig(cfg)
	require.NoError(t, err)
	assert.True(t, c.Config().Cache.Disabled)
	assert.False(t, c.Observed())
}
