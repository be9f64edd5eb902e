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

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.False(t, cfg.Auth.Enabled)
	assert.Equal(t, 8*time.Hour, cfg.Auth.Expiration)
	assert.Equal(t, 5*time.Minute, cfg.Reports.CacheTTL)
	assert.Equal(t, int64(1), cfg.Demo.Seed)
	assert.Equal(t, 10, cfg.Demo.Students)
	assert.Nil(t, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "./exports", cfg.Exports.Dir)
	assert.Equal(t, time.Hour, cfg.Exports.URLTTL)
	assert.Equal(t, 24*time.Hour, cfg.Exports.ResultTTL)
	assert.Equal(t, 2, cfg.Exports.Workers)
	assert.Equal(t, 3, cfg.Exports.MaxRetries)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENABLE_REPORT_CACHE", "true")
	t.Setenv("REPORT_CACHE_TTL", "not-a-duration")
	t.Setenv("JWT_EXPIRATION", "30m")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("CATALOG_FILE", "catalog.hcl")
	t.Setenv("DEMO_SEED", "42")
	t.Setenv("EXPORT_WORKERS", "4")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.Reports.CacheEnabled)
	assert.Equal(t, 5*time.Minute, cfg.Reports.CacheTTL, "invalid durations fall back")
	assert.Equal(t, 30*time.Minute, cfg.Auth.Expiration)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "catalog.hcl", cfg.Catalog.File)
	assert.Equal(t, int64(42), cfg.Demo.Seed)
	assert.Equal(t, 4, cfg.Exports.Workers)
}
