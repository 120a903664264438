package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, EnvDevelopment, cfg.Server.Environment)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.Origins)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 100, cfg.RateLimit.Max)
	assert.Equal(t, "memory", cfg.RateLimit.Store)
	assert.Equal(t, int64(10<<20), cfg.Body.MaxBytes)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("VITAL_SERVER__PORT", "9090")
	t.Setenv("VITAL_SERVER__ENVIRONMENT", "production")
	t.Setenv("VITAL_AUTH__SIGNING_KEY", "prod-secret")
	t.Setenv("VITAL_CORS__ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, EnvProduction, cfg.Server.Environment)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "prod-secret", cfg.Auth.SigningKey)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORS.Origins)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 3001
ratelimit:
  window: 1m
  max: 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3001, cfg.Server.Port)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 5, cfg.RateLimit.Max)
}

func TestLoadRejectsBadEnvironment(t *testing.T) {
	t.Setenv("VITAL_SERVER__ENVIRONMENT", "staging")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadProductionRequiresSigningKey(t *testing.T) {
	t.Setenv("VITAL_SERVER__ENVIRONMENT", "production")

	_, err := Load("")
	assert.Error(t, err)
}
