package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithEnvSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "test-secret", cfg.JWT.Secret)
	assert.Equal(t, 60*time.Minute, cfg.JWT.TTL)
	assert.Equal(t, "Asia/Kolkata", cfg.Business.Timezone)
	assert.Equal(t, 2, cfg.Business.MaxActiveSubscriptions)
	assert.Equal(t, 5*time.Minute, cfg.Catalog.CacheTTL)
	assert.Equal(t, "inr", cfg.Stripe.Currency)
}

func TestLoad_YAMLAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := []byte(`
server:
  port: "9090"
jwt:
  secret: from-file
business:
  max_active_subscriptions: 3
catalog:
  cache_ttl: 1m
`)
	require.NoError(t, os.WriteFile(path, yaml, 0o600))
	t.Setenv("SERVER_PORT", "7070")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "from-file", cfg.JWT.Secret)
	assert.Equal(t, 3, cfg.Business.MaxActiveSubscriptions)
	assert.Equal(t, time.Minute, cfg.Catalog.CacheTTL)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Chdir(t.TempDir())

	_, err := Load("")
	assert.Error(t, err)
}

func TestValidate_MaxActive(t *testing.T) {
	cfg := &Config{JWT: JWTConfig{Secret: "x"}}
	assert.Error(t, cfg.Validate())

	cfg.Business.MaxActiveSubscriptions = 2
	assert.NoError(t, cfg.Validate())
}
