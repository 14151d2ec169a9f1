package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsAndEnv(t *testing.T) {
	t.Setenv("CONFIG_PATH", t.TempDir())
	t.Setenv("PAYMENT_JWT_SECRET", "test-secret")
	t.Setenv("PAYMENT_SERVER_HTTP_PORT", "8300")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8300, cfg.Server.HTTP.Port)
	assert.Equal(t, "test-secret", cfg.JWT.Secret)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTokenTTL)
	assert.Equal(t, 720*time.Hour, cfg.JWT.RefreshTokenTTL)
	assert.Equal(t, 1, cfg.Auth.PasswordMinLength)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "host=localhost port=5432 user=postgres password=postgres dbname=payments sslmode=disable", cfg.Database.DSN())
}

func TestLoadConfig_RequiresSecret(t *testing.T) {
	t.Setenv("CONFIG_PATH", t.TempDir())
	t.Setenv("PAYMENT_JWT_SECRET", "")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "jwt.secret")
}
