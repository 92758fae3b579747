package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/gudang?sslmode=disable")
	t.Setenv("AUTH_JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, int32(10), cfg.Database.MaxConns)
	assert.Equal(t, int32(2), cfg.Database.MinConns)
	assert.True(t, cfg.Auth.Enabled)
	assert.Equal(t, "gudang-sah", cfg.Auth.Issuer)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Audit.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Stock.RefreshInterval)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db:5432/gudang")
	t.Setenv("AUTH_JWT_SECRET", "test-secret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_MAX_CONNS", "25")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("AUDIT_ENABLED", "false")
	t.Setenv("STOCK_REFRESH_INTERVAL", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, int32(25), cfg.Database.MaxConns)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Audit.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Stock.RefreshInterval)
}

func TestLoad_DatabaseURLRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("AUTH_JWT_SECRET", "test-secret")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoad_JWTSecretRequiredWhenAuthEnabled(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db:5432/gudang")
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_JWT_SECRET")
}

func TestLoad_AuthDisabledNeedsNoSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db:5432/gudang")
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("AUTH_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Auth.Enabled)
}
