package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()
	assert.Nil(t, cfg)
	assert.EqualError(t, err, "DATABASE_URL is required")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/fintera")
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_OPERATION_TIMEOUT", "")
	t.Setenv("OVERDUE_CHECK_INTERVAL", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("ENABLE_EMAIL_NOTIFICATIONS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.EnableEmailNotifications)
	assert.Equal(t, 5*time.Second, cfg.DBOperationTimeout)
	assert.Equal(t, time.Hour, cfg.OverdueCheckInterval)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, "dev-secret-change-in-production", cfg.JWTSecret)
}

func TestLoad_ParsesOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/fintera")
	t.Setenv("DB_OPERATION_TIMEOUT", "750ms")
	t.Setenv("OVERDUE_CHECK_INTERVAL", "15m")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("WORKER_COUNT", "not-a-number")
	t.Setenv("ENABLE_EMAIL_NOTIFICATIONS", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 750*time.Millisecond, cfg.DBOperationTimeout)
	assert.Equal(t, 15*time.Minute, cfg.OverdueCheckInterval)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 5, cfg.WorkerCount)
	assert.True(t, cfg.EnableEmailNotifications)
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/fintera")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.EqualError(t, err, "JWT_SECRET is required in production")
}
