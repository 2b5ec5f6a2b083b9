package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg := Load()
	assert.Equal(t, 24, cfg.TokenTTLHours)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.Equal(t, "admin123", cfg.AdminPassword)
	assert.Equal(t, "admin@logstream.local", cfg.AdminEmail)
	assert.Equal(t, "access_token", cfg.CookieName)
	assert.Equal(t, 30, cfg.RememberMeDays)
	assert.Equal(t, "monitoring", cfg.DBName)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRATION_HOURS", "1")
	t.Setenv("ADMIN_USERNAME", "root")
	t.Setenv("AUTH_COOKIE_NAME", "lsid")

	cfg := Load()
	assert.Equal(t, 1, cfg.TokenTTLHours)
	assert.Equal(t, "root", cfg.AdminUsername)
	assert.Equal(t, "lsid", cfg.CookieName)
}

func TestRateLimitClamping(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "-3")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	assert.Equal(t, 1, cfg.Capacity)
	assert.Equal(t, 1, cfg.RefillTokens)
	assert.Equal(t, 2*time.Second, cfg.RefillInterval)
	// TTL is stretched to outlive several refill cycles.
	assert.Equal(t, 10*time.Second, cfg.TTL)
}
