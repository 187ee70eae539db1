package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	cfg := LoadFromEnv()

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 90, cfg.AuditRetentionDays)
	assert.Equal(t, "0 3 * * *", cfg.AuditSweepSchedule)
	assert.Equal(t, float64(50), cfg.RateLimitRPS)
	assert.Equal(t, 100, cfg.RateLimitBurst)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.NotEmpty(t, cfg.JWTSecret) // dev default outside production
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/fieldops")
	t.Setenv("LISTEN_ADDR", ":9090")
	t.Setenv("AUDIT_RETENTION_DAYS", "30")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg := LoadFromEnv()

	assert.Equal(t, "postgres://localhost/fieldops", cfg.DatabaseURL)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, 30, cfg.AuditRetentionDays)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSAllowedOrigins)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		DatabaseURL:        "postgres://localhost/fieldops",
		JWTSecret:          "s3cret",
		AuditRetentionDays: 90,
	}
	require.NoError(t, cfg.Validate())

	missingDB := *cfg
	missingDB.DatabaseURL = ""
	assert.Error(t, missingDB.Validate())

	missingSecret := *cfg
	missingSecret.JWTSecret = ""
	assert.Error(t, missingSecret.Validate())

	devSecretInProd := *cfg
	devSecretInProd.Env = "production"
	devSecretInProd.JWTSecret = devJWTSecret
	assert.Error(t, devSecretInProd.Validate())

	badRetention := *cfg
	badRetention.AuditRetentionDays = -1
	assert.Error(t, badRetention.Validate())
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, (&Config{LogLevel: "debug"}).SlogLevel())
	assert.Equal(t, slog.LevelWarn, (&Config{LogLevel: "WARN"}).SlogLevel())
	assert.Equal(t, slog.LevelError, (&Config{LogLevel: "error"}).SlogLevel())
	assert.Equal(t, slog.LevelInfo, (&Config{}).SlogLevel())
}
