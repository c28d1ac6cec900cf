package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog_backend/internal/platform/db"
)

// TestFromEnv_Defaults は環境変数が未設定の場合にデフォルト値が使われることを検証します。
func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{
		"APP_PORT", "JWT_ALGORITHM", "ACCESS_TOKEN_EXPIRE_MINUTES", "DB_DRIVER", "PUBLIC_BASE_URL",
		"STATIC_DIR", "MAIL_PORT", "SCHEDULER_ENABLED", "DIGEST_INTERVAL", "CACHE_TTL", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "HS256", cfg.Auth.JWTAlgorithm)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, "http://localhost:8080", cfg.PublicBaseURL)
	assert.Equal(t, "static", cfg.StaticDir)
	assert.Equal(t, 587, cfg.Mail.Port)
	assert.False(t, cfg.SchedulerEnabled)
	assert.Equal(t, time.Minute, cfg.DigestInterval)
	assert.Equal(t, 5*time.Minute, cfg.Redis.CacheTTL)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

// TestFromEnv_Overrides は環境変数の値が正しく読み込まれることを検証します。
func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_ALGORITHM", "hs512")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "15")
	t.Setenv("PUBLIC_BASE_URL", "https://cdn.example.com/")
	t.Setenv("DIGEST_RECIPIENTS", "a@example.com, b@example.com,,")
	t.Setenv("SCHEDULER_ENABLED", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MAIL_PORT", "not-a-number")

	cfg := FromEnv()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, "HS512", cfg.Auth.JWTAlgorithm)
	assert.Equal(t, 15*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, "https://cdn.example.com", cfg.PublicBaseURL)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.DigestRecipients)
	assert.True(t, cfg.SchedulerEnabled)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 587, cfg.Mail.Port, "invalid integers fall back to the default")
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := Config{
		Auth: AuthConfig{JWTSecret: "secret", JWTAlgorithm: "HS256", TokenTTL: time.Minute},
		DB:   db.Config{Driver: "sqlite"},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{"missing secret", func(c *Config) { c.Auth.JWTSecret = "" }, "JWT_SECRET is required"},
		{"rsa algorithm", func(c *Config) { c.Auth.JWTAlgorithm = "RS256" }, "unsupported JWT_ALGORITHM"},
		{"none algorithm", func(c *Config) { c.Auth.JWTAlgorithm = "NONE" }, "unsupported JWT_ALGORITHM"},
		{"zero ttl", func(c *Config) { c.Auth.TokenTTL = 0 }, "must be positive"},
		{"unknown driver", func(c *Config) { c.DB.Driver = "oracle" }, "unsupported DB_DRIVER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestConfig_Toggles(t *testing.T) {
	t.Parallel()

	var cfg Config
	assert.False(t, cfg.RedisEnabled())
	assert.False(t, cfg.MailEnabled())

	cfg.Redis.Host = "localhost"
	cfg.Mail.Server = "smtp.example.com"
	cfg.Mail.From = "noreply@example.com"
	assert.True(t, cfg.RedisEnabled())
	assert.True(t, cfg.MailEnabled())
}
