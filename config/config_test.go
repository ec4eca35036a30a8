package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, env map[string]string) {
	t.Helper()
	for _, k := range []string{"GO_ENV", "DATABASE_URL", "PORT", "JWT_SECRET", "TOKEN_EXPIRY",
		"CONTEXT_TIMEOUT", "CORS_ALLOWED_ORIGINS", "TITLE_CHECK_RPS", "TITLE_CHECK_BURST"} {
		t.Setenv(k, env[k])
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		setEnv(t, map[string]string{"GO_ENV": "test"})
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.Contains(t, cfg.DBUrl, "photobooth")
		assert.Equal(t, 5*time.Second, cfg.ContextTimeout)
		assert.Equal(t, 24*time.Hour, cfg.TokenExpiry)
		assert.Equal(t, 5.0, cfg.TitleCheckRPS)
		assert.Equal(t, 10, cfg.TitleCheckBurst)
		assert.Empty(t, cfg.AllowedOrigins)
		assert.NotEmpty(t, cfg.JWTSecret)
	})

	t.Run("overrides", func(t *testing.T) {
		setEnv(t, map[string]string{
			"GO_ENV":               "test",
			"PORT":                 "9000",
			"JWT_SECRET":           "s3cret",
			"CONTEXT_TIMEOUT":      "2s",
			"CORS_ALLOWED_ORIGINS": "https://a.example.com, ,https://b.example.com",
			"TITLE_CHECK_RPS":      "0.5",
			"TITLE_CHECK_BURST":    "3",
		})
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "9000", cfg.Port)
		assert.Equal(t, "s3cret", cfg.JWTSecret)
		assert.Equal(t, 2*time.Second, cfg.ContextTimeout)
		assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
		assert.Equal(t, 0.5, cfg.TitleCheckRPS)
		assert.Equal(t, 3, cfg.TitleCheckBurst)
	})

	t.Run("production requires secret", func(t *testing.T) {
		setEnv(t, map[string]string{"GO_ENV": "production"})
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("invalid values", func(t *testing.T) {
		for k, v := range map[string]string{
			"CONTEXT_TIMEOUT":   "soon",
			"TITLE_CHECK_RPS":   "-1",
			"TITLE_CHECK_BURST": "zero",
		} {
			setEnv(t, map[string]string{"GO_ENV": "test", k: v})
			_, err := Load()
			require.Error(t, err, k)
		}
	})
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "production", "warn")
	logger.Info("hidden")
	logger.Warn("shown", "event_id", 3)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["msg"])
	assert.Equal(t, float64(3), line["event_id"])

	buf.Reset()
	newLogger(&buf, "development", "").Info("text line")
	assert.Contains(t, buf.String(), "msg=\"text line\"")

	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}
