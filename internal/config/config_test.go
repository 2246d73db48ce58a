package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "FOLIO_API_BASE_URL", "FOLIO_API_TIMEOUT_SECONDS", "REDIS_URL",
		"RATE_LIMIT_PER_IP", "RATE_LIMIT_RATING", "CORS_ALLOWED_ORIGINS", "LOGIN_MAX_ATTEMPTS",
		"SESSION_SECRET", "SESSION_MAX_AGE_SECONDS"} {
		t.Setenv(k, "")
	}
	t.Setenv("FOLIO_TOKEN_FILE", "/tmp/folio-token.json")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "http://localhost:5000/api", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, "/tmp/folio-token.json", cfg.Token.File)
	assert.Empty(t, cfg.Token.RedisURL)
	assert.Equal(t, "100-M", cfg.RateLimit.PerIP)
	assert.Equal(t, "5-M", cfg.RateLimit.Rating)
	assert.Equal(t, 5, cfg.Lockout.MaxAttempts)
	assert.Empty(t, cfg.Session.Secret)
	assert.Equal(t, 7*24*time.Hour, cfg.Session.MaxAge)
	assert.Nil(t, cfg.Security.AllowedOrigins)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("FOLIO_API_BASE_URL", "https://api.folio.example/api")
	t.Setenv("FOLIO_API_TIMEOUT_SECONDS", "3")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://folio.example, https://www.folio.example,")
	t.Setenv("LOGIN_MAX_ATTEMPTS", "0")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("SESSION_MAX_AGE_SECONDS", "3600")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "https://api.folio.example/api", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, []string{"https://folio.example", "https://www.folio.example"}, cfg.Security.AllowedOrigins)
	assert.Equal(t, 0, cfg.Lockout.MaxAttempts)
	assert.Equal(t, "s3cret", cfg.Session.Secret)
	assert.Equal(t, time.Hour, cfg.Session.MaxAge)
}

func TestLoad_RejectsRelativeBaseURL(t *testing.T) {
	t.Setenv("FOLIO_API_BASE_URL", "localhost:5000")

	_, err := Load()

	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("PORT", "")
	t.Setenv("RATE_LIMIT_RATING", "")
	path := filepath.Join(t.TempDir(), "folio.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"7070\"\nrate_limit_rating: 2-M\n"), 0o600))

	cfg, err := LoadFile(path)

	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "2-M", cfg.RateLimit.Rating)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
