package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	API       APIConfig
	Token     TokenConfig
	RateLimit RateLimitConfig
	Lockout   LockoutConfig
	Session   SessionConfig
	Security  SecurityConfig
}

type ServerConfig struct {
	Port           string
	MetricsEnabled bool
}

// APIConfig points at the content API that owns projects, messages and page content.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// TokenConfig selects where the operator token written by `folio login` is kept. RedisURL wins
// over File when set. Browser sessions never read it.
type TokenConfig struct {
	File     string
	RedisURL string
}

// RateLimitConfig holds ulule/limiter formatted rates ("100-M", "5-M").
type RateLimitConfig struct {
	PerIP  string
	Rating string
}

// LockoutConfig throttles admin logins after repeated rejections. MaxAttempts 0 disables.
type LockoutConfig struct {
	MaxAttempts     int
	CooldownSeconds int
}

// SessionConfig signs the per-browser admin session cookie. An empty Secret means a random key
// per process, so sessions do not survive a restart.
type SessionConfig struct {
	Secret string
	MaxAge time.Duration
}

type SecurityConfig struct {
	AllowedOrigins []string
	IsDevelopment  bool
}

// Load reads the environment, plus the file named by CONFIG_FILE when set.
func Load() (*Config, error) {
	return LoadFile(os.Getenv("CONFIG_FILE"))
}

// LoadFile is Load with an explicit config file. Environment variables still win over the file.
func LoadFile(path string) (*Config, error) {
	viper.AutomaticEnv()
	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	viper.SetDefault("FOLIO_API_TIMEOUT_SECONDS", 10)
	viper.SetDefault("METRICS_ENABLED", true)
	viper.SetDefault("LOGIN_MAX_ATTEMPTS", 5)
	viper.SetDefault("LOGIN_COOLDOWN_SECONDS", 900)
	viper.SetDefault("SESSION_MAX_AGE_SECONDS", 7*24*3600)

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvOrDefault("PORT", "8080"),
			MetricsEnabled: viper.GetBool("METRICS_ENABLED"),
		},
		API: APIConfig{
			BaseURL: getEnvOrDefault("FOLIO_API_BASE_URL", "http://localhost:5000/api"),
			Timeout: time.Duration(viper.GetInt("FOLIO_API_TIMEOUT_SECONDS")) * time.Second,
		},
		Token: TokenConfig{
			File:     getEnvOrDefault("FOLIO_TOKEN_FILE", defaultTokenFile()),
			RedisURL: getEnvOrDefault("REDIS_URL", ""),
		},
		RateLimit: RateLimitConfig{
			PerIP:  getEnvOrDefault("RATE_LIMIT_PER_IP", "100-M"),
			Rating: getEnvOrDefault("RATE_LIMIT_RATING", "5-M"),
		},
		Lockout: LockoutConfig{
			MaxAttempts:     viper.GetInt("LOGIN_MAX_ATTEMPTS"),
			CooldownSeconds: viper.GetInt("LOGIN_COOLDOWN_SECONDS"),
		},
		Session: SessionConfig{
			Secret: getEnvOrDefault("SESSION_SECRET", ""),
			MaxAge: time.Duration(viper.GetInt("SESSION_MAX_AGE_SECONDS")) * time.Second,
		},
		Security: SecurityConfig{
			AllowedOrigins: splitOrigins(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "")),
			IsDevelopment:  viper.GetBool("SECURE_DEV"),
		},
	}
	if cfg.API.Timeout <= 0 {
		cfg.API.Timeout = 10 * time.Second
	}
	u, err := url.Parse(cfg.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("FOLIO_API_BASE_URL must be an absolute URL, got %q", cfg.API.BaseURL)
	}
	return cfg, nil
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if v := viper.GetString(key); v != "" {
		return v
	}
	return def
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".folio-token.json"
	}
	return dir + string(os.PathSeparator) + "folio" + string(os.PathSeparator) + "token.json"
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
