package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port           int    `mapstructure:"PORT"`
	Env            string `mapstructure:"APP_ENV"` // development | production
	WorkerPoolSize int    `mapstructure:"WORKER_POOL_SIZE"`
	AllowedOrigin  string `mapstructure:"ALLOWED_ORIGIN"`
	// Reverse proxies whose X-Forwarded-For is believed (comma-separated IPs
	// or CIDRs). Empty: the peer address is the client IP.
	TrustedProxies []string `mapstructure:"TRUSTED_PROXIES"`

	// Redis
	RedisURL string `mapstructure:"REDIS_URL"`

	// Session
	SessionBackend    string `mapstructure:"SESSION_BACKEND"` // redis | memory
	SessionTTLHours   int    `mapstructure:"SESSION_TTL_HOURS"`
	SessionCookieName string `mapstructure:"SESSION_COOKIE_NAME"`
	CookieSecure      bool   `mapstructure:"COOKIE_SECURE"`

	// Backend REST API
	APIBaseURL        string `mapstructure:"API_BASE_URL"`
	APITimeoutSeconds int    `mapstructure:"API_TIMEOUT_SECONDS"`

	// Pages
	PageSize           int `mapstructure:"PAGE_SIZE"`
	LoginRatePerMinute int `mapstructure:"LOGIN_RATE_PER_MINUTE"`

	// Exports
	ExportStoragePath string `mapstructure:"EXPORT_STORAGE_PATH"`

	// SMTP
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
}

// SessionTTL is the fallback lifetime of a session record when the backend
// token carries no expiry. Non-positive hours fall back to 8h.
func (c *Config) SessionTTL() time.Duration {
	if c.SessionTTLHours <= 0 {
		return 8 * time.Hour
	}
	return time.Duration(c.SessionTTLHours) * time.Hour
}

// APITimeout bounds every call to the backend API.
func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.APITimeoutSeconds) * time.Second
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	setDefaults(v)

	// AutomaticEnv only reaches keys viper already knows, so every key needs a default.
	// Optional .env file for local development; missing is not an error
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", 8080)
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("WORKER_POOL_SIZE", 2)
	v.SetDefault("ALLOWED_ORIGIN", "http://localhost:5173")
	v.SetDefault("TRUSTED_PROXIES", []string{})
	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("SESSION_BACKEND", "redis")
	v.SetDefault("SESSION_TTL_HOURS", 8)
	v.SetDefault("SESSION_COOKIE_NAME", "posadmin_sid")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("API_BASE_URL", "http://localhost:3000/api")
	v.SetDefault("API_TIMEOUT_SECONDS", 15)
	v.SetDefault("PAGE_SIZE", 10)
	v.SetDefault("LOGIN_RATE_PER_MINUTE", 20)
	v.SetDefault("EXPORT_STORAGE_PATH", "/tmp/posadmin/exports")
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USER", "")
	v.SetDefault("SMTP_PASSWORD", "")
}
