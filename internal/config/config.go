package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/mahenabeywickrama/bovita-candles-fe/pkg/config"
)

// Config holds all configuration for the storefront server.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// Backend REST API
	APIBaseURL         string        `env:"API_BASE_URL" envDefault:"http://localhost:5000/api"`
	APITimeout         time.Duration `env:"API_TIMEOUT" envDefault:"10s"`
	APIMaxConns        int           `env:"API_MAX_CONNS_PER_HOST" envDefault:"50"`
	BreakerMinRequests uint32        `env:"API_BREAKER_MIN_REQUESTS" envDefault:"5"`
	BreakerOpenSecs    int           `env:"API_BREAKER_OPEN_SECONDS" envDefault:"30"`
	BreakerHalfCalls   uint32        `env:"API_BREAKER_HALF_OPEN_CALLS" envDefault:"2"`

	// Session storage
	RedisHost     string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	SessionCookieName   string        `env:"SESSION_COOKIE_NAME" envDefault:"bovita_session"`
	SessionCookieSecure bool          `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
	SessionFallbackTTL  time.Duration `env:"SESSION_FALLBACK_TTL" envDefault:"12h"`

	// Catalog snapshot cache
	CatalogTTL time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"60s"`

	// Pprof debug endpoints (IP allowlist in CIDR notation)
	PprofAllowedCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"10.0.0.0/8,172.16.0.0/12,192.168.0.0/16,127.0.0.0/8,::1/128" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if cfg.HTTPPort < 1 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid HTTP port: %d", cfg.HTTPPort)
	}
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL is required")
	}
	if cfg.APITimeout <= 0 {
		return nil, fmt.Errorf("API_TIMEOUT must be positive, got %s", cfg.APITimeout)
	}
	if cfg.SessionCookieName == "" {
		return nil, fmt.Errorf("SESSION_COOKIE_NAME is required")
	}
	if cfg.SessionFallbackTTL <= 0 {
		return nil, fmt.Errorf("SESSION_FALLBACK_TTL must be positive, got %s", cfg.SessionFallbackTTL)
	}
	if cfg.CatalogTTL <= 0 {
		return nil, fmt.Errorf("CATALOG_CACHE_TTL must be positive, got %s", cfg.CatalogTTL)
	}
	return cfg, nil
}

// RedisAddr returns the host:port address of the session store.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
