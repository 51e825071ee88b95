// Package config defines service configuration structures and loading hooks.
//
// Conventions:
//   - Defaults live in New; Load layers a YAML file and PXP_* env vars on top.
//   - Components receive the values they need through constructors; nothing
//     reads configuration from package state.
package config

import (
	"fmt"
	"time"
)

// MaxLimit is the default ceiling for GET /api/events?limit.
const MaxLimit = 2000

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":5000".
	Addr string `koanf:"addr"`

	// DatabasePath is the SQLite file holding the play_by_play table.
	DatabasePath string `koanf:"database_path"`

	// MaxLimit caps GET /api/events?limit.
	MaxLimit int `koanf:"max_limit"`

	// DefaultLimit is used when the limit parameter is absent.
	DefaultLimit int `koanf:"default_limit"`

	// CORSAllowedOrigins lists browser origins allowed to call the API.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`

	// RateLimitRequests per RateLimitWindow per client IP; 0 disables limiting.
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`

	// HTTP server timeouts.
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":5000",
		DatabasePath:       "pxp.db",
		MaxLimit:           MaxLimit,
		DefaultLimit:       MaxLimit,
		CORSAllowedOrigins: []string{"http://localhost:3000"},
		RateLimitRequests:  600,
		RateLimitWindow:    time.Minute,
		ReadTimeout:        10 * time.Second,
		WriteTimeout:       30 * time.Second,
		ShutdownTimeout:    30 * time.Second,
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.DatabasePath == "":
		return fmt.Errorf("%w: database_path must not be empty", ErrInvalidConfig)
	case c.MaxLimit < 1:
		return fmt.Errorf("%w: max_limit must be positive", ErrInvalidConfig)
	case c.DefaultLimit < 1 || c.DefaultLimit > c.MaxLimit:
		return fmt.Errorf("%w: default_limit must be between 1 and max_limit", ErrInvalidConfig)
	case c.RateLimitRequests < 0:
		return fmt.Errorf("%w: rate_limit_requests cannot be negative", ErrInvalidConfig)
	case c.RateLimitRequests > 0 && c.RateLimitWindow <= 0:
		return fmt.Errorf("%w: rate_limit_window must be positive", ErrInvalidConfig)
	}
	return nil
}
