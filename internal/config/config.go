// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers defaults, an optional YAML file and WBDASH_ env vars.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the slog handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// WorldBankBaseURL is the API v2 root, without trailing slash.
	WorldBankBaseURL string `koanf:"worldbank_base_url"`

	// FetchTimeoutMS bounds one upstream request.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// PerPage and MaxPages control upstream paging.
	PerPage  int `koanf:"per_page"`
	MaxPages int `koanf:"max_pages"`

	// CacheTTLSeconds is the read-through cache time-to-live.
	CacheTTLSeconds int `koanf:"cache_ttl_seconds"`

	// CacheMaxEntries bounds the in-memory cache; <= 0 means unbounded.
	CacheMaxEntries int `koanf:"cache_max_entries"`

	// CachePath selects the SQLite cache file. Empty keeps the cache in memory.
	CachePath string `koanf:"cache_path"`

	// CachePurgeSchedule is a cron spec for removing expired cache rows.
	CachePurgeSchedule string `koanf:"cache_purge_schedule"`

	// MinYear and MaxYear bound every requested year range.
	MinYear int `koanf:"min_year"`
	MaxYear int `koanf:"max_year"`

	// DefaultLocale is used when a request carries no lang parameter.
	DefaultLocale string `koanf:"default_locale"`

	// CORSAllowedOrigins is a comma separated origin list.
	CORSAllowedOrigins string `koanf:"cors_allowed_origins"`
}

// New creates a Config populated with defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":9080",
		WorldBankBaseURL:   "https://api.worldbank.org/v2",
		FetchTimeoutMS:     30_000,
		PerPage:            1000,
		MaxPages:           5,
		CacheTTLSeconds:    3600,
		CacheMaxEntries:    4096,
		CachePath:          "",
		CachePurgeSchedule: "@every 10m",
		MinYear:            2000,
		MaxYear:            2023,
		DefaultLocale:      "ja",
		CORSAllowedOrigins: "*",
	}
}

// FetchTimeout returns the upstream request deadline.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}

// CacheTTL returns the cache time-to-live.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// AllowedOrigins splits CORSAllowedOrigins.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Validate checks invariants between fields.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.WorldBankBaseURL == "":
		return fmt.Errorf("%w: worldbank_base_url must not be empty", ErrInvalidConfig)
	case c.FetchTimeoutMS <= 0:
		return fmt.Errorf("%w: fetch_timeout_ms must be positive", ErrInvalidConfig)
	case c.PerPage <= 0 || c.MaxPages <= 0:
		return fmt.Errorf("%w: per_page and max_pages must be positive", ErrInvalidConfig)
	case c.CacheTTLSeconds <= 0:
		return fmt.Errorf("%w: cache_ttl_seconds must be positive", ErrInvalidConfig)
	case c.MinYear > c.MaxYear:
		return fmt.Errorf("%w: min_year %d after max_year %d", ErrInvalidConfig, c.MinYear, c.MaxYear)
	}
	switch c.DefaultLocale {
	case "ja", "en":
	default:
		return fmt.Errorf("%w: unsupported default_locale %q", ErrInvalidConfig, c.DefaultLocale)
	}
	return nil
}
