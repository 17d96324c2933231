// Package config loads packforge settings from the config file and
// environment. Precedence: environment variables (PACKFORGE_*) over
// file values over built-in defaults.
package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds all tunable packforge settings.
type Config struct {
	// RegistryURL is the crates.io API base (the /crates endpoint).
	RegistryURL string `mapstructure:"registry_url"`

	// CDNURL is the static CDN base for crate tarballs.
	CDNURL string `mapstructure:"cdn_url"`

	// UserAgent is sent on every registry request, as crates.io requires.
	UserAgent string `mapstructure:"user_agent"`

	// CacheDir stores cached registry responses. Empty means the XDG
	// default (~/.cache/packforge).
	CacheDir string `mapstructure:"cache_dir"`

	// CacheTTL bounds how long registry responses are reused.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

const (
	defaultRegistryURL = "https://crates.io/api/v1/crates"
	defaultCDNURL      = "https://static.crates.io/crates"
	defaultUserAgent   = "packforge (https://github.com/packforge/packforge)"
	defaultCacheTTL    = 6 * time.Hour
)

// WithDefaults fills unset fields with their defaults.
func (c *Config) WithDefaults() *Config {
	if c.RegistryURL == "" {
		c.RegistryURL = defaultRegistryURL
	}
	if c.CDNURL == "" {
		c.CDNURL = defaultCDNURL
	}
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
	if c.CacheDir == "" {
		c.CacheDir = DefaultCacheDir()
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = defaultCacheTTL
	}
	return c
}

// DefaultCacheDir returns the cache directory following the XDG
// convention (~/.cache/packforge), falling back to the system temp dir
// when no user cache dir is available.
func DefaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "packforge")
	}
	return filepath.Join(dir, "packforge")
}

// DefaultConfigFile returns ~/.config/packforge/config.toml, or "" when
// the home directory cannot be determined.
func DefaultConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "packforge", "config.toml")
}
