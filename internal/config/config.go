// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package config

import (
	"net"
	"strconv"
	"time"
)

// Config is the complete application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	CMS      CMSConfig      `koanf:"cms"`
	Feed     FeedConfig     `koanf:"feed"`
	Cache    CacheConfig    `koanf:"cache"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`
}

// CMSConfig points at the headless CMS REST API.
type CMSConfig struct {
	// BaseURL is the wp-json root, for example https://example.com/wp-json.
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`

	// Outbound request budget shared by every view.
	RateLimitRPS   float64 `koanf:"rate_limit_rps"`
	RateLimitBurst int     `koanf:"rate_limit_burst"`

	// AdminURL is where administrators land after signing up.
	AdminURL string `koanf:"admin_url"`
}

// FeedConfig tunes the home page category feed.
type FeedConfig struct {
	TopPerPage           int           `koanf:"top_per_page"`
	PerPage              int           `koanf:"per_page"`
	MaxConcurrentFetches int           `koanf:"max_concurrent_fetches"`
	ViewTTL              time.Duration `koanf:"view_ttl"`
	JanitorInterval      time.Duration `koanf:"janitor_interval"`
}

// CacheConfig sets TTLs for rarely changing CMS reads.
type CacheConfig struct {
	TTL       time.Duration `koanf:"ttl"`
	BannerTTL time.Duration `koanf:"banner_ttl"`
}

// SecurityConfig covers sessions, cookies and inbound limits.
type SecurityConfig struct {
	JWTSecret          string        `koanf:"jwt_secret"`
	SessionTimeout     time.Duration `koanf:"session_timeout"`
	SessionStore       string        `koanf:"session_store"`
	SessionStorePath   string        `koanf:"session_store_path"`
	RevalidateInterval time.Duration `koanf:"revalidate_interval"`

	// TokenEncryptionKey is a base64 key used to encrypt CMS tokens at rest.
	// Empty disables encryption.
	TokenEncryptionKey string `koanf:"token_encryption_key"`

	CookieName   string `koanf:"cookie_name"`
	CookieSecure bool   `koanf:"cookie_secure"`

	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	CORSOrigins []string `koanf:"cors_origins"`
}

// LoggingConfig feeds logging.Init.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// IsProduction reports whether the environment is production.
func (s ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}

// Load reads configuration from defaults, file and environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
