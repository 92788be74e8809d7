// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateCMS,
		c.validateFeed,
		c.validateCache,
		c.validateSecurity,
		c.validateLogging,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateCMS() error {
	if c.CMS.BaseURL == "" {
		return errors.New("WORDPRESS_API_URL is required")
	}
	u, err := url.Parse(c.CMS.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("WORDPRESS_API_URL must be an absolute http(s) URL, got %q", c.CMS.BaseURL)
	}
	if c.CMS.Timeout <= 0 {
		return fmt.Errorf("CMS_TIMEOUT must be positive")
	}
	if c.CMS.RateLimitRPS <= 0 {
		return fmt.Errorf("CMS_RATE_LIMIT_RPS must be positive")
	}
	if c.CMS.RateLimitBurst < 1 {
		return fmt.Errorf("CMS_RATE_LIMIT_BURST must be at least 1")
	}
	return nil
}

func (c *Config) validateFeed() error {
	if c.Feed.TopPerPage < 1 || c.Feed.TopPerPage > 100 {
		return fmt.Errorf("FEED_TOP_PER_PAGE must be between 1 and 100")
	}
	if c.Feed.PerPage < 1 || c.Feed.PerPage > 100 {
		return fmt.Errorf("FEED_PER_PAGE must be between 1 and 100")
	}
	if c.Feed.MaxConcurrentFetches < 1 {
		return fmt.Errorf("FEED_MAX_CONCURRENT_FETCHES must be at least 1")
	}
	if c.Feed.ViewTTL <= 0 {
		return fmt.Errorf("FEED_VIEW_TTL must be positive")
	}
	if c.Feed.JanitorInterval <= 0 {
		return fmt.Errorf("FEED_JANITOR_INTERVAL must be positive")
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.TTL < 0 || c.Cache.BannerTTL < 0 {
		return fmt.Errorf("CACHE_TTL and CACHE_BANNER_TTL must not be negative")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	if c.Security.SessionTimeout <= 0 {
		return fmt.Errorf("SESSION_TIMEOUT must be positive")
	}
	switch c.Security.SessionStore {
	case "memory":
	case "badger":
		if c.Security.SessionStorePath == "" {
			return fmt.Errorf("SESSION_STORE_PATH is required when SESSION_STORE=badger")
		}
	default:
		return fmt.Errorf("SESSION_STORE must be 'memory' or 'badger', got %q", c.Security.SessionStore)
	}
	if c.Security.RevalidateInterval < 0 {
		return fmt.Errorf("SESSION_REVALIDATE_INTERVAL must not be negative")
	}
	if c.Security.CookieName == "" {
		return fmt.Errorf("COOKIE_NAME must not be empty")
	}
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1")
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
		}
	}
	if c.Server.IsProduction() && !c.Security.CookieSecure {
		return fmt.Errorf("COOKIE_SECURE must be true when ENVIRONMENT=production")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be 'json' or 'console', got %q", c.Logging.Format)
	}
	return nil
}
