// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists config file locations in priority order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/oyonews/config.yaml",
	"/etc/oyonews/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultCMSBaseURL is the production CMS.
const DefaultCMSBaseURL = "https://api.oyonews.com.ng/wp-json"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        3000,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		CMS: CMSConfig{
			BaseURL:        DefaultCMSBaseURL,
			Timeout:        15 * time.Second,
			RateLimitRPS:   20,
			RateLimitBurst: 40,
			AdminURL:       "https://api.oyonews.com.ng/wp-admin",
		},
		Feed: FeedConfig{
			TopPerPage:           10,
			PerPage:              2,
			MaxConcurrentFetches: 8,
			ViewTTL:              30 * time.Minute,
			JanitorInterval:      time.Minute,
		},
		Cache: CacheConfig{
			TTL:       2 * time.Minute,
			BannerTTL: 10 * time.Minute,
		},
		Security: SecurityConfig{
			SessionTimeout:     24 * time.Hour,
			SessionStore:       "memory",
			SessionStorePath:   "/data/sessions",
			RevalidateInterval: 15 * time.Minute,
			CookieName:         "oyonews_session",
			CookieSecure:       false,
			RateLimitReqs:      100,
			RateLimitWindow:    time.Minute,
			RateLimitDisabled:  false,
			CORSOrigins:        []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration in three layers: struct defaults, an
// optional YAML file, then mapped environment variables.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	cfg.CMS.BaseURL = strings.TrimRight(cfg.CMS.BaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma separated strings when set via env.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lower case) to koanf paths.
var envMappings = map[string]string{
	"http_port":    "server.port",
	"http_host":    "server.host",
	"http_timeout": "server.timeout",
	"environment":  "server.environment",

	// WORDPRESS_API_URL matches the variable the previous front end read.
	"wordpress_api_url":    "cms.base_url",
	"cms_base_url":         "cms.base_url",
	"cms_timeout":          "cms.timeout",
	"cms_rate_limit_rps":   "cms.rate_limit_rps",
	"cms_rate_limit_burst": "cms.rate_limit_burst",
	"cms_admin_url":        "cms.admin_url",

	"feed_top_per_page":           "feed.top_per_page",
	"feed_per_page":               "feed.per_page",
	"feed_max_concurrent_fetches": "feed.max_concurrent_fetches",
	"feed_view_ttl":               "feed.view_ttl",
	"feed_janitor_interval":       "feed.janitor_interval",

	"cache_ttl":        "cache.ttl",
	"cache_banner_ttl": "cache.banner_ttl",

	"jwt_secret":                  "security.jwt_secret",
	"session_timeout":             "security.session_timeout",
	"session_store":               "security.session_store",
	"session_store_path":          "security.session_store_path",
	"session_revalidate_interval": "security.revalidate_interval",
	"token_encryption_key":        "security.token_encryption_key",
	"cookie_name":                 "security.cookie_name",
	"cookie_secure":               "security.cookie_secure",
	"rate_limit_requests":         "security.rate_limit_reqs",
	"rate_limit_window":           "security.rate_limit_window",
	"rate_limit_disabled":         "security.rate_limit_disabled",
	"cors_origins":                "security.cors_origins",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc returns the koanf path for an environment variable, or ""
// to ignore it.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
