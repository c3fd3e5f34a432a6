// Phonographus - Track Search Aggregation for hearthis.at
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/phonographus

package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/phonographus/config.yaml",
	"/etc/phonographus/config.yml",
}

// ConfigPathEnvVar is the environment variable that overrides the config
// file search path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by the config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        3873,
			Host:        "0.0.0.0",
			Timeout:     35 * time.Second,
			Environment: "development",
		},
		Catalog: CatalogConfig{
			BaseURL:      "https://api-v2.hearthis.at",
			FetchTimeout: 6 * time.Second,
			PageCount:    20, // Upstream caps broad search pages at 20 items
			ArtistCount:  100,
			RateLimit:    50,
			RateBurst:    30,
			UserAgents:   DefaultUserAgents,
		},
		Search: SearchConfig{
			Pages:          3,
			ArtistFanout:   20,
			Workers:        30,
			ScoreFloor:     45,
			MaxResults:     150,
			MinQueryLength: 2,
			RunTimeout:     30 * time.Second,
			Artists:        DefaultArtists,
		},
		Cache: CacheConfig{
			TTL:           30 * time.Minute,
			Capacity:      3000,
			SweepInterval: 5 * time.Minute,
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
			TrustedProxies:    []string{},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults: built-in sensible defaults
//  2. Config File: optional YAML config file (if exists)
//  3. Environment Variables: override any setting
//
// Precedence is ENV > File > Defaults. The returned Config has been
// validated; an invalid combination of settings yields an error rather
// than a partially usable configuration.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: optional config file
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	// Transform environment variable names to koanf paths:
	// HTTP_PORT -> server.port, CATALOG_BASE_URL -> catalog.base_url
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path of the first file found, or empty string if none.
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

// sliceConfigPaths defines which config paths are parsed as
// comma-separated slices when supplied through environment variables.
var sliceConfigPaths = []string{
	"catalog.user_agents",
	"search.artists",
	"security.cors_origins",
	"security.trusted_proxies",
}

// processSliceFields converts comma-separated string values to slices
// for known slice fields. Env vars arrive as plain strings but the
// config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// Already a slice (from YAML or defaults) - skip
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envTransformFunc transforms environment variable names to koanf config
// paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - CATALOG_BASE_URL -> catalog.base_url
//   - SEARCH_SCORE_FLOOR -> search.score_floor
//   - CACHE_TTL -> cache.ttl
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Server mappings
		"http_port":    "server.port",
		"http_host":    "server.host",
		"http_timeout": "server.timeout",
		"environment":  "server.environment",

		// Catalog mappings
		"catalog_base_url":      "catalog.base_url",
		"catalog_fetch_timeout": "catalog.fetch_timeout",
		"catalog_page_count":    "catalog.page_count",
		"catalog_artist_count":  "catalog.artist_count",
		"catalog_rate_limit":    "catalog.rate_limit",
		"catalog_rate_burst":    "catalog.rate_burst",
		"catalog_user_agents":   "catalog.user_agents",

		// Search mappings
		"search_pages":            "search.pages",
		"search_artist_fanout":    "search.artist_fanout",
		"search_workers":          "search.workers",
		"search_score_floor":      "search.score_floor",
		"search_max_results":      "search.max_results",
		"search_min_query_length": "search.min_query_length",
		"search_run_timeout":      "search.run_timeout",
		"search_artists":          "search.artists",

		// Cache mappings
		"cache_ttl":            "cache.ttl",
		"cache_capacity":       "cache.capacity",
		"cache_sweep_interval": "cache.sweep_interval",

		// Security mappings
		"rate_limit_requests": "security.rate_limit_reqs",
		"rate_limit_window":   "security.rate_limit_window",
		"disable_rate_limit":  "security.rate_limit_disabled",
		"cors_origins":        "security.cors_origins",
		"trusted_proxies":     "security.trusted_proxies",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// Unmapped keys are skipped so random environment variables do not
	// pollute the config.
	return ""
}

// joinHostPort formats a listen address, handling IPv6 hosts.
func joinHostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
