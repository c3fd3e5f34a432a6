// Phonographus - Track Search Aggregation for hearthis.at
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/phonographus

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 3873 {
		t.Errorf("Expected default port 3873, got %d", cfg.Server.Port)
	}
	if cfg.Catalog.BaseURL != "https://api-v2.hearthis.at" {
		t.Errorf("Expected hearthis.at base URL, got %s", cfg.Catalog.BaseURL)
	}
	if cfg.Catalog.FetchTimeout != 6*time.Second {
		t.Errorf("Expected 6s fetch timeout, got %s", cfg.Catalog.FetchTimeout)
	}
	if cfg.Search.Pages != 3 {
		t.Errorf("Expected 3 broad search pages, got %d", cfg.Search.Pages)
	}
	if cfg.Search.ArtistFanout != 20 {
		t.Errorf("Expected artist fanout 20, got %d", cfg.Search.ArtistFanout)
	}
	if cfg.Search.Workers != 30 {
		t.Errorf("Expected 30 workers, got %d", cfg.Search.Workers)
	}
	if cfg.Search.ScoreFloor != 45 {
		t.Errorf("Expected score floor 45, got %d", cfg.Search.ScoreFloor)
	}
	if cfg.Search.MaxResults != 150 {
		t.Errorf("Expected max results 150, got %d", cfg.Search.MaxResults)
	}
	if cfg.Cache.TTL != 30*time.Minute {
		t.Errorf("Expected 30m cache TTL, got %s", cfg.Cache.TTL)
	}
	if cfg.Cache.Capacity != 3000 {
		t.Errorf("Expected cache capacity 3000, got %d", cfg.Cache.Capacity)
	}
	if len(cfg.Search.Artists) != 41 {
		t.Errorf("Expected 41 roster artists, got %d", len(cfg.Search.Artists))
	}
	if len(cfg.Catalog.UserAgents) != 4 {
		t.Errorf("Expected 4 default user agents, got %d", len(cfg.Catalog.UserAgents))
	}
	if cfg.Search.ArtistFanout > len(cfg.Search.Artists) {
		t.Error("Expected default fanout to fit within the default roster")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected default config to validate, got %v", err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("SEARCH_SCORE_FLOOR", "60")
	t.Setenv("CACHE_TTL", "10m")
	t.Setenv("CATALOG_BASE_URL", "https://example.com")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Expected env override port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Search.ScoreFloor != 60 {
		t.Errorf("Expected env override score floor 60, got %d", cfg.Search.ScoreFloor)
	}
	if cfg.Cache.TTL != 10*time.Minute {
		t.Errorf("Expected env override TTL 10m, got %s", cfg.Cache.TTL)
	}
	if cfg.Catalog.BaseURL != "https://example.com" {
		t.Errorf("Expected env override base URL, got %s", cfg.Catalog.BaseURL)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Expected env override log level debug, got %s", cfg.Logging.Level)
	}

	// Untouched settings keep their defaults.
	if cfg.Search.MaxResults != 150 {
		t.Errorf("Expected default max results 150, got %d", cfg.Search.MaxResults)
	}
}

func TestLoadEnvSliceFields(t *testing.T) {
	t.Setenv("SEARCH_ARTISTS", "djalpha, djbeta ,djgamma")
	t.Setenv("SEARCH_ARTIST_FANOUT", "2")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.Search.Artists) != 3 {
		t.Fatalf("Expected 3 artists from env, got %d: %v", len(cfg.Search.Artists), cfg.Search.Artists)
	}
	if cfg.Search.Artists[1] != "djbeta" {
		t.Errorf("Expected whitespace-trimmed artist djbeta, got %q", cfg.Search.Artists[1])
	}
	if len(cfg.Security.CORSOrigins) != 2 {
		t.Errorf("Expected 2 CORS origins, got %d", len(cfg.Security.CORSOrigins))
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	yaml := `
server:
  port: 9090
search:
  score_floor: 55
cache:
  capacity: 500
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv(ConfigPathEnvVar, path)
	// Env still beats the file.
	t.Setenv("SEARCH_SCORE_FLOOR", "65")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Expected file override port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Cache.Capacity != 500 {
		t.Errorf("Expected file override capacity 500, got %d", cfg.Cache.Capacity)
	}
	if cfg.Search.ScoreFloor != 65 {
		t.Errorf("Expected env to beat file for score floor, got %d", cfg.Search.ScoreFloor)
	}
	// Defaults survive where neither layer overrides.
	if cfg.Search.Pages != 3 {
		t.Errorf("Expected default pages 3, got %d", cfg.Search.Pages)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"CATALOG_BASE_URL", "catalog.base_url"},
		{"CATALOG_FETCH_TIMEOUT", "catalog.fetch_timeout"},
		{"SEARCH_WORKERS", "search.workers"},
		{"SEARCH_MIN_QUERY_LENGTH", "search.min_query_length"},
		{"CACHE_SWEEP_INTERVAL", "cache.sweep_interval"},
		{"RATE_LIMIT_REQUESTS", "security.rate_limit_reqs"},
		{"LOG_FORMAT", "logging.format"},
		{"PATH", ""},
		{"RANDOM_UNRELATED_VAR", ""},
	}

	for _, tt := range tests {
		if got := envTransformFunc(tt.env); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}

func TestValidateRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "port too low",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "HTTP_PORT",
		},
		{
			name:    "port too high",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "HTTP_PORT",
		},
		{
			name:    "bad environment",
			mutate:  func(c *Config) { c.Server.Environment = "staging" },
			wantErr: "ENVIRONMENT",
		},
		{
			name:    "missing base URL",
			mutate:  func(c *Config) { c.Catalog.BaseURL = "" },
			wantErr: "CATALOG_BASE_URL",
		},
		{
			name:    "base URL with path",
			mutate:  func(c *Config) { c.Catalog.BaseURL = "https://api-v2.hearthis.at/search" },
			wantErr: "base URL only",
		},
		{
			name:    "base URL with bad scheme",
			mutate:  func(c *Config) { c.Catalog.BaseURL = "ftp://api-v2.hearthis.at" },
			wantErr: "scheme",
		},
		{
			name:    "fetch timeout too short",
			mutate:  func(c *Config) { c.Catalog.FetchTimeout = 100 * time.Millisecond },
			wantErr: "CATALOG_FETCH_TIMEOUT",
		},
		{
			name:    "empty user agent pool",
			mutate:  func(c *Config) { c.Catalog.UserAgents = nil },
			wantErr: "CATALOG_USER_AGENTS",
		},
		{
			name:    "zero pages",
			mutate:  func(c *Config) { c.Search.Pages = 0 },
			wantErr: "SEARCH_PAGES",
		},
		{
			name:    "fanout beyond roster",
			mutate:  func(c *Config) { c.Search.ArtistFanout = len(c.Search.Artists) + 1 },
			wantErr: "SEARCH_ARTIST_FANOUT",
		},
		{
			name:    "zero workers",
			mutate:  func(c *Config) { c.Search.Workers = 0 },
			wantErr: "SEARCH_WORKERS",
		},
		{
			name:    "score floor above 100",
			mutate:  func(c *Config) { c.Search.ScoreFloor = 101 },
			wantErr: "SEARCH_SCORE_FLOOR",
		},
		{
			name:    "zero cache capacity",
			mutate:  func(c *Config) { c.Cache.Capacity = 0 },
			wantErr: "CACHE_CAPACITY",
		},
		{
			name:    "zero rate limit requests",
			mutate:  func(c *Config) { c.Security.RateLimitReqs = 0 },
			wantErr: "RATE_LIMIT_REQUESTS",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "LOG_LEVEL",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "LOG_FORMAT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestValidateRateLimitDisabledSkipsLimits(t *testing.T) {
	cfg := defaultConfig()
	cfg.Security.RateLimitDisabled = true
	cfg.Security.RateLimitReqs = 0

	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected disabled rate limiting to skip limit validation, got %v", err)
	}
}

func TestServerAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"0.0.0.0", 3873, "0.0.0.0:3873"},
		{"localhost", 8080, "localhost:8080"},
		{"::", 3873, "[::]:3873"},
	}

	for _, tt := range tests {
		s := ServerConfig{Host: tt.host, Port: tt.port}
		if got := s.Addr(); got != tt.want {
			t.Errorf("Addr(%q, %d) = %q, want %q", tt.host, tt.port, got, tt.want)
		}
	}
}

func TestIsProduction(t *testing.T) {
	s := ServerConfig{Environment: "production"}
	if !s.IsProduction() {
		t.Error("Expected production mode")
	}

	s.Environment = "development"
	if s.IsProduction() {
		t.Error("Expected development mode")
	}
}
