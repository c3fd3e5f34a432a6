// Phonographus - Track Search Aggregation for hearthis.at
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/phonographus

package config

import (
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML config file, and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in sensible defaults for all settings
//  2. Config File: optional YAML config file (config.yaml)
//  3. Environment Variables: override any setting
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access
// from multiple goroutines.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Catalog  CatalogConfig  `koanf:"catalog"`
	Search   SearchConfig   `koanf:"search"`
	Cache    CacheConfig    `koanf:"cache"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - HTTP_PORT: listen port (default: 3873)
//   - HTTP_HOST: bind address (default: 0.0.0.0)
//   - HTTP_TIMEOUT: read/write timeout (default: 35s)
//   - ENVIRONMENT: deployment mode, development or production
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`
}

// CatalogConfig holds settings for the upstream hearthis.at API client.
//
// The public hearthis.at API caps broad search pages at 20 items and
// does not require authentication, but it throttles aggressive callers.
// The outbound rate limit and the rotating User-Agent pool keep the
// fan-out underneath that threshold.
//
// Environment Variables:
//   - CATALOG_BASE_URL: API base URL (default: https://api-v2.hearthis.at)
//   - CATALOG_FETCH_TIMEOUT: per-call timeout (default: 6s)
//   - CATALOG_PAGE_COUNT: items per broad search page (default: 20)
//   - CATALOG_ARTIST_COUNT: items per artist feed call (default: 100)
//   - CATALOG_RATE_LIMIT: outbound requests per second (default: 50)
//   - CATALOG_RATE_BURST: outbound burst size (default: 30)
//   - CATALOG_USER_AGENTS: comma-separated User-Agent pool
type CatalogConfig struct {
	BaseURL      string        `koanf:"base_url"`
	FetchTimeout time.Duration `koanf:"fetch_timeout"` // Per upstream call, connect through body read
	PageCount    int           `koanf:"page_count"`    // Items requested per broad search page
	ArtistCount  int           `koanf:"artist_count"`  // Items requested per artist feed call
	RateLimit    float64       `koanf:"rate_limit"`    // Outbound requests per second across all workers
	RateBurst    int           `koanf:"rate_burst"`
	UserAgents   []string      `koanf:"user_agents"` // Rotated per request to avoid upstream blocking
}

// SearchConfig holds aggregation engine settings.
//
// A single search run dispatches Pages broad search calls plus
// ArtistFanout artist feed calls through a worker pool capped at
// Workers goroutines. Results below ScoreFloor are discarded and the
// merged list is truncated to MaxResults entries.
//
// Environment Variables:
//   - SEARCH_PAGES: broad search pages fetched per run (default: 3)
//   - SEARCH_ARTIST_FANOUT: artists queried per run (default: 20)
//   - SEARCH_WORKERS: worker pool ceiling (default: 30)
//   - SEARCH_SCORE_FLOOR: minimum relevance score, exclusive (default: 45)
//   - SEARCH_MAX_RESULTS: result list cap (default: 150)
//   - SEARCH_MIN_QUERY_LENGTH: minimum normalized query length (default: 2)
//   - SEARCH_RUN_TIMEOUT: outer deadline for a whole run (default: 30s)
//   - SEARCH_ARTISTS: comma-separated artist roster override
type SearchConfig struct {
	Pages          int           `koanf:"pages"`
	ArtistFanout   int           `koanf:"artist_fanout"`
	Workers        int           `koanf:"workers"`
	ScoreFloor     int           `koanf:"score_floor"`
	MaxResults     int           `koanf:"max_results"`
	MinQueryLength int           `koanf:"min_query_length"`
	RunTimeout     time.Duration `koanf:"run_timeout"`
	Artists        []string      `koanf:"artists"` // Known uploader roster, shuffled once at startup
}

// CacheConfig holds result cache settings.
//
// Environment Variables:
//   - CACHE_TTL: entry lifetime (default: 30m)
//   - CACHE_CAPACITY: maximum entries before LRU eviction (default: 3000)
//   - CACHE_SWEEP_INTERVAL: expired-entry sweep period (default: 5m)
type CacheConfig struct {
	TTL           time.Duration `koanf:"ttl"`
	Capacity      int           `koanf:"capacity"`
	SweepInterval time.Duration `koanf:"sweep_interval"`
}

// SecurityConfig holds inbound rate limiting and CORS settings.
//
// Environment Variables:
//   - RATE_LIMIT_REQUESTS: requests per window per client IP (default: 100)
//   - RATE_LIMIT_WINDOW: rate limit window (default: 1m)
//   - DISABLE_RATE_LIMIT: disable inbound rate limiting (default: false)
//   - CORS_ORIGINS: comma-separated allowed origins (default: *)
//   - TRUSTED_PROXIES: comma-separated trusted proxy CIDRs
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	TrustedProxies    []string      `koanf:"trusted_proxies"`
}

// LoggingConfig holds logging settings.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json or console (default: json)
//   - LOG_CALLER: include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// DefaultUserAgents is the built-in browser User-Agent pool. One entry
// is picked at random per upstream request so sustained fan-out traffic
// does not present a single synthetic client to hearthis.at.
var DefaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Safari/605.1.15",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101 Firefox/115.0",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
}

// DefaultArtists is the built-in roster of known hearthis.at uploaders
// whose feeds are queried on every search run. The broad search API
// undercounts tracks from these accounts, so their feeds are fetched
// directly and scored locally.
var DefaultArtists = []string{
	"aidm", "allindiandjsclub", "djnyk", "djo2srk", "djshadowdubai", "desitech",
	"djshree", "djchetas", "djaqueel", "djlemon", "djparoma",
	"djkawal", "djbteja", "djrix", "djsmita", "djnotorious",
	"djsyrah", "djsarfaraz", "djasif", "djsubham", "djtejas",
	"djakhil", "djyogi", "djamit", "djruanon", "djkwid",
	"remix", "bollywood", "clubmirchi", "midnight", "bdes",
	"djremix", "mashup", "desiremix", "hindiremix", "punjabiremix",
	"djdalal", "djshouki", "djshaan", "djshadow", "djrink",
}

// Addr returns the host:port listen address for the HTTP server.
func (s *ServerConfig) Addr() string {
	return joinHostPort(s.Host, s.Port)
}

// IsProduction reports whether the server runs in production mode.
func (s *ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}
