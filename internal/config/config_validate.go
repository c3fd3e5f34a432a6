// Phonographus - Track Search Aggregation for hearthis.at
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/phonographus

package config

import (
	"fmt"
	"net/url"
	"time"
)

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateCatalog(); err != nil {
		return err
	}

	if err := c.validateSearch(); err != nil {
		return err
	}

	if err := c.validateCache(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateServer validates HTTP server configuration.
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout < time.Second {
		return fmt.Errorf("HTTP_TIMEOUT must be at least 1s, got %s", c.Server.Timeout)
	}
	if c.Server.Environment != "development" && c.Server.Environment != "production" {
		return fmt.Errorf("ENVIRONMENT must be development or production, got %q", c.Server.Environment)
	}
	return nil
}

// validateCatalog validates upstream API client configuration.
func (c *Config) validateCatalog() error {
	if c.Catalog.BaseURL == "" {
		return fmt.Errorf("CATALOG_BASE_URL is required")
	}
	if err := validateHTTPURL(c.Catalog.BaseURL, "CATALOG_BASE_URL"); err != nil {
		return err
	}
	if c.Catalog.FetchTimeout < 500*time.Millisecond {
		return fmt.Errorf("CATALOG_FETCH_TIMEOUT must be at least 500ms, got %s", c.Catalog.FetchTimeout)
	}
	if c.Catalog.PageCount < 1 || c.Catalog.PageCount > 100 {
		return fmt.Errorf("CATALOG_PAGE_COUNT must be between 1 and 100, got %d", c.Catalog.PageCount)
	}
	if c.Catalog.ArtistCount < 1 || c.Catalog.ArtistCount > 500 {
		return fmt.Errorf("CATALOG_ARTIST_COUNT must be between 1 and 500, got %d", c.Catalog.ArtistCount)
	}
	if c.Catalog.RateLimit <= 0 {
		return fmt.Errorf("CATALOG_RATE_LIMIT must be positive, got %g", c.Catalog.RateLimit)
	}
	if c.Catalog.RateBurst < 1 {
		return fmt.Errorf("CATALOG_RATE_BURST must be at least 1, got %d", c.Catalog.RateBurst)
	}
	if len(c.Catalog.UserAgents) == 0 {
		return fmt.Errorf("CATALOG_USER_AGENTS must contain at least one entry")
	}
	return nil
}

// validateSearch validates aggregation engine configuration.
func (c *Config) validateSearch() error {
	if c.Search.Pages < 1 {
		return fmt.Errorf("SEARCH_PAGES must be at least 1, got %d", c.Search.Pages)
	}
	if c.Search.ArtistFanout < 0 {
		return fmt.Errorf("SEARCH_ARTIST_FANOUT must not be negative, got %d", c.Search.ArtistFanout)
	}
	if c.Search.ArtistFanout > len(c.Search.Artists) {
		return fmt.Errorf("SEARCH_ARTIST_FANOUT (%d) exceeds roster size (%d)",
			c.Search.ArtistFanout, len(c.Search.Artists))
	}
	if c.Search.Workers < 1 {
		return fmt.Errorf("SEARCH_WORKERS must be at least 1, got %d", c.Search.Workers)
	}
	if c.Search.ScoreFloor < 0 || c.Search.ScoreFloor > 100 {
		return fmt.Errorf("SEARCH_SCORE_FLOOR must be between 0 and 100, got %d", c.Search.ScoreFloor)
	}
	if c.Search.MaxResults < 1 {
		return fmt.Errorf("SEARCH_MAX_RESULTS must be at least 1, got %d", c.Search.MaxResults)
	}
	if c.Search.MinQueryLength < 1 {
		return fmt.Errorf("SEARCH_MIN_QUERY_LENGTH must be at least 1, got %d", c.Search.MinQueryLength)
	}
	if c.Search.RunTimeout < time.Second {
		return fmt.Errorf("SEARCH_RUN_TIMEOUT must be at least 1s, got %s", c.Search.RunTimeout)
	}
	return nil
}

// validateCache validates result cache configuration.
func (c *Config) validateCache() error {
	if c.Cache.TTL < 0 {
		return fmt.Errorf("CACHE_TTL must not be negative, got %s", c.Cache.TTL)
	}
	if c.Cache.Capacity < 1 {
		return fmt.Errorf("CACHE_CAPACITY must be at least 1, got %d", c.Cache.Capacity)
	}
	if c.Cache.SweepInterval < time.Second {
		return fmt.Errorf("CACHE_SWEEP_INTERVAL must be at least 1s, got %s", c.Cache.SweepInterval)
	}
	return nil
}

// validateSecurity validates inbound rate limiting and CORS configuration.
func (c *Config) validateSecurity() error {
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow < time.Second {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be at least 1s, got %s", c.Security.RateLimitWindow)
		}
	}
	if len(c.Security.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must contain at least one entry (use * for any)")
	}
	return nil
}

// validateLogging validates logging configuration.
func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error; got %q", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}

	return nil
}

// validateHTTPURL validates that a URL is properly formatted for
// HTTP/HTTPS services. Validates scheme, host presence, and that no
// path or query is attached.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}

	// Allow trailing slash but no other paths
	if parsedURL.Path != "" && parsedURL.Path != "/" {
		return fmt.Errorf("%s should be base URL only, remove path: %s", fieldName, parsedURL.Path)
	}

	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}

	return nil
}
