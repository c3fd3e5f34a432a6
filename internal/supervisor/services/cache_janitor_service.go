// Phonographus - Track Search Aggregation for hearthis.at
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/phonographus

package services

import (
	"context"
	"time"

	"github.com/tomtom215/phonographus/internal/logging"
	"github.com/tomtom215/phonographus/internal/metrics"
)

// cacheMetricsLabel is the cache_type label shared with the search engine's
// hit/miss recording so janitor sweeps land in the same metric series.
const cacheMetricsLabel = "search_results"

// SweepableCache matches the result cache's maintenance surface.
//
// This interface allows the CacheJanitorService to work with the cache
// without importing the cache package, and to be tested with mocks.
//
// Satisfied by *cache.ResultCache.
type SweepableCache interface {
	// CleanupExpired removes all expired entries and reports how many
	// were dropped.
	CleanupExpired() int

	// Len returns the number of live entries.
	Len() int
}

// CacheJanitorService periodically sweeps expired entries out of the
// result cache.
//
// The cache already drops expired entries lazily when they are looked
// up, but queries that never recur would otherwise pin dead entries
// until LRU pressure pushes them out. The janitor reclaims that memory
// on a fixed interval and keeps the cache size gauge honest between
// requests.
//
// Example usage:
//
//	svc := services.NewCacheJanitorService(resultCache, cfg.Cache.SweepInterval)
//	tree.AddMaintenanceService(svc)
type CacheJanitorService struct {
	cache    SweepableCache
	interval time.Duration
	name     string
}

// NewCacheJanitorService creates a new cache janitor service.
//
// The interval determines how often expired entries are swept. A zero or
// negative interval falls back to 5 minutes, which is comfortably inside
// the default 30 minute entry TTL.
func NewCacheJanitorService(cache SweepableCache, interval time.Duration) *CacheJanitorService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &CacheJanitorService{
		cache:    cache,
		interval: interval,
		name:     "cache-janitor",
	}
}

// Serve implements suture.Service.
//
// It runs a ticker loop that sweeps the cache every interval until the
// context is canceled, then returns ctx.Err() for a clean shutdown.
func (s *CacheJanitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.sweep()
		}
	}
}

// sweep runs one cleanup pass and records the outcome.
func (s *CacheJanitorService) sweep() {
	removed := s.cache.CleanupExpired()
	remaining := s.cache.Len()

	if removed > 0 {
		metrics.RecordCacheEviction(cacheMetricsLabel, removed)
		logging.Debug().
			Int("removed", removed).
			Int("remaining", remaining).
			Msg("Swept expired cache entries")
	}
	metrics.UpdateCacheSize(cacheMetricsLabel, remaining)
}

// String implements fmt.Stringer for logging.
// Suture uses this to identify the service in log messages.
func (s *CacheJanitorService) String() string {
	return s.name
}
