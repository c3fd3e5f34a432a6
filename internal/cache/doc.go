// Phonographus - Track Search Aggregation for hearthis.at
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/phonographus

// Package cache provides an LRU result cache with per-entry TTL
// expiration for aggregated track search results.
//
// The cache key is the normalized search query and the value is the
// finished, scored and sorted result slice. Entries expire after the
// configured TTL and the least recently used entry is evicted when the
// cache exceeds its capacity. Expired entries are removed lazily on
// access; a periodic CleanupExpired pass reclaims entries that are
// never touched again.
//
// All operations are safe for concurrent use.
package cache
