// Phonographus - Track Search Aggregation for hearthis.at
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/phonographus

// Package catalog provides the HTTP client for the public hearthis.at
// API (https://api-v2.hearthis.at).
//
// Two read paths are exposed:
//
//   - SearchTracks: the paginated broad search endpoint. The upstream
//     caps each page at roughly 20 items, so deeper coverage requires
//     fetching multiple pages.
//   - ArtistTracks: a specific uploader's track feed, which returns
//     tracks the broad search misses.
//
// The upstream throttles aggressive callers, so the client rotates
// browser User-Agent strings per request and meters all outbound calls
// through a shared token-bucket rate limiter. Responses are decoded
// tolerantly: the search endpoint sometimes returns an object keyed by
// record number instead of an array, and individual records with
// unexpected shapes are skipped rather than failing the whole call.
//
// BreakerClient layers circuit breaker protection on top of Client so
// a dead upstream fails fast instead of tying up fan-out workers for
// the full fetch timeout.
package catalog
