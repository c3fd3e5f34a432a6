// Phonographus - Track Search Aggregation for hearthis.at
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/phonographus

// Package middleware provides HTTP middleware shared by all routes:
// request-ID injection, Prometheus instrumentation, and gzip compression.
//
// Middleware here uses the http.HandlerFunc signature and is adapted to
// Chi's func(http.Handler) http.Handler form by the api package.
package middleware
