// Phonographus - Track Search Aggregation for hearthis.at
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/phonographus

/*
Package metrics provides Prometheus metrics collection and export for observability.

This package instruments the application with the Prometheus client library,
exposing metrics for monitoring performance, errors, and system health.

# Overview

The package provides metrics for:
  - HTTP request latency and throughput
  - Aggregation run duration and result counts
  - Per-source catalog fetch outcomes (broad search vs. artist pages)
  - Result cache hit/miss/eviction rates
  - Circuit breaker state transitions
  - Worker pool utilization

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:3873/metrics

# Usage

Metrics are package-level variables registered via promauto; recording is a
plain method call with no setup:

	metrics.SearchRunsTotal.WithLabelValues("miss").Inc()
	metrics.RecordFetch("broad", "success", elapsed, items)

All metrics are safe for concurrent use.
*/
package metrics
