// Phonographus - Track Search Aggregation for hearthis.at
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/phonographus

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - API endpoint latency and throughput
// - Aggregation runs (fan-out searches against the catalog)
// - Per-source fetch outcomes
// - Result cache efficiency
// - Upstream circuit breaker behavior

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}, // Optimized for API latency
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Aggregation Run Metrics
	SearchRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_runs_total",
			Help: "Total number of search requests by outcome",
		},
		[]string{"outcome"}, // "hit", "miss", "short_query"
	)

	SearchRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "search_run_duration_seconds",
			Help:    "Duration of full aggregation runs in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 4, 6, 8, 10, 15, 30}, // Bounded by per-call timeouts
		},
	)

	SearchResultsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "search_results_returned",
			Help:    "Number of results returned per search",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 150},
		},
	)

	// Per-Source Fetch Metrics
	FetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_fetches_total",
			Help: "Total number of catalog fetch operations",
		},
		[]string{"source", "result"}, // source: "broad", "artist"; result: "success", "empty", "error"
	)

	FetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_fetch_duration_seconds",
			Help:    "Duration of individual catalog fetch calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	FetchItemsReturned = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_fetch_items_returned",
			Help:    "Number of candidate items returned per fetch call",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
		},
		[]string{"source"},
	)

	// Worker Pool Metrics
	WorkerPoolRunning = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_pool_running",
			Help: "Current number of in-flight fetch tasks in the worker pool",
		},
	)

	WorkerPoolCapacity = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_pool_capacity",
			Help: "Configured worker pool ceiling",
		},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"}, // "search_results"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache evictions (capacity or TTL expiry)",
		},
		[]string{"cache_type"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordSearchRun records the outcome of one aggregation run.
// Outcome "hit" and "short_query" runs have no meaningful duration and
// record only the counter.
func RecordSearchRun(outcome string, duration time.Duration, results int) {
	SearchRunsTotal.WithLabelValues(outcome).Inc()
	if outcome == "miss" {
		SearchRunDuration.Observe(duration.Seconds())
		SearchResultsReturned.Observe(float64(results))
	}
}

// RecordFetch records one catalog fetch call.
func RecordFetch(source, result string, duration time.Duration, items int) {
	FetchesTotal.WithLabelValues(source, result).Inc()
	FetchDuration.WithLabelValues(source).Observe(duration.Seconds())
	FetchItemsReturned.WithLabelValues(source).Observe(float64(items))
}

// UpdateWorkerPool updates worker pool utilization gauges.
func UpdateWorkerPool(running, capacity int) {
	WorkerPoolRunning.Set(float64(running))
	WorkerPoolCapacity.Set(float64(capacity))
}

// RecordCacheHit records a cache hit for the given cache type.
func RecordCacheHit(cacheType string) {
	CacheHits.WithLabelValues(cacheType).Inc()
}

// RecordCacheMiss records a cache miss for the given cache type.
func RecordCacheMiss(cacheType string) {
	CacheMisses.WithLabelValues(cacheType).Inc()
}

// UpdateCacheSize sets the current entry count for the given cache type.
func UpdateCacheSize(cacheType string, size int) {
	CacheSize.WithLabelValues(cacheType).Set(float64(size))
}

// RecordCacheEviction records evicted entries for the given cache type.
func RecordCacheEviction(cacheType string, count int) {
	if count <= 0 {
		return
	}
	CacheEvictions.WithLabelValues(cacheType).Add(float64(count))
}
