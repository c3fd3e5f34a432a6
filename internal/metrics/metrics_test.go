// Phonographus - Track Search Aggregation for hearthis.at
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/phonographus

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/search", "200"))

	RecordAPIRequest("GET", "/api/v1/search", "200", 42*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/search", "200"))
	if after != before+1 {
		t.Errorf("Expected counter to increment by 1, got %f -> %f", before, after)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	base := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != base+1 {
		t.Errorf("Expected active requests %f, got %f", base+1, got)
	}

	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != base {
		t.Errorf("Expected active requests %f, got %f", base, got)
	}
}

func TestRecordSearchRun(t *testing.T) {
	tests := []struct {
		name    string
		outcome string
	}{
		{"cache hit", "hit"},
		{"cache miss", "miss"},
		{"short query", "short_query"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(SearchRunsTotal.WithLabelValues(tt.outcome))

			RecordSearchRun(tt.outcome, 1500*time.Millisecond, 42)

			after := testutil.ToFloat64(SearchRunsTotal.WithLabelValues(tt.outcome))
			if after != before+1 {
				t.Errorf("Expected outcome counter to increment, got %f -> %f", before, after)
			}
		})
	}
}

func TestRecordFetch(t *testing.T) {
	before := testutil.ToFloat64(FetchesTotal.WithLabelValues("broad", "success"))

	RecordFetch("broad", "success", 800*time.Millisecond, 20)
	RecordFetch("artist", "error", 6*time.Second, 0)
	RecordFetch("artist", "empty", 300*time.Millisecond, 0)

	after := testutil.ToFloat64(FetchesTotal.WithLabelValues("broad", "success"))
	if after != before+1 {
		t.Errorf("Expected broad/success counter to increment, got %f -> %f", before, after)
	}
	if got := testutil.ToFloat64(FetchesTotal.WithLabelValues("artist", "error")); got < 1 {
		t.Errorf("Expected artist/error counter >= 1, got %f", got)
	}
}

func TestCacheMetrics(t *testing.T) {
	hitsBefore := testutil.ToFloat64(CacheHits.WithLabelValues("search_results"))

	RecordCacheHit("search_results")
	RecordCacheMiss("search_results")
	UpdateCacheSize("search_results", 17)
	RecordCacheEviction("search_results", 3)
	RecordCacheEviction("search_results", 0) // no-op

	if got := testutil.ToFloat64(CacheHits.WithLabelValues("search_results")); got != hitsBefore+1 {
		t.Errorf("Expected hits %f, got %f", hitsBefore+1, got)
	}
	if got := testutil.ToFloat64(CacheSize.WithLabelValues("search_results")); got != 17 {
		t.Errorf("Expected size gauge 17, got %f", got)
	}
}

func TestUpdateWorkerPool(t *testing.T) {
	UpdateWorkerPool(7, 30)

	if got := testutil.ToFloat64(WorkerPoolRunning); got != 7 {
		t.Errorf("Expected running gauge 7, got %f", got)
	}
	if got := testutil.ToFloat64(WorkerPoolCapacity); got != 30 {
		t.Errorf("Expected capacity gauge 30, got %f", got)
	}
}
