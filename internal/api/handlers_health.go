// Phonographus - Track Search Aggregation for hearthis.at
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/phonographus

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/phonographus/internal/models"
)

const version = "1.0.0"

// Health handles GET /health, the liveness probe. It answers 200 whenever
// the process is up, regardless of upstream reachability — the aggregator is
// useful even when hearthis.at is down (cache hits, degraded runs).
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":   true,
			"version": version,
			"uptime":  time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// Ready handles GET /ready, the readiness probe. Ready means the engine is
// constructed and can accept queries; it reports cache occupancy so operators
// can watch warm-up after a restart.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	ready := h.engine != nil

	statusCode := http.StatusOK
	status := "success"
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	data := map[string]interface{}{
		"ready_to_serve": ready,
		"uptime":         time.Since(h.startTime).Seconds(),
	}
	if ready {
		stats := h.engine.CacheStats()
		data["cache_entries"] = stats.Size
		data["cache_hits"] = stats.Hits
		data["cache_misses"] = stats.Misses
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: status,
		Data:   data,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
