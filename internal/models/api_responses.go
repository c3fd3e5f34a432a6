// Phonographus - Track Search Aggregation for hearthis.at
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/phonographus

package models

import (
	"time"
)

// APIResponse represents a standardized API response wrapper used by all HTTP endpoints.
// It provides consistent structure for both successful and error responses, with metadata
// for observability and caching information.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"query": "wakhra swag", "total": 42, "cached": false, "results": [...]},
//	  "metadata": {
//	    "timestamp": "2026-02-11T12:00:00Z",
//	    "query_time_ms": 1450
//	  }
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "VALIDATION_ERROR",
//	    "message": "q must be at most 200 characters",
//	    "details": {"field": "q"}
//	  },
//	  "metadata": {"timestamp": "2026-02-11T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability and performance tracking.
//
// Fields:
//   - Timestamp: Server time when the response was generated (RFC3339)
//   - QueryTimeMS: Aggregation run duration in milliseconds (0 when served
//     from cache — cache hits never touch the upstream catalog)
//   - Cached: Whether the result set came from the cache (omitted if false)
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Common error codes:
//   - VALIDATION_ERROR: Invalid input parameters
//   - UPSTREAM_ERROR: Catalog service unavailable (rare; fetch failures
//     normally degrade to smaller result sets instead)
//   - RATE_LIMIT_EXCEEDED: Too many requests
//   - NOT_FOUND: Route doesn't exist
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// SearchData is the Data payload for the search endpoint.
//
// Results are ordered by (score descending, play count descending) and capped
// at the configured maximum (150 by default). Query echoes the normalized
// form actually used for matching and caching, which may differ from the raw
// q parameter (trimmed, lower-cased).
type SearchData struct {
	Query   string        `json:"query"`
	Total   int           `json:"total"`
	Cached  bool          `json:"cached"`
	Results []ScoredTrack `json:"results"`
}
