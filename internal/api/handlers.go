// Phonographus - Track Search Aggregation for hearthis.at
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/phonographus

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/phonographus/internal/cache"
	"github.com/tomtom215/phonographus/internal/config"
	"github.com/tomtom215/phonographus/internal/logging"
	"github.com/tomtom215/phonographus/internal/models"
	"github.com/tomtom215/phonographus/internal/search"
)

// maxQueryLength bounds the raw q parameter. Fuzzy scoring cost grows with
// query size and nothing legitimate needs more than this.
const maxQueryLength = 200

// Searcher is the engine surface the handlers need. *search.Engine satisfies
// it; tests substitute a stub.
type Searcher interface {
	Search(ctx context.Context, query string) search.RunResult
	CacheStats() cache.Stats
}

// Handler carries the dependencies of all HTTP handlers.
type Handler struct {
	engine    Searcher
	cfg       *config.Config
	startTime time.Time
}

// NewHandler creates the API handler.
//
// Example:
//
//	handler := api.NewHandler(engine, cfg)
//	router := api.NewRouter(handler, api.NewChiMiddleware(&cfg.Security))
//	http.ListenAndServe(cfg.Server.Addr(), router.Setup())
func NewHandler(engine Searcher, cfg *config.Config) *Handler {
	return &Handler{
		engine:    engine,
		cfg:       cfg,
		startTime: time.Now(),
	}
}

// searchQueryRequest holds the validated query parameters of the search route.
type searchQueryRequest struct {
	Query string `validate:"max=200"`
}

// Search handles GET /api/v1/search?q=<text>.
//
// Short and empty queries are a success with zero results, not an error.
// Upstream failures never surface here either: the engine degrades to
// whatever results the surviving fetches produced.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	rawQuery := r.URL.Query().Get("q")

	req := searchQueryRequest{Query: rawQuery}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	start := time.Now()
	result := h.engine.Search(r.Context(), rawQuery)
	elapsed := time.Since(start)

	// Cache hits report zero query time: nothing upstream was touched.
	var queryTimeMS int64
	if !result.Cached {
		queryTimeMS = elapsed.Milliseconds()
	}

	logging.Ctx(r.Context()).Debug().
		Str("query", sanitizeLogValue(result.Query)).
		Int("results", len(result.Results)).
		Bool("cached", result.Cached).
		Dur("duration", elapsed).
		Msg("Search request served")

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.SearchData{
			Query:   result.Query,
			Total:   len(result.Results),
			Cached:  result.Cached,
			Results: result.Results,
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: queryTimeMS,
			Cached:      result.Cached,
		},
	})
}
