// Phonographus - Track Search Aggregation for hearthis.at
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/phonographus

package search

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/tomtom215/phonographus/internal/cache"
	"github.com/tomtom215/phonographus/internal/catalog"
	"github.com/tomtom215/phonographus/internal/config"
	"github.com/tomtom215/phonographus/internal/logging"
	"github.com/tomtom215/phonographus/internal/metrics"
	"github.com/tomtom215/phonographus/internal/models"
)

// RunResult is the outcome of one search run.
type RunResult struct {
	Query   string               // normalized form actually searched
	Results []models.ScoredTrack // scored, deduplicated, ranked, capped
	Cached  bool                 // true when served from the result cache
}

// Engine aggregates track search results from hearthis.at.
//
// One run fans out into cfg.Pages broad search calls plus
// cfg.ArtistFanout artist feed calls, executed on a shared worker pool
// capped at cfg.Workers goroutines. The pool is owned by the engine and
// shared across concurrent runs, so total upstream pressure stays
// bounded no matter how many searches are in flight.
//
// The artist roster is shuffled once at construction; every run queries
// the same roster prefix, spreading coverage across deployments while
// keeping cache behavior stable within one process lifetime.
//
// Thread Safety: safe for concurrent use.
type Engine struct {
	cfg    *config.SearchConfig
	client catalog.ClientInterface
	cache  *cache.ResultCache
	scorer *Scorer
	pool   *ants.Pool
	roster []string
}

// NewEngine creates a search engine with its worker pool and shuffled
// artist roster. Callers must Close the engine to release the pool.
func NewEngine(cfg *config.SearchConfig, client catalog.ClientInterface, resultCache *cache.ResultCache) (*Engine, error) {
	pool, err := ants.NewPool(cfg.Workers)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}

	roster := make([]string, len(cfg.Artists))
	copy(roster, cfg.Artists)
	//nolint:gosec // G404: math/rand is fine for roster rotation, not security
	rand.Shuffle(len(roster), func(i, j int) {
		roster[i], roster[j] = roster[j], roster[i]
	})

	metrics.UpdateWorkerPool(0, cfg.Workers)

	return &Engine{
		cfg:    cfg,
		client: client,
		cache:  resultCache,
		scorer: NewScorer(cfg.ScoreFloor),
		pool:   pool,
		roster: roster,
	}, nil
}

// Close releases the worker pool. The engine must not be used after
// Close.
func (e *Engine) Close() {
	e.pool.Release()
}

// Search runs one aggregation pass for rawQuery and blocks until every
// fan-out call has completed or failed.
//
// The query is normalized first; queries shorter than the configured
// minimum return an empty result without touching the upstream. Cached
// results are returned as-is. Upstream failures never surface as
// errors: each failed call contributes zero tracks and the run yields
// whatever the remaining calls produced.
func (e *Engine) Search(ctx context.Context, rawQuery string) RunResult {
	query := Normalize(rawQuery)

	if QueryLength(query) < e.cfg.MinQueryLength {
		metrics.RecordSearchRun("short_query", 0, 0)
		return RunResult{Query: query, Results: []models.ScoredTrack{}}
	}

	if cached, ok := e.cache.Get(query); ok {
		metrics.RecordCacheHit("search_results")
		metrics.RecordSearchRun("hit", 0, 0)
		return RunResult{Query: query, Results: cached, Cached: true}
	}
	metrics.RecordCacheMiss("search_results")

	start := time.Now()
	results := e.run(ctx, query)
	metrics.RecordSearchRun("miss", time.Since(start), len(results))
	metrics.UpdateCacheSize("search_results", e.cache.Len())

	// A run cut short by caller cancellation saw only a fraction of the
	// upstream; caching that fragment would poison the query for a full
	// TTL. Complete runs are cached even when empty.
	if ctx.Err() == nil {
		e.cache.Add(query, results)
	}

	return RunResult{Query: query, Results: results}
}

// run dispatches the fan-out batch and gathers results in completion
// order.
func (e *Engine) run(parent context.Context, query string) []models.ScoredTrack {
	ctx, cancel := context.WithTimeout(parent, e.cfg.RunTimeout)
	defer cancel()

	prefix := e.roster
	if e.cfg.ArtistFanout < len(prefix) {
		prefix = prefix[:e.cfg.ArtistFanout]
	}

	taskCount := e.cfg.Pages + len(prefix)
	resultCh := make(chan []models.ScoredTrack, taskCount)

	for page := 1; page <= e.cfg.Pages; page++ {
		e.submit(resultCh, func() []models.ScoredTrack {
			return e.broadPage(ctx, query, page)
		})
	}
	for _, artist := range prefix {
		e.submit(resultCh, func() []models.ScoredTrack {
			return e.artistFeed(ctx, query, artist)
		})
	}

	// Identity is claimed only when a track is accepted: a junk-scored
	// record never blocks a better-scored duplicate arriving later from
	// another source.
	seen := make(map[string]struct{}, 128)
	merged := make([]models.ScoredTrack, 0, 128)

	for i := 0; i < taskCount; i++ {
		for _, st := range <-resultCh {
			id := st.Identity()
			if id == "" {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			if !e.scorer.Relevant(st.Score) {
				continue
			}
			seen[id] = struct{}{}
			merged = append(merged, st)
		}
	}

	rankTracks(merged)
	if len(merged) > e.cfg.MaxResults {
		merged = merged[:e.cfg.MaxResults]
	}
	return merged
}

// submit schedules a fan-out task on the pool. Each task sends exactly
// one slice to resultCh; a submission failure sends the empty slice
// itself so the collector's count stays balanced.
func (e *Engine) submit(resultCh chan<- []models.ScoredTrack, task func() []models.ScoredTrack) {
	err := e.pool.Submit(func() {
		metrics.UpdateWorkerPool(e.pool.Running(), e.pool.Cap())
		resultCh <- task()
	})
	if err != nil {
		logging.Error().Err(err).Msg("Failed to submit search task")
		resultCh <- nil
	}
}

// broadPage fetches one broad search page and scores every track.
// Failures contribute an empty list.
func (e *Engine) broadPage(ctx context.Context, query string, page int) []models.ScoredTrack {
	start := time.Now()

	tracks, err := e.client.SearchTracks(ctx, query, page)
	if err != nil {
		metrics.RecordFetch("broad", "error", time.Since(start), 0)
		logging.Debug().Err(err).Int("page", page).Msg("Broad search page failed")
		return nil
	}
	metrics.RecordFetch("broad", fetchOutcome(len(tracks)), time.Since(start), len(tracks))

	scored := make([]models.ScoredTrack, 0, len(tracks))
	for i := range tracks {
		scored = append(scored, models.ScoredTrack{
			Track: tracks[i],
			Score: e.scorer.Score(query, &tracks[i]),
		})
	}
	return scored
}

// artistFeed fetches one uploader's track feed, scores it against the
// query, and pre-filters junk so the collector only sees candidates.
// Failures (including unknown uploaders) contribute an empty list.
func (e *Engine) artistFeed(ctx context.Context, query, artist string) []models.ScoredTrack {
	start := time.Now()

	tracks, err := e.client.ArtistTracks(ctx, artist)
	if err != nil {
		metrics.RecordFetch("artist", "error", time.Since(start), 0)
		logging.Debug().Err(err).Str("artist", artist).Msg("Artist feed failed")
		return nil
	}
	metrics.RecordFetch("artist", fetchOutcome(len(tracks)), time.Since(start), len(tracks))

	scored := make([]models.ScoredTrack, 0, len(tracks))
	for i := range tracks {
		score := e.scorer.Score(query, &tracks[i])
		if !e.scorer.Relevant(score) {
			continue
		}
		scored = append(scored, models.ScoredTrack{
			Track: tracks[i],
			Score: score,
		})
	}
	return scored
}

// fetchOutcome maps an item count to a fetch metric label.
func fetchOutcome(items int) string {
	if items == 0 {
		return "empty"
	}
	return "success"
}

// rankTracks orders tracks by score descending, breaking ties by play
// count descending. The sort is stable so equal tracks keep their
// collection order.
func rankTracks(tracks []models.ScoredTrack) {
	sort.SliceStable(tracks, func(i, j int) bool {
		if tracks[i].Score != tracks[j].Score {
			return tracks[i].Score > tracks[j].Score
		}
		return tracks[i].Plays() > tracks[j].Plays()
	})
}

// Roster returns the engine's shuffled artist roster. The returned
// slice is the engine's own; callers must not mutate it.
func (e *Engine) Roster() []string {
	return e.roster
}

// CacheStats exposes result cache counters for readiness reporting.
func (e *Engine) CacheStats() cache.Stats {
	return e.cache.Stats()
}
