// Phonographus - Track Search Aggregation for hearthis.at
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/phonographus

package search

import (
	"strings"
	"unicode/utf8"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/tomtom215/phonographus/internal/models"
)

// Score tiers. An exact title hit beats a reordered full match, which
// beats anything the fuzzy fallback can produce.
const (
	// ScoreExact is awarded when the query appears verbatim in the title.
	ScoreExact = 100

	// ScoreAllWords is awarded when every word of a multi-word query
	// appears somewhere in the title or uploader name, in any order
	// ("wakhra swag" still matches "Swag Wakhra").
	ScoreAllWords = 95

	// DownloadBonus is added to fuzzy scores for directly downloadable
	// tracks. The two tiers above are returned as-is; a reordered full
	// match already outranks every boosted fuzzy score.
	DownloadBonus = 5
)

// Scorer computes relevance scores for tracks against a normalized
// query and decides which scores clear the relevance floor.
//
// Scoring is pure and deterministic: the same query and track always
// produce the same score, so it can run concurrently on fan-out workers
// without coordination.
type Scorer struct {
	floor int
}

// NewScorer creates a Scorer with the given relevance floor. Tracks
// scoring at or below the floor are treated as junk.
func NewScorer(floor int) *Scorer {
	return &Scorer{floor: floor}
}

// Score computes the relevance of track for query.
//
// query must already be normalized (see Normalize). Matching is tiered:
//
//  1. query appearing verbatim in the lowercased title scores ScoreExact
//  2. a multi-word query with every word present in title or uploader
//     scores ScoreAllWords
//  3. otherwise the token-set ratio of query against "title uploader"
//     is used, plus DownloadBonus when the track is downloadable
//
// The fuzzy tier can reach ScoreExact + DownloadBonus when one side's
// token set contains the other's, so scores range 0 to 105.
func (s *Scorer) Score(query string, track *models.Track) int {
	title := strings.ToLower(track.Title)
	owner := strings.ToLower(track.Owner())
	combined := title + " " + owner

	if strings.Contains(title, query) {
		return ScoreExact
	}

	parts := strings.Fields(query)
	if len(parts) > 1 && containsAll(combined, parts) {
		return ScoreAllWords
	}

	score := fuzzy.TokenSetRatio(query, combined)
	if track.Downloadable() {
		score += DownloadBonus
	}
	return score
}

// Relevant reports whether score clears the relevance floor. The floor
// is exclusive: a score exactly at the floor is junk.
func (s *Scorer) Relevant(score int) bool {
	return score > s.floor
}

// Floor returns the configured relevance floor.
func (s *Scorer) Floor() int {
	return s.floor
}

// containsAll reports whether every part occurs as a substring of text.
func containsAll(text string, parts []string) bool {
	for _, part := range parts {
		if !strings.Contains(text, part) {
			return false
		}
	}
	return true
}

// Normalize canonicalizes a raw query: surrounding whitespace is
// trimmed and the remainder lowercased. Queries differing only in case
// or padding share one cache entry and one score.
func Normalize(rawQuery string) string {
	return strings.ToLower(strings.TrimSpace(rawQuery))
}

// QueryLength returns the length of a normalized query in characters
// (not bytes), which is what the minimum-length gate counts.
func QueryLength(query string) int {
	return utf8.RuneCountInString(query)
}
