// Phonographus - Track Search Aggregation for hearthis.at
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/phonographus

package models

import (
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// FlexString is a string that tolerates JSON numbers.
//
// The hearthis.at API serves some identifier fields as JSON strings and
// others as bare numbers depending on the endpoint (and occasionally on the
// record). FlexString accepts both: numbers keep their literal decimal form
// ("312486" for 312486), null and malformed values decode to "".
// Decoding never returns an error.
type FlexString string

// UnmarshalJSON implements tolerant decoding for string-or-number fields.
func (s *FlexString) UnmarshalJSON(data []byte) error {
	*s = ""
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return nil
		}
		*s = FlexString(v)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		// Arrays, objects and booleans are not identifiers; zero them.
		return nil
	}
	*s = FlexString(n.String())
	return nil
}

// String returns the underlying string value.
func (s FlexString) String() string {
	return string(s)
}

// FlexInt is an integer that tolerates JSON strings and fractional numbers.
//
// Play counts arrive from the catalog as quoted decimal strings ("1016"),
// bare integers, or occasionally floats. Unparsable or missing values decode
// to 0 rather than failing, per the pipeline's defaulting rules. Decoding
// never returns an error.
type FlexInt int64

// UnmarshalJSON implements tolerant decoding for numeric fields.
func (n *FlexInt) UnmarshalJSON(data []byte) error {
	*n = 0
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return nil
		}
		raw = strings.TrimSpace(v)
	}
	if raw == "" {
		return nil
	}

	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*n = FlexInt(i)
		return nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		*n = FlexInt(int64(f))
		return nil
	}
	return nil
}

// Int returns the underlying value as an int.
func (n FlexInt) Int() int {
	return int(n)
}

// TrackUser is the owning-artist block nested inside a catalog track record.
type TrackUser struct {
	ID       FlexString `json:"id,omitempty"`
	Username string     `json:"username"`
}

// Track represents a single track record from the hearthis.at catalog API.
//
// Only the fields the aggregation pipeline consumes are decoded; anything
// else in the upstream payload is ignored. All scalar fields tolerate
// missing values and wrong JSON types (see FlexString and FlexInt).
//
// Field semantics:
//   - ID: catalog identity, used for deduplication. Empty means the record
//     cannot be deduplicated and will be dropped by the engine.
//   - Title: display title, scoring input.
//   - User.Username: owning artist name, scoring input.
//   - DownloadURL: non-empty means the track is directly downloadable, which
//     earns a small relevance bonus on fuzzy matches.
//   - PlaybackCount: popularity, the ranking tie-breaker.
type Track struct {
	ID            FlexString `json:"id"`
	Title         string     `json:"title"`
	User          TrackUser  `json:"user"`
	DownloadURL   string     `json:"download_url,omitempty"`
	PlaybackCount FlexInt    `json:"playback_count"`
	Permalink     string     `json:"permalink_url,omitempty"`
	ArtworkURL    string     `json:"artwork_url,omitempty"`
	Duration      FlexInt    `json:"duration,omitempty"`
	Genre         string     `json:"genre,omitempty"`
}

// Identity returns the deduplication key for the track, empty if absent.
func (t Track) Identity() string {
	return string(t.ID)
}

// Owner returns the owning artist's username, empty if absent.
func (t Track) Owner() string {
	return t.User.Username
}

// Downloadable reports whether the track exposes a direct download.
func (t Track) Downloadable() bool {
	return t.DownloadURL != ""
}

// Plays returns the popularity counter with a 0 default for missing or
// unparsable upstream values.
func (t Track) Plays() int {
	return t.PlaybackCount.Int()
}

// ScoredTrack is a Track annotated with the relevance score computed during
// a single aggregation run. The score is attached exactly once per run and
// is stable for the lifetime of that run's ResultSet.
type ScoredTrack struct {
	Track
	Score int `json:"score"`
}
