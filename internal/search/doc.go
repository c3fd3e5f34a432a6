// Phonographus - Track Search Aggregation for hearthis.at
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/phonographus

// Package search implements the fan-out aggregation engine for track
// queries against hearthis.at.
//
// A single search run fans out into a fixed batch of upstream calls
// through a bounded worker pool: several pages of the broad search
// endpoint plus the track feeds of a prefix of the known-uploader
// roster. Every fetched track is scored for relevance against the
// query, low scorers are discarded, duplicates across sources are
// collapsed by track identity, and the survivors are ranked by score
// and play count. Finished result lists are cached by normalized query
// so repeated searches skip the fan-out entirely.
//
// Failed upstream calls contribute an empty list instead of failing
// the run; a search degrades gracefully down to zero results when
// hearthis.at is unreachable.
package search
