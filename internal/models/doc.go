// Phonographus - Track Search Aggregation for hearthis.at
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/phonographus

/*
Package models defines data structures for the Phonographus application.

This package contains the track records returned by the hearthis.at catalog
API, the scored result types produced by the aggregation engine, and the
standardized API response envelopes served over HTTP. It is the single source
of truth for data structure definitions.

Key Components:

  - Track: A catalog track record with tolerant JSON decoding. The remote
    API is inconsistent about scalar types (ids and play counts arrive as
    either JSON strings or numbers), so the fields use flexible types that
    never fail decoding.
  - ScoredTrack: A Track annotated with the relevance score assigned during
    an aggregation run.
  - APIResponse / Metadata / APIError: Standard response wrapper shared by
    all HTTP endpoints.

Tolerance rules for upstream data:

  - Missing fields default to empty strings or zero values.
  - Scalars of the wrong JSON type are coerced when possible and zeroed
    otherwise; decoding a Track never returns an error for scalar-type
    mismatches.
  - A track without an identity cannot be deduplicated safely and is
    discarded by the engine, not by this package.
*/
package models
