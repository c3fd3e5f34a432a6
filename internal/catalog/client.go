// Phonographus - Track Search Aggregation for hearthis.at
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/phonographus

package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/phonographus/internal/config"
	"github.com/tomtom215/phonographus/internal/models"
)

// maxErrorBodySize limits how much of an error response body is read
// for diagnostics, preventing unbounded allocation on large responses.
const maxErrorBodySize = 64 * 1024 // 64KB

// maxResponseBodySize caps track listing responses. A full artist feed
// of 100 tracks with artwork URLs stays well under this.
const maxResponseBodySize = 8 * 1024 * 1024 // 8MB

// ClientInterface defines the hearthis.at API operations used by the
// search engine.
//
// It is implemented by Client for direct access and by BreakerClient
// for circuit-breaker-protected access. Both are safe for concurrent
// use; a single instance is shared by all fan-out workers.
type ClientInterface interface {
	// SearchTracks fetches one page of the broad track search.
	SearchTracks(ctx context.Context, query string, page int) ([]models.Track, error)

	// ArtistTracks fetches an uploader's track feed.
	ArtistTracks(ctx context.Context, artist string) ([]models.Track, error)
}

// Client handles communication with the hearthis.at HTTP API.
//
// Features:
//   - Per-call timeout covering connect through body read
//   - Shared token-bucket rate limiting across all callers
//   - Rotating browser User-Agent pool
//   - Tolerant JSON decoding (array or object-of-records responses)
//
// Thread Safety: safe for concurrent use. Each request creates its own
// HTTP request; the rate limiter and User-Agent pool are shared.
//
// Example:
//
//	client := catalog.NewClient(&cfg.Catalog)
//	tracks, err := client.SearchTracks(ctx, "wakhra swag", 1)
type Client struct {
	baseURL      string
	client       *http.Client
	limiter      *rate.Limiter
	userAgents   []string
	fetchTimeout time.Duration
	pageCount    int
	artistCount  int
}

// NewClient creates a hearthis.at API client from catalog configuration.
func NewClient(cfg *config.CatalogConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client: &http.Client{
			Timeout: cfg.FetchTimeout,
		},
		limiter:      rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		userAgents:   cfg.UserAgents,
		fetchTimeout: cfg.FetchTimeout,
		pageCount:    cfg.PageCount,
		artistCount:  cfg.ArtistCount,
	}
}

// SearchTracks fetches one page of the broad track search endpoint.
//
// The endpoint is GET {base}/search?q={query}&type=tracks&page={page}&count={n}.
// Most responses are JSON arrays, but some return an object keyed by
// record number; both shapes are accepted and non-track records are
// skipped.
func (c *Client) SearchTracks(ctx context.Context, query string, page int) ([]models.Track, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "tracks")
	params.Set("page", strconv.Itoa(page))
	params.Set("count", strconv.Itoa(c.pageCount))

	reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("search page %d: %w", page, err)
	}

	tracks, err := decodeTrackList(body)
	if err != nil {
		return nil, fmt.Errorf("search page %d: %w", page, err)
	}
	return tracks, nil
}

// ArtistTracks fetches an uploader's track feed.
//
// The endpoint is GET {base}/{artist}/?type=tracks&count={n}. Unlike
// broad search, only the array response shape is valid here; anything
// else (including the API's "user not found" object) is an error.
func (c *Client) ArtistTracks(ctx context.Context, artist string) ([]models.Track, error) {
	params := url.Values{}
	params.Set("type", "tracks")
	params.Set("count", strconv.Itoa(c.artistCount))

	reqURL := fmt.Sprintf("%s/%s/?%s", c.baseURL, url.PathEscape(artist), params.Encode())

	body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("artist %s: %w", artist, err)
	}

	tracks, err := decodeTrackArray(body)
	if err != nil {
		return nil, fmt.Errorf("artist %s: %w", artist, err)
	}
	return tracks, nil
}

// get performs a rate-limited GET with the per-call timeout and a
// rotated User-Agent, returning the response body on HTTP 200.
func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.randomUserAgent())
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body := readBodyForError(resp.Body)
		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// randomUserAgent picks a User-Agent from the pool. Sustained fan-out
// traffic under a single synthetic agent gets throttled upstream.
func (c *Client) randomUserAgent() string {
	//nolint:gosec // G404: math/rand is fine for header rotation, not security
	return c.userAgents[rand.Intn(len(c.userAgents))]
}

// decodeTrackList parses a broad search response. The endpoint returns
// either a JSON array of track objects or an object keyed by record
// number whose values are track objects mixed with scalar counters.
// Non-object values are skipped.
func decodeTrackList(data []byte) ([]models.Track, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty response body")
	}

	switch data[0] {
	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse track array: %w", err)
		}
		return decodeTrackItems(raw), nil
	case '{':
		var rawMap map[string]json.RawMessage
		if err := json.Unmarshal(data, &rawMap); err != nil {
			return nil, fmt.Errorf("failed to parse track object: %w", err)
		}
		raw := make([]json.RawMessage, 0, len(rawMap))
		for _, v := range rawMap {
			raw = append(raw, v)
		}
		return decodeTrackItems(raw), nil
	default:
		return nil, fmt.Errorf("unexpected response shape: %s", truncateForError(data))
	}
}

// decodeTrackArray parses an artist feed response, which must be a JSON
// array of track objects.
func decodeTrackArray(data []byte) ([]models.Track, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty response body")
	}
	if data[0] != '[' {
		return nil, fmt.Errorf("feed is not an array: %s", truncateForError(data))
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse track array: %w", err)
	}
	return decodeTrackItems(raw), nil
}

// decodeTrackItems decodes individual records, skipping any that are
// not track objects.
func decodeTrackItems(raw []json.RawMessage) []models.Track {
	tracks := make([]models.Track, 0, len(raw))
	for _, item := range raw {
		var t models.Track
		if err := json.Unmarshal(item, &t); err != nil {
			continue
		}
		tracks = append(tracks, t)
	}
	return tracks
}

// readBodyForError reads a response body for error reporting, capped at
// maxErrorBodySize. Returns a placeholder if reading fails.
func readBodyForError(r io.Reader) []byte {
	limitedReader := io.LimitReader(r, maxErrorBodySize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// truncateForError shortens a payload fragment for inclusion in errors.
func truncateForError(data []byte) string {
	const max = 120
	if len(data) > max {
		return string(data[:max]) + "..."
	}
	return string(data)
}
