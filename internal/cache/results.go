// Phonographus - Track Search Aggregation for hearthis.at
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/phonographus

package cache

import (
	"sync"
	"time"

	"github.com/tomtom215/phonographus/internal/models"
)

// entry is a node in the doubly-linked recency list.
type entry struct {
	key       string
	results   []models.ScoredTrack
	prev      *entry
	next      *entry
	expiresAt time.Time
}

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
}

// ResultCache is a thread-safe LRU cache mapping normalized queries to
// their finished result slices. Each entry carries an absolute expiry
// deadline; expired entries are treated as absent and removed on access.
//
// The cached slice is returned as-is, without copying. Callers must not
// mutate slices they put into or get out of the cache.
//
// Thread Safety: all methods are safe for concurrent use.
//
// Example:
//
//	c := cache.NewResultCache(3000, 30*time.Minute)
//	c.Add("daft punk", results)
//	if cached, ok := c.Get("daft punk"); ok {
//	    return cached
//	}
type ResultCache struct {
	mu        sync.Mutex
	capacity  int
	ttl       time.Duration
	items     map[string]*entry
	head      *entry // sentinel: most recently used side
	tail      *entry // sentinel: least recently used side
	hits      int64
	misses    int64
	evictions int64
}

// NewResultCache creates a ResultCache holding at most capacity entries,
// each valid for ttl after insertion. A capacity below one is raised to
// one; a non-positive ttl means entries never expire.
func NewResultCache(capacity int, ttl time.Duration) *ResultCache {
	if capacity < 1 {
		capacity = 1
	}

	// Sentinel head/tail avoid nil checks in list manipulation.
	head := &entry{}
	tail := &entry{}
	head.next = tail
	tail.prev = head

	return &ResultCache{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*entry, capacity),
		head:     head,
		tail:     tail,
	}
}

// Get returns the cached results for key and marks the entry as most
// recently used. An expired entry is removed and reported as a miss.
func (c *ResultCache) Get(key string) ([]models.ScoredTrack, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		c.misses++
		return nil, false
	}

	if c.expired(e, time.Now()) {
		c.removeEntry(e)
		c.misses++
		return nil, false
	}

	c.moveToFront(e)
	c.hits++
	return e.results, true
}

// Add stores results under key with a fresh TTL, replacing any existing
// entry. When the cache is over capacity the least recently used entries
// are evicted.
func (c *ResultCache) Add(key string, results []models.ScoredTrack) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()

	if e, ok := c.items[key]; ok {
		e.results = results
		e.expiresAt = c.deadline(now)
		c.moveToFront(e)
		return
	}

	e := &entry{
		key:       key,
		results:   results,
		expiresAt: c.deadline(now),
	}
	c.items[key] = e
	c.addToFront(e)

	for len(c.items) > c.capacity {
		c.evictOldest()
	}
}

// Remove deletes key from the cache. It reports whether an entry was
// present.
func (c *ResultCache) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		return false
	}
	c.removeEntry(e)
	return true
}

// Len returns the number of entries currently stored, including entries
// that have expired but not yet been removed.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Clear removes all entries and resets the recency list. Counters are
// preserved.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*entry, c.capacity)
	c.head.next = c.tail
	c.tail.prev = c.head
}

// CleanupExpired removes all expired entries and returns how many were
// removed. Intended to be called periodically so entries that are never
// read again do not occupy capacity until evicted.
func (c *ResultCache) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0

	// Walk from the least recently used side; expired entries cluster
	// there but refreshed TTLs mean the walk must cover the whole list.
	e := c.tail.prev
	for e != c.head {
		prev := e.prev
		if c.expired(e, now) {
			c.removeEntry(e)
			removed++
		}
		e = prev
	}

	return removed
}

// Stats returns a snapshot of hit, miss and eviction counters along with
// the current entry count.
func (c *ResultCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Size:      len(c.items),
	}
}

// expired reports whether e is past its deadline. A zero deadline means
// the entry never expires.
func (c *ResultCache) expired(e *entry, now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// deadline computes the expiry for an entry inserted at now.
func (c *ResultCache) deadline(now time.Time) time.Time {
	if c.ttl <= 0 {
		return time.Time{}
	}
	return now.Add(c.ttl)
}

// addToFront links e directly after the head sentinel. Caller must hold mu.
func (c *ResultCache) addToFront(e *entry) {
	e.prev = c.head
	e.next = c.head.next
	c.head.next.prev = e
	c.head.next = e
}

// moveToFront relinks an existing entry to the most recently used
// position. Caller must hold mu.
func (c *ResultCache) moveToFront(e *entry) {
	e.prev.next = e.next
	e.next.prev = e.prev
	c.addToFront(e)
}

// removeEntry unlinks e and deletes it from the index. Caller must hold mu.
func (c *ResultCache) removeEntry(e *entry) {
	e.prev.next = e.next
	e.next.prev = e.prev
	e.prev = nil
	e.next = nil
	delete(c.items, e.key)
}

// evictOldest removes the least recently used entry. Caller must hold mu.
func (c *ResultCache) evictOldest() {
	oldest := c.tail.prev
	if oldest == c.head {
		return
	}
	c.removeEntry(oldest)
	c.evictions++
}
