// PopQuiz - Group Movie and Music Taste Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/popquiz

package cache

import (
	"sync"
	"time"
)

// DefaultCleanupInterval is how often expired entries are swept.
const DefaultCleanupInterval = time.Minute

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Stats is a point-in-time view of cache activity.
type Stats struct {
	Hits        int64     `json:"hits"`
	Misses      int64     `json:"misses"`
	Evictions   int64     `json:"evictions"`
	Keys        int       `json:"keys"`
	LastCleanup time.Time `json:"last_cleanup"`
}

// TTL is a thread-safe map whose entries expire after a fixed duration.
type TTL[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]entry[V]
	ttl     time.Duration
	now     func() time.Time

	hits        int64
	misses      int64
	evictions   int64
	lastCleanup time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// New creates a cache with the given entry lifetime and starts the
// background sweep. Callers must Close it when done.
func New[K comparable, V any](ttl time.Duration) *TTL[K, V] {
	return newTTL[K, V](ttl, DefaultCleanupInterval, time.Now)
}

func newTTL[K comparable, V any](ttl, interval time.Duration, now func() time.Time) *TTL[K, V] {
	c := &TTL[K, V]{
		entries: make(map[K]entry[V]),
		ttl:     ttl,
		now:     now,
		stop:    make(chan struct{}),
	}
	if interval > 0 {
		go c.cleanupLoop(interval)
	}
	return c
}

// Get returns the value for key if present and not expired.
func (c *TTL[K, V]) Get(key K) (V, bool) {
	now := c.now()

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && now.Before(e.expiresAt) {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
		return e.value, true
	}

	c.mu.Lock()
	c.misses++
	// re-check under the write lock; a concurrent Set may have refreshed it
	if e, still := c.entries[key]; still && !now.Before(e.expiresAt) {
		delete(c.entries, key)
		c.evictions++
	}
	c.mu.Unlock()

	var zero V
	return zero, false
}

// Set stores value under key with the cache's default lifetime.
func (c *TTL[K, V]) Set(key K, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores value under key with a custom lifetime.
func (c *TTL[K, V]) SetWithTTL(key K, value V, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry[V]{value: value, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
}

// Delete removes key. Deleting a missing key is a no-op.
func (c *TTL[K, V]) Delete(key K) {
	c.mu.Lock()
	if _, ok := c.entries[key]; ok {
		delete(c.entries, key)
		c.evictions++
	}
	c.mu.Unlock()
}

// Clear removes every entry.
func (c *TTL[K, V]) Clear() {
	c.mu.Lock()
	c.evictions += int64(len(c.entries))
	c.entries = make(map[K]entry[V])
	c.mu.Unlock()
}

// Len returns the number of stored entries, expired or not.
func (c *TTL[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns current counters.
func (c *TTL[K, V]) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Stats{
		Hits:        c.hits,
		Misses:      c.misses,
		Evictions:   c.evictions,
		Keys:        len(c.entries),
		LastCleanup: c.lastCleanup,
	}
}

// HitRate returns the hit percentage (0-100).
func (c *TTL[K, V]) HitRate() float64 {
	s := c.Stats()
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// Close stops the background sweep. It is safe to call more than once.
func (c *TTL[K, V]) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *TTL[K, V]) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

func (c *TTL[K, V]) cleanup() {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
			c.evictions++
		}
	}
	c.lastCleanup = now
}
