package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value      V
	insertedAt time.Time
}

// TTLCache is a concurrency-safe map whose entries expire a fixed
// duration after insertion. Expiry counts from insert time, never from
// last access, and expired entries are removed lazily when observed.
// Prune sweeps the remainder so the map does not grow without bound.
type TTLCache[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]entry[V]
	ttl     time.Duration
	now     func() time.Time
}

// New creates a TTL cache using the wall clock
func New[K comparable, V any](ttl time.Duration) *TTLCache[K, V] {
	return NewWithClock[K, V](ttl, time.Now)
}

// NewWithClock creates a TTL cache with an injected clock
func NewWithClock[K comparable, V any](ttl time.Duration, now func() time.Time) *TTLCache[K, V] {
	return &TTLCache[K, V]{
		entries: make(map[K]entry[V]),
		ttl:     ttl,
		now:     now,
	}
}

// Get returns the cached value when present and still fresh. An expired
// entry is deleted and reported as a miss.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	var zero V

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return zero, false
	}

	if c.now().Sub(e.insertedAt) < c.ttl {
		return e.value, true
	}

	c.mu.Lock()
	// re-check: the entry may have been replaced since the read lock
	if cur, ok := c.entries[key]; ok && c.now().Sub(cur.insertedAt) >= c.ttl {
		delete(c.entries, key)
	}
	c.mu.Unlock()

	return zero, false
}

// Set stores a value, restarting its TTL from now
func (c *TTLCache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	c.entries[key] = entry[V]{value: value, insertedAt: c.now()}
	c.mu.Unlock()
}

// Prune removes all expired entries and returns how many were removed
func (c *TTLCache[K, V]) Prune() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, e := range c.entries {
		if now.Sub(e.insertedAt) >= c.ttl {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries, expired ones included
func (c *TTLCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns the total entry count and how many are still fresh
func (c *TTLCache[K, V]) Stats() (total int, fresh int) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := c.now()
	total = len(c.entries)
	for _, e := range c.entries {
		if now.Sub(e.insertedAt) < c.ttl {
			fresh++
		}
	}
	return total, fresh
}

// Clear drops all entries
func (c *TTLCache[K, V]) Clear() {
	c.mu.Lock()
	c.entries = make(map[K]entry[V])
	c.mu.Unlock()
}
