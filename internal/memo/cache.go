// Package memo caches analysis results at the call boundary. The engine
// itself never caches; entries are keyed by the rule version so a reload
// never serves results computed from older tables.
package memo

import (
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Cache is a thread-safe LRU cache keyed by 64-bit hashes.
type Cache[V any] struct {
	mu      sync.Mutex
	maxSize int
	entries map[uint64]V
	order   []uint64 // oldest first

	hits, misses int
}

// NewCache creates a cache with the given maximum number of entries.
// If maxSize <= 0, the cache stores nothing.
func NewCache[V any](maxSize int) *Cache[V] {
	return &Cache[V]{
		maxSize: maxSize,
		entries: make(map[uint64]V),
	}
}

// Get retrieves a value from the cache.
func (c *Cache[V]) Get(key uint64) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.entries[key]
	if !ok {
		c.misses++
		return v, false
	}
	c.hits++

	// Move to end (most recently used)
	c.moveToEnd(key)
	return v, true
}

// Put adds a value to the cache, evicting the oldest if full.
func (c *Cache[V]) Put(key uint64, v V) {
	if c.maxSize <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		c.entries[key] = v
		c.moveToEnd(key)
		return
	}

	// Evict oldest if at capacity
	for len(c.entries) >= c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = v
	c.order = append(c.order, key)
}

// Len returns the number of cached entries.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns the hit and miss counts.
func (c *Cache[V]) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

func (c *Cache[V]) moveToEnd(key uint64) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, key)
			return
		}
	}
}

// Key hashes the printed form of parts. Parts are separated so that
// ("ab", "c") and ("a", "bc") differ.
func Key(parts ...any) uint64 {
	d := xxhash.New()
	for _, p := range parts {
		fmt.Fprintf(d, "%v", p)
		d.Write([]byte{0})
	}
	return d.Sum64()
}
