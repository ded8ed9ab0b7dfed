package memory

import (
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/shruggr/subjecttrie/cache"
)

type entry[V any] struct {
	keys   []string
	values []V
}

// Cache is an in-memory LRU cache of match results
type Cache[V any] struct {
	lru *lru.Cache[string, entry[V]]
}

// New creates a new in-memory LRU cache with the specified size
func New[V any](size int) (*Cache[V], error) {
	l, err := lru.New[string, entry[V]](size)
	if err != nil {
		return nil, err
	}

	return &Cache[V]{
		lru: l,
	}, nil
}

// Get retrieves a copy of the cached result for keys
func (c *Cache[V]) Get(keys []string) ([]V, bool) {
	e, ok := c.lru.Get(cache.Key(keys))
	if !ok {
		return nil, false
	}
	return slices.Clone(e.values), true
}

// Put stores a copy of values under keys, evicting the least recently used
// entry when full
func (c *Cache[V]) Put(keys []string, values []V) {
	c.lru.Add(cache.Key(keys), entry[V]{
		keys:   slices.Clone(keys),
		values: slices.Clone(values),
	})
}

// Invalidate removes every entry whose keys satisfy match.
// Entries are inspected with Peek so surviving entries keep their recency.
func (c *Cache[V]) Invalidate(match func(keys []string) bool) int {
	removed := 0
	for _, k := range c.lru.Keys() {
		e, ok := c.lru.Peek(k)
		if !ok || !match(e.keys) {
			continue
		}
		if c.lru.Remove(k) {
			removed++
		}
	}
	return removed
}

// Len returns the number of cached entries
func (c *Cache[V]) Len() int {
	return c.lru.Len()
}

// Purge removes all cached entries
func (c *Cache[V]) Purge() {
	c.lru.Purge()
}
