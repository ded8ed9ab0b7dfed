package noop

// Cache is a ResultCache that stores nothing
// Used when result caching is disabled
type Cache[V any] struct{}

// New creates a new no-op cache
func New[V any]() *Cache[V] {
	return &Cache[V]{}
}

// Get always misses
func (c *Cache[V]) Get(keys []string) ([]V, bool) {
	return nil, false
}

// Put discards the result
func (c *Cache[V]) Put(keys []string, values []V) {}

// Invalidate has nothing to remove
func (c *Cache[V]) Invalidate(match func(keys []string) bool) int {
	return 0
}

// Len is always zero
func (c *Cache[V]) Len() int {
	return 0
}

// Purge does nothing
func (c *Cache[V]) Purge() {}
