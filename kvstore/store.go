package kvstore

import (
	"context"
)

// KVStore defines a generic key-value store interface
// Keys are variable-length byte slices; callers group related keys under a
// common prefix and read them back with Iterate
type KVStore interface {
	// Put stores a key-value pair
	Put(ctx context.Context, key []byte, value []byte) error

	// Get retrieves a value by key
	// Returns nil if key doesn't exist
	Get(ctx context.Context, key []byte) ([]byte, error)

	// Delete removes a key-value pair
	Delete(ctx context.Context, key []byte) error

	// Iterate calls fn for every key starting with prefix
	// Iteration stops at the first error returned by fn
	Iterate(ctx context.Context, prefix []byte, fn func(key, value []byte) error) error

	// Close releases any resources
	Close() error
}

// GarbageCollector is implemented by stores that need periodic compaction
type GarbageCollector interface {
	// RunGC reclaims space; a store with nothing to reclaim returns nil
	RunGC(discardRatio float64) error
}
