package journal

import (
	"context"
	"sort"
)

// Record is one durable subscription: a subscriber registered under a
// pattern in its text form. Patterns are re-parsed on replay, so a journal
// must be replayed with the syntax it was written with.
type Record struct {
	Pattern    string
	Subscriber string
	CreatedAt  int64 // Unix nanoseconds of the first Put
}

// Store defines the interface for persisting subscriptions
// Implementations use SQLite or a KVStore
type Store interface {
	// Put stores a subscription; storing an existing pair is a no-op
	Put(ctx context.Context, rec *Record) error

	// Get retrieves one subscription
	// Returns nil if it doesn't exist
	Get(ctx context.Context, pattern, subscriber string) (*Record, error)

	// Delete removes one subscription
	Delete(ctx context.Context, pattern, subscriber string) error

	// DeletePattern removes every subscription under pattern
	DeletePattern(ctx context.Context, pattern string) error

	// List returns all subscriptions in replay order
	List(ctx context.Context) ([]*Record, error)

	// Close releases any resources
	Close() error
}

// SortRecords orders records by CreatedAt, then Pattern, then Subscriber,
// which is the order List implementations must return.
func SortRecords(recs []*Record) {
	sort.Slice(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.CreatedAt != b.CreatedAt {
			return a.CreatedAt < b.CreatedAt
		}
		if a.Pattern != b.Pattern {
			return a.Pattern < b.Pattern
		}
		return a.Subscriber < b.Subscriber
	})
}
