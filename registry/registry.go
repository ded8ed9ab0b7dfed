// Package registry keeps a trie of subscriptions in step with a durable
// journal so that subscriptions survive restarts.
package registry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shruggr/subjecttrie/journal"
	"github.com/shruggr/subjecttrie/trie"
)

// Registry maps subject patterns to subscriber ids
type Registry struct {
	trie   *trie.SyncTrie[string]
	store  journal.Store
	logger *slog.Logger
	now    func() time.Time
}

// New creates a registry over t and store. A nil logger means slog.Default.
func New(t *trie.SyncTrie[string], store journal.Store, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		trie:   t,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Restore replays the journal into the trie and returns the number of
// subscriptions loaded. Records whose pattern no longer parses are skipped.
func (r *Registry) Restore(ctx context.Context) (int, error) {
	recs, err := r.store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list journal: %w", err)
	}

	loaded := 0
	for _, rec := range recs {
		if err := ctx.Err(); err != nil {
			return loaded, err
		}
		seq, err := r.trie.Parser().Parse(rec.Pattern)
		if err != nil {
			r.logger.Warn("Skipping unparsable subscription",
				"pattern", rec.Pattern,
				"subscriber", rec.Subscriber,
				"error", err)
			continue
		}
		r.trie.InsertTokens(seq, rec.Subscriber)
		loaded++
	}

	r.logger.Info("Restored subscriptions", "count", loaded, "records", len(recs))
	return loaded, nil
}

// Subscribe registers subscriber under pattern. It reports whether the
// subscription is new.
func (r *Registry) Subscribe(ctx context.Context, pattern, subscriber string) (bool, error) {
	seq, err := r.trie.Parser().Parse(pattern)
	if err != nil {
		return false, err
	}

	err = r.store.Put(ctx, &journal.Record{
		Pattern:    pattern,
		Subscriber: subscriber,
		CreatedAt:  r.now().UnixNano(),
	})
	if err != nil {
		return false, fmt.Errorf("failed to persist subscription: %w", err)
	}

	added := r.trie.InsertTokens(seq, subscriber)
	r.logger.Debug("Subscribe", "pattern", pattern, "subscriber", subscriber, "added", added)
	return added, nil
}

// Unsubscribe removes subscriber from exactly pattern. It reports whether
// the subscription existed.
func (r *Registry) Unsubscribe(ctx context.Context, pattern, subscriber string) (bool, error) {
	seq, err := r.trie.Parser().Parse(pattern)
	if err != nil {
		return false, err
	}

	if err := r.store.Delete(ctx, pattern, subscriber); err != nil {
		return false, fmt.Errorf("failed to delete subscription: %w", err)
	}

	removed := r.trie.RemoveTokens(seq, subscriber)
	r.logger.Debug("Unsubscribe", "pattern", pattern, "subscriber", subscriber, "removed", removed)
	return removed, nil
}

// UnsubscribeAll removes every subscriber of exactly pattern.
func (r *Registry) UnsubscribeAll(ctx context.Context, pattern string) (bool, error) {
	seq, err := r.trie.Parser().Parse(pattern)
	if err != nil {
		return false, err
	}

	if err := r.store.DeletePattern(ctx, pattern); err != nil {
		return false, fmt.Errorf("failed to delete pattern: %w", err)
	}

	removed := r.trie.RemoveAllTokens(seq)
	r.logger.Debug("UnsubscribeAll", "pattern", pattern, "removed", removed)
	return removed, nil
}

// Match returns the subscribers whose patterns match subject.
func (r *Registry) Match(subject string) ([]string, error) {
	return r.trie.Find(subject)
}

// Exists reports whether any subscriber matches subject.
func (r *Registry) Exists(subject string) (bool, error) {
	return r.trie.Exist(subject)
}

// Len returns the number of live subscriptions.
func (r *Registry) Len() int {
	return r.trie.Len()
}

// Stats returns the trie's cache counters.
func (r *Registry) Stats() trie.Stats {
	return r.trie.Stats()
}

// Close closes the journal
func (r *Registry) Close() error {
	return r.store.Close()
}
