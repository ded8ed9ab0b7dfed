package kv

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shruggr/subjecttrie/journal"
	"github.com/shruggr/subjecttrie/kvstore"
	"github.com/shruggr/subjecttrie/multihash"
)

const keyPrefix = "sub/"

var _ kvstore.GarbageCollector = (*Store)(nil)

// Store is a journal.Store on top of any kvstore.KVStore
//
// Key layout: sub/<blake3(pattern)>/<blake3(subscriber)>, hex encoded, so
// every subscription of one pattern shares a prefix.
// Each value carries a BLAKE3 multihash of the pair, checked on List.
type Store struct {
	kv kvstore.KVStore
}

type storedRecord struct {
	Pattern     string `json:"pattern"`
	Subscriber  string `json:"subscriber"`
	CreatedAt   int64  `json:"created_at"`
	Fingerprint string `json:"fingerprint"`
}

// New creates a journal backed by kv. Closing the journal closes kv.
func New(kv kvstore.KVStore) *Store {
	return &Store{kv: kv}
}

func patternPrefix(pattern string) []byte {
	return []byte(keyPrefix + multihash.DigestHex(pattern) + "/")
}

func recordKey(pattern, subscriber string) []byte {
	return append(patternPrefix(pattern), multihash.DigestHex(subscriber)...)
}

func pairBytes(pattern, subscriber string) []byte {
	return []byte(pattern + "\x00" + subscriber)
}

// Put stores a subscription, keeping the original CreatedAt if it exists
func (s *Store) Put(ctx context.Context, rec *journal.Record) error {
	existing, err := s.Get(ctx, rec.Pattern, rec.Subscriber)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	fp, err := multihash.NewFingerprint(pairBytes(rec.Pattern, rec.Subscriber))
	if err != nil {
		return err
	}

	data, err := json.Marshal(&storedRecord{
		Pattern:     rec.Pattern,
		Subscriber:  rec.Subscriber,
		CreatedAt:   rec.CreatedAt,
		Fingerprint: fp.Hex(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode subscription: %w", err)
	}

	if err := s.kv.Put(ctx, recordKey(rec.Pattern, rec.Subscriber), data); err != nil {
		return fmt.Errorf("failed to store subscription: %w", err)
	}
	return nil
}

// Get retrieves one subscription
func (s *Store) Get(ctx context.Context, pattern, subscriber string) (*journal.Record, error) {
	data, err := s.kv.Get(ctx, recordKey(pattern, subscriber))
	if err != nil {
		return nil, fmt.Errorf("failed to read subscription: %w", err)
	}
	if data == nil {
		return nil, nil
	}
	return decode(data)
}

// Delete removes one subscription
func (s *Store) Delete(ctx context.Context, pattern, subscriber string) error {
	if err := s.kv.Delete(ctx, recordKey(pattern, subscriber)); err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	return nil
}

// DeletePattern removes every subscription under pattern
func (s *Store) DeletePattern(ctx context.Context, pattern string) error {
	var keys [][]byte
	err := s.kv.Iterate(ctx, patternPrefix(pattern), func(key, _ []byte) error {
		keys = append(keys, key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to scan pattern: %w", err)
	}

	for _, key := range keys {
		if err := s.kv.Delete(ctx, key); err != nil {
			return fmt.Errorf("failed to delete subscription: %w", err)
		}
	}
	return nil
}

// List returns all subscriptions in replay order
func (s *Store) List(ctx context.Context) ([]*journal.Record, error) {
	var recs []*journal.Record
	err := s.kv.Iterate(ctx, []byte(keyPrefix), func(key, value []byte) error {
		rec, err := decode(value)
		if err != nil {
			return fmt.Errorf("record %s: %w", key, err)
		}
		recs = append(recs, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}

	journal.SortRecords(recs)
	return recs, nil
}

// RunGC compacts the underlying KVStore if it supports it
func (s *Store) RunGC(discardRatio float64) error {
	gc, ok := s.kv.(kvstore.GarbageCollector)
	if !ok {
		return nil
	}
	if err := gc.RunGC(discardRatio); err != nil {
		return fmt.Errorf("failed to run GC: %w", err)
	}
	return nil
}

// Close closes the underlying KVStore
func (s *Store) Close() error {
	return s.kv.Close()
}

func decode(data []byte) (*journal.Record, error) {
	var stored storedRecord
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("failed to decode subscription: %w", err)
	}

	fp, err := multihash.ParseFingerprint(stored.Fingerprint)
	if err != nil {
		return nil, err
	}
	if err := fp.Verify(pairBytes(stored.Pattern, stored.Subscriber)); err != nil {
		return nil, fmt.Errorf("corrupt subscription %q/%q: %w", stored.Pattern, stored.Subscriber, err)
	}

	return &journal.Record{
		Pattern:    stored.Pattern,
		Subscriber: stored.Subscriber,
		CreatedAt:  stored.CreatedAt,
	}, nil
}
