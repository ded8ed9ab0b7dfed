package memory

import (
	"bytes"
	"context"
	"encoding/hex"
	"sync"
)

// Store is an in-memory implementation of kvstore.KVStore
// Suitable for testing and development
type Store struct {
	data sync.Map // map[string][]byte (hex-encoded keys)
}

// New creates a new in-memory KVStore
func New() *Store {
	return &Store{}
}

// Put stores a key-value pair
func (s *Store) Put(ctx context.Context, key []byte, value []byte) error {
	s.data.Store(hex.EncodeToString(key), append([]byte{}, value...))
	return nil
}

// Get retrieves a value by key
func (s *Store) Get(ctx context.Context, key []byte) ([]byte, error) {
	val, ok := s.data.Load(hex.EncodeToString(key))
	if !ok {
		return nil, nil
	}
	return append([]byte{}, val.([]byte)...), nil
}

// Delete removes a key-value pair
func (s *Store) Delete(ctx context.Context, key []byte) error {
	s.data.Delete(hex.EncodeToString(key))
	return nil
}

// Iterate calls fn for every key starting with prefix
// Order is unspecified
func (s *Store) Iterate(ctx context.Context, prefix []byte, fn func(key, value []byte) error) error {
	var iterErr error
	s.data.Range(func(k, v any) bool {
		if err := ctx.Err(); err != nil {
			iterErr = err
			return false
		}
		key, err := hex.DecodeString(k.(string))
		if err != nil {
			iterErr = err
			return false
		}
		if !bytes.HasPrefix(key, prefix) {
			return true
		}
		if err := fn(key, append([]byte{}, v.([]byte)...)); err != nil {
			iterErr = err
			return false
		}
		return true
	})
	return iterErr
}

// Close releases any resources
func (s *Store) Close() error {
	return nil
}
