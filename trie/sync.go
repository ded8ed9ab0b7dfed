package trie

import (
	"sync"

	"github.com/shruggr/subjecttrie/token"
)

// SyncTrie serializes every operation on a Trie behind one mutex.
// There is no read lock: Find populates the result cache.
type SyncTrie[V comparable] struct {
	mu sync.Mutex
	t  *Trie[V]
}

// NewSync wraps t. t must not be used directly afterwards.
func NewSync[V comparable](t *Trie[V]) *SyncTrie[V] {
	return &SyncTrie[V]{t: t}
}

// Parser returns the wrapped trie's parser. Parsers are immutable and safe
// to share.
func (s *SyncTrie[V]) Parser() token.Parser {
	return s.t.Parser()
}

func (s *SyncTrie[V]) Insert(pattern string, value V) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.Insert(pattern, value)
}

func (s *SyncTrie[V]) InsertTokens(pattern token.Sequence, value V) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.InsertTokens(pattern, value)
}

func (s *SyncTrie[V]) Find(subject string) ([]V, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.Find(subject)
}

func (s *SyncTrie[V]) FindKeys(keys []string) []V {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.FindKeys(keys)
}

func (s *SyncTrie[V]) Exist(subject string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.Exist(subject)
}

func (s *SyncTrie[V]) ExistKeys(keys []string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.ExistKeys(keys)
}

func (s *SyncTrie[V]) Remove(pattern string, value V) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.Remove(pattern, value)
}

func (s *SyncTrie[V]) RemoveTokens(pattern token.Sequence, value V) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.RemoveTokens(pattern, value)
}

func (s *SyncTrie[V]) RemoveAll(pattern string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.RemoveAll(pattern)
}

func (s *SyncTrie[V]) RemoveAllTokens(pattern token.Sequence) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.RemoveAllTokens(pattern)
}

// Walk holds the lock for the whole walk; fn must not call back into s.
func (s *SyncTrie[V]) Walk(fn func(pattern token.Sequence, values []V) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.t.Walk(fn)
}

func (s *SyncTrie[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.Len()
}

func (s *SyncTrie[V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.t.Clear()
}

func (s *SyncTrie[V]) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.Stats()
}

func (s *SyncTrie[V]) CacheLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.CacheLen()
}
