package trie

import (
	"slices"
	"sort"

	"github.com/shruggr/subjecttrie/cache"
	"github.com/shruggr/subjecttrie/cache/noop"
	"github.com/shruggr/subjecttrie/token"
)

// Stats counts result cache activity.
type Stats struct {
	Hits        uint64
	Misses      uint64
	Invalidated uint64 // cache entries dropped by mutations
}

// Trie stores values under subject patterns and finds every value whose
// pattern matches a concrete subject.
//
// A Trie is not safe for concurrent use. Find writes to the result cache,
// so even lookups must be serialized; see SyncTrie.
type Trie[V comparable] struct {
	root   *node[V]
	cache  cache.ResultCache[V]
	parser token.Parser
	stats  Stats
}

// NewWithParser creates an empty trie using p for its string entry points
// and rc to cache lookups. A nil rc disables caching.
func NewWithParser[V comparable](p token.Parser, rc cache.ResultCache[V]) *Trie[V] {
	if p == nil {
		p = token.DefaultParser()
	}
	if rc == nil {
		rc = noop.New[V]()
	}
	return &Trie[V]{
		root:   newNode[V](),
		cache:  rc,
		parser: p,
	}
}

// Parser returns the parser used by the string entry points.
func (t *Trie[V]) Parser() token.Parser {
	return t.parser
}

// Insert parses pattern and adds value under it.
// It reports whether the value was newly added.
func (t *Trie[V]) Insert(pattern string, value V) (bool, error) {
	seq, err := t.parser.Parse(pattern)
	if err != nil {
		return false, err
	}
	return t.InsertTokens(seq, value), nil
}

// InsertTokens adds value under an already parsed pattern.
// Tokens after a multi wildcard are ignored; use Sequence.Validate on
// hand-built patterns.
func (t *Trie[V]) InsertTokens(pattern token.Sequence, value V) bool {
	pattern = truncate(pattern)
	n := t.root
	multi := false

	for _, tok := range pattern {
		if tok.Kind == token.MultiWildcard {
			multi = true
			break
		}
		if tok.Kind == token.SingleWildcard {
			n = n.getOrCreateWildcard()
		} else {
			n = n.getOrCreateChild(tok.Text)
		}
	}

	set := &n.values
	if multi {
		set = &n.multi
	}
	if !set.add(value) {
		return false
	}

	t.invalidate(pattern)
	return true
}

// Find returns every value whose pattern matches subject.
func (t *Trie[V]) Find(subject string) ([]V, error) {
	keys, err := t.parser.Keys(subject)
	if err != nil {
		return nil, err
	}
	return t.FindKeys(keys), nil
}

// FindKeys returns every value whose pattern matches keys. A value
// registered under several matching patterns appears once per pattern.
// The returned slice belongs to the caller.
func (t *Trie[V]) FindKeys(keys []string) []V {
	if cached, ok := t.cache.Get(keys); ok {
		t.stats.Hits++
		return cached
	}
	t.stats.Misses++

	result := t.collect(keys)
	t.cache.Put(keys, result)
	return result
}

func (t *Trie[V]) collect(keys []string) []V {
	var result []V
	frontier := []*node[V]{t.root}
	var next []*node[V]

	for _, key := range keys {
		next = next[:0]
		for _, n := range frontier {
			// A multi wildcard below a node on the path matches this key and
			// everything after it.
			result = append(result, n.multi.items...)

			if c := n.child(key); c != nil {
				next = append(next, c)
			}
			if n.wildcard != nil {
				next = append(next, n.wildcard)
			}
		}
		frontier, next = next, frontier
		if len(frontier) == 0 {
			return result
		}
	}

	for _, n := range frontier {
		result = append(result, n.values.items...)
	}
	return result
}

// Exist reports whether any pattern matches subject.
func (t *Trie[V]) Exist(subject string) (bool, error) {
	keys, err := t.parser.Keys(subject)
	if err != nil {
		return false, err
	}
	return t.ExistKeys(keys), nil
}

// ExistKeys reports whether any pattern matches keys. It does not read or
// populate the result cache.
func (t *Trie[V]) ExistKeys(keys []string) bool {
	frontier := []*node[V]{t.root}
	var next []*node[V]

	for _, key := range keys {
		next = next[:0]
		for _, n := range frontier {
			if n.multi.len() > 0 {
				return true
			}
			if c := n.child(key); c != nil {
				next = append(next, c)
			}
			if n.wildcard != nil {
				next = append(next, n.wildcard)
			}
		}
		frontier, next = next, frontier
		if len(frontier) == 0 {
			return false
		}
	}

	for _, n := range frontier {
		if n.values.len() > 0 {
			return true
		}
	}
	return false
}

// Remove parses pattern and removes value from exactly that pattern.
// It reports whether the value was present.
func (t *Trie[V]) Remove(pattern string, value V) (bool, error) {
	seq, err := t.parser.Parse(pattern)
	if err != nil {
		return false, err
	}
	return t.RemoveTokens(seq, value), nil
}

// RemoveTokens removes value from the set addressed by pattern.
// Wildcards in pattern address wildcard entries; they are not expanded.
// As with InsertTokens, tokens after a multi wildcard are ignored.
func (t *Trie[V]) RemoveTokens(pattern token.Sequence, value V) bool {
	pattern = truncate(pattern)
	set := t.lookup(pattern)
	if set == nil || !set.remove(value) {
		return false
	}
	t.invalidate(pattern)
	return true
}

// RemoveAll parses pattern and removes every value stored under it.
// It reports whether anything was removed.
func (t *Trie[V]) RemoveAll(pattern string) (bool, error) {
	seq, err := t.parser.Parse(pattern)
	if err != nil {
		return false, err
	}
	return t.RemoveAllTokens(seq), nil
}

// RemoveAllTokens clears the set addressed by pattern.
func (t *Trie[V]) RemoveAllTokens(pattern token.Sequence) bool {
	pattern = truncate(pattern)
	set := t.lookup(pattern)
	if set == nil || !set.clear() {
		return false
	}
	t.invalidate(pattern)
	return true
}

// lookup follows pattern without creating nodes and returns the value set it
// addresses, or nil if the path does not exist.
func (t *Trie[V]) lookup(pattern token.Sequence) *valueSet[V] {
	n := t.root
	for _, tok := range pattern {
		switch tok.Kind {
		case token.MultiWildcard:
			return &n.multi
		case token.SingleWildcard:
			n = n.wildcard
		default:
			n = n.child(tok.Text)
		}
		if n == nil {
			return nil
		}
	}
	return &n.values
}

// truncate drops any tokens after the first multi wildcard, so that the
// pattern used for invalidation addresses the same set as the walk.
func truncate(pattern token.Sequence) token.Sequence {
	i := slices.IndexFunc(pattern, func(tok token.Token) bool {
		return tok.Kind == token.MultiWildcard
	})
	if i < 0 {
		return pattern
	}
	return pattern[:i+1]
}

func (t *Trie[V]) invalidate(pattern token.Sequence) {
	t.stats.Invalidated += uint64(t.cache.Invalidate(pattern.Matches))
}

// Walk calls fn for every non-empty value set with the pattern addressing
// it. Literal children are visited in sorted order, then the wildcard
// child. fn receives copies and may stop the walk by returning false.
func (t *Trie[V]) Walk(fn func(pattern token.Sequence, values []V) bool) {
	walk(t.root, nil, fn)
}

func walk[V comparable](n *node[V], path token.Sequence, fn func(token.Sequence, []V) bool) bool {
	if n.values.len() > 0 && !fn(path.Clone(), slices.Clone(n.values.items)) {
		return false
	}
	if n.multi.len() > 0 {
		p := append(path.Clone(), token.Multi)
		if !fn(p, slices.Clone(n.multi.items)) {
			return false
		}
	}

	texts := make([]string, 0, len(n.children))
	for text := range n.children {
		texts = append(texts, text)
	}
	sort.Strings(texts)

	for _, text := range texts {
		if !walk(n.children[text], append(path, token.Lit(text)), fn) {
			return false
		}
	}
	if n.wildcard != nil {
		return walk(n.wildcard, append(path, token.Single), fn)
	}
	return true
}

// Len returns the number of stored (pattern, value) entries.
func (t *Trie[V]) Len() int {
	count := 0
	t.Walk(func(_ token.Sequence, values []V) bool {
		count += len(values)
		return true
	})
	return count
}

// Clear removes every pattern and purges the result cache.
func (t *Trie[V]) Clear() {
	t.root = newNode[V]()
	t.cache.Purge()
}

// Stats returns cache counters since the trie was created.
func (t *Trie[V]) Stats() Stats {
	return t.stats
}

// CacheLen returns the number of cached lookups.
func (t *Trie[V]) CacheLen() int {
	return t.cache.Len()
}
