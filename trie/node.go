package trie

import "slices"

// valueSet is an insertion-ordered set.
type valueSet[V comparable] struct {
	items []V
	index map[V]int
}

func (s *valueSet[V]) add(v V) bool {
	if _, ok := s.index[v]; ok {
		return false
	}
	if s.index == nil {
		s.index = make(map[V]int)
	}
	s.index[v] = len(s.items)
	s.items = append(s.items, v)
	return true
}

func (s *valueSet[V]) remove(v V) bool {
	i, ok := s.index[v]
	if !ok {
		return false
	}
	delete(s.index, v)
	s.items = slices.Delete(s.items, i, i+1)
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j]] = j
	}
	return true
}

// clear empties the set and reports whether it held anything.
func (s *valueSet[V]) clear() bool {
	if len(s.items) == 0 {
		return false
	}
	s.items = nil
	s.index = nil
	return true
}

func (s *valueSet[V]) len() int {
	return len(s.items)
}

// node is a trie vertex. Every field is owned by the node; there are no
// parent pointers.
type node[V comparable] struct {
	children map[string]*node[V]
	wildcard *node[V]

	// multi holds values of patterns whose trailing multi wildcard sits
	// directly below this node.
	multi valueSet[V]

	// values holds values of patterns ending exactly here.
	values valueSet[V]
}

func newNode[V comparable]() *node[V] {
	return &node[V]{}
}

func (n *node[V]) child(text string) *node[V] {
	return n.children[text]
}

func (n *node[V]) getOrCreateChild(text string) *node[V] {
	if c, ok := n.children[text]; ok {
		return c
	}
	if n.children == nil {
		n.children = make(map[string]*node[V])
	}
	c := newNode[V]()
	n.children[text] = c
	return c
}

func (n *node[V]) getOrCreateWildcard() *node[V] {
	if n.wildcard == nil {
		n.wildcard = newNode[V]()
	}
	return n.wildcard
}
