package trie

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueSet(t *testing.T) {
	var s valueSet[string]

	assert.True(t, s.add("a"))
	assert.True(t, s.add("b"))
	assert.True(t, s.add("c"))
	assert.False(t, s.add("b"))
	assert.Equal(t, []string{"a", "b", "c"}, s.items)

	assert.True(t, s.remove("a"))
	assert.False(t, s.remove("a"))
	assert.Equal(t, []string{"b", "c"}, s.items)

	// Indexes shift after a removal.
	assert.True(t, s.remove("c"))
	assert.Equal(t, []string{"b"}, s.items)
	assert.True(t, s.add("d"))
	assert.True(t, s.remove("b"))
	assert.Equal(t, []string{"d"}, s.items)

	assert.True(t, s.clear())
	assert.False(t, s.clear())
	assert.Equal(t, 0, s.len())
	assert.True(t, s.add("a"))
}

func TestNode_GetOrCreate(t *testing.T) {
	n := newNode[int]()

	a := n.getOrCreateChild("a")
	assert.Same(t, a, n.getOrCreateChild("a"))
	assert.Same(t, a, n.child("a"))
	assert.Nil(t, n.child("b"))

	w := n.getOrCreateWildcard()
	assert.Same(t, w, n.getOrCreateWildcard())
	assert.NotSame(t, a, w)
}
