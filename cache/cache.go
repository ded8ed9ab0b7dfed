package cache

import (
	"strconv"
	"strings"
)

// ResultCache holds previously computed match results keyed by the
// concrete key sequence that produced them.
// Implementations own the slices they store and hand out copies.
type ResultCache[V any] interface {
	// Get retrieves the cached result for keys
	Get(keys []string) ([]V, bool)

	// Put stores the result computed for keys
	Put(keys []string, values []V)

	// Invalidate removes every entry whose key sequence satisfies match
	// and returns how many were removed
	Invalidate(match func(keys []string) bool) int

	// Len returns the number of cached entries
	Len() int

	// Purge removes all cached entries
	Purge()
}

// Key encodes a key sequence as a map key. Each key is length-prefixed so
// that no two distinct sequences share an encoding.
func Key(keys []string) string {
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(strconv.Itoa(len(k)))
		b.WriteByte(':')
		b.WriteString(k)
	}
	return b.String()
}
