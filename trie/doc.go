// Package trie matches concrete subjects against stored subscription
// patterns.
//
// # Structure
//
// Each node has literal children keyed by segment text, at most one
// single-wildcard child, a set of values registered by patterns ending in a
// multi wildcard right below the node, and a set of values registered by
// patterns ending exactly at the node. Nodes are created on insert and never
// pruned.
//
// # Matching
//
// With the default syntax ('.', "*", ">"):
//
//	a        matches a
//	*        matches a, b (not a.b)
//	a.*.c    matches a.b.c, a.x.c
//	a.>      matches a.b, a.b.c (not a)
//	>        matches everything with at least one segment
//
// Lookups walk a frontier of nodes one key at a time. Multi-wildcard values
// are collected as soon as their node is on the frontier; exact values are
// collected from the frontier left after the last key.
//
// # Caching
//
// Find results are cached per key sequence in a bounded LRU. Every mutation
// drops the cached entries its pattern could affect (token.Sequence.Matches),
// so a cached result always equals a fresh computation.
//
// # Usage
//
//	t, _ := trie.New[string](nil)
//	t.Insert("orders.*.created", "billing")
//	t.Insert("orders.>", "audit")
//
//	subs, _ := t.Find("orders.eu.created")
//	// subs contains billing and audit
package trie
