package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shruggr/subjecttrie/journal"
	"github.com/shruggr/subjecttrie/journal/kv"
	"github.com/shruggr/subjecttrie/kvstore/memory"
	"github.com/shruggr/subjecttrie/registry"
	"github.com/shruggr/subjecttrie/trie"
)

func newRegistry(t *testing.T, store journal.Store) *registry.Registry {
	t.Helper()
	tr, err := trie.New[string](&trie.Config{
		CacheSize:      16,
		Separator:      '/',
		SingleWildcard: "+",
		MultiWildcard:  "#",
	})
	require.NoError(t, err)
	return registry.New(trie.NewSync(tr), store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCheck_CustomSyntax(t *testing.T) {
	ctx := context.Background()
	store := kv.New(memory.New())

	writer := newRegistry(t, store)
	for _, sub := range []struct{ pattern, id string }{
		{"sensors/#", "archive"},
		{"sensors/+/temp", "alerts"},
		{"sensors/lab/humidity", "hvac"},
	} {
		_, err := writer.Subscribe(ctx, sub.pattern, sub.id)
		require.NoError(t, err)
	}

	var out bytes.Buffer
	require.NoError(t, check(newRegistry(t, store), "sensors/lab/temp", &out))
	assert.JSONEq(t, `["archive", "alerts"]`, out.String())
}

func TestCheck_NoMatches(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, check(newRegistry(t, kv.New(memory.New())), "sensors/lab/temp", &out))
	assert.Empty(t, out.String())
}
