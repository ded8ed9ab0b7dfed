package kv

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shruggr/subjecttrie/journal"
	"github.com/shruggr/subjecttrie/kvstore"
	"github.com/shruggr/subjecttrie/kvstore/badger"
	"github.com/shruggr/subjecttrie/kvstore/memory"
)

func backends(t *testing.T) map[string]kvstore.KVStore {
	t.Helper()
	b, err := badger.New(&badger.Config{InMemory: true})
	require.NoError(t, err)
	return map[string]kvstore.KVStore{
		"memory": memory.New(),
		"badger": b,
	}
}

func TestStore(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := New(kv)
			defer s.Close()

			require.NoError(t, s.Put(ctx, &journal.Record{Pattern: "a.>", Subscriber: "s1", CreatedAt: 3}))
			require.NoError(t, s.Put(ctx, &journal.Record{Pattern: "a.>", Subscriber: "s2", CreatedAt: 1}))
			require.NoError(t, s.Put(ctx, &journal.Record{Pattern: "a.*", Subscriber: "s1", CreatedAt: 2}))
			require.NoError(t, s.Put(ctx, &journal.Record{Pattern: "a.>", Subscriber: "s1", CreatedAt: 9}))

			rec, err := s.Get(ctx, "a.>", "s1")
			require.NoError(t, err)
			require.NotNil(t, rec)
			assert.Equal(t, int64(3), rec.CreatedAt, "second Put must not overwrite")

			recs, err := s.List(ctx)
			require.NoError(t, err)
			require.Len(t, recs, 3)
			assert.Equal(t, []string{"s2", "s1", "s1"}, []string{recs[0].Subscriber, recs[1].Subscriber, recs[2].Subscriber})
			assert.Equal(t, "a.*", recs[1].Pattern)

			require.NoError(t, s.DeletePattern(ctx, "a.>"))
			recs, err = s.List(ctx)
			require.NoError(t, err)
			require.Len(t, recs, 1)
			assert.Equal(t, "a.*", recs[0].Pattern)

			require.NoError(t, s.Delete(ctx, "a.*", "s1"))
			rec, err = s.Get(ctx, "a.*", "s1")
			require.NoError(t, err)
			assert.Nil(t, rec)
		})
	}
}

func TestStore_PrefixIsolation(t *testing.T) {
	ctx := context.Background()
	s := New(memory.New())

	// "a" must not be treated as a prefix of "a.b".
	require.NoError(t, s.Put(ctx, &journal.Record{Pattern: "a", Subscriber: "x"}))
	require.NoError(t, s.Put(ctx, &journal.Record{Pattern: "a.b", Subscriber: "x"}))
	require.NoError(t, s.DeletePattern(ctx, "a"))

	recs, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "a.b", recs[0].Pattern)
}

func TestStore_DetectsCorruption(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	s := New(kv)

	require.NoError(t, s.Put(ctx, &journal.Record{Pattern: "a", Subscriber: "x"}))

	data, err := kv.Get(ctx, recordKey("a", "x"))
	require.NoError(t, err)
	// Rewrite the subscriber without updating the fingerprint.
	tampered := strings.Replace(string(data), `"subscriber":"x"`, `"subscriber":"y"`, 1)
	require.NotEqual(t, string(data), tampered)
	require.NoError(t, kv.Put(ctx, recordKey("a", "x"), []byte(tampered)))

	_, err = s.List(ctx)
	assert.Error(t, err)
	_, err = s.Get(ctx, "a", "x")
	assert.Error(t, err)
}

func TestStore_RunGC(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := New(kv)
			defer s.Close()

			require.NoError(t, s.Put(context.Background(), &journal.Record{Pattern: "a", Subscriber: "x"}))
			assert.NoError(t, s.RunGC(0.5))
		})
	}
}
