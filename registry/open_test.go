package registry

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shruggr/subjecttrie/journal"
	"github.com/shruggr/subjecttrie/kvstore"
)

func TestOpenJournal(t *testing.T) {
	dir := t.TempDir()
	configs := map[string]*StorageConfig{
		"memory": {Type: "memory"},
		"badger": {Type: "badger", DataDir: filepath.Join(dir, "badger")},
		"sqlite": {Type: "sqlite", DBPath: filepath.Join(dir, "journal.db")},
	}

	for name, config := range configs {
		t.Run(name, func(t *testing.T) {
			store, err := OpenJournal(config, quietLogger())
			require.NoError(t, err)
			defer store.Close()

			ctx := context.Background()
			require.NoError(t, store.Put(ctx, &journal.Record{Pattern: "a.>", Subscriber: "s1", CreatedAt: 1}))

			recs, err := store.List(ctx)
			require.NoError(t, err)
			require.Len(t, recs, 1)
			assert.Equal(t, "a.>", recs[0].Pattern)
		})
	}
}

func TestOpenJournal_Errors(t *testing.T) {
	for _, config := range []*StorageConfig{
		{Type: "redis"},
		{Type: "badger"},
		{Type: "sqlite"},
	} {
		_, err := OpenJournal(config, quietLogger())
		assert.Error(t, err, "type %q", config.Type)
	}
}

func TestOpenJournal_BadgerRunsGC(t *testing.T) {
	store, err := OpenJournal(&StorageConfig{Type: "badger", DataDir: t.TempDir()}, quietLogger())
	require.NoError(t, err)
	defer store.Close()

	gc, ok := store.(kvstore.GarbageCollector)
	require.True(t, ok, "badger journal should support GC")
	assert.NoError(t, gc.RunGC(0.5))
}
