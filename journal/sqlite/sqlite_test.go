package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shruggr/subjecttrie/journal"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(&Config{DBPath: filepath.Join(t.TempDir(), "journal.db")})
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestNewRequiresDBPath(t *testing.T) {
	if _, err := New(&Config{}); err == nil {
		t.Error("Expected error for empty DBPath")
	}
}

func TestPutAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := &journal.Record{Pattern: "orders.*", Subscriber: "billing", CreatedAt: 100}
	if err := store.Put(ctx, rec); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	// A second Put keeps the original timestamp.
	if err := store.Put(ctx, &journal.Record{Pattern: "orders.*", Subscriber: "billing", CreatedAt: 200}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.Get(ctx, "orders.*", "billing")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil")
	}
	if got.CreatedAt != 100 {
		t.Errorf("CreatedAt mismatch: expected 100, got %d", got.CreatedAt)
	}

	missing, err := store.Get(ctx, "orders.*", "audit")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for missing subscription, got %+v", missing)
	}
}

func TestDeleteAndDeletePattern(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i, rec := range []journal.Record{
		{Pattern: "a.>", Subscriber: "s1"},
		{Pattern: "a.>", Subscriber: "s2"},
		{Pattern: "a.*", Subscriber: "s1"},
	} {
		rec.CreatedAt = int64(i)
		if err := store.Put(ctx, &rec); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	if err := store.Delete(ctx, "a.*", "s1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete(ctx, "a.*", "nobody"); err != nil {
		t.Fatalf("Delete of missing subscription failed: %v", err)
	}

	recs, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(recs))
	}

	if err := store.DeletePattern(ctx, "a.>"); err != nil {
		t.Fatalf("DeletePattern failed: %v", err)
	}

	recs, err = store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("Expected empty journal, got %d records", len(recs))
	}
}

func TestListOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	input := []*journal.Record{
		{Pattern: "b", Subscriber: "x", CreatedAt: 2},
		{Pattern: "a", Subscriber: "y", CreatedAt: 2},
		{Pattern: "z", Subscriber: "x", CreatedAt: 1},
		{Pattern: "a", Subscriber: "x", CreatedAt: 2},
	}
	for _, rec := range input {
		if err := store.Put(ctx, rec); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	recs, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	want := []string{"z/x", "a/x", "a/y", "b/x"}
	if len(recs) != len(want) {
		t.Fatalf("Record count mismatch: got %d, want %d", len(recs), len(want))
	}
	for i, rec := range recs {
		if got := rec.Pattern + "/" + rec.Subscriber; got != want[i] {
			t.Errorf("Record %d mismatch: got %s, want %s", i, got, want[i])
		}
	}
}

func TestReopenKeepsRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	ctx := context.Background()

	store, err := New(&Config{DBPath: path})
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if err := store.Put(ctx, &journal.Record{Pattern: "a", Subscriber: "s", CreatedAt: 1}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	store.Close()

	store, err = New(&Config{DBPath: path})
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer store.Close()

	recs, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(recs) != 1 || recs[0].Pattern != "a" {
		t.Errorf("Unexpected records after reopen: %+v", recs)
	}
}
