// ABOUTME: Tests for the local traffic snapshot store
// ABOUTME: Uses a temporary SQLite database per test

package history

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "rfrp", "history.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_RecordAndRecent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		if err := store.Record(ctx, i*100, i*200); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	snapshots, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(snapshots) != 3 {
		t.Fatalf("got %d snapshots, want 3", len(snapshots))
	}

	// Newest first
	if snapshots[0].TotalIn != 300 || snapshots[2].TotalIn != 100 {
		t.Errorf("snapshots out of order: %+v", snapshots)
	}
	if snapshots[0].TakenAt.IsZero() {
		t.Error("TakenAt should be populated")
	}
}

func TestStore_RecentLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := int64(0); i < 5; i++ {
		if err := store.Record(ctx, i, i); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	snapshots, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(snapshots) != 2 {
		t.Errorf("got %d snapshots, want 2", len(snapshots))
	}
}

func TestStore_Prune(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := int64(0); i < 5; i++ {
		if err := store.Record(ctx, i, i); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	if err := store.Prune(ctx, 2); err != nil {
		t.Fatalf("Prune() error = %v", err)
	}

	snapshots, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(snapshots) != 2 {
		t.Fatalf("got %d snapshots after prune, want 2", len(snapshots))
	}
	// The newest ones survive
	if snapshots[0].TotalIn != 4 || snapshots[1].TotalIn != 3 {
		t.Errorf("wrong snapshots survived: %+v", snapshots)
	}
}

func TestStore_EmptyRecent(t *testing.T) {
	store := openTestStore(t)

	snapshots, err := store.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(snapshots) != 0 {
		t.Errorf("got %d snapshots, want 0", len(snapshots))
	}
}
