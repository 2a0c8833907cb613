package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// newTestStore creates a SQLiteStorage backed by a file in t.TempDir().
// File-based databases behave like production (WAL, pooled connections);
// pass a non-empty dbPath to reuse a specific file across stores.
func newTestStore(t *testing.T, dbPath string, opts ...Option) *SQLiteStorage {
	t.Helper()

	if dbPath == "" {
		dbPath = filepath.Join(t.TempDir(), "test.db")
	}

	store, err := New(context.Background(), dbPath, opts...)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	t.Cleanup(func() {
		if cerr := store.Close(); cerr != nil {
			t.Errorf("Failed to close test database: %v", cerr)
		}
	})

	return store
}

// stepClock returns a clock that starts at base and advances by step on every call.
func stepClock(base time.Time, step time.Duration) func() time.Time {
	var (
		mu  sync.Mutex
		cur = base
	)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := cur
		cur = cur.Add(step)
		return t
	}
}

var testEpoch = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
