package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/nhle/productivity-tracker/internal/store"
	"github.com/nhle/productivity-tracker/internal/tracker"
)

// Now is the fixed instant used by helpers that need a clock.
var Now = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

// Clock returns a time source pinned to *at. Tests advance time by
// assigning through the pointer.
func Clock(at *time.Time) func() time.Time {
	return func() time.Time { return *at }
}

// NewTestManager creates an initialized manager over an in-memory
// substrate with no quota.
func NewTestManager(t *testing.T, now func() time.Time) (*store.Manager, *store.MemorySubstrate) {
	t.Helper()

	sub := store.NewMemorySubstrate(0)
	m := store.NewManager(sub,
		store.WithClock(now),
		store.WithLogger(zaptest.NewLogger(t)),
	)
	if err := m.Init(); err != nil {
		t.Fatalf("initializing test manager: %v", err)
	}
	return m, sub
}

// NewTestSQLite creates a SQLite substrate in a temporary directory and
// closes it when the test completes.
func NewTestSQLite(t *testing.T, quota int64) *store.SQLiteSubstrate {
	t.Helper()

	s, err := store.NewSQLiteSubstrate(filepath.Join(t.TempDir(), "tracker.db"), quota)
	if err != nil {
		t.Fatalf("creating test substrate: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test substrate: %v", err)
		}
	})

	return s
}

// NewTestService creates a tracker service over a fresh in-memory manager.
func NewTestService(t *testing.T, now func() time.Time) *tracker.Service {
	t.Helper()

	m, _ := NewTestManager(t, now)
	return tracker.New(m,
		tracker.WithClock(now),
		tracker.WithLogger(zaptest.NewLogger(t)),
	)
}
