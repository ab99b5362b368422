package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func testRun(seed int64, ticks int, settled bool, settledAt int) RunEntry {
	return RunEntry{
		Width:          48,
		Height:         24,
		Seed:           seed,
		CardinalWeight: 2,
		DiagonalWeight: 1,
		Boundary:       "exclude",
		Ticks:          ticks,
		Settled:        settled,
		SettledAt:      settledAt,
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err = store.SaveRun(testRun(1, 500, true, 312)); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err = store.SaveRun(testRun(2, 1000, false, 0)); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}

	// Newest first
	if runs[0].Seed != 2 || runs[1].Seed != 1 {
		t.Errorf("Expected newest-first order, got seeds %d, %d", runs[0].Seed, runs[1].Seed)
	}

	if !runs[1].Settled || runs[1].SettledAt != 312 {
		t.Errorf("Expected first run settled at 312, got settled=%v at %d", runs[1].Settled, runs[1].SettledAt)
	}
	if runs[0].Settled {
		t.Error("Expected second run unsettled")
	}
	if runs[0].Boundary != "exclude" {
		t.Errorf("Expected boundary 'exclude', got %q", runs[0].Boundary)
	}
}

func TestStoreRunsForSize(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	big := testRun(1, 100, false, 0)
	big.Width, big.Height = 120, 60
	if _, err = store.SaveRun(big); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err = store.SaveRun(testRun(2, 100, false, 0)); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.RunsForSize(48, 24, 10)
	if err != nil {
		t.Fatalf("RunsForSize() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Expected 1 run for 48x24, got %d", len(runs))
	}
	if runs[0].Seed != 2 {
		t.Errorf("Expected seed 2, got %d", runs[0].Seed)
	}
}

func TestStoreRecentRunsLimit(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for i := 0; i < 5; i++ {
		if _, err = store.SaveRun(testRun(int64(i), 10, false, 0)); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.RecentRuns(3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("Expected 3 runs with limit 3, got %d", len(runs))
	}
}

func TestStoreClearRuns(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err = store.SaveRun(testRun(1, 10, false, 0)); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	if err := store.ClearRuns(); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("Expected no runs after clear, got %d", len(runs))
	}
}
