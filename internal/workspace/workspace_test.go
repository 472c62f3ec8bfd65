package workspace

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewManagerCreatesTopLevelDirs(t *testing.T) {
	root := t.TempDir()
	_, err := NewManager(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, sub := range []string{"uploads", "results", "temp"} {
		if _, err := os.Stat(filepath.Join(root, sub)); err != nil {
			t.Errorf("expected %s to exist: %v", sub, err)
		}
	}
}

func TestUserDirsCreatedOnFirstUse(t *testing.T) {
	root := t.TempDir()
	m, _ := NewManager(root)
	dir, err := m.UploadsDir("user-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("expected dir to exist: %v", err)
	}
}

func TestCleanupAfterDownloadRemovesMatchingFiles(t *testing.T) {
	root := t.TempDir()
	m, _ := NewManager(root)
	dir, _ := m.TempDir("user-123")

	keep := filepath.Join(dir, "unrelated_batch.csv")
	remove := filepath.Join(dir, "batch_user-123_part1.csv")
	os.WriteFile(keep, []byte("x"), 0o644)
	os.WriteFile(remove, []byte("x"), 0o644)

	if err := m.CleanupAfterDownload("user-123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(remove); !os.IsNotExist(err) {
		t.Error("expected user-scoped file to be removed")
	}
	if _, err := os.Stat(keep); err != nil {
		t.Error("expected unrelated file to survive")
	}
}

func TestSweepPreservesPrefixedFilesRegardlessOfAge(t *testing.T) {
	root := t.TempDir()
	m, _ := NewManager(root)
	dir, _ := m.ResultsDir("user-123")

	old := filepath.Join(dir, "stale.csv")
	preserved := filepath.Join(dir, "Merged_leads.csv")
	os.WriteFile(old, []byte("x"), 0o644)
	os.WriteFile(preserved, []byte("x"), 0o644)

	oldTime := time.Now().Add(-10 * 24 * time.Hour)
	os.Chtimes(old, oldTime, oldTime)
	os.Chtimes(preserved, oldTime, oldTime)

	if err := m.Sweep(time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("expected stale file to be swept")
	}
	if _, err := os.Stat(preserved); err != nil {
		t.Error("expected Merged_ prefixed file to survive")
	}
}

func TestSweepKeepsRecentFiles(t *testing.T) {
	root := t.TempDir()
	m, _ := NewManager(root)
	dir, _ := m.ResultsDir("user-123")
	recent := filepath.Join(dir, "recent.csv")
	os.WriteFile(recent, []byte("x"), 0o644)

	if err := m.Sweep(time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(recent); err != nil {
		t.Error("expected recent file to survive sweep")
	}
}
