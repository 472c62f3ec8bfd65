// Package workspace manages per-user isolated directories and their
// lifecycle (§4.11 User Workspace Manager), grounded on original_source/
// cleanup_workspace.py and file_cleanup.py's age-based sweep and the
// teacher's internal/storage lifecycle conventions.
package workspace

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Manager maps opaque user identifiers to their uploads/results/temp
// directories under a process-wide root.
type Manager struct {
	root string
}

// NewManager builds a Manager rooted at root. The root and its three
// top-level subdirectories are created eagerly; per-user subdirectories are
// created on first use.
func NewManager(root string) (*Manager, error) {
	for _, sub := range []string{"uploads", "results", "temp"} {
		if err := os.MkdirAll(filepath.Join(root, sub), 0o755); err != nil {
			return nil, fmt.Errorf("workspace: create %s: %w", sub, err)
		}
	}
	return &Manager{root: root}, nil
}

// UploadsDir returns (creating if needed) uploads/<uid>/.
func (m *Manager) UploadsDir(uid string) (string, error) {
	return m.userDir("uploads", uid)
}

// ResultsDir returns (creating if needed) results/<uid>/.
func (m *Manager) ResultsDir(uid string) (string, error) {
	return m.userDir("results", uid)
}

// TempDir returns (creating if needed) temp/<uid>/.
func (m *Manager) TempDir(uid string) (string, error) {
	return m.userDir("temp", uid)
}

func (m *Manager) userDir(kind, uid string) (string, error) {
	dir := filepath.Join(m.root, kind, uid)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("workspace: create %s/%s: %w", kind, uid, err)
	}
	return dir, nil
}

// preservedPrefixes are filename prefixes never swept regardless of age.
var preservedPrefixes = []string{"Cleaned_", "Merged_"}

func isPreserved(name string) bool {
	for _, p := range preservedPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// CleanupAfterDownload deletes all temporary batch files in temp/<uid>/ that
// embed the user identifier in their name, called once a final output has
// been successfully downloaded.
func (m *Manager) CleanupAfterDownload(uid string) error {
	dir := filepath.Join(m.root, "temp", uid)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("workspace: read temp dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.Contains(e.Name(), uid) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if err := os.Remove(path); err != nil {
			log.Printf("workspace: cleanup failed for %s: %v", path, err)
		}
	}
	return nil
}

const maxAge = 7 * 24 * time.Hour

// Sweep deletes files older than 7 days from every per-user directory,
// except those whose names begin with a preserved prefix. Intended to be
// invoked by a weekly ticker (see Janitor).
func (m *Manager) Sweep(now time.Time) error {
	for _, kind := range []string{"uploads", "results", "temp"} {
		kindDir := filepath.Join(m.root, kind)
		userDirs, err := os.ReadDir(kindDir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("workspace: read %s: %w", kind, err)
		}
		for _, ud := range userDirs {
			if !ud.IsDir() {
				continue
			}
			m.sweepUserDir(filepath.Join(kindDir, ud.Name()), now)
		}
	}
	return nil
}

func (m *Manager) sweepUserDir(dir string, now time.Time) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() || isPreserved(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) > maxAge {
			path := filepath.Join(dir, e.Name())
			if err := os.Remove(path); err != nil {
				log.Printf("workspace: sweep failed for %s: %v", path, err)
			} else {
				log.Printf("workspace: swept stale file %s", path)
			}
		}
	}
}

// Janitor runs Sweep on a weekly tick until ctx-like stop channel closes.
// Grounded on the teacher's long-running-goroutine convention in
// cmd/main.go's --serve mode.
func (m *Manager) Janitor(stop <-chan struct{}) {
	ticker := time.NewTicker(7 * 24 * time.Hour)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			log.Println("workspace: running weekly janitor sweep")
			if err := m.Sweep(now); err != nil {
				log.Printf("workspace: janitor sweep error: %v", err)
			}
		case <-stop:
			return
		}
	}
}
