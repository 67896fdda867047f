package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/matzehuels/venntower/pkg/errors"
)

// FileStore is a file-based run store for the CLI.
// Runs are stored as JSON files in a data directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a new file-based run store.
// If baseDir is empty, defaults to ~/.local/share/venntower/runs/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "get home dir")
		}
		baseDir = filepath.Join(home, ".local", "share", "venntower", "runs")
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create run dir")
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) runPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

// Get reads the run file for id.
func (s *FileStore) Get(ctx context.Context, id string) (*Run, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, err := readRun(s.runPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, notFound(id)
		}
		return nil, err
	}
	if run.IsExpired() {
		return nil, notFound(id)
	}
	return run, nil
}

// Put writes run to its own file, replacing any previous version.
func (s *FileStore) Put(ctx context.Context, run *Run) error {
	if err := ValidateID(run.ID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "marshal run")
	}
	if err := os.WriteFile(s.runPath(run.ID), data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeBackend, err, "write run file")
	}
	return nil
}

// Delete removes the run file for id.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.runPath(id)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeBackend, err, "remove run file")
	}
	return nil
}

// List reads every run file and returns up to limit live runs, newest
// first.
func (s *FileStore) List(ctx context.Context, limit int) ([]*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Run
	err := s.each(func(path string, run *Run) {
		if !run.IsExpired() {
			out = append(out, run)
		}
	})
	if err != nil {
		return nil, err
	}
	return newestFirst(out, limit), nil
}

// Cleanup removes the files of expired runs.
func (s *FileStore) Cleanup(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	removed := 0
	err := s.each(func(path string, run *Run) {
		if now.After(run.ExpiresAt) && os.Remove(path) == nil {
			removed++
		}
	})
	return removed, err
}

// Close is a no-op.
func (s *FileStore) Close() error { return nil }

// Path returns the base directory for run files.
func (s *FileStore) Path() string {
	return s.baseDir
}

// each calls fn for every readable run file. Unreadable files are skipped.
func (s *FileStore) each(fn func(path string, run *Run)) error {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return errors.Wrap(errors.ErrCodeBackend, err, "read run dir")
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		path := filepath.Join(s.baseDir, entry.Name())
		run, err := readRun(path)
		if err != nil {
			continue
		}
		fn(path, run)
	}
	return nil
}

func readRun(path string) (*Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var run Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, errors.Wrap(errors.ErrCodeBackend, err, "parse run %s", filepath.Base(path))
	}
	return &run, nil
}

var _ Store = (*FileStore)(nil)
