// Package jsonfile keeps the document as a JSON array in a single file.
package jsonfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"liteedit/internal/document"
	"liteedit/internal/store"
)

type Store struct {
	path string
	mu   sync.RWMutex
}

var _ store.Store = (*Store)(nil)

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Load returns ErrNotFound if the file is missing or empty.
func (s *Store) Load(ctx context.Context) ([]document.Element, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return nil, store.ErrNotFound
	}

	return store.Decode(data)
}

// Save writes the file atomically through a temp file and rename.
func (s *Store) Save(ctx context.Context, elems []document.Element) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	data, err := store.Encode(elems)
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}

	return os.Rename(tmp, s.path)
}
