package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"liteedit/internal/config"
	"liteedit/internal/document"
	"liteedit/internal/store"
	"liteedit/internal/store/jsonfile"
	"liteedit/internal/store/sqlite"
)

// openStore opens the configured backend. The returned closer is never nil.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, func() error, error) {
	path := cfg.StorePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create store directory: %w", err)
	}

	switch cfg.Store.Backend {
	case config.BackendSQLite:
		s, err := sqlite.Open(ctx, path)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return s, s.Close, nil
	default:
		return jsonfile.New(path), func() error { return nil }, nil
	}
}

// loadDocument opens the store and restores the saved document from it.
func loadDocument(ctx context.Context, cfg *config.Config) (*document.Document, store.Store, func() error, error) {
	st, closer, err := openStore(ctx, cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	doc, err := store.Restore(ctx, st, cfg.Bounds())
	if err != nil {
		_ = closer()
		return nil, nil, nil, fmt.Errorf("load document: %w", err)
	}
	return doc, st, closer, nil
}
