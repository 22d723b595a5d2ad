package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/annotateshot/internal/storage"
)

// openStoreFn is replaced in tests.
var openStoreFn = openStore

// openStore opens the configured sqlite database, creating its directory.
func openStore(ctx context.Context, path string) (*storage.Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}
	st, err := storage.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	return st, nil
}

func (r *root) store(ctx context.Context) (*storage.Store, error) {
	path := r.storePath
	if path == "" {
		path = r.config.Store
	}
	if path == "" {
		path = ":memory:"
	}
	return openStoreFn(ctx, path)
}
