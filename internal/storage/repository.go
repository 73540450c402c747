// Package storage persists the whole application state as one snapshot.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sandeepkv93/chored/internal/model"
)

var (
	ErrCorruptState   = errors.New("storage: stored state is corrupt")
	ErrUnknownBackend = errors.New("storage: unknown backend")
)

const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
)

// Store loads and saves complete snapshots. Load reports (nil, nil) when
// nothing has been saved yet. Save replaces the stored snapshot atomically.
type Store interface {
	Load(ctx context.Context) (*model.AppState, error)
	Save(ctx context.Context, state model.AppState) error
	Close() error
}

// Open returns the store for backend rooted at path. SQLite databases are
// migrated on open and their directory is created when missing.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendSQLite, "":
		if dir := filepath.Dir(path); path != ":memory:" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("create data directory: %w", err)
			}
		}
		repo, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		if err := MigrateUp(repo.db); err != nil {
			_ = repo.Close()
			return nil, err
		}
		return repo, nil
	case BackendJSON:
		return NewFileStore(path), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
