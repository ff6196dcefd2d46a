package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/twiced-technology-gmbh/deepsea/internal/store"
)

// OpenStore opens the configured backend and returns an adapter over it plus
// a function that releases the backend.
func (c *Config) OpenStore() (*store.Adapter, func() error, error) {
	switch c.Store.Backend {
	case BackendSQLite:
		blobs, err := store.NewSQLBlobs(c.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		return store.NewAdapter(blobs, c.Store.Key), blobs.Close, nil
	case BackendFile, "":
		blobs, err := store.NewFileBlobs(c.StorePath())
		if err != nil {
			return nil, nil, fmt.Errorf("opening file store: %w", err)
		}
		return store.NewAdapter(blobs, c.Store.Key), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown store backend %q", ErrInvalid, c.Store.Backend)
	}
}

// WatchPath returns the directory whose changes signal a store update:
// the file backend directory, or the directory holding the sqlite file.
func (c *Config) WatchPath() string {
	if c.Store.Backend == BackendSQLite {
		return parentDir(c.DSN())
	}
	return c.StorePath()
}

func parentDir(dsn string) string {
	clean := strings.TrimPrefix(dsn, "file:")
	clean, _, _ = strings.Cut(clean, "?")
	return filepath.Dir(clean)
}
