// Package cmdutil holds the plumbing shared by the gameshelf commands:
// opening the collection, building the cover resolver and printing tables.
package cmdutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lepinkainen/gameshelf/internal/config"
	"github.com/lepinkainen/gameshelf/internal/datastore"
	"github.com/lepinkainen/gameshelf/internal/enrichment"
	"github.com/lepinkainen/gameshelf/internal/rawg"
	"github.com/lepinkainen/gameshelf/internal/wikipedia"
)

// OpenStore opens the SQLite collection at path, falling back to the
// configured database file, and ensures the games table exists.
func OpenStore(path string) (*datastore.SQLiteStore, error) {
	if path == "" {
		path = config.DatabaseFile
	}
	if path == "" {
		return nil, fmt.Errorf("database file is required (provide via --db flag or database.file in config)")
	}
	if err := EnsureParentDir(path); err != nil {
		return nil, err
	}

	store := datastore.NewSQLiteStore(path)
	if err := store.Open(); err != nil {
		return nil, err
	}
	return store, nil
}

// NewResolver wires the RAWG and Wikipedia clients from the global config.
// Without a RAWG key every lookup goes to Wikipedia.
func NewResolver() *enrichment.Resolver {
	primary := rawg.NewClient(config.RAWGAPIKey, rawg.WithBaseURL(config.RAWGBaseURL))
	fallback := wikipedia.NewClient(wikipedia.WithBaseURL(config.WikipediaBaseURL))
	return enrichment.NewResolver(primary, fallback)
}

// ResolvePath returns flagValue when set, otherwise configured.
func ResolvePath(flagValue, configured string) string {
	if flagValue != "" {
		return filepath.Clean(flagValue)
	}
	return filepath.Clean(configured)
}

// EnsureParentDir creates the directory that will hold path.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
