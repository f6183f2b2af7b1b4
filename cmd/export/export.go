// Package export writes the collection to JSON, Obsidian markdown notes, a
// standalone SQLite file, or a Datasette instance.
package export

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lepinkainen/gameshelf/internal/cmdutil"
	"github.com/lepinkainen/gameshelf/internal/datastore"
	"github.com/lepinkainen/gameshelf/internal/fileutil"
)

// Source lists the games to export.
type Source interface {
	ListGames(ctx context.Context, filter datastore.ListFilter) ([]datastore.GameRecord, error)
	Close() error
}

var (
	openSource = func(path string) (Source, error) {
		store, err := cmdutil.OpenStore(path)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	newDatasette = func(baseURL, token string) datastore.Store {
		return datastore.NewDatasetteClient(baseURL, token)
	}
	newSQLite = func(path string) datastore.Store {
		return datastore.NewSQLiteStore(path)
	}
)

func loadGames(ctx context.Context, dbPath string) ([]datastore.GameRecord, error) {
	source, err := openSource(dbPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = source.Close() }()

	return source.ListGames(ctx, datastore.ListFilter{})
}

// JSON writes every game to output as an indented array.
func JSON(ctx context.Context, dbPath, output string, overwrite bool) (int, error) {
	games, err := loadGames(ctx, dbPath)
	if err != nil {
		return 0, err
	}

	written, err := fileutil.WriteJSONFile(games, output, overwrite)
	if err != nil {
		return 0, err
	}
	if !written {
		return 0, nil
	}
	return len(games), nil
}

// Datasette publishes every game to the games table of database.
func Datasette(ctx context.Context, dbPath, baseURL, token, database string) (int, error) {
	if baseURL == "" {
		return 0, fmt.Errorf("datasette URL is required (provide via --url flag or datasette.url in config)")
	}
	return publish(ctx, dbPath, newDatasette(baseURL, token), database)
}

// SQLite copies every game into the SQLite file at output.
func SQLite(ctx context.Context, dbPath, output string) (int, error) {
	if output == "" {
		return 0, fmt.Errorf("output database file is required")
	}
	if err := cmdutil.EnsureParentDir(output); err != nil {
		return 0, err
	}
	return publish(ctx, dbPath, newSQLite(output), "")
}

func publish(ctx context.Context, dbPath string, target datastore.Store, database string) (int, error) {
	games, err := loadGames(ctx, dbPath)
	if err != nil {
		return 0, err
	}

	if err := target.Connect(); err != nil {
		return 0, err
	}
	defer func() { _ = target.Close() }()

	if err := datastore.Publish(target, database, games); err != nil {
		return 0, fmt.Errorf("failed to publish games: %w", err)
	}

	slog.Info("Published games", "count", len(games), "database", database)
	return len(games), nil
}
