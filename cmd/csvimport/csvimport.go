// Package csvimport bulk-loads a collection from a CSV file with the
// columns title, platform, year, completed, rating and cover.
package csvimport

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/lepinkainen/gameshelf/internal/cmdutil"
	"github.com/lepinkainen/gameshelf/internal/csvutil"
	"github.com/lepinkainen/gameshelf/internal/datastore"
	"github.com/lepinkainen/gameshelf/internal/enrichment"
	"github.com/lepinkainen/gameshelf/internal/platform"
)

// Store receives the imported rows.
type Store interface {
	AddGame(ctx context.Context, g datastore.GameRecord) (datastore.GameRecord, error)
	Close() error
}

// Autofiller fills metadata for rows without a cover.
type Autofiller interface {
	ResolveAutofill(ctx context.Context, title string, fallbackPlatform platform.Platform, fallbackYear int) enrichment.AutofillResult
}

var (
	openStore = func(path string) (Store, error) {
		store, err := cmdutil.OpenStore(path)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	newAutofiller = func() Autofiller { return cmdutil.NewResolver() }
	now           = time.Now
)

// Options configures an import run.
type Options struct {
	Input      string
	DBPath     string
	NoAutofill bool
}

// Summary counts the outcome of an import.
type Summary struct {
	Read      int
	Added     int
	Autofills int
	Failed    int
}

// Row is one parsed CSV line before autofill.
type Row struct {
	Line int
	Game datastore.GameRecord
}

// ParseRow converts a CSV record. A blank year means the current year and
// a blank platform is left for autofill to infer.
func ParseRow(r csvutil.Record) (Row, error) {
	game := datastore.GameRecord{Title: r.Get("title")}
	if game.Title == "" {
		return Row{}, fmt.Errorf("title is required")
	}

	if r.Has("platform") {
		p, err := platform.Parse(r.Get("platform"))
		if err != nil {
			return Row{}, err
		}
		game.Platform = p
	}

	if r.Has("year") {
		year, err := strconv.Atoi(r.Get("year"))
		if err != nil {
			return Row{}, fmt.Errorf("invalid year %q", r.Get("year"))
		}
		game.Year = year
	} else {
		game.Year = now().Year()
	}

	if r.Has("completed") {
		done, err := parseBool(r.Get("completed"))
		if err != nil {
			return Row{}, err
		}
		game.Completed = done
	}

	if r.Has("rating") {
		rating, err := strconv.Atoi(r.Get("rating"))
		if err != nil {
			return Row{}, fmt.Errorf("invalid rating %q", r.Get("rating"))
		}
		game.Rating = rating
	}

	game.CoverURL = r.Get("cover")
	return Row{Line: r.Line, Game: game}, nil
}

func parseBool(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "1", "true", "yes", "y", "x", "done":
		return true, nil
	case "0", "false", "no", "n", "":
		return false, nil
	}
	return false, fmt.Errorf("invalid completed value %q", value)
}

// Import reads opts.Input and adds every valid row to the collection.
// Rows that fail to parse or validate are skipped with a warning.
func Import(ctx context.Context, opts Options) (Summary, error) {
	if opts.Input == "" {
		return Summary{}, fmt.Errorf("input CSV file is required (provide via --input flag)")
	}

	rows, err := csvutil.ProcessCSV(opts.Input, ParseRow, csvutil.ProcessorOptions{
		Required:    []string{"title"},
		SkipInvalid: true,
	})
	if err != nil {
		return Summary{}, err
	}

	store, err := openStore(opts.DBPath)
	if err != nil {
		return Summary{}, err
	}
	defer func() { _ = store.Close() }()

	var autofiller Autofiller
	if !opts.NoAutofill {
		autofiller = newAutofiller()
	}

	summary := Summary{Read: len(rows)}
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		game := row.Game
		if autofiller != nil && game.CoverURL == "" {
			fallback := game.Platform
			if !fallback.Valid() {
				fallback = platform.All[0]
			}
			result := autofiller.ResolveAutofill(ctx, game.Title, fallback, game.Year)
			game.Title = result.Title
			game.Platform = result.Platform
			game.Year = result.Year
			game.CoverURL = result.CoverURL
			summary.Autofills++
		}

		added, err := store.AddGame(ctx, game)
		if err != nil {
			slog.Warn("Skipping row", "line", row.Line, "title", game.Title, "error", err)
			summary.Failed++
			continue
		}
		slog.Debug("Imported game", "id", added.ID, "title", added.Title, "platform", added.Platform)
		summary.Added++
	}

	slog.Info("Import finished", "read", summary.Read, "added", summary.Added, "autofilled", summary.Autofills, "failed", summary.Failed)
	return summary, nil
}
