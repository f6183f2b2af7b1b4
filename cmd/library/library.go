// Package library implements the collection commands: add, edit, list,
// delete, and the read-only cover and autofill lookups.
package library

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/lepinkainen/gameshelf/internal/cmdutil"
	"github.com/lepinkainen/gameshelf/internal/datastore"
	"github.com/lepinkainen/gameshelf/internal/enrichment"
	"github.com/lepinkainen/gameshelf/internal/platform"
	"github.com/lepinkainen/gameshelf/internal/tui"
)

// Store is the subset of the SQLite store the commands use.
type Store interface {
	AddGame(ctx context.Context, g datastore.GameRecord) (datastore.GameRecord, error)
	GetGame(ctx context.Context, id int64) (datastore.GameRecord, error)
	UpdateGame(ctx context.Context, g datastore.GameRecord) (datastore.GameRecord, error)
	DeleteGame(ctx context.Context, id int64) error
	ListGames(ctx context.Context, filter datastore.ListFilter) ([]datastore.GameRecord, error)
	Close() error
}

// Resolver is the cover pipeline as seen by the create and edit flows.
type Resolver interface {
	ResolveCoverOptions(ctx context.Context, title string, p platform.Platform, limit int) []enrichment.Candidate
	ResolveBestCover(ctx context.Context, title string, p platform.Platform) string
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
	newResolver = func() Resolver { return cmdutil.NewResolver() }
	selectCover = tui.Select
	searchForm  = tui.Search
	now         = time.Now

	out io.Writer = os.Stdout
)

func withStore(path string, fn func(Store) error) error {
	store, err := openStore(path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	return fn(store)
}

// parseOptionalPlatform accepts an empty value as "not given".
func parseOptionalPlatform(value string) (platform.Platform, error) {
	if value == "" {
		return "", nil
	}
	return platform.Parse(value)
}

// defaultPlatform is the autofill fallback when the user gave no platform.
func defaultPlatform() platform.Platform {
	return platform.All[0]
}

func formatYear(year int) string {
	if year == 0 {
		return "????"
	}
	return strconv.Itoa(year)
}

func formatCompleted(done bool) string {
	if done {
		return "yes"
	}
	return "no"
}

func printGame(g datastore.GameRecord) {
	_, _ = fmt.Fprintln(out, cmdutil.RenderTable(
		[]string{"Field", "Value"},
		[][]string{
			{"ID", strconv.FormatInt(g.ID, 10)},
			{"Title", g.Title},
			{"Platform", g.Platform.String()},
			{"Year", formatYear(g.Year)},
			{"Completed", formatCompleted(g.Completed)},
			{"Rating", strconv.Itoa(g.Rating)},
			{"Cover", g.CoverURL},
		},
		nil,
	))
}
