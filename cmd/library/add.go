package library

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lepinkainen/gameshelf/internal/config"
	"github.com/lepinkainen/gameshelf/internal/datastore"
	gserrors "github.com/lepinkainen/gameshelf/internal/errors"
	"github.com/lepinkainen/gameshelf/internal/suggest"
	"github.com/lepinkainen/gameshelf/internal/tui"
)

// AddOptions describes a new collection entry.
type AddOptions struct {
	DBPath      string
	Title       string
	Platform    string
	Year        int
	Completed   bool
	Rating      int
	Cover       string
	NoAutofill  bool
	Interactive bool
}

// Add creates an entry. A blank cover triggers autofill, which may also
// replace title, platform and year with the matched game's metadata.
func Add(ctx context.Context, opts AddOptions) (datastore.GameRecord, error) {
	p, err := parseOptionalPlatform(opts.Platform)
	if err != nil {
		return datastore.GameRecord{}, err
	}

	game := datastore.GameRecord{
		Title:     strings.TrimSpace(opts.Title),
		Platform:  p,
		Year:      opts.Year,
		Completed: opts.Completed,
		Rating:    opts.Rating,
		CoverURL:  strings.TrimSpace(opts.Cover),
	}
	if game.Year == 0 {
		game.Year = now().Year()
	}

	switch {
	case opts.Interactive:
		if err := fillInteractive(&game); err != nil {
			return datastore.GameRecord{}, err
		}
	case game.CoverURL == "" && !opts.NoAutofill && game.Title != "":
		fillFromAutofill(ctx, newResolver(), &game)
	}

	var added datastore.GameRecord
	err = withStore(opts.DBPath, func(store Store) error {
		var addErr error
		added, addErr = store.AddGame(ctx, game)
		return addErr
	})
	if err != nil {
		return datastore.GameRecord{}, err
	}

	slog.Info("Added game", "id", added.ID, "title", added.Title, "platform", added.Platform, "cover", added.CoverURL != "")
	printGame(added)
	return added, nil
}

func fillFromAutofill(ctx context.Context, resolver Resolver, game *datastore.GameRecord) {
	fallback := game.Platform
	if !fallback.Valid() {
		fallback = defaultPlatform()
	}

	result := resolver.ResolveAutofill(ctx, game.Title, fallback, game.Year)
	game.Title = result.Title
	game.Platform = result.Platform
	game.Year = result.Year
	game.CoverURL = result.CoverURL
}

func fillInteractive(game *datastore.GameRecord) error {
	result, err := searchForm(newResolver(), suggest.Draft{
		Title:    game.Title,
		Platform: game.Platform,
		Year:     game.Year,
		CoverURL: game.CoverURL,
	}, suggest.WithDelay(config.SuggestDelay))
	if err != nil {
		return fmt.Errorf("search form failed: %w", err)
	}

	switch result.Action {
	case tui.ActionStopped:
		return gserrors.NewStopProcessingError(gserrors.StepSearchForm, "user quit")
	case tui.ActionSelected:
		game.Title = strings.TrimSpace(result.Draft.Title)
		game.Platform = result.Draft.Platform
		game.Year = result.Draft.Year
		game.CoverURL = result.Draft.CoverURL
		return nil
	default:
		return fmt.Errorf("add cancelled")
	}
}
