package library

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lepinkainen/gameshelf/internal/datastore"
	gserrors "github.com/lepinkainen/gameshelf/internal/errors"
	"github.com/lepinkainen/gameshelf/internal/platform"
	"github.com/lepinkainen/gameshelf/internal/tui"
)

// KeepRating marks EditOptions.Rating as unchanged.
const KeepRating = -1

// EditOptions patches an existing entry. Zero values leave the stored field
// untouched.
type EditOptions struct {
	DBPath     string
	ID         int64
	Title      string
	Platform   string
	Year       int
	Completed  bool
	Pending    bool
	Rating     int
	Cover      string
	ClearCover bool
	PickCover  bool
}

// Edit applies opts to the stored game. When the cover is blank after
// patching it is re-resolved, through the picker with PickCover or
// automatically otherwise.
func Edit(ctx context.Context, opts EditOptions) (datastore.GameRecord, error) {
	if opts.Completed && opts.Pending {
		return datastore.GameRecord{}, fmt.Errorf("--completed and --pending are mutually exclusive")
	}
	p, err := parseOptionalPlatform(opts.Platform)
	if err != nil {
		return datastore.GameRecord{}, err
	}

	var updated datastore.GameRecord
	err = withStore(opts.DBPath, func(store Store) error {
		game, err := store.GetGame(ctx, opts.ID)
		if err != nil {
			return err
		}

		applyPatch(&game, opts, p)

		if opts.PickCover || game.CoverURL == "" {
			if err := resolveEditCover(ctx, newResolver(), &game, opts.PickCover); err != nil {
				return err
			}
		}

		updated, err = store.UpdateGame(ctx, game)
		return err
	})
	if err != nil {
		return datastore.GameRecord{}, err
	}

	slog.Info("Updated game", "id", updated.ID, "title", updated.Title, "cover", updated.CoverURL != "")
	printGame(updated)
	return updated, nil
}

func applyPatch(game *datastore.GameRecord, opts EditOptions, p platform.Platform) {
	if title := strings.TrimSpace(opts.Title); title != "" {
		game.Title = title
	}
	if p != "" {
		game.Platform = p
	}
	if opts.Year != 0 {
		game.Year = opts.Year
	}
	if opts.Completed {
		game.Completed = true
	}
	if opts.Pending {
		game.Completed = false
	}
	if opts.Rating != KeepRating {
		game.Rating = opts.Rating
	}
	switch {
	case opts.ClearCover:
		game.CoverURL = ""
	case strings.TrimSpace(opts.Cover) != "":
		game.CoverURL = strings.TrimSpace(opts.Cover)
	}
}

func resolveEditCover(ctx context.Context, resolver Resolver, game *datastore.GameRecord, pick bool) error {
	if pick {
		candidates := resolver.ResolveCoverOptions(ctx, game.Title, game.Platform, 0)
		result, err := selectCover(game.Title, candidates)
		if err != nil {
			return fmt.Errorf("cover picker failed: %w", err)
		}
		switch result.Action {
		case tui.ActionStopped:
			return gserrors.NewStopProcessingError(gserrors.StepCoverPicker, "user quit")
		case tui.ActionSelected:
			if result.Selection != nil {
				game.CoverURL = result.Selection.ThumbnailURL
				return nil
			}
		}
		if game.CoverURL != "" {
			return nil
		}
	}

	game.CoverURL = resolver.ResolveBestCover(ctx, game.Title, game.Platform)
	return nil
}
