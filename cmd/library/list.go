package library

import (
	"context"
	"fmt"
	"strconv"

	"github.com/lepinkainen/gameshelf/internal/cmdutil"
	"github.com/lepinkainen/gameshelf/internal/datastore"
)

// ListOptions filters the collection listing.
type ListOptions struct {
	DBPath    string
	Platform  string
	Completed bool
	Pending   bool
}

// List prints the matching games as a table and returns them.
func List(ctx context.Context, opts ListOptions) ([]datastore.GameRecord, error) {
	if opts.Completed && opts.Pending {
		return nil, fmt.Errorf("--completed and --pending are mutually exclusive")
	}
	p, err := parseOptionalPlatform(opts.Platform)
	if err != nil {
		return nil, err
	}

	filter := datastore.ListFilter{Platform: p}
	switch {
	case opts.Completed:
		done := true
		filter.Completed = &done
	case opts.Pending:
		done := false
		filter.Completed = &done
	}

	var games []datastore.GameRecord
	err = withStore(opts.DBPath, func(store Store) error {
		var listErr error
		games, listErr = store.ListGames(ctx, filter)
		return listErr
	})
	if err != nil {
		return nil, err
	}

	if len(games) == 0 {
		_, _ = fmt.Fprintln(out, "No games found.")
		return games, nil
	}

	rows := make([][]string, 0, len(games))
	for _, g := range games {
		rows = append(rows, []string{
			strconv.FormatInt(g.ID, 10),
			g.Title,
			g.Platform.String(),
			formatYear(g.Year),
			formatCompleted(g.Completed),
			strconv.Itoa(g.Rating),
			g.CoverURL,
		})
	}
	_, _ = fmt.Fprintln(out, cmdutil.RenderTable(
		[]string{"ID", "Title", "Platform", "Year", "Done", "Rating", "Cover"},
		rows,
		[]cmdutil.Alignment{cmdutil.AlignRight, cmdutil.AlignLeft, cmdutil.AlignLeft, cmdutil.AlignRight, cmdutil.AlignLeft, cmdutil.AlignRight},
	))
	return games, nil
}

// Delete removes one game.
func Delete(ctx context.Context, dbPath string, id int64) error {
	return withStore(dbPath, func(store Store) error {
		if err := store.DeleteGame(ctx, id); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "Deleted game %d\n", id)
		return nil
	})
}
