package enrichment

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/lepinkainen/gameshelf/internal/platform"
	"github.com/lepinkainen/gameshelf/internal/rawg"
	"github.com/lepinkainen/gameshelf/internal/wikipedia"
)

// PrimarySource is a games database searched by title. *rawg.Client
// satisfies it.
type PrimarySource interface {
	Configured() bool
	SearchGames(ctx context.Context, title string, pageSize int) ([]rawg.Game, error)
}

// FallbackSource is a general encyclopedia search. *wikipedia.Client
// satisfies it.
type FallbackSource interface {
	Search(ctx context.Context, query string, limit int) ([]wikipedia.Page, error)
}

const minFetch = 12

// fetchSize over-fetches so that enough results survive filtering.
func fetchSize(limit int) int {
	return max(limit*3, minFetch)
}

// searchPrimary is the best-effort primary lookup: any failure, including
// a missing key, yields no results.
func (r *Resolver) searchPrimary(ctx context.Context, title string, pageSize int) []rawg.Game {
	if r.primary == nil || !r.primary.Configured() {
		return nil
	}
	games, err := r.primary.SearchGames(ctx, title, pageSize)
	if err != nil {
		slog.Debug("Primary metadata lookup failed", "source", rawg.SourceName, "query", title, "error", err)
		return nil
	}
	return games
}

type scoredGame struct {
	game  rawg.Game
	score float64
}

// rankGames drops malformed and non-primary records, then orders the rest
// by descending score. Ties keep source order.
func rankGames(games []rawg.Game, queryTitle string, p platform.Platform) []rawg.Game {
	scored := make([]scoredGame, 0, len(games))
	for _, g := range games {
		if g.ID == 0 || g.Name == "" || g.Image() == "" {
			continue
		}
		if !IsPrimaryCandidate(g.Name, queryTitle) {
			continue
		}
		scored = append(scored, scoredGame{game: g, score: ScoreGame(g, queryTitle, p)})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	ranked := make([]rawg.Game, len(scored))
	for i, s := range scored {
		ranked[i] = s.game
	}
	return ranked
}

type scoredPage struct {
	page  wikipedia.Page
	score float64
}

// searchFallback queries the encyclopedia and returns at most limit
// video-game pages with thumbnails, best first and unique by thumbnail.
func (r *Resolver) searchFallback(ctx context.Context, title string, p platform.Platform, limit int) []Candidate {
	if r.fallback == nil {
		return []Candidate{}
	}

	query := fmt.Sprintf("%s %s video game", title, p.DisplayName())
	if !p.Valid() {
		query = fmt.Sprintf("%s video game", title)
	}

	pages, err := r.fallback.Search(ctx, query, fetchSize(limit))
	if err != nil {
		slog.Debug("Fallback metadata lookup failed", "source", wikipedia.SourceName, "query", query, "error", err)
		return []Candidate{}
	}

	scored := make([]scoredPage, 0, len(pages))
	for _, page := range pages {
		if page.Title == "" || page.ThumbnailURL() == "" {
			continue
		}
		if !IsVideoGameCategorized(page.CategoryText()) {
			continue
		}
		scored = append(scored, scoredPage{page: page, score: ScorePage(page, title, p)})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	candidates := make([]Candidate, 0, len(scored))
	for _, s := range scored {
		candidates = append(candidates, candidateFromPage(s.page))
	}

	return truncate(dedupeByThumbnail(candidates), limit)
}
