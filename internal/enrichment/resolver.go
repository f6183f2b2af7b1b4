package enrichment

import (
	"context"
	"log/slog"

	"github.com/lepinkainen/gameshelf/internal/platform"
	"github.com/lepinkainen/gameshelf/internal/rawg"
)

const (
	// DefaultOptionLimit is the number of cover options offered for picking.
	DefaultOptionLimit = 6
	autofillFetch      = 15
)

// Resolver turns a title and platform into cover candidates and autofill
// metadata. It holds no per-call state and is safe for concurrent use.
type Resolver struct {
	primary  PrimarySource
	fallback FallbackSource
}

// NewResolver creates a Resolver. Either source may be nil.
func NewResolver(primary PrimarySource, fallback FallbackSource) *Resolver {
	return &Resolver{primary: primary, fallback: fallback}
}

func (r *Resolver) primaryConfigured() bool {
	return r.primary != nil && r.primary.Configured()
}

// ResolveCoverOptions returns up to limit cover candidates, best first and
// unique by thumbnail. A limit <= 0 means DefaultOptionLimit.
//
// The fallback source is only consulted when no primary key is configured:
// a configured primary that finds nothing is taken at its word.
func (r *Resolver) ResolveCoverOptions(ctx context.Context, title string, p platform.Platform, limit int) []Candidate {
	if limit <= 0 {
		limit = DefaultOptionLimit
	}
	if Normalize(title) == "" {
		return []Candidate{}
	}

	games := rankGames(r.searchPrimary(ctx, title, fetchSize(limit)), title, p)
	candidates := make([]Candidate, 0, len(games))
	for _, g := range games {
		candidates = append(candidates, candidateFromGame(g))
	}
	candidates = truncate(dedupeByThumbnail(candidates), limit)

	if len(candidates) > 0 || r.primaryConfigured() {
		return candidates
	}

	slog.Debug("No primary key configured, using fallback source", "query", title, "platform", p)
	return r.searchFallback(ctx, title, p, limit)
}

// ResolveBestCover returns the best cover URL for title, or "".
func (r *Resolver) ResolveBestCover(ctx context.Context, title string, p platform.Platform) string {
	options := r.ResolveCoverOptions(ctx, title, p, 1)
	if len(options) == 0 {
		return ""
	}
	return options[0].ThumbnailURL
}

// ResolveAutofill looks up title and returns the top match's title,
// platform, year and cover. Anything that cannot be inferred keeps the
// caller's value; with no match at all only the cover is looked up.
func (r *Resolver) ResolveAutofill(ctx context.Context, title string, fallbackPlatform platform.Platform, fallbackYear int) AutofillResult {
	result := AutofillResult{
		Title:    title,
		Platform: fallbackPlatform,
		Year:     fallbackYear,
	}
	if Normalize(title) == "" {
		return result
	}

	ranked := rankGames(r.searchPrimary(ctx, title, autofillFetch), title, fallbackPlatform)
	if len(ranked) == 0 {
		result.CoverURL = r.ResolveBestCover(ctx, title, fallbackPlatform)
		return result
	}

	top := ranked[0]
	result.Title = top.Name
	if inferred, ok := platform.Infer(top.PlatformNames()); ok {
		result.Platform = inferred
	}
	result.Year = ParseReleaseYear(top.Released, fallbackYear)
	result.CoverURL = top.Image()

	slog.Debug("Autofill matched", "query", title, "source", rawg.SourceName, "id", top.ID, "title", top.Name)
	return result
}
