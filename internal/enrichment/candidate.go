// Package enrichment resolves cover art and catalog metadata for a free-text
// game title by querying RAWG and, without a RAWG key, Wikipedia.
package enrichment

import (
	"fmt"
	"strconv"

	"github.com/lepinkainen/gameshelf/internal/platform"
	"github.com/lepinkainen/gameshelf/internal/rawg"
	"github.com/lepinkainen/gameshelf/internal/wikipedia"
)

const (
	// MinYear and MaxYear bound the release years accepted from sources.
	MinYear = 1970
	MaxYear = 2030
)

// Candidate is one possible match for a title and platform query, in a
// shape shared by every source.
type Candidate struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	ThumbnailURL string   `json:"thumbnailUrl"`
	ReleaseDate  string   `json:"releaseDate"`
	Platforms    []string `json:"platforms"`
	Genres       []string `json:"genres"`
	Source       string   `json:"source"`
}

// Year returns the candidate's release year, or fallback when the release
// date is missing or outside MinYear..MaxYear.
func (c Candidate) Year(fallback int) int {
	return ParseReleaseYear(c.ReleaseDate, fallback)
}

// Platform infers the collection platform from the reported platform names.
func (c Candidate) Platform() (platform.Platform, bool) {
	return platform.Infer(c.Platforms)
}

// AutofillResult is the metadata used to pre-populate a new collection entry.
type AutofillResult struct {
	Title    string            `json:"title"`
	Platform platform.Platform `json:"platform"`
	Year     int               `json:"year"`
	CoverURL string            `json:"coverUrl"`
}

// ParseReleaseYear reads the year from the first four characters of an
// ISO-like date, returning fallback if they are not a year in range.
func ParseReleaseYear(released string, fallback int) int {
	if len(released) < 4 {
		return fallback
	}
	year, err := strconv.Atoi(released[:4])
	if err != nil || year < MinYear || year > MaxYear {
		return fallback
	}
	return year
}

func candidateFromGame(g rawg.Game) Candidate {
	return Candidate{
		ID:           fmt.Sprintf("%s-%d", rawg.SourceName, g.ID),
		Title:        g.Name,
		ThumbnailURL: g.Image(),
		ReleaseDate:  g.Released,
		Platforms:    g.PlatformNames(),
		Genres:       g.GenreNames(),
		Source:       rawg.SourceName,
	}
}

func candidateFromPage(p wikipedia.Page) Candidate {
	return Candidate{
		ID:           fmt.Sprintf("wiki-%d", p.PageID),
		Title:        p.Title,
		ThumbnailURL: p.ThumbnailURL(),
		ReleaseDate:  "",
		Platforms:    []string{},
		Genres:       []string{},
		Source:       wikipedia.SourceName,
	}
}

// dedupeByThumbnail keeps the first candidate for each thumbnail URL and
// drops candidates without one. Relative order is preserved.
func dedupeByThumbnail(candidates []Candidate) []Candidate {
	seen := make(map[string]bool, len(candidates))
	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.ThumbnailURL == "" || seen[c.ThumbnailURL] {
			continue
		}
		seen[c.ThumbnailURL] = true
		out = append(out, c)
	}
	return out
}

func truncate(candidates []Candidate, limit int) []Candidate {
	if limit >= 0 && len(candidates) > limit {
		return candidates[:limit]
	}
	return candidates
}
