package enrichment

import (
	"math"
	"strings"

	"github.com/lepinkainen/gameshelf/internal/platform"
	"github.com/lepinkainen/gameshelf/internal/rawg"
	"github.com/lepinkainen/gameshelf/internal/wikipedia"
)

const (
	exactTitleBonus     = 100
	prefixTitleBonus    = 70
	substringTitleBonus = 45
	platformBonus       = 25
	categoryBonus       = 25
	imageBonus          = 10

	ratingsCountDivisor = 200
	ratingsCountCap     = 30
	addedDivisor        = 400
	addedCap            = 20
	metacriticDivisor   = 4
	metacriticCap       = 25
	ratingMultiplier    = 2
	ratingCap           = 10
)

// signals is the source-independent view of a result that scoring needs.
// Text fields are already normalized.
type signals struct {
	title        string
	platformText string
	categoryText string
	hasImage     bool

	// Popularity, primary source only.
	ratingsCount int
	added        int
	metacritic   int
	rating       float64
}

// ScoreGame scores a primary-source record against the query. Higher is better.
func ScoreGame(g rawg.Game, queryTitle string, p platform.Platform) float64 {
	return score(signals{
		title:        Normalize(g.Name),
		platformText: Normalize(strings.Join(g.PlatformNames(), " ")),
		hasImage:     g.Image() != "",
		ratingsCount: g.RatingsCount,
		added:        g.Added,
		metacritic:   g.Metacritic,
		rating:       g.Rating,
	}, queryTitle, p)
}

// ScorePage scores a fallback-source page against the query. Category text
// doubles as the platform text since the fallback has no platform list.
func ScorePage(page wikipedia.Page, queryTitle string, p platform.Platform) float64 {
	categories := Normalize(page.CategoryText())
	return score(signals{
		title:        Normalize(StripParenthetical(page.Title)),
		platformText: categories,
		categoryText: categories,
		hasImage:     page.ThumbnailURL() != "",
	}, queryTitle, p)
}

func score(s signals, queryTitle string, p platform.Platform) float64 {
	query := Normalize(queryTitle)
	total := titleScore(s.title, query)

	if matchesPlatform(s.platformText, p) {
		total += platformBonus
	}
	if strings.Contains(s.categoryText, "video games") {
		total += categoryBonus
	}
	if s.hasImage {
		total += imageBonus
	}

	total += capped(float64(s.ratingsCount)/ratingsCountDivisor, ratingsCountCap)
	total += capped(float64(s.added)/addedDivisor, addedCap)
	total += capped(float64(s.metacritic)/metacriticDivisor, metacriticCap)
	total += capped(s.rating*ratingMultiplier, ratingCap)

	return total
}

func titleScore(title, query string) float64 {
	switch {
	case query == "":
		return 0
	case title == query:
		return exactTitleBonus
	case strings.HasPrefix(title, query):
		return prefixTitleBonus
	case strings.Contains(title, query):
		return substringTitleBonus
	default:
		return 0
	}
}

func matchesPlatform(normalizedText string, p platform.Platform) bool {
	if normalizedText == "" {
		return false
	}
	for _, keyword := range platform.Keywords(p) {
		if kw := Normalize(keyword); kw != "" && strings.Contains(normalizedText, kw) {
			return true
		}
	}
	return false
}

func capped(value, limit float64) float64 {
	if value <= 0 {
		return 0
	}
	return math.Min(value, limit)
}
