package rawg

// Game is a single record from the RAWG /games search endpoint. Every field
// is optional upstream; zero values mean "not reported".
type Game struct {
	ID                        int            `json:"id"`
	Name                      string         `json:"name"`
	BackgroundImage           string         `json:"background_image"`
	BackgroundImageAdditional string         `json:"background_image_additional"`
	Released                  string         `json:"released"`
	Platforms                 []PlatformSlot `json:"platforms"`
	Genres                    []NamedRef     `json:"genres"`
	Rating                    float64        `json:"rating"`
	RatingsCount              int            `json:"ratings_count"`
	Added                     int            `json:"added"`
	Metacritic                int            `json:"metacritic"`
}

// PlatformSlot wraps the nested platform object RAWG returns per game.
type PlatformSlot struct {
	Platform NamedRef `json:"platform"`
}

// NamedRef is a RAWG reference object of which only the name is used.
type NamedRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// PlatformNames returns the reported platform names in source order.
func (g Game) PlatformNames() []string {
	names := make([]string, 0, len(g.Platforms))
	for _, slot := range g.Platforms {
		if slot.Platform.Name != "" {
			names = append(names, slot.Platform.Name)
		}
	}
	return names
}

// GenreNames returns the reported genre names in source order.
func (g Game) GenreNames() []string {
	names := make([]string, 0, len(g.Genres))
	for _, genre := range g.Genres {
		if genre.Name != "" {
			names = append(names, genre.Name)
		}
	}
	return names
}

// Image returns the best available image: the additional image if present,
// then the primary background image, then "".
func (g Game) Image() string {
	if g.BackgroundImageAdditional != "" {
		return g.BackgroundImageAdditional
	}
	return g.BackgroundImage
}
