package wikipedia

import "strings"

// Page is one page from a generator=search query with pageimages and
// categories properties.
type Page struct {
	PageID     int        `json:"pageid"`
	Index      int        `json:"index"`
	Title      string     `json:"title"`
	Thumbnail  *Thumbnail `json:"thumbnail,omitempty"`
	Categories []Category `json:"categories,omitempty"`
}

// Thumbnail is the page image rendition returned by prop=pageimages.
type Thumbnail struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Category is a single category membership, e.g. "Category:1995 video games".
type Category struct {
	Title string `json:"title"`
}

// ThumbnailURL returns the thumbnail source or "".
func (p Page) ThumbnailURL() string {
	if p.Thumbnail == nil {
		return ""
	}
	return p.Thumbnail.Source
}

// CategoryText joins every category title with spaces.
func (p Page) CategoryText() string {
	titles := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		titles = append(titles, c.Title)
	}
	return strings.Join(titles, " ")
}
