package wikipedia

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
)

const categoryLimit = "max"

// Search runs a generator=search query and returns the pages ordered by
// search rank. Thumbnails and categories are requested in the same call.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Page, error) {
	if limit <= 0 {
		limit = 1
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("generator", "search")
	params.Set("gsrsearch", query)
	params.Set("gsrlimit", strconv.Itoa(limit))
	params.Set("prop", "pageimages|categories")
	params.Set("piprop", "thumbnail")
	params.Set("pithumbsize", strconv.Itoa(c.thumbSize))
	params.Set("pilimit", strconv.Itoa(limit))
	params.Set("cllimit", categoryLimit)
	params.Set("redirects", "1")

	endpoint := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	var response struct {
		Query struct {
			Pages map[string]Page `json:"pages"`
		} `json:"query"`
	}

	if err := c.getJSON(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	pages := make([]Page, 0, len(response.Query.Pages))
	for key, page := range response.Query.Pages {
		if page.PageID == 0 {
			if id, err := strconv.Atoi(key); err == nil {
				page.PageID = id
			}
		}
		pages = append(pages, page)
	}

	// The pages object is keyed by id, so restore search rank explicitly.
	sort.SliceStable(pages, func(i, j int) bool {
		if pages[i].Index != pages[j].Index {
			return pages[i].Index < pages[j].Index
		}
		return pages[i].PageID < pages[j].PageID
	})

	return pages, nil
}
