package rawg

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

// ErrNotConfigured is returned by SearchGames when no API key is set.
var ErrNotConfigured = errors.New("rawg: api key not configured")

// SearchGames queries /games for title, requesting pageSize results ordered by
// popularity with fuzzy matching enabled. Results are returned in API order.
func (c *Client) SearchGames(ctx context.Context, title string, pageSize int) ([]Game, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	if pageSize <= 0 {
		pageSize = 1
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("search", title)
	params.Set("page_size", strconv.Itoa(pageSize))
	params.Set("ordering", "-added")
	params.Set("search_precise", "false")

	endpoint := fmt.Sprintf("%s/games?%s", c.baseURL, params.Encode())

	var response struct {
		Count   int    `json:"count"`
		Results []Game `json:"results"`
	}

	if err := c.getJSON(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	return response.Results, nil
}
