package wikipedia

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	gserrors "github.com/lepinkainen/gameshelf/internal/errors"
	"github.com/lepinkainen/gameshelf/internal/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientOptionsApply(t *testing.T) {
	customHTTP := &http.Client{}
	limiter := ratelimit.New("wikipedia", 1)

	client := NewClient(
		WithBaseURL("https://wiki.test/w/api.php/"),
		WithHTTPClient(customHTTP),
		WithUserAgent("tester/0.1"),
		WithThumbnailSize(320),
		WithRateLimiter(limiter),
	)

	assert.Equal(t, "https://wiki.test/w/api.php", client.baseURL)
	assert.Equal(t, customHTTP, client.httpClient)
	assert.Equal(t, "tester/0.1", client.userAgent)
	assert.Equal(t, 320, client.thumbSize)
	assert.Equal(t, limiter, client.rateLimiter)
}

func TestSearch_BuildsQueryAndOrdersByIndex(t *testing.T) {
	var captured url.Values
	var userAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.URL.Query()
		userAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"batchcomplete": "",
			"query": {
				"pages": {
					"9": {"pageid": 9, "index": 2, "title": "Chrono Cross"},
					"7": {
						"pageid": 7,
						"index": 1,
						"title": "Chrono Trigger",
						"thumbnail": {"source": "https://w/c.jpg", "width": 600, "height": 400},
						"categories": [{"ns": 14, "title": "Category:Video games"}, {"ns": 14, "title": "Category:1995 video games"}]
					}
				}
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	pages, err := client.Search(context.Background(), "Chrono Trigger PC video game", 12)
	require.NoError(t, err)
	require.Len(t, pages, 2)

	assert.Equal(t, 7, pages[0].PageID)
	assert.Equal(t, "Chrono Trigger", pages[0].Title)
	assert.Equal(t, "https://w/c.jpg", pages[0].ThumbnailURL())
	assert.Equal(t, "Category:Video games Category:1995 video games", pages[0].CategoryText())
	assert.Equal(t, 9, pages[1].PageID)
	assert.Empty(t, pages[1].ThumbnailURL())
	assert.Empty(t, pages[1].CategoryText())

	assert.Equal(t, "query", captured.Get("action"))
	assert.Equal(t, "search", captured.Get("generator"))
	assert.Equal(t, "Chrono Trigger PC video game", captured.Get("gsrsearch"))
	assert.Equal(t, "12", captured.Get("gsrlimit"))
	assert.Equal(t, "pageimages|categories", captured.Get("prop"))
	assert.Equal(t, "thumbnail", captured.Get("piprop"))
	assert.Equal(t, "600", captured.Get("pithumbsize"))
	assert.Equal(t, "max", captured.Get("cllimit"))
	assert.Equal(t, defaultUserAgent, userAgent)
}

func TestSearch_FillsPageIDFromKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"query":{"pages":{"42":{"title":"Doom","index":1}}}}`))
	}))
	defer server.Close()

	pages, err := NewClient(WithBaseURL(server.URL)).Search(context.Background(), "Doom", 0)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, 42, pages[0].PageID)
}

func TestSearch_NoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"batchcomplete":""}`))
	}))
	defer server.Close()

	pages, err := NewClient(WithBaseURL(server.URL)).Search(context.Background(), "zzzz", 5)
	require.NoError(t, err)
	assert.Empty(t, pages)
}

func TestSearch_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		checkFn func(t *testing.T, err error)
	}{
		{
			name:   "server error",
			status: http.StatusServiceUnavailable,
			body:   "maintenance",
			checkFn: func(t *testing.T, err error) {
				assert.True(t, gserrors.IsUpstreamStatusError(err))
			},
		},
		{
			name:   "rate limited",
			status: http.StatusTooManyRequests,
			checkFn: func(t *testing.T, err error) {
				assert.True(t, gserrors.IsRateLimitError(err))
			},
		},
		{
			name:   "malformed",
			status: http.StatusOK,
			body:   "<html>",
			checkFn: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "decode response")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewClient(WithBaseURL(server.URL)).Search(context.Background(), "x", 3)
			require.Error(t, err)
			tt.checkFn(t, err)
		})
	}
}
