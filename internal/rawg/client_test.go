package rawg

import (
	"net/http"
	"testing"

	"github.com/lepinkainen/gameshelf/internal/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientOptionsApply(t *testing.T) {
	customHTTP := &http.Client{}
	limiter := ratelimit.New("rawg", 2)

	client := NewClient(
		" key ",
		WithBaseURL("https://example.test/"),
		WithHTTPClient(customHTTP),
		WithRateLimiter(limiter),
	)

	require.Equal(t, "https://example.test", client.baseURL)
	require.Equal(t, customHTTP, client.httpClient)
	require.Equal(t, limiter, client.rateLimiter)
	require.Equal(t, "key", client.apiKey)
}

func TestNilOptionsKeepDefaults(t *testing.T) {
	client := NewClient("key", WithHTTPClient(nil), WithRateLimiter(nil), WithBaseURL(""))

	assert.Equal(t, defaultBaseURL, client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.NotNil(t, client.rateLimiter)
}

func TestConfigured(t *testing.T) {
	assert.True(t, NewClient("abc").Configured())
	assert.False(t, NewClient("   ").Configured())

	var nilClient *Client
	assert.False(t, nilClient.Configured())
}

func TestGameHelpers(t *testing.T) {
	game := Game{
		BackgroundImage: "https://x/bg.jpg",
		Platforms: []PlatformSlot{
			{Platform: NamedRef{Name: "PC"}},
			{Platform: NamedRef{Name: ""}},
			{Platform: NamedRef{Name: "PlayStation 5"}},
		},
		Genres: []NamedRef{{Name: "Action"}, {Name: "RPG"}},
	}

	assert.Equal(t, []string{"PC", "PlayStation 5"}, game.PlatformNames())
	assert.Equal(t, []string{"Action", "RPG"}, game.GenreNames())
	assert.Equal(t, "https://x/bg.jpg", game.Image())

	game.BackgroundImageAdditional = "https://x/extra.jpg"
	assert.Equal(t, "https://x/extra.jpg", game.Image())

	assert.Empty(t, Game{}.Image())
	assert.Empty(t, Game{}.PlatformNames())
}
