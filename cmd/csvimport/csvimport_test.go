package csvimport

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/gameshelf/internal/datastore"
	"github.com/lepinkainen/gameshelf/internal/enrichment"
	"github.com/lepinkainen/gameshelf/internal/platform"
	"github.com/lepinkainen/gameshelf/internal/testutil"
)

type fakeAutofiller struct {
	results map[string]enrichment.AutofillResult
	calls   []string
}

func (f *fakeAutofiller) ResolveAutofill(_ context.Context, title string, p platform.Platform, year int) enrichment.AutofillResult {
	f.calls = append(f.calls, title)
	if r, ok := f.results[title]; ok {
		return r
	}
	return enrichment.AutofillResult{Title: title, Platform: p, Year: year}
}

func setup(t *testing.T) (*testutil.TestEnv, *fakeAutofiller) {
	t.Helper()
	env := testutil.NewTestEnv(t)
	testutil.SetTestConfig(t, env)

	fake := &fakeAutofiller{results: map[string]enrichment.AutofillResult{}}
	origAutofiller, origNow := newAutofiller, now
	t.Cleanup(func() { newAutofiller, now = origAutofiller, origNow })
	newAutofiller = func() Autofiller { return fake }
	now = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }

	return env, fake
}

func listGames(t *testing.T, path string) []datastore.GameRecord {
	t.Helper()
	store := datastore.NewSQLiteStore(path)
	require.NoError(t, store.Open())
	defer func() { _ = store.Close() }()

	games, err := store.ListGames(context.Background(), datastore.ListFilter{})
	require.NoError(t, err)
	return games
}

func TestImport(t *testing.T) {
	env, fake := setup(t)
	fake.results["hades"] = enrichment.AutofillResult{
		Title: "Hades", Platform: platform.Nintendo, Year: 2020, CoverURL: "https://media.example/hades.jpg",
	}
	env.WriteFileString("games.csv", `title,platform,year,completed,rating,cover
Celeste,PC,2018,yes,5,https://img.example/celeste.png
hades,PC,,true,4,
Broken,Dreamcast,2000,no,1,
Bad Year,PC,20x5,no,1,
Too Good,PS5,2021,no,9,https://img.example/x.png
`)

	summary, err := Import(context.Background(), Options{Input: env.Path("games.csv"), DBPath: env.Path("games.db")})
	require.NoError(t, err)

	assert.Equal(t, Summary{Read: 3, Added: 2, Autofills: 1, Failed: 1}, summary)
	assert.Equal(t, []string{"hades"}, fake.calls)

	games := listGames(t, env.Path("games.db"))
	require.Len(t, games, 2)
	assert.Equal(t, "Celeste", games[0].Title)
	assert.True(t, games[0].Completed)
	assert.Equal(t, "Hades", games[1].Title)
	assert.Equal(t, platform.Nintendo, games[1].Platform)
	assert.Equal(t, "https://media.example/hades.jpg", games[1].CoverURL)
}

func TestImportNoAutofill(t *testing.T) {
	env, fake := setup(t)
	env.WriteFileString("games.csv", "title,platform\nCeleste,PC\n")

	summary, err := Import(context.Background(), Options{Input: env.Path("games.csv"), DBPath: env.Path("games.db"), NoAutofill: true})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Added)
	assert.Empty(t, fake.calls)

	games := listGames(t, env.Path("games.db"))
	require.Len(t, games, 1)
	assert.Equal(t, 2025, games[0].Year)
	assert.Empty(t, games[0].CoverURL)
}

func TestImportRequiresInput(t *testing.T) {
	setup(t)

	_, err := Import(context.Background(), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input CSV file is required")
}

func TestImportMissingTitleColumn(t *testing.T) {
	env, _ := setup(t)
	env.WriteFileString("games.csv", "name,platform\nCeleste,PC\n")

	_, err := Import(context.Background(), Options{Input: env.Path("games.csv"), DBPath: env.Path("games.db")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required column")
}

func TestParseBool(t *testing.T) {
	for _, v := range []string{"yes", "TRUE", "1", "x"} {
		got, err := parseBool(v)
		require.NoError(t, err)
		assert.True(t, got, v)
	}
	got, err := parseBool("No")
	require.NoError(t, err)
	assert.False(t, got)

	_, err = parseBool("maybe")
	assert.Error(t, err)
}
