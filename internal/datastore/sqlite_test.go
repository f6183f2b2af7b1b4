package datastore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/gameshelf/internal/platform"
)

var testNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func openTestStore(t *testing.T) (*SQLiteStore, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(testNow)
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "games.db")).WithClock(clock)
	require.NoError(t, store.Open())
	t.Cleanup(func() { _ = store.Close() })
	return store, clock
}

func TestSQLiteStore_AddAndGet(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	added, err := store.AddGame(ctx, GameRecord{
		Title:     "Chrono Trigger",
		Platform:  platform.PS1,
		Year:      1999,
		Completed: true,
		CoverURL:  "https://w/c.jpg",
		Rating:    5,
	})
	require.NoError(t, err)
	assert.NotZero(t, added.ID)
	assert.Equal(t, testNow, added.CreatedAt)
	assert.Equal(t, testNow, added.UpdatedAt)

	got, err := store.GetGame(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, added, got)
}

func TestSQLiteStore_AddRejectsInvalid(t *testing.T) {
	store, _ := openTestStore(t)

	_, err := store.AddGame(context.Background(), GameRecord{Title: "", Platform: "Dreamcast", Year: 1999})
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)

	games, err := store.ListGames(context.Background(), ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestSQLiteStore_Update(t *testing.T) {
	store, clock := openTestStore(t)
	ctx := context.Background()

	added, err := store.AddGame(ctx, GameRecord{Title: "Halo", Platform: platform.PC, Year: 2001})
	require.NoError(t, err)

	clock.Advance(time.Hour)
	added.Completed = true
	added.Rating = 4
	added.CoverURL = "https://x/h.jpg"
	updated, err := store.UpdateGame(ctx, added)
	require.NoError(t, err)
	assert.Equal(t, testNow, updated.CreatedAt)
	assert.Equal(t, testNow.Add(time.Hour), updated.UpdatedAt)

	got, err := store.GetGame(ctx, added.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)
	assert.Equal(t, 4, got.Rating)
	assert.Equal(t, "https://x/h.jpg", got.CoverURL)
	assert.Equal(t, testNow.Add(time.Hour), got.UpdatedAt)
}

func TestSQLiteStore_UpdateMissing(t *testing.T) {
	store, _ := openTestStore(t)

	_, err := store.UpdateGame(context.Background(), GameRecord{ID: 42, Title: "Halo", Platform: platform.PC, Year: 2001})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore_Delete(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	added, err := store.AddGame(ctx, GameRecord{Title: "Doom", Platform: platform.PC, Year: 1993})
	require.NoError(t, err)

	require.NoError(t, store.DeleteGame(ctx, added.ID))
	_, err = store.GetGame(ctx, added.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.DeleteGame(ctx, added.ID), ErrNotFound)
}

func TestSQLiteStore_ListFilters(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	for _, g := range []GameRecord{
		{Title: "zelda", Platform: platform.Nintendo, Year: 2017, Completed: true},
		{Title: "Astro Bot", Platform: platform.PS5, Year: 2024},
		{Title: "Metroid Dread", Platform: platform.Nintendo, Year: 2021},
	} {
		_, err := store.AddGame(ctx, g)
		require.NoError(t, err)
	}

	all, err := store.ListGames(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"Astro Bot", "Metroid Dread", "zelda"}, titles(all))

	nintendo, err := store.ListGames(ctx, ListFilter{Platform: platform.Nintendo})
	require.NoError(t, err)
	assert.Equal(t, []string{"Metroid Dread", "zelda"}, titles(nintendo))

	pending := false
	notDone, err := store.ListGames(ctx, ListFilter{Platform: platform.Nintendo, Completed: &pending})
	require.NoError(t, err)
	assert.Equal(t, []string{"Metroid Dread"}, titles(notDone))
}

func TestPublish_ToSQLiteFile(t *testing.T) {
	source, _ := openTestStore(t)
	ctx := context.Background()
	_, err := source.AddGame(ctx, GameRecord{Title: "Okami", Platform: platform.PS2, Year: 2006, CoverURL: "https://w/o.jpg"})
	require.NoError(t, err)
	games, err := source.ListGames(ctx, ListFilter{})
	require.NoError(t, err)

	target := NewSQLiteStore(filepath.Join(t.TempDir(), "published.db"))
	require.NoError(t, target.Connect())
	defer func() { _ = target.Close() }()

	require.NoError(t, Publish(target, "gameshelf", games))
	// Publishing twice replaces rows by id.
	require.NoError(t, Publish(target, "gameshelf", games))

	published, err := target.ListGames(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, games[0], published[0])
}

func TestBatchInsert_Empty(t *testing.T) {
	store, _ := openTestStore(t)
	assert.NoError(t, store.BatchInsert("gameshelf", GamesTable, nil))
}

func titles(games []GameRecord) []string {
	out := make([]string, len(games))
	for i, g := range games {
		out[i] = g.Title
	}
	return out
}
