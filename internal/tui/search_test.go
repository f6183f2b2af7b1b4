package tui

import (
	"context"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/gameshelf/internal/enrichment"
	"github.com/lepinkainen/gameshelf/internal/platform"
	"github.com/lepinkainen/gameshelf/internal/suggest"
)

type staticResolver struct {
	mu         sync.Mutex
	candidates []enrichment.Candidate
	queries    []string
}

func (r *staticResolver) ResolveCoverOptions(_ context.Context, title string, _ platform.Platform, _ int) []enrichment.Candidate {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, title)
	return r.candidates
}

func newTestSearchModel(t *testing.T, initial suggest.Draft) (*searchModel, *suggest.Driver) {
	t.Helper()
	driver := suggest.New(&staticResolver{}, initial, suggest.WithClock(clockwork.NewFakeClock()))
	t.Cleanup(func() {
		driver.Close()
		driver.Wait()
	})
	return newSearchModel(driver, nil), driver
}

func typeText(m tea.Model, text string) tea.Model {
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestSearchModel_TypingUpdatesDraft(t *testing.T) {
	m, driver := newTestSearchModel(t, suggest.Draft{Platform: platform.PC, Year: 2024})

	typeText(m, "Halo")

	assert.Equal(t, "Halo", m.input.Value())
	assert.Equal(t, "Halo", driver.Draft().Title)
	assert.Equal(t, "Searching...", m.status)
}

func TestSearchModel_TabCyclesPlatform(t *testing.T) {
	m, driver := newTestSearchModel(t, suggest.Draft{Title: "Halo", Platform: platform.PC})
	assert.Equal(t, platform.PC, m.currentPlatform())

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, platform.PS5, m.currentPlatform())
	assert.Equal(t, platform.PS5, driver.Draft().Platform)

	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, platform.Nintendo, m.currentPlatform())
	assert.Contains(t, m.View(), "Platform: < Nintendo >")
}

func TestSearchModel_SuggestionsThenEnterChooses(t *testing.T) {
	m, driver := newTestSearchModel(t, suggest.Draft{Title: "halo", Platform: platform.PS5, Year: 2024})

	m.Update(suggestionsMsg{Title: "halo", Platform: platform.PS5, Candidates: testCandidates()})
	assert.Len(t, m.list.Items(), 2)
	assert.Contains(t, m.status, "2 covers")

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	assert.Equal(t, ActionSelected, m.result.Action)
	require.NotNil(t, m.result.Chosen)
	assert.Equal(t, "rawg-2", m.result.Chosen.ID)
	assert.Equal(t, suggest.Draft{Title: "Halo: Reach", Platform: platform.PS5, Year: 2010, CoverURL: "https://x/hr.jpg"}, m.result.Draft)
	assert.Equal(t, "halo reach", driver.Locked())
}

func TestSearchModel_EnterWithoutSuggestionsKeepsTypedDraft(t *testing.T) {
	m, _ := newTestSearchModel(t, suggest.Draft{Platform: platform.PS2, Year: 2001})
	typeText(m, "Okami")

	m.Update(suggestionsMsg{Title: "Okami", Platform: platform.PS2})
	assert.Contains(t, m.status, "No covers found")

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ActionSelected, m.result.Action)
	assert.Nil(t, m.result.Chosen)
	assert.Equal(t, suggest.Draft{Title: "Okami", Platform: platform.PS2, Year: 2001}, m.result.Draft)
}

func TestSearchModel_EscAndCtrlC(t *testing.T) {
	m, _ := newTestSearchModel(t, suggest.Draft{Title: "Doom", Platform: platform.PC})
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ActionSkipped, m.result.Action)
	assert.Equal(t, "Doom", m.result.Draft.Title)

	m, _ = newTestSearchModel(t, suggest.Draft{Title: "Doom", Platform: platform.PC})
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Equal(t, ActionStopped, m.result.Action)
}

func TestSearch_RunsProgramAndTearsDown(t *testing.T) {
	stubProgram(t, func(m tea.Model) (tea.Model, error) {
		m.Init()
		m = typeText(m, "!")
		return pressKeys(m, tea.KeyMsg{Type: tea.KeyEsc}), nil
	})

	result, err := Search(&staticResolver{}, suggest.Draft{Title: "Celeste", Year: 2018}, suggest.WithClock(clockwork.NewFakeClock()))
	require.NoError(t, err)

	assert.Equal(t, ActionSkipped, result.Action)
	assert.Equal(t, suggest.Draft{Title: "Celeste!", Platform: platform.All[0], Year: 2018}, result.Draft)
}
