package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lepinkainen/gameshelf/internal/enrichment"
	"github.com/lepinkainen/gameshelf/internal/platform"
	"github.com/lepinkainen/gameshelf/internal/suggest"
)

// SearchResult is the outcome of the live search form.
type SearchResult struct {
	Action SelectionAction
	Draft  suggest.Draft
	// Chosen is set when the user picked a suggestion explicitly.
	Chosen *enrichment.Candidate
}

type suggestionsMsg suggest.Update

type searchModel struct {
	driver      *suggest.Driver
	updates     <-chan suggest.Update
	input       textinput.Model
	list        list.Model
	platformIdx int
	status      string
	result      SearchResult
}

func newSearchModel(driver *suggest.Driver, updates <-chan suggest.Update) *searchModel {
	draft := driver.Draft()

	input := textinput.New()
	input.Placeholder = "Game title"
	input.Prompt = "Title: "
	input.CharLimit = 200
	input.SetValue(draft.Title)
	input.Focus()

	idx := 0
	for i, p := range platform.All {
		if p == draft.Platform {
			idx = i
		}
	}

	return &searchModel{
		driver:      driver,
		updates:     updates,
		input:       input,
		list:        newCandidateList(nil),
		platformIdx: idx,
		status:      "Type a title to look up covers",
		result:      SearchResult{Action: ActionNone},
	}
}

func (m *searchModel) waitForUpdate() tea.Cmd {
	if m.updates == nil {
		return nil
	}
	return func() tea.Msg {
		u, ok := <-m.updates
		if !ok {
			return nil
		}
		return suggestionsMsg(u)
	}
}

func (m *searchModel) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.waitForUpdate()}
	if m.input.Value() != "" {
		m.driver.SetTitle(m.input.Value())
		m.status = "Searching..."
	}
	return tea.Batch(cmds...)
}

func (m *searchModel) currentPlatform() platform.Platform {
	return platform.All[m.platformIdx]
}

func (m *searchModel) cyclePlatform(step int) {
	n := len(platform.All)
	m.platformIdx = ((m.platformIdx+step)%n + n) % n
	m.driver.SetPlatform(m.currentPlatform())
	m.status = "Searching..."
}

func (m *searchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case suggestionsMsg:
		cmd := m.list.SetItems(candidateItems(msg.Candidates))
		m.list.Select(0)
		if len(msg.Candidates) == 0 {
			m.status = fmt.Sprintf("No covers found for %q", msg.Title)
		} else {
			m.status = fmt.Sprintf("%d covers for %q on %s", len(msg.Candidates), msg.Title, msg.Platform)
		}
		return m, tea.Batch(cmd, m.waitForUpdate())

	case tea.WindowSizeMsg:
		resizeList(&m.list, msg, 9)
		m.input.Width = clamp(defaultListWidth, msg.Width-12, 20)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if selected, ok := m.list.SelectedItem().(candidateItem); ok {
				chosen := selected.Candidate
				m.result = SearchResult{
					Action: ActionSelected,
					Draft:  m.driver.Choose(chosen),
					Chosen: &chosen,
				}
				return m, tea.Quit
			}
			m.result = SearchResult{Action: ActionSelected, Draft: m.driver.Draft()}
			return m, tea.Quit
		case "esc":
			m.result = SearchResult{Action: ActionSkipped, Draft: m.driver.Draft()}
			return m, tea.Quit
		case "ctrl+c":
			m.result = SearchResult{Action: ActionStopped, Draft: m.driver.Draft()}
			return m, tea.Quit
		case "tab":
			m.cyclePlatform(1)
			return m, nil
		case "shift+tab":
			m.cyclePlatform(-1)
			return m, nil
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.driver.SetTitle(after)
		m.status = "Searching..."
	}
	return m, cmd
}

func (m *searchModel) View() string {
	header := headerStyle.Render("Add game")
	platformLine := platformStyle.Render(fmt.Sprintf("Platform: < %s >", m.currentPlatform().DisplayName()))
	status := helpStyle.Render(m.status)
	help := helpStyle.Render("Type to search | Tab platform | Up/Down navigate | Enter save | Esc cancel")
	return lipgloss.JoinVertical(lipgloss.Left, header, m.input.View(), platformLine, status, m.list.View(), help)
}

var platformStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("110")).
	Bold(true)

// Search runs the live search form for a new entry. Title and platform edits
// are looked up through resolver after the driver's quiet period; the top
// cover is applied as the user types and Enter saves the highlighted pick.
func Search(resolver suggest.Resolver, initial suggest.Draft, opts ...suggest.Option) (SearchResult, error) {
	if !initial.Platform.Valid() {
		initial.Platform = platform.All[0]
	}

	updates := make(chan suggest.Update)
	done := make(chan struct{})

	opts = append(opts, suggest.OnUpdate(func(u suggest.Update) {
		select {
		case updates <- u:
		case <-done:
		}
	}))
	driver := suggest.New(resolver, initial, opts...)

	finalModel, err := runProgram(newSearchModel(driver, updates))

	close(done)
	driver.Close()
	driver.Wait()
	close(updates)

	if err != nil {
		return SearchResult{}, err
	}
	if typed, ok := finalModel.(*searchModel); ok {
		return typed.result, nil
	}
	return SearchResult{}, fmt.Errorf("unexpected program result")
}
