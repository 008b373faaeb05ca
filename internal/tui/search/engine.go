// Package search finds text in the conversation transcript.
package search

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// Engine manages search state over a list of lines.
type Engine struct {
	query   string
	matches []int
	index   int
	input   textinput.Model
	active  bool
	content []string
}

// New creates a new search engine.
func New() *Engine {
	ti := textinput.New()
	ti.Placeholder = "Search conversation"
	ti.Prompt = "/ "
	ti.CharLimit = 0
	return &Engine{input: ti}
}

// Activate opens the search input.
func (e *Engine) Activate() tea.Cmd {
	e.active = true
	return e.input.Focus()
}

// Deactivate closes search and forgets the query.
func (e *Engine) Deactivate() {
	e.active = false
	e.input.Blur()
	e.input.Reset()
	e.query = ""
	e.recomputeMatches()
}

// IsActive returns whether search is active.
func (e *Engine) IsActive() bool {
	return e.active
}

// HandleKey processes key input for search.
func (e *Engine) HandleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		e.Deactivate()
		return nil
	case "enter", "down", "ctrl+n":
		e.Next()
		return nil
	case "up", "ctrl+p":
		e.Previous()
		return nil
	}
	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	if e.query != e.input.Value() {
		e.query = e.input.Value()
		e.index = 0
		e.recomputeMatches()
	}
	return cmd
}

// SetContent updates the lines to search through.
func (e *Engine) SetContent(lines []string) {
	e.content = lines
	e.recomputeMatches()
}

// Query returns the current search query.
func (e *Engine) Query() string {
	return e.query
}

func (e *Engine) recomputeMatches() {
	if e.query == "" {
		e.matches = nil
		e.index = 0
		return
	}
	q := strings.ToLower(e.query)
	matches := make([]int, 0, len(e.content))
	for i, line := range e.content {
		if strings.Contains(strings.ToLower(ansi.Strip(line)), q) {
			matches = append(matches, i)
		}
	}
	e.matches = matches
	if e.index >= len(matches) {
		e.index = 0
	}
}

// Next advances to the next match.
func (e *Engine) Next() {
	if len(e.matches) == 0 {
		return
	}
	e.index = (e.index + 1) % len(e.matches)
}

// Previous moves to the previous match.
func (e *Engine) Previous() {
	if len(e.matches) == 0 {
		return
	}
	e.index = (e.index - 1 + len(e.matches)) % len(e.matches)
}

// CurrentMatchLine returns the line index of the current match, or -1.
func (e *Engine) CurrentMatchLine() int {
	if len(e.matches) == 0 {
		return -1
	}
	return e.matches[e.index]
}

// Marked returns the set of matching lines.
func (e *Engine) Marked() map[int]bool {
	if len(e.matches) == 0 {
		return nil
	}
	out := make(map[int]bool, len(e.matches))
	for _, i := range e.matches {
		out[i] = true
	}
	return out
}

// MatchCount returns the number of matches.
func (e *Engine) MatchCount() int {
	return len(e.matches)
}

// CurrentMatchIndex returns the current match index (1-based).
func (e *Engine) CurrentMatchIndex() int {
	if len(e.matches) == 0 {
		return 0
	}
	return e.index + 1
}

// InputView returns the text input view.
func (e *Engine) InputView() string {
	return e.input.View()
}
