package search

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/interpretive-systems/studybuddy/internal/theme"
)

// RenderOverlay renders the search bar.
func (e *Engine) RenderOverlay(width int, th theme.Theme) []string {
	if !e.active || width <= 0 {
		return nil
	}
	e.input.Width = max(width-lipgloss.Width(e.input.Prompt)-1, 1)
	status := "Type to search (esc: close)"
	if e.query != "" {
		if len(e.matches) == 0 {
			status = "No matches (esc: close)"
		} else {
			status = fmt.Sprintf("Match %d of %d  (enter/↓: next, ↑: prev, esc: close)",
				e.CurrentMatchIndex(), e.MatchCount())
		}
	}
	return []string{
		th.DividerText(strings.Repeat("─", width)),
		e.InputView(),
		lipgloss.NewStyle().Faint(true).Render(status),
	}
}
