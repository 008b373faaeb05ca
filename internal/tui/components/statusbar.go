package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/interpretive-systems/studybuddy/internal/notify"
	"github.com/interpretive-systems/studybuddy/internal/theme"
)

// StatusBar manages the bottom status bar.
type StatusBar struct {
	keyBuffer string
	toast     *notify.Notification
	right     string
}

// NewStatusBar creates a new status bar.
func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// SetKeyBuffer updates the pending count display.
func (s *StatusBar) SetKeyBuffer(buf string) {
	s.keyBuffer = buf
}

// SetToast shows n in place of the hint; nil clears it.
func (s *StatusBar) SetToast(n *notify.Notification) {
	s.toast = n
}

// SetRight updates the right-hand text.
func (s *StatusBar) SetRight(text string) {
	s.right = text
}

// Render renders the status bar.
func (s *StatusBar) Render(width int, th theme.Theme) string {
	var left string
	switch {
	case s.toast != nil:
		text := s.toast.Title
		if s.toast.Description != "" {
			text += ": " + s.toast.Description
		}
		if s.toast.Variant == notify.VariantDestructive {
			left = th.ErrorText("✗ " + text)
		} else {
			left = th.AccentText("✓ " + text)
		}
	case s.keyBuffer != "":
		left = lipgloss.NewStyle().Faint(true).Render(s.keyBuffer)
	default:
		left = lipgloss.NewStyle().Faint(true).Render("?: help  esc: leave input  i: type")
	}
	right := lipgloss.NewStyle().Faint(true).Render(s.right)

	// Keep the right part visible.
	rightW := lipgloss.Width(right)
	if rightW >= width {
		return ansi.Truncate(right, width, "…")
	}
	avail := width - rightW - 1
	if lipgloss.Width(left) > avail {
		left = ansi.Truncate(left, avail, "…")
	} else if lipgloss.Width(left) < avail {
		left += strings.Repeat(" ", avail-lipgloss.Width(left))
	}
	return left + " " + right
}
