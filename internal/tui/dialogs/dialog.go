// Package dialogs holds the modal overlays of the terminal UI.
package dialogs

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/interpretive-systems/studybuddy/internal/theme"
)

// Action represents what the dialog wants the parent to do.
type Action int

const (
	ActionContinue Action = iota // Keep the dialog open
	ActionClose                  // Close the dialog
)

// Dialog is the interface all dialogs implement.
type Dialog interface {
	// Init resets the dialog for a fresh opening.
	Init() tea.Cmd

	// HandleKey processes keyboard input.
	HandleKey(msg tea.KeyMsg) (Action, tea.Cmd)

	// Update processes other messages (cursor blink).
	Update(msg tea.Msg) tea.Cmd

	// RenderOverlay returns the dialog lines.
	RenderOverlay(width int, th theme.Theme) []string

	// Error returns the message shown under the dialog, if any.
	Error() string
}

func header(title, hint string, th theme.Theme) string {
	return th.Title(title) + th.Muted("  ("+hint+")")
}

func errorLine(err string, th theme.Theme) []string {
	if err == "" {
		return nil
	}
	return []string{th.ErrorText("Error: ") + err}
}

// fitInput sizes a text input to the overlay width. A zero width makes the
// input cut its placeholder to one character.
func fitInput(in *textinput.Model, width int) {
	in.Width = max(width-lipgloss.Width(in.Prompt)-1, 1)
}
