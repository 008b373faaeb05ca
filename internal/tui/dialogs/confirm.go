package dialogs

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/interpretive-systems/studybuddy/internal/theme"
)

// Confirm asks a yes/no question before a destructive action.
type Confirm struct {
	title  string
	detail string
	onYes  func() tea.Cmd
}

// NewConfirm creates the dialog. onYes runs when the user accepts.
func NewConfirm(title, detail string, onYes func() tea.Cmd) *Confirm {
	return &Confirm{title: title, detail: detail, onYes: onYes}
}

func (d *Confirm) Init() tea.Cmd { return nil }

// HandleKey processes keyboard input.
func (d *Confirm) HandleKey(msg tea.KeyMsg) (Action, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		return ActionClose, d.onYes()
	case "n", "N", "esc", "q":
		return ActionClose, nil
	}
	return ActionContinue, nil
}

func (d *Confirm) Update(tea.Msg) tea.Cmd { return nil }

// RenderOverlay renders the dialog.
func (d *Confirm) RenderOverlay(width int, th theme.Theme) []string {
	lines := []string{header(d.title, "y/enter: confirm, n/esc: cancel", th)}
	if d.detail != "" {
		lines = append(lines, th.Muted(d.detail))
	}
	return lines
}

func (d *Confirm) Error() string { return "" }
