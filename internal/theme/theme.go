// Package theme holds the two colour schemes of the terminal UI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme is a colour scheme. Colours are hex strings.
type Theme struct {
	Name          string
	Background    string
	Panel         string
	Card          string
	Border        string
	PrimaryText   string
	SecondaryText string
	Accent        string
	AccentHover   string
	Hover         string
	Selected      string
	ButtonIcon    string
	Destructive   string
}

// Dark is the night scheme.
func Dark() Theme {
	return Theme{
		Name:          "dark",
		Background:    "#1a1f2e",
		Panel:         "#242938",
		Card:          "#2d3748",
		Border:        "#3d4556",
		PrimaryText:   "#e8eaed",
		SecondaryText: "#9ca3af",
		Accent:        "#7dd3fc",
		AccentHover:   "#38bdf8",
		Hover:         "#3d4556",
		Selected:      "#7dd3fc",
		ButtonIcon:    "#1a1f2e",
		Destructive:   "#f87171",
	}
}

// Light is the paper scheme.
func Light() Theme {
	return Theme{
		Name:          "light",
		Background:    "#f5f1e8",
		Panel:         "#faf8f3",
		Card:          "#ffffff",
		Border:        "#e8dcc8",
		PrimaryText:   "#5a4a3a",
		SecondaryText: "#8b7355",
		Accent:        "#a67c52",
		AccentHover:   "#8b6a47",
		Hover:         "#f0e6d2",
		Selected:      "#a67c52",
		ButtonIcon:    "#faf8f3",
		Destructive:   "#b91c1c",
	}
}

// For picks the scheme for the dark mode flag.
func For(dark bool) Theme {
	if dark {
		return Dark()
	}
	return Light()
}

func (t Theme) fg(c string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

func (t Theme) DividerText(s string) string { return t.fg(t.Border).Render(s) }
func (t Theme) Primary(s string) string     { return t.fg(t.PrimaryText).Render(s) }
func (t Theme) Muted(s string) string       { return t.fg(t.SecondaryText).Render(s) }
func (t Theme) AccentText(s string) string  { return t.fg(t.Accent).Render(s) }
func (t Theme) ErrorText(s string) string   { return t.fg(t.Destructive).Render(s) }

// Title renders a bold section heading.
func (t Theme) Title(s string) string {
	return t.fg(t.PrimaryText).Bold(true).Render(s)
}

// SelectedLine renders a highlighted row.
func (t Theme) SelectedLine(s string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.ButtonIcon)).
		Background(lipgloss.Color(t.Selected)).
		Render(s)
}

// Button renders an accent-filled label.
func (t Theme) Button(s string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.ButtonIcon)).
		Background(lipgloss.Color(t.Accent)).
		Padding(0, 1).
		Render(s)
}
