package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/interpretive-systems/studybuddy/internal/theme"
	"github.com/interpretive-systems/studybuddy/internal/tui/components"
)

const (
	sidebarWidth = 28
	minChatWidth = 24
)

// Layout manages screen layout calculations. The screen is split into the
// course sidebar, the chat column and the right panel.
type Layout struct {
	width            int
	height           int
	panelWidth       int
	sidebarCollapsed bool
	rightCollapsed   bool
}

// NewLayout creates a new layout manager.
func NewLayout() *Layout {
	return &Layout{}
}

// SetSize updates the layout dimensions.
func (l *Layout) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// SetPanels updates which side columns are shown and the right panel width.
func (l *Layout) SetPanels(sidebarCollapsed, rightCollapsed bool, panelWidth int) {
	l.sidebarCollapsed = sidebarCollapsed
	l.rightCollapsed = rightCollapsed
	l.panelWidth = panelWidth
}

// Width returns the total width.
func (l *Layout) Width() int {
	return l.width
}

// Height returns the total height.
func (l *Layout) Height() int {
	return l.height
}

// SidebarWidth returns the sidebar width, 0 when collapsed.
func (l *Layout) SidebarWidth() int {
	if l.sidebarCollapsed {
		return 0
	}
	return min(sidebarWidth, max(l.width/4, 12))
}

// RightWidth returns the right panel width, 0 when collapsed. The chat
// column keeps at least minChatWidth columns.
func (l *Layout) RightWidth() int {
	if l.rightCollapsed {
		return 0
	}
	avail := l.width - l.dividers() - l.SidebarWidth() - minChatWidth
	return max(min(l.panelWidth, avail), 0)
}

// ChatWidth returns what remains for the chat column.
func (l *Layout) ChatWidth() int {
	return max(l.width-l.SidebarWidth()-l.RightWidth()-l.dividers(), 1)
}

// DividerX returns the column of the divider left of the right panel, -1
// when the panel is hidden.
func (l *Layout) DividerX() int {
	if l.RightWidth() == 0 {
		return -1
	}
	return l.width - l.RightWidth() - 1
}

// ChatX returns the first column of the chat area.
func (l *Layout) ChatX() int {
	if l.SidebarWidth() == 0 {
		return 0
	}
	return l.SidebarWidth() + 1
}

func (l *Layout) dividers() int {
	n := 0
	if !l.sidebarCollapsed {
		n++
	}
	if !l.rightCollapsed {
		n++
	}
	return n
}

// ContentHeight returns the height available for the columns.
func (l *Layout) ContentHeight(overlayHeight int) int {
	// top bar + top rule + bottom rule + bottom bar + overlays
	return max(l.height-4-overlayHeight, 1)
}

// RenderFrame renders the top bar, the three columns, an optional overlay
// and the bottom bar.
func (l *Layout) RenderFrame(
	topLeft, topRight string,
	sidebar, chat, right []string,
	overlay []string,
	bottomBar string,
	th theme.Theme,
) string {
	var b strings.Builder
	b.WriteString(l.renderTopBar(topLeft, topRight))
	b.WriteByte('\n')
	b.WriteString(th.DividerText(strings.Repeat("─", l.width)))
	b.WriteByte('\n')

	sideW, chatW, rightW := l.SidebarWidth(), l.ChatWidth(), l.RightWidth()
	sep := th.DividerText("│")
	rows := l.ContentHeight(len(overlay))
	for i := 0; i < rows; i++ {
		if sideW > 0 {
			b.WriteString(components.PadToWidth(lineAt(sidebar, i), sideW))
			b.WriteString(sep)
		}
		b.WriteString(components.PadToWidth(lineAt(chat, i), chatW))
		if rightW > 0 {
			b.WriteString(sep)
			b.WriteString(components.PadToWidth(lineAt(right, i), rightW))
		}
		if i < rows-1 {
			b.WriteByte('\n')
		}
	}

	if len(overlay) > 0 {
		b.WriteByte('\n')
		for i, line := range overlay {
			b.WriteString(components.PadToWidth(line, l.width))
			if i < len(overlay)-1 {
				b.WriteByte('\n')
			}
		}
	}

	b.WriteByte('\n')
	b.WriteString(th.DividerText(strings.Repeat("─", l.width)))
	b.WriteByte('\n')
	b.WriteString(bottomBar)
	return b.String()
}

func lineAt(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}

func (l *Layout) renderTopBar(left, right string) string {
	rightW := lipgloss.Width(right)
	if rightW >= l.width {
		return ansi.Truncate(right, l.width, "…")
	}
	avail := l.width - rightW - 1
	if lipgloss.Width(left) > avail {
		left = ansi.Truncate(left, avail, "…")
	} else if lipgloss.Width(left) < avail {
		left += strings.Repeat(" ", avail-lipgloss.Width(left))
	}
	return left + " " + right
}
