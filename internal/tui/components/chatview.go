package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/interpretive-systems/studybuddy/internal/theme"
	"github.com/interpretive-systems/studybuddy/internal/types"
)

type lineKind int

const (
	lineBlank lineKind = iota
	lineUser
	lineAssistant
	lineBody
	lineTyping
)

// ChatView renders a conversation in a scrollable viewport.
type ChatView struct {
	viewport viewport.Model
	spinner  spinner.Model
	plain    []string
	kinds    []lineKind
	typing   bool
}

// NewChatView creates an empty chat view.
func NewChatView() *ChatView {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return &ChatView{viewport: viewport.New(0, 0), spinner: sp}
}

// SetSize updates the viewport dimensions.
func (c *ChatView) SetSize(width, height int) {
	c.viewport.Width = width
	c.viewport.Height = height
}

// Width returns the viewport width.
func (c *ChatView) Width() int { return c.viewport.Width }

// SetMessages lays out msgs for the current width. Plain lines are kept for
// searching.
func (c *ChatView) SetMessages(msgs []types.ChatMessage) {
	width := max(c.viewport.Width-2, 10)
	c.plain = c.plain[:0]
	c.kinds = c.kinds[:0]
	c.typing = false
	add := func(k lineKind, s string) {
		c.plain = append(c.plain, s)
		c.kinds = append(c.kinds, k)
	}
	for i, m := range msgs {
		if i > 0 {
			add(lineBlank, "")
		}
		if m.Role == types.RoleUser {
			add(lineUser, "You")
		} else {
			add(lineAssistant, "StudyBuddy")
		}
		if m.IsTyping {
			c.typing = true
			add(lineTyping, "Thinking…")
			continue
		}
		for _, l := range Wrap(m.Content, width) {
			add(lineBody, l)
		}
	}
}

// Lines returns the unstyled transcript lines.
func (c *ChatView) Lines() []string { return c.plain }

// Typing reports whether a reply placeholder is shown.
func (c *ChatView) Typing() bool { return c.typing }

// Render styles the transcript into the viewport. Lines in marked are
// highlighted and current is the focused match, -1 for none.
func (c *ChatView) Render(th theme.Theme, marked map[int]bool, current int) {
	out := make([]string, len(c.plain))
	for i, l := range c.plain {
		switch c.kinds[i] {
		case lineUser:
			l = th.AccentText(l)
		case lineAssistant:
			l = th.Title(l)
		case lineTyping:
			l = c.spinner.View() + " " + th.Muted(l)
		case lineBody:
			switch {
			case i == current:
				l = th.SelectedLine(l)
			case marked[i]:
				l = th.AccentText(l)
			default:
				l = th.Primary(l)
			}
		}
		out[i] = " " + l
	}
	atBottom := c.viewport.AtBottom()
	c.viewport.SetContent(strings.Join(out, "\n"))
	if atBottom {
		c.viewport.GotoBottom()
	}
}

// ShowLine scrolls so that line i is visible.
func (c *ChatView) ShowLine(i int) {
	if i < c.viewport.YOffset || i >= c.viewport.YOffset+c.viewport.Height {
		c.viewport.SetYOffset(max(i-c.viewport.Height/2, 0))
	}
}

// SpinnerTick returns the command that animates the typing indicator.
func (c *ChatView) SpinnerTick() tea.Cmd { return c.spinner.Tick }

// UpdateSpinner advances the typing indicator. It returns nil once nothing is
// typing so the animation stops.
func (c *ChatView) UpdateSpinner(msg spinner.TickMsg) tea.Cmd {
	if !c.typing {
		return nil
	}
	var cmd tea.Cmd
	c.spinner, cmd = c.spinner.Update(msg)
	return cmd
}

func (c *ChatView) ScrollUp(n int)   { c.viewport.LineUp(n) }
func (c *ChatView) ScrollDown(n int) { c.viewport.LineDown(n) }
func (c *ChatView) HalfPageUp()      { c.viewport.HalfPageUp() }
func (c *ChatView) HalfPageDown()    { c.viewport.HalfPageDown() }
func (c *ChatView) GotoBottom()      { c.viewport.GotoBottom() }

// View returns the viewport view.
func (c *ChatView) View() string {
	return c.viewport.View()
}

// Height returns the viewport height.
func (c *ChatView) Height() int { return c.viewport.Height }
