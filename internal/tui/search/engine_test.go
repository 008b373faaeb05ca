package search

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/interpretive-systems/studybuddy/internal/theme"
)

func typeText(e *Engine, s string) {
	for _, r := range s {
		e.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestEngine_FindsCaseInsensitive(t *testing.T) {
	e := New()
	e.Activate()
	e.SetContent([]string{"You", "What is Big-O?", "StudyBuddy", "big-o bounds growth", "unrelated"})
	typeText(e, "BIG")
	if e.MatchCount() != 2 {
		t.Fatalf("matches = %d", e.MatchCount())
	}
	if e.CurrentMatchLine() != 1 {
		t.Fatalf("current = %d", e.CurrentMatchLine())
	}
	e.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if e.CurrentMatchLine() != 3 || e.CurrentMatchIndex() != 2 {
		t.Fatalf("after next: line %d index %d", e.CurrentMatchLine(), e.CurrentMatchIndex())
	}
	e.Next()
	if e.CurrentMatchLine() != 1 {
		t.Fatal("next should wrap")
	}
	e.Previous()
	if e.CurrentMatchLine() != 3 {
		t.Fatal("previous should wrap")
	}
	if m := e.Marked(); !m[1] || !m[3] || m[0] {
		t.Fatalf("marked = %v", m)
	}
}

func TestEngine_EscClears(t *testing.T) {
	e := New()
	e.Activate()
	e.SetContent([]string{"alpha"})
	typeText(e, "al")
	e.HandleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if e.IsActive() || e.Query() != "" || e.MatchCount() != 0 || e.CurrentMatchLine() != -1 {
		t.Fatalf("esc should reset: active=%v query=%q", e.IsActive(), e.Query())
	}
}

func TestEngine_ContentChangeRecomputes(t *testing.T) {
	e := New()
	e.Activate()
	typeText(e, "x")
	e.SetContent([]string{"a", "b"})
	if e.MatchCount() != 0 {
		t.Fatal("no match expected")
	}
	e.SetContent([]string{"x1", "b", "x2"})
	if e.MatchCount() != 2 {
		t.Fatalf("matches = %d", e.MatchCount())
	}
}

func TestRenderOverlay_ShowsPlaceholder(t *testing.T) {
	e := New()
	if lines := e.RenderOverlay(60, theme.Dark()); lines != nil {
		t.Fatalf("inactive overlay rendered %q", lines)
	}
	e.Activate()
	out := ansi.Strip(strings.Join(e.RenderOverlay(60, theme.Dark()), "\n"))
	if !strings.Contains(out, "Search conversation") || !strings.Contains(out, "Type to search") {
		t.Fatalf("overlay = %q", out)
	}
}
