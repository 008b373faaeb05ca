package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/interpretive-systems/studybuddy/internal/theme"
)

func TestLayout_Widths(t *testing.T) {
	l := NewLayout()
	l.SetSize(120, 30)
	l.SetPanels(false, false, 40)
	if l.SidebarWidth() != 28 || l.RightWidth() != 40 {
		t.Fatalf("sidebar %d right %d", l.SidebarWidth(), l.RightWidth())
	}
	if got := l.SidebarWidth() + l.ChatWidth() + l.RightWidth() + 2; got != 120 {
		t.Fatalf("columns add up to %d", got)
	}
	if l.DividerX() != 120-40-1 {
		t.Fatalf("divider at %d", l.DividerX())
	}
	if l.ChatX() != 29 {
		t.Fatalf("chat starts at %d", l.ChatX())
	}
}

func TestLayout_ChatKeepsMinimum(t *testing.T) {
	l := NewLayout()
	l.SetSize(80, 20)
	l.SetPanels(false, false, 90)
	if l.ChatWidth() < minChatWidth {
		t.Fatalf("chat width %d", l.ChatWidth())
	}
}

func TestLayout_Collapsed(t *testing.T) {
	l := NewLayout()
	l.SetSize(100, 20)
	l.SetPanels(true, true, 40)
	if l.SidebarWidth() != 0 || l.RightWidth() != 0 || l.DividerX() != -1 {
		t.Fatal("collapsed panels should take no space")
	}
	if l.ChatWidth() != 100 || l.ChatX() != 0 {
		t.Fatalf("chat width %d x %d", l.ChatWidth(), l.ChatX())
	}
}

func TestLayout_RenderFrame(t *testing.T) {
	l := NewLayout()
	l.SetSize(60, 10)
	l.SetPanels(false, false, 20)
	th := theme.Dark()
	out := l.RenderFrame("left", "right", []string{"side"}, []string{"chat"}, []string{"panel"}, []string{"overlay"}, "status", th)
	lines := strings.Split(ansi.Strip(out), "\n")
	if len(lines) != 10 {
		t.Fatalf("frame has %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "left") || !strings.HasSuffix(lines[0], "right") {
		t.Fatalf("top bar = %q", lines[0])
	}
	if !strings.Contains(lines[2], "side") || !strings.Contains(lines[2], "chat") || !strings.Contains(lines[2], "panel") {
		t.Fatalf("first row = %q", lines[2])
	}
	if strings.TrimSpace(lines[7]) != "overlay" || lines[9] != "status" {
		t.Fatalf("tail = %q", lines[7:])
	}
	for i, line := range lines[:9] {
		if ansi.StringWidth(line) != 60 {
			t.Fatalf("line %d is %d wide", i, ansi.StringWidth(line))
		}
	}
}
