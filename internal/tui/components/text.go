package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Wrap breaks s into lines of at most width columns, preferring word
// boundaries. Existing newlines are kept.
func Wrap(s string, width int) []string {
	if width <= 0 {
		return []string{""}
	}
	wrapped := ansi.Hardwrap(ansi.Wordwrap(s, width, ""), width, true)
	return strings.Split(wrapped, "\n")
}

// PadToWidth pads or truncates s to exactly w columns.
func PadToWidth(s string, w int) string {
	width := lipgloss.Width(s)
	if width == w {
		return s
	}
	if width < w {
		return s + strings.Repeat(" ", w-width)
	}
	return ansi.Truncate(s, w, "…")
}

// Center pads s on both sides to w columns.
func Center(s string, w int) string {
	width := lipgloss.Width(s)
	if width >= w {
		return ansi.Truncate(s, w, "…")
	}
	left := (w - width) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", w-width-left)
}

// Clip keeps at most h lines.
func Clip(lines []string, h int) []string {
	if h < 0 {
		h = 0
	}
	if len(lines) > h {
		return lines[:h]
	}
	return lines
}

// FormatClock renders seconds as m:ss, or h:mm:ss past the hour.
func FormatClock(sec int) string {
	if sec < 0 {
		sec = 0
	}
	h, m, s := sec/3600, (sec/60)%60, sec%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
