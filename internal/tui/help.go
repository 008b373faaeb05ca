package tui

import (
	"strings"
	"time"

	"github.com/interpretive-systems/studybuddy/internal/theme"
	"github.com/interpretive-systems/studybuddy/internal/tui/components"
)

var helpKeys = []string{
	"i / tab        Type a message (esc leaves)",
	"j/k, g/G       Move in the course list",
	"enter          Open course or topic",
	"n / D          New / delete course",
	"m              Manage materials",
	"a / U          Add files / upload queue",
	"[n]x / X       Remove file / clear queue",
	"/              Search the conversation",
	"y / c          Copy answer / clear chat",
	"J/K, ctrl+e/y  Scroll the conversation",
	"b / p          Toggle sidebar / right panel",
	"s / v          Toggle slides / clip",
	"< / >          Widen / narrow right panel",
	"[ / ]          Previous / next slide page",
	"space  , / .   Play/pause, skip 10s",
	"Y / r / V      Copy clip URL, reload, delete",
	"t              Toggle dark mode",
	"q              Quit",
}

// helpLines returns the help overlay. Keys are set in two columns when the
// terminal is wide enough.
func helpLines(width int, th theme.Theme) []string {
	lines := []string{
		th.DividerText(strings.Repeat("─", width)),
		th.Title("Help") + th.Muted("  (press ? or esc to close)"),
	}
	const col = 46
	if width < 2*col {
		return append(lines, helpKeys...)
	}
	half := (len(helpKeys) + 1) / 2
	for i := 0; i < half; i++ {
		row := components.PadToWidth(helpKeys[i], col)
		if j := i + half; j < len(helpKeys) {
			row += helpKeys[j]
		}
		lines = append(lines, row)
	}
	return lines
}

// timeCount converts a repeat count into a duration multiplier.
func timeCount(n int) time.Duration {
	return time.Duration(max(n, 1))
}
