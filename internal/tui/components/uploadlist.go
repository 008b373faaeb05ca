package components

import (
	"fmt"

	"github.com/interpretive-systems/studybuddy/internal/theme"
	"github.com/interpretive-systems/studybuddy/internal/types"
)

// RenderUploadQueue draws the pending files above the chat input. It returns
// nothing when there is nothing to show.
func RenderUploadQueue(files []types.UploadedFile, dragging, uploading bool, width int, th theme.Theme) []string {
	if len(files) == 0 && !dragging {
		return nil
	}
	lines := make([]string, 0, len(files)+2)
	switch {
	case dragging:
		lines = append(lines, PadToWidth(th.Button("Drop files here to upload"), width))
	case uploading:
		lines = append(lines, th.AccentText(fmt.Sprintf(" Uploading %d file(s)…", len(files))))
	default:
		lines = append(lines, th.Title(fmt.Sprintf(" Files to upload (%d)", len(files)))+
			th.Muted("  U: upload  [n]x: remove  X: clear"))
	}
	for i, f := range files {
		lines = append(lines, PadToWidth(fmt.Sprintf("  %d. %s  %s", i+1, f.Name, th.Muted(humanSize(len(f.Data)))), width))
	}
	return lines
}

func humanSize(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
