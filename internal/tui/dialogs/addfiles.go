package dialogs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/interpretive-systems/studybuddy/internal/theme"
	"github.com/interpretive-systems/studybuddy/internal/types"
	"github.com/interpretive-systems/studybuddy/internal/uploadq"
)

// FileQueue accepts files for upload.
type FileQueue interface {
	EnqueueFiles(files ...types.UploadedFile) bool
}

// AddFiles reads file paths and queues them for upload.
type AddFiles struct {
	queue FileQueue
	input textinput.Model
	err   string
	load  func(paths ...string) ([]types.UploadedFile, error)
}

// NewAddFiles creates the dialog.
func NewAddFiles(q FileQueue) *AddFiles {
	ti := textinput.New()
	ti.Placeholder = "~/notes/week1.pdf ~/notes/week2.pdf"
	ti.Prompt = "> "
	ti.CharLimit = 0
	return &AddFiles{queue: q, input: ti, load: uploadq.LoadFiles}
}

// Init clears the input and focuses it.
func (d *AddFiles) Init() tea.Cmd {
	d.input.Reset()
	d.err = ""
	return d.input.Focus()
}

// HandleKey processes keyboard input.
func (d *AddFiles) HandleKey(msg tea.KeyMsg) (Action, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return ActionClose, nil
	case "enter":
		paths := SplitPaths(d.input.Value())
		if len(paths) == 0 {
			d.err = "enter one or more file paths"
			return ActionContinue, nil
		}
		files, err := d.load(paths...)
		if err != nil {
			d.err = err.Error()
			return ActionContinue, nil
		}
		if !d.queue.EnqueueFiles(files...) {
			d.err = "an upload is in progress"
			return ActionContinue, nil
		}
		return ActionClose, nil
	}
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return ActionContinue, cmd
}

// Update forwards cursor blinks to the input.
func (d *AddFiles) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return cmd
}

// RenderOverlay renders the dialog.
func (d *AddFiles) RenderOverlay(width int, th theme.Theme) []string {
	fitInput(&d.input, width)
	lines := []string{
		header("Upload Materials", "enter: add to queue, esc: cancel", th),
		th.Muted("File paths separated by spaces. Quote paths that contain spaces. Only PDFs are accepted."),
		d.input.View(),
	}
	return append(lines, errorLine(d.err, th)...)
}

// Error returns any error message.
func (d *AddFiles) Error() string {
	return d.err
}

// SplitPaths splits s on whitespace, keeping quoted runs together, and
// expands a leading ~.
func SplitPaths(s string) []string {
	var (
		out   []string
		cur   strings.Builder
		quote rune
		have  bool
	)
	flush := func() {
		if have {
			out = append(out, expandHome(cur.String()))
		}
		cur.Reset()
		have = false
	}
	for _, r := range s {
		switch {
		case quote != 0 && r == quote:
			quote = 0
		case quote == 0 && (r == '"' || r == '\''):
			quote = r
			have = true
		case quote == 0 && (r == ' ' || r == '\t' || r == '\n'):
			flush()
		default:
			cur.WriteRune(r)
			have = true
		}
	}
	flush()
	return out
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
