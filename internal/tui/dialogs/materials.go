package dialogs

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/interpretive-systems/studybuddy/internal/theme"
	"github.com/interpretive-systems/studybuddy/internal/types"
)

// MaterialStore is what the materials dialog reads and edits.
type MaterialStore interface {
	CurrentCourse() (types.Course, bool)
	CurrentCourseMaterials() []types.Material
	Courses() []types.Course
	DeleteMaterial(id string) bool
	MoveMaterial(id, targetCourseID string) bool
}

// Materials lists the current course's materials with move and delete.
type Materials struct {
	store   MaterialStore
	index   int
	moving  bool
	targets []types.Course
	target  int
	err     string
}

// NewMaterials creates the dialog.
func NewMaterials(s MaterialStore) *Materials {
	return &Materials{store: s}
}

// Init resets the cursor.
func (d *Materials) Init() tea.Cmd {
	d.index = 0
	d.moving = false
	d.err = ""
	return nil
}

// items orders PDFs before recordings.
func (d *Materials) items() []types.Material {
	all := d.store.CurrentCourseMaterials()
	out := make([]types.Material, 0, len(all))
	for _, t := range []types.MaterialType{types.MaterialPDF, types.MaterialVideo} {
		for _, m := range all {
			if m.Type == t {
				out = append(out, m)
			}
		}
	}
	return out
}

func (d *Materials) otherCourses() []types.Course {
	cur, _ := d.store.CurrentCourse()
	var out []types.Course
	for _, c := range d.store.Courses() {
		if c.ID != cur.ID {
			out = append(out, c)
		}
	}
	return out
}

// HandleKey processes keyboard input.
func (d *Materials) HandleKey(msg tea.KeyMsg) (Action, tea.Cmd) {
	if d.moving {
		return d.handleMove(msg)
	}
	items := d.items()
	switch msg.String() {
	case "esc", "q":
		return ActionClose, nil
	case "j", "down":
		if d.index < len(items)-1 {
			d.index++
		}
	case "k", "up":
		if d.index > 0 {
			d.index--
		}
	case "d", "delete":
		if len(items) == 0 {
			return ActionContinue, nil
		}
		d.store.DeleteMaterial(items[d.index].ID)
		d.clamp()
	case "m":
		if len(items) == 0 {
			return ActionContinue, nil
		}
		d.targets = d.otherCourses()
		if len(d.targets) == 0 {
			d.err = "no other course to move to"
			return ActionContinue, nil
		}
		d.err = ""
		d.moving = true
		d.target = 0
	}
	return ActionContinue, nil
}

func (d *Materials) handleMove(msg tea.KeyMsg) (Action, tea.Cmd) {
	switch msg.String() {
	case "esc":
		d.moving = false
	case "j", "down":
		if d.target < len(d.targets)-1 {
			d.target++
		}
	case "k", "up":
		if d.target > 0 {
			d.target--
		}
	case "enter":
		items := d.items()
		if d.index < len(items) && d.target < len(d.targets) {
			if !d.store.MoveMaterial(items[d.index].ID, d.targets[d.target].ID) {
				d.err = "move failed"
			}
		}
		d.moving = false
		d.clamp()
	}
	return ActionContinue, nil
}

func (d *Materials) clamp() {
	if n := len(d.items()); d.index >= n {
		d.index = max(n-1, 0)
	}
}

// Update is a no-op.
func (d *Materials) Update(tea.Msg) tea.Cmd { return nil }

// RenderOverlay renders the dialog.
func (d *Materials) RenderOverlay(width int, th theme.Theme) []string {
	cur, _ := d.store.CurrentCourse()
	if d.moving {
		lines := []string{header("Move to Course", "j/k: choose, enter: move, esc: back", th)}
		for i, c := range d.targets {
			cursor := "  "
			if i == d.target {
				cursor = "> "
			}
			lines = append(lines, cursor+c.Name)
		}
		return append(lines, errorLine(d.err, th)...)
	}

	lines := []string{
		header("Course Materials", "j/k: select, m: move, d: delete, esc: close", th),
		th.Muted("Manage materials for " + cur.Name),
	}
	items := d.items()
	if len(items) == 0 {
		lines = append(lines, th.Muted("No materials uploaded for this course yet."))
		return append(lines, errorLine(d.err, th)...)
	}
	var section types.MaterialType
	for i, m := range items {
		if m.Type != section {
			section = m.Type
			if section == types.MaterialPDF {
				lines = append(lines, th.Title("Course Materials (PDFs)"))
			} else {
				lines = append(lines, th.Title("Lecture Recordings"))
			}
		}
		cursor := "  "
		if i == d.index {
			cursor = "> "
		}
		line := cursor + m.Name
		if m.Status != "" {
			line += th.Muted(fmt.Sprintf("  [%s]", m.Status))
		}
		lines = append(lines, line)
	}
	return append(lines, errorLine(d.err, th)...)
}

// Error returns any error message.
func (d *Materials) Error() string {
	return d.err
}
