package components

import (
	"fmt"

	"github.com/interpretive-systems/studybuddy/internal/theme"
	"github.com/interpretive-systems/studybuddy/internal/types"
)

// RowKind tells course rows from topic rows.
type RowKind int

const (
	RowCourse RowKind = iota
	RowUnit
	RowTopic
)

// Row is one selectable line of the sidebar.
type Row struct {
	Kind     RowKind
	CourseID string
	Label    string
}

// BuildRows lists every course and, under the current one, its units and
// topics.
func BuildRows(courses []types.Course, currentID string) []Row {
	rows := make([]Row, 0, len(courses)*2)
	for _, c := range courses {
		rows = append(rows, Row{Kind: RowCourse, CourseID: c.ID, Label: c.Name})
		if c.ID != currentID {
			continue
		}
		for _, u := range c.Content {
			rows = append(rows, Row{Kind: RowUnit, CourseID: c.ID, Label: u.Title})
			for _, topic := range u.Children {
				rows = append(rows, Row{Kind: RowTopic, CourseID: c.ID, Label: topic})
			}
		}
	}
	return rows
}

// Sidebar is the course list with a cursor.
type Sidebar struct {
	rows     []Row
	selected int
	offset   int
}

// NewSidebar creates an empty sidebar.
func NewSidebar() *Sidebar {
	return &Sidebar{}
}

// SetRows replaces the rows, keeping the cursor on the same course or topic
// when it still exists.
func (s *Sidebar) SetRows(rows []Row) {
	var keep *Row
	if r, ok := s.SelectedRow(); ok {
		keep = &r
	}
	s.rows = rows
	s.selected = 0
	if keep != nil {
		for i, r := range rows {
			if r == *keep {
				s.selected = i
				return
			}
		}
		for i, r := range rows {
			if r.Kind == RowCourse && r.CourseID == keep.CourseID {
				s.selected = i
				return
			}
		}
	}
}

// Rows returns the current rows.
func (s *Sidebar) Rows() []Row { return s.rows }

// Selected returns the cursor index.
func (s *Sidebar) Selected() int { return s.selected }

// SelectedRow returns the row under the cursor.
func (s *Sidebar) SelectedRow() (Row, bool) {
	if s.selected < 0 || s.selected >= len(s.rows) {
		return Row{}, false
	}
	return s.rows[s.selected], true
}

// MoveSelection moves the cursor by delta and reports whether it moved.
func (s *Sidebar) MoveSelection(delta int) bool {
	if len(s.rows) == 0 {
		return false
	}
	n := min(max(s.selected+delta, 0), len(s.rows)-1)
	changed := n != s.selected
	s.selected = n
	return changed
}

// GoToTop moves the cursor to the first row.
func (s *Sidebar) GoToTop() bool {
	return s.MoveSelection(-len(s.rows))
}

// GoToBottom moves the cursor to the last row.
func (s *Sidebar) GoToBottom() bool {
	return s.MoveSelection(len(s.rows))
}

// FocusCourse puts the cursor on the course row of id.
func (s *Sidebar) FocusCourse(id string) {
	for i, r := range s.rows {
		if r.Kind == RowCourse && r.CourseID == id {
			s.selected = i
			return
		}
	}
}

func (s *Sidebar) ensureVisible(visible int) {
	if visible <= 0 {
		return
	}
	if s.selected < s.offset {
		s.offset = s.selected
	} else if s.selected >= s.offset+visible {
		s.offset = s.selected - visible + 1
	}
	maxStart := max(len(s.rows)-visible, 0)
	s.offset = min(max(s.offset, 0), maxStart)
}

// SidebarState is what the sidebar highlights besides its cursor.
type SidebarState struct {
	CurrentID string
	Topic     string
	Materials map[string]int
	Focused   bool
}

// Render draws the sidebar into height lines of the given width.
func (s *Sidebar) Render(st SidebarState, width, height int, th theme.Theme) []string {
	lines := make([]string, 0, height)
	lines = append(lines, th.Title("Courses"))
	if len(s.rows) == 0 {
		lines = append(lines, "", th.Muted("No courses yet."), th.Muted("n: create one"))
		return lines
	}
	visible := height - 1
	s.ensureVisible(visible)
	end := min(s.offset+visible, len(s.rows))
	for i := s.offset; i < end; i++ {
		r := s.rows[i]
		var line string
		switch r.Kind {
		case RowCourse:
			mark := "  "
			if r.CourseID == st.CurrentID {
				mark = "● "
			}
			line = mark + r.Label
			if n := st.Materials[r.CourseID]; n > 0 {
				line += fmt.Sprintf(" (%d)", n)
			}
		case RowUnit:
			line = "    " + r.Label
		case RowTopic:
			mark := "      "
			if r.Label == st.Topic {
				mark = "    › "
			}
			line = mark + r.Label
		}
		line = PadToWidth(line, width)
		switch {
		case i == s.selected && st.Focused:
			line = th.SelectedLine(line)
		case r.Kind == RowCourse && r.CourseID == st.CurrentID:
			line = th.AccentText(line)
		case r.Kind == RowUnit:
			line = th.Muted(line)
		default:
			line = th.Primary(line)
		}
		lines = append(lines, line)
	}
	return lines
}
