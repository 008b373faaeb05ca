package dialogs

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/interpretive-systems/studybuddy/internal/app"
	"github.com/interpretive-systems/studybuddy/internal/theme"
)

// CourseCreator starts a course creation.
type CourseCreator interface {
	BeginCreateCourse(name string) (func() app.CourseResult, bool)
}

// CourseCreatedMsg carries the result of a creation job.
type CourseCreatedMsg struct {
	Result app.CourseResult
}

// CreateCourse asks for a course name.
type CreateCourse struct {
	creator CourseCreator
	input   textinput.Model
	err     string
}

// NewCreateCourse creates the dialog.
func NewCreateCourse(c CourseCreator) *CreateCourse {
	ti := textinput.New()
	ti.Placeholder = "e.g., CSC242 Introduction to AI"
	ti.Prompt = "> "
	ti.CharLimit = 120
	return &CreateCourse{creator: c, input: ti}
}

// Init clears the input and focuses it.
func (d *CreateCourse) Init() tea.Cmd {
	d.input.Reset()
	d.err = ""
	return d.input.Focus()
}

// HandleKey processes keyboard input.
func (d *CreateCourse) HandleKey(msg tea.KeyMsg) (Action, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return ActionClose, nil
	case "enter":
		name := strings.TrimSpace(d.input.Value())
		if name == "" {
			d.err = "course name is required"
			return ActionContinue, nil
		}
		job, ok := d.creator.BeginCreateCourse(name)
		if !ok {
			d.err = "a course is already being created"
			return ActionContinue, nil
		}
		return ActionClose, func() tea.Msg {
			return CourseCreatedMsg{Result: job()}
		}
	}
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return ActionContinue, cmd
}

// Update forwards cursor blinks to the input.
func (d *CreateCourse) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return cmd
}

// RenderOverlay renders the dialog.
func (d *CreateCourse) RenderOverlay(width int, th theme.Theme) []string {
	fitInput(&d.input, width)
	lines := []string{
		header("Create New Course", "enter: create, esc: cancel", th),
		th.Muted("Enter course code and name"),
		d.input.View(),
	}
	return append(lines, errorLine(d.err, th)...)
}

// Error returns any error message.
func (d *CreateCourse) Error() string {
	return d.err
}
