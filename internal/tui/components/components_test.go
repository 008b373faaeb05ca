package components

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/x/ansi"

	"github.com/interpretive-systems/studybuddy/internal/notify"
	"github.com/interpretive-systems/studybuddy/internal/theme"
	"github.com/interpretive-systems/studybuddy/internal/types"
	"github.com/interpretive-systems/studybuddy/internal/viewer"
)

var (
	algo = types.Course{ID: "a", Name: "Algorithms", Content: []types.Unit{{ID: "u1", Title: "Unit 1", Children: []string{"Sorting", "Graphs"}}}}
	bio  = types.Course{ID: "b", Name: "Biology", Content: []types.Unit{{ID: "u1", Title: "Cells", Children: []string{"Membranes"}}}}
)

func plain(lines []string) string {
	return ansi.Strip(strings.Join(lines, "\n"))
}

func TestBuildRows_ExpandsCurrentOnly(t *testing.T) {
	rows := BuildRows([]types.Course{algo, bio}, "a")
	want := []Row{
		{RowCourse, "a", "Algorithms"},
		{RowUnit, "a", "Unit 1"},
		{RowTopic, "a", "Sorting"},
		{RowTopic, "a", "Graphs"},
		{RowCourse, "b", "Biology"},
	}
	if len(rows) != len(want) {
		t.Fatalf("rows = %+v", rows)
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, rows[i], want[i])
		}
	}
}

func TestSidebar_SetRowsKeepsSelection(t *testing.T) {
	s := NewSidebar()
	s.SetRows(BuildRows([]types.Course{algo, bio}, "a"))
	s.GoToBottom()
	s.SetRows(BuildRows([]types.Course{algo, bio}, "b"))
	if r, _ := s.SelectedRow(); r.CourseID != "b" || r.Kind != RowCourse {
		t.Fatalf("selected = %+v", r)
	}
	// A topic row that disappears falls back to its course.
	s.SetRows(BuildRows([]types.Course{algo, bio}, "a"))
	s.FocusCourse("a")
	s.MoveSelection(2)
	s.SetRows(BuildRows([]types.Course{algo, bio}, "b"))
	if r, _ := s.SelectedRow(); r.CourseID != "a" || r.Kind != RowCourse {
		t.Fatalf("selected = %+v", r)
	}
}

func TestSidebar_MoveClamps(t *testing.T) {
	s := NewSidebar()
	if s.MoveSelection(1) {
		t.Fatal("empty sidebar cannot move")
	}
	s.SetRows(BuildRows([]types.Course{algo}, "a"))
	s.MoveSelection(100)
	if s.Selected() != 3 {
		t.Fatalf("selected = %d", s.Selected())
	}
	if s.MoveSelection(1) {
		t.Fatal("moving past the end should report no change")
	}
	s.GoToTop()
	if s.Selected() != 0 {
		t.Fatalf("selected = %d", s.Selected())
	}
}

func TestSidebar_Render(t *testing.T) {
	th := theme.Dark()
	s := NewSidebar()
	if got := plain(s.Render(SidebarState{}, 24, 10, th)); !strings.Contains(got, "No courses yet.") {
		t.Fatalf("empty sidebar = %q", got)
	}
	s.SetRows(BuildRows([]types.Course{algo, bio}, "a"))
	got := plain(s.Render(SidebarState{CurrentID: "a", Topic: "Graphs", Materials: map[string]int{"a": 2}}, 24, 10, th))
	for _, want := range []string{"Courses", "● Algorithms (2)", "› Graphs", "Biology"} {
		if !strings.Contains(got, want) {
			t.Errorf("sidebar missing %q in\n%s", want, got)
		}
	}
}

func TestSidebar_ScrollsToSelection(t *testing.T) {
	s := NewSidebar()
	s.SetRows(BuildRows([]types.Course{algo, bio}, "a"))
	s.GoToBottom()
	lines := s.Render(SidebarState{CurrentID: "a"}, 24, 3, theme.Dark())
	if len(lines) != 3 || !strings.Contains(ansi.Strip(lines[2]), "Biology") {
		t.Fatalf("lines = %q", lines)
	}
}

func TestChatView_Messages(t *testing.T) {
	c := NewChatView()
	c.SetSize(40, 10)
	c.SetMessages([]types.ChatMessage{
		{ID: "1", Role: types.RoleUser, Content: "What is a heap?"},
		{ID: "2", Role: types.RoleAssistant, IsTyping: true},
	})
	if !c.Typing() {
		t.Fatal("expected typing")
	}
	want := []string{"You", "What is a heap?", "", "StudyBuddy", "Thinking…"}
	if strings.Join(c.Lines(), "|") != strings.Join(want, "|") {
		t.Fatalf("lines = %q", c.Lines())
	}
	c.Render(theme.Dark(), nil, -1)
	if !strings.Contains(ansi.Strip(c.View()), "Thinking…") {
		t.Fatal("typing line not rendered")
	}
	if c.UpdateSpinner(c.spinner.Tick().(spinner.TickMsg)) == nil {
		t.Fatal("spinner should keep ticking while typing")
	}

	c.SetMessages([]types.ChatMessage{{ID: "1", Role: types.RoleAssistant, Content: "A tree."}})
	if c.Typing() || c.UpdateSpinner(c.spinner.Tick().(spinner.TickMsg)) != nil {
		t.Fatal("spinner should stop once nothing is typing")
	}
}

func TestChatView_WrapsAndPinsBottom(t *testing.T) {
	c := NewChatView()
	c.SetSize(20, 3)
	long := strings.Repeat("word ", 20)
	c.SetMessages([]types.ChatMessage{{ID: "1", Role: types.RoleAssistant, Content: long}})
	c.Render(theme.Dark(), nil, -1)
	for _, l := range c.Lines() {
		if ansi.StringWidth(l) > 18 {
			t.Fatalf("line %q wider than 18", l)
		}
	}
	view := strings.Split(ansi.Strip(c.View()), "\n")
	last := strings.TrimSpace(view[len(view)-1])
	if last != strings.TrimSpace(c.Lines()[len(c.Lines())-1]) {
		t.Fatalf("view should show the last line, got %q", last)
	}
}

func TestRightPanel_EmptyStates(t *testing.T) {
	th := theme.Dark()
	p := &viewer.Player{}
	got := plain(RenderRightPanel(SlidesState{}, false, p, 50, 20, th))
	for _, want := range []string{"Slides", "No Course Materials", "a: Upload Materials", "Lecture Clip", "No Lecture Recordings"} {
		if !strings.Contains(got, want) {
			t.Errorf("panel missing %q", want)
		}
	}

	p.Loaded(viewer.Clip{}, viewer.ErrInvalidVideo)
	if got := plain(RenderRightPanel(SlidesState{}, false, p, 50, 20, th)); !strings.Contains(got, "Invalid video data received from server") {
		t.Errorf("invalid video not reported:\n%s", got)
	}
	p.Loaded(viewer.Clip{}, errors.New("boom"))
	if got := plain(RenderRightPanel(SlidesState{}, false, p, 50, 20, th)); !strings.Contains(got, "Unable to load lecture clip.") {
		t.Errorf("load failure not reported:\n%s", got)
	}
}

func TestRightPanel_SlidesAndClip(t *testing.T) {
	th := theme.Dark()
	p := &viewer.Player{}
	p.Load(viewer.Clip{ID: "v1", Title: "Lecture 3", URL: "http://x/v1"}, 30*time.Minute+58*time.Second)
	s := SlidesState{HasMaterials: true, Name: "week1.pdf", Page: 2, Pages: 9, Text: "Dijkstra relaxes edges"}
	lines := RenderRightPanel(s, false, p, 50, 24, th)
	if len(lines) > 24 {
		t.Fatalf("%d lines", len(lines))
	}
	got := plain(lines)
	for _, want := range []string{"week1.pdf", "Page 2 of 9", "Dijkstra relaxes edges", "Lecture 3", "❚❚ Paused", "30:58"} {
		if !strings.Contains(got, want) {
			t.Errorf("panel missing %q in\n%s", want, got)
		}
	}

	collapsed := RenderRightPanel(s, true, p, 50, 24, th)
	if strings.Contains(plain(collapsed), "30:58") {
		t.Fatal("collapsed clip should not render its body")
	}
}

func TestUploadQueue(t *testing.T) {
	th := theme.Dark()
	if RenderUploadQueue(nil, false, false, 40, th) != nil {
		t.Fatal("empty queue should render nothing")
	}
	files := []types.UploadedFile{{Name: "a.pdf", Data: make([]byte, 2048)}}
	got := plain(RenderUploadQueue(files, false, false, 60, th))
	if !strings.Contains(got, "Files to upload (1)") || !strings.Contains(got, "1. a.pdf  2.0 KB") {
		t.Fatalf("queue = %q", got)
	}
	if got := plain(RenderUploadQueue(files, false, true, 60, th)); !strings.Contains(got, "Uploading 1 file(s)") {
		t.Fatalf("uploading = %q", got)
	}
	if got := plain(RenderUploadQueue(nil, true, false, 60, th)); !strings.Contains(got, "Drop files here to upload") {
		t.Fatalf("dragging = %q", got)
	}
}

func TestStatusBar(t *testing.T) {
	th := theme.Dark()
	s := NewStatusBar()
	s.SetRight("dark")
	got := ansi.Strip(s.Render(50, th))
	if ansi.StringWidth(got) != 50 || !strings.HasSuffix(got, "dark") || !strings.HasPrefix(got, "?: help") {
		t.Fatalf("status = %q", got)
	}
	s.SetToast(&notify.Notification{Title: "Upload failed", Variant: notify.VariantDestructive})
	if got := ansi.Strip(s.Render(50, th)); !strings.HasPrefix(got, "✗ Upload failed") {
		t.Fatalf("status = %q", got)
	}
	s.SetToast(nil)
	s.SetKeyBuffer("12")
	if got := ansi.Strip(s.Render(50, th)); !strings.HasPrefix(got, "12") {
		t.Fatalf("status = %q", got)
	}
}

func TestText(t *testing.T) {
	if got := PadToWidth("abc", 5); got != "abc  " {
		t.Fatalf("pad = %q", got)
	}
	if got := PadToWidth("abcdef", 4); ansi.StringWidth(got) != 4 {
		t.Fatalf("truncate = %q", got)
	}
	if got := Center("ab", 6); got != "  ab  " {
		t.Fatalf("center = %q", got)
	}
	if got := Clip([]string{"a", "b", "c"}, 2); len(got) != 2 {
		t.Fatalf("clip = %q", got)
	}
	for sec, want := range map[int]string{0: "0:00", 65: "1:05", 1858: "30:58", 3725: "1:02:05", -3: "0:00"} {
		if got := FormatClock(sec); got != want {
			t.Errorf("FormatClock(%d) = %q, want %q", sec, got, want)
		}
	}
	for _, l := range Wrap("a verylongwordthatkeepsgoing here", 8) {
		if ansi.StringWidth(l) > 8 {
			t.Fatalf("wrapped line %q", l)
		}
	}
}
