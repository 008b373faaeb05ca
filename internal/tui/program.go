// Package tui is the full-screen terminal interface: a course sidebar, the
// chat column and a right panel with slides and the lecture clip.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/interpretive-systems/studybuddy/internal/app"
	"github.com/interpretive-systems/studybuddy/internal/dropwatch"
	"github.com/interpretive-systems/studybuddy/internal/notify"
	"github.com/interpretive-systems/studybuddy/internal/prefs"
	"github.com/interpretive-systems/studybuddy/internal/theme"
	"github.com/interpretive-systems/studybuddy/internal/tui/components"
	"github.com/interpretive-systems/studybuddy/internal/tui/dialogs"
	"github.com/interpretive-systems/studybuddy/internal/uploadq"
	"github.com/interpretive-systems/studybuddy/internal/viewer"
)

const (
	dropTarget = "drop-folder"
	panelStep  = 2
)

var clipboardWrite = clipboard.WriteAll

// Options configures the terminal UI. Nil sources disable the matching
// viewer.
type Options struct {
	Documents viewer.DocumentSource
	Videos    viewer.VideoSource
	// Toasts should be the notifier the controller was built with.
	Toasts *notify.Center
	// DropDir is watched for files to enqueue. Empty disables it.
	DropDir string
	// PrefsPath persists theme and layout changes. Empty disables it.
	PrefsPath string
	// TempDir holds downloaded slide decks.
	TempDir string
	Logger  *zap.Logger
}

// Program is the Bubble Tea model.
type Program struct {
	ctrl       *app.Controller
	opts       Options
	state      *State
	layout     *Layout
	keyHandler *KeyHandler
	dialogs    map[string]dialogs.Dialog
	log        *zap.Logger
}

// NewProgram builds the model over ctrl.
func NewProgram(ctrl *app.Controller, opts Options) Program {
	log := opts.Logger
	if log == nil {
		log = ctrl.Logger()
	}
	m := Program{
		ctrl:       ctrl,
		opts:       opts,
		state:      NewState(ctrl.DarkMode(), opts.Toasts, viewer.NewDocuments(log)),
		layout:     NewLayout(),
		keyHandler: NewKeyHandler(),
		dialogs: map[string]dialogs.Dialog{
			"course":    dialogs.NewCreateCourse(ctrl),
			"materials": dialogs.NewMaterials(ctrl),
			"files":     dialogs.NewAddFiles(ctrl),
		},
		log: log,
	}
	m.refresh()
	return m
}

// Run instantiates and runs the Bubble Tea program. It closes ctrl when the
// program exits.
func Run(ctrl *app.Controller, opts Options) error {
	m := NewProgram(ctrl, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if opts.DropDir != "" {
		w := dropwatch.New(opts.DropDir,
			func() { p.Send(dropEnterMsg{}) },
			func(paths []string) { p.Send(dropMsg{paths: paths}) },
			dropwatch.WithLogger(m.log),
		)
		if err := w.Start(ctx); err != nil {
			m.log.Warn("drop folder disabled", zap.String("dir", opts.DropDir), zap.Error(err))
		} else {
			defer w.Stop()
		}
	}

	_, err := p.Run()
	ctrl.Close()
	if cerr := m.state.Docs.Close(); cerr != nil {
		m.log.Warn("release slide deck", zap.Error(cerr))
	}
	return err
}

func (m Program) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tickOnce(), m.loadViewers())
}

func (m Program) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	st := m.state
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	case tea.MouseMsg:
		cmd = m.handleMouse(msg)
	case tea.WindowSizeMsg:
		st.Width, st.Height = msg.Width, msg.Height
	case tickMsg:
		st.Player.Advance(tickInterval)
		cmd = tickOnce()
	case spinner.TickMsg:
		cmd = st.Chat.UpdateSpinner(msg)
		st.spinning = cmd != nil
	case replyMsg:
		m.ctrl.CompleteSend(msg.result)
		m.applyDemo()
		cmd = m.loadViewers()
	case uploadDoneMsg:
		m.ctrl.CompleteUpload(msg.result)
		cmd = m.loadViewers()
	case dialogs.CourseCreatedMsg:
		m.ctrl.CompleteCreateCourse(msg.Result)
		m.refresh()
		st.Sidebar.FocusCourse(m.ctrl.CurrentCourseID())
		cmd = m.loadViewers()
	case clipMsg:
		// The demo clip takes precedence over the catalogue.
		if !m.ctrl.DemoUnlocked() {
			st.Player.Loaded(msg.clip, msg.err)
			if msg.err != nil && !errors.Is(msg.err, viewer.ErrNoVideos) {
				m.log.Warn("load lecture clip", zap.Error(msg.err))
			}
		}
	case clipDeletedMsg:
		cmd = m.clipDeleted(msg)
	case docMsg:
		cmd = m.documentLoaded(msg)
	case pageTextMsg:
		if msg.key == st.PageTextFor {
			st.PageText = msg.text
			st.PageErr = ""
			if msg.err != nil {
				st.PageErr = msg.err.Error()
			}
		}
	case dropEnterMsg:
		m.ctrl.Queue().DragEnter(&uploadq.DragEvent{Target: dropTarget, CurrentTarget: dropTarget})
	case dropMsg:
		cmd = readDropped(msg.paths)
	case droppedFilesMsg:
		m.ctrl.DropFiles(&uploadq.DragEvent{Target: dropTarget, CurrentTarget: dropTarget, Files: msg.files})
		if msg.err != nil {
			m.log.Warn("read dropped files", zap.Error(msg.err))
			m.toast("Drop failed", msg.err.Error(), notify.VariantDestructive)
		}
	default:
		if st.Dialog != nil {
			cmd = st.Dialog.Update(msg)
		} else if st.Typing {
			st.Input, cmd = st.Input.Update(msg)
		}
	}
	return m, tea.Batch(cmd, m.refresh())
}

func (m Program) handleKey(msg tea.KeyMsg) tea.Cmd {
	st := m.state
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	if st.ShowHelp {
		switch msg.String() {
		case "q":
			return tea.Quit
		case "?", "h", "esc":
			st.ShowHelp = false
		}
		return nil
	}
	if st.Dialog != nil {
		action, cmd := st.Dialog.HandleKey(msg)
		if action == dialogs.ActionClose {
			st.Dialog = nil
		}
		return tea.Batch(cmd, m.loadViewers())
	}
	if st.Search.IsActive() {
		cmd := st.Search.HandleKey(msg)
		if line := st.Search.CurrentMatchLine(); line >= 0 {
			st.Chat.ShowLine(line)
		}
		return cmd
	}
	if st.Typing {
		return m.handleInputKey(msg)
	}
	return m.handleAction(msg)
}

func (m Program) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	st := m.state
	switch msg.String() {
	case "esc":
		st.Typing = false
		st.Input.Blur()
		return nil
	case "enter":
		job, ok := m.ctrl.BeginSend(st.Input.Value())
		if !ok {
			return nil
		}
		st.Input.Reset()
		st.Chat.GotoBottom()
		return sendReply(job)
	}
	var cmd tea.Cmd
	st.Input, cmd = st.Input.Update(msg)
	m.ctrl.SetInput(st.Input.Value())
	return cmd
}

func (m Program) handleAction(msg tea.KeyMsg) tea.Cmd {
	st := m.state
	action, count := m.keyHandler.Handle(msg)
	st.StatusBar.SetKeyBuffer(m.keyHandler.KeyBuffer())

	switch action {
	case ActionQuit:
		return tea.Quit
	case ActionToggleHelp:
		st.ShowHelp = true
	case ActionFocusInput:
		st.Typing = true
		return st.Input.Focus()
	case ActionOpenSearch:
		st.Search.SetContent(st.Chat.Lines())
		return st.Search.Activate()
	case ActionMoveUp:
		st.Sidebar.MoveSelection(-count)
	case ActionMoveDown:
		st.Sidebar.MoveSelection(count)
	case ActionGoToTop:
		st.Sidebar.GoToTop()
	case ActionGoToBottom:
		st.Sidebar.GoToBottom()
	case ActionSelect:
		return m.selectRow()
	case ActionNewCourse:
		return m.openDialog("course")
	case ActionDeleteCourse:
		return m.confirmDeleteCourse()
	case ActionOpenMaterials:
		if _, ok := m.ctrl.CurrentCourse(); ok {
			return m.openDialog("materials")
		}
	case ActionAddFiles:
		return m.openDialog("files")
	case ActionUpload:
		if job, ok := m.ctrl.BeginUpload(); ok {
			return runUpload(job)
		}
	case ActionDequeue:
		m.ctrl.DequeueFile(count - 1)
	case ActionClearQueue:
		m.ctrl.ClearQueue()
	case ActionClearChat:
		m.ctrl.ClearChat()
	case ActionCopyReply:
		m.copyLastReply()
	case ActionScrollUp:
		st.Chat.ScrollUp(count)
	case ActionScrollDown:
		st.Chat.ScrollDown(count)
	case ActionHalfPageUp:
		st.Chat.HalfPageUp()
	case ActionHalfPageDown:
		st.Chat.HalfPageDown()
	case ActionToggleTheme:
		m.ctrl.ToggleDarkMode()
		return m.persist(func(path string) error { return prefs.SaveDark(path, m.ctrl.DarkMode()) })
	case ActionToggleSidebar:
		m.ctrl.ToggleLeftPanel()
		return m.persistCollapsed()
	case ActionToggleRightPanel:
		m.ctrl.ToggleRightPanel()
		return tea.Batch(m.persistCollapsed(), m.loadViewers())
	case ActionToggleSlides:
		st.SlidesCollapsed = !st.SlidesCollapsed
		return m.loadViewers()
	case ActionToggleVideo:
		st.VideoCollapsed = !st.VideoCollapsed
		return m.loadViewers()
	case ActionPanelWider:
		m.ctrl.Panel().Nudge(panelStep * count)
		return m.persistPanelWidth()
	case ActionPanelNarrower:
		m.ctrl.Panel().Nudge(-panelStep * count)
		return m.persistPanelWidth()
	case ActionPrevPage:
		m.ctrl.SetPage(max(m.ctrl.PageNumber()-count, 1))
		return m.pageTextCmd()
	case ActionNextPage:
		next := m.ctrl.PageNumber() + count
		if b := st.Docs.Current(); b != nil && b.Pages > 0 {
			next = min(next, b.Pages)
		}
		m.ctrl.SetPage(next)
		return m.pageTextCmd()
	case ActionPlayPause:
		st.Player.TogglePlay()
	case ActionSkipBack:
		st.Player.Skip(-viewer.SkipStep * timeCount(count))
	case ActionSkipForward:
		st.Player.Skip(viewer.SkipStep * timeCount(count))
	case ActionCopyClipURL:
		if c, ok := st.Player.Clip(); ok && c.URL != "" {
			m.copy("Clip URL copied", c.URL)
		}
	case ActionReloadClip:
		if m.ctrl.DemoUnlocked() {
			m.applyDemo()
			return nil
		}
		st.Player.Reset()
		return m.loadViewers()
	case ActionDeleteClip:
		return m.confirmDeleteClip()
	}
	return nil
}

func (m Program) handleMouse(msg tea.MouseMsg) tea.Cmd {
	st := m.state
	panel := m.ctrl.Panel()
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			if x := m.layout.DividerX(); x >= 0 && msg.X == x && m.inColumns(msg.Y) {
				panel.PointerDown(msg.X)
			}
		case tea.MouseButtonWheelUp:
			if m.overChat(msg.X) {
				st.Chat.ScrollUp(3)
			}
		case tea.MouseButtonWheelDown:
			if m.overChat(msg.X) {
				st.Chat.ScrollDown(3)
			}
		}
	case tea.MouseActionMotion:
		panel.PointerMove(msg.X)
	case tea.MouseActionRelease:
		// Release ends a drag wherever the pointer is.
		if panel.IsResizing() {
			panel.PointerUp()
			return m.persistPanelWidth()
		}
	}
	return nil
}

func (m Program) inColumns(y int) bool {
	return y >= 2 && y < 2+m.layout.ContentHeight(len(m.overlayLines()))
}

func (m Program) overChat(x int) bool {
	return x >= m.layout.ChatX() && x < m.layout.ChatX()+m.layout.ChatWidth()
}

func (m Program) selectRow() tea.Cmd {
	row, ok := m.state.Sidebar.SelectedRow()
	if !ok {
		return nil
	}
	m.ctrl.SelectCourse(row.CourseID)
	if row.Kind == components.RowTopic {
		m.ctrl.SelectTopic(row.Label)
	}
	m.state.Chat.GotoBottom()
	return m.loadViewers()
}

func (m Program) openDialog(name string) tea.Cmd {
	d := m.dialogs[name]
	m.state.Dialog = d
	return d.Init()
}

func (m Program) confirmDeleteCourse() tea.Cmd {
	row, ok := m.state.Sidebar.SelectedRow()
	if !ok {
		return nil
	}
	var name string
	for _, c := range m.ctrl.Courses() {
		if c.ID == row.CourseID {
			name = c.Name
		}
	}
	m.state.Dialog = dialogs.NewConfirm("Delete "+name+"?",
		"Its chat history and materials are removed too.",
		func() tea.Cmd {
			m.ctrl.DeleteCourse(row.CourseID)
			return m.loadViewers()
		})
	return nil
}

func (m Program) confirmDeleteClip() tea.Cmd {
	c, ok := m.state.Player.Clip()
	if !ok || m.opts.Videos == nil {
		return nil
	}
	m.state.Dialog = dialogs.NewConfirm("Delete recording "+c.ID+"?", c.Title,
		func() tea.Cmd { return deleteClip(m.ctrl.Context(), m.opts.Videos, c.ID) })
	return nil
}

func (m Program) clipDeleted(msg clipDeletedMsg) tea.Cmd {
	if msg.err != nil {
		m.log.Error("delete recording", zap.String("id", msg.id), zap.Error(msg.err))
		m.toast("Delete failed", "We couldn't delete the recording. Please try again.", notify.VariantDestructive)
		return nil
	}
	m.toast("Recording deleted", msg.id+" has been removed", notify.VariantDefault)
	if c, ok := m.state.Player.Clip(); ok && c.ID == msg.id {
		m.state.Player.Reset()
	}
	if m.ctrl.DemoUnlocked() {
		return nil
	}
	return m.loadViewers()
}

// applyDemo switches the clip panel to the demo recording once unlocked.
func (m Program) applyDemo() {
	v, ok := m.ctrl.DemoVideo()
	if !ok {
		return
	}
	if c, has := m.state.Player.Clip(); has && c.ID == v.ID {
		return
	}
	clip := viewer.Clip{ID: v.ID, Title: "Lecture recording"}
	if m.opts.Videos != nil {
		clip.URL = m.opts.Videos.VideoFileURL(v.ID)
	}
	m.state.Player.Load(clip, v.Offset)
}

// slideDeck returns the deck to show: the demo deck once unlocked, else the
// first PDF of the current course. An empty id asks for the first document
// of the catalogue.
func (m Program) slideDeck() (id, name string, ok bool) {
	if d, unlocked := m.ctrl.DemoDocument(); unlocked {
		return d.ID, d.Name, true
	}
	pdfs := m.ctrl.PDFMaterials()
	if len(pdfs) == 0 {
		return "", "", false
	}
	id = pdfs[0].DocumentID
	if app.LocalDocument(id) {
		id = ""
	}
	return id, pdfs[0].Name, true
}

// loadViewers starts whatever fetch the visible right panel sections need.
func (m Program) loadViewers() tea.Cmd {
	st := m.state
	if m.ctrl.RightCollapsed() {
		return nil
	}
	var cmds []tea.Cmd
	if m.opts.Videos != nil && !st.VideoCollapsed && !m.ctrl.DemoUnlocked() && st.Player.NeedsLoad() {
		st.Player.StartLoad()
		cmds = append(cmds, loadClip(m.ctrl.Context(), m.opts.Videos))
	}
	if m.opts.Documents != nil && !st.SlidesCollapsed {
		if id, _, ok := m.slideDeck(); ok {
			if key := deckKey(id); key != st.DocShown && key != st.DocLoading && key != st.DocFailed {
				st.DocLoading = key
				st.DocErr = ""
				cmds = append(cmds, loadDocument(m.ctrl.Context(), m.opts.Documents, m.opts.TempDir, id))
			}
		}
	}
	cmds = append(cmds, m.pageTextCmd())
	return tea.Batch(cmds...)
}

// deckKey maps a deck id to a non-empty state key.
func deckKey(id string) string {
	if id == "" {
		return "catalogue:first"
	}
	return id
}

func (m Program) documentLoaded(msg docMsg) tea.Cmd {
	st := m.state
	key := deckKey(msg.id)
	if st.DocLoading == key {
		st.DocLoading = ""
	}
	if msg.err != nil {
		m.log.Warn("load slide deck", zap.String("id", msg.id), zap.Error(msg.err))
		st.DocFailed = key
		st.DocErr = "Unable to load slides."
		if errors.Is(msg.err, viewer.ErrNoDocuments) {
			st.DocErr = "No documents available yet."
		}
		return nil
	}
	st.Docs.Show(msg.blob)
	st.DocShown = key
	st.DocFailed = ""
	st.PageTextFor = pageKey{}
	return m.loadViewers()
}

func (m Program) pageTextCmd() tea.Cmd {
	st := m.state
	b := st.Docs.Current()
	if b == nil || b.ParseErr != nil {
		return nil
	}
	key := pageKey{doc: st.DocShown, page: m.ctrl.PageNumber()}
	if key == st.PageTextFor {
		return nil
	}
	st.PageTextFor = key
	st.PageText = ""
	st.PageErr = ""
	return loadPageText(b, key)
}

func (m Program) copyLastReply() {
	text, ok := m.ctrl.Chat().LastReply(m.ctrl.CurrentCourseID())
	if !ok {
		m.toast("Nothing to copy", "There is no answer in this conversation yet.", notify.VariantDefault)
		return
	}
	m.copy("Answer copied", text)
}

func (m Program) copy(title, text string) {
	if err := clipboardWrite(text); err != nil {
		m.log.Warn("clipboard", zap.Error(err))
		m.toast("Copy failed", err.Error(), notify.VariantDestructive)
		return
	}
	m.toast(title, "Copied to the clipboard", notify.VariantDefault)
}

func (m Program) toast(title, desc string, v notify.Variant) {
	m.state.Toasts.Notify(notify.Notification{Title: title, Description: desc, Variant: v})
}

func (m Program) persist(save func(path string) error) tea.Cmd {
	if m.opts.PrefsPath == "" {
		return nil
	}
	path := m.opts.PrefsPath
	return savePrefs(m.log, func() error { return save(path) })
}

func (m Program) persistCollapsed() tea.Cmd {
	left, right := m.ctrl.LeftCollapsed(), m.ctrl.RightCollapsed()
	return m.persist(func(path string) error { return prefs.SaveCollapsed(path, left, right) })
}

func (m Program) persistPanelWidth() tea.Cmd {
	w := m.ctrl.Panel().Width()
	return m.persist(func(path string) error { return prefs.SavePanelWidth(path, w) })
}

// refresh pushes controller state into the components. It returns the
// command that starts the typing animation when needed.
func (m Program) refresh() tea.Cmd {
	st := m.state
	st.Theme = theme.For(m.ctrl.DarkMode())
	m.layout.SetSize(st.Width, st.Height)
	m.layout.SetPanels(m.ctrl.LeftCollapsed(), m.ctrl.RightCollapsed(), m.ctrl.Panel().Width())
	st.Sidebar.SetRows(components.BuildRows(m.ctrl.Courses(), m.ctrl.CurrentCourseID()))

	h := m.layout.ContentHeight(len(m.overlayLines()))
	chatW := m.layout.ChatWidth()
	st.Chat.SetSize(chatW, max(h-3-len(m.queueLines()), 1))
	st.Chat.SetMessages(m.ctrl.Chat().Messages(m.ctrl.CurrentCourseID()))
	if st.Search.IsActive() {
		st.Search.SetContent(st.Chat.Lines())
	}
	st.Chat.Render(st.Theme, st.Search.Marked(), st.Search.CurrentMatchLine())
	st.Input.Width = max(chatW-4, 1)

	if n, ok := st.Toasts.Latest(); ok {
		st.StatusBar.SetToast(&n)
	} else {
		st.StatusBar.SetToast(nil)
	}
	st.StatusBar.SetRight(m.statusRight())

	if st.Chat.Typing() && !st.spinning {
		st.spinning = true
		return st.Chat.SpinnerTick()
	}
	return nil
}

func (m Program) statusRight() string {
	var parts []string
	if m.ctrl.Creating() {
		parts = append(parts, "creating course…")
	}
	if m.ctrl.Uploading() {
		parts = append(parts, "uploading…")
	}
	if m.ctrl.Panel().IsResizing() {
		parts = append(parts, fmt.Sprintf("panel %d", m.ctrl.Panel().Width()))
	}
	parts = append(parts, m.state.Theme.Name)
	return strings.Join(parts, "  ")
}

func (m Program) queueLines() []string {
	q := m.ctrl.Queue()
	return components.RenderUploadQueue(q.Files(), q.Dragging(), m.ctrl.Uploading(), m.layout.ChatWidth(), m.state.Theme)
}

func (m Program) overlayLines() []string {
	st := m.state
	w := st.Width
	switch {
	case st.ShowHelp:
		return helpLines(w, st.Theme)
	case st.Dialog != nil:
		lines := []string{st.Theme.DividerText(strings.Repeat("─", w))}
		return append(lines, st.Dialog.RenderOverlay(w, st.Theme)...)
	case st.Search.IsActive():
		return st.Search.RenderOverlay(w, st.Theme)
	}
	return nil
}

func (m Program) View() string {
	st := m.state
	if st.Width == 0 || st.Height == 0 {
		return "Loading..."
	}
	th := st.Theme
	overlay := m.overlayLines()
	h := m.layout.ContentHeight(len(overlay))

	var sidebar []string
	if w := m.layout.SidebarWidth(); w > 0 {
		sidebar = st.Sidebar.Render(components.SidebarState{
			CurrentID: m.ctrl.CurrentCourseID(),
			Topic:     m.ctrl.SelectedTopic(),
			Materials: m.materialCounts(),
			Focused:   !st.Typing && st.Dialog == nil,
		}, w, h, th)
	}
	var right []string
	if w := m.layout.RightWidth(); w > 0 {
		right = components.RenderRightPanel(m.slidesState(), st.VideoCollapsed, st.Player, w, h, th)
	}

	topLeft := th.Title("StudyBuddy")
	if c, ok := m.ctrl.CurrentCourse(); ok {
		topLeft += th.Muted(" | ") + th.Primary(c.Name)
		if t := m.ctrl.SelectedTopic(); t != "" {
			topLeft += th.Muted(" › " + t)
		}
	}
	topRight := th.Muted(fmt.Sprintf("%d course(s)", len(m.ctrl.Courses())))

	return m.layout.RenderFrame(topLeft, topRight, sidebar, m.chatLines(h), right, overlay, st.StatusBar.Render(st.Width, th), th)
}

func (m Program) chatLines(h int) []string {
	st := m.state
	th := st.Theme
	w := m.layout.ChatWidth()
	c, ok := m.ctrl.CurrentCourse()
	if !ok {
		return emptyState(w, h, th)
	}

	header := th.Title(" Chat") + th.Muted(" · "+c.Name)
	if m.ctrl.Sending() {
		header += th.Muted("  (waiting for reply)")
	}
	lines := []string{header}
	if len(st.Chat.Lines()) == 0 {
		body := make([]string, 0, st.Chat.Height())
		body = append(body, "", components.Center(th.Muted("Ask a question about "+c.Name+" to get started."), w))
		lines = append(lines, components.Clip(body, st.Chat.Height())...)
		for len(lines) < 1+st.Chat.Height() {
			lines = append(lines, "")
		}
	} else {
		lines = append(lines, strings.Split(st.Chat.View(), "\n")...)
	}
	lines = append(lines, m.queueLines()...)
	lines = append(lines, th.DividerText(strings.Repeat("─", w)))
	input := st.Input.View()
	if !st.Typing {
		input = th.Muted(" press i to type a message")
	}
	return append(lines, input)
}

func emptyState(w, h int, th theme.Theme) []string {
	lines := []string{
		"", "",
		components.Center(th.Title("Welcome to StudyBuddy"), w),
		"",
	}
	for _, l := range components.Wrap("Get started by creating your first course. Upload materials, and let our AI assistant help you study smarter.", max(w-8, 10)) {
		lines = append(lines, components.Center(th.Muted(l), w))
	}
	lines = append(lines, "",
		components.Center(th.Button("n: Create Your First Course"), w),
		"",
		components.Center(th.Muted("── Features ──"), w),
		components.Center(th.Primary("Upload Materials")+th.Muted(": add PDFs, slides, and lecture recordings"), w),
		components.Center(th.Primary("AI-Powered Learning")+th.Muted(": ask questions and get instant answers"), w),
	)
	return components.Clip(lines, h)
}

func (m Program) slidesState() components.SlidesState {
	st := m.state
	id, name, ok := m.slideDeck()
	s := components.SlidesState{
		Collapsed:    st.SlidesCollapsed,
		HasMaterials: ok,
		Name:         name,
		Page:         m.ctrl.PageNumber(),
	}
	if !ok || m.opts.Documents == nil {
		return s
	}
	key := deckKey(id)
	switch {
	case st.DocLoading == key:
		s.Loading = true
	case st.DocFailed == key:
		s.Err = st.DocErr
	case st.DocShown == key && st.Docs.Current() != nil:
		b := st.Docs.Current()
		s.Pages = b.Pages
		s.Text = st.PageText
		switch {
		case b.ParseErr != nil:
			s.Err = "Preview unavailable: " + b.ParseErr.Error()
		case st.PageErr != "":
			s.Err = st.PageErr
		}
	}
	return s
}

func (m Program) materialCounts() map[string]int {
	out := make(map[string]int)
	for _, mat := range m.ctrl.Materials() {
		out[mat.CourseID]++
	}
	return out
}
