package tui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/interpretive-systems/studybuddy/internal/notify"
	"github.com/interpretive-systems/studybuddy/internal/theme"
	"github.com/interpretive-systems/studybuddy/internal/tui/components"
	"github.com/interpretive-systems/studybuddy/internal/tui/dialogs"
	"github.com/interpretive-systems/studybuddy/internal/tui/search"
	"github.com/interpretive-systems/studybuddy/internal/viewer"
)

// pageKey identifies the extracted text of one slide page.
type pageKey struct {
	doc  string
	page int
}

// State holds the UI-only state. Domain state lives in app.Controller.
type State struct {
	Width    int
	Height   int
	ShowHelp bool
	// Typing is true while keys go to the chat input.
	Typing bool

	SlidesCollapsed bool
	VideoCollapsed  bool

	// Components
	Sidebar   *components.Sidebar
	Chat      *components.ChatView
	StatusBar *components.StatusBar
	Search    *search.Engine
	Input     textinput.Model

	// Dialog is the open modal, nil when none.
	Dialog dialogs.Dialog

	// Viewer
	Player *viewer.Player
	Docs   *viewer.Documents
	// DocShown is the deck key the current blob was loaded for.
	DocShown    string
	DocLoading  string
	DocFailed   string
	DocErr      string
	PageText    string
	PageTextFor pageKey
	PageErr     string

	Toasts *notify.Center
	Theme  theme.Theme

	spinning bool
}

// NewState creates the initial UI state.
func NewState(dark bool, toasts *notify.Center, docs *viewer.Documents) *State {
	ti := textinput.New()
	ti.Placeholder = "Ask about the lecture content or paste a problem..."
	ti.Prompt = "› "
	ti.CharLimit = 0
	ti.Focus()
	if toasts == nil {
		toasts = notify.NewCenter(5, ToastTTL)
	}
	return &State{
		Typing:    true,
		Sidebar:   components.NewSidebar(),
		Chat:      components.NewChatView(),
		StatusBar: components.NewStatusBar(),
		Search:    search.New(),
		Input:     ti,
		Player:    &viewer.Player{},
		Docs:      docs,
		Toasts:    toasts,
		Theme:     theme.For(dark),
	}
}
