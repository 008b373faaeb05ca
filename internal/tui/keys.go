package tui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
)

// KeyAction represents an action triggered by a key press outside the chat
// input.
type KeyAction int

const (
	ActionNone KeyAction = iota
	ActionQuit
	ActionToggleHelp
	ActionFocusInput
	ActionOpenSearch
	ActionMoveUp
	ActionMoveDown
	ActionGoToTop
	ActionGoToBottom
	ActionSelect
	ActionNewCourse
	ActionDeleteCourse
	ActionOpenMaterials
	ActionAddFiles
	ActionUpload
	ActionDequeue
	ActionClearQueue
	ActionClearChat
	ActionCopyReply
	ActionScrollUp
	ActionScrollDown
	ActionHalfPageUp
	ActionHalfPageDown
	ActionToggleTheme
	ActionToggleSidebar
	ActionToggleRightPanel
	ActionToggleSlides
	ActionToggleVideo
	ActionPanelWider
	ActionPanelNarrower
	ActionPrevPage
	ActionNextPage
	ActionPlayPause
	ActionSkipBack
	ActionSkipForward
	ActionCopyClipURL
	ActionReloadClip
	ActionDeleteClip
)

// KeyHandler handles key input and maintains the count buffer.
type KeyHandler struct {
	keyBuffer string
}

// NewKeyHandler creates a new key handler.
func NewKeyHandler() *KeyHandler {
	return &KeyHandler{}
}

// Handle processes a key message and returns the action with its count.
// Digits accumulate into the count for the next action.
func (k *KeyHandler) Handle(msg tea.KeyMsg) (KeyAction, int) {
	key := msg.String()
	if isNumericKey(key) && !(key == "0" && k.keyBuffer == "") {
		k.keyBuffer += key
		return ActionNone, 0
	}
	count := 1
	if k.keyBuffer != "" {
		if n, err := strconv.Atoi(k.keyBuffer); err == nil && n > 0 {
			count = n
		}
	}
	k.keyBuffer = ""
	return keyToAction(key), count
}

// KeyBuffer returns the pending count digits.
func (k *KeyHandler) KeyBuffer() string {
	return k.keyBuffer
}

// ClearBuffer drops pending digits.
func (k *KeyHandler) ClearBuffer() {
	k.keyBuffer = ""
}

func keyToAction(key string) KeyAction {
	switch key {
	case "ctrl+c", "q":
		return ActionQuit
	case "?", "h":
		return ActionToggleHelp
	case "i", "tab":
		return ActionFocusInput
	case "/":
		return ActionOpenSearch
	case "k", "up":
		return ActionMoveUp
	case "j", "down":
		return ActionMoveDown
	case "g", "home":
		return ActionGoToTop
	case "G", "end":
		return ActionGoToBottom
	case "enter":
		return ActionSelect
	case "n":
		return ActionNewCourse
	case "D":
		return ActionDeleteCourse
	case "m":
		return ActionOpenMaterials
	case "a":
		return ActionAddFiles
	case "U":
		return ActionUpload
	case "x":
		return ActionDequeue
	case "X":
		return ActionClearQueue
	case "c":
		return ActionClearChat
	case "y":
		return ActionCopyReply
	case "ctrl+y":
		return ActionScrollUp
	case "ctrl+e":
		return ActionScrollDown
	case "K", "ctrl+u", "pgup":
		return ActionHalfPageUp
	case "J", "ctrl+d", "pgdown":
		return ActionHalfPageDown
	case "t":
		return ActionToggleTheme
	case "b":
		return ActionToggleSidebar
	case "p":
		return ActionToggleRightPanel
	case "s":
		return ActionToggleSlides
	case "v":
		return ActionToggleVideo
	case "<":
		return ActionPanelWider
	case ">":
		return ActionPanelNarrower
	case "[":
		return ActionPrevPage
	case "]":
		return ActionNextPage
	case " ":
		return ActionPlayPause
	case ",":
		return ActionSkipBack
	case ".":
		return ActionSkipForward
	case "Y":
		return ActionCopyClipURL
	case "r":
		return ActionReloadClip
	case "V":
		return ActionDeleteClip
	default:
		return ActionNone
	}
}

func isNumericKey(key string) bool {
	return len(key) == 1 && key >= "0" && key <= "9"
}
