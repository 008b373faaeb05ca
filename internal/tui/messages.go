package tui

import (
	"github.com/interpretive-systems/studybuddy/internal/app"
	"github.com/interpretive-systems/studybuddy/internal/types"
	"github.com/interpretive-systems/studybuddy/internal/viewer"
)

// tickMsg drives playback time and toast expiry.
type tickMsg struct{}

// replyMsg carries a finished chat exchange.
type replyMsg struct {
	result app.SendResult
}

// uploadDoneMsg carries a finished upload batch.
type uploadDoneMsg struct {
	result app.UploadResult
}

// clipMsg carries the resolved lecture clip.
type clipMsg struct {
	clip viewer.Clip
	err  error
}

// clipDeletedMsg reports a deleted recording.
type clipDeletedMsg struct {
	id  string
	err error
}

// docMsg carries a downloaded slide deck.
type docMsg struct {
	id   string
	blob *viewer.Blob
	err  error
}

// pageTextMsg carries the text of one slide page.
type pageTextMsg struct {
	key  pageKey
	text string
	err  error
}

// dropEnterMsg signals files arriving in the drop folder.
type dropEnterMsg struct{}

// dropMsg delivers the settled drop folder files.
type dropMsg struct {
	paths []string
}

// droppedFilesMsg carries the dropped files once read.
type droppedFilesMsg struct {
	files []types.UploadedFile
	err   error
}
