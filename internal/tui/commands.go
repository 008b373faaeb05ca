package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/interpretive-systems/studybuddy/internal/app"
	"github.com/interpretive-systems/studybuddy/internal/uploadq"
	"github.com/interpretive-systems/studybuddy/internal/viewer"
)

// ToastTTL is how long a notification stays in the status bar.
const ToastTTL = 5 * time.Second

const (
	viewerTimeout = time.Minute
	tickInterval  = time.Second
)

// sendReply runs a chat job.
func sendReply(job func() app.SendResult) tea.Cmd {
	return func() tea.Msg {
		return replyMsg{result: job()}
	}
}

// runUpload runs an upload job.
func runUpload(job func() app.UploadResult) tea.Cmd {
	return func() tea.Msg {
		return uploadDoneMsg{result: job()}
	}
}

// Viewer fetches derive from the controller context so Close cancels them.

// loadClip resolves the first lecture recording.
func loadClip(parent context.Context, src viewer.VideoSource) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, viewerTimeout)
		defer cancel()
		c, err := viewer.ResolveFirst(ctx, src)
		return clipMsg{clip: c, err: err}
	}
}

// deleteClip removes a recording from the catalogue.
func deleteClip(parent context.Context, src viewer.VideoSource, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, viewerTimeout)
		defer cancel()
		return clipDeletedMsg{id: id, err: src.DeleteVideo(ctx, id)}
	}
}

// loadDocument downloads a slide deck. An empty id takes the first entry of
// the document catalogue.
func loadDocument(parent context.Context, src viewer.DocumentSource, dir, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, viewerTimeout)
		defer cancel()
		want := id
		if want == "" {
			ref, err := viewer.FirstDocument(ctx, src)
			if err != nil {
				return docMsg{id: id, err: err}
			}
			want = ref.ID
		}
		b, err := viewer.Download(ctx, src, dir, want)
		return docMsg{id: id, blob: b, err: err}
	}
}

// loadPageText extracts one page of a downloaded deck.
func loadPageText(b *viewer.Blob, key pageKey) tea.Cmd {
	return func() tea.Msg {
		text, err := b.PageText(key.page)
		return pageTextMsg{key: key, text: text, err: err}
	}
}

// readDropped loads the files that settled in the drop folder.
func readDropped(paths []string) tea.Cmd {
	return func() tea.Msg {
		files, err := uploadq.LoadFiles(paths...)
		return droppedFilesMsg{files: files, err: err}
	}
}

// savePrefs persists a preference off the UI loop.
func savePrefs(log *zap.Logger, save func() error) tea.Cmd {
	return func() tea.Msg {
		if err := save(); err != nil {
			log.Warn("save preferences", zap.Error(err))
		}
		return nil
	}
}

// tickOnce schedules a single clock tick.
func tickOnce() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}
