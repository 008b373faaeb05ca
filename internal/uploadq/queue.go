// Package uploadq holds the files a user has selected or dropped but not yet
// uploaded.
package uploadq

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/interpretive-systems/studybuddy/internal/notify"
	"github.com/interpretive-systems/studybuddy/internal/types"
)

// Queue is the upload queue. It is not safe for concurrent use; the owning
// controller serialises access.
type Queue struct {
	files    []types.UploadedFile
	dragging bool
	notifier notify.Notifier
}

// New returns an empty queue reporting through n.
func New(n notify.Notifier) *Queue {
	if n == nil {
		n = notify.Discard
	}
	return &Queue{notifier: n}
}

// Enqueue appends the PDF files among files, in order. Any rejected file
// raises one warning notification.
func (q *Queue) Enqueue(files ...types.UploadedFile) {
	accepted := make([]types.UploadedFile, 0, len(files))
	for _, f := range files {
		if f.IsPDF() {
			accepted = append(accepted, f)
		}
	}
	if len(accepted) != len(files) {
		q.notifier.Notify(notify.Notification{
			Title:       "Invalid file type",
			Description: "Only PDF files are allowed. Non-PDF files have been filtered out.",
			Variant:     notify.VariantDestructive,
		})
	}
	q.files = append(q.files, accepted...)
}

// Dequeue removes the file at index. Out of range indexes are ignored.
func (q *Queue) Dequeue(index int) {
	if index < 0 || index >= len(q.files) {
		return
	}
	removed := q.files[index]
	q.files = append(q.files[:index:index], q.files[index+1:]...)
	q.notifier.Notify(notify.Notification{
		Title:       "File removed",
		Description: fmt.Sprintf("%s removed from upload queue", removed.Name),
	})
}

// Clear empties the queue.
func (q *Queue) Clear() {
	q.files = nil
}

// Replace swaps the queue contents for files, typically the ones that failed
// to upload.
func (q *Queue) Replace(files []types.UploadedFile) {
	q.files = append([]types.UploadedFile(nil), files...)
}

// Files returns a copy of the queued files.
func (q *Queue) Files() []types.UploadedFile {
	return append([]types.UploadedFile(nil), q.files...)
}

// Len returns the number of queued files.
func (q *Queue) Len() int {
	return len(q.files)
}

// LoadFiles reads paths from disk into UploadedFiles, sniffing the MIME type
// from content. It stops at the first unreadable path.
func LoadFiles(paths ...string) ([]types.UploadedFile, error) {
	out := make([]types.UploadedFile, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return out, fmt.Errorf("read %s: %w", p, err)
		}
		out = append(out, types.UploadedFile{
			Name:     filepath.Base(p),
			MimeType: mimetype.Detect(data).String(),
			Data:     data,
			Path:     p,
		})
	}
	return out, nil
}
