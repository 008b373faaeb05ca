// Package viewer keeps the state of the slide and lecture clip panels.
//
// Network and disk work happens in the free functions (Download,
// FirstDocument, ResolveFirst), which may run on any goroutine. The stateful
// types are owned by the UI loop.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/interpretive-systems/studybuddy/internal/api"
)

// DocumentSource lists and streams stored documents.
type DocumentSource interface {
	ListDocuments(ctx context.Context) ([]api.DocumentRef, error)
	FetchDocument(ctx context.Context, id string) (io.ReadCloser, error)
}

// ErrNoDocuments is returned when the catalogue is empty.
var ErrNoDocuments = errors.New("no documents")

// FirstDocument returns the first entry of the document catalogue.
func FirstDocument(ctx context.Context, src DocumentSource) (api.DocumentRef, error) {
	docs, err := src.ListDocuments(ctx)
	if err != nil {
		return api.DocumentRef{}, fmt.Errorf("list documents: %w", err)
	}
	if len(docs) == 0 {
		return api.DocumentRef{}, ErrNoDocuments
	}
	return docs[0], nil
}

// Blob is a downloaded document held in a local temporary file. Its fields
// are fixed once Download returns, so PageText may run on any goroutine while
// the UI loop releases the blob. A released blob reports an open error.
type Blob struct {
	DocumentID string
	Path       string
	Pages      int
	// ParseErr is set when the file is not a readable PDF. The blob is still
	// valid and must be released.
	ParseErr error
}

// Download streams document id into a new temporary file under dir (the
// system temp dir when empty) and counts its pages.
func Download(ctx context.Context, src DocumentSource, dir, id string) (*Blob, error) {
	rc, err := src.FetchDocument(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch document %s: %w", id, err)
	}
	defer rc.Close()

	f, err := os.CreateTemp(dir, "studybuddy-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	if _, err := io.Copy(f, rc); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("download document %s: %w", id, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	b := &Blob{DocumentID: id, Path: f.Name()}
	b.Pages, b.ParseErr = countPages(b.Path)
	return b, nil
}

func countPages(path string) (n int, err error) {
	defer func() {
		// The PDF reader panics on some malformed inputs.
		if r := recover(); r != nil {
			n, err = 0, fmt.Errorf("read pdf: %v", r)
		}
	}()
	f, r, err := pdf.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()
	return r.NumPage(), nil
}

// PageText extracts the plain text of page n (1-based).
func (b *Blob) PageText(n int) (text string, err error) {
	if b.ParseErr != nil {
		return "", b.ParseErr
	}
	if n < 1 || n > b.Pages {
		return "", fmt.Errorf("page %d out of range 1..%d", n, b.Pages)
	}
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("extract page %d: %v", n, r)
		}
	}()
	f, r, err := pdf.Open(b.Path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()
	page := r.Page(n)
	if page.V.IsNull() {
		return "", nil
	}
	text, err = page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("extract page %d: %w", n, err)
	}
	return strings.TrimSpace(text), nil
}

func (b *Blob) release() error {
	if b == nil || b.Path == "" {
		return nil
	}
	err := os.Remove(b.Path)
	if errors.Is(err, os.ErrNotExist) {
		err = nil
	}
	return err
}

// Documents tracks the blob shown in the slide panel. Showing a new blob
// releases the previous one.
type Documents struct {
	current *Blob
	log     *zap.Logger
}

// NewDocuments returns an empty tracker.
func NewDocuments(log *zap.Logger) *Documents {
	if log == nil {
		log = zap.NewNop()
	}
	return &Documents{log: log}
}

// Current returns the displayed blob, or nil.
func (d *Documents) Current() *Blob { return d.current }

// Show replaces the displayed blob.
func (d *Documents) Show(b *Blob) {
	if d.current == b {
		return
	}
	if err := d.current.release(); err != nil {
		d.log.Warn("release document", zap.Error(err))
	}
	d.current = b
}

// Close releases the displayed blob.
func (d *Documents) Close() error {
	err := d.current.release()
	d.current = nil
	return err
}
