package viewer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/interpretive-systems/studybuddy/internal/api"
)

// buildPDF returns a single-page PDF showing text, with a correct xref table.
func buildPDF(text string) []byte {
	content := fmt.Sprintf("BT /F1 24 Tf 72 700 Td (%s) Tj ET", text)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

type fakeDocs struct {
	docs  []api.DocumentRef
	files map[string][]byte
	err   error
}

func (f *fakeDocs) ListDocuments(ctx context.Context) ([]api.DocumentRef, error) {
	return f.docs, f.err
}

func (f *fakeDocs) FetchDocument(ctx context.Context, id string) (io.ReadCloser, error) {
	data, ok := f.files[id]
	if !ok {
		return nil, &api.Error{Op: "fetch document", Status: 404}
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func TestDownload_ReadsPages(t *testing.T) {
	src := &fakeDocs{files: map[string][]byte{"d1": buildPDF("Hello slide")}}
	b, err := Download(context.Background(), src, t.TempDir(), "d1")
	if err != nil {
		t.Fatal(err)
	}
	if b.ParseErr != nil || b.Pages != 1 {
		t.Fatalf("pages=%d err=%v", b.Pages, b.ParseErr)
	}
	text, err := b.PageText(1)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text, "Hello") {
		t.Fatalf("text = %q", text)
	}
	if _, err := b.PageText(2); err == nil {
		t.Fatal("expected out of range error")
	}
}

func TestDownload_NotAPDF(t *testing.T) {
	src := &fakeDocs{files: map[string][]byte{"d1": []byte("plain text")}}
	b, err := Download(context.Background(), src, t.TempDir(), "d1")
	if err != nil {
		t.Fatal(err)
	}
	if b.ParseErr == nil {
		t.Fatal("expected parse error")
	}
	if _, err := b.PageText(1); err == nil {
		t.Fatal("PageText should fail on an unreadable blob")
	}
}

func TestDownload_FetchError(t *testing.T) {
	dir := t.TempDir()
	if _, err := Download(context.Background(), &fakeDocs{}, dir, "missing"); api.StatusCode(err) != 404 {
		t.Fatalf("err = %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatal("failed download left files behind")
	}
}

func TestDocuments_ReleasesSupersededBlob(t *testing.T) {
	dir := t.TempDir()
	src := &fakeDocs{files: map[string][]byte{"a": buildPDF("A"), "b": buildPDF("B")}}
	d := NewDocuments(nil)

	first, err := Download(context.Background(), src, dir, "a")
	if err != nil {
		t.Fatal(err)
	}
	firstPath := first.Path
	d.Show(first)
	second, err := Download(context.Background(), src, dir, "b")
	if err != nil {
		t.Fatal(err)
	}
	secondPath := second.Path
	d.Show(second)

	if _, err := os.Stat(firstPath); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("superseded blob not released")
	}
	if d.Current() != second {
		t.Fatal("current blob not replaced")
	}
	if err := d.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(secondPath); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("blob not released on Close")
	}
	if d.Current() != nil {
		t.Fatal("Close should clear the current blob")
	}
}

func TestDocuments_ReplaceDuringPageText(t *testing.T) {
	dir := t.TempDir()
	src := &fakeDocs{files: map[string][]byte{"a": buildPDF("A"), "b": buildPDF("B")}}
	d := NewDocuments(nil)
	first, err := Download(context.Background(), src, dir, "a")
	if err != nil {
		t.Fatal(err)
	}
	second, err := Download(context.Background(), src, dir, "b")
	if err != nil {
		t.Fatal(err)
	}
	d.Show(first)

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Either the text or an open error once the file is gone.
			_, _ = first.PageText(1)
		}()
	}
	d.Show(second)
	d.Show(&Blob{})
	wg.Wait()

	if first.Path == "" || first.Pages != 1 {
		t.Fatalf("released blob was mutated: %+v", first)
	}
	if _, err := first.PageText(1); err == nil {
		t.Fatal("PageText on a released blob should fail")
	}
	if err := d.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestFirstDocument(t *testing.T) {
	if _, err := FirstDocument(context.Background(), &fakeDocs{}); !errors.Is(err, ErrNoDocuments) {
		t.Fatalf("err = %v", err)
	}
	ref, err := FirstDocument(context.Background(), &fakeDocs{docs: []api.DocumentRef{{ID: "x"}, {ID: "y"}}})
	if err != nil || ref.ID != "x" {
		t.Fatalf("ref=%+v err=%v", ref, err)
	}
}

type fakeVideos struct {
	vids    []api.VideoRef
	err     error
	deleted []string
}

func (f *fakeVideos) ListVideos(ctx context.Context) ([]api.VideoRef, error) { return f.vids, f.err }
func (f *fakeVideos) DeleteVideo(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}
func (f *fakeVideos) VideoFileURL(id string) string { return "http://v/api/videos/" + id + "/file" }

func TestResolveFirst(t *testing.T) {
	tests := []struct {
		name    string
		src     *fakeVideos
		wantErr error
		wantURL string
	}{
		{"empty", &fakeVideos{}, ErrNoVideos, ""},
		{"no id", &fakeVideos{vids: []api.VideoRef{{Title: "x"}}}, ErrInvalidVideo, ""},
		{"ok", &fakeVideos{vids: []api.VideoRef{{ID: "v1", Title: "W1"}, {ID: "v2"}}}, nil, "http://v/api/videos/v1/file"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clip, err := ResolveFirst(context.Background(), tc.src)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
			if clip.URL != tc.wantURL {
				t.Fatalf("url = %q", clip.URL)
			}
		})
	}
}

func TestPlayer(t *testing.T) {
	var p Player
	if !p.NeedsLoad() {
		t.Fatal("fresh player should need a load")
	}
	p.TogglePlay()
	if p.Playing() {
		t.Fatal("cannot play without a clip")
	}
	p.StartLoad()
	if p.NeedsLoad() || !p.Loading() {
		t.Fatal("load in flight")
	}
	p.Loaded(Clip{ID: "v1"}, nil)
	p.TogglePlay()
	p.Advance(3 * time.Second)
	p.Skip(SkipStep)
	if p.Position() != 13*time.Second {
		t.Fatalf("position = %v", p.Position())
	}
	p.Skip(-time.Minute)
	if p.Position() != 0 {
		t.Fatalf("position = %v", p.Position())
	}
	p.TogglePlay()
	p.Advance(time.Second)
	if p.Position() != 0 {
		t.Fatal("paused player advanced")
	}

	p.Reset()
	p.StartLoad()
	p.Loaded(Clip{}, ErrNoVideos)
	if p.NeedsLoad() || !errors.Is(p.Err(), ErrNoVideos) {
		t.Fatal("error should stop automatic reloads")
	}
}
