package devserver_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/interpretive-systems/studybuddy/internal/api"
	"github.com/interpretive-systems/studybuddy/internal/devserver"
	"github.com/interpretive-systems/studybuddy/internal/types"
)

func newServer(t *testing.T) (*devserver.Store, *api.Client) {
	t.Helper()
	store, err := devserver.OpenStore(filepath.Join(t.TempDir(), "dev.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	srv := httptest.NewServer(devserver.NewServer(store, nil).Handler())
	t.Cleanup(srv.Close)
	client := api.New(api.Endpoints{API: srv.URL + "/api", Video: srv.URL, Backend: srv.URL})
	return store, client
}

func TestRoundTrip_CourseChatDocuments(t *testing.T) {
	_, client := newServer(t)
	ctx := context.Background()

	course, err := client.CreateCourse(ctx, "CSC101")
	if err != nil {
		t.Fatalf("CreateCourse: %v", err)
	}
	if course.ID == "" || course.Name != "CSC101" || course.Content == nil {
		t.Fatalf("course = %+v", course)
	}

	doc, err := client.UploadDocument(ctx, course.ID, types.UploadedFile{Name: "week1.pdf", MimeType: "application/pdf", Data: []byte("%PDF-1.4\n%fake\n")})
	if err != nil {
		t.Fatalf("UploadDocument: %v", err)
	}
	if !strings.HasPrefix(doc.DocumentID, "doc_") || doc.Name != "week1.pdf" || doc.Status != types.StatusQueued {
		t.Fatalf("doc = %+v", doc)
	}

	docs, err := client.ListDocuments(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 || docs[0].ID != doc.DocumentID {
		t.Fatalf("docs = %+v", docs)
	}
	rc, err := client.FetchDocument(ctx, doc.DocumentID)
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(rc)
	rc.Close()
	if !strings.HasPrefix(string(body), "%PDF-1.4") {
		t.Fatalf("body = %q", body)
	}

	first, err := client.SendChat(ctx, api.ChatRequest{Message: "hi", CourseID: course.ID})
	if err != nil {
		t.Fatal(err)
	}
	if first.SessionID == "" || !strings.Contains(first.Message, "CSC101 has 1 uploaded document(s)") {
		t.Fatalf("chat = %+v", first)
	}
	second, err := client.SendChat(ctx, api.ChatRequest{Message: "more", CourseID: course.ID, SessionID: first.SessionID})
	if err != nil {
		t.Fatal(err)
	}
	if second.SessionID != first.SessionID || second.Message == first.Message {
		t.Fatalf("second reply should continue the session with the next answer: %+v", second)
	}
}

func TestUpload_RejectsNonPDF(t *testing.T) {
	_, client := newServer(t)
	_, err := client.UploadDocument(context.Background(), "c1", types.UploadedFile{Name: "notes.pdf", Data: []byte("just text")})
	if api.StatusCode(err) != http.StatusUnsupportedMediaType {
		t.Fatalf("err = %v", err)
	}
}

func TestCreateCourse_BlankName(t *testing.T) {
	_, client := newServer(t)
	if _, err := client.CreateCourse(context.Background(), "  "); api.StatusCode(err) != http.StatusBadRequest {
		t.Fatalf("err = %v", err)
	}
}

func TestVideos(t *testing.T) {
	store, client := newServer(t)
	ctx := context.Background()
	dir := t.TempDir()
	for _, name := range []string{"lecture1.mp4", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("video-bytes"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	n, err := store.ImportVideos(ctx, dir, uuid.NewString)
	if err != nil || n != 1 {
		t.Fatalf("ImportVideos = %d, %v", n, err)
	}
	if n, _ := store.ImportVideos(ctx, dir, uuid.NewString); n != 0 {
		t.Fatalf("re-import added %d", n)
	}

	vids, err := client.ListVideos(ctx)
	if err != nil || len(vids) != 1 || vids[0].Title != "lecture1" {
		t.Fatalf("videos = %+v, %v", vids, err)
	}
	resp, err := http.Get(client.VideoFileURL(vids[0].ID))
	if err != nil {
		t.Fatal(err)
	}
	data, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(data) != "video-bytes" {
		t.Fatalf("video body = %q", data)
	}

	if err := client.DeleteVideo(ctx, vids[0].ID); err != nil {
		t.Fatal(err)
	}
	if err := client.DeleteVideo(ctx, vids[0].ID); api.StatusCode(err) != http.StatusNotFound {
		t.Fatalf("second delete err = %v", err)
	}
	if vids, _ := client.ListVideos(ctx); len(vids) != 0 {
		t.Fatalf("videos after delete = %+v", vids)
	}
}
