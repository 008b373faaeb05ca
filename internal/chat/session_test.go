package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/interpretive-systems/studybuddy/internal/api"
	"github.com/interpretive-systems/studybuddy/internal/types"
)

func newTestStore() *Store {
	s := NewStore()
	n := 0
	s.newID = func() string { n++; return fmt.Sprintf("m%d", n) }
	s.now = func() time.Time { return time.Date(2025, 11, 16, 11, 30, 0, 0, time.UTC) }
	return s
}

func TestBegin_AppendsUserAndPlaceholder(t *testing.T) {
	s := newTestStore()
	s.SetInput("what is entropy?")
	p, ok := s.Begin("c1", "  what is entropy?  ")
	if !ok {
		t.Fatal("Begin returned false")
	}
	msgs := s.Messages("c1")
	if len(msgs) != 2 {
		t.Fatalf("len = %d, want 2", len(msgs))
	}
	if msgs[0].Role != types.RoleUser || msgs[0].Content != "what is entropy?" {
		t.Fatalf("user message = %+v", msgs[0])
	}
	if msgs[1].Role != types.RoleAssistant || !msgs[1].IsTyping || msgs[1].Content != "" {
		t.Fatalf("placeholder = %+v", msgs[1])
	}
	if p.PlaceholderID != msgs[1].ID || p.Text != "what is entropy?" {
		t.Fatalf("pending = %+v", p)
	}
	if s.Input() != "" {
		t.Fatalf("input not cleared: %q", s.Input())
	}
	if !s.IsSending("c1") {
		t.Fatal("expected sending")
	}
}

func TestBegin_NoOps(t *testing.T) {
	s := newTestStore()
	for _, text := range []string{"", "   ", "\n\t"} {
		if _, ok := s.Begin("c1", text); ok {
			t.Fatalf("Begin(%q) should be a no-op", text)
		}
	}
	if _, ok := s.Begin("", "hi"); ok {
		t.Fatal("Begin without course should be a no-op")
	}
	if _, ok := s.Begin("c1", "first"); !ok {
		t.Fatal("first Begin failed")
	}
	s.SetInput("draft")
	if _, ok := s.Begin("c1", "second"); ok {
		t.Fatal("Begin while sending should be a no-op")
	}
	if n := len(s.Messages("c1")); n != 2 {
		t.Fatalf("messages = %d, want 2", n)
	}
	if s.Input() != "draft" {
		t.Fatal("ignored Begin must not touch the input buffer")
	}
	// Another course is independent.
	if _, ok := s.Begin("c2", "hello"); !ok {
		t.Fatal("Begin on another course should proceed")
	}
}

func TestComplete_FillsPlaceholderInPlace(t *testing.T) {
	s := newTestStore()
	p1, _ := s.Begin("c1", "one")
	if !s.Complete(p1, "answer one") {
		t.Fatal("Complete returned false")
	}
	p2, _ := s.Begin("c1", "two")
	before := s.Messages("c1")
	s.Complete(p2, "answer two")
	after := s.Messages("c1")
	if len(after) != len(before) || len(after) != 4 {
		t.Fatalf("len before=%d after=%d", len(before), len(after))
	}
	for i := range after {
		if after[i].ID != before[i].ID {
			t.Fatalf("message %d reordered", i)
		}
	}
	if after[1].Content != "answer one" || after[3].Content != "answer two" || after[3].IsTyping {
		t.Fatalf("history = %+v", after)
	}
	if s.IsSending("c1") {
		t.Fatal("should be idle")
	}
}

func TestComplete_AfterClear(t *testing.T) {
	s := newTestStore()
	p, _ := s.Begin("c1", "one")
	s.Clear("c1")
	if s.Complete(p, "late") {
		t.Fatal("Complete should report a missing placeholder")
	}
	if len(s.Messages("c1")) != 0 || s.IsSending("c1") {
		t.Fatal("cleared history must stay empty and idle")
	}
}

func TestDeleteHistory(t *testing.T) {
	s := newTestStore()
	s.Ensure("c1")
	s.SetSessionID("c1", "s1")
	if !s.HasHistory("c1") {
		t.Fatal("Ensure should create an entry")
	}
	s.DeleteHistory("c1")
	if s.HasHistory("c1") || s.SessionID("c1") != "" {
		t.Fatal("DeleteHistory should drop the entry and session")
	}
}

func TestMessages_ReturnsCopy(t *testing.T) {
	s := newTestStore()
	s.Begin("c1", "hi")
	msgs := s.Messages("c1")
	msgs[0].Content = "mutated"
	if s.Messages("c1")[0].Content != "hi" {
		t.Fatal("Messages must not alias internal state")
	}
}

func TestLastReply(t *testing.T) {
	s := newTestStore()
	if _, ok := s.LastReply("c1"); ok {
		t.Fatal("no reply expected")
	}
	p, _ := s.Begin("c1", "hi")
	if _, ok := s.LastReply("c1"); ok {
		t.Fatal("typing placeholder is not a reply")
	}
	s.Complete(p, "hello")
	if got, _ := s.LastReply("c1"); got != "hello" {
		t.Fatalf("LastReply = %q", got)
	}
}

func TestMockResponder(t *testing.T) {
	m := &MockResponder{Replies: []string{"a", "b", "c"}, Intn: func(n int) int { return n - 1 }}
	r, err := m.Respond(context.Background(), Request{Message: "x", SessionID: "s"})
	if err != nil {
		t.Fatal(err)
	}
	if r.Message != "c" || r.SessionID != "s" {
		t.Fatalf("reply = %+v", r)
	}
}

func TestMockResponder_Cancel(t *testing.T) {
	m := &MockResponder{MinDelay: time.Hour, MaxDelay: 2 * time.Hour}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := m.Respond(ctx, Request{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
}

func TestMockResponder_DefaultPool(t *testing.T) {
	m := NewMockResponder()
	m.MinDelay, m.MaxDelay = 0, 0
	r, err := m.Respond(context.Background(), Request{})
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, c := range CannedReplies {
		if c == r.Message {
			found = true
		}
	}
	if !found {
		t.Fatalf("reply %q not from the canned pool", r.Message)
	}
}

func TestRemoteResponder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"course_id":"c1"`) {
			t.Errorf("body = %s", body)
		}
		_, _ = io.WriteString(w, `{"message":"remote answer","session_id":"s9"}`)
	}))
	defer srv.Close()
	rr := NewRemoteResponder(api.New(api.Endpoints{API: srv.URL}))
	r, err := rr.Respond(context.Background(), Request{Message: "q", CourseID: "c1"})
	if err != nil {
		t.Fatal(err)
	}
	if r.Message != "remote answer" || r.SessionID != "s9" {
		t.Fatalf("reply = %+v", r)
	}
}
