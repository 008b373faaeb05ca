// Package chat holds per-course chat histories and the responders that answer
// user messages.
package chat

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/interpretive-systems/studybuddy/internal/types"
)

// Pending identifies an exchange started by Begin and awaiting its reply.
type Pending struct {
	CourseID      string
	PlaceholderID string
	Text          string
	SessionID     string
}

// Store keeps the chat history of every course. Each course is either idle or
// sending; a course that is sending ignores further Begin calls.
//
// Store is not safe for concurrent use. The owner serialises access.
type Store struct {
	histories map[string][]types.ChatMessage
	sending   map[string]bool
	sessions  map[string]string
	input     string

	now   func() time.Time
	newID func() string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		histories: make(map[string][]types.ChatMessage),
		sending:   make(map[string]bool),
		sessions:  make(map[string]string),
		now:       time.Now,
		newID:     func() string { return uuid.NewString() },
	}
}

// Input returns the unsent text buffer.
func (s *Store) Input() string { return s.input }

// SetInput replaces the unsent text buffer.
func (s *Store) SetInput(v string) { s.input = v }

// IsSending reports whether courseID has an exchange in flight.
func (s *Store) IsSending(courseID string) bool { return s.sending[courseID] }

// SessionID returns the backend chat session for courseID, if any.
func (s *Store) SessionID(courseID string) string { return s.sessions[courseID] }

// SetSessionID records the backend chat session for courseID.
func (s *Store) SetSessionID(courseID, id string) {
	if courseID == "" || id == "" {
		return
	}
	s.sessions[courseID] = id
}

// Ensure creates an empty history for courseID if none exists.
func (s *Store) Ensure(courseID string) {
	if _, ok := s.histories[courseID]; !ok {
		s.histories[courseID] = []types.ChatMessage{}
	}
}

// Messages returns a copy of the history for courseID.
func (s *Store) Messages(courseID string) []types.ChatMessage {
	h := s.histories[courseID]
	out := make([]types.ChatMessage, len(h))
	copy(out, h)
	return out
}

// Begin starts an exchange: it appends the user message and a typing
// placeholder, clears the input buffer and marks the course as sending. It
// returns false without changing anything when text is blank, courseID is
// empty or the course is already sending.
func (s *Store) Begin(courseID, text string) (Pending, bool) {
	text = strings.TrimSpace(text)
	if text == "" || courseID == "" || s.sending[courseID] {
		return Pending{}, false
	}
	now := s.now()
	user := types.ChatMessage{
		ID:        s.newID(),
		Role:      types.RoleUser,
		Content:   text,
		Timestamp: now,
	}
	placeholder := types.ChatMessage{
		ID:        s.newID(),
		Role:      types.RoleAssistant,
		Timestamp: now,
		IsTyping:  true,
	}
	s.histories[courseID] = append(s.histories[courseID], user, placeholder)
	s.input = ""
	s.sending[courseID] = true
	return Pending{
		CourseID:      courseID,
		PlaceholderID: placeholder.ID,
		Text:          text,
		SessionID:     s.sessions[courseID],
	}, true
}

// Complete fills the placeholder of p with content and returns the course to
// idle. It reports whether the placeholder was still present; when the
// history was cleared meanwhile only the sending flag is reset.
func (s *Store) Complete(p Pending, content string) bool {
	delete(s.sending, p.CourseID)
	h := s.histories[p.CourseID]
	for i := range h {
		if h[i].ID == p.PlaceholderID {
			h[i].Content = content
			h[i].IsTyping = false
			return true
		}
	}
	return false
}

// Clear empties the history of courseID. The backend session is forgotten so
// the next message starts a fresh conversation.
func (s *Store) Clear(courseID string) {
	if courseID == "" {
		return
	}
	s.histories[courseID] = []types.ChatMessage{}
	delete(s.sessions, courseID)
}

// DeleteHistory removes every trace of courseID.
func (s *Store) DeleteHistory(courseID string) {
	delete(s.histories, courseID)
	delete(s.sending, courseID)
	delete(s.sessions, courseID)
}

// HasHistory reports whether an entry exists for courseID.
func (s *Store) HasHistory(courseID string) bool {
	_, ok := s.histories[courseID]
	return ok
}

// LastReply returns the content of the newest completed assistant message.
func (s *Store) LastReply(courseID string) (string, bool) {
	h := s.histories[courseID]
	for i := len(h) - 1; i >= 0; i-- {
		if h[i].Role == types.RoleAssistant && !h[i].IsTyping && h[i].Content != "" {
			return h[i].Content, true
		}
	}
	return "", false
}
