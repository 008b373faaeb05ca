package chat

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/interpretive-systems/studybuddy/internal/api"
)

// Request is one user message sent to a Responder.
type Request struct {
	Message   string
	CourseID  string
	SessionID string
}

// Reply is the assistant answer. SessionID is empty when the responder does
// not track sessions.
type Reply struct {
	Message   string
	SessionID string
}

// Responder produces the assistant side of an exchange.
type Responder interface {
	Respond(ctx context.Context, req Request) (Reply, error)
}

// ResponderFunc adapts a function to Responder.
type ResponderFunc func(ctx context.Context, req Request) (Reply, error)

func (f ResponderFunc) Respond(ctx context.Context, req Request) (Reply, error) {
	return f(ctx, req)
}

// CannedReplies is the pool the offline responder picks from.
var CannedReplies = []string{
	"Based on the lecture materials, this concept relates to the fundamental principles we discussed in Unit 1. Let me break it down for you...",
	"Great question! According to the course content, this topic is covered in depth in the slides. Here's what you need to know...",
	"I can help you with that. Looking at the practice problems, this is a common area where students need clarification. Let me explain...",
	"That's an interesting point. From the lecture recordings, the professor emphasized this concept multiple times. Here's the key takeaway...",
	"Let me walk you through this step by step. First, we need to understand the foundational concept, then we can apply it to your specific question...",
	"This is directly related to what we covered in the previous unit. The connection between these topics is important because...",
	"Good observation! The syllabus mentions this as a critical learning objective. Here's how it ties into the broader course goals...",
	"I see what you're asking about. This appears in several of your course materials. Let me synthesize the information for you...",
}

// MockResponder answers offline after a random delay in [MinDelay, MaxDelay)
// with a reply drawn uniformly from Replies.
type MockResponder struct {
	MinDelay time.Duration
	MaxDelay time.Duration
	Replies  []string
	// Intn returns a value in [0, n). Defaults to math/rand/v2.
	Intn func(n int) int
}

// NewMockResponder returns a responder with a 1-2 second latency and the
// canned pool.
func NewMockResponder() *MockResponder {
	return &MockResponder{
		MinDelay: time.Second,
		MaxDelay: 2 * time.Second,
		Replies:  CannedReplies,
	}
}

func (m *MockResponder) intn(n int) int {
	if m.Intn != nil {
		return m.Intn(n)
	}
	return rand.IntN(n)
}

func (m *MockResponder) Respond(ctx context.Context, req Request) (Reply, error) {
	delay := m.MinDelay
	if span := m.MaxDelay - m.MinDelay; span > 0 {
		delay += rand.N(span)
	}
	if delay > 0 {
		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return Reply{}, ctx.Err()
		case <-t.C:
		}
	} else if err := ctx.Err(); err != nil {
		return Reply{}, err
	}
	replies := m.Replies
	if len(replies) == 0 {
		replies = CannedReplies
	}
	return Reply{Message: replies[m.intn(len(replies))], SessionID: req.SessionID}, nil
}

// RemoteResponder answers through the backend chat endpoint.
type RemoteResponder struct {
	client *api.Client
}

// NewRemoteResponder wraps client.
func NewRemoteResponder(client *api.Client) *RemoteResponder {
	return &RemoteResponder{client: client}
}

func (r *RemoteResponder) Respond(ctx context.Context, req Request) (Reply, error) {
	resp, err := r.client.SendChat(ctx, api.ChatRequest{
		Message:   req.Message,
		CourseID:  req.CourseID,
		SessionID: req.SessionID,
	})
	if err != nil {
		return Reply{}, err
	}
	sid := resp.SessionID
	if sid == "" {
		sid = req.SessionID
	}
	return Reply{Message: resp.Message, SessionID: sid}, nil
}
