package api

import "context"

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message   string `json:"message"`
	CourseID  string `json:"course_id"`
	SessionID string `json:"session_id,omitempty"`
}

// ChatResponse is the reply of POST /chat. Only Message is guaranteed; any
// extra fields the backend attaches are ignored.
type ChatResponse struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

// SendChat posts one user message and returns the assistant reply.
func (c *Client) SendChat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	var resp ChatResponse
	if err := c.postJSON(ctx, "send chat", c.endpoints.API+"/chat", req, &resp); err != nil {
		return ChatResponse{}, err
	}
	return resp, nil
}
