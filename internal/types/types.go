// Package types defines the client-side data model shared by the controller,
// the API client and the terminal UI.
package types

import (
	"strings"
	"time"
)

// Unit is one block of a course outline.
type Unit struct {
	ID       string   `json:"id" yaml:"id"`
	Title    string   `json:"title" yaml:"title"`
	Children []string `json:"children" yaml:"children"`
}

// Course is a named collection of topic units.
type Course struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Content []Unit `json:"content" yaml:"content"`
}

// FirstTopic returns the first topic of the first unit, or "" when the course
// has no content.
func (c Course) FirstTopic() string {
	if len(c.Content) == 0 || len(c.Content[0].Children) == 0 {
		return ""
	}
	return c.Content[0].Children[0]
}

// MaterialType is the kind of an uploaded artifact.
type MaterialType string

const (
	MaterialPDF   MaterialType = "pdf"
	MaterialVideo MaterialType = "video"
)

// MaterialStatus tracks backend processing of an uploaded document.
type MaterialStatus string

const (
	StatusQueued     MaterialStatus = "queued"
	StatusProcessing MaterialStatus = "processing"
	StatusStored     MaterialStatus = "stored"
)

// Material is an uploaded PDF or video associated with one course.
type Material struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	CourseID   string         `json:"course_id"`
	Type       MaterialType   `json:"type"`
	DocumentID string         `json:"document_id,omitempty"`
	Status     MaterialStatus `json:"status,omitempty"`
}

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one entry of a course's chat history.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	IsTyping  bool      `json:"is_typing,omitempty"`
}

// UploadedFile is a candidate file waiting in the upload queue.
type UploadedFile struct {
	Name     string
	MimeType string
	Data     []byte
	// Path is set when the file was read from disk.
	Path string
}

const pdfMimeType = "application/pdf"

// IsPDF reports whether the file is accepted by the upload queue.
func (f UploadedFile) IsPDF() bool {
	return f.MimeType == pdfMimeType || strings.HasSuffix(strings.ToLower(f.Name), ".pdf")
}
