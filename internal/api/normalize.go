package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/interpretive-systems/studybuddy/internal/types"
)

// The backend is loose about field names: ids arrive as id, course_id,
// document_id, video_id or uuid, sometimes as numbers, and objects may be
// wrapped in an envelope or sent bare. The wire types below accept every known
// shape and the normalise functions collapse them into one canonical record.

// flexString decodes a JSON string or number into a string.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}
	*s = flexString(n.String())
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

type courseWire struct {
	ID       flexString   `json:"id"`
	CourseID flexString   `json:"course_id"`
	Name     string       `json:"name"`
	Content  []types.Unit `json:"content"`
}

// courseEnvelope accepts both {"course": {...}} and a bare course object.
type courseEnvelope struct {
	Course *courseWire `json:"course"`
	courseWire
}

func normalizeCourse(env courseEnvelope, requestedName string) (types.Course, error) {
	w := env.courseWire
	if env.Course != nil {
		w = *env.Course
	}
	id := firstNonEmpty(string(w.ID), string(w.CourseID))
	if id == "" {
		return types.Course{}, fmt.Errorf("course without id: %w", ErrMalformed)
	}
	content := w.Content
	if content == nil {
		content = []types.Unit{}
	}
	return types.Course{
		ID:      id,
		Name:    firstNonEmpty(w.Name, requestedName),
		Content: content,
	}, nil
}

type documentWire struct {
	DocumentID flexString `json:"document_id"`
	ID         flexString `json:"id"`
	UUID       flexString `json:"uuid"`
	Filename   string     `json:"filename"`
	Name       string     `json:"name"`
	Title      string     `json:"title"`
}

func (d documentWire) id() string {
	return firstNonEmpty(string(d.DocumentID), string(d.ID), string(d.UUID))
}

type uploadWire struct {
	Status     string        `json:"status"`
	Document   *documentWire `json:"document"`
	Processing string        `json:"processing"`
}

// UploadedDocument is the canonical result of a document upload. DocumentID
// and Name are empty when the backend omitted them.
type UploadedDocument struct {
	DocumentID string
	Name       string
	Status     types.MaterialStatus
	// UploadStatus is the raw "status" field, kept for logging.
	UploadStatus string
}

func normalizeUpload(w uploadWire) UploadedDocument {
	out := UploadedDocument{
		Status:       normalizeProcessing(w.Processing),
		UploadStatus: w.Status,
	}
	if w.Document != nil {
		out.DocumentID = w.Document.id()
		out.Name = firstNonEmpty(w.Document.Title, w.Document.Filename, w.Document.Name)
	}
	return out
}

func normalizeProcessing(p string) types.MaterialStatus {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "queued":
		return types.StatusQueued
	case "processing":
		return types.StatusProcessing
	default:
		return types.StatusStored
	}
}

type videoWire struct {
	ID      flexString `json:"id"`
	VideoID flexString `json:"video_id"`
	UUID    flexString `json:"uuid"`
	Title   string     `json:"title"`
	Name    string     `json:"name"`
}

// VideoRef is one entry of the video catalogue. ID is empty when the backend
// sent an entry without any id field.
type VideoRef struct {
	ID    string
	Title string
}

func normalizeVideos(ws []videoWire) []VideoRef {
	out := make([]VideoRef, 0, len(ws))
	for _, w := range ws {
		out = append(out, VideoRef{
			ID:    firstNonEmpty(string(w.ID), string(w.VideoID), string(w.UUID)),
			Title: firstNonEmpty(w.Title, w.Name),
		})
	}
	return out
}

// DocumentRef is one entry of the document catalogue.
type DocumentRef struct {
	ID   string
	Name string
}

func normalizeDocuments(ws []documentWire) []DocumentRef {
	out := make([]DocumentRef, 0, len(ws))
	for _, w := range ws {
		id := w.id()
		if id == "" {
			continue
		}
		out = append(out, DocumentRef{
			ID:   id,
			Name: firstNonEmpty(w.Title, w.Filename, w.Name),
		})
	}
	return out
}
