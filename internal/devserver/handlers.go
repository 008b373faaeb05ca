package devserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/interpretive-systems/studybuddy/internal/chat"
	"github.com/interpretive-systems/studybuddy/internal/types"
)

type courseJSON struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Content []types.Unit `json:"content"`
}

func (s *Server) handleCreateCourse(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		s.respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	c := types.Course{ID: s.newID(), Name: name, Content: []types.Unit{}}
	if err := s.store.CreateCourse(r.Context(), c); err != nil {
		s.logger.Error("create course failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.logger.Info("course created", zap.String("id", c.ID), zap.String("name", c.Name))
	s.respondJSON(w, http.StatusCreated, map[string]any{
		"course": courseJSON{ID: c.ID, Name: c.Name, Content: c.Content},
	})
}

func (s *Server) handleGetCourse(w http.ResponseWriter, r *http.Request) {
	c, err := s.store.GetCourse(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondStoreError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, courseJSON{ID: c.ID, Name: c.Name, Content: c.Content})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Message   string `json:"message"`
		CourseID  string `json:"course_id"`
		SessionID string `json:"session_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(in.Message) == "" || in.CourseID == "" {
		s.respondError(w, http.StatusBadRequest, "message and course_id are required")
		return
	}
	ctx := r.Context()
	sessionID := in.SessionID
	if sessionID == "" {
		sessionID = s.newID()
	}
	turn, err := s.store.Turn(ctx, sessionID, in.CourseID)
	if err != nil {
		s.logger.Error("chat turn failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	docs, err := s.store.CountDocuments(ctx, in.CourseID)
	if err != nil {
		s.logger.Error("count documents failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	courseName := in.CourseID
	if c, err := s.store.GetCourse(ctx, in.CourseID); err == nil {
		courseName = c.Name
	}
	reply := chat.CannedReplies[(turn-1)%len(chat.CannedReplies)]
	s.respondJSON(w, http.StatusOK, map[string]any{
		"message":    fmt.Sprintf("%s\n\n(%s has %d uploaded document(s).)", reply, courseName, docs),
		"session_id": sessionID,
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	courseID := strings.TrimSpace(r.FormValue("course_id"))
	if courseID == "" {
		s.respondError(w, http.StatusBadRequest, "course_id is required")
		return
	}
	f, hdr, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "failed to read file")
		return
	}
	mt := mimetype.Detect(data)
	if !mt.Is("application/pdf") {
		s.respondError(w, http.StatusUnsupportedMediaType, "only PDF files are accepted, got "+mt.String())
		return
	}

	now := s.now()
	doc := Document{
		ID:       fmt.Sprintf("doc_%s_%06d", now.Format("20060102_150405"), now.Nanosecond()/1000),
		CourseID: courseID,
		Filename: hdr.Filename,
		MimeType: mt.String(),
		Status:   "queued",
	}
	if err := s.store.CreateDocument(r.Context(), doc, data); err != nil {
		s.logger.Error("store document failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.logger.Info("document uploaded", zap.String("id", doc.ID), zap.String("course", courseID), zap.Int("bytes", len(data)))
	s.respondJSON(w, http.StatusCreated, map[string]any{
		"status": "success",
		"document": map[string]string{
			"document_id": doc.ID,
			"filename":    doc.Filename,
		},
		"processing": doc.Status,
	})
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	// Queued documents are considered processed once someone looks.
	if _, err := s.store.MarkProcessed(ctx); err != nil {
		s.logger.Warn("mark processed failed", zap.Error(err))
	}
	docs, err := s.store.ListDocuments(ctx)
	if err != nil {
		s.logger.Error("list documents failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]map[string]any, 0, len(docs))
	for _, d := range docs {
		out = append(out, map[string]any{
			"document_id": d.ID,
			"filename":    d.Filename,
			"course_id":   d.CourseID,
			"status":      d.Status,
			"size":        d.Size,
		})
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"documents": out})
}

func (s *Server) handleDocumentFile(w http.ResponseWriter, r *http.Request) {
	d, data, err := s.store.DocumentFile(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondStoreError(w, err)
		return
	}
	w.Header().Set("Content-Type", d.MimeType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": d.Filename}))
	http.ServeContent(w, r, d.Filename, d.CreatedAt, bytes.NewReader(data))
}

func (s *Server) handleListVideos(w http.ResponseWriter, r *http.Request) {
	vids, err := s.store.ListVideos(r.Context())
	if err != nil {
		s.logger.Error("list videos failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]map[string]string, 0, len(vids))
	for _, v := range vids {
		out = append(out, map[string]string{"id": v.ID, "title": v.Title})
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"videos": out})
}

func (s *Server) handleVideoFile(w http.ResponseWriter, r *http.Request) {
	v, err := s.store.GetVideo(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondStoreError(w, err)
		return
	}
	http.ServeFile(w, r, v.Path)
}

func (s *Server) handleDeleteVideo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.logger.Debug("delete video request", zap.String("id", id))
	if err := s.store.DeleteVideo(r.Context(), id); err != nil {
		s.respondStoreError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}
	s.logger.Error("store error", zap.Error(err))
	s.respondError(w, http.StatusInternalServerError, err.Error())
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
