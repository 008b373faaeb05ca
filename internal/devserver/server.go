// Package devserver is a development backend speaking the same HTTP contract
// as the production StudyBuddy service, backed by SQLite. It lets the client
// run end to end on one machine.
package devserver

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxUploadBytes = 64 << 20

// Server is the development HTTP server.
type Server struct {
	store  *Store
	logger *zap.Logger
	server *http.Server
	newID  func() string
	now    func() time.Time
}

// NewServer creates a server over store.
func NewServer(store *Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		store:  store,
		logger: logger,
		newID:  func() string { return uuid.NewString() },
		now:    time.Now,
	}
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/api", func(r chi.Router) {
		r.Post("/courses", s.handleCreateCourse)
		r.Get("/courses/{id}", s.handleGetCourse)
		r.Post("/chat", s.handleChat)

		r.Post("/documents/upload", s.handleUpload)
		r.Get("/documents", s.handleListDocuments)
		r.Get("/documents/{id}/file", s.handleDocumentFile)

		r.Get("/videos", s.handleListVideos)
		r.Get("/videos/{id}/file", s.handleVideoFile)
		r.Delete("/videos/{id}", s.handleDeleteVideo)
	})
	r.Get("/health", s.handleHealth)
	return r
}

// Start listens on addr and blocks until the server stops.
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting dev server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := s.now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
