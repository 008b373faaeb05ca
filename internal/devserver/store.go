package devserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/interpretive-systems/studybuddy/internal/types"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

// Document is a stored upload. Data is only populated by DocumentFile.
type Document struct {
	ID        string
	CourseID  string
	Filename  string
	MimeType  string
	Status    string
	Size      int
	CreatedAt time.Time
}

// Video is a lecture recording on disk.
type Video struct {
	ID        string
	Title     string
	Path      string
	CreatedAt time.Time
}

// Store persists the development backend in SQLite.
type Store struct {
	db *sql.DB
}

// OpenStore opens or creates a SQLite database at dbPath and initializes the
// schema. Parent directories are created if they do not exist.
func OpenStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS courses (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		content TEXT NOT NULL DEFAULT '[]',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY,
		course_id TEXT NOT NULL,
		filename TEXT NOT NULL,
		mime_type TEXT NOT NULL,
		status TEXT NOT NULL,
		data BLOB NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_documents_course ON documents(course_id);

	CREATE TABLE IF NOT EXISTS videos (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		path TEXT NOT NULL UNIQUE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS chat_sessions (
		id TEXT PRIMARY KEY,
		course_id TEXT NOT NULL,
		turns INTEGER NOT NULL DEFAULT 0,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := db.Exec(schema)
	return err
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateCourse inserts a course.
func (s *Store) CreateCourse(ctx context.Context, c types.Course) error {
	if c.Content == nil {
		c.Content = []types.Unit{}
	}
	content, err := json.Marshal(c.Content)
	if err != nil {
		return fmt.Errorf("failed to marshal content: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO courses (id, name, content, created_at) VALUES (?, ?, ?, ?)`,
		c.ID, c.Name, string(content), time.Now(),
	)
	return err
}

// GetCourse returns a course by id.
func (s *Store) GetCourse(ctx context.Context, id string) (types.Course, error) {
	var c types.Course
	var content string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, content FROM courses WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &content)
	if err == sql.ErrNoRows {
		return types.Course{}, fmt.Errorf("course %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return types.Course{}, err
	}
	if err := json.Unmarshal([]byte(content), &c.Content); err != nil {
		return types.Course{}, fmt.Errorf("failed to unmarshal content: %w", err)
	}
	return c, nil
}

// CreateDocument stores an uploaded file.
func (s *Store) CreateDocument(ctx context.Context, d Document, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (id, course_id, filename, mime_type, status, data, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.CourseID, d.Filename, d.MimeType, d.Status, data, time.Now(),
	)
	return err
}

// ListDocuments returns every document, oldest first.
func (s *Store) ListDocuments(ctx context.Context) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, course_id, filename, mime_type, status, length(data), created_at
		 FROM documents ORDER BY created_at, rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.CourseID, &d.Filename, &d.MimeType, &d.Status, &d.Size, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// CountDocuments returns the number of documents stored for courseID.
func (s *Store) CountDocuments(ctx context.Context, courseID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents WHERE course_id = ?`, courseID).Scan(&n)
	return n, err
}

// DocumentFile returns a document's metadata and bytes.
func (s *Store) DocumentFile(ctx context.Context, id string) (Document, []byte, error) {
	var d Document
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT id, course_id, filename, mime_type, status, data FROM documents WHERE id = ?`, id,
	).Scan(&d.ID, &d.CourseID, &d.Filename, &d.MimeType, &d.Status, &data)
	if err == sql.ErrNoRows {
		return Document{}, nil, fmt.Errorf("document %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Document{}, nil, err
	}
	d.Size = len(data)
	return d, data, nil
}

// MarkProcessed moves every queued document to stored.
func (s *Store) MarkProcessed(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE documents SET status = 'stored' WHERE status <> 'stored'`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// AddVideo registers a recording unless its path is already known.
func (s *Store) AddVideo(ctx context.Context, v Video) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO videos (id, title, path, created_at) VALUES (?, ?, ?, ?)`,
		v.ID, v.Title, v.Path, time.Now(),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ListVideos returns every recording, oldest first.
func (s *Store) ListVideos(ctx context.Context) ([]Video, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, path, created_at FROM videos ORDER BY created_at, rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Video
	for rows.Next() {
		var v Video
		if err := rows.Scan(&v.ID, &v.Title, &v.Path, &v.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// GetVideo returns a recording by id.
func (s *Store) GetVideo(ctx context.Context, id string) (Video, error) {
	var v Video
	err := s.db.QueryRowContext(ctx, `SELECT id, title, path, created_at FROM videos WHERE id = ?`, id).
		Scan(&v.ID, &v.Title, &v.Path, &v.CreatedAt)
	if err == sql.ErrNoRows {
		return Video{}, fmt.Errorf("video %s: %w", id, ErrNotFound)
	}
	return v, err
}

// DeleteVideo forgets a recording. The file on disk is left alone.
func (s *Store) DeleteVideo(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM videos WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("video %s: %w", id, ErrNotFound)
	}
	return nil
}

// Turn records one chat turn for sessionID, creating the session when it is
// new, and returns the turn count.
func (s *Store) Turn(ctx context.Context, sessionID, courseID string) (int, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chat_sessions (id, course_id, turns, updated_at) VALUES (?, ?, 1, ?)
		 ON CONFLICT(id) DO UPDATE SET turns = turns + 1, updated_at = excluded.updated_at`,
		sessionID, courseID, time.Now(),
	)
	if err != nil {
		return 0, err
	}
	var n int
	err = s.db.QueryRowContext(ctx, `SELECT turns FROM chat_sessions WHERE id = ?`, sessionID).Scan(&n)
	return n, err
}

var videoExtensions = map[string]bool{".mp4": true, ".webm": true, ".mkv": true, ".mov": true}

// ImportVideos registers every video file directly under dir and returns how
// many were new.
func (s *Store) ImportVideos(ctx context.Context, dir string, newID func() string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read video dir: %w", err)
	}
	added := 0
	for _, e := range entries {
		if e.IsDir() || !videoExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		path, err := filepath.Abs(filepath.Join(dir, e.Name()))
		if err != nil {
			return added, err
		}
		title := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		ok, err := s.AddVideo(ctx, Video{ID: newID(), Title: title, Path: path})
		if err != nil {
			return added, err
		}
		if ok {
			added++
		}
	}
	return added, nil
}
