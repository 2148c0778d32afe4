// Package store persists chat sessions, messages and uploaded-file records in
// SQLite through database/sql. The schema is created on open and the database
// runs in WAL mode.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS chat_sessions (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL UNIQUE,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS chat_messages (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id   TEXT NOT NULL REFERENCES chat_sessions(session_id),
	message_type TEXT NOT NULL,
	content      TEXT NOT NULL,
	file_path    TEXT,
	created_at   TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS uploaded_files (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	filename     TEXT NOT NULL,
	file_path    TEXT NOT NULL,
	file_type    TEXT NOT NULL,
	file_size    INTEGER NOT NULL,
	file_hash    TEXT NOT NULL,
	session_id   TEXT NOT NULL REFERENCES chat_sessions(session_id),
	is_corrupted BOOLEAN NOT NULL DEFAULT 0,
	created_at   TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_session ON chat_messages(session_id);
CREATE INDEX IF NOT EXISTS idx_uploads_created ON uploaded_files(created_at);
`

// Store wraps the SQLite connection.
type Store struct {
	DB *sql.DB
}

// Open opens (creating if necessary) the SQLite database at dbPath and ensures
// the schema exists.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{DB: db}, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	return s.DB.Close()
}

// EnsureSession creates the chat session row if it does not exist and bumps
// updated_at when it does.
func (s *Store) EnsureSession(sessionID string) error {
	now := time.Now().UTC()
	_, err := s.DB.Exec(`
		INSERT INTO chat_sessions (session_id, created_at, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET updated_at = excluded.updated_at`,
		sessionID, now, now)
	if err != nil {
		return fmt.Errorf("failed to ensure session: %w", err)
	}
	return nil
}

// SessionExists reports whether a session row exists.
func (s *Store) SessionExists(sessionID string) (bool, error) {
	var n int
	err := s.DB.QueryRow(`SELECT COUNT(1) FROM chat_sessions WHERE session_id = ?`, sessionID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to query session: %w", err)
	}
	return n > 0, nil
}

// AppendMessage inserts a chat message and returns its id.
func (s *Store) AppendMessage(msg *domain.ChatMessage) (int64, error) {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	res, err := s.DB.Exec(`
		INSERT INTO chat_messages (session_id, message_type, content, file_path, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		msg.SessionID, msg.MessageType, msg.Content, nullable(msg.FilePath), msg.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert message: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read message id: %w", err)
	}
	msg.ID = id
	return id, nil
}

// MessagesBySession returns all messages for a session in insertion order.
func (s *Store) MessagesBySession(sessionID string) ([]domain.ChatMessage, error) {
	rows, err := s.DB.Query(`
		SELECT id, session_id, message_type, content, COALESCE(file_path, ''), created_at
		FROM chat_messages WHERE session_id = ? ORDER BY id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var out []domain.ChatMessage
	for rows.Next() {
		var m domain.ChatMessage
		if err := rows.Scan(&m.ID, &m.SessionID, &m.MessageType, &m.Content, &m.FilePath, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// DeleteMessage removes one message; it reports whether a row was deleted.
func (s *Store) DeleteMessage(id int64) (bool, error) {
	res, err := s.DB.Exec(`DELETE FROM chat_messages WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete message: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check delete result: %w", err)
	}
	return n > 0, nil
}

// SaveUploadedFile inserts the uploaded-file record. Callers only reach this
// after the file has passed the safety gate.
func (s *Store) SaveUploadedFile(f *domain.UploadedFile) error {
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	res, err := s.DB.Exec(`
		INSERT INTO uploaded_files (filename, file_path, file_type, file_size, file_hash, session_id, is_corrupted, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		f.Filename, f.FilePath, f.FileType, f.FileSize, f.FileHash, f.SessionID, f.IsCorrupted, f.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert uploaded file: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read uploaded file id: %w", err)
	}
	f.ID = id
	return nil
}

// UploadedFilesOlderThan returns records created before the cutoff, oldest
// first. Used by the retention sweep.
func (s *Store) UploadedFilesOlderThan(cutoff time.Time) ([]domain.UploadedFile, error) {
	rows, err := s.DB.Query(`
		SELECT id, filename, file_path, file_type, file_size, file_hash, session_id, is_corrupted, created_at
		FROM uploaded_files WHERE created_at < ? ORDER BY created_at`, cutoff.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query old files: %w", err)
	}
	defer rows.Close()

	var out []domain.UploadedFile
	for rows.Next() {
		var f domain.UploadedFile
		if err := rows.Scan(&f.ID, &f.Filename, &f.FilePath, &f.FileType, &f.FileSize,
			&f.FileHash, &f.SessionID, &f.IsCorrupted, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan uploaded file: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// DeleteUploadedFile removes one uploaded-file record.
func (s *Store) DeleteUploadedFile(id int64) error {
	if _, err := s.DB.Exec(`DELETE FROM uploaded_files WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete uploaded file record: %w", err)
	}
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
