// Package domain holds the persisted record types shared by the store and the
// services. Records are created once and never mutated; deletion is the only
// lifecycle transition.
package domain

import "time"

// Message roles stored on ChatMessage.MessageType.
const (
	MessageTypeUser      = "user"
	MessageTypeAssistant = "assistant"
)

// ChatSession identifies one conversation. SessionID is the externally visible
// identifier carried in the client cookie.
type ChatSession struct {
	ID        int64
	SessionID string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ChatMessage is a single user or assistant turn. FilePath is set when the
// turn was produced from an uploaded file.
type ChatMessage struct {
	ID          int64     `json:"id"`
	SessionID   string    `json:"session_id"`
	MessageType string    `json:"message_type"`
	Content     string    `json:"content"`
	FilePath    string    `json:"file_path,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// UploadedFile records one ingested artifact. A row only ever exists for files
// that passed both the category allow-list and the category integrity check,
// so IsCorrupted is false at insert; the column exists for schema symmetry and
// audit queries.
type UploadedFile struct {
	ID          int64
	Filename    string // sanitized client-supplied name
	FilePath    string // server-side storage location (<uuid>_<name>)
	FileType    string // sniffed MIME type, never the client's claim
	FileSize    int64
	FileHash    string // hex sha256, or "unknown" when fingerprinting failed
	SessionID   string
	IsCorrupted bool
	CreatedAt   time.Time
}

// HashUnknown is recorded when fingerprinting fails; hashing failure is
// non-fatal and only degrades the audit trail.
const HashUnknown = "unknown"
