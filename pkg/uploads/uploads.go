// Package uploads orchestrates file ingestion: filename sanitization,
// collision-free storage naming, the safety gate, fingerprinting, persistence
// and the retention sweep. Rejected or partially-written files never survive
// on disk and never reach the database.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/domain"
	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/filecheck"
	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/logging"
	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/messages"
)

// Classifier is the slice of filecheck the service depends on.
type Classifier interface {
	Classify(path string) filecheck.SafetyReport
	ExtractText(path string) (string, bool)
}

// Store is the persistence the service depends on.
type Store interface {
	SaveUploadedFile(f *domain.UploadedFile) error
	UploadedFilesOlderThan(cutoff time.Time) ([]domain.UploadedFile, error)
	DeleteUploadedFile(id int64) error
}

// RejectedError reports a validation rejection. Corrupted distinguishes
// damaged files from merely disallowed types so callers can message the user
// accordingly.
type RejectedError struct {
	Corrupted bool
	Reason    string
}

func (e *RejectedError) Error() string { return e.Reason }

// ErrInvalidFilename is returned when nothing survives sanitization.
var ErrInvalidFilename = errors.New(messages.ErrInvalidFilename)

// Result describes a successful ingestion.
type Result struct {
	Filename  string
	Path      string
	MIMEType  string
	SizeBytes int64
	Category  filecheck.Category
}

// Service ties the safety gate, the filesystem and the store together.
type Service struct {
	Fs        afero.Fs
	UploadDir string
	Checker   Classifier
	Store     Store
	Logger    *logging.Logger

	// HashFunc is swappable for tests; defaults to filecheck.HashFile.
	HashFunc func(afero.Fs, string) (string, error)
}

// NewService returns a ready upload service.
func NewService(fs afero.Fs, uploadDir string, checker Classifier, store Store, logger *logging.Logger) *Service {
	return &Service{
		Fs:        fs,
		UploadDir: uploadDir,
		Checker:   checker,
		Store:     store,
		Logger:    logger,
		HashFunc:  filecheck.HashFile,
	}
}

// Ingest writes the payload to storage, validates it, fingerprints it and
// persists the record. On any rejection or failure the stored file is removed
// before returning; no orphaned file survives a failed attempt.
func (s *Service) Ingest(r io.Reader, originalName, sessionID string) (*Result, error) {
	filename := SanitizeFilename(originalName)
	if filename == "" {
		return nil, ErrInvalidFilename
	}

	// Unique prefix decouples the storage name from user input and prevents
	// collisions between identically named uploads.
	storedName := uuid.New().String() + "_" + filename
	path := filepath.Join(s.UploadDir, storedName)

	if err := s.writeFile(path, r); err != nil {
		s.removeQuietly(path)
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	report := s.Checker.Classify(path)
	if !report.Safe {
		s.removeQuietly(path)
		s.Logger.Info(messages.MsgUploadRejected, "filename", filename, "corrupted", report.Corrupted, "reason", report.Reason)
		return nil, &RejectedError{Corrupted: report.Corrupted, Reason: report.Reason}
	}

	hash, err := s.HashFunc(s.Fs, path)
	if err != nil {
		s.Logger.Error(messages.MsgHashUnavailable, "path", path, "error", err)
		hash = domain.HashUnknown
	}

	record := &domain.UploadedFile{
		Filename:  filename,
		FilePath:  path,
		FileType:  report.MIMEType,
		FileSize:  report.SizeBytes,
		FileHash:  hash,
		SessionID: sessionID,
	}
	if err := s.Store.SaveUploadedFile(record); err != nil {
		// A failed commit must not leave an orphaned physical file.
		s.removeQuietly(path)
		return nil, fmt.Errorf("failed to persist upload record: %w", err)
	}

	s.Logger.Info(messages.MsgUploadIngested,
		"filename", filename, "type", report.MIMEType, "category", report.Category, "size", report.SizeBytes)

	return &Result{
		Filename:  filename,
		Path:      path,
		MIMEType:  report.MIMEType,
		SizeBytes: report.SizeBytes,
		Category:  report.Category,
	}, nil
}

// ExtractText returns the document's plain text, or ok=false when no usable
// text is available (scanned document, extraction failure).
func (s *Service) ExtractText(path string) (string, bool) {
	return s.Checker.ExtractText(path)
}

// CleanupOlderThan removes uploaded files (and their records) older than the
// given age. Per-record failures are logged and skipped so one bad record
// cannot halt the sweep; a missing physical file does not block record
// deletion. Returns the number of records removed.
func (s *Service) CleanupOlderThan(age time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-age)

	files, err := s.Store.UploadedFilesOlderThan(cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to query expired uploads: %w", err)
	}

	removed := 0
	for _, f := range files {
		if exists, _ := afero.Exists(s.Fs, f.FilePath); exists {
			if err := s.Fs.Remove(f.FilePath); err != nil {
				s.Logger.Error("failed to remove expired file", "path", f.FilePath, "error", err)
				continue
			}
		}
		if err := s.Store.DeleteUploadedFile(f.ID); err != nil {
			s.Logger.Error("failed to delete expired upload record", "id", f.ID, "error", err)
			continue
		}
		removed++
	}

	s.Logger.Info(messages.MsgCleanupDone, "removed", removed, "threshold", age)
	return removed, nil
}

func (s *Service) writeFile(path string, r io.Reader) error {
	if err := s.Fs.MkdirAll(s.UploadDir, 0o755); err != nil {
		return err
	}
	f, err := s.Fs.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// removeQuietly deletes best-effort: failures are logged, never propagated.
func (s *Service) removeQuietly(path string) {
	if err := s.Fs.Remove(path); err != nil && !errors.Is(err, afero.ErrFileNotFound) {
		s.Logger.Warn("failed to remove file", "path", path, "error", err)
	}
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SanitizeFilename strips path components and unsafe characters from a
// client-supplied name. Returns "" when nothing usable remains.
func SanitizeFilename(name string) string {
	// Drop path components from either separator convention.
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}

	name = strings.ReplaceAll(name, " ", "_")
	name = unsafeChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._")

	if name == "" {
		return ""
	}
	return name
}
