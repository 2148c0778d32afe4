// Package filecheck is the upload safety gate: it determines the true content
// type of a file from its bytes, rejects anything outside the accepted
// categories, runs category-specific integrity checks, fingerprints content
// and extracts document text.
//
// Every function returns structured verdicts instead of raising errors past
// the package boundary so callers can branch on Safe/Corrupted without
// exception-driven control flow.
package filecheck

import (
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"

	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/logging"
	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/messages"
)

// Category is the coarse bucket a sniffed MIME type must fall into.
type Category string

const (
	CategoryDocument Category = "document"
	CategoryImage    Category = "image"
	CategoryAudio    Category = "audio"
)

// allowedTypes maps accepted MIME types (as reported by content sniffing,
// never by filename) to their category. Aliases cover the different names
// sniffers report for the same container.
var allowedTypes = map[string]Category{
	"application/pdf": CategoryDocument,

	"image/jpeg": CategoryImage,
	"image/png":  CategoryImage,
	"image/gif":  CategoryImage,
	"image/bmp":  CategoryImage,
	"image/tiff": CategoryImage,

	"audio/wav":       CategoryAudio,
	"audio/x-wav":     CategoryAudio,
	"audio/mpeg":      CategoryAudio,
	"audio/mp3":       CategoryAudio,
	"audio/mp4":       CategoryAudio,
	"audio/x-m4a":     CategoryAudio,
	"audio/ogg":       CategoryAudio,
	"application/ogg": CategoryAudio,
}

// SafetyReport is the verdict of Classify. Safe=false with Corrupted=false
// means the type is not allowed (user should pick a different file);
// Corrupted=true means the file itself is damaged (user should re-upload).
type SafetyReport struct {
	Safe      bool
	Corrupted bool
	MIMEType  string
	Category  Category
	SizeBytes int64
	Reason    string
}

// Checker performs all validation against the supplied filesystem.
//
// Document readers operate on native paths; tests exercising the reader chain
// inject fakes through the Readers field.
type Checker struct {
	Fs      afero.Fs
	Readers []DocumentReader

	// Strict controls image validation: when false, a decode failure is
	// logged and the image passes. Dimension and audio checks are unaffected.
	Strict bool

	// MinChars is the extraction floor below which document text is reported
	// as unavailable.
	MinChars int

	Logger *logging.Logger
}

// NewChecker returns a Checker with the production reader chain.
func NewChecker(fs afero.Fs, strict bool, minChars int, logger *logging.Logger) *Checker {
	return &Checker{
		Fs:       fs,
		Readers:  DefaultReaders(),
		Strict:   strict,
		MinChars: minChars,
		Logger:   logger,
	}
}

// Classify determines the true type of the file at path and runs the
// category-specific integrity check. The filename plays no part in detection.
func (c *Checker) Classify(path string) SafetyReport {
	info, err := c.Fs.Stat(path)
	if err != nil {
		return SafetyReport{Corrupted: true, Reason: messages.ErrFileMissing}
	}

	size := info.Size()
	if size == 0 {
		// Zero bytes is corruption, not merely "empty": something truncated
		// the payload before it reached us.
		return SafetyReport{Corrupted: true, Reason: messages.ErrFileEmpty}
	}

	mime, err := c.detectMIME(path)
	if err != nil {
		c.Logger.Error("content type detection failed", "path", path, "error", err)
		return SafetyReport{Corrupted: true, Reason: messages.ErrTypeUndetectable}
	}

	category, ok := allowedTypes[mime]
	if !ok {
		// A disallowed type is a user mistake, not bit-rot.
		return SafetyReport{Reason: fmt.Sprintf(messages.ErrTypeNotAllowed, mime)}
	}

	switch category {
	case CategoryDocument:
		if res := c.checkDocument(path); !res.Valid {
			return SafetyReport{Corrupted: res.Corrupted, Reason: res.Reason}
		}
	case CategoryImage:
		if res := c.checkImage(path); !res.Valid {
			return SafetyReport{Corrupted: res.Corrupted, Reason: res.Reason}
		}
	case CategoryAudio:
		// Accepted on MIME match alone; no structural validation.
	}

	return SafetyReport{
		Safe:      true,
		MIMEType:  mime,
		Category:  category,
		SizeBytes: size,
	}
}

func (c *Checker) detectMIME(path string) (string, error) {
	f, err := c.Fs.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(f)
	if err != nil && err != io.EOF {
		return "", err
	}
	if mtype == nil {
		return "", fmt.Errorf("no detectable content type")
	}
	// Strip any parameters ("; charset=...") so allow-list lookups are exact.
	base := mtype.String()
	for i := 0; i < len(base); i++ {
		if base[i] == ';' {
			base = base[:i]
			break
		}
	}
	return base, nil
}

// integrityResult is the internal verdict of a category-specific check.
type integrityResult struct {
	Valid     bool
	Corrupted bool
	Reason    string
}
