package filecheck

import (
	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/messages"
)

// DocumentReader is one parsing strategy for document containers. Readers are
// tried in order: real-world malformed PDFs are frequently readable by one
// parser and not another, so a single parser's failure is never treated as
// definitive corruption.
type DocumentReader interface {
	// Name identifies the reader in logs.
	Name() string
	// Open parses the container at a native filesystem path.
	Open(path string) (Document, error)
}

// Document is an open document container.
type Document interface {
	// PageCount returns the number of countable pages.
	PageCount() int
	// PageText extracts the plain text of page i (0-based).
	PageText(i int) (string, error)
	Close() error
}

// checkDocument confirms the container opens and has at least one page. The
// first reader that opens the file decides the verdict; later readers are
// consulted only when earlier ones fail to open it at all.
func (c *Checker) checkDocument(path string) integrityResult {
	for _, r := range c.Readers {
		doc, err := r.Open(path)
		if err != nil {
			c.Logger.Warn("document reader failed, trying next", "reader", r.Name(), "path", path, "error", err)
			continue
		}

		pages := doc.PageCount()
		doc.Close()

		if pages == 0 {
			return integrityResult{Corrupted: true, Reason: messages.ErrPDFEmpty}
		}
		return integrityResult{Valid: true}
	}

	return integrityResult{Corrupted: true, Reason: messages.ErrPDFUnreadable}
}
