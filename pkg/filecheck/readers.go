package filecheck

import (
	"fmt"

	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
)

// DefaultReaders returns the production parsing chain: MuPDF first (more
// robust on damaged files), the pure-Go parser as fallback.
func DefaultReaders() []DocumentReader {
	return []DocumentReader{fitzReader{}, ledongReader{}}
}

// fitzReader parses PDFs through MuPDF.
type fitzReader struct{}

func (fitzReader) Name() string { return "mupdf" }

func (fitzReader) Open(path string) (Document, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("mupdf open: %w", err)
	}
	return &fitzDocument{doc: doc}, nil
}

type fitzDocument struct {
	doc *fitz.Document
}

func (d *fitzDocument) PageCount() int { return d.doc.NumPage() }

func (d *fitzDocument) PageText(i int) (string, error) {
	text, err := d.doc.Text(i)
	if err != nil {
		return "", fmt.Errorf("mupdf text page %d: %w", i, err)
	}
	return text, nil
}

func (d *fitzDocument) Close() error { return d.doc.Close() }

// ledongReader parses PDFs with the pure-Go ledongthuc/pdf library.
type ledongReader struct{}

func (ledongReader) Name() string { return "ledongthuc" }

func (ledongReader) Open(path string) (doc Document, err error) {
	// The library panics on some malformed inputs; convert that to an error
	// so the chain can fail closed instead of crashing the request.
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("pdf open panicked: %v", r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pdf open: %w", err)
	}
	return &ledongDocument{file: f, reader: reader}, nil
}

type ledongDocument struct {
	file   interface{ Close() error }
	reader *pdf.Reader
}

func (d *ledongDocument) PageCount() int { return d.reader.NumPage() }

func (d *ledongDocument) PageText(i int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("pdf text page %d panicked: %v", i, r)
		}
	}()

	page := d.reader.Page(i + 1) // 1-based
	if page.V.IsNull() {
		return "", nil
	}
	text, err = page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("pdf text page %d: %w", i, err)
	}
	return text, nil
}

func (d *ledongDocument) Close() error { return d.file.Close() }
