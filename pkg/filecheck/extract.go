package filecheck

import (
	"strings"
)

// ExtractText pulls plain text from a document page by page, falling back to
// the next reader in the chain when one errors. The second return value is
// false when no text could be extracted or when the trimmed output is shorter
// than MinChars; implausibly short output is treated as a proxy for a
// scanned/image-only document, not as a valid extraction.
func (c *Checker) ExtractText(path string) (string, bool) {
	for _, r := range c.Readers {
		text, err := extractWithReader(r, path)
		if err != nil {
			c.Logger.Warn("text extraction failed, trying next reader", "reader", r.Name(), "path", path, "error", err)
			continue
		}

		text = strings.TrimSpace(text)
		if len(text) < c.MinChars {
			return "", false
		}
		return text, true
	}

	return "", false
}

func extractWithReader(r DocumentReader, path string) (string, error) {
	doc, err := r.Open(path)
	if err != nil {
		return "", err
	}
	defer doc.Close()

	var sb strings.Builder
	for i := 0; i < doc.PageCount(); i++ {
		pageText, err := doc.PageText(i)
		if err != nil {
			return "", err
		}
		sb.WriteString(pageText)
	}
	return sb.String(), nil
}
