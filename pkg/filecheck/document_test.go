package filecheck

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/logging"
	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/messages"
)

// fakeDoc is an in-memory Document for exercising the reader chain.
type fakeDoc struct {
	pages    int
	pageText string
	textErr  error
}

func (d *fakeDoc) PageCount() int { return d.pages }

func (d *fakeDoc) PageText(int) (string, error) {
	if d.textErr != nil {
		return "", d.textErr
	}
	return d.pageText, nil
}

func (d *fakeDoc) Close() error { return nil }

// fakeReader opens a canned document or fails outright.
type fakeReader struct {
	name    string
	doc     Document
	openErr error
}

func (r *fakeReader) Name() string { return r.name }

func (r *fakeReader) Open(string) (Document, error) {
	if r.openErr != nil {
		return nil, r.openErr
	}
	return r.doc, nil
}

func newDocChecker(readers ...DocumentReader) *Checker {
	return &Checker{
		Fs:       afero.NewMemMapFs(),
		Readers:  readers,
		Strict:   true,
		MinChars: 50,
		Logger:   logging.NewTestLogger(),
	}
}

func TestCheckDocumentFirstReaderDecides(t *testing.T) {
	c := newDocChecker(
		&fakeReader{name: "primary", doc: &fakeDoc{pages: 3}},
		&fakeReader{name: "fallback", openErr: errors.New("should not be reached")},
	)

	res := c.checkDocument("report.pdf")
	assert.True(t, res.Valid)
	assert.False(t, res.Corrupted)
}

func TestCheckDocumentFallsBackWhenPrimaryFails(t *testing.T) {
	c := newDocChecker(
		&fakeReader{name: "primary", openErr: errors.New("parse failure")},
		&fakeReader{name: "fallback", doc: &fakeDoc{pages: 1}},
	)

	res := c.checkDocument("report.pdf")
	require.True(t, res.Valid)

	// The failure of the primary reader is recorded, not fatal.
	assert.Contains(t, c.Logger.GetOutput(), "primary")
}

func TestCheckDocumentZeroPagesIsCorrupted(t *testing.T) {
	c := newDocChecker(
		&fakeReader{name: "primary", doc: &fakeDoc{pages: 0}},
		&fakeReader{name: "fallback", doc: &fakeDoc{pages: 5}},
	)

	// The first reader that opens the file decides; a zero-page document is
	// corrupted even when a later reader would disagree.
	res := c.checkDocument("report.pdf")
	assert.False(t, res.Valid)
	assert.True(t, res.Corrupted)
	assert.Equal(t, messages.ErrPDFEmpty, res.Reason)
}

func TestCheckDocumentAllReadersFail(t *testing.T) {
	c := newDocChecker(
		&fakeReader{name: "primary", openErr: errors.New("broken xref")},
		&fakeReader{name: "fallback", openErr: errors.New("unexpected EOF")},
	)

	res := c.checkDocument("report.pdf")
	assert.False(t, res.Valid)
	assert.True(t, res.Corrupted)
	assert.Equal(t, messages.ErrPDFUnreadable, res.Reason)
}
