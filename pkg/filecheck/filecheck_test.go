package filecheck

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/png"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/logging"
	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/messages"
)

func newTestChecker(fs afero.Fs) *Checker {
	c := NewChecker(fs, true, 50, logging.NewTestLogger())
	return c
}

func writeFile(t *testing.T, fs afero.Fs, path string, data []byte) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, data, 0o644))
}

// pngBytes encodes a small but real PNG.
func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// wavBytes builds a minimal RIFF/WAVE header.
func wavBytes() []byte {
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	buf.Write(make([]byte, 16))
	return buf.Bytes()
}

func TestClassifyMissingFile(t *testing.T) {
	c := newTestChecker(afero.NewMemMapFs())

	report := c.Classify("nope.pdf")
	assert.False(t, report.Safe)
	assert.True(t, report.Corrupted)
	assert.Equal(t, messages.ErrFileMissing, report.Reason)
}

func TestClassifyEmptyFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "empty.pdf", nil)

	report := newTestChecker(fs).Classify("empty.pdf")
	assert.False(t, report.Safe)
	assert.True(t, report.Corrupted)
	assert.Equal(t, messages.ErrFileEmpty, report.Reason)
}

func TestClassifyDisallowedTypeIsNotCorrupted(t *testing.T) {
	fs := afero.NewMemMapFs()
	// Plain text named as a PDF: sniffing sees through the extension.
	writeFile(t, fs, "notes.pdf", []byte("just some plain text content"))

	report := newTestChecker(fs).Classify("notes.pdf")
	assert.False(t, report.Safe)
	assert.False(t, report.Corrupted)
	assert.Contains(t, report.Reason, "not allowed")
}

func TestClassifyValidImage(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := pngBytes(t)
	writeFile(t, fs, "defect.png", data)

	report := newTestChecker(fs).Classify("defect.png")
	assert.True(t, report.Safe)
	assert.False(t, report.Corrupted)
	assert.Equal(t, "image/png", report.MIMEType)
	assert.Equal(t, CategoryImage, report.Category)
	assert.Equal(t, int64(len(data)), report.SizeBytes)
}

func TestClassifyTruncatedImage(t *testing.T) {
	fs := afero.NewMemMapFs()
	// Valid PNG signature followed by garbage: sniffing passes, decoding fails.
	data := append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, []byte("garbage")...)
	writeFile(t, fs, "broken.png", data)

	t.Run("strict rejects", func(t *testing.T) {
		report := newTestChecker(fs).Classify("broken.png")
		assert.False(t, report.Safe)
		assert.True(t, report.Corrupted)
		assert.Equal(t, messages.ErrImageUnreadable, report.Reason)
	})

	t.Run("lenient passes and logs", func(t *testing.T) {
		c := NewChecker(fs, false, 50, logging.NewTestLogger())
		report := c.Classify("broken.png")
		assert.True(t, report.Safe)
		assert.Contains(t, c.Logger.GetOutput(), "image decode failed")
	})
}

func TestClassifyAudioPassesOnMIMEAlone(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "voice.wav", wavBytes())

	report := newTestChecker(fs).Classify("voice.wav")
	assert.True(t, report.Safe)
	assert.Equal(t, CategoryAudio, report.Category)
}

func TestClassifyDocumentUsesReaderChain(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "report.pdf", []byte("%PDF-1.4\nfake body\n%%EOF"))

	c := newTestChecker(fs)
	c.Readers = []DocumentReader{&fakeReader{name: "ok", doc: &fakeDoc{pages: 2}}}

	report := c.Classify("report.pdf")
	assert.True(t, report.Safe)
	assert.Equal(t, "application/pdf", report.MIMEType)
	assert.Equal(t, CategoryDocument, report.Category)
}
