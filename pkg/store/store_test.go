package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestEnsureSessionIsIdempotent(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.EnsureSession("sess-1"))
	require.NoError(t, s.EnsureSession("sess-1"))

	exists, err := s.SessionExists("sess-1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.SessionExists("sess-2")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestAppendAndListMessages(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.EnsureSession("sess-1"))

	first, err := s.AppendMessage(&domain.ChatMessage{
		SessionID:   "sess-1",
		MessageType: domain.MessageTypeUser,
		Content:     "What is ultrasonic testing?",
	})
	require.NoError(t, err)
	assert.Positive(t, first)

	second, err := s.AppendMessage(&domain.ChatMessage{
		SessionID:   "sess-1",
		MessageType: domain.MessageTypeAssistant,
		Content:     "UT uses high-frequency sound waves.",
		FilePath:    "/data/uploads/x_report.pdf",
	})
	require.NoError(t, err)
	assert.Greater(t, second, first)

	msgs, err := s.MessagesBySession("sess-1")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, domain.MessageTypeUser, msgs[0].MessageType)
	assert.Equal(t, domain.MessageTypeAssistant, msgs[1].MessageType)
	assert.Equal(t, "/data/uploads/x_report.pdf", msgs[1].FilePath)
	assert.Empty(t, msgs[0].FilePath)
}

func TestDeleteMessage(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.EnsureSession("sess-1"))

	id, err := s.AppendMessage(&domain.ChatMessage{
		SessionID:   "sess-1",
		MessageType: domain.MessageTypeUser,
		Content:     "delete me",
	})
	require.NoError(t, err)

	deleted, err := s.DeleteMessage(id)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = s.DeleteMessage(id)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestUploadedFileLifecycle(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.EnsureSession("sess-1"))

	now := time.Now().UTC()
	save := func(name string, age time.Duration) {
		require.NoError(t, s.SaveUploadedFile(&domain.UploadedFile{
			Filename:  name,
			FilePath:  "/data/uploads/" + name,
			FileType:  "application/pdf",
			FileSize:  123,
			FileHash:  "abc",
			SessionID: "sess-1",
			CreatedAt: now.Add(-age),
		}))
	}
	save("fresh.pdf", time.Hour)
	save("day_old.pdf", 25*time.Hour)
	save("two_days.pdf", 48*time.Hour)

	expired, err := s.UploadedFilesOlderThan(now.Add(-24 * time.Hour))
	require.NoError(t, err)
	require.Len(t, expired, 2)
	// Oldest first.
	assert.Equal(t, "two_days.pdf", expired[0].Filename)
	assert.Equal(t, "day_old.pdf", expired[1].Filename)

	for _, f := range expired {
		require.NoError(t, s.DeleteUploadedFile(f.ID))
	}

	expired, err = s.UploadedFilesOlderThan(now.Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Empty(t, expired)
}
