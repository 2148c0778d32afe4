package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/domain"
	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/filecheck"
	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/knowledge"
	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/messages"
	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/speech"
	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/uploads"
	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/youtube"
)

// Extracted document text beyond this is not sent for summarization.
const summarizeInputLimit = 4000

type chatRequest struct {
	Message string `json:"message"`
}

type promptRequest struct {
	Prompt string `json:"prompt"`
}

type queryRequest struct {
	Query string `json:"query"`
}

type urlRequest struct {
	URL string `json:"url"`
}

type speakRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleIndex(c *gin.Context) {
	sid := sessionID(c)
	history, err := s.Store.MessagesBySession(sid)
	if err != nil {
		s.Logger.Error("failed to load chat history", "session_id", sid, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": messages.ErrInternal})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id": sid,
		"messages":   history,
	})
}

func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": messages.ErrEmptyMessage})
		return
	}
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": messages.ErrEmptyMessage})
		return
	}

	sid := sessionID(c)
	s.appendMessage(sid, domain.MessageTypeUser, msg, "")

	reply, err := s.AI.Chat(c.Request.Context(), msg)
	if err != nil {
		s.Logger.Error("chat completion failed", "session_id", sid, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": messages.ErrChatFailed})
		return
	}

	id := s.appendMessage(sid, domain.MessageTypeAssistant, reply, "")
	c.JSON(http.StatusOK, gin.H{"response": reply, "message_id": id})
}

func (s *Server) handleUpload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		s.uploadError(c, err)
		return
	}
	defer file.Close()

	sid := sessionID(c)
	result, err := s.Uploads.Ingest(file, header.Filename, sid)
	if err != nil {
		s.uploadError(c, err)
		return
	}

	response := s.describeUpload(c, result)
	id := s.appendMessage(sid, domain.MessageTypeAssistant, response, result.Path)

	c.JSON(http.StatusOK, gin.H{
		"message":    fmt.Sprintf(messages.MsgFileUploaded, result.Filename),
		"response":   response,
		"filename":   result.Filename,
		"file_type":  result.MIMEType,
		"message_id": id,
	})
}

// describeUpload produces the assistant's follow-up for an accepted file:
// visual analysis for images, a technical summary with a quality assessment
// for documents, a plain acknowledgement otherwise.
func (s *Server) describeUpload(c *gin.Context, result *uploads.Result) string {
	ctx := c.Request.Context()

	switch result.Category {
	case filecheck.CategoryImage:
		analysis, err := s.AI.AnalyzeImage(ctx, result.Path)
		if err != nil {
			s.Logger.Error("image analysis failed", "path", result.Path, "error", err)
			break
		}
		return fmt.Sprintf(messages.MsgImageAnalysisHead, analysis)

	case filecheck.CategoryDocument:
		text, ok := s.Uploads.ExtractText(result.Path)
		if !ok {
			return messages.MsgPDFNoText
		}
		if len(text) > summarizeInputLimit {
			text = text[:summarizeInputLimit]
		}
		summary, err := s.AI.Summarize(ctx, text)
		if err != nil {
			s.Logger.Error("document summarization failed", "path", result.Path, "error", err)
			break
		}
		assessment := s.AI.AssessDocument(ctx, text)
		return fmt.Sprintf("**Document Summary:**\n\n%s\n\n*Technical quality: %d/5 (confidence %.0f%%): %s*",
			summary, assessment.TechnicalQuality, assessment.Confidence*100, assessment.Assessment)
	}

	return fmt.Sprintf(messages.MsgFileUploaded, result.Filename)
}

// uploadError maps ingestion failures onto the response taxonomy: rejected
// files carry their reason and corruption flag, oversized bodies report the
// limit, everything else stays generic.
func (s *Server) uploadError(c *gin.Context, err error) {
	var rejected *uploads.RejectedError
	var tooLarge *http.MaxBytesError

	switch {
	case errors.As(err, &rejected):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":        rejected.Reason,
			"is_corrupted": rejected.Corrupted,
		})
	case errors.As(err, &tooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf(messages.ErrFileTooLarge, humanize.Bytes(uint64(s.Env.MaxUploadBytes()))),
		})
	case errors.Is(err, uploads.ErrInvalidFilename):
		c.JSON(http.StatusBadRequest, gin.H{"error": messages.ErrInvalidFilename})
	case errors.Is(err, http.ErrMissingFile):
		c.JSON(http.StatusBadRequest, gin.H{"error": messages.ErrNoFile})
	default:
		s.Logger.Error("upload failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": messages.ErrUploadFailed})
	}
}

func (s *Server) handleTranscribe(c *gin.Context) {
	file, _, err := c.Request.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": messages.ErrNoAudioFile})
		return
	}
	defer file.Close()

	// The transcription API wants a file on disk; stage the payload under a
	// temp name and remove it when done.
	tempPath := filepath.Join(s.Env.UploadDir, "temp_audio_"+uuid.New().String()+".wav")
	if err := s.stageFile(tempPath, file); err != nil {
		s.Logger.Error("failed to stage audio for transcription", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": messages.ErrTranscription})
		return
	}
	defer func() {
		if err := s.Fs.Remove(tempPath); err != nil {
			s.Logger.Warn("failed to remove temp audio", "path", tempPath, "error", err)
		}
	}()

	text, err := s.AI.Transcribe(c.Request.Context(), tempPath)
	if err != nil {
		s.Logger.Error("transcription failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": messages.ErrTranscription})
		return
	}

	id := s.appendMessage(sessionID(c), domain.MessageTypeUser, text, "")
	c.JSON(http.StatusOK, gin.H{"text": text, "message_id": id})
}

func (s *Server) handleGenerateImage(c *gin.Context) {
	var req promptRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Prompt) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": messages.ErrEmptyPrompt})
		return
	}
	prompt := strings.TrimSpace(req.Prompt)

	enhanced := fmt.Sprintf(
		"Technical illustration for non-destructive evaluation: %s. Professional engineering style, detailed, accurate.",
		prompt)

	url, err := s.AI.GenerateImage(c.Request.Context(), enhanced)
	if err != nil {
		s.Logger.Error("image generation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": messages.ErrImageGen})
		return
	}

	sid := sessionID(c)
	id := s.appendMessage(sid, domain.MessageTypeAssistant,
		fmt.Sprintf("**Generated Image:** %s\n\n%s", prompt, url), "")

	c.JSON(http.StatusOK, gin.H{"image_url": url, "message_id": id})
}

func (s *Server) handleYouTubeSearch(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": messages.ErrEmptyQuery})
		return
	}

	videos, err := s.Videos.Search(c.Request.Context(), strings.TrimSpace(req.Query))
	if err != nil {
		if errors.Is(err, youtube.ErrNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		s.Logger.Error("video search failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": messages.ErrSearchFailed})
		return
	}

	c.JSON(http.StatusOK, gin.H{"videos": videos, "count": len(videos)})
}

func (s *Server) handleScrapeContent(c *gin.Context) {
	var req urlRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": messages.ErrEmptyURL})
		return
	}

	result, err := s.Scraper.Scrape(c.Request.Context(), strings.TrimSpace(req.URL))
	if err != nil {
		s.Logger.Error("content scraping failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": messages.ErrScrapeFailed})
		return
	}

	sid := sessionID(c)
	id := s.appendMessage(sid, domain.MessageTypeAssistant, result.Content, "")

	c.JSON(http.StatusOK, gin.H{
		"content":        result.Content,
		"source_url":     result.SourceURL,
		"content_length": result.ContentLength,
		"message_id":     id,
	})
}

func (s *Server) handleSuggestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"suggestions": knowledge.Suggestions()})
}

func (s *Server) handleSearchStandards(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": messages.ErrEmptyQuery})
		return
	}

	results := knowledge.SearchStandards(strings.TrimSpace(req.Query))
	c.JSON(http.StatusOK, gin.H{"results": results, "count": len(results)})
}

func (s *Server) handleSpeak(c *gin.Context) {
	var req speakRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": messages.ErrEmptyTTSText})
		return
	}

	filename, err := s.Speech.Speak(strings.TrimSpace(req.Text))
	if err != nil {
		s.Logger.Error("speech synthesis failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": messages.ErrTTSFailed})
		return
	}

	c.JSON(http.StatusOK, gin.H{"audio_url": "/api/audio/" + filename})
}

func (s *Server) handleServeAudio(c *gin.Context) {
	filename := c.Param("filename")

	// Only files the synthesizer generated are served; anything else (path
	// tricks included) is a 404.
	if !strings.HasPrefix(filename, speech.FilePrefix) || filename != filepath.Base(filename) {
		c.JSON(http.StatusNotFound, gin.H{"error": messages.ErrAudioNotFound})
		return
	}

	path := filepath.Join(s.AudioDir, filename)
	if exists, _ := afero.Exists(s.Fs, path); !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": messages.ErrAudioNotFound})
		return
	}

	c.File(path)
}

func (s *Server) handleDeleteMessage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": messages.ErrMessageNotFound})
		return
	}

	deleted, err := s.Store.DeleteMessage(id)
	if err != nil {
		s.Logger.Error("failed to delete message", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": messages.ErrDeleteMessage})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": messages.ErrMessageNotFound})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// appendMessage persists a chat message best-effort: history gaps are logged
// but never fail the request that produced the content.
func (s *Server) appendMessage(sessionID, messageType, content, filePath string) int64 {
	id, err := s.Store.AppendMessage(&domain.ChatMessage{
		SessionID:   sessionID,
		MessageType: messageType,
		Content:     content,
		FilePath:    filePath,
	})
	if err != nil {
		s.Logger.Error("failed to persist chat message", "session_id", sessionID, "error", err)
		return 0
	}
	return id
}

func (s *Server) stageFile(path string, r io.Reader) error {
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
