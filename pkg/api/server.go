// Package api exposes the assistant over HTTP: chat, uploads, transcription,
// image generation, video search, web content analysis, reference-data lookups
// and text-to-speech. Handlers translate service errors into the user-facing
// taxonomy (wrong type vs corrupted vs generic failure) and never leak
// internals to the client.
package api

import (
	"context"
	"io"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"

	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/ai"
	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/domain"
	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/environment"
	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/logging"
	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/scraper"
	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/uploads"
	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/youtube"
)

// ChatStore is the persistence surface the handlers need.
type ChatStore interface {
	EnsureSession(sessionID string) error
	AppendMessage(msg *domain.ChatMessage) (int64, error)
	MessagesBySession(sessionID string) ([]domain.ChatMessage, error)
	DeleteMessage(id int64) (bool, error)
}

// UploadService ingests and post-processes uploaded files.
type UploadService interface {
	Ingest(r io.Reader, originalName, sessionID string) (*uploads.Result, error)
	ExtractText(path string) (string, bool)
}

// Assistant is the LLM collaborator surface.
type Assistant interface {
	Chat(ctx context.Context, message string) (string, error)
	AnalyzeImage(ctx context.Context, path string) (string, error)
	Summarize(ctx context.Context, text string) (string, error)
	AssessDocument(ctx context.Context, text string) ai.Assessment
	GenerateImage(ctx context.Context, prompt string) (string, error)
	Transcribe(ctx context.Context, path string) (string, error)
}

// VideoSearcher finds NDE educational videos.
type VideoSearcher interface {
	Search(ctx context.Context, query string) ([]youtube.Video, error)
}

// ContentScraper analyzes web pages.
type ContentScraper interface {
	Scrape(ctx context.Context, url string) (*scraper.Result, error)
}

// Synthesizer renders speech audio files.
type Synthesizer interface {
	Speak(text string) (string, error)
}

// Server bundles the collaborators behind the HTTP surface.
type Server struct {
	Env      *environment.Environment
	Fs       afero.Fs
	Logger   *logging.Logger
	Store    ChatStore
	Uploads  UploadService
	AI       Assistant
	Videos   VideoSearcher
	Scraper  ContentScraper
	Speech   Synthesizer
	AudioDir string
}

// Router builds the gin engine with all routes and middleware attached.
func (s *Server) Router() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	if s.Env.TrustedProxies != "" {
		router.ForwardedByClientIP = true
		if err := router.SetTrustedProxies(splitCSV(s.Env.TrustedProxies)); err != nil {
			s.Logger.Error("unable to set trusted proxies", "error", err)
		}
	}

	router.Use(s.maxBodySize())
	router.GET("/", s.sessionMiddleware(), s.handleIndex)

	apiGroup := router.Group("/api", s.sessionMiddleware())
	{
		apiGroup.POST("/chat", s.handleChat)
		apiGroup.POST("/upload", s.handleUpload)
		apiGroup.POST("/transcribe", s.handleTranscribe)
		apiGroup.POST("/generate-image", s.handleGenerateImage)
		apiGroup.POST("/youtube-search", s.handleYouTubeSearch)
		apiGroup.POST("/scrape-content", s.handleScrapeContent)
		apiGroup.GET("/nde-suggestions", s.handleSuggestions)
		apiGroup.POST("/search-standards", s.handleSearchStandards)
		apiGroup.POST("/speak", s.handleSpeak)
		apiGroup.GET("/audio/:filename", s.handleServeAudio)
		apiGroup.DELETE("/delete-message/:id", s.handleDeleteMessage)
	}

	return router
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
