// Package scraper extracts the main text content of web pages and processes
// it for NDE technical analysis.
package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"

	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/logging"
)

const (
	fetchTimeout = 30 * time.Second

	// Extracted content shorter than this is too thin to analyze.
	minContentLength = 100

	// Caps on how much scraped text is sent to the LLM.
	summarizeLimit = 4000
	analyzeLimit   = 3000
)

var ndeKeywords = []string{
	"nde", "ndt", "non-destructive", "nondestructive", "ultrasonic",
	"radiographic", "magnetic particle", "penetrant", "eddy current",
	"inspection", "testing", "asme", "astm", "api", "aws",
}

// Summarizer is the slice of the AI service the scraper needs.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
	Chat(ctx context.Context, message string) (string, error)
}

// Result is the outcome of processing one URL.
type Result struct {
	Content       string `json:"content"`
	SourceURL     string `json:"source_url"`
	ContentLength int    `json:"content_length"`
}

// Service fetches pages and routes their text through the AI collaborator.
type Service struct {
	AI     Summarizer
	Logger *logging.Logger

	// fetch is swappable for tests; defaults to readability extraction.
	fetch func(url string) (string, error)
}

// NewService returns a scraper backed by readability extraction.
func NewService(ai Summarizer, logger *logging.Logger) *Service {
	return &Service{AI: ai, Logger: logger, fetch: fetchText}
}

func fetchText(pageURL string) (string, error) {
	article, err := readability.FromURL(pageURL, fetchTimeout)
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}
	return article.TextContent, nil
}

// Scrape extracts the page's text and returns an NDE-focused summary or
// analysis of it.
func (s *Service) Scrape(ctx context.Context, pageURL string) (*Result, error) {
	raw, err := s.fetch(pageURL)
	if err != nil {
		s.Logger.Error("web scraping failed", "url", pageURL, "error", err)
		return nil, fmt.Errorf("unable to extract content from the provided URL: %w", err)
	}

	raw = strings.TrimSpace(raw)
	if len(raw) < minContentLength {
		return nil, fmt.Errorf("the extracted content is too short to provide meaningful analysis")
	}

	var processed string
	if HasNDEContext(pageURL) || HasNDEContext(raw) {
		summary, err := s.AI.Summarize(ctx, truncate(raw, summarizeLimit))
		if err != nil {
			return nil, err
		}
		processed = fmt.Sprintf("**NDE Technical Content Summary:**\n\n%s\n\n**Source:** %s", summary, pageURL)
	} else {
		processed, err = s.AI.Chat(ctx, fmt.Sprintf(
			"Please analyze this web content from an NDE perspective and extract any relevant technical information:\n\n%s",
			truncate(raw, analyzeLimit)))
		if err != nil {
			return nil, err
		}
	}

	return &Result{
		Content:       processed,
		SourceURL:     pageURL,
		ContentLength: len(raw),
	}, nil
}

// HasNDEContext reports whether the text mentions NDE terminology.
func HasNDEContext(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range ndeKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
