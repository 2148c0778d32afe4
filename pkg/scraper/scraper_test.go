package scraper

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/logging"
)

type stubAI struct {
	summary    string
	chatReply  string
	lastInput  string
	summarized bool
	chatted    bool
}

func (s *stubAI) Summarize(_ context.Context, text string) (string, error) {
	s.summarized = true
	s.lastInput = text
	return s.summary, nil
}

func (s *stubAI) Chat(_ context.Context, message string) (string, error) {
	s.chatted = true
	s.lastInput = message
	return s.chatReply, nil
}

func newTestScraper(ai Summarizer, page string, fetchErr error) *Service {
	svc := NewService(ai, logging.NewTestLogger())
	svc.fetch = func(string) (string, error) {
		if fetchErr != nil {
			return "", fetchErr
		}
		return page, nil
	}
	return svc
}

func TestScrapeNDEContentIsSummarized(t *testing.T) {
	page := strings.Repeat("Ultrasonic testing of welds per ASME Section V. ", 10)
	ai := &stubAI{summary: "UT summary"}
	svc := newTestScraper(ai, page, nil)

	result, err := svc.Scrape(context.Background(), "https://example.com/ut-guide")
	require.NoError(t, err)

	assert.True(t, ai.summarized)
	assert.False(t, ai.chatted)
	assert.Contains(t, result.Content, "NDE Technical Content Summary")
	assert.Contains(t, result.Content, "UT summary")
	assert.Contains(t, result.Content, "https://example.com/ut-guide")
	assert.Equal(t, len(strings.TrimSpace(page)), result.ContentLength)
}

func TestScrapeGenericContentIsAnalyzed(t *testing.T) {
	page := strings.Repeat("A general article about gardening and soil quality. ", 10)
	ai := &stubAI{chatReply: "no technical relevance"}
	svc := newTestScraper(ai, page, nil)

	result, err := svc.Scrape(context.Background(), "https://example.com/gardening")
	require.NoError(t, err)

	assert.True(t, ai.chatted)
	assert.False(t, ai.summarized)
	assert.Equal(t, "no technical relevance", result.Content)
}

func TestScrapeTruncatesBeforeSummarizing(t *testing.T) {
	page := strings.Repeat("nondestructive ", 1000)
	ai := &stubAI{summary: "ok"}
	svc := newTestScraper(ai, page, nil)

	_, err := svc.Scrape(context.Background(), "https://example.com/long")
	require.NoError(t, err)
	assert.LessOrEqual(t, len(ai.lastInput), summarizeLimit)
}

func TestScrapeTooShort(t *testing.T) {
	svc := newTestScraper(&stubAI{}, "tiny", nil)

	_, err := svc.Scrape(context.Background(), "https://example.com/empty")
	assert.ErrorContains(t, err, "too short")
}

func TestScrapeFetchFailure(t *testing.T) {
	svc := newTestScraper(&stubAI{}, "", errors.New("dns failure"))

	_, err := svc.Scrape(context.Background(), "https://unreachable.invalid")
	assert.ErrorContains(t, err, "unable to extract content")
}

func TestHasNDEContext(t *testing.T) {
	assert.True(t, HasNDEContext("Eddy current probes for tube inspection"))
	assert.True(t, HasNDEContext("https://example.com/ndt-handbook"))
	assert.False(t, HasNDEContext("chocolate cake recipe"))
}
