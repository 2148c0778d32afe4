// Package youtube searches YouTube for NDE educational videos through the
// YouTube Data API v3 and filters results to professional/educational content.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	youtubeapi "google.golang.org/api/youtube/v3"

	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/logging"
)

const defaultMaxResults = 10

// ErrNotConfigured is returned when no API key was supplied.
var ErrNotConfigured = errors.New("YouTube API key not configured")

// Video is one filtered search hit.
type Video struct {
	VideoID      string `json:"video_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ChannelTitle string `json:"channel_title"`
	PublishedAt  string `json:"published_at"`
	Thumbnail    string `json:"thumbnail"`
	EmbedURL     string `json:"embed_url"`
}

// VideoDetails carries the extended metadata for one video.
type VideoDetails struct {
	Video
	Duration  string `json:"duration"`
	ViewCount uint64 `json:"view_count"`
	LikeCount uint64 `json:"like_count"`
}

var educationalKeywords = []string{
	"tutorial", "training", "education", "course", "learn", "how to",
	"guide", "demonstration", "explained", "basics", "fundamentals",
	"procedure", "standard", "certification", "inspection", "testing",
}

var ndeKeywords = []string{
	"ndt", "nde", "ultrasonic", "radiographic", "magnetic particle",
	"penetrant", "eddy current", "visual inspection", "testing",
	"non-destructive", "nondestructive", "inspection",
}

// Client wraps the YouTube Data API service.
type Client struct {
	apiKey string
	logger *logging.Logger
}

// NewClient builds a client. An empty key is tolerated; calls return
// ErrNotConfigured until one is set.
func NewClient(apiKey string, logger *logging.Logger) *Client {
	return &Client{apiKey: apiKey, logger: logger}
}

// Search runs an NDE-enhanced video search and keeps only results that look
// both educational and NDE-relevant.
func (c *Client) Search(ctx context.Context, query string) ([]Video, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	svc, err := youtubeapi.NewService(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}

	resp, err := svc.Search.List([]string{"snippet"}).
		Q(query + " NDT NDE non-destructive testing inspection tutorial education").
		Type("video").
		MaxResults(defaultMaxResults).
		Order("relevance").
		VideoEmbeddable("true").
		SafeSearch("strict").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube search failed: %w", err)
	}

	videos := make([]Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Snippet == nil {
			continue
		}
		if !IsEducational(item.Snippet.Title, item.Snippet.Description) {
			continue
		}

		desc := item.Snippet.Description
		if len(desc) > 200 {
			desc = desc[:200] + "..."
		}

		var thumb string
		if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.Default != nil {
			thumb = item.Snippet.Thumbnails.Default.Url
		}

		videos = append(videos, Video{
			VideoID:      item.Id.VideoId,
			Title:        item.Snippet.Title,
			Description:  desc,
			ChannelTitle: item.Snippet.ChannelTitle,
			PublishedAt:  item.Snippet.PublishedAt,
			Thumbnail:    thumb,
			EmbedURL:     "https://www.youtube.com/embed/" + item.Id.VideoId,
		})
	}

	return videos, nil
}

// Details fetches extended metadata for one video; (nil, nil) when not found.
func (c *Client) Details(ctx context.Context, videoID string) (*VideoDetails, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	svc, err := youtubeapi.NewService(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}

	resp, err := svc.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
		Id(videoID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube video lookup failed: %w", err)
	}
	if len(resp.Items) == 0 {
		return nil, nil
	}

	item := resp.Items[0]
	d := &VideoDetails{
		Video: Video{
			VideoID:  videoID,
			EmbedURL: "https://www.youtube.com/embed/" + videoID,
		},
	}
	if item.Snippet != nil {
		d.Title = item.Snippet.Title
		d.Description = item.Snippet.Description
		d.ChannelTitle = item.Snippet.ChannelTitle
		d.PublishedAt = item.Snippet.PublishedAt
		if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.Default != nil {
			d.Thumbnail = item.Snippet.Thumbnails.Default.Url
		}
	}
	if item.ContentDetails != nil {
		d.Duration = item.ContentDetails.Duration
	}
	if item.Statistics != nil {
		d.ViewCount = item.Statistics.ViewCount
		d.LikeCount = item.Statistics.LikeCount
	}
	return d, nil
}

// IsEducational reports whether a title/description pair carries both an
// educational indicator and NDE-relevant terminology.
func IsEducational(title, description string) bool {
	t, desc := strings.ToLower(title), strings.ToLower(description)

	hasEducational := false
	for _, kw := range educationalKeywords {
		if strings.Contains(t, kw) || strings.Contains(desc, kw) {
			hasEducational = true
			break
		}
	}
	if !hasEducational {
		return false
	}

	for _, kw := range ndeKeywords {
		if strings.Contains(t, kw) || strings.Contains(desc, kw) {
			return true
		}
	}
	return false
}
