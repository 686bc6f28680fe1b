package internal

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidVideoLink is returned when no video identifier can be extracted
	ErrInvalidVideoLink = errors.New("not a YouTube video link or ID")
	// ErrTranscriptUnavailable covers disabled captions, unknown videos and network errors
	ErrTranscriptUnavailable = errors.New("transcript unavailable")
	// ErrEmptyTranscript is returned when a summary is requested without any source text
	ErrEmptyTranscript = errors.New("transcript is empty")
	// ErrMetadataNotFound is returned when the metadata provider does not know the video
	ErrMetadataNotFound = errors.New("video metadata not found")
	// ErrUnauthorized is returned when a provider rejects the credential
	ErrUnauthorized = errors.New("provider credential rejected")
	// ErrProvider wraps quota, credential and request errors of generation providers
	ErrProvider = errors.New("text generation failed")
	// ErrDownloadFailed is returned when yt-dlp could not fetch a resource
	ErrDownloadFailed = errors.New("download failed")
)

// SummaryLength selects how long the generated summary should be
type SummaryLength int

const (
	LengthShort SummaryLength = iota
	LengthMedium
	LengthLong
)

// String returns the lowercase name used in prompts and config
func (l SummaryLength) String() string {
	switch l {
	case LengthShort:
		return "short"
	case LengthLong:
		return "long"
	default:
		return "medium"
	}
}

// ParseSummaryLength accepts short, medium or long in any case
func ParseSummaryLength(s string) (SummaryLength, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "short":
		return LengthShort, nil
	case "", "medium":
		return LengthMedium, nil
	case "long":
		return LengthLong, nil
	}
	return LengthMedium, fmt.Errorf("unsupported summary length: %q (supported: short, medium, long)", s)
}

// Segment is one timed piece of a transcript
type Segment struct {
	Start    time.Duration
	Duration time.Duration
	Text     string
}

// VideoMetadata contains YouTube video information
type VideoMetadata struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Channel      string         `json:"channel"`
	Uploader     string         `json:"uploader,omitempty"`
	Duration     float64        `json:"duration"`
	Categories   []string       `json:"categories,omitempty"`
	Tags         []string       `json:"tags,omitempty"`
	Chapters     []VideoChapter `json:"chapters,omitempty"`
	HasCaptions  bool           `json:"has_captions"`
	ThumbnailURL string         `json:"thumbnail_url"`
}

// VideoChapter represents a video chapter marker
type VideoChapter struct {
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	Title     string  `json:"title"`
}

// ThumbnailURL returns the default thumbnail image of a video
func ThumbnailURL(videoID string) string {
	return "https://img.youtube.com/vi/" + videoID + "/0.jpg"
}
