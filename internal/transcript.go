package internal

import (
	"context"
	"fmt"
	"strings"
)

// TranscriptProvider fetches the timed caption segments of a video
type TranscriptProvider interface {
	Transcript(ctx context.Context, videoID string) ([]Segment, error)
}

// MetadataProvider fetches video details
type MetadataProvider interface {
	Metadata(ctx context.Context, videoID string) (*VideoMetadata, error)
}

// Transcript provider names accepted in config
const (
	TranscriptProviderYTDLP         = "ytdlp"
	TranscriptProviderTimedText     = "timedtext"
	TranscriptProviderTranscriptAPI = "transcriptapi"
)

// Metadata provider names accepted in config
const (
	MetadataProviderYTDLP   = "ytdlp"
	MetadataProviderDataAPI = "dataapi"
)

// NormalizeTranscript joins segment texts into one line of prose. Whitespace
// inside a segment is collapsed and empty segments are dropped.
func NormalizeTranscript(segments []Segment) string {
	var sb strings.Builder
	for _, seg := range segments {
		text := strings.Join(strings.Fields(seg.Text), " ")
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(text)
	}
	return sb.String()
}

// removeDuplicates eliminates consecutive repeated segments, which rolling
// auto-generated captions produce
func removeDuplicates(segments []Segment) []Segment {
	result := make([]Segment, 0, len(segments))
	prev := ""

	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		isDuplicate := prev != "" && text != "" && (strings.Contains(text, prev) || strings.Contains(prev, text))
		if !isDuplicate {
			result = append(result, seg)
		}
		prev = text
	}

	return result
}

// NewTranscriptProvider returns the configured transcript provider
func NewTranscriptProvider(config *Config, yt *YouTube) (TranscriptProvider, error) {
	switch config.TranscriptProvider {
	case TranscriptProviderYTDLP, "":
		return yt, nil
	case TranscriptProviderTimedText:
		return NewCaptions(nil, config.TranscriptLanguages), nil
	case TranscriptProviderTranscriptAPI:
		return NewTranscriptAPI(config.TranscriptLanguages), nil
	}
	return nil, fmt.Errorf("unsupported transcript provider: %q", config.TranscriptProvider)
}

// NewMetadataProvider returns the configured metadata provider
func NewMetadataProvider(config *Config, yt *YouTube) (MetadataProvider, error) {
	switch config.MetadataProvider {
	case MetadataProviderYTDLP, "":
		return yt, nil
	case MetadataProviderDataAPI:
		return NewDataAPI(nil, config.YouTubeAPIKey), nil
	}
	return nil, fmt.Errorf("unsupported metadata provider: %q", config.MetadataProvider)
}
