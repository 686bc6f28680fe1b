package internal

import (
	"context"
	"fmt"
	"strings"

	"github.com/horiagug/youtube-transcript-api-go/pkg/yt_transcript"
	"github.com/horiagug/youtube-transcript-api-go/pkg/yt_transcript_formatters"
)

// TranscriptAPI fetches transcripts with youtube-transcript-api-go. The
// library returns formatted text without timing, so every output line
// becomes one untimed segment.
type TranscriptAPI struct {
	client    formattedTranscripts
	languages []string
}

type formattedTranscripts interface {
	GetFormattedTranscripts(videoID string, languages []string, preserveFormatting bool) (string, error)
}

// NewTranscriptAPI creates a transcript client preferring the given languages
func NewTranscriptAPI(languages []string) *TranscriptAPI {
	if len(languages) == 0 {
		languages = []string{"en"}
	}
	formatter := yt_transcript_formatters.NewTextFormatter(
		yt_transcript_formatters.WithTimestamps(false),
		yt_transcript_formatters.WithLanguageCode(false),
	)
	return &TranscriptAPI{
		client:    yt_transcript.NewClient(yt_transcript.WithFormatter(formatter)),
		languages: languages,
	}
}

func (t *TranscriptAPI) Transcript(ctx context.Context, videoID string) ([]Segment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text, err := t.client.GetFormattedTranscripts(videoID, t.languages, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTranscriptUnavailable, err)
	}

	segments := textSegments(text)
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: empty transcript for %s", ErrTranscriptUnavailable, videoID)
	}
	return segments, nil
}

// textSegments turns each non-empty line into an untimed segment
func textSegments(text string) []Segment {
	var segments []Segment
	for line := range strings.Lines(text) {
		if line = strings.TrimSpace(line); line != "" {
			segments = append(segments, Segment{Text: line})
		}
	}
	return segments
}
