package internal

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testVideoID = "dQw4w9WgXcQ"

func TestAppVideoID(t *testing.T) {
	ta := newTestApp(t)

	id, err := ta.app.VideoID("https://youtu.be/" + testVideoID + "?t=3")
	require.NoError(t, err)
	assert.Equal(t, testVideoID, id)

	_, err = ta.app.VideoID("https://example.com/")
	assert.ErrorIs(t, err, ErrInvalidVideoLink)
}

func TestAppMetadataSetsThumbnail(t *testing.T) {
	ta := newTestApp(t)

	metadata, err := ta.app.Metadata(context.Background(), testVideoID)
	require.NoError(t, err)
	assert.Equal(t, "A Talk", metadata.Title)
	assert.Equal(t, ThumbnailURL(testVideoID), metadata.ThumbnailURL)
}

func TestAppGetTranscript(t *testing.T) {
	ta := newTestApp(t)

	transcript, err := ta.app.GetTranscript(context.Background(), "https://www.youtube.com/watch?v="+testVideoID)
	require.NoError(t, err)
	assert.Equal(t, "hello there general kenobi", transcript)
}

func TestAppGetTranscriptEmpty(t *testing.T) {
	ta := newTestApp(t)
	ta.transcripts.segments = []Segment{{Text: "  "}}

	_, err := ta.app.GetTranscript(context.Background(), testVideoID)
	assert.ErrorIs(t, err, ErrTranscriptUnavailable)
}

func TestAppGetTranscriptInvalidLink(t *testing.T) {
	ta := newTestApp(t)

	_, err := ta.app.GetTranscript(context.Background(), "not a link")
	assert.ErrorIs(t, err, ErrInvalidVideoLink)
	assert.Zero(t, ta.transcripts.calls)
}

func TestAppSummarizeFromCaptions(t *testing.T) {
	ta := newTestApp(t)

	summary, err := ta.app.Summarize(context.Background(), testVideoID, SummarizeOptions{Length: LengthShort})
	require.NoError(t, err)

	assert.Equal(t, SourceCaptions, summary.Source)
	assert.Equal(t, "# Summary\n\n- point", summary.Text)
	assert.Equal(t, "A Talk", summary.Title())

	require.Len(t, ta.generator.prompts, 1)
	prompt := ta.generator.prompts[0]
	assert.Contains(t, prompt, "create a short summary")
	assert.Contains(t, prompt, "hello there general kenobi")
	assert.Contains(t, prompt, "Title: A Talk")
	assert.Equal(t, []string{"gpt-4o-mini"}, ta.generator.models)
	assert.Zero(t, ta.audio.calls)
}

func TestAppSummarizeFallbackWhisper(t *testing.T) {
	ta := newTestApp(t)
	ta.transcripts.err = ErrTranscriptUnavailable

	summary, err := ta.app.Summarize(context.Background(), testVideoID, SummarizeOptions{FallbackWhisper: true})
	require.NoError(t, err)

	assert.Equal(t, SourceWhisper, summary.Source)
	assert.Equal(t, []string{"audio of " + testVideoID}, ta.transcriber.inputs)
	assert.Contains(t, ta.generator.prompts[0], "spoken audio of "+testVideoID)
	assert.NoFileExists(t, filepath.Join(ta.audio.dir, testVideoID+".mp3"))
}

func TestAppSummarizeFallbackDescription(t *testing.T) {
	ta := newTestApp(t)
	ta.transcripts.err = ErrTranscriptUnavailable

	summary, err := ta.app.Summarize(context.Background(), testVideoID, SummarizeOptions{FallbackDescription: true})
	require.NoError(t, err)

	assert.Equal(t, SourceDescription, summary.Source)
	prompt := ta.generator.prompts[0]
	assert.Contains(t, prompt, "Based on its title and description")
	assert.Contains(t, prompt, "A talk about things.")
	assert.NotContains(t, prompt, "Transcript:")
}

func TestAppSummarizeWhisperFailureFallsBackToDescription(t *testing.T) {
	ta := newTestApp(t)
	ta.transcripts.err = ErrTranscriptUnavailable
	ta.audio.err = ErrDownloadFailed

	summary, err := ta.app.Summarize(context.Background(), testVideoID, SummarizeOptions{
		FallbackWhisper:     true,
		FallbackDescription: true,
	})
	require.NoError(t, err)
	assert.Equal(t, SourceDescription, summary.Source)
}

func TestAppSummarizeNoFallback(t *testing.T) {
	ta := newTestApp(t)
	ta.transcripts.err = ErrTranscriptUnavailable

	_, err := ta.app.Summarize(context.Background(), testVideoID, SummarizeOptions{})
	assert.ErrorIs(t, err, ErrTranscriptUnavailable)
	assert.Empty(t, ta.generator.prompts)
}

func TestAppSummarizeInteractiveDecline(t *testing.T) {
	ta := newTestApp(t)
	ta.transcripts.err = ErrTranscriptUnavailable

	orig := AskUser
	t.Cleanup(func() { AskUser = orig })
	var asked bool
	AskUser = func(string) bool {
		asked = true
		return false
	}

	_, err := ta.app.Summarize(context.Background(), testVideoID, SummarizeOptions{Interactive: true})
	require.Error(t, err)
	assert.True(t, asked)
	assert.ErrorIs(t, err, ErrTranscriptUnavailable)
	assert.Contains(t, err.Error(), "declined")
	assert.Zero(t, ta.audio.calls)
}

func TestAppSummarizeInteractiveAccept(t *testing.T) {
	ta := newTestApp(t)
	ta.transcripts.err = ErrTranscriptUnavailable

	orig := AskUser
	t.Cleanup(func() { AskUser = orig })
	AskUser = func(string) bool { return true }

	summary, err := ta.app.Summarize(context.Background(), testVideoID, SummarizeOptions{Interactive: true})
	require.NoError(t, err)
	assert.Equal(t, SourceWhisper, summary.Source)
}

func TestAppSummarizeWithoutMetadata(t *testing.T) {
	ta := newTestApp(t)
	ta.metadata.err = ErrMetadataNotFound

	summary, err := ta.app.Summarize(context.Background(), testVideoID, SummarizeOptions{})
	require.NoError(t, err)
	assert.Nil(t, summary.Metadata)
	assert.Equal(t, "YouTube video "+testVideoID, summary.Title())
}

func TestAppSummarizeNothingToSummarize(t *testing.T) {
	ta := newTestApp(t)
	ta.transcripts.err = ErrTranscriptUnavailable
	ta.metadata.err = ErrMetadataNotFound

	_, err := ta.app.Summarize(context.Background(), testVideoID, SummarizeOptions{FallbackDescription: true})
	assert.ErrorIs(t, err, ErrEmptyTranscript)
}

func TestAppSummarizeProviderError(t *testing.T) {
	ta := newTestApp(t)
	ta.generator.err = errors.New("quota exceeded")

	_, err := ta.app.Summarize(context.Background(), testVideoID, SummarizeOptions{})
	assert.ErrorIs(t, err, ErrProvider)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestAppCustomPrompt(t *testing.T) {
	ta := newTestApp(t)
	ta.app.SetPromptManager(NewPromptManager(ta.config.ConfigDir, "tldr ({{.Length}}): {{.Transcript}}"))

	_, err := ta.app.Summarize(context.Background(), testVideoID, SummarizeOptions{Length: LengthLong})
	require.NoError(t, err)
	assert.Equal(t, "tldr (long): hello there general kenobi", ta.generator.prompts[0])
}

func TestAppExport(t *testing.T) {
	ta := newTestApp(t)
	dir := t.TempDir()

	text := strings.Repeat("line\n", 60)

	doc, err := ta.app.Export(text, filepath.Join(dir, "summary.pdf"), "", "A Talk")
	require.NoError(t, err)
	assert.Len(t, doc.Pages(), 2)
	assert.Equal(t, 60, doc.LineCount())

	data, err := os.ReadFile(filepath.Join(dir, "summary.pdf"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF-"))
}

func TestAppExportInvalidGeometry(t *testing.T) {
	ta := newTestApp(t)
	ta.config.Export.LineHeight = 0

	_, err := ta.app.Export("text", filepath.Join(t.TempDir(), "out.txt"), "", "")
	assert.Error(t, err)
}

func TestAppExportDefaultFormat(t *testing.T) {
	ta := newTestApp(t)
	ta.config.Export.Format = "txt"
	path := filepath.Join(t.TempDir(), "summary")

	_, err := ta.app.Export("body", path, "", "")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "body\n", string(data))
}
