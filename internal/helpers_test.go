package internal

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

type fakeTranscripts struct {
	segments []Segment
	err      error
	calls    int
}

func (f *fakeTranscripts) Transcript(ctx context.Context, videoID string) ([]Segment, error) {
	f.calls++
	return f.segments, f.err
}

type fakeMetadata struct {
	metadata *VideoMetadata
	err      error
}

func (f *fakeMetadata) Metadata(ctx context.Context, videoID string) (*VideoMetadata, error) {
	if f.err != nil {
		return nil, f.err
	}
	m := *f.metadata
	m.ID = videoID
	return &m, nil
}

type fakeGenerator struct {
	response string
	err      error
	prompts  []string
	models   []string
}

func (f *fakeGenerator) Generate(ctx context.Context, model, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.models = append(f.models, model)
	return f.response, f.err
}

type fakeTranscriber struct {
	inputs []string
	err    error
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audio io.Reader) (string, error) {
	data, err := io.ReadAll(audio)
	if err != nil {
		return "", err
	}
	f.inputs = append(f.inputs, string(data))
	if f.err != nil {
		return "", f.err
	}
	return "spoken " + string(data), nil
}

type fakeAudioSource struct {
	dir   string
	err   error
	calls int
}

func (f *fakeAudioSource) Audio(ctx context.Context, videoID string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	path := filepath.Join(f.dir, videoID+".mp3")
	return path, os.WriteFile(path, []byte("audio of "+videoID), 0644)
}

func nullLogger() logrus.FieldLogger {
	log, _ := test.NewNullLogger()
	return log
}

// testConfig returns a config rooted in temporary directories
func testConfig(t *testing.T) *Config {
	t.Helper()
	dir := t.TempDir()
	return &Config{
		Provider:            ProviderOpenAI,
		Model:               "gpt-4o-mini",
		SummaryLength:       "medium",
		SummaryTimeout:      time.Minute,
		WhisperTimeout:      time.Minute,
		TranscriptProvider:  TranscriptProviderYTDLP,
		TranscriptLanguages: []string{"en"},
		MetadataProvider:    MetadataProviderYTDLP,
		Quiet:               true,
		Export: ExportConfig{
			Format:       "pdf",
			PageSize:     "letter",
			Font:         "Helvetica",
			FontSize:     11,
			LeftMargin:   50,
			TopMargin:    50,
			BottomMargin: 50,
			LineHeight:   13.2,
			Wrap:         true,
		},
		ConfigDir: filepath.Join(dir, "config"),
		DataDir:   filepath.Join(dir, "data"),
		CacheDir:  filepath.Join(dir, "cache"),
		TempDir:   filepath.Join(dir, "cache", "temp_chunks"),
	}
}

type testApp struct {
	app         *App
	config      *Config
	transcripts *fakeTranscripts
	metadata    *fakeMetadata
	generator   *fakeGenerator
	transcriber *fakeTranscriber
	audio       *fakeAudioSource
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	ta := &testApp{
		config: testConfig(t),
		transcripts: &fakeTranscripts{segments: []Segment{
			{Text: "hello  there"},
			{Text: "general kenobi"},
		}},
		metadata: &fakeMetadata{metadata: &VideoMetadata{
			Title:       "A Talk",
			Channel:     "Some Channel",
			Description: "A talk about things.",
			HasCaptions: true,
		}},
		generator:   &fakeGenerator{response: "  # Summary\n\n- point  \n"},
		transcriber: &fakeTranscriber{},
		audio:       &fakeAudioSource{dir: t.TempDir()},
	}

	log := nullLogger()
	ai := NewAIWithClients(ta.generator, ta.transcriber, nil, ta.config.Model, WhisperLimit, time.Minute, log)

	app, err := NewApp(ta.config,
		WithLogger(log),
		WithUI(NewUIManager(true)),
		WithTranscriptProvider(ta.transcripts),
		WithMetadataProvider(ta.metadata),
		WithAudioSource(ta.audio),
		WithAI(ai),
	)
	require.NoError(t, err)
	ta.app = app
	return ta
}
