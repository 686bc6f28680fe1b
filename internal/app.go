package internal

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/rtzll/ytbrief/internal/pagination"
)

// AudioSource downloads the audio track of a video to a local file
type AudioSource interface {
	Audio(ctx context.Context, videoID string) (string, error)
}

// Transcript sources reported in a Summary
const (
	SourceCaptions    = "captions"
	SourceWhisper     = "whisper"
	SourceDescription = "description"
)

// App holds the application state and dependencies
type App struct {
	transcripts   TranscriptProvider
	metadata      MetadataProvider
	audioSource   AudioSource
	ai            *AI
	promptManager *PromptManager
	config        *Config
	ui            UIManager
	log           logrus.FieldLogger
}

// AppOption customizes App creation
type AppOption func(*App)

// WithLogger sets the logger used by the app and its default providers
func WithLogger(log logrus.FieldLogger) AppOption {
	return func(a *App) {
		a.log = log
	}
}

// WithTranscriptProvider sets a custom transcript provider
func WithTranscriptProvider(p TranscriptProvider) AppOption {
	return func(a *App) {
		a.transcripts = p
	}
}

// WithMetadataProvider sets a custom metadata provider
func WithMetadataProvider(p MetadataProvider) AppOption {
	return func(a *App) {
		a.metadata = p
	}
}

// WithAudioSource sets a custom audio downloader
func WithAudioSource(s AudioSource) AppOption {
	return func(a *App) {
		a.audioSource = s
	}
}

// WithAI sets a custom AI processor
func WithAI(ai *AI) AppOption {
	return func(a *App) {
		a.ai = ai
	}
}

// WithUI sets the progress and status output
func WithUI(ui UIManager) AppOption {
	return func(a *App) {
		a.ui = ui
	}
}

// NewApp initializes the application. Dependencies not set by options are
// built from config.
func NewApp(config *Config, options ...AppOption) (*App, error) {
	app := &App{config: config}
	for _, option := range options {
		option(app)
	}

	if app.log == nil {
		app.log = NewLogger(config.Verbose, config.Quiet)
	}
	if app.ui == nil {
		app.ui = NewUIManager(config.Quiet)
	}

	yt := NewYouTube(config.CacheDir, app.log)
	if app.transcripts == nil {
		p, err := NewTranscriptProvider(config, yt)
		if err != nil {
			return nil, err
		}
		app.transcripts = p
	}
	if app.metadata == nil {
		p, err := NewMetadataProvider(config, yt)
		if err != nil {
			return nil, err
		}
		app.metadata = p
	}
	if app.audioSource == nil {
		app.audioSource = yt
	}
	if app.ai == nil {
		audio := NewAudio(&DefaultCommandRunner{}, config.TempDir, app.log)
		app.ai = NewAI(config.Provider, config.Credentials(), audio, config.Model, WhisperLimit, config.SummaryTimeout, app.log)
	}
	app.promptManager = NewPromptManager(config.ConfigDir, config.Prompt)

	return app, nil
}

// SetPromptManager sets a new prompt manager
func (app *App) SetPromptManager(pm *PromptManager) {
	app.promptManager = pm
}

// Config returns the settings the app was built with
func (app *App) Config() *Config {
	return app.config
}

// VideoID extracts the video ID from a link or bare ID
func (app *App) VideoID(arg string) (string, error) {
	_, id, err := ParseArg(arg)
	return id, err
}

// Metadata fetches the details of a video
func (app *App) Metadata(ctx context.Context, arg string) (*VideoMetadata, error) {
	id, err := app.VideoID(arg)
	if err != nil {
		return nil, err
	}

	spinner := app.ui.NewSpinner("Fetching video metadata...")
	defer spinner.Finish()

	app.log.WithField("video_id", id).Debug("fetching metadata")
	metadata, err := app.metadata.Metadata(ctx, id)
	if err != nil {
		return nil, err
	}
	if metadata.ThumbnailURL == "" {
		metadata.ThumbnailURL = ThumbnailURL(id)
	}
	return metadata, nil
}

// GetTranscript fetches the captions of a video and joins them into one text
func (app *App) GetTranscript(ctx context.Context, arg string) (string, error) {
	id, err := app.VideoID(arg)
	if err != nil {
		return "", err
	}

	spinner := app.ui.NewSpinner("Fetching YouTube captions...")
	defer spinner.Finish()

	log := app.log.WithField("video_id", id)
	log.Debug("fetching transcript")

	segments, err := app.transcripts.Transcript(ctx, id)
	if err != nil {
		return "", err
	}

	transcript := NormalizeTranscript(segments)
	if transcript == "" {
		return "", fmt.Errorf("%w: captions for %s are empty", ErrTranscriptUnavailable, id)
	}

	log.WithField("segments", len(segments)).Debug("transcript fetched")
	return transcript, nil
}

// DownloadAudio downloads the audio of a video and returns the file path
func (app *App) DownloadAudio(ctx context.Context, arg string) (string, error) {
	id, err := app.VideoID(arg)
	if err != nil {
		return "", err
	}

	spinner := app.ui.NewSpinner("Downloading audio...")
	defer spinner.Finish()

	audioFile, err := app.audioSource.Audio(ctx, id)
	if err != nil {
		return "", fmt.Errorf("downloading audio: %w", err)
	}
	return audioFile, nil
}

// TranscribeAudio transcribes an audio file with Whisper within the whisper timeout
func (app *App) TranscribeAudio(ctx context.Context, audioFile string) (string, error) {
	if app.config.WhisperTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, app.config.WhisperTimeout)
		defer cancel()
	}

	spinner := app.ui.NewSpinner("Transcribing with OpenAI Whisper...")
	defer spinner.Finish()

	return app.ai.Transcribe(ctx, audioFile, spinner)
}

// Transcribe downloads the audio of a video and transcribes it. The audio
// file is removed afterwards.
func (app *App) Transcribe(ctx context.Context, arg string) (string, error) {
	audioFile, err := app.DownloadAudio(ctx, arg)
	if err != nil {
		return "", err
	}
	defer cleanupFiles(audioFile)

	transcript, err := app.TranscribeAudio(ctx, audioFile)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(transcript), nil
}

// GenerateSummary summarizes a transcript. Metadata is optional context; an
// empty transcript summarizes the description instead.
func (app *App) GenerateSummary(ctx context.Context, transcript string, metadata *VideoMetadata, length SummaryLength) (string, error) {
	if strings.TrimSpace(transcript) == "" && (metadata == nil || strings.TrimSpace(metadata.Description) == "") {
		return "", ErrEmptyTranscript
	}

	prompt, err := app.promptManager.CreatePrompt(transcript, metadata, length)
	if err != nil {
		return "", fmt.Errorf("creating prompt: %w", err)
	}

	spinner := app.ui.NewSpinner(fmt.Sprintf("Generating %s summary with %s...", length, app.ai.Model()))
	defer spinner.Finish()

	summary, err := app.ai.Summary(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generating summary: %w", err)
	}
	return summary, nil
}

// SummarizeOptions controls the fallbacks of Summarize
type SummarizeOptions struct {
	Length SummaryLength
	// FallbackWhisper transcribes the audio when no captions are available
	FallbackWhisper bool
	// Interactive asks before using Whisper when FallbackWhisper is unset
	Interactive bool
	// FallbackDescription summarizes the video description when no transcript is available
	FallbackDescription bool
}

// Summary is the result of Summarize
type Summary struct {
	VideoID  string
	Metadata *VideoMetadata
	Source   string
	Text     string
}

// Title returns a document title for the summary
func (s *Summary) Title() string {
	if s.Metadata != nil && s.Metadata.Title != "" {
		return s.Metadata.Title
	}
	return "YouTube video " + s.VideoID
}

// Summarize runs the whole workflow: transcript, then summary
func (app *App) Summarize(ctx context.Context, arg string, opts SummarizeOptions) (*Summary, error) {
	id, err := app.VideoID(arg)
	if err != nil {
		return nil, err
	}
	log := app.log.WithField("video_id", id)

	metadata, err := app.Metadata(ctx, id)
	if err != nil {
		log.WithError(err).Warn("continuing without video metadata")
		metadata = nil
	}

	source := SourceCaptions
	transcript, err := app.GetTranscript(ctx, id)
	if err != nil {
		log.WithError(err).Info("no captions available")
		transcript, source, err = app.fallbackTranscript(ctx, id, err, opts)
		if err != nil {
			return nil, err
		}
	}

	text, err := app.GenerateSummary(ctx, transcript, metadata, opts.Length)
	if err != nil {
		return nil, err
	}

	return &Summary{
		VideoID:  id,
		Metadata: metadata,
		Source:   source,
		Text:     text,
	}, nil
}

func (app *App) fallbackTranscript(ctx context.Context, id string, captionsErr error, opts SummarizeOptions) (string, string, error) {
	useWhisper := opts.FallbackWhisper
	if !useWhisper && opts.Interactive {
		useWhisper = AskUser("No captions available. Transcribe it using OpenAI's Whisper ($$$)?")
	}

	if useWhisper {
		transcript, err := app.Transcribe(ctx, id)
		if err == nil {
			return transcript, SourceWhisper, nil
		}
		if !opts.FallbackDescription {
			return "", "", err
		}
		app.log.WithError(err).Warn("whisper transcription failed, summarizing the description")
	}

	if opts.FallbackDescription {
		return "", SourceDescription, nil
	}
	if opts.Interactive && !opts.FallbackWhisper {
		return "", "", errors.Join(captionsErr, errors.New("transcription declined by user"))
	}
	return "", "", captionsErr
}

// Export writes text to path using the configured page layout. An empty
// format is inferred from the extension, then from export.format.
func (app *App) Export(text, path, format, title string) (pagination.Document, error) {
	if format == "" && filepath.Ext(path) == "" {
		format = app.config.Export.Format
	}

	g, err := app.config.Geometry()
	if err != nil {
		return pagination.Document{}, err
	}

	doc, err := ExportSummary(text, path, format, ExportSettings{
		Geometry: g,
		Options:  app.config.DocumentOptions(title),
		Wrap:     app.config.Export.Wrap,
	})
	if err != nil {
		return pagination.Document{}, err
	}

	app.log.WithFields(logrus.Fields{
		"path":  path,
		"pages": doc.PageCount(),
	}).Info("summary exported")
	return doc, nil
}
