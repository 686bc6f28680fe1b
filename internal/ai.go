package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Generation provider names accepted in config
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// supportedModels lists the summary models of each provider, default first
var supportedModels = map[string][]string{
	ProviderOpenAI: {"gpt-4o-mini", "gpt-4o", "o4-mini", "gpt-4.1-nano"},
	ProviderGemini: {"gemini-2.5-flash", "gemini-2.5-pro", "gemini-2.0-flash"},
}

// Generator produces text for a prompt with the given model
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// Transcriber turns speech into text
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader) (string, error)
}

// Credentials holds the API keys of the generation providers
type Credentials struct {
	OpenAI string
	Gemini string
}

// AI handles summarization and Whisper transcription
type AI struct {
	provider     string
	creds        Credentials
	audio        *Audio
	model        string
	whisperLimit int64
	timeout      time.Duration
	log          logrus.FieldLogger

	clientOnce  sync.Once
	generator   Generator
	transcriber Transcriber
}

// NewAI creates an AI processor whose clients are built on first use
func NewAI(provider string, creds Credentials, audio *Audio, model string, whisperLimit int64, timeout time.Duration, log logrus.FieldLogger) *AI {
	return &AI{
		provider:     provider,
		creds:        creds,
		audio:        audio,
		model:        model,
		whisperLimit: whisperLimit,
		timeout:      timeout,
		log:          log,
	}
}

// NewAIWithClients creates an AI processor around existing clients
func NewAIWithClients(generator Generator, transcriber Transcriber, audio *Audio, model string, whisperLimit int64, timeout time.Duration, log logrus.FieldLogger) *AI {
	ai := NewAI("", Credentials{}, audio, model, whisperLimit, timeout, log)
	ai.generator = generator
	ai.transcriber = transcriber
	ai.clientOnce.Do(func() {})
	return ai
}

func (ai *AI) ensureClients() {
	ai.clientOnce.Do(func() {
		switch ai.provider {
		case ProviderGemini:
			if ai.creds.Gemini != "" {
				ai.generator = NewGeminiClient(ai.creds.Gemini)
			}
		default:
			if ai.creds.OpenAI != "" {
				ai.generator = NewOpenAIClient(ai.creds.OpenAI)
			}
		}
		// Whisper is only offered by OpenAI, whatever summarizes
		if ai.creds.OpenAI != "" {
			ai.transcriber = NewOpenAIClient(ai.creds.OpenAI)
		}
	})
}

// Model returns the model used for summaries
func (ai *AI) Model() string {
	return ai.model
}

// Summary generates text for a prepared prompt within the summary timeout
func (ai *AI) Summary(ctx context.Context, prompt string) (string, error) {
	ai.ensureClients()
	if ai.generator == nil {
		return "", missingKeyError(ai.provider)
	}

	if ai.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ai.timeout)
		defer cancel()
	}

	ai.log.WithFields(logrus.Fields{"provider": ai.provider, "model": ai.model}).Debug("generating summary")

	content, err := ai.generator.Generate(ctx, ai.model, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrProvider, err)
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return "", fmt.Errorf("%w: empty response from %s", ErrProvider, ai.model)
	}
	return content, nil
}

// Transcribe transcribes an audio file with Whisper, splitting it when it
// exceeds the upload limit. bar may be nil.
func (ai *AI) Transcribe(ctx context.Context, audioFile string, bar ProgressBar) (string, error) {
	ai.ensureClients()
	if ai.transcriber == nil {
		return "", missingKeyError(ProviderOpenAI)
	}

	ai.log.WithField("path", audioFile).Debug("transcribing audio file")

	info, err := os.Stat(audioFile)
	if err != nil {
		return "", fmt.Errorf("getting audio file info: %w", err)
	}

	numChunks := int(math.Ceil(float64(info.Size()) / float64(ai.whisperLimit)))

	chunks := []string{audioFile}
	if numChunks > 1 {
		if ai.audio == nil {
			return "", errors.New("audio exceeds the upload limit and no splitter is configured")
		}
		chunks, err = ai.audio.Split(ctx, audioFile, numChunks)
		if err != nil {
			return "", fmt.Errorf("splitting audio: %w", err)
		}
		defer cleanupFiles(chunks...)
	}

	transcript, err := ai.processAudioChunks(ctx, chunks, bar)
	if err != nil {
		return "", fmt.Errorf("transcribing audio: %w", err)
	}
	return transcript, nil
}

// processAudioChunks transcribes chunks sequentially; concurrent uploads
// occasionally returned a broken chunk transcript
func (ai *AI) processAudioChunks(ctx context.Context, chunks []string, bar ProgressBar) (string, error) {
	numChunks := len(chunks)
	ai.log.Debugf("transcribing %d chunk(s)", numChunks)

	var sb strings.Builder
	for i, chunkPath := range chunks {
		text, err := ai.transcribeFile(ctx, chunkPath)
		if err != nil {
			return "", fmt.Errorf("transcribing chunk %d: %w", i+1, err)
		}

		sb.WriteString(text)
		if i < numChunks-1 {
			sb.WriteString("\n")
		}

		if bar != nil {
			bar.Describe(fmt.Sprintf("Transcribed chunk %d/%d", i+1, numChunks))
			bar.Advance()
		}
	}

	return sb.String(), nil
}

func (ai *AI) transcribeFile(ctx context.Context, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening chunk %s: %w", path, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			ai.log.WithError(err).Warnf("failed to close %s", path)
		}
	}()

	text, err := ai.transcriber.Transcribe(ctx, file)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrProvider, err)
	}
	return text, nil
}

func missingKeyError(provider string) error {
	switch provider {
	case ProviderGemini:
		return fmt.Errorf("%w: Gemini API key is required - set gemini_api_key in config.toml or GEMINI_API_KEY", ErrUnauthorized)
	default:
		return fmt.Errorf("%w: OpenAI API key is required - set openai_api_key in config.toml or OPENAI_API_KEY", ErrUnauthorized)
	}
}

// DefaultModel returns the model used when none is configured
func DefaultModel(provider string) string {
	if models, ok := supportedModels[provider]; ok {
		return models[0]
	}
	return supportedModels[ProviderOpenAI][0]
}

// ValidateProvider checks if the generation provider is supported
func ValidateProvider(provider string) error {
	if _, ok := supportedModels[provider]; ok {
		return nil
	}
	return fmt.Errorf("unsupported provider: %s (supported: %s, %s)", provider, ProviderOpenAI, ProviderGemini)
}

// ValidateModel checks if the model is supported by the provider
func ValidateModel(provider, model string) error {
	if err := ValidateProvider(provider); err != nil {
		return err
	}
	models := supportedModels[provider]
	if slices.Contains(models, model) {
		return nil
	}
	return fmt.Errorf("unsupported %s model: %s (supported: %s)", provider, model, strings.Join(models, ", "))
}
