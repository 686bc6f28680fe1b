package internal

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAISummaryTrimsOutput(t *testing.T) {
	gen := &fakeGenerator{response: "\n  summary text \n"}
	ai := NewAIWithClients(gen, nil, nil, "gemini-2.5-flash", WhisperLimit, time.Second, nullLogger())

	got, err := ai.Summary(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "summary text", got)
	assert.Equal(t, []string{"gemini-2.5-flash"}, gen.models)
}

func TestAISummaryEmptyResponse(t *testing.T) {
	ai := NewAIWithClients(&fakeGenerator{response: "   "}, nil, nil, "gpt-4o", WhisperLimit, 0, nullLogger())

	_, err := ai.Summary(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrProvider)
}

func TestAISummaryWrapsProviderError(t *testing.T) {
	cause := errors.New("invalid api key")
	ai := NewAIWithClients(&fakeGenerator{err: cause}, nil, nil, "gpt-4o", WhisperLimit, 0, nullLogger())

	_, err := ai.Summary(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrProvider)
	assert.ErrorIs(t, err, cause)
}

func TestAIMissingKeys(t *testing.T) {
	tests := []struct {
		provider string
		envVar   string
	}{
		{ProviderOpenAI, "OPENAI_API_KEY"},
		{ProviderGemini, "GEMINI_API_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			ai := NewAI(tt.provider, Credentials{}, nil, DefaultModel(tt.provider), WhisperLimit, time.Second, nullLogger())

			_, err := ai.Summary(context.Background(), "prompt")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnauthorized)
			assert.Contains(t, err.Error(), tt.envVar)
		})
	}
}

func TestAITranscribeRequiresOpenAIKey(t *testing.T) {
	ai := NewAI(ProviderGemini, Credentials{Gemini: "key"}, nil, "gemini-2.5-flash", WhisperLimit, time.Second, nullLogger())

	_, err := ai.Transcribe(context.Background(), "missing.mp3", nil)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestAITranscribeSingleChunk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audio.mp3")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0644))

	tr := &fakeTranscriber{}
	ai := NewAIWithClients(nil, tr, nil, "gpt-4o", WhisperLimit, 0, nullLogger())

	got, err := ai.Transcribe(context.Background(), path, &SilentProgressBar{})
	require.NoError(t, err)
	assert.Equal(t, "spoken abc", got)
	assert.Equal(t, []string{"abc"}, tr.inputs)
}

func TestAITranscribeSplitsLargeFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "audio.mp3")
	require.NoError(t, os.WriteFile(path, make([]byte, 25), 0644))

	runner := &fakeRunner{duration: "30.0"}
	audio := NewAudio(runner, filepath.Join(dir, "chunks"), nullLogger())
	tr := &fakeTranscriber{}
	// 10 byte limit forces three chunks
	ai := NewAIWithClients(nil, tr, audio, "gpt-4o", 10, 0, nullLogger())

	got, err := ai.Transcribe(context.Background(), path, nil)
	require.NoError(t, err)

	assert.Len(t, tr.inputs, 3)
	assert.Equal(t, "spoken chunk 0\nspoken chunk 1\nspoken chunk 2", got)
	for _, chunk := range runner.outputs {
		assert.NoFileExists(t, chunk)
	}
}

func TestAITranscribeChunkError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audio.mp3")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0644))

	ai := NewAIWithClients(nil, &fakeTranscriber{err: errors.New("boom")}, nil, "gpt-4o", WhisperLimit, 0, nullLogger())

	_, err := ai.Transcribe(context.Background(), path, nil)
	assert.ErrorIs(t, err, ErrProvider)
	assert.Contains(t, err.Error(), "chunk 1")
}

func TestValidateModel(t *testing.T) {
	assert.NoError(t, ValidateModel(ProviderOpenAI, "gpt-4o"))
	assert.NoError(t, ValidateModel(ProviderGemini, "gemini-2.5-pro"))
	assert.Error(t, ValidateModel(ProviderOpenAI, "gemini-2.5-pro"))
	assert.Error(t, ValidateModel(ProviderGemini, "gpt-4o"))
	assert.Error(t, ValidateModel("anthropic", "gpt-4o"))
}

func TestDefaultModel(t *testing.T) {
	assert.Equal(t, "gpt-4o-mini", DefaultModel(ProviderOpenAI))
	assert.Equal(t, "gemini-2.5-flash", DefaultModel(ProviderGemini))
	assert.Equal(t, "gpt-4o-mini", DefaultModel("unknown"))
}
