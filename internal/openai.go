package internal

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// openAIChatModels maps config model names to SDK constants
var openAIChatModels = map[string]openai.ChatModel{
	"gpt-4o-mini":  openai.ChatModelGPT4oMini,
	"gpt-4o":       openai.ChatModelGPT4o,
	"o4-mini":      openai.ChatModelO4Mini,
	"gpt-4.1-nano": openai.ChatModelGPT4_1Nano,
}

// OpenAIClient generates summaries with chat completions and transcribes
// audio with Whisper
type OpenAIClient struct {
	client openai.Client
}

// NewOpenAIClient creates a client authenticated with apiKey. Extra options
// such as option.WithBaseURL are applied after the key.
func NewOpenAIClient(apiKey string, opts ...option.RequestOption) *OpenAIClient {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &OpenAIClient{client: openai.NewClient(opts...)}
}

func (c *OpenAIClient) Transcribe(ctx context.Context, audio io.Reader) (string, error) {
	resp, err := c.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		File:  audio,
		Model: openai.AudioModelWhisper1,
	})
	if err != nil {
		return "", unauthorizedIf(err)
	}
	return resp.Text, nil
}

func (c *OpenAIClient) Generate(ctx context.Context, model, prompt string) (string, error) {
	chatModel, ok := openAIChatModels[model]
	if !ok {
		return "", fmt.Errorf("unsupported OpenAI model: %s", model)
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    chatModel,
		Messages: []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
	})
	if err != nil {
		return "", unauthorizedIf(err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("OpenAI returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// unauthorizedIf marks rejected API keys with ErrUnauthorized
func unauthorizedIf(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) && (apiErr.StatusCode == 401 || apiErr.StatusCode == 403) {
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	return err
}
