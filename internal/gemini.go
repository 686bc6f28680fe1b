package internal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"
)

// GeminiClient generates text with the Gemini API
type GeminiClient struct {
	apiKey string

	once    sync.Once
	client  *genai.Client
	initErr error
}

// NewGeminiClient creates a Gemini client authenticated with apiKey. The
// underlying SDK client is built on first use.
func NewGeminiClient(apiKey string) *GeminiClient {
	return &GeminiClient{apiKey: apiKey}
}

func (g *GeminiClient) ensureClient(ctx context.Context) error {
	g.once.Do(func() {
		g.client, g.initErr = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  g.apiKey,
			Backend: genai.BackendGeminiAPI,
		})
	})
	if g.initErr != nil {
		return fmt.Errorf("creating Gemini client: %w", g.initErr)
	}
	return nil
}

// Generate sends prompt to model and concatenates the text parts of the first candidate
func (g *GeminiClient) Generate(ctx context.Context, model, prompt string) (string, error) {
	if err := g.ensureClient(ctx); err != nil {
		return "", err
	}

	result, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) && (apiErr.Code == 401 || apiErr.Code == 403) {
			return "", fmt.Errorf("%w: %w", ErrUnauthorized, err)
		}
		return "", err
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", errors.New("empty response from Gemini")
	}

	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return sb.String(), nil
}
