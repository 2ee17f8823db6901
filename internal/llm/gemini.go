package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// geminiClient is a client for the Google Gemini API.
type geminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiClient creates a new Gemini API client. An empty API key yields a
// client whose calls fail with ErrNotConfigured; construction itself never
// requires a credential so the application can boot without one.
func NewGeminiClient(ctx context.Context, apiKey, model string) (TextGenerator, error) {
	if apiKey == "" {
		return unconfiguredClient{}, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &geminiClient{client: client, model: client.GenerativeModel(model)}, nil
}

// GenerateContent sends a prompt to the Gemini model and returns the first
// non-blank text part of the response. One best-effort call, no retry.
func (c *geminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	text, ok := firstText(resp)
	if !ok {
		return "", fmt.Errorf("%w: response contained no text", ErrUpstream)
	}
	return text, nil
}

// Close closes the underlying Gemini client.
func (c *geminiClient) Close() error {
	return c.client.Close()
}

// firstText scans all candidates and their content parts in order and
// returns the first non-blank text part.
func firstText(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil {
		return "", false
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			text, ok := part.(genai.Text)
			if !ok {
				continue
			}
			if strings.TrimSpace(string(text)) != "" {
				return string(text), true
			}
		}
	}
	return "", false
}

type unconfiguredClient struct{}

func (unconfiguredClient) GenerateContent(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}

func (unconfiguredClient) Close() error { return nil }
