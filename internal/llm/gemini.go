// Package llm wraps the Gemini client behind a small text-in/text-out
// interface so that parsers and the predictor can be tested with fakes.
package llm

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// TextGenerator produces a free-text model response for a single prompt.
// Implementations make exactly one attempt; callers handle fallback.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Gemini is the concrete TextGenerator backed by the GenAI SDK.
type Gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGemini creates a Gemini text generator. The timeout bounds every
// GenerateText call so a hung model call never blocks the fallback path.
func NewGemini(ctx context.Context, apiKey, model string, timeout time.Duration) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("NewGemini: create genai client: %w", err)
	}

	return &Gemini{
		client:  client,
		model:   model,
		timeout: timeout,
	}, nil
}

// GenerateText sends the prompt to the model and returns its raw text
// response. No retries are performed; a single failed attempt is returned
// to the caller as an error.
func (g *Gemini) GenerateText(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: prompt},
			},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("GenerateText: generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("GenerateText: empty response from model")
	}

	return text, nil
}
