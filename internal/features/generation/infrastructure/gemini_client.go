package infrastructure

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"viralcopy/backend/internal/platform/logger"
)

// GeminiClient implements TextGenerator against the Gemini API with a
// bounded-retry policy. Each call is independent; the client holds no
// per-request state.
type GeminiClient struct {
	client   *genai.Client
	model    string
	sampling SamplingConfig

	maxRetries int
	baseDelay  time.Duration
	sleep      func(time.Duration)

	log *logger.Logger
}

// NewGeminiClient creates a Gemini-backed text generator. The API key is
// required; sampling and retry settings come from process configuration.
func NewGeminiClient(apiKey, model string, sampling SamplingConfig, maxRetries int, baseDelay time.Duration, log *logger.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClient{
		client:     client,
		model:      model,
		sampling:   sampling,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		sleep:      time.Sleep,
		log:        log.With("client", "GeminiClient"),
	}, nil
}

func (c *GeminiClient) Model() string {
	return c.model
}

// Generate sends the instruction text under the retry policy and returns the
// raw response text. An empty response body counts as a failed attempt.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	return withRetry(ctx, c.maxRetries, c.baseDelay, c.sleep, c.log, func() (string, error) {
		return c.generateOnce(ctx, prompt)
	})
}

func (c *GeminiClient) generateOnce(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx,
		c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature:     genai.Ptr(c.sampling.Temperature),
			TopP:            genai.Ptr(c.sampling.TopP),
			TopK:            genai.Ptr(c.sampling.TopK),
			MaxOutputTokens: c.sampling.MaxOutputTokens,
		},
	)
	if err != nil {
		return "", fmt.Errorf("gemini call failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
