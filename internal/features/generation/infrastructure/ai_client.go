package infrastructure

import (
	"context"
	"fmt"
)

// TextGenerator is the generic interface for text-generation backends. The
// application layer depends on this, not on a concrete provider, so tests
// can substitute a stub and the provider can change without touching the
// generation pipeline.
type TextGenerator interface {
	// Generate sends one instruction text and returns the raw response text.
	Generate(ctx context.Context, prompt string) (string, error)

	// Model returns the model identifier recorded alongside results.
	Model() string
}

// SamplingConfig is the fixed sampling configuration used for every call.
// It is static process configuration, never negotiated per request.
type SamplingConfig struct {
	Temperature     float32
	TopP            float32
	TopK            float32
	MaxOutputTokens int32
}

// ErrEmptyResponse is the transport-level error for an API call that
// succeeded but returned no text. It is retried like any other call failure.
var ErrEmptyResponse = fmt.Errorf("generation API returned an empty response")
