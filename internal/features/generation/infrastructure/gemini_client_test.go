package infrastructure

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"viralcopy/backend/internal/platform/logger"
)

func TestNewGeminiClientRequiresAPIKey(t *testing.T) {
	_, err := NewGeminiClient("", "gemini-2.0-flash", SamplingConfig{}, 3, time.Second, logger.NewNop())
	require.Error(t, err)
}
