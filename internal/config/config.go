package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Settings holds everything the backend reads from the environment. Loaded
// once in main and passed down explicitly.
type Settings struct {
	AppEnv string
	Port   string

	DatabasePath string
	PromptDir    string

	GeminiAPIKey string
	GeminiModel  string

	Temperature     float32
	TopP            float32
	TopK            float32
	MaxOutputTokens int32

	MaxRetries int
	RetryDelay time.Duration
}

// Load reads settings from the environment, applying defaults for everything
// except the Gemini API key, which is required.
func Load() (*Settings, error) {
	apiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	s := &Settings{
		AppEnv:          getEnv("APP_ENV", "development"),
		Port:            getEnv("PORT", "8080"),
		DatabasePath:    getEnv("DATABASE_PATH", "data/database/database.db"),
		PromptDir:       getEnv("PROMPT_DIR", "prompts"),
		GeminiAPIKey:    apiKey,
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		Temperature:     float32(getEnvFloat("GEMINI_TEMPERATURE", 0.7)),
		TopP:            float32(getEnvFloat("GEMINI_TOP_P", 0.8)),
		TopK:            float32(getEnvFloat("GEMINI_TOP_K", 40)),
		MaxOutputTokens: int32(getEnvInt("GEMINI_MAX_TOKENS", 2048)),
		MaxRetries:      getEnvInt("GEMINI_MAX_RETRIES", 3),
		RetryDelay:      time.Duration(getEnvInt("GEMINI_RETRY_DELAY_MS", 1000)) * time.Millisecond,
	}
	return s, nil
}

func getEnv(name, def string) string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	return v
}

func getEnvInt(name string, def int) int {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getEnvFloat(name string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
