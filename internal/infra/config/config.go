// Package config provides application-wide configuration loaded from env vars.
// All fields except GEMINI_API_KEY have safe defaults; the prompt wording and
// fallback batch can be overridden with a YAML catalog (PROMPTS_FILE).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration for the journal prompt service.
type Config struct {
	// HTTP
	Host string // HOST — default: "0.0.0.0"
	Port int    // PORT — default: 3001

	// LLM
	LLMProvider     string // LLM_PROVIDER — default: "gemini"
	GeminiAPIKey    string // GEMINI_API_KEY — required for the gemini provider
	GeminiModel     string // GEMINI_MODEL — default: "gemini-2.5-flash"
	GeminiBaseURL   string // GEMINI_BASE_URL — default: SDK endpoint
	OllamaBaseURL   string // OLLAMA_BASE_URL — default: "http://localhost:11434"
	OllamaChatModel string // OLLAMA_CHAT_MODEL — default: "llama3.2:3b"

	// Pipeline
	GenerationTimeout   time.Duration // GENERATION_TIMEOUT — default: 10s
	SimilarityThreshold float64       // SIMILARITY_THRESHOLD — default: 0.7
	MaxRetries          int           // MAX_RETRIES — default: 3
	Temperature         float32       // LLM_TEMPERATURE — default: 0 (provider default)
	PromptsFile         string        // PROMPTS_FILE — optional YAML catalog

	// Observability
	LogMode      string // LOG_MODE — "dev" | "prod", default: "prod"
	OTelEnabled  bool   // OTEL_ENABLED — default: false
	OTelEndpoint string // OTEL_EXPORTER_OTLP_ENDPOINT — empty means stdout exporter
}

const (
	envKeyHost                = "HOST"
	envKeyPort                = "PORT"
	envKeyLLMProvider         = "LLM_PROVIDER"
	envKeyGeminiAPIKey        = "GEMINI_API_KEY"
	envKeyGeminiModel         = "GEMINI_MODEL"
	envKeyGeminiBaseURL       = "GEMINI_BASE_URL"
	envKeyOllamaBaseURL       = "OLLAMA_BASE_URL"
	envKeyOllamaChatModel     = "OLLAMA_CHAT_MODEL"
	envKeyGenerationTimeout   = "GENERATION_TIMEOUT"
	envKeySimilarityThreshold = "SIMILARITY_THRESHOLD"
	envKeyMaxRetries          = "MAX_RETRIES"
	envKeyTemperature         = "LLM_TEMPERATURE"
	envKeyPromptsFile         = "PROMPTS_FILE"
	envKeyLogMode             = "LOG_MODE"
	envKeyOTelEnabled         = "OTEL_ENABLED"
	envKeyOTelEndpoint        = "OTEL_EXPORTER_OTLP_ENDPOINT"
)

// MaxRetriesLimit caps MAX_RETRIES; each retry can add a full GENERATION_TIMEOUT
// to a request.
const MaxRetriesLimit = 10

// ErrMissingAPIKey is returned by Validate when the gemini provider has no key.
var ErrMissingAPIKey = errors.New("config: GEMINI_API_KEY is required when LLM_PROVIDER=gemini")

// Load reads configuration from environment variables, applying defaults for missing values.
// Malformed numeric or duration values fall back to their defaults.
func Load() Config {
	return Config{
		Host: envOr(envKeyHost, "0.0.0.0"),
		Port: envInt(envKeyPort, 3001),

		LLMProvider:     strings.ToLower(envOr(envKeyLLMProvider, "gemini")),
		GeminiAPIKey:    os.Getenv(envKeyGeminiAPIKey),
		GeminiModel:     envOr(envKeyGeminiModel, "gemini-2.5-flash"),
		GeminiBaseURL:   os.Getenv(envKeyGeminiBaseURL),
		OllamaBaseURL:   envOr(envKeyOllamaBaseURL, "http://localhost:11434"),
		OllamaChatModel: envOr(envKeyOllamaChatModel, "llama3.2:3b"),

		GenerationTimeout:   envDuration(envKeyGenerationTimeout, 10*time.Second),
		SimilarityThreshold: envFloat(envKeySimilarityThreshold, 0.7),
		MaxRetries:          envInt(envKeyMaxRetries, 3),
		Temperature:         float32(envFloat(envKeyTemperature, 0)),
		PromptsFile:         os.Getenv(envKeyPromptsFile),

		LogMode:      envOr(envKeyLogMode, "prod"),
		OTelEnabled:  envBool(envKeyOTelEnabled),
		OTelEndpoint: os.Getenv(envKeyOTelEndpoint),
	}
}

// Validate reports configuration that would keep the service from generating prompts.
func (c Config) Validate() error {
	switch c.LLMProvider {
	case "gemini":
		if c.GeminiAPIKey == "" {
			return ErrMissingAPIKey
		}
	case "ollama":
		if c.OllamaBaseURL == "" {
			return fmt.Errorf("config: %s must not be empty", envKeyOllamaBaseURL)
		}
	default:
		return fmt.Errorf("config: unknown %s %q (want gemini or ollama)", envKeyLLMProvider, c.LLMProvider)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: invalid %s %d", envKeyPort, c.Port)
	}
	if c.GenerationTimeout <= 0 {
		return fmt.Errorf("config: %s must be positive, got %s", envKeyGenerationTimeout, c.GenerationTimeout)
	}
	if c.MaxRetries > MaxRetriesLimit {
		return fmt.Errorf("config: %s must be at most %d, got %d", envKeyMaxRetries, MaxRetriesLimit, c.MaxRetries)
	}
	if c.SimilarityThreshold <= 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("config: %s must be in (0,1], got %v", envKeySimilarityThreshold, c.SimilarityThreshold)
	}
	return nil
}

// envOr returns the value of the environment variable key, or fallback if not set.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(key)), 64)
	if err != nil {
		return fallback
	}
	return f
}

func envDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return d
}

func envBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
