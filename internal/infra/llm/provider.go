// Package llm — LLMProvider interface.
// Adapters (Gemini, Ollama) implement this interface so the prompt pipeline
// is never coupled to a specific model vendor.
package llm

import (
	"context"
	"errors"
)

// ErrEmptyCompletion is returned by adapters when the model answered with no text.
var ErrEmptyCompletion = errors.New("llm: empty completion")

// LLMProvider is the model-agnostic interface for text generation.
type LLMProvider interface {
	// ChatCompletion performs a non-streaming chat completion.
	ChatCompletion(ctx context.Context, req ChatRequest) (*ChatResponse, error)

	// ModelInfo returns static metadata about the provider/model.
	ModelInfo() ModelMeta

	// HealthCheck returns nil if the provider is reachable and operational.
	HealthCheck(ctx context.Context) error
}
