// Package llm — LLM provider router.
// Router selects the LLMProvider named by configuration (LLM_PROVIDER).
package llm

import (
	"context"
	"fmt"
	"sort"
)

const (
	// ProviderGemini is the registry key for the Google Gemini adapter.
	ProviderGemini = "gemini"
	// ProviderOllama is the registry key for the local Ollama adapter.
	ProviderOllama = "ollama"
)

// Router selects a LLMProvider for each request.
type Router struct {
	providers       map[string]LLMProvider
	defaultProvider string
}

// NewRouter creates a Router with an initial set of providers and a default key.
func NewRouter(providers map[string]LLMProvider, defaultProvider string) *Router {
	ps := make(map[string]LLMProvider, len(providers))
	for k, v := range providers {
		ps[k] = v
	}
	return &Router{providers: ps, defaultProvider: defaultProvider}
}

// Register adds (or replaces) a provider under the given key.
func (r *Router) Register(key string, p LLMProvider) {
	r.providers[key] = p
}

// Route returns the provider for the current request.
// Returns an error if the default provider is not registered.
func (r *Router) Route(_ context.Context) (LLMProvider, error) {
	p, ok := r.providers[r.defaultProvider]
	if !ok {
		return nil, fmt.Errorf("llm router: provider %q not registered (available: %v)", r.defaultProvider, r.keys())
	}
	return p, nil
}

// ChatCompletion routes the call to the selected provider, so a Router can be
// handed to anything that expects a single LLMProvider.
func (r *Router) ChatCompletion(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	p, err := r.Route(ctx)
	if err != nil {
		return nil, err
	}
	return p.ChatCompletion(ctx, req)
}

// ModelInfo reports the selected provider's metadata, or an empty ModelMeta.
func (r *Router) ModelInfo() ModelMeta {
	p, ok := r.providers[r.defaultProvider]
	if !ok {
		return ModelMeta{Provider: r.defaultProvider}
	}
	return p.ModelInfo()
}

// HealthCheck checks the selected provider.
func (r *Router) HealthCheck(ctx context.Context) error {
	p, err := r.Route(ctx)
	if err != nil {
		return err
	}
	return p.HealthCheck(ctx)
}

// keys returns the registered provider names (for error messages).
func (r *Router) keys() []string {
	out := make([]string, 0, len(r.providers))
	for k := range r.providers {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
