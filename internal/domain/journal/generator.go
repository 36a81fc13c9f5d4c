package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/matiasleandrokruk/journalprompts/internal/infra/llm"
)

// DefaultInstruction is the text sent verbatim to the model. It asks for three
// plain-language prompts covering emotional exploration, self-discovery and gratitude.
const DefaultInstruction = "Generate 3 practical and varied journal prompts. " +
	"Each prompt should be inspired by one or more of the following themes: " +
	"exploring feelings and emotions, self-discovery, and gratitude. " +
	"The prompts should be distinct from each other, and you may combine or interpret the themes in creative ways. " +
	"Avoid metaphors, analogies, or poetic language. " +
	"Send only the numbered prompts, each on a new line, and nothing else."

// DefaultTimeout bounds a single generation attempt.
const DefaultTimeout = 10 * time.Second

// Source produces raw model output for one attempt.
type Source interface {
	Generate(ctx context.Context) (string, error)
}

// Generator asks an LLMProvider for a completion of a fixed instruction,
// racing the call against a timeout.
type Generator struct {
	provider    llm.LLMProvider
	instruction string
	timeout     time.Duration
	temperature float32
}

// GeneratorOption customizes a Generator.
type GeneratorOption func(*Generator)

// WithInstruction replaces DefaultInstruction.
func WithInstruction(text string) GeneratorOption {
	return func(g *Generator) {
		if text != "" {
			g.instruction = text
		}
	}
}

// WithTimeout replaces DefaultTimeout. Non-positive values are ignored, so
// every call stays bounded.
func WithTimeout(d time.Duration) GeneratorOption {
	return func(g *Generator) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithTemperature sets the sampling temperature (0 keeps the provider default).
func WithTemperature(t float32) GeneratorOption {
	return func(g *Generator) { g.temperature = t }
}

// NewGenerator creates a Generator over provider.
func NewGenerator(provider llm.LLMProvider, opts ...GeneratorOption) *Generator {
	g := &Generator{
		provider:    provider,
		instruction: DefaultInstruction,
		timeout:     DefaultTimeout,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Instruction returns the text sent to the model.
func (g *Generator) Instruction() string { return g.instruction }

type completion struct {
	text string
	err  error
}

// Generate returns the raw completion text.
// It fails with ErrUpstreamTimeout when the timeout elapses first, and with an
// *UpstreamError for anything the provider reports. The in-flight call is
// cancelled on return, so a late answer is discarded.
func (g *Generator) Generate(ctx context.Context) (string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan completion, 1)
	go func() {
		resp, err := g.provider.ChatCompletion(ctx, llm.ChatRequest{
			Messages:    []llm.Message{{Role: llm.RoleUser, Content: g.instruction}},
			Temperature: g.temperature,
		})
		if err != nil {
			done <- completion{err: err}
			return
		}
		done <- completion{text: resp.Content}
	}()

	timer := time.NewTimer(g.timeout)
	defer timer.Stop()

	select {
	case c := <-done:
		if c.err != nil {
			return "", &UpstreamError{Err: c.err}
		}
		return c.text, nil
	case <-timer.C:
		return "", fmt.Errorf("%w after %s", ErrUpstreamTimeout, g.timeout)
	case <-ctx.Done():
		return "", &UpstreamError{Err: ctx.Err()}
	}
}
