package main

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/matiasleandrokruk/journalprompts/internal/api"
	"github.com/matiasleandrokruk/journalprompts/internal/domain/journal"
	"github.com/matiasleandrokruk/journalprompts/internal/infra/config"
	"github.com/matiasleandrokruk/journalprompts/internal/infra/eventbus"
	"github.com/matiasleandrokruk/journalprompts/internal/infra/llm"
	"github.com/matiasleandrokruk/journalprompts/internal/mcptool"
	"github.com/matiasleandrokruk/journalprompts/internal/version"
)

// app is the wired service graph shared by serve and generate.
type app struct {
	bus         *eventbus.Bus
	stats       *journal.Stats
	instruction string
	pipeline    *journal.Pipeline
	handler     http.Handler
}

func newApp(ctx context.Context, cfg config.Config, log *zap.Logger) (*app, error) {
	catalog, err := config.LoadCatalog(cfg.PromptsFile)
	if err != nil {
		return nil, err
	}

	provider, err := newProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}

	gen := journal.NewGenerator(provider,
		journal.WithInstruction(catalog.Instruction),
		journal.WithTimeout(cfg.GenerationTimeout),
		journal.WithTemperature(cfg.Temperature),
	)

	var fallback journal.Batch
	if len(catalog.Fallback) > 0 {
		fallback = journal.Batch(catalog.Fallback)
	}

	bus := eventbus.New()
	pipe, err := journal.NewPipeline(gen, journal.NewState(), journal.Config{
		Threshold:  cfg.SimilarityThreshold,
		MaxRetries: cfg.MaxRetries,
		Fallback:   fallback,
	}, log, bus)
	if err != nil {
		return nil, fmt.Errorf("prompts file %q: %w", cfg.PromptsFile, err)
	}

	stats := journal.NewStats()
	handler := api.NewRouter(api.Deps{
		Prompts: pipe,
		Stats:   stats,
		MCP:     mcptool.Handler(mcptool.NewServer(pipe, version.Version)),
		Logger:  log,
	})

	return &app{
		bus:         bus,
		stats:       stats,
		instruction: gen.Instruction(),
		pipeline:    pipe,
		handler:     handler,
	}, nil
}

// newProvider registers every provider the configuration can build and routes
// to the one named by LLM_PROVIDER.
func newProvider(ctx context.Context, cfg config.Config) (llm.LLMProvider, error) {
	router := llm.NewRouter(nil, cfg.LLMProvider)
	router.Register(llm.ProviderOllama, llm.NewOllamaProvider(cfg.OllamaBaseURL, cfg.OllamaChatModel))

	if cfg.GeminiAPIKey != "" {
		gemini, err := llm.NewGeminiProvider(ctx, llm.GeminiConfig{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			BaseURL: cfg.GeminiBaseURL,
		})
		if err != nil {
			return nil, err
		}
		router.Register(llm.ProviderGemini, gemini)
	}

	if _, err := router.Route(ctx); err != nil {
		return nil, err
	}
	return router, nil
}
