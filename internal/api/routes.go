// Route registration and go-chi router setup.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/matiasleandrokruk/journalprompts/internal/api/handlers"
	apmiddleware "github.com/matiasleandrokruk/journalprompts/internal/api/middleware"
)

// Deps are the services the router dispatches to. MCP is optional.
type Deps struct {
	Prompts handlers.PromptGenerator
	Stats   handlers.StatsReader
	MCP     http.Handler
	Logger  *zap.Logger
}

// NewRouter creates and configures a new chi router with all routes.
func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apmiddleware.AccessLog(deps.Logger))
	r.Use(middleware.Recoverer)
	r.Use(apmiddleware.CORS())

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.NotFound)

	r.Get("/", handlers.Index)
	r.Get("/health", handlers.Health)
	r.Get("/prompts", handlers.NewPromptsHandler(deps.Prompts).GetPrompts)
	if deps.Stats != nil {
		r.Get("/stats", handlers.NewStatsHandler(deps.Stats).GetStats)
	}
	if deps.MCP != nil {
		r.Handle("/mcp", deps.MCP)
	}

	return r
}
