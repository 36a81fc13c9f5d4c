// HTTP handler for GET /prompts.
package handlers

import (
	"context"
	"net/http"

	"github.com/matiasleandrokruk/journalprompts/internal/domain/journal"
)

// PromptGenerator is the contract PromptsHandler needs from the pipeline.
// *journal.Pipeline satisfies it.
type PromptGenerator interface {
	Generate(ctx context.Context) journal.Result
}

// PromptsHandler serves a batch of journal prompts as plain text.
type PromptsHandler struct {
	generator PromptGenerator
}

// NewPromptsHandler creates a new PromptsHandler instance.
func NewPromptsHandler(generator PromptGenerator) *PromptsHandler {
	return &PromptsHandler{generator: generator}
}

// GetPrompts writes three newline-separated prompts. A fallback batch is
// still written, with status 500.
func (h *PromptsHandler) GetPrompts(w http.ResponseWriter, r *http.Request) {
	res := h.generator.Generate(r.Context())

	status := http.StatusOK
	if res.Fallback {
		status = http.StatusInternalServerError
	}
	w.Header().Set(headerContentType, mimeText)
	w.WriteHeader(status)
	_, _ = w.Write([]byte(res.Batch.String()))
}
