package handlers

import (
	"net/http"

	"github.com/matiasleandrokruk/journalprompts/internal/domain/journal"
)

// StatsReader exposes outcome counters. *journal.Stats satisfies it.
type StatsReader interface {
	Snapshot() journal.StatsSnapshot
}

// StatsHandler serves GET /stats.
type StatsHandler struct {
	stats StatsReader
}

// NewStatsHandler creates a new StatsHandler instance.
func NewStatsHandler(stats StatsReader) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// GetStats writes the current counters as JSON.
func (h *StatsHandler) GetStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.stats.Snapshot())
}
