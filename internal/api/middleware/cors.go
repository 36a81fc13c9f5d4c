package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows any origin to issue read requests, plus the MCP POST.
func CORS() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"Mcp-Session-Id"},
		MaxAge:         600,
	}).Handler
}
