package handlers

import "net/http"

// ServiceName is reported by the health endpoint.
const ServiceName = "journal-prompt-generator"

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Health reports liveness. It never calls the upstream model.
func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "healthy", Service: ServiceName})
}

type indexResponse struct {
	Message   string            `json:"message"`
	Endpoints map[string]string `json:"endpoints"`
}

// Index describes the service and its endpoints.
func Index(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, indexResponse{
		Message: "Journal Prompt Generator Microservice",
		Endpoints: map[string]string{
			"prompts": "GET /prompts",
			"health":  "GET /health",
			"stats":   "GET /stats",
			"mcp":     "POST /mcp",
		},
	})
}
