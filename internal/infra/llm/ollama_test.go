// Unit tests for OllamaProvider.
// Uses httptest.NewServer to mock the Ollama HTTP API — no real Ollama needed.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// ============================================================================
// ChatCompletion tests
// ============================================================================

func TestOllamaProvider_ChatCompletion_Success(t *testing.T) {
	t.Parallel()

	var got ollamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" || r.Method != http.MethodPost {
			http.Error(w, "unexpected path", http.StatusNotFound)
			return
		}
		json.NewDecoder(r.Body).Decode(&got) //nolint:errcheck
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ollamaChatResponse{ //nolint:errcheck
			Message:         ollamaChatMessage{Role: "assistant", Content: "1. One\n2. Two\n3. Three"},
			DoneReason:      "stop",
			Done:            true,
			PromptEvalCount: 40,
			EvalCount:       25,
		})
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL+"/", "llama3.2:3b")
	resp, err := p.ChatCompletion(context.Background(), ChatRequest{
		Messages: []Message{{Role: RoleUser, Content: "give me prompts"}},
	})
	if err != nil {
		t.Fatalf("ChatCompletion failed: %v", err)
	}
	if resp.Content != "1. One\n2. Two\n3. Three" {
		t.Errorf("unexpected content %q", resp.Content)
	}
	if resp.StopReason != "stop" {
		t.Errorf("expected StopReason 'stop', got %q", resp.StopReason)
	}
	if resp.Tokens != 65 {
		t.Errorf("expected 65 tokens, got %d", resp.Tokens)
	}
	if got.Model != "llama3.2:3b" || got.Stream {
		t.Errorf("unexpected request model=%q stream=%v", got.Model, got.Stream)
	}
	if len(got.Messages) != 1 || got.Messages[0].Content != "give me prompts" {
		t.Errorf("unexpected request messages %+v", got.Messages)
	}
}

func TestOllamaProvider_ChatCompletion_ModelOverride(t *testing.T) {
	t.Parallel()

	var got ollamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got) //nolint:errcheck
		json.NewEncoder(w).Encode(ollamaChatResponse{Message: ollamaChatMessage{Content: "ok"}}) //nolint:errcheck
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3.2:3b")
	if _, err := p.ChatCompletion(context.Background(), ChatRequest{
		Model:    "mistral",
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	}); err != nil {
		t.Fatalf("ChatCompletion failed: %v", err)
	}
	if got.Model != "mistral" {
		t.Errorf("expected model override 'mistral', got %q", got.Model)
	}
}

func TestOllamaProvider_ChatCompletion_ServerError_ReturnsError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3.2:3b")
	_, err := p.ChatCompletion(context.Background(), ChatRequest{
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})
	if err == nil {
		t.Error("expected error for 400 response, got nil")
	}
}

func TestOllamaProvider_ChatCompletion_EmptyContent_ReturnsError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaChatResponse{Message: ollamaChatMessage{Content: "  \n"}}) //nolint:errcheck
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3.2:3b")
	_, err := p.ChatCompletion(context.Background(), ChatRequest{
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})
	if !errors.Is(err, ErrEmptyCompletion) {
		t.Fatalf("expected ErrEmptyCompletion, got %v", err)
	}
}

func TestOllamaProvider_ChatCompletion_MalformedJSON_ReturnsError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json")) //nolint:errcheck
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3.2:3b")
	if _, err := p.ChatCompletion(context.Background(), ChatRequest{
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	}); err == nil {
		t.Error("expected decode error, got nil")
	}
}

// ============================================================================
// HealthCheck tests
// ============================================================================

func TestOllamaProvider_HealthCheck_Healthy(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{"models": []interface{}{}}) //nolint:errcheck
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3.2:3b")
	if err := p.HealthCheck(context.Background()); err != nil {
		t.Errorf("expected healthy, got error: %v", err)
	}
}

func TestOllamaProvider_HealthCheck_Down_ReturnsError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	}))
	srv.Close() // Closed before the health check call.

	p := NewOllamaProvider(srv.URL, "llama3.2:3b")
	if err := p.HealthCheck(context.Background()); err == nil {
		t.Error("expected error when server is down, got nil")
	}
}

// ============================================================================
// ModelInfo test
// ============================================================================

func TestOllamaProvider_ModelInfo_ReturnsMetadata(t *testing.T) {
	t.Parallel()

	p := NewOllamaProvider("http://localhost:11434", "llama3.2:3b")
	meta := p.ModelInfo()
	if meta.ID != "llama3.2:3b" {
		t.Errorf("expected model ID 'llama3.2:3b', got %q", meta.ID)
	}
	if meta.Provider != ProviderOllama {
		t.Errorf("expected provider 'ollama', got %q", meta.Provider)
	}
}

// ============================================================================
// buildChatOptions tests
// ============================================================================

func TestBuildChatOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  ChatRequest
		want map[string]any
	}{
		{name: "temperature", req: ChatRequest{Temperature: 0.9}, want: map[string]any{"temperature": float32(0.9)}},
		{name: "max tokens", req: ChatRequest{MaxTokens: 256}, want: map[string]any{"num_predict": 256}},
		{name: "both zero", req: ChatRequest{}, want: nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := buildChatOptions(tc.req)
			if len(got) != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			for k, v := range tc.want {
				if got[k] != v {
					t.Errorf("%s: expected %v, got %v", k, v, got[k])
				}
			}
		})
	}
}
