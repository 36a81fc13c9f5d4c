package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/matiasleandrokruk/journalprompts/internal/domain/journal"
	"github.com/matiasleandrokruk/journalprompts/internal/infra/config"
)

func TestRun_Version_PrintsVersion(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{{"--version"}, {"version"}} {
		var out bytes.Buffer
		code := run(args, &out)

		if code != 0 {
			t.Fatalf("%v: expected exit code 0, got %d", args, code)
		}
		if !strings.Contains(out.String(), "journalprompts version") {
			t.Fatalf("%v: expected version output, got %q", args, out.String())
		}
	}
}

func TestRun_Help_PrintsUsage(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	code := run([]string{"--help"}, &out)

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !strings.Contains(out.String(), "Usage:") {
		t.Fatalf("expected help output, got %q", out.String())
	}
	for _, sub := range []string{"serve", "generate", "version"} {
		if !strings.Contains(out.String(), sub) {
			t.Errorf("help should list %q", sub)
		}
	}
}

func TestRun_InvalidFlag_Returns2(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	code := run([]string{"--unknown-flag"}, &out)

	if code != 2 {
		t.Fatalf("expected exit code 2, got %d", code)
	}
}

// fakeOllama answers /api/chat with content, or with status 500 when content is empty.
func fakeOllama(t *testing.T, content string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" || content == "" {
			http.Error(w, "model unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": map[string]string{"role": "assistant", "content": content},
			"done":    true,
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func setOllamaEnv(t *testing.T, baseURL string) {
	t.Helper()
	t.Setenv("LLM_PROVIDER", "ollama")
	t.Setenv("OLLAMA_BASE_URL", baseURL)
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("PROMPTS_FILE", "")
	t.Setenv("GENERATION_TIMEOUT", "2s")
	t.Setenv("MAX_RETRIES", "")
	t.Setenv("SIMILARITY_THRESHOLD", "")
	t.Setenv("LOG_MODE", "prod")
}

func TestRun_Generate_PrintsBatch(t *testing.T) {
	srv := fakeOllama(t, "1. What surprised you today?\n\n2. Who did you help this week?\n3. What would you tell your younger self?\n")
	setOllamaEnv(t, srv.URL)

	var out bytes.Buffer
	code := run([]string{"generate"}, &out)

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d (out %q)", code, out.String())
	}
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != journal.BatchSize {
		t.Fatalf("expected 3 lines, got %q", out.String())
	}
	if lines[0] != "1. What surprised you today?" {
		t.Fatalf("first line = %q", lines[0])
	}
}

func TestRun_Generate_FallbackReturns1(t *testing.T) {
	srv := fakeOllama(t, "")
	setOllamaEnv(t, srv.URL)

	var out bytes.Buffer
	code := run([]string{"generate"}, &out)

	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if out.String() != journal.DefaultFallback.String()+"\n" {
		t.Fatalf("expected fallback batch, got %q", out.String())
	}
}

func TestRun_Generate_CatalogFallback(t *testing.T) {
	srv := fakeOllama(t, "only one line")
	setOllamaEnv(t, srv.URL)

	path := filepath.Join(t.TempDir(), "prompts.yaml")
	catalog := "fallback:\n  - First?\n  - Second?\n  - Third?\n"
	if err := os.WriteFile(path, []byte(catalog), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	t.Setenv("PROMPTS_FILE", path)

	var out bytes.Buffer
	code := run([]string{"generate"}, &out)

	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if out.String() != "First?\nSecond?\nThird?\n" {
		t.Fatalf("expected catalog fallback, got %q", out.String())
	}
}

func TestRun_Serve_MissingAPIKey_Returns1(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "")

	var out bytes.Buffer
	if code := run([]string{"serve"}, &out); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}

func TestNewApp_ServesRoutes(t *testing.T) {
	t.Parallel()

	srv := fakeOllama(t, "A?\nB?\nC?")
	cfg := config.Config{
		LLMProvider:         "ollama",
		OllamaBaseURL:       srv.URL,
		OllamaChatModel:     "llama3.2:3b",
		SimilarityThreshold: 0.7,
		MaxRetries:          3,
	}
	a, err := newApp(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	t.Cleanup(a.bus.Close)

	if a.instruction != journal.DefaultInstruction {
		t.Errorf("instruction = %q, want the default", a.instruction)
	}

	for path, want := range map[string]int{
		"/health":  http.StatusOK,
		"/prompts": http.StatusOK,
		"/stats":   http.StatusOK,
		"/missing": http.StatusNotFound,
	} {
		w := httptest.NewRecorder()
		a.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != want {
			t.Errorf("GET %s = %d, want %d", path, w.Code, want)
		}
	}
}

func TestNewProvider_UnregisteredGemini(t *testing.T) {
	t.Parallel()

	_, err := newProvider(context.Background(), config.Config{LLMProvider: "gemini"})
	if err == nil {
		t.Fatal("expected error when gemini has no API key")
	}
}
