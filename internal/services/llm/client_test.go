package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCompleteReturnsContent(t *testing.T) {
	var gotModel string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		gotModel, _ = req["model"].(string)
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Fatalf("unexpected auth header %q", auth)
		}
		payload := map[string]any{
			"choices": []any{
				map[string]any{"message": map[string]any{"content": "  A rich, savory broth.  "}},
			},
		}
		_ = json.NewEncoder(w).Encode(payload)
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
	text, err := client.Complete(context.Background(), "demo-model", "system", "describe ramen")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if text != "A rich, savory broth." {
		t.Fatalf("unexpected content %q", text)
	}
	if gotModel != "demo-model" {
		t.Fatalf("model not forwarded, got %q", gotModel)
	}
}

func TestCompleteToleratesDeltaSchema(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]any{
			"choices": []any{
				map[string]any{"delta": map[string]any{"content": "streamed text"}},
			},
		}
		_ = json.NewEncoder(w).Encode(payload)
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "k", BaseURL: server.URL})
	text, err := client.Complete(context.Background(), "m", "", "prompt")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if text != "streamed text" {
		t.Fatalf("unexpected content %q", text)
	}
}

func TestCompleteHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("quota exceeded"))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "k", BaseURL: server.URL})
	_, err := client.Complete(context.Background(), "m", "", "prompt")
	if err == nil {
		t.Fatal("expected http failure")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Fatalf("expected status code in error, got %v", err)
	}
}

func TestCompleteAPIErrorPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "model overloaded"},
		})
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "k", BaseURL: server.URL})
	_, err := client.Complete(context.Background(), "m", "", "prompt")
	if err == nil || !strings.Contains(err.Error(), "model overloaded") {
		t.Fatalf("expected api error surfaced, got %v", err)
	}
}

func TestCompleteEmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "k", BaseURL: server.URL})
	_, err := client.Complete(context.Background(), "m", "", "prompt")
	if err == nil || !strings.Contains(err.Error(), "empty content") {
		t.Fatalf("expected empty content error, got %v", err)
	}
}

func TestCompleteContractChecks(t *testing.T) {
	client := NewClient(Config{APIKey: "k"})
	if _, err := client.Complete(context.Background(), "", "", "prompt"); err == nil {
		t.Fatal("missing model must fail")
	}
	if _, err := client.Complete(context.Background(), "m", "", ""); err == nil {
		t.Fatal("missing prompt must fail")
	}
	keyless := NewClient(Config{})
	if _, err := keyless.Complete(context.Background(), "m", "", "prompt"); err == nil {
		t.Fatal("missing api key must fail")
	}
}
