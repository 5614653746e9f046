package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aguiarsc/numen/internal"
)

func ollamaServer(t *testing.T, handler http.HandlerFunc) *ollama {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return newOllama(internal.OllamaConfig{BaseURL: srv.URL, Model: "test-model"}, 0.5)
}

func TestOllama_Available(t *testing.T) {
	p := ollamaServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	if !p.Available(context.Background()) {
		t.Error("expected available")
	}
}

func TestOllama_UnavailableWhenNotListening(t *testing.T) {
	p := newOllama(internal.OllamaConfig{BaseURL: "http://127.0.0.1:1"}, 0)
	if p.Available(context.Background()) {
		t.Error("expected unavailable")
	}
}

func TestOllama_Generate(t *testing.T) {
	p := ollamaServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			http.NotFound(w, r)
			return
		}
		var req ollamaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != "test-model" || req.Stream {
			t.Errorf("request = %+v", req)
		}
		json.NewEncoder(w).Encode(ollamaResponse{Response: "generated text"})
	})
	out, err := p.Generate(context.Background(), "a prompt")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "generated text" {
		t.Errorf("out = %q", out)
	}
}

func TestOllama_GenerateErrorStatus(t *testing.T) {
	p := ollamaServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(ollamaResponse{Error: "model not found"})
	})
	if _, err := p.Generate(context.Background(), "a prompt"); err == nil {
		t.Error("expected error on 500 response")
	}
}
