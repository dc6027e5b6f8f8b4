package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func embeddingsServer(t *testing.T, vectorSize int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/embeddings" {
			t.Errorf("path = %q, want /v1/embeddings", r.URL.Path)
		}
		var req embeddingsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		resp := embeddingsResponse{Data: make([]embeddingData, len(req.Input))}
		for i := range resp.Data {
			resp.Data[i].Embedding = make([]float64, vectorSize)
			resp.Data[i].Embedding[0] = float64(i) + 0.5
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestEmbedTexts(t *testing.T) {
	server := embeddingsServer(t, 4)
	defer server.Close()

	c := NewEmbeddingsClient(server.URL, "test-key", "embed-model", 4)
	vectors, err := c.EmbedTexts(context.Background(), []string{"first", "second"})
	if err != nil {
		t.Fatalf("EmbedTexts() error: %v", err)
	}
	if len(vectors) != 2 {
		t.Fatalf("got %d vectors, want 2", len(vectors))
	}
	for i, vec := range vectors {
		if len(vec) != 4 {
			t.Errorf("vector %d has size %d, want 4", i, len(vec))
		}
	}
	if vectors[1][0] != 1.5 {
		t.Errorf("vectors[1][0] = %v, want 1.5", vectors[1][0])
	}
}

func TestEmbedTexts_EmptyInput(t *testing.T) {
	c := NewEmbeddingsClient("http://localhost:0", "test-key", "embed-model", 4)
	if _, err := c.EmbedTexts(context.Background(), nil); err == nil {
		t.Error("EmbedTexts() succeeded on empty input")
	}
}

func TestEmbedTexts_SizeMismatch(t *testing.T) {
	server := embeddingsServer(t, 4)
	defer server.Close()

	// Client expects 768-dim vectors but the server produces 4.
	c := NewEmbeddingsClient(server.URL, "test-key", "embed-model", 768)
	if _, err := c.EmbedTexts(context.Background(), []string{"text"}); err == nil {
		t.Error("EmbedTexts() accepted wrong-size vectors")
	}
}

func TestEmbedTexts_CountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(embeddingsResponse{
			Data: []embeddingData{{Embedding: []float64{1, 2, 3, 4}}},
		})
	}))
	defer server.Close()

	c := NewEmbeddingsClient(server.URL, "test-key", "embed-model", 4)
	if _, err := c.EmbedTexts(context.Background(), []string{"a", "b"}); err == nil {
		t.Error("EmbedTexts() accepted wrong embedding count")
	}
}

func TestEmbedTexts_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := NewEmbeddingsClient(server.URL, "test-key", "embed-model", 4)
	if _, err := c.EmbedTexts(context.Background(), []string{"text"}); err == nil {
		t.Error("EmbedTexts() succeeded on 429")
	}
}
