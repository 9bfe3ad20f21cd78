package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func embeddingsServer(t *testing.T, dim int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/embeddings" {
			t.Errorf("unexpected path: %v", r.URL.Path)
		}

		var req EmbeddingsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}

		resp := EmbeddingsResponse{Data: make([]EmbeddingData, len(req.Input))}
		for i := range req.Input {
			vec := make([]float64, dim)
			vec[0] = float64(i) + 1
			resp.Data[i] = EmbeddingData{Embedding: vec}
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestEmbeddingsClient_EmbedTexts(t *testing.T) {
	server := embeddingsServer(t, 4)
	defer server.Close()

	client := NewEmbeddingsClient(server.URL, "test-key", "text-embedding-3-small", 4)

	vecs, err := client.EmbedTexts(context.Background(), []string{"first chunk", "second chunk"})
	if err != nil {
		t.Fatalf("EmbedTexts() error = %v", err)
	}
	if len(vecs) != 2 {
		t.Fatalf("got %d vectors, want 2", len(vecs))
	}
	if len(vecs[0]) != 4 {
		t.Errorf("vector size = %d, want 4", len(vecs[0]))
	}
	if vecs[1][0] != 2 {
		t.Errorf("vectors returned out of order")
	}
}

func TestEmbeddingsClient_EmbedTexts_SizeMismatch(t *testing.T) {
	server := embeddingsServer(t, 4)
	defer server.Close()

	client := NewEmbeddingsClient(server.URL, "test-key", "text-embedding-3-small", 1536)

	_, err := client.EmbedTexts(context.Background(), []string{"chunk"})
	if err == nil {
		t.Fatal("EmbedTexts() expected error for dimension mismatch")
	}
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("error %v should wrap ErrDimensionMismatch", err)
	}
}

func TestEmbeddingsClient_EmbedTexts_EmptyInput(t *testing.T) {
	client := NewEmbeddingsClient("http://unused", "test-key", "text-embedding-3-small", 4)

	if _, err := client.EmbedTexts(context.Background(), nil); err == nil {
		t.Fatal("EmbedTexts() expected error for empty input")
	}
}

func TestEmbeddingsClient_EmbedTexts_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewEmbeddingsClient(server.URL, "test-key", "text-embedding-3-small", 4)

	_, err := client.EmbedTexts(context.Background(), []string{"chunk"})
	if err == nil {
		t.Fatal("EmbedTexts() expected error")
	}
	if !errors.Is(err, ErrProvider) {
		t.Errorf("error %v should wrap ErrProvider", err)
	}
}
