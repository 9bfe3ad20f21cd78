package llm

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_llm.go -package=mocks rfp-rag/internal/llm Embedder,Generator

import (
	"context"
	"errors"
)

// ErrProvider is returned when an embedding or generation provider call fails
// (quota, timeout, bad response). It is always wrapped with the underlying cause.
var ErrProvider = errors.New("provider error")

// ErrDimensionMismatch is returned when the provider returns embeddings whose
// dimension differs from the configured one. This is an operator error: the
// configured dimension and the embedding model disagree.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// Message represents a single message in a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatParams holds parameters for chat completion requests.
type ChatParams struct {
	// Model specifies the model to use. If empty, the client's default model is used.
	Model string

	// MaxTokens specifies the maximum number of tokens to generate.
	// If 0, no limit is applied.
	MaxTokens int

	// Temperature controls the randomness of the output.
	Temperature float32
}

// Embedder converts texts into fixed-dimension vectors.
type Embedder interface {
	// EmbedTexts generates embeddings for the given texts, one vector per input.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator produces a completion for an ordered sequence of chat messages.
type Generator interface {
	// ChatWithMessages sends a chat completion request and returns the reply text.
	ChatWithMessages(ctx context.Context, messages []Message, params ChatParams) (string, error)
}
