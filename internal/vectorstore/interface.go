package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks rfp-rag/internal/vectorstore VectorStore

import (
	"context"
	"errors"
	"fmt"
)

// ErrDimensionMismatch is returned when an existing collection was created
// with a different vector dimension than the one configured. This is an
// operator-level configuration error and is never auto-healed.
var ErrDimensionMismatch = errors.New("vector dimension mismatch")

// ProjectNamespace derives the per-project namespace key. All upserts and
// retrievals for a project go through exactly this key; there is no
// cross-namespace query path.
func ProjectNamespace(projectID string) string {
	return fmt.Sprintf("project_%s", projectID)
}

// Point represents a vector point with metadata.
type Point struct {
	ID   string
	Vec  []float32
	Meta map[string]any
}

// SearchResult represents a search result from vector search.
type SearchResult struct {
	PointID string
	Score   float32
	Meta    map[string]any
}

// VectorStore defines the interface for namespaced vector storage operations.
// Each namespace maps to one collection in the backing store.
type VectorStore interface {
	// EnsureCollection ensures a collection exists with the given vector
	// dimension and cosine distance. Idempotent; an existing collection with
	// a different dimension yields ErrDimensionMismatch.
	EnsureCollection(ctx context.Context, collection string, vectorSize int) error

	// Upsert inserts or updates points in the collection. Calls are additive;
	// no content-based deduplication is performed.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Search returns the top-k nearest neighbors for the query vector,
	// ranked by cosine similarity, scoped strictly to the collection.
	Search(ctx context.Context, collection string, query []float32, k int) ([]SearchResult, error)
}
