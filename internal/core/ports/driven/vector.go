package driven

import (
	"context"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
)

// VectorIndex stores passage embeddings for one request and answers
// nearest-neighbour queries by cosine similarity.
type VectorIndex interface {
	// Add stores the embedding for a passage.
	Add(ctx context.Context, passage domain.Passage, embedding []float32) error

	// Search returns up to k passages most similar to query, best first.
	// Equal scores are ordered by passage offset. An empty index returns
	// an empty result without error.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Len returns the number of stored passages.
	Len() int

	// Close releases resources.
	Close() error
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	Passage    domain.Passage
	Similarity float64
}

// VectorIndexFactory creates an empty per-request index.
type VectorIndexFactory func() VectorIndex
