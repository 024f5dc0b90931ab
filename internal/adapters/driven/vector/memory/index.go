// Package memory provides a per-request, in-memory vector index using
// exact cosine similarity.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
	"github.com/rmayank-24/MarketForgeAI/internal/core/ports/driven"
)

// Ensure Index implements the VectorIndex interface.
var _ driven.VectorIndex = (*Index)(nil)

type entry struct {
	passage domain.Passage
	vector  []float32
	norm    float64
}

// Index is an exact nearest-neighbour index. It is safe for concurrent use.
type Index struct {
	mu      sync.RWMutex
	entries []entry
	dims    int
	closed  bool
}

// New creates an empty index. Dimensions are fixed by the first vector added.
func New() *Index {
	return &Index{}
}

// Factory returns a VectorIndexFactory producing fresh indexes.
func Factory() driven.VectorIndexFactory {
	return func() driven.VectorIndex { return New() }
}

// Add stores the embedding for a passage.
func (i *Index) Add(ctx context.Context, passage domain.Passage, embedding []float32) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(embedding) == 0 {
		return fmt.Errorf("empty embedding: %w", domain.ErrInvalidInput)
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		return domain.ErrIndexUnavailable
	}
	if i.dims == 0 {
		i.dims = len(embedding)
	}
	if len(embedding) != i.dims {
		return fmt.Errorf("embedding has %d dimensions, index has %d: %w",
			len(embedding), i.dims, domain.ErrInvalidInput)
	}

	vec := make([]float32, len(embedding))
	copy(vec, embedding)
	i.entries = append(i.entries, entry{passage: passage, vector: vec, norm: norm(vec)})
	return nil
}

// Search returns up to k passages most similar to query, best first.
// Equal similarities are ordered by passage offset.
func (i *Index) Search(ctx context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	if i.closed {
		return nil, domain.ErrIndexUnavailable
	}
	if k <= 0 || len(i.entries) == 0 {
		return nil, nil
	}
	if len(query) != i.dims {
		return nil, fmt.Errorf("query has %d dimensions, index has %d: %w",
			len(query), i.dims, domain.ErrInvalidInput)
	}

	qnorm := norm(query)
	hits := make([]driven.VectorHit, len(i.entries))
	for idx, e := range i.entries {
		hits[idx] = driven.VectorHit{Passage: e.passage, Similarity: cosine(query, qnorm, e.vector, e.norm)}
	}

	sort.SliceStable(hits, func(a, b int) bool {
		if hits[a].Similarity != hits[b].Similarity {
			return hits[a].Similarity > hits[b].Similarity
		}
		return hits[a].Passage.Offset < hits[b].Passage.Offset
	})

	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

// Len returns the number of stored passages.
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.entries)
}

// Close releases stored vectors.
func (i *Index) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.entries = nil
	i.closed = true
	return nil
}

func norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// cosine returns 0 for zero vectors.
func cosine(a []float32, anorm float64, b []float32, bnorm float64) float64 {
	if anorm == 0 || bnorm == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot / (anorm * bnorm)
}
