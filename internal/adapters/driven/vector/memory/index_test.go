package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
)

func passage(offset int) domain.Passage {
	return domain.Passage{Text: "p", Offset: offset}
}

func TestIndex_EmptySearch(t *testing.T) {
	idx := New()
	hits, err := idx.Search(context.Background(), []float32{1, 0}, 4)
	require.NoError(t, err)
	assert.Empty(t, hits)
	assert.Equal(t, 0, idx.Len())
}

func TestIndex_SearchOrdersBySimilarity(t *testing.T) {
	ctx := context.Background()
	idx := New()

	require.NoError(t, idx.Add(ctx, passage(0), []float32{0, 1}))
	require.NoError(t, idx.Add(ctx, passage(10), []float32{1, 0}))
	require.NoError(t, idx.Add(ctx, passage(20), []float32{1, 1}))

	hits, err := idx.Search(ctx, []float32{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, 10, hits[0].Passage.Offset)
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-9)
	assert.Equal(t, 20, hits[1].Passage.Offset)
}

func TestIndex_TiesBrokenByOffset(t *testing.T) {
	ctx := context.Background()
	idx := New()

	// Inserted out of offset order with identical vectors.
	require.NoError(t, idx.Add(ctx, passage(300), []float32{1, 1}))
	require.NoError(t, idx.Add(ctx, passage(100), []float32{1, 1}))
	require.NoError(t, idx.Add(ctx, passage(200), []float32{1, 1}))

	hits, err := idx.Search(ctx, []float32{1, 1}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, []int{100, 200, 300},
		[]int{hits[0].Passage.Offset, hits[1].Passage.Offset, hits[2].Passage.Offset})
}

func TestIndex_DimensionMismatch(t *testing.T) {
	ctx := context.Background()
	idx := New()
	require.NoError(t, idx.Add(ctx, passage(0), []float32{1, 0, 0}))

	err := idx.Add(ctx, passage(1), []float32{1, 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = idx.Search(ctx, []float32{1}, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.ErrorIs(t, idx.Add(ctx, passage(2), nil), domain.ErrInvalidInput)
}

func TestIndex_ZeroVector(t *testing.T) {
	ctx := context.Background()
	idx := New()
	require.NoError(t, idx.Add(ctx, passage(0), []float32{0, 0}))

	hits, err := idx.Search(ctx, []float32{1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Zero(t, hits[0].Similarity)
}

func TestIndex_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	idx := New()
	assert.ErrorIs(t, idx.Add(ctx, passage(0), []float32{1}), context.Canceled)
	_, err := idx.Search(ctx, []float32{1}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIndex_Close(t *testing.T) {
	ctx := context.Background()
	idx := New()
	require.NoError(t, idx.Add(ctx, passage(0), []float32{1}))
	require.NoError(t, idx.Close())

	assert.Equal(t, 0, idx.Len())
	assert.ErrorIs(t, idx.Add(ctx, passage(0), []float32{1}), domain.ErrIndexUnavailable)
}

func TestFactory_ReturnsFreshIndexes(t *testing.T) {
	f := Factory()
	a, b := f(), f()
	require.NoError(t, a.Add(context.Background(), passage(0), []float32{1}))
	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 0, b.Len())
}
