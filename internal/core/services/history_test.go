package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmayank-24/MarketForgeAI/internal/adapters/driven/storage/memory"
	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
)

func sampleKit() *domain.LaunchKit {
	return AssembleLaunchKit(domain.StageOutputs{
		MarketAnalysis: sampleMarketAnalysis,
		ProductCopy:    sampleProductCopy,
		AdCopy:         sampleAdCopy,
		SocialPosts:    fivePosts,
	}, BuildSchedule(fivePosts, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestHistoryService_SaveGetListDelete(t *testing.T) {
	svc := NewHistoryService(memory.NewLaunchKitStore())
	svc.now = func() time.Time { return time.Date(2025, 5, 5, 9, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	record, err := svc.Save(ctx, "  "+testIdea+" ", sampleKit())
	require.NoError(t, err)
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, testIdea, record.Idea)
	assert.Equal(t, time.Date(2025, 5, 5, 9, 0, 0, 0, time.UTC), record.CreatedAt)

	got, err := svc.Get(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, sampleKit().SocialPosts, got.Kit.SocialPosts)

	list, err := svc.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, record.ID, list[0].ID)

	require.NoError(t, svc.Delete(ctx, record.ID))
	_, err = svc.Get(ctx, record.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHistoryService_Validation(t *testing.T) {
	svc := NewHistoryService(memory.NewLaunchKitStore())
	ctx := context.Background()

	_, err := svc.Save(ctx, "", sampleKit())
	assert.ErrorIs(t, err, domain.ErrEmptyIdea)

	_, err = svc.Save(ctx, testIdea, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Get(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.ErrorIs(t, svc.Delete(ctx, ""), domain.ErrInvalidInput)
}

func TestHistoryService_NoStore(t *testing.T) {
	svc := NewHistoryService(nil)
	ctx := context.Background()

	_, err := svc.Save(ctx, testIdea, sampleKit())
	assert.ErrorIs(t, err, ErrHistoryUnavailable)
	_, err = svc.List(ctx, 0)
	assert.ErrorIs(t, err, ErrHistoryUnavailable)
	_, err = svc.Get(ctx, "x")
	assert.ErrorIs(t, err, ErrHistoryUnavailable)
	assert.ErrorIs(t, svc.Delete(ctx, "x"), ErrHistoryUnavailable)
}
