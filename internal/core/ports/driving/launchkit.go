package driving

import (
	"context"
	"time"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
)

// LaunchKitService produces launch kits from product ideas.
type LaunchKitService interface {
	// Produce runs retrieval and every generation stage, then derives the
	// schedule. It fails with domain.ErrEmptyIdea or a *domain.StageError;
	// partial kits are never returned.
	Produce(ctx context.Context, idea string, doc *domain.SourceDocument, opts domain.ProduceOptions) (*domain.LaunchKit, error)

	// BuildSchedule maps exactly domain.PostCount posts onto consecutive
	// days starting at start.
	BuildSchedule(posts []string, start time.Time) []domain.ScheduleItem
}

// ScheduleService derives posting schedules without running generation.
type ScheduleService interface {
	// DefaultStart returns the first schedule day used when none is given.
	DefaultStart() time.Time

	// Build maps exactly domain.PostCount posts onto consecutive days
	// starting at start.
	Build(posts []string, start time.Time) []domain.ScheduleItem
}
