package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
	"github.com/rmayank-24/MarketForgeAI/internal/core/ports/driving"
	"github.com/rmayank-24/MarketForgeAI/internal/logger"
)

// Ensure LaunchKitService implements the interface.
var _ driving.LaunchKitService = (*LaunchKitService)(nil)

// LaunchKitService produces launch kits end to end.
type LaunchKitService struct {
	retriever *Retriever
	research  *WebResearcher
	pipeline  *Pipeline
	scheduler *Scheduler
}

// NewLaunchKitService creates a launch kit service. retriever and research
// may be nil.
func NewLaunchKitService(retriever *Retriever, research *WebResearcher, pipeline *Pipeline, scheduler *Scheduler) *LaunchKitService {
	return &LaunchKitService{
		retriever: retriever,
		research:  research,
		pipeline:  pipeline,
		scheduler: scheduler,
	}
}

// Produce validates the idea, gathers document context and web research,
// runs every stage and derives the schedule. Success is all-or-nothing.
func (s *LaunchKitService) Produce(
	ctx context.Context,
	idea string,
	doc *domain.SourceDocument,
	opts domain.ProduceOptions,
) (*domain.LaunchKit, error) {
	idea, err := domain.NormaliseIdea(idea)
	if err != nil {
		return nil, err
	}

	logger.Section("Launch Kit")
	logger.Debug("Idea: %q", idea)

	refs := s.gather(ctx, idea, doc)
	logger.Debug("Retrieved context: %d bytes, web research: %d bytes", len(refs.Document), len(refs.Web))

	outputs, err := s.pipeline.Run(ctx, idea, refs, opts.OnStage)
	if err != nil {
		return nil, fmt.Errorf("produce launch kit: %w", err)
	}

	start := opts.StartDate
	if start.IsZero() {
		start = s.scheduler.DefaultStart()
	}
	kit := AssembleLaunchKit(outputs, s.scheduler.Build(outputs.SocialPosts, start))

	if opts.OnStage != nil {
		opts.OnStage(domain.StageEvent{Stage: domain.StageDone, Status: domain.StageSucceeded})
	}
	return kit, nil
}

// gather runs document retrieval and web research concurrently. Both
// degrade to empty text on failure.
func (s *LaunchKitService) gather(ctx context.Context, idea string, doc *domain.SourceDocument) References {
	var refs References
	var g errgroup.Group
	if s.retriever != nil {
		g.Go(func() error {
			refs.Document = s.retriever.Retrieve(ctx, idea, doc)
			return nil
		})
	}
	g.Go(func() error {
		refs.Web = s.research.Research(ctx, idea)
		return nil
	})
	_ = g.Wait()
	return refs
}

// BuildSchedule maps posts onto consecutive days from start.
func (s *LaunchKitService) BuildSchedule(posts []string, start time.Time) []domain.ScheduleItem {
	return s.scheduler.Build(posts, start)
}
