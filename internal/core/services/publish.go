package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
	"github.com/rmayank-24/MarketForgeAI/internal/core/ports/driven"
	"github.com/rmayank-24/MarketForgeAI/internal/core/ports/driving"
	"github.com/rmayank-24/MarketForgeAI/internal/logger"
)

// Ensure PublishService implements the interface.
var _ driving.PublishService = (*PublishService)(nil)

// PublishService pushes stored schedules to a calendar.
type PublishService struct {
	history   driving.HistoryService
	publisher driven.CalendarPublisher
	scheduler *Scheduler
}

// NewPublishService creates a publish service. publisher may be nil when
// calendar push is not configured.
func NewPublishService(history driving.HistoryService, publisher driven.CalendarPublisher, scheduler *Scheduler) *PublishService {
	return &PublishService{
		history:   history,
		publisher: publisher,
		scheduler: scheduler,
	}
}

// Publish pushes the kit's schedule. Stored schedules carry no dates, so
// items are dated from start, or from the next calendar day when start is
// zero. Stored posting times are kept; kits saved without a schedule are
// scheduled from their posts at the current posting time.
func (s *PublishService) Publish(ctx context.Context, kitID string, start time.Time) ([]string, error) {
	if s.publisher == nil {
		return nil, domain.ErrCalendarNotConfigured
	}

	record, err := s.history.Get(ctx, kitID)
	if err != nil {
		return nil, fmt.Errorf("publish: %w", err)
	}
	if len(record.Kit.SocialPosts) != domain.PostCount {
		return nil, fmt.Errorf("publish: kit %s has %d posts: %w",
			kitID, len(record.Kit.SocialPosts), domain.ErrInvalidInput)
	}

	if start.IsZero() {
		start = s.scheduler.DefaultStart()
	}
	var items []domain.ScheduleItem
	if len(record.Kit.Schedule) == domain.PostCount {
		items = s.scheduler.Redate(record.Kit.Schedule, start)
	} else {
		items = s.scheduler.Build(record.Kit.SocialPosts, start)
	}

	logger.Section("Calendar Publish")
	logger.Debug("Kit %s: %d events from %s", kitID, len(items), start.Format(time.DateOnly))

	ids, err := s.publisher.Publish(ctx, driven.PublishRequest{Idea: record.Idea, Items: items})
	if err != nil {
		return ids, fmt.Errorf("publish: %w", err)
	}
	return ids, nil
}
