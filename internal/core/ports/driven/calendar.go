package driven

import (
	"context"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
)

// CalendarPublisher pushes schedule items to an external calendar.
type CalendarPublisher interface {
	// Publish creates one event per schedule item and returns the
	// created event IDs in schedule order.
	Publish(ctx context.Context, req PublishRequest) ([]string, error)
}

// PublishRequest describes the events to create.
type PublishRequest struct {
	// Idea labels the events.
	Idea string

	// Items are the schedule entries. Each must carry a Date.
	Items []domain.ScheduleItem
}
