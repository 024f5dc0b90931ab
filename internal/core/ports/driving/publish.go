package driving

import (
	"context"
	"time"
)

// PublishService pushes a stored kit's schedule to an external calendar.
type PublishService interface {
	// Publish creates calendar events for the kit's schedule. A non-zero
	// start re-dates the schedule before pushing.
	Publish(ctx context.Context, kitID string, start time.Time) ([]string, error)
}
