package google

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
	"github.com/rmayank-24/MarketForgeAI/internal/core/ports/driven"
	"github.com/rmayank-24/MarketForgeAI/internal/logger"
)

// Ensure Publisher implements the interface.
var _ driven.CalendarPublisher = (*Publisher)(nil)

const (
	titlePrefix    = "Social Post: "
	titleIdeaRunes = 30
)

// Publisher creates one calendar event per schedule item.
type Publisher struct {
	service    *calendar.Service
	calendarID string
	timeZone   string
	location   *time.Location
	duration   time.Duration
	limiter    *RateLimiter
	log        *logger.Logger
}

// New creates a publisher authenticated with the stored refresh token.
// Extra client options are appended after the token source.
func New(ctx context.Context, settings domain.CalendarSettings, opts ...option.ClientOption) (*Publisher, error) {
	ts, err := NewTokenSource(ctx, settings)
	if err != nil {
		return nil, err
	}

	clientOpts := append([]option.ClientOption{option.WithTokenSource(ts)}, opts...)
	service, err := calendar.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}

	return newPublisher(service, settings)
}

func newPublisher(service *calendar.Service, settings domain.CalendarSettings) (*Publisher, error) {
	if settings.CalendarID == "" {
		settings.CalendarID = domain.DefaultCalendarID
	}
	if settings.TimeZone == "" {
		settings.TimeZone = domain.DefaultTimeZone
	}
	if settings.EventDuration <= 0 {
		settings.EventDuration = domain.DefaultEventDuration
	}

	loc, err := time.LoadLocation(settings.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("calendar time zone %q: %w", settings.TimeZone, domain.ErrInvalidInput)
	}

	return &Publisher{
		service:    service,
		calendarID: settings.CalendarID,
		timeZone:   settings.TimeZone,
		location:   loc,
		duration:   settings.EventDuration,
		limiter:    NewRateLimiter(DefaultRateLimit),
		log:        logger.New("calendar"),
	}, nil
}

// Publish inserts the events in schedule order. On failure it returns the
// IDs created so far together with the error.
func (p *Publisher) Publish(ctx context.Context, req driven.PublishRequest) ([]string, error) {
	events := make([]*calendar.Event, len(req.Items))
	for i, item := range req.Items {
		event, err := p.buildEvent(req.Idea, item)
		if err != nil {
			return nil, err
		}
		events[i] = event
	}

	ids := make([]string, 0, len(events))
	for i, event := range events {
		if err := p.limiter.Wait(ctx); err != nil {
			return ids, err
		}

		created, err := p.service.Events.Insert(p.calendarID, event).Context(ctx).Do()
		if err != nil {
			if IsRateLimited(err) {
				p.limiter.RecordRateLimitError(retryAfter(err))
			}
			return ids, fmt.Errorf("insert event %d: %w", i+1, wrapError(err))
		}

		p.log.Debug("created event %s for %s", created.Id, req.Items[i].Day)
		ids = append(ids, created.Id)
	}

	return ids, nil
}

// buildEvent places the item at its date and posting time in the
// configured zone.
func (p *Publisher) buildEvent(idea string, item domain.ScheduleItem) (*calendar.Event, error) {
	if item.Date.IsZero() {
		return nil, fmt.Errorf("%s has no date: %w", item.Day, domain.ErrInvalidInput)
	}
	clock, err := time.Parse("15:04", item.Time)
	if err != nil {
		return nil, fmt.Errorf("%s time %q: %w", item.Day, item.Time, domain.ErrInvalidInput)
	}

	y, m, d := item.Date.Date()
	start := time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, p.location)
	end := start.Add(p.duration)

	return &calendar.Event{
		Summary:     EventTitle(idea),
		Description: item.Content,
		Start: &calendar.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: p.timeZone,
		},
		End: &calendar.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: p.timeZone,
		},
	}, nil
}

// EventTitle labels an event with the first 30 characters of the idea.
func EventTitle(idea string) string {
	runes := []rune(idea)
	if len(runes) > titleIdeaRunes {
		runes = runes[:titleIdeaRunes]
	}
	return titlePrefix + string(runes) + "..."
}
