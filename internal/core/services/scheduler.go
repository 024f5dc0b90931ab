package services

import (
	"fmt"
	"time"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
	"github.com/rmayank-24/MarketForgeAI/internal/core/ports/driving"
)

// Ensure Scheduler implements the interface.
var _ driving.ScheduleService = (*Scheduler)(nil)

// postingTimeLayout is the HH:MM layout of schedule times.
const postingTimeLayout = "15:04"

// Scheduler maps social posts onto consecutive days at one fixed posting
// time. It is deterministic: identical posts and start date always yield
// identical items.
type Scheduler struct {
	postingTime string
	hour        int
	minute      int
	now         func() time.Time
}

// NewScheduler creates a scheduler posting at postingTime (HH:MM).
// An empty postingTime uses domain.DefaultPostingTime.
func NewScheduler(postingTime string) (*Scheduler, error) {
	if postingTime == "" {
		postingTime = domain.DefaultPostingTime
	}
	t, err := time.Parse(postingTimeLayout, postingTime)
	if err != nil {
		return nil, fmt.Errorf("posting time %q must be HH:MM: %w", postingTime, domain.ErrInvalidInput)
	}
	return &Scheduler{
		postingTime: t.Format(postingTimeLayout),
		hour:        t.Hour(),
		minute:      t.Minute(),
		now:         time.Now,
	}, nil
}

// DefaultStart returns the next calendar day in the local time zone.
func (s *Scheduler) DefaultStart() time.Time {
	now := s.now()
	y, m, d := now.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
}

// Build assigns posts[i] to "Day i+1" on start plus i days. It panics when
// len(posts) != domain.PostCount; the pipeline guarantees that count, so a
// mismatch is a programming error.
func (s *Scheduler) Build(posts []string, start time.Time) []domain.ScheduleItem {
	if len(posts) != domain.PostCount {
		panic(fmt.Sprintf("services: schedule needs %d posts, got %d", domain.PostCount, len(posts)))
	}

	y, m, d := start.Date()
	items := make([]domain.ScheduleItem, len(posts))
	for i, post := range posts {
		items[i] = domain.ScheduleItem{
			Day:     fmt.Sprintf("Day %d", i+1),
			Time:    s.postingTime,
			Content: post,
			Date:    time.Date(y, m, d+i, s.hour, s.minute, 0, 0, start.Location()),
		}
	}
	return items
}

// Redate moves a stored schedule to consecutive days from start. Each item
// keeps its own posting time; items without a valid HH:MM time get the
// scheduler's. It panics under the same count rule as Build.
func (s *Scheduler) Redate(stored []domain.ScheduleItem, start time.Time) []domain.ScheduleItem {
	if len(stored) != domain.PostCount {
		panic(fmt.Sprintf("services: schedule needs %d items, got %d", domain.PostCount, len(stored)))
	}

	y, m, d := start.Date()
	items := make([]domain.ScheduleItem, len(stored))
	for i, item := range stored {
		hour, minute := s.hour, s.minute
		if t, err := time.Parse(postingTimeLayout, item.Time); err == nil {
			hour, minute = t.Hour(), t.Minute()
		} else {
			item.Time = s.postingTime
		}
		if item.Day == "" {
			item.Day = fmt.Sprintf("Day %d", i+1)
		}
		item.Date = time.Date(y, m, d+i, hour, minute, 0, 0, start.Location())
		items[i] = item
	}
	return items
}

// mustScheduler is NewScheduler for compile-time constant posting times.
func mustScheduler(postingTime string) *Scheduler {
	s, err := NewScheduler(postingTime)
	if err != nil {
		panic(err)
	}
	return s
}

var defaultScheduler = mustScheduler(domain.DefaultPostingTime)

// BuildSchedule maps posts onto consecutive days from start at the
// default posting time.
func BuildSchedule(posts []string, start time.Time) []domain.ScheduleItem {
	return defaultScheduler.Build(posts, start)
}
