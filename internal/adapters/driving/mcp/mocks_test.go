package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
)

// mockLaunchKitService is a mock implementation of driving.LaunchKitService.
type mockLaunchKitService struct {
	kit *domain.LaunchKit
	err error

	gotIdea  string
	gotDoc   *domain.SourceDocument
	gotOpts  domain.ProduceOptions
	gotStart time.Time
}

func (m *mockLaunchKitService) Produce(
	_ context.Context,
	idea string,
	doc *domain.SourceDocument,
	opts domain.ProduceOptions,
) (*domain.LaunchKit, error) {
	m.gotIdea = idea
	m.gotDoc = doc
	m.gotOpts = opts
	return m.kit, m.err
}

func (m *mockLaunchKitService) BuildSchedule(posts []string, start time.Time) []domain.ScheduleItem {
	m.gotStart = start
	items := make([]domain.ScheduleItem, len(posts))
	for i, p := range posts {
		items[i] = domain.ScheduleItem{
			Day:     fmt.Sprintf("Day %d", i+1),
			Time:    "10:00",
			Content: p,
			Date:    start.AddDate(0, 0, i),
		}
	}
	return items
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	records   map[string]*domain.KitRecord
	summaries []domain.KitSummary
	err       error

	saved    int
	gotLimit int
}

func (m *mockHistoryService) Save(_ context.Context, idea string, kit *domain.LaunchKit) (*domain.KitRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.saved++
	return &domain.KitRecord{ID: fmt.Sprintf("kit-%d", m.saved), Idea: idea, Kit: *kit}, nil
}

func (m *mockHistoryService) Get(_ context.Context, id string) (*domain.KitRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	rec, ok := m.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

func (m *mockHistoryService) List(_ context.Context, limit int) ([]domain.KitSummary, error) {
	m.gotLimit = limit
	return m.summaries, m.err
}

func (m *mockHistoryService) Delete(_ context.Context, _ string) error {
	return m.err
}

func sampleKit() *domain.LaunchKit {
	posts := []string{"p1", "p2", "p3", "p4", "p5"}
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	schedule := make([]domain.ScheduleItem, len(posts))
	for i, p := range posts {
		schedule[i] = domain.ScheduleItem{
			Day: fmt.Sprintf("Day %d", i+1), Time: "10:00", Content: p, Date: start.AddDate(0, 0, i),
		}
	}
	return &domain.LaunchKit{
		MarketAnalysis: "analysis",
		ProductCopy:    "copy",
		AdCopy:         "ad",
		SocialPosts:    posts,
		Schedule:       schedule,
	}
}
