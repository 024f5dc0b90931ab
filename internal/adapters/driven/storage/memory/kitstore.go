package memory

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
	"github.com/rmayank-24/MarketForgeAI/internal/core/ports/driven"
)

// Ensure LaunchKitStore implements the interface.
var _ driven.LaunchKitStore = (*LaunchKitStore)(nil)

// LaunchKitStore is an in-memory implementation of driven.LaunchKitStore.
type LaunchKitStore struct {
	mu      sync.RWMutex
	records map[string]domain.KitRecord
}

// NewLaunchKitStore creates a new in-memory launch kit store.
func NewLaunchKitStore() *LaunchKitStore {
	return &LaunchKitStore{
		records: make(map[string]domain.KitRecord),
	}
}

// Save stores or replaces a record, assigning an ID when empty.
func (s *LaunchKitStore) Save(_ context.Context, record *domain.KitRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.ID] = cloneRecord(*record)
	return nil
}

// Get retrieves a record by ID.
func (s *LaunchKitStore) Get(_ context.Context, id string) (*domain.KitRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := cloneRecord(record)
	return &out, nil
}

// List returns summaries, newest first.
func (s *LaunchKitStore) List(_ context.Context, limit int) ([]domain.KitSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]domain.KitSummary, 0, len(s.records))
	for _, r := range s.records {
		summaries = append(summaries, r.Summary())
	}
	sort.Slice(summaries, func(i, j int) bool {
		if !summaries[i].CreatedAt.Equal(summaries[j].CreatedAt) {
			return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
		}
		return summaries[i].ID < summaries[j].ID
	})

	if limit > 0 && limit < len(summaries) {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

// Delete removes a record.
func (s *LaunchKitStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.records, id)
	return nil
}

func cloneRecord(r domain.KitRecord) domain.KitRecord {
	r.Kit.SocialPosts = slices.Clone(r.Kit.SocialPosts)
	r.Kit.Schedule = slices.Clone(r.Kit.Schedule)
	return r
}
