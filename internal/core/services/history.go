package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
	"github.com/rmayank-24/MarketForgeAI/internal/core/ports/driven"
	"github.com/rmayank-24/MarketForgeAI/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// ErrHistoryUnavailable indicates no launch kit store is configured.
var ErrHistoryUnavailable = errors.New("history store not configured")

// HistoryService manages stored launch kits.
type HistoryService struct {
	store driven.LaunchKitStore
	now   func() time.Time
}

// NewHistoryService creates a history service backed by store.
func NewHistoryService(store driven.LaunchKitStore) *HistoryService {
	return &HistoryService{store: store, now: time.Now}
}

// Save persists kit for idea. The store assigns the record ID.
func (s *HistoryService) Save(ctx context.Context, idea string, kit *domain.LaunchKit) (*domain.KitRecord, error) {
	if s.store == nil {
		return nil, ErrHistoryUnavailable
	}
	if kit == nil {
		return nil, fmt.Errorf("save launch kit: %w", domain.ErrInvalidInput)
	}
	idea, err := domain.NormaliseIdea(idea)
	if err != nil {
		return nil, err
	}

	record := &domain.KitRecord{
		Idea:      idea,
		CreatedAt: s.now().UTC(),
		Kit:       *kit,
	}
	if err := s.store.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("save launch kit: %w", err)
	}
	return record, nil
}

// Get retrieves a stored kit by ID.
func (s *HistoryService) Get(ctx context.Context, id string) (*domain.KitRecord, error) {
	if s.store == nil {
		return nil, ErrHistoryUnavailable
	}
	if id == "" {
		return nil, fmt.Errorf("kit id is required: %w", domain.ErrInvalidInput)
	}
	return s.store.Get(ctx, id)
}

// List returns stored kits, newest first.
func (s *HistoryService) List(ctx context.Context, limit int) ([]domain.KitSummary, error) {
	if s.store == nil {
		return nil, ErrHistoryUnavailable
	}
	return s.store.List(ctx, limit)
}

// Delete removes a stored kit.
func (s *HistoryService) Delete(ctx context.Context, id string) error {
	if s.store == nil {
		return ErrHistoryUnavailable
	}
	if id == "" {
		return fmt.Errorf("kit id is required: %w", domain.ErrInvalidInput)
	}
	return s.store.Delete(ctx, id)
}
