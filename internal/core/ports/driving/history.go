package driving

import (
	"context"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
)

// HistoryService manages previously generated launch kits.
type HistoryService interface {
	// Save persists a kit for the idea and returns the stored record.
	Save(ctx context.Context, idea string, kit *domain.LaunchKit) (*domain.KitRecord, error)

	// Get retrieves a stored kit by ID.
	Get(ctx context.Context, id string) (*domain.KitRecord, error)

	// List returns stored kits, newest first.
	List(ctx context.Context, limit int) ([]domain.KitSummary, error)

	// Delete removes a stored kit.
	Delete(ctx context.Context, id string) error
}
