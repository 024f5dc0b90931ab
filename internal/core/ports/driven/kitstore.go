package driven

import (
	"context"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
)

// LaunchKitStore persists generated launch kits.
type LaunchKitStore interface {
	// Save stores a record. Records with an existing ID are replaced.
	Save(ctx context.Context, record *domain.KitRecord) error

	// Get retrieves a record by ID. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, id string) (*domain.KitRecord, error)

	// List returns summaries, newest first. limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]domain.KitSummary, error)

	// Delete removes a record. Returns domain.ErrNotFound if absent.
	Delete(ctx context.Context, id string) error
}
