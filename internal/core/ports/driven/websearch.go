package driven

import (
	"context"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
)

// WebSearch queries a public web search backend.
type WebSearch interface {
	// Search returns at most limit results for query, best first.
	Search(ctx context.Context, query string, limit int) ([]domain.WebResult, error)

	// Close releases resources.
	Close() error
}
