package driven

import (
	"context"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
)

// Normaliser extracts plain text from a source document.
// Each normaliser handles specific MIME types (e.g., PDF, DOCX).
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific normalisers should return 50-89.
	// Fallback normalisers should return 1-9.
	Priority() int

	// Normalise extracts the document text.
	Normalise(ctx context.Context, doc *domain.SourceDocument) (string, error)
}

// NormaliserRegistry selects the appropriate normaliser for a document.
type NormaliserRegistry interface {
	// ExtractText converts the document into plain text using the best
	// matching normaliser. Returns domain.ErrUnsupportedDocument when none match.
	ExtractText(ctx context.Context, doc *domain.SourceDocument) (string, error)

	// Register adds a normaliser to the registry.
	Register(normaliser Normaliser)

	// SupportedMIMETypes returns all MIME types that can be normalised.
	SupportedMIMETypes() []string
}
