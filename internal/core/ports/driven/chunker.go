package driven

import (
	"iter"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
)

// Chunker splits extracted text into overlapping passages.
type Chunker interface {
	// Passages returns a lazy, restartable sequence over text.
	// Empty input yields an empty sequence.
	Passages(text string) iter.Seq[domain.Passage]
}
