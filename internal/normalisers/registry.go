package normalisers

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
	"github.com/rmayank-24/MarketForgeAI/internal/core/ports/driven"
	"github.com/rmayank-24/MarketForgeAI/internal/normalisers/docx"
	"github.com/rmayank-24/MarketForgeAI/internal/normalisers/markdown"
	"github.com/rmayank-24/MarketForgeAI/internal/normalisers/pdf"
	"github.com/rmayank-24/MarketForgeAI/internal/normalisers/plaintext"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry selects the highest priority normaliser for a document's MIME type.
type Registry struct {
	mu     sync.RWMutex
	byMIME map[string][]driven.Normaliser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byMIME: make(map[string][]driven.Normaliser)}
}

// DefaultRegistry returns a registry with the plaintext, markdown, docx and pdf normalisers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(plaintext.New())
	r.Register(markdown.New())
	r.Register(docx.New())
	r.Register(pdf.New())
	return r
}

// Register adds a normaliser for each MIME type it supports.
func (r *Registry) Register(n driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, mt := range n.SupportedMIMETypes() {
		list := append(r.byMIME[mt], n)
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Priority() > list[j].Priority()
		})
		r.byMIME[mt] = list
	}
}

// SupportedMIMETypes returns all registered MIME types, sorted.
func (r *Registry) SupportedMIMETypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.byMIME))
	for mt := range r.byMIME {
		types = append(types, mt)
	}
	sort.Strings(types)
	return types
}

// ExtractText resolves the document's MIME type and runs the best normaliser.
func (r *Registry) ExtractText(ctx context.Context, doc *domain.SourceDocument) (string, error) {
	if doc.IsEmpty() {
		return "", fmt.Errorf("extract text: %w", domain.ErrInvalidInput)
	}

	mt := doc.CanonicalMIMEType()
	if mt == "" {
		mt = doc.MIMEType
	}

	r.mu.RLock()
	candidates := r.byMIME[mt]
	r.mu.RUnlock()

	if len(candidates) == 0 {
		return "", fmt.Errorf("extract text from %q (%s): %w", doc.Name, doc.MIMEType, domain.ErrUnsupportedDocument)
	}

	text, err := candidates[0].Normalise(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("extract text from %q: %w", doc.Name, err)
	}
	return text, nil
}
