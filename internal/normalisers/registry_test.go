package normalisers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
)

type fixedNormaliser struct {
	types    []string
	priority int
	text     string
}

func (f *fixedNormaliser) SupportedMIMETypes() []string { return f.types }
func (f *fixedNormaliser) Priority() int                { return f.priority }
func (f *fixedNormaliser) Normalise(context.Context, *domain.SourceDocument) (string, error) {
	return f.text, nil
}

func TestRegistry_PicksHighestPriority(t *testing.T) {
	r := NewRegistry()
	r.Register(&fixedNormaliser{types: []string{domain.MIMETypeText}, priority: 5, text: "fallback"})
	r.Register(&fixedNormaliser{types: []string{domain.MIMETypeText}, priority: 60, text: "preferred"})

	text, err := r.ExtractText(context.Background(), &domain.SourceDocument{MIMEType: "txt", Content: []byte("x")})
	require.NoError(t, err)
	assert.Equal(t, "preferred", text)
}

func TestRegistry_Unsupported(t *testing.T) {
	r := DefaultRegistry()

	_, err := r.ExtractText(context.Background(), &domain.SourceDocument{
		Name:     "sheet.xlsx",
		MIMEType: "application/vnd.ms-excel",
		Content:  []byte("x"),
	})
	assert.ErrorIs(t, err, domain.ErrUnsupportedDocument)
}

func TestRegistry_EmptyDocument(t *testing.T) {
	r := DefaultRegistry()

	_, err := r.ExtractText(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = r.ExtractText(context.Background(), &domain.SourceDocument{MIMEType: "txt"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDefaultRegistry_ResolvesByExtension(t *testing.T) {
	r := DefaultRegistry()

	text, err := r.ExtractText(context.Background(), &domain.SourceDocument{
		Name:    "brief.md",
		Content: []byte("# Wraps\n\nMade of **food-grade** silicone."),
	})
	require.NoError(t, err)
	assert.Equal(t, "Wraps\n\nMade of food-grade silicone.", text)
}

func TestDefaultRegistry_SupportedMIMETypes(t *testing.T) {
	types := DefaultRegistry().SupportedMIMETypes()

	assert.Contains(t, types, domain.MIMETypePDF)
	assert.Contains(t, types, domain.MIMETypeDOCX)
	assert.Contains(t, types, domain.MIMETypeText)
	assert.Contains(t, types, domain.MIMETypeMarkdown)
	assert.IsNonDecreasing(t, types)
}
