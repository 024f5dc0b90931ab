package plaintext

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
	"github.com/rmayank-24/MarketForgeAI/internal/core/ports/driven"
)

func TestSupportedMIMETypes(t *testing.T) {
	types := New().SupportedMIMETypes()
	assert.Contains(t, types, domain.MIMETypeText)
	assert.Contains(t, types, domain.MIMETypeMarkdown)
}

func TestPriority(t *testing.T) {
	assert.Equal(t, 5, New().Priority())
}

func TestNormalise(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{"plain", "Reusable silicone wraps.", "Reusable silicone wraps."},
		{"trims whitespace", "\n\n  Wraps  \n", "Wraps"},
		{"strips bom", "\uFEFFWraps", "Wraps"},
		{"folds crlf", "line one\r\nline two", "line one\nline two"},
		{"unicode", "Café naïve 日本語 🌿", "Café naïve 日本語 🌿"},
		{"invalid utf8", "ok\xffok", "ok�ok"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := New().Normalise(context.Background(), &domain.SourceDocument{
				MIMEType: domain.MIMETypeText,
				Content:  []byte(tt.content),
			})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, text)
		})
	}
}

func TestNormalise_NilDocument(t *testing.T) {
	_, err := New().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNormalise_LargeContent(t *testing.T) {
	content := strings.Repeat("Eco friendly storage. ", 10000)

	text, err := New().Normalise(context.Background(), &domain.SourceDocument{Content: []byte(content)})
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSpace(content), text)
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Normaliser = (*Normaliser)(nil)
}

func BenchmarkNormalise(b *testing.B) {
	doc := &domain.SourceDocument{Content: []byte(strings.Repeat("Product brief line.\r\n", 1000))}
	n := New()
	ctx := context.Background()
	for b.Loop() {
		_, _ = n.Normalise(ctx, doc)
	}
}
