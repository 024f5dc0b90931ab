package markdown

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
	assert.Contains(t, types, "text/markdown")
	assert.Contains(t, types, "text/x-markdown")
}

func TestPriority(t *testing.T) {
	assert.Equal(t, 50, New().Priority())
}

func TestNormalise_NilDocument(t *testing.T) {
	_, err := New().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "headings removed",
			input:    "# Title\n## Subtitle\n### Third",
			expected: "Title\nSubtitle\nThird",
		},
		{
			name:     "bold removed",
			input:    "This is **bold** text",
			expected: "This is bold text",
		},
		{
			name:     "italic removed",
			input:    "This is *very* _good_",
			expected: "This is very good",
		},
		{
			name:     "underscores inside words kept",
			input:    "Use snake_case_names",
			expected: "Use snake_case_names",
		},
		{
			name:     "links converted",
			input:    "Click [here](https://example.com)",
			expected: "Click here",
		},
		{
			name:     "images removed",
			input:    "See ![alt text](image.png) here",
			expected: "See  here",
		},
		{
			name:     "code blocks removed",
			input:    "Before\n```go\ncode here\n```\nAfter",
			expected: "Before\n\nAfter",
		},
		{
			name:     "inline code keeps text",
			input:    "Use `wraps` here",
			expected: "Use wraps here",
		},
		{
			name:     "blockquotes cleaned",
			input:    "> This is a quote",
			expected: "This is a quote",
		},
		{
			name:     "list markers removed",
			input:    "- Item 1\n- Item 2",
			expected: "Item 1\nItem 2",
		},
		{
			name:     "numbered list markers removed",
			input:    "1. First\n2) Second",
			expected: "First\nSecond",
		},
		{
			name:     "horizontal rule removed",
			input:    "Above\n\n---\n\nBelow",
			expected: "Above\n\nBelow",
		},
		{
			name:     "table divider removed",
			input:    "| Size | Price |\n|---|---|\n| S | $9 |",
			expected: "| Size | Price |\n\n| S | $9 |",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, stripMarkdown(tc.input))
		})
	}
}

func TestNormalise_ProductBrief(t *testing.T) {
	brief := "# Silicone Wraps\r\n\r\n**Material:** food-grade silicone.\r\n\r\n## Pricing\r\n\r\n- Retail price: $24\r\n- Pack of 3"

	text, err := New().Normalise(context.Background(), &domain.SourceDocument{
		MIMEType: domain.MIMETypeMarkdown,
		Content:  []byte(brief),
	})
	require.NoError(t, err)

	assert.Equal(t, "Silicone Wraps\n\nMaterial: food-grade silicone.\n\nPricing\n\nRetail price: $24\nPack of 3", text)
	assert.NotContains(t, text, "#")
	assert.NotContains(t, text, "**")
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Normaliser = (*Normaliser)(nil)
}

func BenchmarkStripMarkdown(b *testing.B) {
	content := strings.Repeat("## Heading\n\nSome **bold** and [a link](https://x.y).\n\n", 200)
	for b.Loop() {
		_ = stripMarkdown(content)
	}
}
