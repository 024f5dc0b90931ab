package services

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
)

func TestParsePosts(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "json object",
			text: `{"posts": ["one", "two"]}`,
			want: []string{"one", "two"},
		},
		{
			name: "json in code fence with preamble",
			text: "Here you go:\n```json\n{\"posts\": [\"a {brace}\", \"b\"]}\n```",
			want: []string{"a {brace}", "b"},
		},
		{
			name: "json objects with content",
			text: `{"posts": [{"day": 1, "content": "first"}, {"text": "second"}]}`,
			want: []string{"first", "second"},
		},
		{
			name: "json array",
			text: `["x", "", "y"]`,
			want: []string{"x", "y"},
		},
		{
			name: "numbered lines",
			text: "1. First post\n2) Second post\n\n3. Third",
			want: []string{"First post", "Second post", "Third"},
		},
		{
			name: "bullets and day labels",
			text: "- **Bold** start\n* star\n• dot\nDay 4: four\nday 5 - five",
			want: []string{"Bold start", "star", "dot", "four", "five"},
		},
		{
			name: "wrapped continuation",
			text: "1. A long post that\n   keeps going\n2. Next",
			want: []string{"A long post that keeps going", "Next"},
		},
		{
			name: "hashtags kept",
			text: "1. Launch day! #ZeroWaste",
			want: []string{"Launch day! #ZeroWaste"},
		},
		{
			name: "unmarked paragraphs",
			text: "Here are your posts:\n\nWraps are here.\n\nSeal anything,\nanywhere.\n\n  \nRinse and reuse.",
			want: []string{"Wraps are here.", "Seal anything, anywhere.", "Rinse and reuse."},
		},
		{
			name: "single paragraph",
			text: "Wraps are here.\nSeal anything.",
			want: nil,
		},
		{
			name: "prose only",
			text: "I am unable to produce posts right now.",
			want: nil,
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, parsePosts(tt.text)); diff != "" {
				t.Errorf("parsePosts mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalisePosts_Truncates(t *testing.T) {
	in := []string{"1", "2", "3", "4", "5", "6", "7"}
	got := normalisePosts(in, testIdea, domain.StageOutputs{})
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, got)
}

func TestNormalisePosts_PadsFromAdThenProductCopy(t *testing.T) {
	prior := domain.StageOutputs{
		AdCopy:      "Fresh food, zero waste.",
		ProductCopy: "Made from food-grade silicone. Lasts for years of daily use!",
	}
	got := normalisePosts([]string{"only one"}, testIdea, prior)

	want := []string{
		"only one",
		"Fresh food, zero waste.",
		"Made from food-grade silicone.",
		"Lasts for years of daily use!",
		"Day 5 spotlight: " + testIdea,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("normalisePosts mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalisePosts_SkipsDuplicatesAndShortSentences(t *testing.T) {
	prior := domain.StageOutputs{AdCopy: "Seal it. Seal anything fresh. Seal anything fresh."}
	got := normalisePosts([]string{"seal anything fresh."}, testIdea, prior)

	assert.Len(t, got, domain.PostCount)
	assert.Equal(t, "seal anything fresh.", got[0])
	assert.Equal(t, "Day 2 spotlight: "+testIdea, got[1])
}

func TestNormalisePosts_Deterministic(t *testing.T) {
	prior := domain.StageOutputs{AdCopy: sampleAdCopy, ProductCopy: sampleProductCopy}
	a := normalisePosts([]string{"x", "y", "z"}, testIdea, prior)
	b := normalisePosts([]string{"x", "y", "z"}, testIdea, prior)
	assert.Equal(t, a, b)
}

func TestExtractBalanced(t *testing.T) {
	assert.Equal(t, `{"a": "}"}`, extractBalanced(`noise {"a": "}"} tail`, '{', '}'))
	assert.Equal(t, `{"a": "\"}"}`, extractBalanced(`{"a": "\"}"}`, '{', '}'))
	assert.Empty(t, extractBalanced(`{"open": true`, '{', '}'))
	assert.Empty(t, extractBalanced(`no braces`, '{', '}'))
}
