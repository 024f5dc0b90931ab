package chunker

import (
	"slices"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
)

func collect(p *Processor, text string) []domain.Passage {
	return slices.Collect(p.Passages(text))
}

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		p := New()
		if p.chunkSize != DefaultChunkSize {
			t.Errorf("expected chunkSize %d, got %d", DefaultChunkSize, p.chunkSize)
		}
		if p.overlap != DefaultChunkOverlap {
			t.Errorf("expected overlap %d, got %d", DefaultChunkOverlap, p.overlap)
		}
	})

	t.Run("custom options", func(t *testing.T) {
		p := New(WithChunkSize(500), WithOverlap(100))
		if p.chunkSize != 500 || p.overlap != 100 {
			t.Errorf("expected 500/100, got %d/%d", p.chunkSize, p.overlap)
		}
	})

	t.Run("overlap exceeds chunk size", func(t *testing.T) {
		p := New(WithChunkSize(100), WithOverlap(150))
		if p.overlap != 25 {
			t.Errorf("expected overlap clamped to 25, got %d", p.overlap)
		}
	})

	t.Run("zero values ignored", func(t *testing.T) {
		p := New(WithChunkSize(0), WithOverlap(-1))
		if p.chunkSize != DefaultChunkSize || p.overlap != DefaultChunkOverlap {
			t.Errorf("expected defaults, got %d/%d", p.chunkSize, p.overlap)
		}
	})

	t.Run("from settings", func(t *testing.T) {
		p := FromSettings(domain.RetrievalSettings{ChunkSize: 300, ChunkOverlap: 30})
		if p.chunkSize != 300 || p.overlap != 30 {
			t.Errorf("expected 300/30, got %d/%d", p.chunkSize, p.overlap)
		}
	})
}

func TestPassages_EmptyInput(t *testing.T) {
	p := New()
	for _, text := range []string{"", "   ", "\n\n\t"} {
		if got := collect(p, text); len(got) != 0 {
			t.Errorf("expected no passages for %q, got %d", text, len(got))
		}
	}
}

func TestPassages_SmallContent(t *testing.T) {
	p := New(WithChunkSize(100), WithOverlap(20))
	got := collect(p, "A short brief.")

	want := []domain.Passage{{Text: "A short brief.", Offset: 0}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("passages mismatch (-want +got):\n%s", diff)
	}
}

func TestPassages_OffsetsMatchSource(t *testing.T) {
	text := strings.Repeat("silicone wraps keep food fresh ", 40)
	runes := []rune(text)
	p := New(WithChunkSize(100), WithOverlap(20))

	got := collect(p, text)
	if len(got) < 2 {
		t.Fatalf("expected multiple passages, got %d", len(got))
	}
	for i, passage := range got {
		n := utf8.RuneCountInString(passage.Text)
		if n > 100 {
			t.Errorf("passage %d longer than chunk size: %d", i, n)
		}
		if string(runes[passage.Offset:passage.Offset+n]) != passage.Text {
			t.Errorf("passage %d text does not match source at offset %d", i, passage.Offset)
		}
		if i > 0 && passage.Offset <= got[i-1].Offset {
			t.Errorf("offsets not increasing at %d", i)
		}
	}

	last := got[len(got)-1]
	if last.Offset+utf8.RuneCountInString(last.Text) != len(runes) {
		t.Error("passages do not cover the end of the text")
	}
}

func TestPassages_Overlap(t *testing.T) {
	text := strings.Repeat("x", 250)
	p := New(WithChunkSize(100), WithOverlap(25))

	got := collect(p, text)
	offsets := make([]int, len(got))
	for i, passage := range got {
		offsets[i] = passage.Offset
	}

	// No whitespace, so every window is cut at exactly chunkSize.
	want := []int{0, 75, 150}
	if diff := cmp.Diff(want, offsets); diff != "" {
		t.Errorf("offsets mismatch (-want +got):\n%s", diff)
	}
}

func TestPassages_PrefersWhitespace(t *testing.T) {
	text := strings.Repeat("a", 90) + " " + strings.Repeat("b", 50)
	p := New(WithChunkSize(100), WithOverlap(0))

	got := collect(p, text)
	if len(got) != 2 {
		t.Fatalf("expected 2 passages, got %d", len(got))
	}
	if got[0].Text != strings.Repeat("a", 90)+" " {
		t.Errorf("expected first passage to end at the space, got %q", got[0].Text)
	}
	if got[1].Offset != 91 {
		t.Errorf("expected second passage at 91, got %d", got[1].Offset)
	}
}

func TestPassages_MultiByteRunes(t *testing.T) {
	text := strings.Repeat("é", 30)
	p := New(WithChunkSize(10), WithOverlap(2))

	for _, passage := range collect(p, text) {
		if !utf8.ValidString(passage.Text) {
			t.Fatalf("passage split a rune: %q", passage.Text)
		}
	}
}

func TestPassages_Deterministic(t *testing.T) {
	text := strings.Repeat("Fact one. Fact two spans a boundary. ", 60)
	p := New(WithChunkSize(120), WithOverlap(30))

	seq := p.Passages(text)
	first := slices.Collect(seq)
	second := slices.Collect(seq)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("restarted sequence differs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(first, collect(New(WithChunkSize(120), WithOverlap(30)), text)); diff != "" {
		t.Errorf("fresh processor differs:\n%s", diff)
	}
}

func TestPassages_EarlyStop(t *testing.T) {
	text := strings.Repeat("word ", 500)
	p := New(WithChunkSize(50), WithOverlap(10))

	count := 0
	for range p.Passages(text) {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("expected iteration to stop at 2, got %d", count)
	}
}
