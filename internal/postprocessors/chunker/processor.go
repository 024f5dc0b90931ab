// Package chunker splits extracted document text into overlapping passages.
package chunker

import (
	"iter"
	"strings"
	"unicode"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
	"github.com/rmayank-24/MarketForgeAI/internal/core/ports/driven"
)

// Ensure Processor implements the Chunker interface.
var _ driven.Chunker = (*Processor)(nil)

// DefaultChunkSize is the default number of runes per passage.
const DefaultChunkSize = domain.DefaultChunkSize

// DefaultChunkOverlap is the default number of overlapping runes.
const DefaultChunkOverlap = domain.DefaultChunkOverlap

// Processor splits text into passages of bounded length with a fixed
// overlap. Lengths and offsets are counted in runes.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in runes.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in runes.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Ensure overlap doesn't exceed chunk size
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	return p
}

// FromSettings builds a processor from retrieval settings.
func FromSettings(s domain.RetrievalSettings) *Processor {
	return New(WithChunkSize(s.ChunkSize), WithOverlap(s.ChunkOverlap))
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Passages returns a lazy sequence of passages over text. Each range over
// the sequence re-walks text from the start, so the sequence is restartable
// and yields identical passages every time.
func (p *Processor) Passages(text string) iter.Seq[domain.Passage] {
	return func(yield func(domain.Passage) bool) {
		if strings.TrimSpace(text) == "" {
			return
		}

		runes := []rune(text)
		total := len(runes)
		start := 0

		for start < total {
			end := p.boundary(runes, start)

			chunk := string(runes[start:end])
			if strings.TrimSpace(chunk) != "" {
				if !yield(domain.Passage{Text: chunk, Offset: start}) {
					return
				}
			}

			if end >= total {
				return
			}

			// Always advance, even when overlap swallows a short window.
			next := end - p.overlap
			if next <= start {
				next = start + 1
			}
			start = next
		}
	}
}

// boundary picks the end of the window starting at start. It prefers the
// last whitespace inside the final quarter of the window.
func (p *Processor) boundary(runes []rune, start int) int {
	end := start + p.chunkSize
	if end >= len(runes) {
		return len(runes)
	}

	floor := end - p.chunkSize/4
	if floor <= start {
		floor = start + 1
	}
	for i := end; i > floor; i-- {
		if unicode.IsSpace(runes[i-1]) {
			return i
		}
	}
	return end
}
