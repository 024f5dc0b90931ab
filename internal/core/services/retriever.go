package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
	"github.com/rmayank-24/MarketForgeAI/internal/core/ports/driven"
	"github.com/rmayank-24/MarketForgeAI/internal/logger"
)

// contextSeparator joins retrieved passages.
const contextSeparator = "\n\n"

// Retriever builds a per-request embedding index over a document and
// returns the passages most relevant to the product idea.
type Retriever struct {
	extractor driven.NormaliserRegistry
	chunker   driven.Chunker
	embedder  driven.EmbeddingService
	newIndex  driven.VectorIndexFactory
	settings  domain.RetrievalSettings
	log       *logger.Logger
}

// NewRetriever creates a retriever. extractor and embedder may be nil, in
// which case retrieval always yields empty context.
func NewRetriever(
	extractor driven.NormaliserRegistry,
	chunker driven.Chunker,
	embedder driven.EmbeddingService,
	newIndex driven.VectorIndexFactory,
	settings domain.RetrievalSettings,
) *Retriever {
	defaults := domain.DefaultRetrievalSettings()
	if settings.TopK <= 0 {
		settings.TopK = defaults.TopK
	}
	if settings.MaxContextChars <= 0 {
		settings.MaxContextChars = defaults.MaxContextChars
	}
	if settings.EmbedBatchSize <= 0 {
		settings.EmbedBatchSize = defaults.EmbedBatchSize
	}
	if settings.EmbedConcurrency <= 0 {
		settings.EmbedConcurrency = defaults.EmbedConcurrency
	}
	return &Retriever{
		extractor: extractor,
		chunker:   chunker,
		embedder:  embedder,
		newIndex:  newIndex,
		settings:  settings,
		log:       logger.New("retriever"),
	}
}

// Retrieve returns the top-K passages for idea concatenated in similarity
// order and truncated to the context budget. It never fails: a missing
// document, extraction failure or embedding failure yields "".
func (r *Retriever) Retrieve(ctx context.Context, idea string, doc *domain.SourceDocument) string {
	if doc.IsEmpty() {
		return ""
	}

	logger.Section("Retrieval")
	hits, err := r.topK(ctx, idea, doc)
	if err != nil {
		r.log.Warn("degrading to empty context: %v", err)
		return ""
	}

	texts := make([]string, 0, len(hits))
	for _, h := range hits {
		r.log.Debug("hit offset=%d similarity=%.4f", h.Passage.Offset, h.Similarity)
		if t := strings.TrimSpace(h.Passage.Text); t != "" {
			texts = append(texts, t)
		}
	}
	return truncateRunes(strings.Join(texts, contextSeparator), r.settings.MaxContextChars)
}

func (r *Retriever) topK(ctx context.Context, idea string, doc *domain.SourceDocument) ([]driven.VectorHit, error) {
	if r.extractor == nil || r.embedder == nil || r.chunker == nil || r.newIndex == nil {
		return nil, fmt.Errorf("retrieval not configured: %w", domain.ErrIndexUnavailable)
	}

	text, err := r.extractor.ExtractText(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w: %w", domain.ErrIndexUnavailable, err)
	}

	passages := slices.Collect(r.chunker.Passages(text))
	r.log.Debug("document %q: %d passages", doc.Name, len(passages))
	if len(passages) == 0 {
		return nil, nil
	}

	index := r.newIndex()
	defer index.Close()

	if err := r.build(ctx, index, passages); err != nil {
		return nil, fmt.Errorf("build index: %w: %w", domain.ErrIndexUnavailable, err)
	}

	query, err := r.embedder.Embed(ctx, idea)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w: %w", domain.ErrIndexUnavailable, err)
	}

	hits, err := index.Search(ctx, query, r.settings.TopK)
	if err != nil {
		return nil, fmt.Errorf("search: %w: %w", domain.ErrIndexUnavailable, err)
	}
	return hits, nil
}

// build embeds passages in batches, concurrently up to the configured
// limit, and adds them to index in passage order.
func (r *Retriever) build(ctx context.Context, index driven.VectorIndex, passages []domain.Passage) error {
	batches := slices.Collect(slices.Chunk(passages, r.settings.EmbedBatchSize))
	vectors := make([][][]float32, len(batches))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.settings.EmbedConcurrency)

	for i, batch := range batches {
		texts := make([]string, len(batch))
		for j, p := range batch {
			texts[j] = p.Text
		}
		g.Go(func() error {
			vecs, err := r.embedder.EmbedBatch(gctx, texts)
			if err != nil {
				return err
			}
			if len(vecs) != len(texts) {
				return fmt.Errorf("embedder returned %d vectors for %d texts", len(vecs), len(texts))
			}
			vectors[i] = vecs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, batch := range batches {
		for j, p := range batch {
			if err := index.Add(ctx, p, vectors[i][j]); err != nil {
				return err
			}
		}
	}
	return nil
}

// truncateRunes cuts s to at most limit runes.
func truncateRunes(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
