package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
	"github.com/rmayank-24/MarketForgeAI/internal/core/ports/driven"
	"github.com/rmayank-24/MarketForgeAI/internal/logger"
)

// maxQueryRunes bounds the search query built from the idea.
const maxQueryRunes = 400

// WebResearcher gathers public web results about a product idea for the
// market research stage.
type WebResearcher struct {
	search driven.WebSearch
	limit  int
	budget int
	log    *logger.Logger
}

// NewWebResearcher creates a researcher. search may be nil, in which case
// research always yields "". budget caps the result text in runes.
func NewWebResearcher(search driven.WebSearch, settings domain.WebSearchSettings, budget int) *WebResearcher {
	if settings.MaxResults <= 0 {
		settings.MaxResults = domain.DefaultWebResults
	}
	if budget <= 0 {
		budget = domain.DefaultMaxContextChars
	}
	return &WebResearcher{
		search: search,
		limit:  settings.MaxResults,
		budget: budget,
		log:    logger.New("research"),
	}
}

// Research returns formatted web results for idea in ranked order,
// truncated to the budget. It never fails: a search error yields "".
func (w *WebResearcher) Research(ctx context.Context, idea string) string {
	if w == nil || w.search == nil {
		return ""
	}

	logger.Section("Web Research")
	results, err := w.search.Search(ctx, researchQuery(idea), w.limit)
	if err != nil {
		w.log.Warn("continuing without web results: %v", err)
		return ""
	}
	w.log.Debug("%d web results", len(results))

	blocks := make([]string, 0, len(results))
	for _, r := range results {
		blocks = append(blocks, formatWebResult(r))
	}
	return truncateRunes(strings.Join(blocks, contextSeparator), w.budget)
}

func researchQuery(idea string) string {
	return truncateRunes(fmt.Sprintf("%s: target market, competitors, pricing and trends", idea), maxQueryRunes)
}

func formatWebResult(r domain.WebResult) string {
	var b strings.Builder
	switch {
	case r.Title != "" && r.URL != "":
		fmt.Fprintf(&b, "%s (%s)\n", r.Title, r.URL)
	case r.Title != "":
		b.WriteString(r.Title + "\n")
	case r.URL != "":
		b.WriteString(r.URL + "\n")
	}
	b.WriteString(r.Content)
	return b.String()
}
