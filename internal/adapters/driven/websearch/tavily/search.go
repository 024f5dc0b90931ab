// Package tavily searches the public web with the Tavily search API.
package tavily

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rmayank-24/MarketForgeAI/internal/adapters/driven/apiclient"
	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
	"github.com/rmayank-24/MarketForgeAI/internal/core/ports/driven"
)

var _ driven.WebSearch = (*Search)(nil)

const (
	DefaultBaseURL = "https://api.tavily.com"
	DefaultTimeout = 20 * time.Second

	// maxResultsCap is the largest max_results the API accepts.
	maxResultsCap = 20
)

// Config configures the search client.
type Config struct {
	// APIKey is sent as a bearer token. Required.
	APIKey string

	BaseURL string
	Timeout time.Duration
}

// Search runs basic-depth general searches.
type Search struct {
	api *apiclient.Client
}

type searchRequest struct {
	Query       string `json:"query"`
	MaxResults  int    `json:"max_results"`
	SearchDepth string `json:"search_depth"`
	Topic       string `json:"topic"`
}

type searchResponse struct {
	Results []struct {
		Title   string  `json:"title"`
		URL     string  `json:"url"`
		Content string  `json:"content"`
		Score   float64 `json:"score"`
	} `json:"results"`
	Detail *struct {
		Error string `json:"error"`
	} `json:"detail,omitempty"`
}

// New creates a search client.
func New(cfg Config) (*Search, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("tavily: API key is required: %w", domain.ErrSearchUnavailable)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Search{
		api: apiclient.New(apiclient.Options{
			Provider: "tavily",
			BaseURL:  cfg.BaseURL,
			Timeout:  cfg.Timeout,
			Header:   http.Header{"Authorization": {"Bearer " + cfg.APIKey}},
			Kind:     apiclient.Search,
		}),
	}, nil
}

// Search returns up to limit results in the order the API ranks them.
// Results without content are dropped.
func (s *Search) Search(ctx context.Context, query string, limit int) ([]domain.WebResult, error) {
	query = strings.TrimSpace(query)
	if query == "" || limit <= 0 {
		return nil, nil
	}

	req := searchRequest{
		Query:       query,
		MaxResults:  min(limit, maxResultsCap),
		SearchDepth: "basic",
		Topic:       "general",
	}

	var resp searchResponse
	if err := s.api.Post(ctx, "/search", req, &resp); err != nil {
		return nil, err
	}
	if resp.Detail != nil && resp.Detail.Error != "" {
		return nil, s.api.Reject("%s", resp.Detail.Error)
	}

	results := make([]domain.WebResult, 0, len(resp.Results))
	for _, r := range resp.Results {
		content := strings.TrimSpace(r.Content)
		if content == "" {
			continue
		}
		results = append(results, domain.WebResult{
			Title:   strings.TrimSpace(r.Title),
			URL:     r.URL,
			Content: content,
		})
		if len(results) == limit {
			break
		}
	}
	return results, nil
}

// Close releases idle connections.
func (s *Search) Close() error {
	s.api.Close()
	return nil
}
