package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
	"github.com/rmayank-24/MarketForgeAI/internal/core/ports/driven"
)

// reply is one scripted generation result.
type reply struct {
	text string
	err  error
}

// mockLLMService returns scripted replies in call order and records every
// prompt. When the script runs out, fallback is used.
type mockLLMService struct {
	mu       sync.Mutex
	replies  []reply
	fallback func(prompt string) (string, error)
	prompts  []string
	options  []driven.GenerateOptions
	onCall   func(n int)
}

func (m *mockLLMService) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.mu.Lock()
	n := len(m.prompts)
	m.prompts = append(m.prompts, prompt)
	m.options = append(m.options, opts)
	var r *reply
	if n < len(m.replies) {
		r = &m.replies[n]
	}
	onCall := m.onCall
	m.mu.Unlock()

	if onCall != nil {
		onCall(n)
	}
	if r != nil {
		return r.text, r.err
	}
	if m.fallback != nil {
		return m.fallback(prompt)
	}
	return "", errors.New("mock: no scripted reply")
}

func (m *mockLLMService) ModelName() string            { return "mock-llm" }
func (m *mockLLMService) Ping(_ context.Context) error { return nil }
func (m *mockLLMService) Close() error                 { return nil }

func (m *mockLLMService) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// stageAwareLLM answers by recognising which stage a default prompt is for.
func stageAwareLLM(posts string) *mockLLMService {
	return &mockLLMService{fallback: func(prompt string) (string, error) {
		switch {
		case strings.Contains(prompt, "market research analyst"):
			return sampleMarketAnalysis, nil
		case strings.Contains(prompt, "e-commerce copywriter"):
			return sampleProductCopy, nil
		case strings.Contains(prompt, "performance marketer"):
			return sampleAdCopy, nil
		case strings.Contains(prompt, "social media manager"):
			return posts, nil
		default:
			return "", errors.New("unrecognised prompt")
		}
	}}
}

const (
	sampleMarketAnalysis = "Target audience: eco-conscious home cooks aged 25-45 replacing single-use plastic. " +
		"Competitors include beeswax wraps and plastic cling film. Trend: zero-waste kitchens are growing."
	sampleProductCopy = "Meet the wrap that outlives a thousand rolls of cling film. Stretchy food-grade silicone seals bowls, " +
		"halves of avocado and sandwiches, then rinses clean in seconds."
	sampleAdCopy = "Ditch the cling film for good. Our silicone wraps seal fresh food for years. " +
		"Dishwasher safe and endlessly reusable."
	fivePostsJSON = `{"posts": ["Post one about wraps", "Post two about freshness", "Post three about waste", "Post four about savings", "Post five launch day"]}`
)

// mockPromptStore serves fixed templates.
type mockPromptStore struct {
	prompts map[string]string
	err     error
}

func (m *mockPromptStore) Load(name string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.prompts[name], nil
}

func (m *mockPromptStore) Reload() {}

// mockExtractor returns fixed text or an error.
type mockExtractor struct {
	text string
	err  error
}

func (m *mockExtractor) ExtractText(_ context.Context, _ *domain.SourceDocument) (string, error) {
	return m.text, m.err
}
func (m *mockExtractor) Register(_ driven.Normaliser) {}
func (m *mockExtractor) SupportedMIMETypes() []string { return []string{domain.MIMETypeText} }

// keywordEmbedder embeds text as keyword counts, giving deterministic
// similarity without a model.
type keywordEmbedder struct {
	keywords []string
	err      error
	mu       sync.Mutex
	batches  int
}

func newKeywordEmbedder() *keywordEmbedder {
	return &keywordEmbedder{keywords: []string{"silicone", "wrap", "food", "price", "battery", "travel"}}
}

func (e *keywordEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	lower := strings.ToLower(text)
	vec := make([]float32, len(e.keywords))
	for i, k := range e.keywords {
		vec[i] = float32(strings.Count(lower, k))
	}
	return vec, nil
}

func (e *keywordEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	e.mu.Lock()
	e.batches++
	e.mu.Unlock()
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := e.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (e *keywordEmbedder) Dimensions() int              { return len(e.keywords) }
func (e *keywordEmbedder) ModelName() string            { return "keywords" }
func (e *keywordEmbedder) Ping(_ context.Context) error { return nil }
func (e *keywordEmbedder) Close() error                 { return nil }

// mockPublisher records publish requests.
type mockWebSearch struct {
	mu      sync.Mutex
	results []domain.WebResult
	err     error
	queries []string
	limits  []int
}

func (m *mockWebSearch) Search(_ context.Context, query string, limit int) ([]domain.WebResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, query)
	m.limits = append(m.limits, limit)
	if m.err != nil {
		return nil, m.err
	}
	return m.results, nil
}

func (m *mockWebSearch) Close() error { return nil }

type mockPublisher struct {
	requests []driven.PublishRequest
	err      error
}

func (m *mockPublisher) Publish(_ context.Context, req driven.PublishRequest) ([]string, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	ids := make([]string, len(req.Items))
	for i := range req.Items {
		ids[i] = "evt-" + req.Items[i].Day
	}
	return ids, nil
}

// noBackoff returns pipeline settings that retry without sleeping.
func noBackoff() domain.PipelineSettings {
	s := domain.DefaultPipelineSettings()
	s.RetryBackoff = 0
	return s
}
