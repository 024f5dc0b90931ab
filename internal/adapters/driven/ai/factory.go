// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	ollamaembed "github.com/rmayank-24/MarketForgeAI/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/rmayank-24/MarketForgeAI/internal/adapters/driven/embedding/openai"
	anthropicllm "github.com/rmayank-24/MarketForgeAI/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/rmayank-24/MarketForgeAI/internal/adapters/driven/llm/ollama"
	openaillm "github.com/rmayank-24/MarketForgeAI/internal/adapters/driven/llm/openai"
	"github.com/rmayank-24/MarketForgeAI/internal/adapters/driven/llm/ratelimit"
	"github.com/rmayank-24/MarketForgeAI/internal/adapters/driven/websearch/tavily"
	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
	"github.com/rmayank-24/MarketForgeAI/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// InitResult contains the AI services used by a generation run.
type InitResult struct {
	LLMService       driven.LLMService
	EmbeddingService driven.EmbeddingService // nil when retrieval is disabled.
	WebSearch        driven.WebSearch        // nil when web research is disabled.
	Warnings         []string                // Non-fatal issues that disabled retrieval or web research.
}

// Close releases all resources held by InitResult.
func (r *InitResult) Close() {
	if r.WebSearch != nil {
		r.WebSearch.Close()
	}
	if r.EmbeddingService != nil {
		r.EmbeddingService.Close()
	}
	if r.LLMService != nil {
		r.LLMService.Close()
	}
}

// Init creates the services for a generation run. The LLM is required.
// Embedding and web search problems only disable retrieval or web research
// and are reported as warnings.
func Init(ctx context.Context, settings *domain.AppSettings) (*InitResult, error) {
	llm, err := CreateLLMService(&settings.LLM)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'marketforge settings show' to check", domain.ErrGenerationUnavailable, err)
	}
	if llm == nil {
		return nil, fmt.Errorf("%w: no LLM provider configured. Set [llm] in config.toml or MARKETFORGE_LLM_API_KEY",
			domain.ErrGenerationUnavailable)
	}

	result := &InitResult{LLMService: llm}

	search, err := CreateWebSearch(&settings.WebSearch)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("web research disabled: %v", err))
	}
	result.WebSearch = search

	result.initEmbedding(ctx, &settings.Embedding)
	return result, nil
}

func (r *InitResult) initEmbedding(ctx context.Context, settings *domain.EmbeddingSettings) {
	if !settings.IsConfigured() {
		return
	}

	embed, err := CreateEmbeddingService(settings)
	if err != nil {
		r.Warnings = append(r.Warnings, fmt.Sprintf("document retrieval disabled: %v", err))
		return
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := embed.Ping(pingCtx); err != nil {
		embed.Close()
		r.Warnings = append(r.Warnings, fmt.Sprintf("document retrieval disabled: embedding service unreachable (%v)", err))
		return
	}
	r.EmbeddingService = embed
}

// CreateWebSearch creates the configured web search client.
// Returns nil if web search is not configured.
func CreateWebSearch(settings *domain.WebSearchSettings) (driven.WebSearch, error) {
	if settings == nil || settings.Provider == "" {
		return nil, nil
	}

	switch settings.Provider {
	case domain.WebSearchProviderTavily:
		if settings.APIKey == "" {
			return nil, fmt.Errorf("tavily requires an API key (websearch.api_key or TAVILY_API_KEY)")
		}
		search, err := tavily.New(tavily.Config{APIKey: settings.APIKey, BaseURL: settings.BaseURL})
		if err != nil {
			return nil, err
		}
		return search, nil
	default:
		return nil, fmt.Errorf("unsupported web search provider: %s", settings.Provider)
	}
}

// CreateEmbeddingService creates the appropriate embedding service based on settings.
// Returns nil if the provider is not configured.
func CreateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return createOllamaEmbedding(settings), nil

	case domain.AIProviderOpenAI:
		return createOpenAIEmbedding(settings)

	case domain.AIProviderAnthropic, domain.AIProviderGroq:
		return nil, fmt.Errorf("%s does not support embeddings, use ollama or openai", settings.Provider)

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", settings.Provider)
	}
}

// CreateLLMService creates the appropriate LLM service based on settings,
// rate limited when RequestsPerMinute is set.
// Returns nil if the provider is not configured.
func CreateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	var (
		svc driven.LLMService
		err error
	)
	switch settings.Provider {
	case domain.AIProviderOllama:
		svc = createOllamaLLM(settings)

	case domain.AIProviderOpenAI:
		svc, err = createOpenAILLM(settings, openaillm.DefaultBaseURL)

	case domain.AIProviderGroq:
		svc, err = createOpenAILLM(settings, openaillm.GroqBaseURL)

	case domain.AIProviderAnthropic:
		svc, err = createAnthropicLLM(settings)

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", settings.Provider)
	}
	if err != nil {
		return nil, err
	}

	return ratelimit.Wrap(svc, ratelimit.Config{RequestsPerMinute: settings.RequestsPerMinute}), nil
}

// createOllamaEmbedding creates an Ollama embedding service.
func createOllamaEmbedding(settings *domain.EmbeddingSettings) driven.EmbeddingService {
	dimensions := domain.EmbeddingDimensions()[settings.Model]
	if dimensions == 0 {
		dimensions = ollamaembed.DefaultDimensions
	}

	return ollamaembed.NewEmbeddingService(ollamaembed.Config{
		BaseURL:    settings.BaseURL,
		Model:      settings.Model,
		Dimensions: dimensions,
	})
}

// createOpenAIEmbedding creates an OpenAI embedding service.
func createOpenAIEmbedding(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	return openaiembed.NewEmbeddingService(openaiembed.Config{
		APIKey:     settings.APIKey,
		BaseURL:    settings.BaseURL,
		Model:      settings.Model,
		Dimensions: domain.EmbeddingDimensions()[settings.Model],
	})
}

// createOllamaLLM creates an Ollama LLM service.
func createOllamaLLM(settings *domain.LLMSettings) driven.LLMService {
	return ollamallm.NewLLMService(ollamallm.LLMConfig{
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
}

// createOpenAILLM creates an OpenAI-compatible LLM service. Groq shares the wire format.
func createOpenAILLM(settings *domain.LLMSettings, defaultBaseURL string) (driven.LLMService, error) {
	baseURL := settings.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := settings.Model
	if model == "" {
		model = domain.DefaultLLMModels()[settings.Provider]
	}
	return openaillm.NewLLMService(openaillm.LLMConfig{
		APIKey:   settings.APIKey,
		BaseURL:  baseURL,
		Model:    model,
		Provider: settings.Provider.String(),
	})
}

// createAnthropicLLM creates an Anthropic LLM service.
func createAnthropicLLM(settings *domain.LLMSettings) (driven.LLMService, error) {
	return anthropicllm.NewLLMService(anthropicllm.Config{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
}
