// Package openai generates launch-kit copy through a chat completions API.
// OpenAI itself and Groq share this wire format; the provider label only
// changes the base URL and error prefixes.
package openai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rmayank-24/MarketForgeAI/internal/adapters/driven/apiclient"
	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
	"github.com/rmayank-24/MarketForgeAI/internal/core/ports/driven"
)

var _ driven.LLMService = (*LLMService)(nil)

const (
	DefaultBaseURL    = "https://api.openai.com/v1"
	GroqBaseURL       = "https://api.groq.com/openai/v1"
	DefaultLLMModel   = "gpt-4o-mini"
	DefaultLLMTimeout = 120 * time.Second
)

// LLMConfig configures a chat completions client.
type LLMConfig struct {
	// APIKey is sent as a bearer token. Required.
	APIKey string

	// BaseURL defaults to DefaultBaseURL. Use GroqBaseURL for Groq.
	BaseURL string

	Model   string
	Timeout time.Duration

	// Provider labels errors. Defaults to "openai".
	Provider string
}

// LLMService sends each prompt as a single user turn.
type LLMService struct {
	api   *apiclient.Client
	model string
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewLLMService creates a chat completions client.
func NewLLMService(cfg LLMConfig) (*LLMService, error) {
	if cfg.Provider == "" {
		cfg.Provider = "openai"
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s: API key is required: %w", cfg.Provider, domain.ErrGenerationUnavailable)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultLLMModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultLLMTimeout
	}
	return &LLMService{
		api: apiclient.New(apiclient.Options{
			Provider: cfg.Provider,
			BaseURL:  cfg.BaseURL,
			Timeout:  cfg.Timeout,
			Header:   http.Header{"Authorization": {"Bearer " + cfg.APIKey}},
		}),
		model: cfg.Model,
	}, nil
}

// Generate returns the first choice. Empty content is passed through; the
// pipeline decides whether it is acceptable.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	req := chatRequest{
		Model:       s.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   max(opts.MaxTokens, 0),
		Temperature: max(opts.Temperature, 0),
	}

	var resp chatResponse
	if err := s.api.Post(ctx, "/chat/completions", req, &resp); err != nil {
		return "", err
	}
	switch {
	case resp.Error != nil:
		return "", s.api.Reject("%s", resp.Error.Message)
	case len(resp.Choices) == 0:
		return "", s.api.Reject("no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// ModelName returns the configured model.
func (s *LLMService) ModelName() string {
	return s.model
}

// Ping lists models, which checks the key without spending tokens.
func (s *LLMService) Ping(ctx context.Context) error {
	return s.api.Get(ctx, "/models", nil)
}

// Close releases idle connections.
func (s *LLMService) Close() error {
	s.api.Close()
	return nil
}
