// Package ollama generates launch-kit copy with a local Ollama server.
package ollama

import (
	"context"
	"time"

	"github.com/rmayank-24/MarketForgeAI/internal/adapters/driven/apiclient"
	"github.com/rmayank-24/MarketForgeAI/internal/core/ports/driven"
)

var _ driven.LLMService = (*LLMService)(nil)

const (
	DefaultBaseURL    = "http://localhost:11434"
	DefaultLLMModel   = "llama3.2"
	DefaultLLMTimeout = 120 * time.Second
)

// LLMConfig configures the Ollama generator. Zero fields take the defaults above.
type LLMConfig struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// LLMService calls /api/generate with streaming disabled, so each stage
// prompt yields exactly one response document.
type LLMService struct {
	api   *apiclient.Client
	model string
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options *samplerOptions `json:"options,omitempty"`
}

// samplerOptions maps GenerateOptions onto Ollama's model parameters.
type samplerOptions struct {
	NumPredict  int     `json:"num_predict,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

// NewLLMService creates an Ollama generator. A local server needs no key.
func NewLLMService(cfg LLMConfig) *LLMService {
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
			Provider: "ollama",
			BaseURL:  cfg.BaseURL,
			Timeout:  cfg.Timeout,
		}),
		model: cfg.Model,
	}
}

func samplerFor(opts driven.GenerateOptions) *samplerOptions {
	if opts.MaxTokens <= 0 && opts.Temperature <= 0 {
		return nil
	}
	return &samplerOptions{NumPredict: opts.MaxTokens, Temperature: opts.Temperature}
}

// Generate runs one non-streaming completion.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	var resp generateResponse
	err := s.api.Post(ctx, "/api/generate", generateRequest{
		Model:   s.model,
		Prompt:  prompt,
		Options: samplerFor(opts),
	}, &resp)
	if err != nil {
		return "", err
	}
	if resp.Error != "" {
		return "", s.api.Reject("%s", resp.Error)
	}
	return resp.Response, nil
}

// ModelName returns the configured model tag.
func (s *LLMService) ModelName() string {
	return s.model
}

// Ping lists local models, which proves the server is up without loading one.
func (s *LLMService) Ping(ctx context.Context) error {
	return s.api.Get(ctx, "/api/tags", nil)
}

// Close releases idle connections.
func (s *LLMService) Close() error {
	s.api.Close()
	return nil
}
