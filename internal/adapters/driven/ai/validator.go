package ai

import (
	"context"
	"time"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
	"github.com/rmayank-24/MarketForgeAI/internal/core/ports/driven"
)

var _ driven.AIConfigValidator = (*ConfigValidator)(nil)

// pinger is the part of a provider service a connectivity check needs.
type pinger interface {
	Ping(ctx context.Context) error
	Close() error
}

// ConfigValidator checks provider settings before they are saved by
// building the real adapter and pinging it. Unconfigured settings pass.
type ConfigValidator struct {
	timeout time.Duration
}

// NewConfigValidator creates a validator that gives each ping pingTimeout.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{timeout: pingTimeout}
}

// ValidateEmbedding pings the embedding provider described by settings.
func (v *ConfigValidator) ValidateEmbedding(settings *domain.EmbeddingSettings) error {
	svc, err := CreateEmbeddingService(settings)
	if err != nil || svc == nil {
		return err
	}
	return v.ping(svc)
}

// ValidateLLM pings the LLM provider described by settings. Rate limiting
// is applied by the factory, so a tight RequestsPerMinute can delay this.
func (v *ConfigValidator) ValidateLLM(settings *domain.LLMSettings) error {
	svc, err := CreateLLMService(settings)
	if err != nil || svc == nil {
		return err
	}
	return v.ping(svc)
}

func (v *ConfigValidator) ping(svc pinger) error {
	defer svc.Close()
	ctx, cancel := context.WithTimeout(context.Background(), v.timeout)
	defer cancel()
	return svc.Ping(ctx)
}
