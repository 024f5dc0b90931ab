// Package ratelimit throttles calls to an LLM provider.
package ratelimit

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
	"github.com/rmayank-24/MarketForgeAI/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// DefaultCooldown is how long calls are held back after the provider
// answers with a rate limit error.
const DefaultCooldown = 20 * time.Second

// Config holds rate limiting configuration.
type Config struct {
	// RequestsPerMinute is the sustained rate. Zero or negative disables throttling.
	RequestsPerMinute int

	// Burst is the maximum burst size (default: 1).
	Burst int

	// Cooldown is the pause after a rate limit error (default: 20s).
	Cooldown time.Duration
}

// LLMService wraps another LLMService with a token bucket.
type LLMService struct {
	next     driven.LLMService
	limiter  *rate.Limiter
	cooldown time.Duration

	mu      sync.Mutex
	retryAt time.Time
}

// Wrap returns next unchanged when throttling is disabled.
func Wrap(next driven.LLMService, cfg Config) driven.LLMService {
	if cfg.RequestsPerMinute <= 0 {
		return next
	}
	return New(next, cfg)
}

// New creates a rate limited LLM service.
func New(next driven.LLMService, cfg Config) *LLMService {
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = DefaultCooldown
	}
	limit := rate.Inf
	if cfg.RequestsPerMinute > 0 {
		limit = rate.Limit(float64(cfg.RequestsPerMinute) / 60.0)
	}
	return &LLMService{
		next:     next,
		limiter:  rate.NewLimiter(limit, cfg.Burst),
		cooldown: cfg.Cooldown,
	}
}

// Generate waits for a token, then delegates.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	if err := s.wait(ctx); err != nil {
		return "", err
	}
	text, err := s.next.Generate(ctx, prompt, opts)
	if errors.Is(err, domain.ErrRateLimited) {
		s.mu.Lock()
		s.retryAt = time.Now().Add(s.cooldown)
		s.mu.Unlock()
	}
	return text, err
}

// ModelName returns the wrapped model name.
func (s *LLMService) ModelName() string {
	return s.next.ModelName()
}

// Ping is not throttled.
func (s *LLMService) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}

// Close closes the wrapped service.
func (s *LLMService) Close() error {
	return s.next.Close()
}

func (s *LLMService) wait(ctx context.Context) error {
	s.mu.Lock()
	retryAt := s.retryAt
	s.mu.Unlock()

	if d := time.Until(retryAt); d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	return s.limiter.Wait(ctx)
}
