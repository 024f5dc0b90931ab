package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
	"github.com/rmayank-24/MarketForgeAI/internal/core/ports/driven"
	"github.com/rmayank-24/MarketForgeAI/internal/logger"
)

// Pipeline runs the generation stages in fixed order. Each run owns its
// own accumulator; a Pipeline holds no per-run state and is safe for
// concurrent use.
type Pipeline struct {
	llm      driven.LLMService
	prompts  driven.PromptStore
	settings domain.PipelineSettings
	log      *logger.Logger
}

// NewPipeline creates a pipeline. prompts may be nil to use the built-in
// templates. Missing settings fall back to defaults.
func NewPipeline(llm driven.LLMService, prompts driven.PromptStore, settings domain.PipelineSettings) *Pipeline {
	defaults := domain.DefaultPipelineSettings()
	if settings.MaxRetries < 0 {
		settings.MaxRetries = 0
	}
	if settings.RetryBackoff < 0 {
		settings.RetryBackoff = 0
	}
	if settings.MaxTokens == nil {
		settings.MaxTokens = defaults.MaxTokens
	}
	if settings.MinChars == nil {
		settings.MinChars = defaults.MinChars
	}
	return &Pipeline{
		llm:      llm,
		prompts:  prompts,
		settings: settings,
		log:      logger.New("pipeline"),
	}
}

// Run executes every stage for idea. refs carries the research material
// given to the stages that use it. On failure it returns the first
// failing stage as a *domain.StageError and no outputs.
func (p *Pipeline) Run(ctx context.Context, idea string, refs References, onStage func(domain.StageEvent)) (domain.StageOutputs, error) {
	if p.llm == nil {
		return domain.StageOutputs{}, &domain.StageError{
			Stage: domain.StageMarketResearch,
			Cause: fmt.Errorf("no generation client configured: %w", domain.ErrGenerationUnavailable),
		}
	}

	notify := func(ev domain.StageEvent) {
		if onStage != nil {
			onStage(ev)
		}
	}

	logger.Section("Generation Pipeline")
	outputs := domain.StageOutputs{}
	for stage := domain.StageMarketResearch; stage != domain.StageDone; stage = stage.Next() {
		next, err := p.runStage(ctx, stage, idea, refs, outputs, notify)
		if err != nil {
			notify(domain.StageEvent{Stage: stage, Status: domain.StageFailed, Err: err})
			return domain.StageOutputs{}, err
		}
		outputs = next
	}
	return outputs, nil
}

func (p *Pipeline) runStage(
	ctx context.Context,
	stage domain.Stage,
	idea string,
	refs References,
	prior domain.StageOutputs,
	notify func(domain.StageEvent),
) (domain.StageOutputs, error) {
	prompt, err := renderPrompt(p.prompts, stage, idea, refs, prior)
	if err != nil {
		return prior, &domain.StageError{Stage: stage, Cause: err}
	}

	opts := driven.GenerateOptions{
		MaxTokens:   p.settings.MaxTokens[stage],
		Temperature: p.settings.Temperature,
	}
	maxAttempts := p.settings.MaxRetries + 1

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt == 1 {
			notify(domain.StageEvent{Stage: stage, Status: domain.StageStarted, Attempt: attempt})
		} else {
			notify(domain.StageEvent{Stage: stage, Status: domain.StageRetrying, Attempt: attempt, Err: lastErr})
			if err := wait(ctx, p.settings.RetryBackoff); err != nil {
				return prior, &domain.StageError{Stage: stage, Attempts: attempt - 1, Cause: err}
			}
		}

		p.log.Debug("%s attempt %d/%d (max_tokens=%d)", stage, attempt, maxAttempts, opts.MaxTokens)
		text, err := p.llm.Generate(ctx, prompt, opts)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return prior, &domain.StageError{Stage: stage, Attempts: attempt, Cause: ctxErr}
		}
		if err != nil {
			p.log.Warn("%s attempt %d: %v", stage, attempt, err)
			lastErr = err
			continue
		}

		next, err := p.accept(stage, text, idea, prior)
		if err != nil {
			p.log.Warn("%s attempt %d: %v", stage, attempt, err)
			lastErr = err
			continue
		}

		notify(domain.StageEvent{Stage: stage, Status: domain.StageSucceeded, Attempt: attempt})
		return next, nil
	}

	return prior, &domain.StageError{Stage: stage, Attempts: maxAttempts, Cause: lastErr}
}

// accept validates generated text and records it in the accumulator.
func (p *Pipeline) accept(stage domain.Stage, text, idea string, prior domain.StageOutputs) (domain.StageOutputs, error) {
	if stage == domain.StageSocialCalendar {
		posts := parsePosts(text)
		if len(posts) == 0 {
			return prior, fmt.Errorf("%w: no social posts found", domain.ErrInvalidOutput)
		}
		if len(posts) != domain.PostCount {
			p.log.Debug("parsed %d posts, normalising to %d", len(posts), domain.PostCount)
		}
		return prior.WithPosts(normalisePosts(posts, idea, prior)), nil
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return prior, fmt.Errorf("%w: empty output", domain.ErrInvalidOutput)
	}
	if n, floor := utf8.RuneCountInString(trimmed), p.settings.MinChars[stage]; n < floor {
		return prior, fmt.Errorf("%w: %d characters, want at least %d", domain.ErrInvalidOutput, n, floor)
	}
	return prior.With(stage, trimmed), nil
}

// wait pauses for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// IsRetryExhausted reports whether err is a stage failure after retries,
// as opposed to cancellation by the caller.
func IsRetryExhausted(err error) bool {
	var se *domain.StageError
	if !errors.As(err, &se) {
		return false
	}
	return !errors.Is(se.Cause, context.Canceled) && !errors.Is(se.Cause, context.DeadlineExceeded)
}
