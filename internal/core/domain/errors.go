package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyIdea indicates the product idea is empty after trimming.
	// It is returned before any stage runs.
	ErrEmptyIdea = errors.New("product idea is empty")

	// ErrUnsupportedDocument indicates no text extractor handles the document type.
	ErrUnsupportedDocument = errors.New("unsupported document type")

	// Generation Errors.

	// ErrGenerationUnavailable indicates the text-generation backend is
	// unreachable, misconfigured or rate limited.
	ErrGenerationUnavailable = errors.New("generation backend unavailable")

	// ErrGenerationTimeout indicates a generation call exceeded its deadline.
	ErrGenerationTimeout = errors.New("generation timed out")

	// ErrInvalidOutput indicates generated text failed shape validation.
	ErrInvalidOutput = errors.New("generated output failed validation")

	// Retrieval Errors.

	// ErrIndexUnavailable indicates the per-request embedding index could not
	// be built. Retrieval degrades to empty context; it is never surfaced as
	// a pipeline failure.
	ErrIndexUnavailable = errors.New("embedding index unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrSearchUnavailable indicates web search failed. Research proceeds
	// without web results.
	ErrSearchUnavailable = errors.New("web search unavailable")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// Calendar Errors.

	// ErrCalendarNotConfigured indicates calendar credentials are missing.
	ErrCalendarNotConfigured = errors.New("calendar not configured")

	// ErrAuthRequired indicates the calendar push needs an authorised account.
	ErrAuthRequired = errors.New("authentication required")
)

// StageError reports that a pipeline stage exhausted its retry budget.
// The pipeline never returns a partial LaunchKit alongside it.
type StageError struct {
	// Stage is the first stage that failed.
	Stage Stage

	// Attempts is the number of generation attempts made.
	Attempts int

	// Cause is the error from the final attempt.
	Cause error
}

// Error implements error.
func (e *StageError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("stage %s failed after %d attempt(s)", e.Stage, e.Attempts)
	}
	return fmt.Sprintf("stage %s failed after %d attempt(s): %v", e.Stage, e.Attempts, e.Cause)
}

// Unwrap returns the underlying cause so errors.Is sees generation errors.
func (e *StageError) Unwrap() error {
	return e.Cause
}

// FailedStage extracts the failing stage from err, if it carries one.
func FailedStage(err error) (Stage, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}
	return StageDone, false
}
