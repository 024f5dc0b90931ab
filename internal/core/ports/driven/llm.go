package driven

import "context"

// LLMService generates text from a prompt. It is an untrusted dependency:
// implementations report transport failures but never validate content.
//
// Implementations map failures onto domain errors:
//   - domain.ErrGenerationUnavailable: unreachable, rate limited, 5xx, bad config
//   - domain.ErrGenerationTimeout: the call exceeded its deadline
type LLMService interface {
	// Generate produces text from a prompt. It must honour ctx cancellation.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable and configured.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation.
type GenerateOptions struct {
	// MaxTokens limits the response length.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}
