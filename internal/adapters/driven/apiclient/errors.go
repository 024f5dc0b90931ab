package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
)

// maxErrorBody caps how much of an error response is kept in messages.
const maxErrorBody = 512

// Kind is the error taxonomy a client reports in.
type Kind int

const (
	// Generation maps failures onto ErrGenerationUnavailable and
	// ErrGenerationTimeout, which the pipeline retries.
	Generation Kind = iota

	// Embedding maps every failure onto ErrEmbeddingUnavailable, which
	// only disables retrieval.
	Embedding

	// Search maps every failure onto ErrSearchUnavailable, which only drops
	// web results from research.
	Search
)

func (k Kind) unavailable() error {
	switch k {
	case Embedding:
		return domain.ErrEmbeddingUnavailable
	case Search:
		return domain.ErrSearchUnavailable
	default:
		return domain.ErrGenerationUnavailable
	}
}

func (k Kind) timeout() error {
	if k == Generation {
		return domain.ErrGenerationTimeout
	}
	return k.unavailable()
}

// Transport maps a failed round trip. Caller cancellation passes through.
func (k Kind) Transport(provider string, err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, context.DeadlineExceeded), isTimeout(err):
		return fmt.Errorf("%s: %w: %v", provider, k.timeout(), err)
	default:
		return fmt.Errorf("%s: %w: %v", provider, k.unavailable(), err)
	}
}

// Status maps a non-200 response.
func (k Kind) Status(provider string, status int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	if len(msg) > maxErrorBody {
		msg = msg[:maxErrorBody] + "..."
	}
	switch status {
	case http.StatusTooManyRequests:
		return fmt.Errorf("%s error (status %d): %w: %w: %s",
			provider, status, k.unavailable(), domain.ErrRateLimited, msg)
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return fmt.Errorf("%s error (status %d): %w: %s", provider, status, k.timeout(), msg)
	default:
		return fmt.Errorf("%s error (status %d): %w: %s", provider, status, k.unavailable(), msg)
	}
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
