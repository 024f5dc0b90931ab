package google

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
)

// ErrForbidden indicates the account lacks write access to the calendar.
var ErrForbidden = errors.New("google calendar: forbidden (insufficient permissions)")

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, domain.ErrRateLimited) {
		return true
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusTooManyRequests
	}
	return false
}

// retryAfter returns the Retry-After seconds carried by a googleapi error.
func retryAfter(err error) int {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) || gerr.Header == nil {
		return 0
	}
	secs, convErr := strconv.Atoi(gerr.Header.Get("Retry-After"))
	if convErr != nil {
		return 0
	}
	return secs
}

// wrapError converts Google API and token errors to domain errors.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		return fmt.Errorf("google calendar: refresh token rejected (%s): %w", rerr.ErrorCode, domain.ErrAuthRequired)
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return fmt.Errorf("google calendar: %w", err)
	}

	switch gerr.Code {
	case http.StatusUnauthorized:
		return fmt.Errorf("google calendar: %w", domain.ErrAuthRequired)
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return fmt.Errorf("google calendar: calendar %w", domain.ErrNotFound)
	case http.StatusTooManyRequests:
		return fmt.Errorf("google calendar: %w", domain.ErrRateLimited)
	default:
		return fmt.Errorf("google calendar: %w", err)
	}
}
