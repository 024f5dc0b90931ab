package google

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
	"google.golang.org/api/calendar/v3"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
)

// OAuthConfig returns the OAuth client configuration for calendar event
// access. redirectURL may be empty when only refreshing tokens.
func OAuthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     endpoints.Google,
		RedirectURL:  redirectURL,
		Scopes:       []string{calendar.CalendarEventsScope},
	}
}

// NewTokenSource returns a token source that exchanges the stored refresh
// token for access tokens and caches them until expiry.
func NewTokenSource(ctx context.Context, settings domain.CalendarSettings) (oauth2.TokenSource, error) {
	if !settings.IsConfigured() {
		return nil, domain.ErrCalendarNotConfigured
	}
	cfg := OAuthConfig(settings.ClientID, settings.ClientSecret, "")
	return cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: settings.RefreshToken}), nil
}

// AuthFlow drives the authorisation code exchange with PKCE.
type AuthFlow struct {
	config   *oauth2.Config
	state    string
	verifier string
}

// NewAuthFlow prepares an authorisation request redirecting to redirectURL.
func NewAuthFlow(clientID, clientSecret, redirectURL, state string) (*AuthFlow, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("calendar client id and secret are required: %w", domain.ErrCalendarNotConfigured)
	}
	return &AuthFlow{
		config:   OAuthConfig(clientID, clientSecret, redirectURL),
		state:    state,
		verifier: oauth2.GenerateVerifier(),
	}, nil
}

// AuthCodeURL returns the consent page URL. Offline access and a forced
// consent prompt make Google issue a refresh token on every run.
func (f *AuthFlow) AuthCodeURL() string {
	return f.config.AuthCodeURL(f.state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
		oauth2.S256ChallengeOption(f.verifier),
	)
}

// Exchange trades the authorisation code for tokens and returns the
// refresh token.
func (f *AuthFlow) Exchange(ctx context.Context, code string) (string, error) {
	token, err := f.config.Exchange(ctx, code, oauth2.VerifierOption(f.verifier))
	if err != nil {
		return "", fmt.Errorf("exchange authorisation code: %w", err)
	}
	if token.RefreshToken == "" {
		return "", fmt.Errorf("google returned no refresh token: %w", domain.ErrAuthRequired)
	}
	return token.RefreshToken, nil
}
