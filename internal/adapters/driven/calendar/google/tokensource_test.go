package google

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
)

func TestOAuthConfig(t *testing.T) {
	cfg := OAuthConfig("id", "secret", "http://localhost:8765/callback")

	assert.Equal(t, "id", cfg.ClientID)
	assert.Equal(t, "secret", cfg.ClientSecret)
	assert.Equal(t, "http://localhost:8765/callback", cfg.RedirectURL)
	assert.Equal(t, []string{calendar.CalendarEventsScope}, cfg.Scopes)
	assert.Contains(t, cfg.Endpoint.TokenURL, "googleapis.com")
}

func TestNewTokenSource(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		ts, err := NewTokenSource(context.Background(), domain.CalendarSettings{})
		assert.ErrorIs(t, err, domain.ErrCalendarNotConfigured)
		assert.Nil(t, ts)
	})

	t.Run("configured", func(t *testing.T) {
		ts, err := NewTokenSource(context.Background(), domain.CalendarSettings{
			ClientID: "id", ClientSecret: "secret", RefreshToken: "refresh",
		})
		require.NoError(t, err)
		assert.NotNil(t, ts)
	})
}

func TestNewAuthFlow_RequiresClient(t *testing.T) {
	_, err := NewAuthFlow("", "secret", "http://localhost/callback", "state")
	assert.ErrorIs(t, err, domain.ErrCalendarNotConfigured)
}

func TestAuthFlow_AuthCodeURL(t *testing.T) {
	flow, err := NewAuthFlow("id", "secret", "http://localhost:8765/callback", "state-123")
	require.NoError(t, err)

	u, err := url.Parse(flow.AuthCodeURL())
	require.NoError(t, err)
	q := u.Query()

	assert.Equal(t, "state-123", q.Get("state"))
	assert.Equal(t, "offline", q.Get("access_type"))
	assert.Equal(t, "consent", q.Get("prompt"))
	assert.Equal(t, "S256", q.Get("code_challenge_method"))
	assert.Equal(t, oauth2.S256ChallengeFromVerifier(flow.verifier), q.Get("code_challenge"))
	assert.Equal(t, calendar.CalendarEventsScope, q.Get("scope"))
	assert.Equal(t, "http://localhost:8765/callback", q.Get("redirect_uri"))
}

func TestAuthFlow_Exchange(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr error
	}{
		{
			name: "refresh token issued",
			body: `{"access_token":"access","refresh_token":"refresh","token_type":"Bearer","expires_in":3600}`,
			want: "refresh",
		},
		{
			name:    "no refresh token",
			body:    `{"access_token":"access","token_type":"Bearer","expires_in":3600}`,
			wantErr: domain.ErrAuthRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var form url.Values
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.NoError(t, r.ParseForm())
				form = r.PostForm
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			flow, err := NewAuthFlow("id", "secret", "http://localhost/callback", "state")
			require.NoError(t, err)
			flow.config.Endpoint = oauth2.Endpoint{TokenURL: srv.URL, AuthStyle: oauth2.AuthStyleInParams}

			token, err := flow.Exchange(context.Background(), "the-code")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, token)
			assert.Equal(t, "the-code", form.Get("code"))
			assert.Equal(t, flow.verifier, form.Get("code_verifier"))
			assert.Equal(t, "authorization_code", form.Get("grant_type"))
		})
	}
}

func TestWrapError(t *testing.T) {
	assert.NoError(t, wrapError(nil))

	rerr := &oauth2.RetrieveError{ErrorCode: "invalid_grant"}
	assert.ErrorIs(t, wrapError(rerr), domain.ErrAuthRequired)

	plain := errors.New("boom")
	assert.ErrorIs(t, wrapError(plain), plain)
}
