package tavily

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
)

func TestNew(t *testing.T) {
	_, err := New(Config{})
	assert.ErrorIs(t, err, domain.ErrSearchUnavailable)

	s, err := New(Config{APIKey: "tvly-key"})
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, s.api.BaseURL())
	assert.Equal(t, DefaultTimeout, s.api.Timeout())
}

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Bearer tvly-key", r.Header.Get("Authorization"))

		var req searchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "reusable food wraps market", req.Query)
		assert.Equal(t, 2, req.MaxResults)
		assert.Equal(t, "basic", req.SearchDepth)

		_, _ = w.Write([]byte(`{"results":[
			{"title":" Wrap trends ","url":"https://a.example","content":"Demand is growing.","score":0.9},
			{"title":"Empty","url":"https://b.example","content":"  "},
			{"title":"Pricing","url":"https://c.example","content":"Packs sell for $20.","score":0.7},
			{"title":"Extra","url":"https://d.example","content":"Over the limit."}
		]}`))
	}))
	defer srv.Close()

	s, err := New(Config{APIKey: "tvly-key", BaseURL: srv.URL})
	require.NoError(t, err)

	got, err := s.Search(context.Background(), "  reusable food wraps market ", 2)
	require.NoError(t, err)
	assert.Equal(t, []domain.WebResult{
		{Title: "Wrap trends", URL: "https://a.example", Content: "Demand is growing."},
		{Title: "Pricing", URL: "https://c.example", Content: "Packs sell for $20."},
	}, got)
}

func TestSearch_NoQuery(t *testing.T) {
	s, err := New(Config{APIKey: "tvly-key", BaseURL: "http://127.0.0.1:1"})
	require.NoError(t, err)

	got, err := s.Search(context.Background(), "   ", 4)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = s.Search(context.Background(), "wraps", 0)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSearch_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"detail":{"error":"Unauthorized: missing or invalid API key."}}`},
		{"rate limited", http.StatusTooManyRequests, `{}`},
		{"error body", http.StatusOK, `{"detail":{"error":"query is too long"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			s, err := New(Config{APIKey: "tvly-key", BaseURL: srv.URL})
			require.NoError(t, err)

			_, err = s.Search(context.Background(), "wraps", 4)
			assert.ErrorIs(t, err, domain.ErrSearchUnavailable)
		})
	}
}
