package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
)

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uri}}
}

func TestExtractKitID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{"valid kit URI", "marketforge://kits/kit-123", "kit-123"},
		{"invalid prefix", "file://kits/kit-123", ""},
		{"nested path", "marketforge://kits/kit-123/extra", ""},
		{"listing URI", "marketforge://kits", ""},
		{"empty URI", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractKitID(tt.uri))
		})
	}
}

func TestServer_handleKitsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("without history", func(t *testing.T) {
		server := newTestServer(t, &mockLaunchKitService{}, nil)

		result, err := server.handleKitsResource(ctx, readRequest("marketforge://kits"))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("lists kits", func(t *testing.T) {
		history := &mockHistoryService{summaries: []domain.KitSummary{
			{ID: "k1", Idea: "Eco wraps", CreatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		}}
		server := newTestServer(t, &mockLaunchKitService{}, history)

		result, err := server.handleKitsResource(ctx, readRequest("marketforge://kits"))
		require.NoError(t, err)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)

		var got []domain.KitSummary
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &got))
		assert.Equal(t, history.summaries, got)
		assert.Zero(t, history.gotLimit)
	})
}

func TestServer_handleKitResource(t *testing.T) {
	ctx := context.Background()
	record := &domain.KitRecord{ID: "k1", Idea: "Eco wraps", Kit: *sampleKit()}

	t.Run("returns the kit", func(t *testing.T) {
		history := &mockHistoryService{records: map[string]*domain.KitRecord{"k1": record}}
		server := newTestServer(t, &mockLaunchKitService{}, history)

		result, err := server.handleKitResource(ctx, readRequest("marketforge://kits/k1"))
		require.NoError(t, err)

		var got map[string]any
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &got))
		assert.Equal(t, "k1", got["id"])
		kit, ok := got["kit"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "analysis", kit["market_analysis"])
		assert.Len(t, kit["social_posts"], 5)
	})

	t.Run("unknown kit", func(t *testing.T) {
		server := newTestServer(t, &mockLaunchKitService{}, &mockHistoryService{})

		_, err := server.handleKitResource(ctx, readRequest("marketforge://kits/missing"))
		assert.Error(t, err)
	})

	t.Run("malformed URI", func(t *testing.T) {
		server := newTestServer(t, &mockLaunchKitService{}, &mockHistoryService{})

		_, err := server.handleKitResource(ctx, readRequest("marketforge://other/k1"))
		assert.Error(t, err)
	})

	t.Run("without history", func(t *testing.T) {
		server := newTestServer(t, &mockLaunchKitService{}, nil)

		_, err := server.handleKitResource(ctx, readRequest("marketforge://kits/k1"))
		assert.Error(t, err)
	})
}
