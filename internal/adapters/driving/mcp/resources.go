package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for MarketForge resources.
	uriScheme = "marketforge://"

	jsonMIME = "application/json"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "kits",
		Name:        "launch-kits",
		Description: "Saved launch kits, newest first",
		MIMEType:    jsonMIME,
	}, s.handleKitsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "kits/{kitId}",
		Name:        "launch-kit",
		Description: "A saved launch kit",
		MIMEType:    jsonMIME,
	}, s.handleKitResource)
}

// handleKitsResource returns the saved kit listing.
func (s *Server) handleKitsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return jsonResult(req.Params.URI, "[]"), nil
	}

	summaries, err := s.ports.History.List(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("listing launch kits: %w", err)
	}

	data, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling launch kits: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

// handleKitResource returns one saved kit in its JSON contract shape.
func (s *Server) handleKitResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	kitID := extractKitID(req.Params.URI)
	if kitID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	record, err := s.ports.History.Get(ctx, kitID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting launch kit: %w", err)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling launch kit: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

func jsonResult(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: jsonMIME,
			Text:     text,
		}},
	}
}

// extractKitID extracts the kit ID from a URI like marketforge://kits/{kitId}.
func extractKitID(uri string) string {
	const prefix = uriScheme + "kits/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
