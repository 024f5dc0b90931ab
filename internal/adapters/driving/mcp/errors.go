// Package mcp provides an MCP (Model Context Protocol) server adapter for
// MarketForge. It lets AI assistants generate launch kits, derive posting
// schedules and browse saved kits.
package mcp

import "errors"

// ErrMissingLaunchKitService is returned when the launch kit service is not provided.
var ErrMissingLaunchKitService = errors.New("mcp: launch kit service is required")
