package mcp

import (
	"github.com/rmayank-24/MarketForgeAI/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// LaunchKit generates kits and schedules.
	LaunchKit driving.LaunchKitService

	// History stores generated kits. Optional; without it kits are not
	// saved and the kit resources are empty.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.LaunchKit == nil {
		return ErrMissingLaunchKitService
	}
	return nil
}
