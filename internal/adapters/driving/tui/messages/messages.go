// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
)

// StageProgress carries one pipeline progress event.
type StageProgress struct {
	Event domain.StageEvent
}

// GenerationDone is sent once when the launch kit run finishes.
type GenerationDone struct {
	Kit *domain.LaunchKit
	Err error
}

// Succeeded reports whether the run produced a kit.
func (m GenerationDone) Succeeded() bool {
	return m.Err == nil && m.Kit != nil
}
