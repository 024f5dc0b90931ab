package services

import (
	"slices"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
)

// AssembleLaunchKit combines the stage outputs and schedule into a kit.
// The kit owns copies of every slice.
func AssembleLaunchKit(outputs domain.StageOutputs, schedule []domain.ScheduleItem) *domain.LaunchKit {
	return &domain.LaunchKit{
		MarketAnalysis: outputs.MarketAnalysis,
		ProductCopy:    outputs.ProductCopy,
		AdCopy:         outputs.AdCopy,
		SocialPosts:    slices.Clone(outputs.SocialPosts),
		Schedule:       slices.Clone(schedule),
	}
}
