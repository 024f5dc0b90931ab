// Package cli provides the cobra command tree for marketforge.
// It implements a driving adapter following hexagonal architecture principles.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
	"github.com/rmayank-24/MarketForgeAI/internal/core/ports/driving"
	"github.com/rmayank-24/MarketForgeAI/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

// LaunchKitFactory builds the generation service. It is called on first
// use so commands that only read history work without an LLM configured.
// The returned release func frees provider connections.
type LaunchKitFactory func(ctx context.Context) (driving.LaunchKitService, func(), error)

// Services holds the core services the commands drive.
type Services struct {
	LaunchKit LaunchKitFactory
	Scheduler driving.ScheduleService
	History   driving.HistoryService
	Publish   driving.PublishService
	Settings  driving.SettingsService

	// WatchPrompts reloads prompt templates until ctx ends. Long-running
	// servers call it; nil disables hot reload.
	WatchPrompts func(ctx context.Context) error
}

var (
	launchKitFactory LaunchKitFactory
	scheduleService  driving.ScheduleService
	historyService   driving.HistoryService
	publishService   driving.PublishService
	settingsService  driving.SettingsService
	watchPrompts     func(ctx context.Context) error
)

// SetServices injects the services used by every command.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	launchKitFactory = s.LaunchKit
	scheduleService = s.Scheduler
	historyService = s.History
	publishService = s.Publish
	settingsService = s.Settings
	watchPrompts = s.WatchPrompts
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

var rootCmd = &cobra.Command{
	Use:   "marketforge",
	Short: "Generate product launch kits with an LLM",
	Long: `MarketForge turns a one-line product idea into a launch kit:
market analysis, product copy, ad copy and a five-day social calendar.

Attach a PDF, DOCX or text document with --doc to ground the market
research in your own material.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// newLaunchKit resolves the generation service from the factory.
func newLaunchKit(ctx context.Context) (driving.LaunchKitService, func(), error) {
	if launchKitFactory == nil {
		return nil, nil, errors.New("launch kit service not configured")
	}
	svc, release, err := launchKitFactory(ctx)
	if err != nil {
		return nil, nil, err
	}
	if release == nil {
		release = func() {}
	}
	return svc, release, nil
}

// describeError adds a hint for failures a user can act on.
func describeError(err error) error {
	switch {
	case errors.Is(err, domain.ErrEmptyIdea):
		return fmt.Errorf("%w: describe your product in a sentence", err)
	case errors.Is(err, domain.ErrCalendarNotConfigured):
		return fmt.Errorf("%w. Run 'marketforge calendar auth' first", err)
	case errors.Is(err, domain.ErrAuthRequired):
		return fmt.Errorf("%w. Run 'marketforge calendar auth' to sign in again", err)
	}
	return err
}
