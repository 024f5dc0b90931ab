// Command marketforge generates product launch kits from the terminal or
// serves them to AI assistants over MCP.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rmayank-24/MarketForgeAI/internal/adapters/driven/ai"
	googlecal "github.com/rmayank-24/MarketForgeAI/internal/adapters/driven/calendar/google"
	"github.com/rmayank-24/MarketForgeAI/internal/adapters/driven/config/file"
	"github.com/rmayank-24/MarketForgeAI/internal/adapters/driven/storage/sqlite"
	"github.com/rmayank-24/MarketForgeAI/internal/adapters/driven/vector/memory"
	"github.com/rmayank-24/MarketForgeAI/internal/adapters/driving/cli"
	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
	"github.com/rmayank-24/MarketForgeAI/internal/core/ports/driven"
	"github.com/rmayank-24/MarketForgeAI/internal/core/ports/driving"
	"github.com/rmayank-24/MarketForgeAI/internal/core/services"
	"github.com/rmayank-24/MarketForgeAI/internal/logger"
	"github.com/rmayank-24/MarketForgeAI/internal/normalisers"
	"github.com/rmayank-24/MarketForgeAI/internal/postprocessors/chunker"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	closeFn, err := wire(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "marketforge: %v\n", err)
		return 1
	}
	defer closeFn()

	cli.SetVersion(version)
	if err := cli.Execute(ctx); err != nil {
		return 1
	}
	return 0
}

// wire builds the adapters and services and hands them to the CLI.
func wire(ctx context.Context) (func(), error) {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	prompts, err := file.NewPromptStore("", services.DefaultPrompts())
	if err != nil {
		return nil, fmt.Errorf("loading prompts: %w", err)
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}
	history := services.NewHistoryService(store.LaunchKitStore())

	scheduler, err := services.NewScheduler(settings.Schedule.PostingTime)
	if err != nil {
		store.Close()
		return nil, err
	}

	var publisher driven.CalendarPublisher
	if settings.Calendar.IsConfigured() {
		p, err := googlecal.New(ctx, settings.Calendar)
		if err != nil {
			logger.Warn("calendar publishing disabled: %v", err)
		} else {
			publisher = p
		}
	}

	cli.SetServices(&cli.Services{
		LaunchKit: launchKitFactory(settings, prompts, scheduler),
		Scheduler: scheduler,
		History:   history,
		Publish:   services.NewPublishService(history, publisher, scheduler),
		Settings:  settingsService,
		WatchPrompts: func(ctx context.Context) error {
			if err := os.MkdirAll(prompts.Dir(), 0o700); err != nil {
				return err
			}
			w, err := file.NewPromptWatcher(prompts, prompts.Dir())
			if err != nil {
				return err
			}
			return w.Run(ctx)
		},
	})

	return func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing history: %v", err)
		}
	}, nil
}

// launchKitFactory connects to the configured AI and search providers on demand.
func launchKitFactory(settings *domain.AppSettings, prompts driven.PromptStore, scheduler *services.Scheduler) cli.LaunchKitFactory {
	return func(ctx context.Context) (driving.LaunchKitService, func(), error) {
		res, err := ai.Init(ctx, settings)
		if err != nil {
			return nil, nil, err
		}
		for _, w := range res.Warnings {
			logger.Warn("%s", w)
		}

		retriever := services.NewRetriever(
			normalisers.DefaultRegistry(),
			chunker.FromSettings(settings.Retrieval),
			res.EmbeddingService,
			memory.Factory(),
			settings.Retrieval,
		)
		research := services.NewWebResearcher(res.WebSearch, settings.WebSearch, settings.Retrieval.MaxContextChars)
		pipeline := services.NewPipeline(res.LLMService, prompts, settings.Pipeline)

		return services.NewLaunchKitService(retriever, research, pipeline, scheduler), res.Close, nil
	}
}
