package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rmayank-24/MarketForgeAI/internal/adapters/driving/tui/styles"
	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
)

// RunGeneration runs fn while showing live stage progress. It returns
// once fn has returned, so cancellation never leaves the run detached.
func RunGeneration(ctx context.Context, idea string, fn RunFunc, opts ...tea.ProgramOption) (*domain.LaunchKit, error) {
	if fn == nil {
		return nil, ErrMissingRunFunc
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	gen := startGeneration(runCtx, fn)
	model := newGenerationModel(styles.DefaultStyles(), idea, gen, cancel)

	_, err := tea.NewProgram(model, opts...).Run()
	cancel()
	<-gen.done

	if err != nil {
		return nil, fmt.Errorf("running progress view: %w", err)
	}
	return gen.kit, gen.err
}

// ViewKit opens a full screen pager over a saved launch kit.
func ViewKit(record *domain.KitRecord, opts ...tea.ProgramOption) error {
	if record == nil {
		return ErrMissingRecord
	}

	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	if _, err := tea.NewProgram(NewKitViewer(record), opts...).Run(); err != nil {
		return fmt.Errorf("running kit viewer: %w", err)
	}
	return nil
}
