// Package tui provides the terminal user interface for marketforge.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rmayank-24/MarketForgeAI/internal/adapters/driving/tui/keymap"
	"github.com/rmayank-24/MarketForgeAI/internal/adapters/driving/tui/messages"
	"github.com/rmayank-24/MarketForgeAI/internal/adapters/driving/tui/styles"
	"github.com/rmayank-24/MarketForgeAI/internal/adapters/driving/tui/views/kitview"
	"github.com/rmayank-24/MarketForgeAI/internal/adapters/driving/tui/views/progress"
	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
)

// RunFunc produces a launch kit, reporting stage progress through onStage.
type RunFunc func(ctx context.Context, onStage func(domain.StageEvent)) (*domain.LaunchKit, error)

// generation runs a RunFunc in the background and exposes its progress
// as a stream of events followed by a single outcome.
type generation struct {
	events chan domain.StageEvent
	done   chan struct{}

	kit *domain.LaunchKit
	err error
}

// startGeneration launches run. Events are dropped once ctx is cancelled
// so the producer never blocks on a reader that has gone away.
func startGeneration(ctx context.Context, run RunFunc) *generation {
	g := &generation{
		events: make(chan domain.StageEvent),
		done:   make(chan struct{}),
	}

	onStage := func(ev domain.StageEvent) {
		select {
		case g.events <- ev:
		case <-ctx.Done():
		}
	}

	go func() {
		defer close(g.done)
		g.kit, g.err = run(ctx, onStage)
	}()

	return g
}

// wait returns a command that delivers the next progress message.
func (g *generation) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case ev := <-g.events:
			return messages.StageProgress{Event: ev}
		case <-g.done:
			return messages.GenerationDone{Kit: g.kit, Err: g.err}
		}
	}
}

// GenerationModel shows pipeline progress until the run finishes.
// It implements tea.Model for use with Bubbletea.
type GenerationModel struct {
	keymap   *keymap.KeyMap
	progress *progress.View
	gen      *generation
	cancel   context.CancelFunc

	cancelling bool
	result     *messages.GenerationDone
}

// Ensure GenerationModel implements tea.Model.
var _ tea.Model = (*GenerationModel)(nil)

func newGenerationModel(s *styles.Styles, idea string, gen *generation, cancel context.CancelFunc) *GenerationModel {
	return &GenerationModel{
		keymap:   keymap.DefaultKeyMap(),
		progress: progress.NewView(s, idea),
		gen:      gen,
		cancel:   cancel,
	}
}

// Init implements tea.Model.
func (m *GenerationModel) Init() tea.Cmd {
	return tea.Batch(m.progress.Init(), m.gen.wait())
}

// Update implements tea.Model.
func (m *GenerationModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !key.Matches(msg, m.keymap.Cancel) {
			return m, nil
		}
		// A second press stops waiting for the run to unwind.
		if m.cancelling {
			return m, tea.Quit
		}
		m.cancelling = true
		m.cancel()
		m.progress.SetCancelling()
		return m, nil

	case messages.StageProgress:
		m.progress, cmd = m.progress.Update(msg)
		return m, tea.Batch(cmd, m.gen.wait())

	case messages.GenerationDone:
		m.result = &msg
		m.progress, _ = m.progress.Update(msg)
		return m, tea.Quit
	}

	m.progress, cmd = m.progress.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *GenerationModel) View() string {
	return m.progress.View() + "\n"
}

// Result returns the outcome once the run has finished.
func (m *GenerationModel) Result() (*messages.GenerationDone, bool) {
	return m.result, m.result != nil
}

// KitViewer wraps the kit viewer as a tea.Model.
type KitViewer struct {
	view *kitview.View
}

// Ensure KitViewer implements tea.Model.
var _ tea.Model = (*KitViewer)(nil)

// NewKitViewer creates a pager for record.
func NewKitViewer(record *domain.KitRecord) *KitViewer {
	return &KitViewer{view: kitview.NewView(styles.DefaultStyles(), keymap.DefaultKeyMap(), record)}
}

// Init implements tea.Model.
func (k *KitViewer) Init() tea.Cmd {
	return tea.SetWindowTitle("marketforge")
}

// Update implements tea.Model.
func (k *KitViewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	k.view, cmd = k.view.Update(msg)
	return k, cmd
}

// View implements tea.Model.
func (k *KitViewer) View() string {
	return k.view.View()
}
