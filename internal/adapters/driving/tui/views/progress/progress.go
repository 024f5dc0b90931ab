// Package progress provides the stage progress view shown while a launch
// kit is generated.
package progress

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rmayank-24/MarketForgeAI/internal/adapters/driving/tui/messages"
	"github.com/rmayank-24/MarketForgeAI/internal/adapters/driving/tui/styles"
	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
)

// stageState is the display state of one stage.
type stageState int

const (
	statePending stageState = iota
	stateRunning
	stateRetrying
	stateDone
	stateFailed
)

// View renders a checklist of pipeline stages with a spinner on the
// active one.
type View struct {
	styles     *styles.Styles
	spinner    spinner.Model
	idea       string
	states     map[domain.Stage]stageState
	attempts   map[domain.Stage]int
	cancelling bool
	finished   bool
	err        error
	width      int
}

// NewView creates a progress view for idea.
func NewView(s *styles.Styles, idea string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(s.Title.UnsetMarginBottom()),
	)

	states := make(map[domain.Stage]stageState, len(domain.Stages))
	for _, stage := range domain.Stages {
		states[stage] = statePending
	}

	return &View{
		styles:   s,
		spinner:  sp,
		idea:     idea,
		states:   states,
		attempts: make(map[domain.Stage]int),
		width:    80,
	}
}

// Init starts the spinner.
func (v *View) Init() tea.Cmd {
	return v.spinner.Tick
}

// Update handles progress, completion and spinner messages.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		return v, nil

	case messages.StageProgress:
		v.apply(msg.Event)
		return v, nil

	case messages.GenerationDone:
		v.finished = true
		v.err = msg.Err
		if msg.Succeeded() {
			for _, stage := range domain.Stages {
				v.states[stage] = stateDone
			}
		}
		return v, nil

	case spinner.TickMsg:
		if v.finished {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	}

	return v, nil
}

func (v *View) apply(ev domain.StageEvent) {
	if ev.Attempt > 0 {
		v.attempts[ev.Stage] = ev.Attempt
	}
	switch ev.Status {
	case domain.StageStarted:
		if v.states[ev.Stage] != stateRetrying {
			v.states[ev.Stage] = stateRunning
		}
	case domain.StageRetrying:
		v.states[ev.Stage] = stateRetrying
	case domain.StageSucceeded:
		v.states[ev.Stage] = stateDone
	case domain.StageFailed:
		v.states[ev.Stage] = stateFailed
	}
}

// SetCancelling marks the run as being cancelled by the user.
func (v *View) SetCancelling() {
	v.cancelling = true
}

// Finished reports whether the run has completed.
func (v *View) Finished() bool {
	return v.finished
}

// View renders the checklist.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("MarketForge"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("Building a launch kit for %q", truncate(v.idea, v.width-30))))
	b.WriteString("\n\n")

	for _, stage := range domain.Stages {
		b.WriteString("  ")
		b.WriteString(v.renderStage(stage))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case v.finished && v.err != nil:
		b.WriteString(v.styles.Error.Render("Failed: " + v.err.Error()))
	case v.finished:
		b.WriteString(v.styles.Success.Render("Launch kit ready"))
	case v.cancelling:
		b.WriteString(v.styles.Warning.Render("Cancelling..."))
	default:
		b.WriteString(v.styles.Help.Render("ctrl+c cancel"))
	}
	b.WriteString("\n")

	return b.String()
}

func (v *View) renderStage(stage domain.Stage) string {
	title := stage.Title()
	switch v.states[stage] {
	case stateRunning:
		return v.spinner.View() + " " + v.styles.Normal.Render(title)
	case stateRetrying:
		return v.spinner.View() + " " + v.styles.Warning.Render(fmt.Sprintf("%s (attempt %d)", title, v.attempts[stage]))
	case stateDone:
		return v.styles.Done(title)
	case stateFailed:
		return v.styles.Failed(title)
	default:
		return v.styles.Pending(title)
	}
}

// truncate shortens s to at most n runes, keeping at least 20.
func truncate(s string, n int) string {
	if n < 20 {
		n = 20
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
