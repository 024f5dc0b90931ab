package tui

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmayank-24/MarketForgeAI/internal/adapters/driving/tui/messages"
	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
)

func headless() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithInput(nil),
		tea.WithOutput(&bytes.Buffer{}),
		tea.WithoutSignalHandler(),
	}
}

func testKit() *domain.LaunchKit {
	return &domain.LaunchKit{
		MarketAnalysis: "analysis",
		ProductCopy:    "copy",
		AdCopy:         "ads",
	}
}

func allStagesRun(kit *domain.LaunchKit) RunFunc {
	return func(_ context.Context, onStage func(domain.StageEvent)) (*domain.LaunchKit, error) {
		for _, stage := range domain.Stages {
			onStage(domain.StageEvent{Stage: stage, Status: domain.StageStarted, Attempt: 1})
			onStage(domain.StageEvent{Stage: stage, Status: domain.StageSucceeded, Attempt: 1})
		}
		return kit, nil
	}
}

func TestStartGeneration_DeliversEventsThenOutcome(t *testing.T) {
	gen := startGeneration(context.Background(), allStagesRun(testKit()))
	wait := gen.wait()

	var progressCount int
	for {
		msg := wait()
		if done, ok := msg.(messages.GenerationDone); ok {
			assert.True(t, done.Succeeded())
			break
		}
		_, ok := msg.(messages.StageProgress)
		require.True(t, ok)
		progressCount++
	}
	assert.Equal(t, 2*len(domain.Stages), progressCount)
}

func TestStartGeneration_CancelledContextDropsEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := startGeneration(ctx, allStagesRun(testKit()))

	select {
	case <-gen.done:
	case <-time.After(time.Second):
		t.Fatal("run blocked on an unread event")
	}
	assert.NotNil(t, gen.kit)
}

func TestGenerationModel_CancelKey(t *testing.T) {
	var cancelled bool
	gen := &generation{events: make(chan domain.StageEvent), done: make(chan struct{})}
	model := newGenerationModel(nil, "idea", gen, func() { cancelled = true })

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Nil(t, cmd)
	assert.True(t, cancelled)
	assert.True(t, model.cancelling)
	assert.Contains(t, model.View(), "Cancelling")

	_, cmd = model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestGenerationModel_IgnoresOtherKeys(t *testing.T) {
	gen := &generation{events: make(chan domain.StageEvent), done: make(chan struct{})}
	model := newGenerationModel(nil, "idea", gen, func() { t.Fatal("unexpected cancel") })

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Nil(t, cmd)
	assert.False(t, model.cancelling)
}

func TestGenerationModel_DoneQuits(t *testing.T) {
	gen := &generation{events: make(chan domain.StageEvent), done: make(chan struct{})}
	model := newGenerationModel(nil, "idea", gen, func() {})

	_, ok := model.Result()
	assert.False(t, ok)

	_, cmd := model.Update(messages.GenerationDone{Kit: testKit()})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	result, ok := model.Result()
	require.True(t, ok)
	assert.True(t, result.Succeeded())
}

func TestRunGeneration_Success(t *testing.T) {
	kit := testKit()

	got, err := RunGeneration(context.Background(), "idea", allStagesRun(kit), headless()...)

	require.NoError(t, err)
	assert.Same(t, kit, got)
}

func TestRunGeneration_Failure(t *testing.T) {
	want := &domain.StageError{Stage: domain.StageAdCopy, Attempts: 3, Cause: domain.ErrGenerationUnavailable}
	run := func(_ context.Context, onStage func(domain.StageEvent)) (*domain.LaunchKit, error) {
		onStage(domain.StageEvent{Stage: domain.StageAdCopy, Status: domain.StageFailed, Attempt: 3, Err: want})
		return nil, want
	}

	got, err := RunGeneration(context.Background(), "idea", run, headless()...)

	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrGenerationUnavailable)
}

func TestRunGeneration_ParentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	run := func(ctx context.Context, _ func(domain.StageEvent)) (*domain.LaunchKit, error) {
		cancel()
		<-ctx.Done()
		return nil, ctx.Err()
	}

	_, err := RunGeneration(ctx, "idea", run, headless()...)

	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRunGeneration_NilRunFunc(t *testing.T) {
	_, err := RunGeneration(context.Background(), "idea", nil)
	assert.ErrorIs(t, err, ErrMissingRunFunc)
}

func TestViewKit_NilRecord(t *testing.T) {
	assert.ErrorIs(t, ViewKit(nil), ErrMissingRecord)
}

func TestKitViewer(t *testing.T) {
	record := &domain.KitRecord{ID: "kit-1", Idea: "Eco wraps", Kit: *testKit()}
	viewer := NewKitViewer(record)

	assert.NotNil(t, viewer.Init())

	model, _ := viewer.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Contains(t, model.View(), "Eco wraps")

	_, cmd := viewer.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
