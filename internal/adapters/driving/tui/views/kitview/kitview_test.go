package kitview

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
)

func testRecord() *domain.KitRecord {
	schedule := make([]domain.ScheduleItem, domain.PostCount)
	posts := make([]string, domain.PostCount)
	for i := range schedule {
		posts[i] = fmt.Sprintf("Post number %d about wraps", i+1)
		schedule[i] = domain.ScheduleItem{Day: fmt.Sprintf("Day %d", i+1), Time: "10:00", Content: posts[i]}
	}
	return &domain.KitRecord{
		ID:        "kit-1",
		Idea:      "Eco wraps",
		CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Kit: domain.LaunchKit{
			MarketAnalysis: strings.Repeat("Analysis line. ", 40),
			ProductCopy:    "Keep food fresh without plastic.",
			AdCopy:         "Wrap it. Love it.",
			SocialPosts:    posts,
			Schedule:       schedule,
		},
	}
}

func TestNewView(t *testing.T) {
	view := NewView(nil, nil, testRecord())

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.NotNil(t, view.keymap)
	assert.False(t, view.ready)
	assert.Equal(t, "Initialising...", view.View())
}

func TestView_Update_WindowSize(t *testing.T) {
	view := NewView(nil, nil, testRecord())

	updated, cmd := view.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.True(t, view.ready)
	assert.Equal(t, 100, view.viewport.Width)
	assert.Equal(t, 30-chromeHeight, view.viewport.Height)
}

func TestView_Update_Keys(t *testing.T) {
	t.Run("quit", func(t *testing.T) {
		view := NewView(nil, nil, testRecord())
		view.SetDimensions(80, 10)

		_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	})

	t.Run("help toggles", func(t *testing.T) {
		view := NewView(nil, nil, testRecord())
		view.SetDimensions(80, 10)

		view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
		assert.True(t, view.help.ShowAll)
		view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
		assert.False(t, view.help.ShowAll)
	})

	t.Run("bottom and top", func(t *testing.T) {
		view := NewView(nil, nil, testRecord())
		view.SetDimensions(60, 10)

		view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")})
		assert.True(t, view.viewport.AtBottom())
		view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
		assert.True(t, view.viewport.AtTop())
	})

	t.Run("down scrolls", func(t *testing.T) {
		view := NewView(nil, nil, testRecord())
		view.SetDimensions(60, 10)

		view.Update(tea.KeyMsg{Type: tea.KeyDown})
		assert.Equal(t, 1, view.viewport.YOffset)
	})
}

func TestView_View(t *testing.T) {
	view := NewView(nil, nil, testRecord())
	view.SetDimensions(80, 40)

	out := view.View()
	assert.Contains(t, out, "MarketForge")
	assert.Contains(t, out, "Eco wraps")
	assert.Contains(t, out, "Market analysis")
	assert.Contains(t, out, "%")
}

func TestRender(t *testing.T) {
	out := Render(testRecord(), nil, 80)

	for _, want := range []string{
		"Market analysis", "Product copy", "Ad copy", "Social calendar",
		"Keep food fresh without plastic.", "Wrap it. Love it.",
		"Day 1", "Day 5", "at 10:00", "Post number 3 about wraps", "kit-1",
	} {
		assert.Contains(t, out, want)
	}
}

func TestRender_NarrowWidth(t *testing.T) {
	out := Render(testRecord(), nil, 5)
	assert.Contains(t, out, "Day 1")
}
