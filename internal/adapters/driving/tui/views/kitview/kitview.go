// Package kitview provides a scrollable viewer for a saved launch kit.
package kitview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rmayank-24/MarketForgeAI/internal/adapters/driving/tui/keymap"
	"github.com/rmayank-24/MarketForgeAI/internal/adapters/driving/tui/styles"
	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
)

// chromeHeight is the number of lines used by the header and footer.
const chromeHeight = 5

// View shows a launch kit in a viewport.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	help     help.Model
	viewport viewport.Model
	record   *domain.KitRecord
	width    int
	height   int
	ready    bool
}

// NewView creates a viewer for record.
func NewView(s *styles.Styles, km *keymap.KeyMap, record *domain.KitRecord) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:   s,
		keymap:   km,
		help:     help.New(),
		viewport: viewport.New(80, 24-chromeHeight),
		record:   record,
		width:    80,
		height:   24,
	}
}

// Init initialises the viewer.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles resizing, scrolling and quitting.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keymap.Quit):
			return v, tea.Quit
		case key.Matches(msg, v.keymap.Help):
			v.help.ShowAll = !v.help.ShowAll
			return v, nil
		case key.Matches(msg, v.keymap.Top):
			v.viewport.GotoTop()
			return v, nil
		case key.Matches(msg, v.keymap.Bottom):
			v.viewport.GotoBottom()
			return v, nil
		}
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// SetDimensions resizes the viewport and re-wraps the content.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.viewport.Width = width
	v.viewport.Height = max(height-chromeHeight, 1)
	v.viewport.SetContent(Render(v.record, v.styles, width))
	v.ready = true
}

// View renders the header, the scrolled content and the footer.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	header := v.styles.Title.Render("MarketForge") + "  " +
		v.styles.Muted.Render(v.record.Idea)
	scroll := v.styles.Muted.Render(fmt.Sprintf("%3.f%%", v.viewport.ScrollPercent()*100))
	footer := lipgloss.JoinHorizontal(lipgloss.Top, scroll, "  ", v.help.View(v.keymap))

	return lipgloss.JoinVertical(lipgloss.Left, header, v.viewport.View(), "", footer)
}

// Render formats the kit as styled text wrapped to width.
func Render(record *domain.KitRecord, s *styles.Styles, width int) string {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if width < 20 {
		width = 20
	}
	body := s.Normal.Width(width - 2)
	kit := record.Kit

	var b strings.Builder
	section := func(title, text string) {
		b.WriteString(s.Section.Render(title))
		b.WriteString("\n")
		b.WriteString(body.Render(text))
		b.WriteString("\n\n")
	}

	section("Market analysis", kit.MarketAnalysis)
	section("Product copy", kit.ProductCopy)
	section("Ad copy", kit.AdCopy)

	b.WriteString(s.Section.Render("Social calendar"))
	b.WriteString("\n")
	post := s.Post.Width(width - 4)
	for _, item := range kit.Schedule {
		b.WriteString(s.Day.Render(item.Day))
		b.WriteString(s.Muted.Render(" at " + item.Time))
		b.WriteString("\n")
		b.WriteString(post.Render(item.Content))
		b.WriteString("\n")
	}

	if !record.CreatedAt.IsZero() {
		b.WriteString("\n")
		b.WriteString(s.Muted.Render(fmt.Sprintf("Saved %s as %s", record.CreatedAt.Local().Format("2006-01-02 15:04"), record.ID)))
	}

	return b.String()
}
