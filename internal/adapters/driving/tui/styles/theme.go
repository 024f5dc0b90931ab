// Package styles holds the lipgloss palette shared by the generation
// progress screen and the launch-kit viewer.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette is a set of colours that adapt to light and dark terminals.
type Palette struct {
	Accent    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Text      lipgloss.AdaptiveColor
	Subtle    lipgloss.AdaptiveColor
	Rule      lipgloss.AdaptiveColor
	Good      lipgloss.AdaptiveColor
	Caution   lipgloss.AdaptiveColor
	Bad       lipgloss.AdaptiveColor
}

// DefaultPalette is violet and pink accents on neutral greys.
func DefaultPalette() *Palette {
	return &Palette{
		Accent:    lipgloss.AdaptiveColor{Light: "#5A3FC0", Dark: "#7D56F4"},
		Highlight: lipgloss.AdaptiveColor{Light: "#C2185B", Dark: "#F25D94"},
		Text:      lipgloss.AdaptiveColor{Light: "#27272A", Dark: "#E4E4E7"},
		Subtle:    lipgloss.AdaptiveColor{Light: "#A1A1AA", Dark: "#71717A"},
		Rule:      lipgloss.AdaptiveColor{Light: "#D4D4D8", Dark: "#3F3F46"},
		Good:      lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#43BF6D"},
		Caution:   lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#F5C542"},
		Bad:       lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#EF4444"},
	}
}

// Stage marks prefix stage lines on the progress screen.
const (
	MarkPending = "·"
	MarkDone    = "✓"
	MarkFailed  = "✗"
)

// Styles are the rendered styles built from a Palette.
type Styles struct {
	palette *Palette

	Title   lipgloss.Style
	Section lipgloss.Style // launch-kit section heading
	Normal  lipgloss.Style
	Muted   lipgloss.Style
	Help    lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style // retries and cancellation
	Error   lipgloss.Style

	Day  lipgloss.Style // schedule day label
	Post lipgloss.Style // boxed social post
}

// NewStyles builds styles from p, or from DefaultPalette when p is nil.
func NewStyles(p *Palette) *Styles {
	if p == nil {
		p = DefaultPalette()
	}
	fg := func(c lipgloss.AdaptiveColor) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}

	return &Styles{
		palette: p,
		Title:   fg(p.Accent).Bold(true).MarginBottom(1),
		Section: fg(p.Highlight).Bold(true).
			BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(p.Rule),
		Normal:  fg(p.Text),
		Muted:   fg(p.Subtle),
		Help:    fg(p.Subtle),
		Success: fg(p.Good),
		Warning: fg(p.Caution),
		Error:   fg(p.Bad),
		Day:     fg(p.Accent).Bold(true),
		Post: fg(p.Text).
			BorderStyle(lipgloss.RoundedBorder()).BorderForeground(p.Rule).Padding(0, 1),
	}
}

// DefaultStyles is NewStyles(nil).
func DefaultStyles() *Styles {
	return NewStyles(nil)
}

// Palette returns the colours the styles were built from.
func (s *Styles) Palette() *Palette {
	return s.palette
}

// Done renders a completed stage line.
func (s *Styles) Done(title string) string {
	return s.Success.Render(MarkDone + " " + title)
}

// Failed renders a stage line that exhausted its retries.
func (s *Styles) Failed(title string) string {
	return s.Error.Render(MarkFailed + " " + title)
}

// Pending renders a stage line that has not started.
func (s *Styles) Pending(title string) string {
	return s.Muted.Render(MarkPending + " " + title)
}
