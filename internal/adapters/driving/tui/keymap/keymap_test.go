package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ help.KeyMap = (*KeyMap)(nil)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()
	require.NotNil(t, km)

	bindings := []key.Binding{
		km.Quit, km.Cancel, km.Up, km.Down, km.PageUp, km.PageDown, km.Top, km.Bottom, km.Help,
	}
	for _, b := range bindings {
		assert.NotEmpty(t, b.Keys())
		assert.NotEmpty(t, b.Help().Key)
		assert.NotEmpty(t, b.Help().Desc)
	}
}

func TestKeyMap_Matches(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		msg     tea.KeyMsg
		binding key.Binding
	}{
		{"q quits", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, km.Quit},
		{"ctrl+c cancels", tea.KeyMsg{Type: tea.KeyCtrlC}, km.Cancel},
		{"j scrolls down", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}, km.Down},
		{"up arrow scrolls up", tea.KeyMsg{Type: tea.KeyUp}, km.Up},
		{"G jumps to bottom", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")}, km.Bottom},
		{"? toggles help", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")}, km.Help},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, key.Matches(tt.msg, tt.binding))
		})
	}
}

func TestKeyMap_Help(t *testing.T) {
	km := DefaultKeyMap()

	assert.Len(t, km.ShortHelp(), 4)
	full := km.FullHelp()
	assert.Len(t, full, 3)
	assert.Contains(t, full[2], km.Quit)
}
