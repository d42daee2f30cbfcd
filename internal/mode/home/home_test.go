package home

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/contactus/internal/mode"
	"github.com/zjrosen/contactus/internal/nav"
)

func TestUpdate_Navigation(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
		want nav.Route
	}{
		{"c opens contact", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")}, nav.RouteContact},
		{"q exits", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, nav.RouteExit},
		{"ctrl+c exits", tea.KeyMsg{Type: tea.KeyCtrlC}, nav.RouteExit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cmd := New(mode.Services{}).Update(tt.key)
			require.NotNil(t, cmd)
			require.Equal(t, mode.NavigateMsg{To: tt.want}, cmd())
		})
	}
}

func TestUpdate_OtherKeysIgnored(t *testing.T) {
	_, cmd := New(mode.Services{}).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	require.Nil(t, cmd)
}

func TestView_RendersMarkdown(t *testing.T) {
	m := New(mode.Services{}).SetSize(80, 24)
	view := m.View()
	require.Contains(t, view, "Welcome")
	require.Contains(t, view, "contact form")
	require.Contains(t, view, "contactus")
}
