// Package toaster shows short-lived notifications in a corner of the screen.
package toaster

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/contactus/internal/ui/shared/overlay"
	"github.com/zjrosen/contactus/internal/ui/styles"
)

// Style selects the toast's accent.
type Style int

const (
	StyleInfo Style = iota
	StyleSuccess
	StyleWarn
	StyleError
)

// DefaultDuration is how long a toast stays on screen.
const DefaultDuration = 6 * time.Second

const maxToastWidth = 48

// DismissMsg hides the toast that was shown with the same sequence number.
type DismissMsg struct {
	seq int
}

// Model is the toast state. Only the latest toast is shown; a newer toast
// replaces an older one and the older one's timer becomes a no-op.
type Model struct {
	visible  bool
	message  string
	style    Style
	seq      int
	duration time.Duration
	width    int
	height   int
}

// New creates a toaster with the given display duration (DefaultDuration if <= 0).
func New(duration time.Duration) Model {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return Model{duration: duration}
}

// Show displays message and returns the command that dismisses it.
func (m Model) Show(message string, style Style) (Model, tea.Cmd) {
	m.seq++
	m.visible = true
	m.message = message
	m.style = style
	seq := m.seq
	return m, tea.Tick(m.duration, func(time.Time) tea.Msg {
		return DismissMsg{seq: seq}
	})
}

// Update handles dismiss ticks.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(DismissMsg); ok && msg.seq == m.seq {
		m.visible = false
	}
	return m, nil
}

// Visible reports whether a toast is on screen.
func (m Model) Visible() bool {
	return m.visible
}

// Message returns the current toast text.
func (m Model) Message() string {
	return m.message
}

// Style returns the current toast style.
func (m Model) Style() Style {
	return m.style
}

// Duration returns the display duration.
func (m Model) Duration() time.Duration {
	return m.duration
}

// SetDuration changes the display duration for toasts shown from now on.
func (m Model) SetDuration(d time.Duration) Model {
	if d > 0 {
		m.duration = d
	}
	return m
}

// SetSize records the screen size used for placement.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) accent() lipgloss.TerminalColor {
	switch m.style {
	case StyleSuccess:
		return styles.StatusSuccessColor
	case StyleWarn:
		return styles.StatusWarningColor
	case StyleError:
		return styles.StatusErrorColor
	default:
		return styles.ToastBorderInfoColor
	}
}

func (m Model) icon() string {
	switch m.style {
	case StyleSuccess:
		return "✓"
	case StyleWarn:
		return "!"
	case StyleError:
		return "✗"
	default:
		return "i"
	}
}

// View renders the toast box, or "" when hidden.
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	width := maxToastWidth
	if m.width > 0 {
		width = min(width, max(m.width-4, 16))
	}
	body := wordwrap.String(strings.TrimSpace(m.message), width-6)

	iconStyle := lipgloss.NewStyle().Foreground(m.accent()).Bold(true)
	textStyle := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor)

	lines := strings.Split(body, "\n")
	for i, l := range lines {
		prefix := "  "
		if i == 0 {
			prefix = iconStyle.Render(m.icon()) + " "
		}
		lines[i] = prefix + textStyle.Render(l)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.accent()).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// Overlay renders the toast in the bottom-right corner of bg.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.BottomRight,
		MarginX:  1,
		MarginY:  1,
	}, m.View(), bg)
}
