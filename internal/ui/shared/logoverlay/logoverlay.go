// Package logoverlay shows the in-memory log buffer on top of the current
// page, so submission and navigation activity can be inspected without
// leaving the TUI.
package logoverlay

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/contactus/internal/log"
	"github.com/zjrosen/contactus/internal/ui/shared/overlay"
	"github.com/zjrosen/contactus/internal/ui/styles"
)

const (
	maxBoxWidth   = 90
	minBoxWidth   = 40
	maxViewHeight = 20
	minViewHeight = 4
	chromeHeight  = 6 // title, two dividers, footer, two borders
	bufferWindow  = 10000
)

var levels = []struct {
	key   string
	label string
	level log.Level
}{
	{"d", "Debug", log.LevelDebug},
	{"i", "Info", log.LevelInfo},
	{"w", "Warn", log.LevelWarn},
	{"e", "Error", log.LevelError},
}

// CloseMsg is sent when the overlay closes itself.
type CloseMsg struct{}

// Model is the log overlay state.
type Model struct {
	visible  bool
	minLevel log.Level
	width    int
	height   int
	viewport viewport.Model
	ready    bool
}

// New creates a hidden overlay that shows every level.
func New() Model {
	return Model{minLevel: log.LevelDebug}
}

// Visible reports whether the overlay is open.
func (m Model) Visible() bool {
	return m.visible
}

// MinLevel returns the active level filter.
func (m Model) MinLevel() log.Level {
	return m.minLevel
}

// Toggle opens or closes the overlay, refreshing its content on open.
func (m *Model) Toggle() {
	if m.visible {
		m.visible = false
		return
	}
	m.visible = true
	m.refresh()
}

// SetSize records the screen size and resizes the viewport.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	if width == 0 || height == 0 {
		return
	}
	viewHeight := max(min(maxViewHeight, height-chromeHeight), minViewHeight)
	m.viewport = viewport.New(m.contentWidth(), viewHeight)
	m.ready = true
	m.refresh()
}

// Update handles keys while the overlay is open.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	for _, l := range levels {
		if key.String() == l.key {
			m.minLevel = l.level
			m.refresh()
			return m, nil
		}
	}

	switch key.String() {
	case "c":
		log.ClearBuffer()
		m.refresh()
	case "j", "down":
		if m.ready {
			m.viewport.ScrollDown(1)
		}
	case "k", "up":
		if m.ready {
			m.viewport.ScrollUp(1)
		}
	case "g":
		if m.ready {
			m.viewport.GotoTop()
		}
	case "G":
		if m.ready {
			m.viewport.GotoBottom()
		}
	case "ctrl+x", "esc":
		m.visible = false
		return m, func() tea.Msg { return CloseMsg{} }
	}
	return m, nil
}

func (m Model) boxWidth() int {
	return max(min(m.width-4, maxBoxWidth), minBoxWidth)
}

func (m Model) contentWidth() int {
	return m.boxWidth() - 2
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.render(m.contentWidth()))
	m.viewport.GotoBottom()
}

// Entries returns the buffered entries at or above the active level.
func (m Model) Entries() []log.Entry {
	var out []log.Entry
	for _, e := range log.RecentEntries(bufferWindow) {
		if e.Level >= m.minLevel {
			out = append(out, e)
		}
	}
	return out
}

func (m Model) render(width int) string {
	entries := m.Entries()
	if len(entries) == 0 {
		return lipgloss.NewStyle().
			Foreground(styles.TextMutedColor).
			Italic(true).
			Render("No logs to display")
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = renderEntry(e, width)
	}
	return strings.Join(lines, "\n")
}

func levelColor(l log.Level) lipgloss.TerminalColor {
	switch l {
	case log.LevelError:
		return styles.StatusErrorColor
	case log.LevelWarn:
		return styles.StatusWarningColor
	case log.LevelInfo:
		return styles.ToastBorderInfoColor
	default:
		return styles.TextMutedColor
	}
}

func renderEntry(e log.Entry, width int) string {
	line := fmt.Sprintf("%s %-5s %-6s %s%s",
		e.Time.Format("15:04:05"), e.Level, e.Category, e.Message, e.Fields)
	if ansi.StringWidth(line) > width {
		line = ansi.Truncate(line, width, "…")
	}
	return lipgloss.NewStyle().Foreground(levelColor(e.Level)).Render(line)
}

func (m Model) footer() string {
	hint := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	active := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).Bold(true)

	parts := []string{hint.Render("[c] Clear")}
	for _, l := range levels {
		label := fmt.Sprintf("[%s] %s", l.key, l.label)
		if l.level == m.minLevel {
			parts = append(parts, active.Render(label))
		} else {
			parts = append(parts, hint.Render(label))
		}
	}
	return strings.Join(parts, "  ")
}

// View renders the overlay box, or "" when hidden.
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	boxWidth := m.boxWidth()

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.OverlayTitleColor).
		PaddingLeft(1).
		Render("Logs")
	divider := lipgloss.NewStyle().
		Foreground(styles.OverlayBorderColor).
		Render(strings.Repeat("─", boxWidth))

	body := m.render(m.contentWidth())
	if m.ready {
		body = m.viewport.View()
	}

	content := strings.Join([]string{title, divider, body, divider, m.footer()}, "\n")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(boxWidth).
		Render(content)
}

// Overlay centers the box over bg.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}
