// Package app is the root Bubble Tea model. It routes between pages, runs
// navigation through the guard, and layers the confirm prompt, the log
// overlay and toasts over the active page.
package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/contactus/internal/config"
	"github.com/zjrosen/contactus/internal/log"
	"github.com/zjrosen/contactus/internal/mode"
	contactpage "github.com/zjrosen/contactus/internal/mode/contact"
	"github.com/zjrosen/contactus/internal/mode/home"
	"github.com/zjrosen/contactus/internal/nav"
	"github.com/zjrosen/contactus/internal/ui/shared/logoverlay"
	"github.com/zjrosen/contactus/internal/ui/shared/overlay"
	"github.com/zjrosen/contactus/internal/ui/shared/toaster"
	"github.com/zjrosen/contactus/internal/ui/styles"
)

// Zone IDs for the confirm prompt buttons.
const (
	ZoneConfirm = "app-prompt-confirm"
	ZoneAbort   = "app-prompt-abort"
)

const (
	buttonConfirm = iota
	buttonAbort
)

// ConfigReloadedMsg carries a configuration re-read after the file changed.
// Only presentation settings take effect; the endpoint is fixed at startup.
type ConfigReloadedMsg struct {
	Config config.Config
}

// Model is the application state.
type Model struct {
	services mode.Services

	route   nav.Route
	home    home.Model
	contact contactpage.Model

	guard        nav.Guard
	promptButton int

	toaster    toaster.Model
	logOverlay logoverlay.Model

	width    int
	height   int
	quitting bool
}

// New creates the app on the home page.
func New(services mode.Services) Model {
	toastDuration := toaster.DefaultDuration
	if services.Config != nil && services.Config.UI.ToastDuration > 0 {
		toastDuration = services.Config.UI.ToastDuration
	}
	return Model{
		services:     services,
		route:        nav.RouteHome,
		home:         home.New(services),
		contact:      contactpage.New(services),
		promptButton: buttonAbort,
		toaster:      toaster.New(toastDuration),
		logOverlay:   logoverlay.New(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.home.Init()
}

// Route returns the active page.
func (m Model) Route() nav.Route {
	return m.route
}

// Guard returns the navigation guard.
func (m Model) Guard() nav.Guard {
	return m.guard
}

// Contact returns the contact page.
func (m Model) Contact() contactpage.Model {
	return m.contact
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.home = m.home.SetSize(msg.Width, msg.Height)
		m.contact = m.contact.SetSize(msg.Width, msg.Height)
		m.toaster.SetSize(msg.Width, msg.Height)
		m.logOverlay.SetSize(msg.Width, msg.Height)
		return m, nil

	case mode.ShowToastMsg:
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show(msg.Message, msg.Style)
		return m, cmd

	case toaster.DismissMsg:
		m.toaster, _ = m.toaster.Update(msg)
		return m, nil

	case mode.NavigateMsg:
		return m.navigate(msg.To)

	case logoverlay.CloseMsg:
		return m, nil

	case ConfigReloadedMsg:
		return m.reloadConfig(msg.Config)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	// Async results (submission outcome, spinner ticks, cursor blink) always
	// reach the contact page, even after the user has left it.
	var cmd tea.Cmd
	m.contact, cmd = m.contact.Update(msg)
	return m, cmd
}

func (m Model) reloadConfig(cfg config.Config) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if err := styles.ApplyTheme(cfg.UI.Theme); err != nil {
		log.ErrorErr(log.CatConfig, "reloaded theme rejected", err)
		m.toaster, cmd = m.toaster.Show("Configuration not reloaded: "+err.Error(), toaster.StyleError)
		return m, cmd
	}
	m.toaster = m.toaster.SetDuration(cfg.UI.ToastDuration)
	log.Info(log.CatConfig, "configuration reloaded")
	m.toaster, cmd = m.toaster.Show("Configuration reloaded", toaster.StyleInfo)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.logOverlay.Visible() {
		var cmd tea.Cmd
		m.logOverlay, cmd = m.logOverlay.Update(msg)
		return m, cmd
	}
	if msg.String() == "ctrl+x" {
		m.logOverlay.Toggle()
		return m, nil
	}
	if m.guard.Blocked() {
		return m.handlePromptKey(msg)
	}
	return m.updatePage(msg)
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		return m.confirm()
	case "n", "esc":
		return m.abort()
	case "left", "right", "tab", "shift+tab", "h", "l":
		m.promptButton = 1 - m.promptButton
	case "enter":
		if m.promptButton == buttonConfirm {
			return m.confirm()
		}
		return m.abort()
	case "ctrl+c":
		return m.navigate(nav.RouteExit)
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.guard.Blocked() {
		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		switch {
		case zone.Get(ZoneConfirm).InBounds(msg):
			return m.confirm()
		case zone.Get(ZoneAbort).InBounds(msg):
			return m.abort()
		}
		return m, nil
	}
	if m.logOverlay.Visible() {
		return m, nil
	}
	return m.updatePage(msg)
}

func (m Model) updatePage(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.route {
	case nav.RouteContact:
		m.contact, cmd = m.contact.Update(msg)
	default:
		m.home, cmd = m.home.Update(msg)
	}
	return m, cmd
}

// navigate runs a navigation request through the guard.
func (m Model) navigate(to nav.Route) (tea.Model, tea.Cmd) {
	if to == m.route {
		return m, nil
	}
	t := nav.Transition{From: m.route, To: to}
	shouldBlock := m.route == nav.RouteContact && m.contact.ShouldBlock()

	var decision nav.Decision
	m.guard, decision = m.guard.Attempt(t, shouldBlock)
	log.Debug(log.CatNav, "navigation attempt",
		"from", t.From, "to", t.To, "decision", decision)

	switch decision {
	case nav.Proceed:
		return m.enter(to)
	case nav.Hold:
		m.promptButton = buttonAbort
	}
	return m, nil
}

func (m Model) confirm() (tea.Model, tea.Cmd) {
	var t nav.Transition
	var ok bool
	m.guard, t, ok = m.guard.Confirm()
	if !ok {
		return m, nil
	}
	log.Info(log.CatNav, "navigation confirmed, unsaved changes discarded", "to", t.To)
	return m.enter(t.To)
}

func (m Model) abort() (tea.Model, tea.Cmd) {
	var ok bool
	m.guard, ok = m.guard.Abort()
	if ok {
		log.Debug(log.CatNav, "navigation aborted")
	}
	return m, nil
}

// enter switches to route. The contact page is rebuilt on every entry so a
// confirmed navigation drops its unsaved values.
func (m Model) enter(route nav.Route) (tea.Model, tea.Cmd) {
	log.Debug(log.CatMode, "enter page", "route", route)
	switch route {
	case nav.RouteExit:
		m.quitting = true
		return m, tea.Quit
	case nav.RouteContact:
		m.contact = contactpage.New(m.services).SetSize(m.width, m.height)
		m.route = route
		return m, m.contact.Init()
	default:
		m.route = nav.RouteHome
		return m, m.home.Init()
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var view string
	switch m.route {
	case nav.RouteContact:
		view = m.contact.View()
	default:
		view = m.home.View()
	}

	if m.height > 0 {
		view = padLines(view, m.height)
	}

	if m.guard.Blocked() {
		view = overlay.Place(overlay.Config{
			Width:    m.width,
			Height:   m.height,
			Position: overlay.Center,
		}, m.promptView(), view)
	}
	view = m.logOverlay.Overlay(view)
	view = m.toaster.Overlay(view)

	return zone.Scan(view)
}

// padLines pads or trims view to exactly height lines.
func padLines(view string, height int) string {
	lines := strings.Split(view, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines[:height], "\n")
}

func (m Model) promptView() string {
	confirm := styles.ButtonStyle(m.promptButton == buttonConfirm, false, styles.StatusErrorColor).Render("Confirm")
	abort := styles.ButtonStyle(m.promptButton == buttonAbort, false, styles.ButtonPrimaryColor).Render("Abort")
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		zone.Mark(ZoneConfirm, confirm), "  ", zone.Mark(ZoneAbort, abort))

	title := lipgloss.NewStyle().Bold(true).Foreground(styles.OverlayTitleColor).Render("Unsaved changes")
	body := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).
		Render("Leave this page? Your edits will be lost.")
	hint := styles.HintStyle.Render("y confirm • n abort")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Center, title, "", body, "", buttons, "", hint))
}
