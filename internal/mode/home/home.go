// Package home implements the landing page.
package home

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/zjrosen/contactus/internal/log"
	"github.com/zjrosen/contactus/internal/mode"
	"github.com/zjrosen/contactus/internal/nav"
	"github.com/zjrosen/contactus/internal/ui/styles"
)

const content = `# Welcome

Questions, feedback or a project in mind? Send us a note and we will get back
to you.

- Press **c** to open the contact form
- Press **q** to quit
`

// Model is the home page.
type Model struct {
	services mode.Services
	width    int
	height   int
	rendered string
}

// New creates the home page.
func New(services mode.Services) Model {
	m := Model{services: services}
	m.rendered = render(0)
	return m
}

// Init implements the page lifecycle.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetSize re-wraps the page for the new width.
func (m Model) SetSize(width, height int) Model {
	if width != m.width {
		m.rendered = render(width)
	}
	m.width = width
	m.height = height
	return m
}

func render(width int) string {
	opts := []glamour.TermRendererOption{glamour.WithStandardStyle("ascii")}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(min(width-2, 80)))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		log.ErrorErr(log.CatUI, "home renderer failed", err)
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		log.ErrorErr(log.CatUI, "home render failed", err)
		return content
	}
	return strings.Trim(out, "\n")
}

// Update maps keys to navigation requests.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "c":
		return m, navigate(nav.RouteContact)
	case "q", "ctrl+c":
		return m, navigate(nav.RouteExit)
	}
	return m, nil
}

func navigate(to nav.Route) tea.Cmd {
	return func() tea.Msg { return mode.NavigateMsg{To: to} }
}

// View renders the page.
func (m Model) View() string {
	title := styles.TitleStyle.Render("contactus")
	return title + "\n\n" + m.rendered
}
