// Package contact implements the contact page: it owns the form, runs the
// submission as a command, and reports the outcome through toasts.
package contact

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/zjrosen/contactus/internal/contact"
	"github.com/zjrosen/contactus/internal/log"
	"github.com/zjrosen/contactus/internal/mode"
	"github.com/zjrosen/contactus/internal/nav"
	"github.com/zjrosen/contactus/internal/ui/forms/contactform"
	"github.com/zjrosen/contactus/internal/ui/shared/toaster"
	"github.com/zjrosen/contactus/internal/ui/styles"
)

// SuccessMessage is shown after a contact was created.
const SuccessMessage = "Thank you for your submission!"

const maxFormWidth = 72

// State is the submission state.
type State int

const (
	StateIdle State = iota
	StateSubmitting
)

func (s State) String() string {
	if s == StateSubmitting {
		return "submitting"
	}
	return "idle"
}

// submittedMsg carries the outcome of one submission back to the page. The id
// ties it to the submission that produced it.
type submittedMsg struct {
	id      string
	values  contact.Values
	result  contact.Result
	err     error
	elapsed time.Duration
}

// Model is the contact page state.
type Model struct {
	services mode.Services
	form     contactform.Model
	spinner  spinner.Model
	state    State
	pending  string // id of the submission in flight
	err      error  // last submission failure, shown above the form
	width    int
	height   int
}

// New creates the page with an empty form.
func New(services mode.Services) Model {
	return Model{
		services: services,
		form:     contactform.New(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.HintStyle)),
	}
}

// Init starts the form's cursor.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// State returns the submission state.
func (m Model) State() State {
	return m.state
}

// Dirty reports whether the form has unsaved edits.
func (m Model) Dirty() bool {
	return m.form.Dirty()
}

// Err returns the persisted submission failure, if any.
func (m Model) Err() error {
	return m.err
}

// Values returns the form's current values.
func (m Model) Values() contact.Values {
	return m.form.Values()
}

// ShouldBlock reports whether leaving the page needs confirmation: there are
// unsaved edits and no submission is in flight.
func (m Model) ShouldBlock() bool {
	return m.form.Dirty() && m.state == StateIdle
}

// SetSize handles terminal resize.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.form = m.form.SetSize(min(max(width-4, 20), maxFormWidth))
	return m
}

// Update handles page messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case contactform.SubmitMsg:
		return m.submit(msg.Values)

	case submittedMsg:
		return m.handleSubmitted(msg)

	case spinner.TickMsg:
		if m.state != StateSubmitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, navigate(nav.RouteHome)
		case "ctrl+c":
			return m, navigate(nav.RouteExit)
		}
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func navigate(to nav.Route) tea.Cmd {
	return func() tea.Msg { return mode.NavigateMsg{To: to} }
}

// submit starts a submission. Requests made while one is in flight are dropped.
func (m Model) submit(values contact.Values) (Model, tea.Cmd) {
	if m.state == StateSubmitting {
		log.Debug(log.CatSubmit, "submit ignored, already submitting")
		return m, nil
	}

	m.state = StateSubmitting
	m.pending = uuid.NewString()
	m.err = nil
	m.form = m.form.SetDisabled(true)
	log.Info(log.CatSubmit, "submission started", "submission", m.pending, "email", values.Email)

	return m, tea.Batch(
		m.spinner.Tick,
		submitCmd(m.services, m.pending, values),
	)
}

// submitCmd runs the remote call. It always yields a submittedMsg, even when
// the submitter panics.
func submitCmd(services mode.Services, id string, values contact.Values) tea.Cmd {
	ctx := services.Context()
	submitter := services.Submitter
	started := services.Now()
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = submittedMsg{
					id:      id,
					values:  values,
					err:     &contact.SubmissionError{Message: fmt.Sprintf("Unexpected error: %v", r)},
					elapsed: services.Now().Sub(started),
				}
			}
		}()
		if submitter == nil {
			return submittedMsg{id: id, values: values, err: &contact.SubmissionError{Message: "No server configured"}}
		}
		result, err := submitter.Submit(ctx, values)
		return submittedMsg{id: id, values: values, result: result, err: err, elapsed: services.Now().Sub(started)}
	}
}

// handleSubmitted applies the outcome of the pending submission. A result
// from an earlier page instance is only announced; it never touches this
// page's state or values.
func (m Model) handleSubmitted(msg submittedMsg) (Model, tea.Cmd) {
	if m.state != StateSubmitting || msg.id != m.pending {
		log.Debug(log.CatSubmit, "result for another submission", "submission", msg.id, "pending", m.pending)
		if msg.err != nil {
			return m, toast(errorMessage(msg.err), toaster.StyleError)
		}
		return m, toast(SuccessMessage, toaster.StyleSuccess)
	}

	m.state = StateIdle
	m.pending = ""
	m.form = m.form.SetDisabled(false)

	if msg.err != nil {
		m.err = msg.err
		log.ErrorErr(log.CatSubmit, "submission failed", msg.err, "elapsed", msg.elapsed)
		return m, toast(errorMessage(msg.err), toaster.StyleError)
	}

	m.form = m.form.Reset(msg.values)
	log.Info(log.CatSubmit, "submission succeeded",
		"id", msg.result.ID,
		"request_id", msg.result.RequestID,
		"elapsed", msg.elapsed)
	return m, toast(SuccessMessage, toaster.StyleSuccess)
}

func errorMessage(err error) string {
	var subErr *contact.SubmissionError
	if errors.As(err, &subErr) {
		return subErr.Message
	}
	return err.Error()
}

func toast(message string, style toaster.Style) tea.Cmd {
	return func() tea.Msg {
		return mode.ShowToastMsg{Message: message, Style: style}
	}
}

// View renders the page.
func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(styles.TitleStyle.Render("Contact Us"))
	sb.WriteString("\n\n")

	if m.err != nil {
		sb.WriteString(styles.ErrorStyle.Render("✗ " + errorMessage(m.err)))
		sb.WriteString("\n\n")
	}

	sb.WriteString(m.form.View())
	sb.WriteString("\n\n")
	sb.WriteString(m.statusLine())
	return lipgloss.NewStyle().PaddingLeft(2).Render(sb.String())
}

func (m Model) statusLine() string {
	if m.state == StateSubmitting {
		return m.spinner.View() + styles.HintStyle.Render(" Submitting…")
	}
	return styles.HintStyle.Render("tab next field • ctrl+s save • esc back • ctrl+x logs")
}
