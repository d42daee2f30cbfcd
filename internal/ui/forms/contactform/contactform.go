// Package contactform is the contact form's state: the three inputs, the Save
// button, focus, on-blur validation and the dirty flag.
//
// The form never submits anything itself. A valid submit request produces a
// SubmitMsg that the owning page turns into a remote call.
package contactform

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/rivo/uniseg"

	"github.com/zjrosen/contactus/internal/contact"
	"github.com/zjrosen/contactus/internal/log"
	"github.com/zjrosen/contactus/internal/ui/styles"
)

// Zone IDs for mouse hit testing.
const (
	ZoneSave        = "contactform-save"
	zoneFieldPrefix = "contactform-field-"
)

const (
	defaultWidth  = 60
	messageHeight = 5
	saveLabel     = "Save"
)

// SubmitMsg carries values that passed every field rule.
type SubmitMsg struct {
	Values contact.Values
}

type field struct {
	key       contact.Field
	multiline bool
	input     textinput.Model
	area      textarea.Model
	err       *contact.FieldError
}

func (f *field) value() string {
	if f.multiline {
		return f.area.Value()
	}
	return f.input.Value()
}

func (f *field) setValue(v string) {
	if f.multiline {
		f.area.SetValue(v)
		return
	}
	f.input.SetValue(v)
}

func (f *field) focus() tea.Cmd {
	if f.multiline {
		return f.area.Focus()
	}
	return f.input.Focus()
}

func (f *field) blur() {
	if f.multiline {
		f.area.Blur()
		return
	}
	f.input.Blur()
}

func (f *field) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.multiline {
		f.area, cmd = f.area.Update(msg)
	} else {
		f.input, cmd = f.input.Update(msg)
	}
	return cmd
}

func (f *field) view() []string {
	if f.multiline {
		return strings.Split(f.area.View(), "\n")
	}
	return []string{f.input.View()}
}

// Model is the form state.
type Model struct {
	fields       []field
	focusedIndex int // -1 = Save button
	baseline     contact.Values
	disabled     bool
	width        int
}

// New creates an empty form with focus on the first field.
func New() Model {
	m := Model{width: defaultWidth}
	for _, key := range contact.Fields {
		f := field{key: key, multiline: key == contact.FieldMessage}
		if f.multiline {
			f.area = textarea.New()
			f.area.Prompt = ""
			f.area.ShowLineNumbers = false
			f.area.Placeholder = "How can we help?"
			f.area.CharLimit = 0
			f.area.SetHeight(messageHeight)
		} else {
			f.input = textinput.New()
			f.input.Prompt = ""
			f.input.Placeholder = placeholder(key)
		}
		m.fields = append(m.fields, f)
	}
	m.resize()
	m.fields[0].focus()
	return m
}

func placeholder(f contact.Field) string {
	switch f {
	case contact.FieldName:
		return "Ada Lovelace"
	case contact.FieldEmail:
		return "ada@example.com"
	default:
		return ""
	}
}

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Values returns the current field values.
func (m Model) Values() contact.Values {
	var v contact.Values
	for i := range m.fields {
		v = v.With(m.fields[i].key, m.fields[i].value())
	}
	return v
}

// Dirty reports whether the values differ from the last Reset baseline.
func (m Model) Dirty() bool {
	return m.Values() != m.baseline
}

// FieldError returns the error displayed for f, or nil.
func (m Model) FieldError(f contact.Field) *contact.FieldError {
	if i := m.indexOf(f); i >= 0 {
		return m.fields[i].err
	}
	return nil
}

// FocusedField returns the focused field, or false when the Save button has focus.
func (m Model) FocusedField() (contact.Field, bool) {
	if m.focusedIndex < 0 {
		return "", false
	}
	return m.fields[m.focusedIndex].key, true
}

// Disabled reports whether submit requests are being ignored.
func (m Model) Disabled() bool {
	return m.disabled
}

// SetDisabled enables or disables the Save control.
func (m Model) SetDisabled(disabled bool) Model {
	m.disabled = disabled
	return m
}

// Reset replaces both the values and the dirty baseline and clears errors.
func (m Model) Reset(values contact.Values) Model {
	for i := range m.fields {
		m.fields[i].setValue(values.Get(m.fields[i].key))
		m.fields[i].err = nil
	}
	m.baseline = values
	log.Debug(log.CatForm, "form reset")
	return m
}

// SetSize sets the outer width of the form.
func (m Model) SetSize(width int) Model {
	if width > 0 {
		m.width = width
	}
	m.resize()
	return m
}

func (m *Model) resize() {
	inner := max(m.width-4, 1) // borders plus one column of padding each side
	for i := range m.fields {
		if m.fields[i].multiline {
			m.fields[i].area.SetWidth(inner)
		} else {
			m.fields[i].input.Width = max(inner-1, 1)
		}
	}
}

// Update handles keys and mouse clicks.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	if m.focusedIndex >= 0 {
		return m, m.fields[m.focusedIndex].update(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "ctrl+n":
		return m.moveFocus(1)
	case "shift+tab", "ctrl+p":
		return m.moveFocus(-1)
	case "ctrl+s":
		return m.RequestSubmit()
	case "enter":
		if m.focusedIndex < 0 {
			return m.RequestSubmit()
		}
		if !m.fields[m.focusedIndex].multiline {
			return m.moveFocus(1)
		}
	}

	if m.focusedIndex < 0 {
		return m, nil
	}
	f := &m.fields[m.focusedIndex]
	before := f.value()
	cmd := f.update(msg)
	if f.value() != before && f.err != nil {
		f.err = contact.ValidateField(f.key, f.value())
	}
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if zone.Get(ZoneSave).InBounds(msg) {
		var focusCmd, submitCmd tea.Cmd
		m, focusCmd = m.setFocus(-1)
		m, submitCmd = m.RequestSubmit()
		return m, tea.Batch(focusCmd, submitCmd)
	}
	for i := range m.fields {
		if zone.Get(zoneFieldPrefix + string(m.fields[i].key)).InBounds(msg) {
			return m.setFocus(i)
		}
	}
	return m, nil
}

// moveFocus cycles through the fields and the Save button, wrapping at both ends.
func (m Model) moveFocus(delta int) (Model, tea.Cmd) {
	// Positions 0..n-1 are fields, n is the Save button.
	n := len(m.fields)
	pos := m.focusedIndex
	if pos < 0 {
		pos = n
	}
	pos = (pos + delta + n + 1) % (n + 1)
	if pos == n {
		pos = -1
	}
	return m.setFocus(pos)
}

func (m Model) setFocus(index int) (Model, tea.Cmd) {
	if index == m.focusedIndex {
		return m, nil
	}
	if m.focusedIndex >= 0 {
		f := &m.fields[m.focusedIndex]
		f.blur()
		f.err = contact.ValidateField(f.key, f.value())
		if f.err != nil {
			log.Debug(log.CatForm, "field invalid", "field", f.key, "error", f.err.Message)
		}
	}
	m.focusedIndex = index
	if index < 0 {
		return m, nil
	}
	return m, m.fields[index].focus()
}

// RequestSubmit validates every field. Invalid forms focus the first failing
// field and emit nothing; a disabled form ignores the request.
func (m Model) RequestSubmit() (Model, tea.Cmd) {
	if m.disabled {
		log.Debug(log.CatForm, "submit ignored while disabled")
		return m, nil
	}

	values := m.Values()
	errs := contact.Validate(values)
	first := -1
	for i := range m.fields {
		m.fields[i].err = nil
	}
	for _, fe := range errs {
		i := m.indexOf(fe.Field)
		if i < 0 {
			continue
		}
		m.fields[i].err = fe
		if first < 0 {
			first = i
		}
	}
	if first >= 0 {
		log.Debug(log.CatForm, "submit blocked by validation", "field", m.fields[first].key)
		if m.focusedIndex >= 0 && m.focusedIndex != first {
			m.fields[m.focusedIndex].blur()
		}
		m.focusedIndex = first
		return m, m.fields[first].focus()
	}

	return m, func() tea.Msg { return SubmitMsg{Values: values} }
}

func (m Model) indexOf(f contact.Field) int {
	for i := range m.fields {
		if m.fields[i].key == f {
			return i
		}
	}
	return -1
}

// characterCount counts user-perceived characters, so "é" or an emoji with
// modifiers counts once.
func characterCount(s string) string {
	n := uniseg.GraphemeClusterCount(s)
	if n == 1 {
		return "1 character"
	}
	return fmt.Sprintf("%d characters", n)
}

// View renders the fields and the Save button.
func (m Model) View() string {
	var sections []string
	for i := range m.fields {
		f := &m.fields[i]
		hint := ""
		if contact.Rules[f.key].Required {
			hint = "required"
		}
		content := make([]string, 0, len(f.view()))
		for _, line := range f.view() {
			content = append(content, " "+line)
		}
		box := styles.RenderFormSection(content, f.key.Label(), hint, m.width,
			i == m.focusedIndex, styles.BorderHighlightFocusColor)
		sections = append(sections, zone.Mark(zoneFieldPrefix+string(f.key), box))
		if f.err != nil {
			sections = append(sections, styles.FieldErrorStyle.Render("  "+f.err.Message))
		} else if f.multiline {
			sections = append(sections, styles.HintStyle.Render("  "+characterCount(f.value())))
		}
	}

	button := styles.ButtonStyle(m.focusedIndex < 0, m.disabled, styles.ButtonPrimaryColor).Render(saveLabel)
	sections = append(sections, "", zone.Mark(ZoneSave, button))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
