package contact

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/contactus/internal/contact"
	"github.com/zjrosen/contactus/internal/mode"
	"github.com/zjrosen/contactus/internal/nav"
	"github.com/zjrosen/contactus/internal/ui/forms/contactform"
	"github.com/zjrosen/contactus/internal/ui/shared/toaster"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

// fakeSubmitter records calls and answers with fn.
type fakeSubmitter struct {
	mu    sync.Mutex
	calls []contact.Values
	fn    func(contact.Values) (contact.Result, error)
}

func (f *fakeSubmitter) Submit(_ context.Context, v contact.Values) (contact.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, v)
	f.mu.Unlock()
	if f.fn == nil {
		return contact.Result{ID: "c-1"}, nil
	}
	return f.fn(v)
}

func (f *fakeSubmitter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

var ada = contact.Values{Name: "Ada", Email: "ada@example.com", Message: "Hello"}

func newPage(s contact.Submitter) Model {
	return New(mode.Services{Submitter: s}).SetSize(80, 30)
}

func typeText(m Model, s string) Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

// collect runs cmd and flattens batches into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findSubmitted(t *testing.T, cmd tea.Cmd) submittedMsg {
	t.Helper()
	for _, msg := range collect(cmd) {
		if s, ok := msg.(submittedMsg); ok {
			return s
		}
	}
	t.Fatal("no submittedMsg produced")
	return submittedMsg{}
}

func toastOf(t *testing.T, cmd tea.Cmd) mode.ShowToastMsg {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(mode.ShowToastMsg)
	require.True(t, ok, "expected ShowToastMsg")
	return msg
}

// editedPage returns a page whose form holds v and is dirty.
func editedPage(s contact.Submitter, v contact.Values) Model {
	m := newPage(s)
	m = typeText(m, v.Name)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(m, v.Email)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(m, v.Message)
	return m
}

func TestShouldBlock_FreshPage(t *testing.T) {
	m := newPage(&fakeSubmitter{})
	require.False(t, m.Dirty())
	require.False(t, m.ShouldBlock())
	require.Equal(t, StateIdle, m.State())
}

func TestShouldBlock_AfterEdit(t *testing.T) {
	m := newPage(&fakeSubmitter{})
	m = typeText(m, "A")
	require.True(t, m.Dirty())
	require.True(t, m.ShouldBlock())
}

func TestSubmit_Success(t *testing.T) {
	fake := &fakeSubmitter{}
	m := editedPage(fake, ada)

	m, cmd := m.Update(contactform.SubmitMsg{Values: ada})
	require.Equal(t, StateSubmitting, m.State())
	require.False(t, m.ShouldBlock(), "no blocking while submitting")
	require.True(t, m.form.Disabled())

	result := findSubmitted(t, cmd)
	require.Equal(t, 1, fake.callCount())
	require.Equal(t, ada, fake.calls[0])

	m, cmd = m.Update(result)
	require.Equal(t, StateIdle, m.State())
	require.False(t, m.form.Disabled())
	require.False(t, m.Dirty(), "baseline reset to submitted values")
	require.Equal(t, ada, m.Values())
	require.NoError(t, m.Err())

	toast := toastOf(t, cmd)
	require.Equal(t, SuccessMessage, toast.Message)
	require.Equal(t, toaster.StyleSuccess, toast.Style)
}

func TestSubmit_Failure(t *testing.T) {
	fake := &fakeSubmitter{fn: func(contact.Values) (contact.Result, error) {
		return contact.Result{}, &contact.SubmissionError{Message: "Server responded with 500 Internal Server Error"}
	}}
	m := editedPage(fake, ada)

	m, cmd := m.Update(contactform.SubmitMsg{Values: ada})
	m, cmd = m.Update(findSubmitted(t, cmd))

	require.Equal(t, StateIdle, m.State())
	require.True(t, m.Dirty(), "baseline unchanged after failure")
	require.True(t, m.ShouldBlock())
	require.Error(t, m.Err())

	toast := toastOf(t, cmd)
	require.Equal(t, "Server responded with 500 Internal Server Error", toast.Message)
	require.Equal(t, toaster.StyleError, toast.Style)
	require.Contains(t, m.View(), "Server responded with 500")
}

func TestSubmit_PlainErrorMessage(t *testing.T) {
	fake := &fakeSubmitter{fn: func(contact.Values) (contact.Result, error) {
		return contact.Result{}, errors.New("boom")
	}}
	m := editedPage(fake, ada)

	m, cmd := m.Update(contactform.SubmitMsg{Values: ada})
	_, cmd = m.Update(findSubmitted(t, cmd))
	require.Equal(t, "boom", toastOf(t, cmd).Message)
}

func TestSubmit_PanicReturnsToIdle(t *testing.T) {
	fake := &fakeSubmitter{fn: func(contact.Values) (contact.Result, error) {
		panic("nil map")
	}}
	m := editedPage(fake, ada)

	m, cmd := m.Update(contactform.SubmitMsg{Values: ada})
	result := findSubmitted(t, cmd)
	var subErr *contact.SubmissionError
	require.ErrorAs(t, result.err, &subErr)

	m, cmd = m.Update(result)
	require.Equal(t, StateIdle, m.State())
	require.True(t, m.ShouldBlock())
	require.Contains(t, toastOf(t, cmd).Message, "nil map")
}

func TestSubmit_IgnoredWhileSubmitting(t *testing.T) {
	fake := &fakeSubmitter{}
	m := editedPage(fake, ada)

	m, first := m.Update(contactform.SubmitMsg{Values: ada})
	m, second := m.Update(contactform.SubmitMsg{Values: ada})
	require.Nil(t, second)

	// Ctrl+S goes through the disabled form and is dropped as well
	_, third := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.Nil(t, third)

	findSubmitted(t, first)
	require.Equal(t, 1, fake.callCount())
}

func TestSubmit_ResubmitAfterFailure(t *testing.T) {
	fail := true
	fake := &fakeSubmitter{fn: func(contact.Values) (contact.Result, error) {
		if fail {
			return contact.Result{}, &contact.SubmissionError{Message: "down"}
		}
		return contact.Result{ID: "c-2"}, nil
	}}
	m := editedPage(fake, ada)

	m, cmd := m.Update(contactform.SubmitMsg{Values: ada})
	m, _ = m.Update(findSubmitted(t, cmd))
	require.Error(t, m.Err())

	fail = false
	m, cmd = m.Update(contactform.SubmitMsg{Values: ada})
	require.NoError(t, m.Err(), "error cleared when a new submission starts")
	m, _ = m.Update(findSubmitted(t, cmd))
	require.False(t, m.Dirty())
	require.Equal(t, 2, fake.callCount())
}

func TestSubmit_ResultFromEarlierPageIgnored(t *testing.T) {
	fake := &fakeSubmitter{}
	bob := contact.Values{Name: "Bob", Email: "bob@example.com", Message: "Hi"}

	first := editedPage(fake, ada)
	_, firstCmd := first.Update(contactform.SubmitMsg{Values: ada})
	stale := findSubmitted(t, firstCmd)

	// A remounted page starts its own submission
	m := editedPage(fake, bob)
	m, _ = m.Update(contactform.SubmitMsg{Values: bob})
	require.Equal(t, StateSubmitting, m.State())

	m, cmd := m.Update(stale)
	require.Equal(t, StateSubmitting, m.State(), "own submission still in flight")
	require.True(t, m.form.Disabled())
	require.Equal(t, bob, m.Values())
	require.False(t, m.ShouldBlock())

	// The earlier outcome is still announced
	require.Equal(t, SuccessMessage, toastOf(t, cmd).Message)
}

func TestSubmit_ResultWhileIdleIgnored(t *testing.T) {
	fake := &fakeSubmitter{}
	first := editedPage(fake, ada)
	_, cmd := first.Update(contactform.SubmitMsg{Values: ada})
	stale := findSubmitted(t, cmd)

	m := editedPage(fake, contact.Values{Name: "Bo"})
	m, _ = m.Update(stale)
	require.Equal(t, StateIdle, m.State())
	require.Equal(t, "Bo", m.Values().Name)
	require.True(t, m.Dirty(), "baseline not replaced by another page's values")
}

func TestKeys_Navigation(t *testing.T) {
	m := newPage(&fakeSubmitter{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, mode.NavigateMsg{To: nav.RouteHome}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.Equal(t, mode.NavigateMsg{To: nav.RouteExit}, cmd())
}

func TestView_Submitting(t *testing.T) {
	m := editedPage(&fakeSubmitter{}, ada)
	require.Contains(t, m.View(), "Contact Us")
	require.NotContains(t, m.View(), "Submitting")

	m, _ = m.Update(contactform.SubmitMsg{Values: ada})
	require.Contains(t, m.View(), "Submitting")
}
