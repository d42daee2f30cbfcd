// Package mode holds what the application's pages share: the services they are
// built with and the messages they send to the app shell.
package mode

import (
	"context"
	"time"

	"github.com/zjrosen/contactus/internal/config"
	"github.com/zjrosen/contactus/internal/contact"
	"github.com/zjrosen/contactus/internal/nav"
	"github.com/zjrosen/contactus/internal/ui/shared/toaster"
)

// Clock abstracts time for elapsed-time logging in tests.
type Clock interface {
	Now() time.Time
}

// RealClock reads the wall clock.
type RealClock struct{}

// Now returns time.Now().
func (RealClock) Now() time.Time { return time.Now() }

// Services are the dependencies pages are constructed with.
type Services struct {
	Ctx       context.Context
	Config    *config.Config
	Submitter contact.Submitter
	Clock     Clock
}

// Context returns Ctx, or context.Background when unset.
func (s Services) Context() context.Context {
	if s.Ctx == nil {
		return context.Background()
	}
	return s.Ctx
}

// Now reads the configured clock, falling back to the wall clock.
func (s Services) Now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock.Now()
}

// ShowToastMsg asks the app to display a notification.
type ShowToastMsg struct {
	Message string
	Style   toaster.Style
}

// NavigateMsg asks the app to leave the current page for To. The app runs it
// through the navigation guard.
type NavigateMsg struct {
	To nav.Route
}
