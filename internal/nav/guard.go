// Package nav provides the route names and the navigation guard that holds a
// navigation pending until the user confirms or aborts it.
package nav

// Route names a top-level page of the application.
type Route string

const (
	RouteHome    Route = "home"
	RouteContact Route = "contact"
	RouteExit    Route = "exit" // leaving the program
)

// Transition is one navigation attempt.
type Transition struct {
	From Route
	To   Route
}

// State is the guard's blocking state.
type State int

const (
	StateIdle State = iota
	StateBlocked
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBlocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// Decision is the outcome of a navigation attempt.
type Decision int

const (
	// Proceed means the navigation may happen now.
	Proceed Decision = iota
	// Hold means the guard entered StateBlocked and is waiting for Confirm or Abort.
	Hold
	// Ignored means a navigation was already pending; the new attempt was dropped.
	Ignored
)

func (d Decision) String() string {
	switch d {
	case Proceed:
		return "proceed"
	case Hold:
		return "hold"
	case Ignored:
		return "ignored"
	default:
		return "unknown"
	}
}

// Guard intercepts navigation while its predicate holds. The zero value is an
// idle guard. Guard is a value type; every method returns the updated copy.
type Guard struct {
	state   State
	pending Transition
}

// State returns the current state.
func (g Guard) State() State {
	return g.state
}

// Blocked reports whether a navigation is pending confirmation.
func (g Guard) Blocked() bool {
	return g.state == StateBlocked
}

// Pending returns the held transition while blocked.
func (g Guard) Pending() (Transition, bool) {
	if g.state != StateBlocked {
		return Transition{}, false
	}
	return g.pending, true
}

// Attempt evaluates a navigation. shouldBlock is the predicate's value at the
// moment of the attempt. Only Confirm and Abort leave StateBlocked, so
// attempts made while blocked are ignored.
func (g Guard) Attempt(t Transition, shouldBlock bool) (Guard, Decision) {
	if g.state == StateBlocked {
		return g, Ignored
	}
	if !shouldBlock {
		return g, Proceed
	}
	g.state = StateBlocked
	g.pending = t
	return g, Hold
}

// Confirm releases the pending navigation. ok is false when nothing was pending.
func (g Guard) Confirm() (Guard, Transition, bool) {
	if g.state != StateBlocked {
		return g, Transition{}, false
	}
	t := g.pending
	return Guard{}, t, true
}

// Abort cancels the pending navigation. ok is false when nothing was pending.
func (g Guard) Abort() (Guard, bool) {
	if g.state != StateBlocked {
		return g, false
	}
	return Guard{}, true
}
