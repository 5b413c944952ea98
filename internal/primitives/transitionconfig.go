// TransitionInfo is what a Guard or Action sees when a transition fires:
// the triggering event, the state the hierarchy search started from, and
// the machine's optional extended state. The root package decorates
// firing with its own bookkeeping when emitting
// TransitionBegin/Completed/Declined/ExceptionThrown.
package primitives

// TransitionInfo carries everything a Guard or Action needs to evaluate or
// run. Fields are read-only by convention; nothing in the engine mutates a
// TransitionInfo once built.
type TransitionInfo struct {
	Event         Event
	Originating   StateID
	ExtendedState *ExtendedState
}

// Guard decides whether a transition may fire. A nil Guard always holds.
// A Guard that returns a non-nil error is treated as false by the engine,
// which also reports the error as a TransitionExceptionThrown event.
type Guard func(info TransitionInfo) (bool, error)

// Action runs as part of a firing transition (entry, exit, or the
// transition's own action list). An Action that returns an error is
// captured and reported as TransitionExceptionThrown; the exit/entry
// sequence in progress still runs to completion.
type Action func(info TransitionInfo) error
