package hfsm

import (
	"errors"
	"fmt"

	"github.com/orbitalstate/hfsm/internal/primitives"
)

// ErrNotInitialized is returned by operations that require an initialized
// machine (Fire, FirePriority, FireSync, Start) when called before
// initialize or load.
var ErrNotInitialized = errors.New("hfsm: machine is not initialized")

// ErrAlreadyInitialized is returned by initialize or load when the
// machine has already consumed its initialize slot.
var ErrAlreadyInitialized = errors.New("hfsm: machine is already initialized")

// IllFormedGraphError reports a structural violation discovered by Build.
type IllFormedGraphError = primitives.IllFormedGraphError

// InvalidHistoryStateError reports that a loaded history entry's
// recorded descendant does not actually descend from its claimed owner.
type InvalidHistoryStateError struct {
	Owner     StateID
	Recorded  StateID
}

func (e *InvalidHistoryStateError) Error() string {
	return fmt.Sprintf("hfsm: invalid history state: %q is not a descendant of %q", e.Recorded, e.Owner)
}

// GuardError wraps an error a Guard returned while being evaluated during
// a Fire. The transition is treated as declined for that candidate.
type GuardError struct {
	Event EventID
	Err   error
}

func (e *GuardError) Error() string {
	return fmt.Sprintf("hfsm: guard for event %q failed: %v", e.Event, e.Err)
}

func (e *GuardError) Unwrap() error { return e.Err }

// ActionError wraps an error an Action returned while a transition was
// firing. The exit/entry sequence in progress still runs to completion.
type ActionError struct {
	Event EventID
	Phase string
	Err   error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("hfsm: action during %s for event %q failed: %v", e.Phase, e.Event, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }

// WorkerFault reports an unexpected fault raised inside an ActiveMachine's
// worker loop. It is re-raised to the caller of Stop.
type WorkerFault struct {
	Err error
}

func (e *WorkerFault) Error() string {
	return fmt.Sprintf("hfsm: worker fault: %v", e.Err)
}

func (e *WorkerFault) Unwrap() error { return e.Err }
