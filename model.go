// Package hfsm implements a hierarchical finite state machine runtime
// following UML statechart semantics: composite states, initial-substate
// selection, shallow and deep history, internal and external transitions,
// and least-common-ancestor traversal on firing.
//
// Build a Graph with Build, bind it to a PassiveMachine for synchronous
// firing or an ActiveMachine for a worker-owned event queue, then drive it
// with Fire / FireSync. Persist and restore runtime state through the
// Saver / Loader contracts in persistence.go.
package hfsm

import "github.com/orbitalstate/hfsm/internal/primitives"

// StateID uniquely identifies a state within a Graph.
type StateID = primitives.StateID

// EventID names an event that transitions react to.
type EventID = primitives.EventID

// Event pairs an event identifier with an opaque argument.
type Event = primitives.Event

// NewEvent constructs an Event.
func NewEvent(id EventID, argument any) Event {
	return primitives.NewEvent(id, argument)
}

// HistoryKind selects how a composite state resumes its substate
// configuration when re-entered.
type HistoryKind = primitives.HistoryKind

const (
	HistoryNone    = primitives.HistoryNone
	HistoryShallow = primitives.HistoryShallow
	HistoryDeep    = primitives.HistoryDeep
)

// StateSpec declares one state for Build. Super is the id of the parent
// state, empty for a root. Initial names the default substate; required
// on composite states, forbidden on atomic ones.
type StateSpec = primitives.StateSpec

// TransitionSpec declares one transition, attached to the StateSpec whose
// On map holds it. An empty Target means internal.
type TransitionSpec = primitives.TransitionSpec

// TransitionInfo is what a Guard or Action observes when a transition
// fires.
type TransitionInfo = primitives.TransitionInfo

// Guard decides whether a transition may fire. A nil Guard always holds.
type Guard = primitives.Guard

// Action runs as part of a firing transition.
type Action = primitives.Action

// ExtendedState is the optional thread-safe key-value store guards and
// actions may use to carry data across events.
type ExtendedState = primitives.ExtendedState

// NewExtendedState creates an empty ExtendedState.
func NewExtendedState() *ExtendedState {
	return primitives.NewExtendedState()
}

// StateDef is one immutable, validated node of a built Graph.
type StateDef = primitives.StateDef

// TransitionDef is one immutable, validated transition.
type TransitionDef = primitives.TransitionDef

// Graph is the immutable post-build model of states and transitions.
type Graph = primitives.Graph

// Build validates a set of StateSpecs and freezes them into a Graph.
// It fails with an IllFormedGraphError when any invariant in the data
// model is violated (duplicate/unknown ids, missing or invalid initial
// substate, a history kind on a leaf, a cyclic hierarchy, an unresolved
// transition target).
func Build(specs []StateSpec) (*Graph, error) {
	return primitives.Build(specs)
}
