// Event provides the immutable event primitive for statechart transitions.
//
// Events are value types created via NewEvent and never mutated afterwards;
// consumers must treat the fields as read-only.
package primitives

// StateID uniquely identifies a state within a Graph, independent of where
// the state sits in the hierarchy.
type StateID string

// EventID names an event that transitions react to.
type EventID string

// Event pairs an event identifier with an opaque, caller-supplied argument.
type Event struct {
	ID      EventID
	Payload any
}

// NewEvent constructs an Event by value.
func NewEvent(id EventID, payload any) Event {
	return Event{ID: id, Payload: payload}
}
