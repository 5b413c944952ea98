// Package builder provides a fluent API for declaring a Graph without
// hand-assembling hfsm.StateSpec slices: a Builder accumulates one State
// at a time, and Build freezes the accumulated specs the same way
// hfsm.Build does directly.
//
// Unlike a MachineBuilder that mints sequential integer StateIDs behind
// string names because its State.ID is numeric, StateID here is already
// a string, so the builder only needs to track insertion order and hand
// the specs to hfsm.Build for validation.
package builder

import "github.com/orbitalstate/hfsm/internal/primitives"

// Builder accumulates StateSpecs for a single Graph.
type Builder struct {
	order []primitives.StateID
	specs map[primitives.StateID]*primitives.StateSpec
}

// New creates an empty Builder.
func New() *Builder {
	return &Builder{specs: make(map[primitives.StateID]*primitives.StateSpec)}
}

// State declares or retrieves the state named id, returning a StateBuilder
// for configuring it. Calling State with the same id twice returns a
// builder over the same spec.
func (b *Builder) State(id primitives.StateID) *StateBuilder {
	spec, ok := b.specs[id]
	if !ok {
		spec = &primitives.StateSpec{ID: id}
		b.specs[id] = spec
		b.order = append(b.order, id)
	}
	return &StateBuilder{b: b, spec: spec}
}

// Build freezes every declared state into a Graph via hfsm.Build's
// validation rules.
func (b *Builder) Build() (*primitives.Graph, error) {
	specs := make([]primitives.StateSpec, 0, len(b.order))
	for _, id := range b.order {
		specs = append(specs, *b.specs[id])
	}
	return primitives.Build(specs)
}

// StateBuilder configures one state declared on a Builder.
type StateBuilder struct {
	b    *Builder
	spec *primitives.StateSpec
}

// Super sets the parent state id, making this state a child of it.
func (sb *StateBuilder) Super(id primitives.StateID) *StateBuilder {
	sb.spec.Super = id
	return sb
}

// Compound marks this state as composite with the given initial substate,
// entered whenever no history applies.
func (sb *StateBuilder) Compound(initial primitives.StateID) *StateBuilder {
	sb.spec.Initial = initial
	return sb
}

// History sets the history kind this composite state resumes by.
func (sb *StateBuilder) History(kind primitives.HistoryKind) *StateBuilder {
	sb.spec.History = kind
	return sb
}

// Entry appends an entry action, run in declaration order when the state
// is entered.
func (sb *StateBuilder) Entry(action primitives.Action) *StateBuilder {
	sb.spec.Entry = append(sb.spec.Entry, action)
	return sb
}

// Exit appends an exit action, run in declaration order when the state is
// exited.
func (sb *StateBuilder) Exit(action primitives.Action) *StateBuilder {
	sb.spec.Exit = append(sb.spec.Exit, action)
	return sb
}

// On declares an external or internal transition candidate for event,
// tried in the order this method is called for a given event. An empty
// target declares an internal transition.
func (sb *StateBuilder) On(event primitives.EventID, target primitives.StateID, guard primitives.Guard, actions ...primitives.Action) *StateBuilder {
	if sb.spec.On == nil {
		sb.spec.On = make(map[primitives.EventID][]primitives.TransitionSpec)
	}
	sb.spec.On[event] = append(sb.spec.On[event], primitives.TransitionSpec{
		Guard:   guard,
		Target:  target,
		Actions: actions,
	})
	return sb
}

// OnInternal declares an internal transition: its actions run but the
// state is never exited or re-entered.
func (sb *StateBuilder) OnInternal(event primitives.EventID, guard primitives.Guard, actions ...primitives.Action) *StateBuilder {
	return sb.On(event, "", guard, actions...)
}
