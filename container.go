package hfsm

import "github.com/orbitalstate/hfsm/internal/primitives"

// Container holds the mutable runtime state bound to an immutable Graph:
// the current leaf, recorded history, extended state, and the registered
// extensions. In active mode only the worker goroutine touches it; in
// passive mode the caller must not invoke FireSync concurrently.
type Container struct {
	graph         *primitives.Graph
	name          string
	current       *primitives.StateDef
	initialID     primitives.StateID
	lastActive    map[primitives.StateID]primitives.StateID
	extendedState *primitives.ExtendedState
	extensions    []Extension
}

// NewContainer creates a Container bound to graph. The container starts
// with no current state; Initialize or Load must run before firing.
func NewContainer(graph *primitives.Graph, name string) *Container {
	return &Container{
		graph:         graph,
		name:          name,
		lastActive:    make(map[primitives.StateID]primitives.StateID),
		extendedState: primitives.NewExtendedState(),
	}
}

// Graph returns the immutable graph this container is bound to.
func (c *Container) Graph() *primitives.Graph { return c.graph }

// Name returns the container's display name.
func (c *Container) Name() string { return c.name }

// ExtendedState returns the container's extended-state store.
func (c *Container) ExtendedState() *primitives.ExtendedState { return c.extendedState }

// Current returns the current leaf state, or nil if never initialized.
func (c *Container) Current() *primitives.StateDef { return c.current }

func (c *Container) setCurrent(s *primitives.StateDef) { c.current = s }

// SetLastActiveFor records the last active descendant of a history-bearing
// composite state.
func (c *Container) SetLastActiveFor(owner primitives.StateID, descendant primitives.StateID) {
	c.lastActive[owner] = descendant
}

// LastActiveFor returns the recorded descendant for owner, if any.
func (c *Container) LastActiveFor(owner primitives.StateID) (primitives.StateID, bool) {
	id, ok := c.lastActive[owner]
	return id, ok
}

// ClearLastActiveFor removes any recorded history for owner.
func (c *Container) ClearLastActiveFor(owner primitives.StateID) {
	delete(c.lastActive, owner)
}

// HistorySnapshot returns a copy of the full owner -> descendant history
// map, for persistence.
func (c *Container) HistorySnapshot() map[primitives.StateID]primitives.StateID {
	snap := make(map[primitives.StateID]primitives.StateID, len(c.lastActive))
	for k, v := range c.lastActive {
		snap[k] = v
	}
	return snap
}

// Extensions returns the registered extensions in registration order.
func (c *Container) Extensions() []Extension { return c.extensions }

// AddExtension registers an extension. Notification order equals
// registration order.
func (c *Container) AddExtension(ext Extension) { c.extensions = append(c.extensions, ext) }

// ClearExtensions removes every registered extension.
func (c *Container) ClearExtensions() { c.extensions = nil }
