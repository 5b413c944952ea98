package hfsm

// PassiveMachine is the synchronous façade (C5): FireSync runs one
// transition to completion on the caller's thread. It is not safe for
// concurrent invocation — callers must serialize their own calls.
type PassiveMachine struct {
	container   *Container
	initialized bool
}

// NewPassiveMachine creates a PassiveMachine bound to graph.
func NewPassiveMachine(graph *Graph, name string) *PassiveMachine {
	return &PassiveMachine{container: NewContainer(graph, name)}
}

// Container exposes the underlying runtime state.
func (p *PassiveMachine) Container() *Container { return p.container }

// IsInitialized reports whether Initialize or Load has run.
func (p *PassiveMachine) IsInitialized() bool { return p.initialized }

// Initialize enters the given initial state immediately (the passive
// façade has no worker tick to defer entry to, unlike the active runner).
// It fails with ErrAlreadyInitialized if already initialized.
func (p *PassiveMachine) Initialize(initial StateID) error {
	if p.initialized {
		return ErrAlreadyInitialized
	}
	state, ok := p.container.Graph().State(initial)
	if !ok {
		return &IllFormedGraphError{Reason: "initialize: unknown state " + string(initial)}
	}
	tc := &transitionCtx{
		container: p.container,
		notify: func(ev Event, phase string, err error) {
			notifyTransitionExceptionThrown(p.container.Extensions(), TransitionExceptionThrown{Event: ev, Phase: phase, Err: err})
		},
	}
	enterState(tc, state)
	p.initialized = true
	return nil
}

// FireSync requires an initialized machine; it runs the transition
// engine to completion on the caller's thread.
func (p *PassiveMachine) FireSync(event Event) error {
	if !p.initialized {
		return ErrNotInitialized
	}
	fire(p.container, event)
	return nil
}

// AddExtension registers an extension with the underlying container.
func (p *PassiveMachine) AddExtension(ext Extension) { p.container.AddExtension(ext) }

// ClearExtensions removes every registered extension.
func (p *PassiveMachine) ClearExtensions() { p.container.ClearExtensions() }
