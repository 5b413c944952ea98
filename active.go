package hfsm

import (
	"fmt"
	"sync"
)

// ActiveMachine is the worker-owned runtime (C6): a dedicated goroutine
// owns the container and drains a double-ended event queue — FIFO for
// normal events, LIFO-at-head for priority events — one event at a time.
// Producers only ever touch the queue lock; all C2/C3/C4 mutation happens
// on the worker goroutine.
type ActiveMachine struct {
	container *Container

	mu          sync.Mutex
	cond        *sync.Cond
	queue       []Event
	cancelled   bool
	running     bool
	initialized bool
	pendingInit bool
	initialID   StateID
	done        chan struct{}

	faultMu   sync.Mutex
	lastFault error
}

// NewActiveMachine creates an ActiveMachine bound to graph, in the
// Created lifecycle state.
func NewActiveMachine(graph *Graph, name string) *ActiveMachine {
	m := &ActiveMachine{container: NewContainer(graph, name)}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// Container exposes the underlying runtime state.
func (m *ActiveMachine) Container() *Container { return m.container }

// IsInitialized reports whether Initialize or Load has run.
func (m *ActiveMachine) IsInitialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

// IsRunning reports whether the worker is currently active.
func (m *ActiveMachine) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// Initialize moves the runner from Created to Initialized. It records
// the initial state but defers actually entering it to the worker's
// first tick, so extensions observing entry see the machine already
// started. Fails with ErrAlreadyInitialized if already initialized, and
// is mutually exclusive with Load.
func (m *ActiveMachine) Initialize(initial StateID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.initialized {
		return ErrAlreadyInitialized
	}
	if _, ok := m.container.Graph().State(initial); !ok {
		return &IllFormedGraphError{Reason: "initialize: unknown state " + string(initial)}
	}
	m.initialID = initial
	m.initialized = true
	m.pendingInit = true
	return nil
}

// Start spawns the worker goroutine, moving the runner to Running. It is
// idempotent while already running. Requires Initialize or Load to have
// run first.
func (m *ActiveMachine) Start() error {
	m.mu.Lock()
	if !m.initialized {
		m.mu.Unlock()
		return ErrNotInitialized
	}
	if m.running {
		m.mu.Unlock()
		return nil
	}
	m.cancelled = false
	m.running = true
	m.done = make(chan struct{})
	m.mu.Unlock()

	go m.workerLoop()
	notifyStarted(m.container.Extensions())
	return nil
}

// Fire appends event to the tail of the queue and wakes the worker.
// Requires the runner to be initialized; it does not require Running —
// events queued before Start are processed once it starts.
func (m *ActiveMachine) Fire(event Event) error {
	m.mu.Lock()
	if !m.initialized {
		m.mu.Unlock()
		return ErrNotInitialized
	}
	m.queue = append(m.queue, event)
	m.mu.Unlock()
	m.cond.Broadcast()
	notifyEventQueued(m.container.Extensions(), event)
	return nil
}

// FirePriority prepends event to the head of the queue, preempting any
// queued normal events but never an event already being processed.
// Relative order among events submitted this way is LIFO: the most
// recently fired priority event runs first.
func (m *ActiveMachine) FirePriority(event Event) error {
	m.mu.Lock()
	if !m.initialized {
		m.mu.Unlock()
		return ErrNotInitialized
	}
	m.queue = append([]Event{event}, m.queue...)
	m.mu.Unlock()
	m.cond.Broadcast()
	notifyEventQueuedWithPriority(m.container.Extensions(), event)
	return nil
}

// Stop signals the worker to exit after its current event finishes,
// wakes it, and joins it. It is idempotent. Queued events are retained
// for a subsequent Start. If the worker faulted, the fault is returned.
func (m *ActiveMachine) Stop() error {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return m.LastFault()
	}
	m.cancelled = true
	m.running = false
	done := m.done
	m.mu.Unlock()

	m.cond.Broadcast()
	<-done
	notifyStopped(m.container.Extensions())
	return m.LastFault()
}

// LastFault returns the most recent unexpected worker fault, if any,
// without blocking on Stop.
func (m *ActiveMachine) LastFault() error {
	m.faultMu.Lock()
	defer m.faultMu.Unlock()
	return m.lastFault
}

func (m *ActiveMachine) setFault(err error) {
	m.faultMu.Lock()
	m.lastFault = err
	m.faultMu.Unlock()
}

// AddExtension registers an extension with the underlying container.
func (m *ActiveMachine) AddExtension(ext Extension) { m.container.AddExtension(ext) }

// ClearExtensions removes every registered extension.
func (m *ActiveMachine) ClearExtensions() { m.container.ClearExtensions() }

func (m *ActiveMachine) workerLoop() {
	defer close(m.done)
	for {
		m.mu.Lock()
		if m.cancelled {
			m.mu.Unlock()
			return
		}
		if m.pendingInit {
			state := m.container.Graph().MustState(m.initialID)
			m.pendingInit = false
			m.mu.Unlock()
			m.runGuarded(func() { enterState(m.transitionCtx(), state) })
			continue
		}
		if len(m.queue) > 0 {
			event := m.queue[0]
			m.queue = m.queue[1:]
			m.mu.Unlock()
			m.runGuarded(func() { fire(m.container, event) })
			continue
		}
		m.cond.Wait()
		m.mu.Unlock()
	}
}

func (m *ActiveMachine) transitionCtx() *transitionCtx {
	return &transitionCtx{
		container: m.container,
		notify: func(ev Event, phase string, err error) {
			notifyTransitionExceptionThrown(m.container.Extensions(), TransitionExceptionThrown{Event: ev, Phase: phase, Err: err})
		},
	}
}

func (m *ActiveMachine) runGuarded(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			m.setFault(&WorkerFault{Err: fmt.Errorf("worker panic: %v", r)})
		}
	}()
	fn()
}

func notifyStarted(exts []Extension) {
	for _, ext := range exts {
		ext.StartedStateMachine()
	}
}

func notifyStopped(exts []Extension) {
	for _, ext := range exts {
		ext.StoppedStateMachine()
	}
}

func notifyEventQueued(exts []Extension, e Event) {
	for _, ext := range exts {
		ext.EventQueued(e)
	}
}

func notifyEventQueuedWithPriority(exts []Extension, e Event) {
	for _, ext := range exts {
		ext.EventQueuedWithPriority(e)
	}
}
