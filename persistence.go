package hfsm

// Saver is the external contract C7 writes through. Implementations
// decide the storage format; the core only dictates write order:
// current state, then history.
type Saver interface {
	// SaveCurrentState writes the current leaf's id. present is false
	// when the machine has no current state (never entered).
	SaveCurrentState(current StateID, present bool) error
	// SaveHistoryStates writes the full owner -> last-active-descendant
	// map.
	SaveHistoryStates(history map[StateID]StateID) error
}

// Loader is the external contract C7 reads through. Output must match
// what a previous Save produced; the format is the loader's concern.
type Loader interface {
	LoadCurrentState() (current StateID, present bool, err error)
	LoadHistoryStates() (map[StateID]StateID, error)
}

// Save writes a container's current state and history through s, current
// first as the contract requires.
func Save(c *Container, s Saver) error {
	current := c.Current()
	var id StateID
	present := current != nil
	if present {
		id = current.ID()
	}
	if err := s.SaveCurrentState(id, present); err != nil {
		return err
	}
	return s.SaveHistoryStates(c.HistorySnapshot())
}

// loadInto reads current state and history through loader into c,
// verifying every history entry's recorded descendant actually descends
// from its claimed owner before applying any of it.
func loadInto(c *Container, loader Loader) error {
	currentID, present, err := loader.LoadCurrentState()
	if err != nil {
		return err
	}
	history, err := loader.LoadHistoryStates()
	if err != nil {
		return err
	}

	for owner, descendant := range history {
		ownerState, ok := c.Graph().State(owner)
		if !ok {
			return &InvalidHistoryStateError{Owner: owner, Recorded: descendant}
		}
		descState, ok := c.Graph().State(descendant)
		if !ok || !c.Graph().IsDescendantOf(descState, ownerState) {
			return &InvalidHistoryStateError{Owner: owner, Recorded: descendant}
		}
	}
	for owner, descendant := range history {
		c.SetLastActiveFor(owner, descendant)
	}

	if present {
		state, ok := c.Graph().State(currentID)
		if !ok {
			return &IllFormedGraphError{Reason: "load: unknown current state " + string(currentID)}
		}
		c.setCurrent(state)
	}

	for _, ext := range c.Extensions() {
		ext.Loaded(currentID, history)
	}
	return nil
}

// Load is legal only before Initialize; it is mutually exclusive with it.
// On success the initialize slot is consumed even if the loader reports
// no current state — the machine remains unfireable until a current
// state exists, but a second Initialize or Load is rejected.
func (p *PassiveMachine) Load(loader Loader) error {
	if p.initialized {
		return ErrAlreadyInitialized
	}
	if err := loadInto(p.container, loader); err != nil {
		return err
	}
	p.initialized = true
	return nil
}

// Load is legal only before Initialize; it is mutually exclusive with it.
// It does not schedule entry work for the worker — the loaded state is
// already resolved, so there is nothing to defer.
func (m *ActiveMachine) Load(loader Loader) error {
	m.mu.Lock()
	if m.initialized {
		m.mu.Unlock()
		return ErrAlreadyInitialized
	}
	m.mu.Unlock()

	if err := loadInto(m.container, loader); err != nil {
		return err
	}

	m.mu.Lock()
	m.initialized = true
	m.pendingInit = false
	m.mu.Unlock()
	return nil
}
