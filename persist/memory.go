// Package persist provides concrete hfsm.Saver / hfsm.Loader
// implementations: an in-memory one for tests and embedding, a YAML file
// backend in the style of a YAMLPersister, and a Redis backend following
// the same key-prefixed JSON adapter shape used for similar save/load
// contracts elsewhere.
package persist

import "github.com/orbitalstate/hfsm"

// MemorySaverLoader keeps the last saved state in memory. It is not safe
// for concurrent Save/Load calls from different goroutines without
// external synchronization, matching the machine it backs.
type MemorySaverLoader struct {
	current StateSnapshot
	history map[hfsm.StateID]hfsm.StateID
}

// StateSnapshot records whether a current state was present at save time.
type StateSnapshot struct {
	ID      hfsm.StateID
	Present bool
}

// NewMemorySaverLoader creates an empty MemorySaverLoader.
func NewMemorySaverLoader() *MemorySaverLoader {
	return &MemorySaverLoader{history: map[hfsm.StateID]hfsm.StateID{}}
}

func (m *MemorySaverLoader) SaveCurrentState(current hfsm.StateID, present bool) error {
	m.current = StateSnapshot{ID: current, Present: present}
	return nil
}

func (m *MemorySaverLoader) SaveHistoryStates(history map[hfsm.StateID]hfsm.StateID) error {
	snap := make(map[hfsm.StateID]hfsm.StateID, len(history))
	for k, v := range history {
		snap[k] = v
	}
	m.history = snap
	return nil
}

func (m *MemorySaverLoader) LoadCurrentState() (hfsm.StateID, bool, error) {
	return m.current.ID, m.current.Present, nil
}

func (m *MemorySaverLoader) LoadHistoryStates() (map[hfsm.StateID]hfsm.StateID, error) {
	snap := make(map[hfsm.StateID]hfsm.StateID, len(m.history))
	for k, v := range m.history {
		snap[k] = v
	}
	return snap, nil
}
