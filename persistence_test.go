package hfsm

import (
	"errors"
	"testing"
)

type memorySaverLoader struct {
	current StateID
	present bool
	history map[StateID]StateID
}

func (m *memorySaverLoader) SaveCurrentState(current StateID, present bool) error {
	m.current, m.present = current, present
	return nil
}

func (m *memorySaverLoader) SaveHistoryStates(history map[StateID]StateID) error {
	m.history = history
	return nil
}

func (m *memorySaverLoader) LoadCurrentState() (StateID, bool, error) {
	return m.current, m.present, nil
}

func (m *memorySaverLoader) LoadHistoryStates() (map[StateID]StateID, error) {
	return m.history, nil
}

func buildPersistenceFixture(t *testing.T) *Graph {
	t.Helper()
	g, err := Build([]StateSpec{
		{ID: "ROOT", Initial: "C"},
		{ID: "C", Super: "ROOT", Initial: "X", History: HistoryShallow},
		{ID: "X", Super: "C"},
		{ID: "Y", Super: "C"},
		{ID: "OUTSIDE", Super: "ROOT"},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g
}

// Invariant 6: save followed by load on a fresh runner restores
// current_state and every history entry verbatim.
func TestSaveLoadRoundTrip(t *testing.T) {
	g := buildPersistenceFixture(t)
	src := NewPassiveMachine(g, "src")
	if err := src.Initialize("C"); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	src.Container().SetLastActiveFor("ROOT", "OUTSIDE")

	store := &memorySaverLoader{}
	if err := Save(src.Container(), store); err != nil {
		t.Fatalf("Save: %v", err)
	}

	dst := NewPassiveMachine(g, "dst")
	if err := dst.Load(store); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if dst.Container().Current().ID() != src.Container().Current().ID() {
		t.Errorf("current = %q want %q", dst.Container().Current().ID(), src.Container().Current().ID())
	}
	if got, ok := dst.Container().LastActiveFor("ROOT"); !ok || got != "OUTSIDE" {
		t.Errorf("history[ROOT] = (%q, %v) want (OUTSIDE, true)", got, ok)
	}
}

func TestLoadRejectsHistoryNotDescendantOfOwner(t *testing.T) {
	g := buildPersistenceFixture(t)
	store := &memorySaverLoader{
		current: "X",
		present: true,
		history: map[StateID]StateID{"C": "OUTSIDE"}, // OUTSIDE is not a descendant of C
	}
	m := NewPassiveMachine(g, "m")
	err := m.Load(store)
	var invalidErr *InvalidHistoryStateError
	if !errors.As(err, &invalidErr) {
		t.Fatalf("Load = %v want *InvalidHistoryStateError", err)
	}
	if m.IsInitialized() {
		t.Error("a rejected load must not leave the machine initialized")
	}
}

func TestLoadMutuallyExclusiveWithInitialize(t *testing.T) {
	g := buildPersistenceFixture(t)
	m := NewPassiveMachine(g, "m")
	if err := m.Initialize("X"); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	store := &memorySaverLoader{current: "Y", present: true}
	if err := m.Load(store); !errors.Is(err, ErrAlreadyInitialized) {
		t.Errorf("Load after Initialize = %v want ErrAlreadyInitialized", err)
	}
}

func TestLoadOnActiveMachineClearsPendingInit(t *testing.T) {
	g := buildPersistenceFixture(t)
	store := &memorySaverLoader{current: "Y", present: true}
	m := NewActiveMachine(g, "m")
	if err := m.Load(store); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !m.IsInitialized() {
		t.Error("expected IsInitialized after Load")
	}
	if err := m.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer m.Stop()
	if m.Container().Current().ID() != "Y" {
		t.Errorf("current = %q want Y (loaded, no deferred entry should redescend from root)", m.Container().Current().ID())
	}
}

func TestLoadedExtensionNotified(t *testing.T) {
	g := buildPersistenceFixture(t)
	store := &memorySaverLoader{current: "Y", present: true, history: map[StateID]StateID{}}
	m := NewPassiveMachine(g, "m")
	var notifiedCurrent StateID
	notified := false
	m.AddExtension(&loadObserver{onLoaded: func(current StateID, _ map[StateID]StateID) {
		notified = true
		notifiedCurrent = current
	}})
	if err := m.Load(store); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !notified || notifiedCurrent != "Y" {
		t.Errorf("notified = %v current = %q want true/Y", notified, notifiedCurrent)
	}
}

type loadObserver struct {
	BaseExtension
	onLoaded func(StateID, map[StateID]StateID)
}

func (l *loadObserver) Loaded(current StateID, history map[StateID]StateID) {
	l.onLoaded(current, history)
}
