// StateDef is the immutable, post-build representation of one state in a
// Graph's hierarchy. StateSpec is the mutable, builder-facing declaration
// that Build consumes to produce validated StateDefs.
package primitives

// StateType distinguishes a leaf state from one that owns substates.
type StateType string

const (
	Atomic   StateType = "atomic"
	Compound StateType = "compound"
)

// HistoryKind selects how a composite state resumes its substate
// configuration when re-entered.
type HistoryKind int

const (
	HistoryNone HistoryKind = iota
	HistoryShallow
	HistoryDeep
)

func (h HistoryKind) String() string {
	switch h {
	case HistoryShallow:
		return "shallow"
	case HistoryDeep:
		return "deep"
	default:
		return "none"
	}
}

// StateSpec is the builder-facing declaration of one state. Super is the
// parent state id, empty for a root. Initial names the substate entered by
// default; required when the state has children, forbidden otherwise.
type StateSpec struct {
	ID      StateID
	Super   StateID
	Initial StateID
	History HistoryKind
	Entry   []Action
	Exit    []Action
	On      map[EventID][]TransitionSpec
}

// TransitionSpec is the builder-facing declaration of one transition. It is
// attached to the StateSpec whose On map holds it. An empty Target means
// internal (no exit/entry on firing).
type TransitionSpec struct {
	Guard   Guard
	Target  StateID
	Actions []Action
}

// StateDef is one immutable, validated node of a built Graph.
type StateDef struct {
	id              StateID
	super           *StateDef
	subStates       []*StateDef
	initialSubState *StateDef
	history         HistoryKind
	entry           []Action
	exit            []Action
	transitions     map[EventID][]*TransitionDef
	level           int
}

func (s *StateDef) ID() StateID               { return s.id }
func (s *StateDef) Super() *StateDef          { return s.super }
func (s *StateDef) SubStates() []*StateDef    { return s.subStates }
func (s *StateDef) InitialSubState() *StateDef { return s.initialSubState }
func (s *StateDef) History() HistoryKind      { return s.history }
func (s *StateDef) EntryActions() []Action    { return s.entry }
func (s *StateDef) ExitActions() []Action     { return s.exit }
func (s *StateDef) Level() int                { return s.level }
func (s *StateDef) IsComposite() bool         { return len(s.subStates) > 0 }
func (s *StateDef) IsLeaf() bool              { return len(s.subStates) == 0 }

// TransitionsFor returns the ordered transition candidates this state
// declares for the given event, or nil if it declares none.
func (s *StateDef) TransitionsFor(event EventID) []*TransitionDef {
	return s.transitions[event]
}

// Events returns the ids of every event this state declares a
// transition candidate for, in no particular order.
func (s *StateDef) Events() []EventID {
	events := make([]EventID, 0, len(s.transitions))
	for event := range s.transitions {
		events = append(events, event)
	}
	return events
}

// TransitionDef is one immutable, validated transition.
type TransitionDef struct {
	source  *StateDef
	target  *StateDef // nil: internal transition
	guard   Guard
	actions []Action
}

func (t *TransitionDef) Source() *StateDef { return t.source }
func (t *TransitionDef) Target() *StateDef { return t.target }
func (t *TransitionDef) IsInternal() bool  { return t.target == nil }
func (t *TransitionDef) Guard() Guard      { return t.guard }
func (t *TransitionDef) Actions() []Action { return t.actions }
