// Graph is the immutable, validated result of Build: the complete state
// hierarchy plus the LCA-adjacent traversal helpers C4's transition logic
// needs (IsDescendantOf, CommonAncestor, PathToRoot). A Graph never changes
// after Build returns; all runtime mutation lives in the Container.
package primitives

import "fmt"

// Graph owns every StateDef reachable from its roots and answers
// hierarchy questions in O(depth) using each StateDef's super pointer.
type Graph struct {
	states map[StateID]*StateDef
	roots  []*StateDef
}

// State looks up a state by id.
func (g *Graph) State(id StateID) (*StateDef, bool) {
	s, ok := g.states[id]
	return s, ok
}

// MustState panics if id is unknown; reserved for call sites that already
// validated the id against this Graph (e.g. Container invariants).
func (g *Graph) MustState(id StateID) *StateDef {
	s, ok := g.states[id]
	if !ok {
		panic(fmt.Sprintf("hfsm: unknown state %q", id))
	}
	return s
}

// Roots returns the top-level states (no super).
func (g *Graph) Roots() []*StateDef { return g.roots }

// Len reports how many states the graph contains.
func (g *Graph) Len() int { return len(g.states) }

// IsDescendantOf reports whether a is strictly below b in the hierarchy.
func (g *Graph) IsDescendantOf(a, b *StateDef) bool {
	if a == nil || b == nil || a == b {
		return false
	}
	for cur := a.super; cur != nil; cur = cur.super {
		if cur == b {
			return true
		}
	}
	return false
}

// PathToRoot returns the ordered ancestor chain of s, starting at s itself
// and ending at its root.
func (g *Graph) PathToRoot(s *StateDef) []*StateDef {
	path := make([]*StateDef, 0, s.level+1)
	for cur := s; cur != nil; cur = cur.super {
		path = append(path, cur)
	}
	return path
}

// CommonAncestor returns the lowest state that is an ancestor of (or equal
// to) both a and b, or (nil, false) if they belong to disjoint trees.
func (g *Graph) CommonAncestor(a, b *StateDef) (*StateDef, bool) {
	ancestorsOfA := make(map[*StateDef]struct{}, a.level+1)
	for cur := a; cur != nil; cur = cur.super {
		ancestorsOfA[cur] = struct{}{}
	}
	for cur := b; cur != nil; cur = cur.super {
		if _, ok := ancestorsOfA[cur]; ok {
			return cur, true
		}
	}
	return nil, false
}

// Build validates a set of StateSpecs against the invariants in spec.md §3
// and freezes them into a Graph. Order of specs does not matter; forward
// references (a child declared before its parent) are resolved in two
// passes.
func Build(specs []StateSpec) (*Graph, error) {
	if len(specs) == 0 {
		return nil, illFormed("no states provided")
	}

	defs := make(map[StateID]*StateDef, len(specs))
	bySuper := make(map[StateID][]StateID)
	specByID := make(map[StateID]StateSpec, len(specs))

	for _, spec := range specs {
		if spec.ID == "" {
			return nil, illFormed("state id must not be empty")
		}
		if _, dup := defs[spec.ID]; dup {
			return nil, illFormed("duplicate state id %q", spec.ID)
		}
		defs[spec.ID] = &StateDef{id: spec.ID, history: spec.History, entry: spec.Entry, exit: spec.Exit}
		specByID[spec.ID] = spec
		if spec.Super != "" {
			bySuper[spec.Super] = append(bySuper[spec.Super], spec.ID)
		}
	}

	var roots []*StateDef
	for _, spec := range specs {
		def := defs[spec.ID]
		if spec.Super == "" {
			roots = append(roots, def)
			continue
		}
		super, ok := defs[spec.Super]
		if !ok {
			return nil, illFormed("state %q declares unknown super %q", spec.ID, spec.Super)
		}
		def.super = super
	}
	for _, spec := range specs {
		def := defs[spec.ID]
		for _, childID := range bySuper[spec.ID] {
			def.subStates = append(def.subStates, defs[childID])
		}
	}

	if len(roots) == 0 {
		return nil, illFormed("no root state (every state declares a super; hierarchy is cyclic)")
	}
	if len(roots) > 1 {
		return nil, illFormed("multiple root states declared (%d); common_ancestor requires a single top state", len(roots))
	}
	if err := detectCycles(roots, len(defs)); err != nil {
		return nil, err
	}
	if err := assignLevels(roots); err != nil {
		return nil, err
	}

	for id, def := range defs {
		spec := specByID[id]
		if len(def.subStates) == 0 {
			if spec.Initial != "" {
				return nil, illFormed("atomic state %q must not declare an initial substate", id)
			}
			if spec.History != HistoryNone {
				return nil, illFormed("state %q has a history kind but no substates", id)
			}
		} else {
			if spec.Initial == "" {
				return nil, illFormed("composite state %q requires an initial substate", id)
			}
			initial, ok := defs[spec.Initial]
			if !ok || initial.super != def {
				return nil, illFormed("composite state %q: initial substate %q is not one of its children", id, spec.Initial)
			}
			def.initialSubState = initial
		}
	}

	for id, def := range defs {
		spec := specByID[id]
		if len(spec.On) == 0 {
			continue
		}
		def.transitions = make(map[EventID][]*TransitionDef, len(spec.On))
		for event, transSpecs := range spec.On {
			if event == "" {
				return nil, illFormed("state %q declares a transition with an empty event id", id)
			}
			for _, ts := range transSpecs {
				var target *StateDef
				if ts.Target != "" {
					t, ok := defs[ts.Target]
					if !ok {
						return nil, illFormed("state %q: transition on %q targets unknown state %q", id, event, ts.Target)
					}
					target = t
				}
				def.transitions[event] = append(def.transitions[event], &TransitionDef{
					source:  def,
					target:  target,
					guard:   ts.Guard,
					actions: ts.Actions,
				})
			}
		}
	}

	return &Graph{states: defs, roots: roots}, nil
}

func detectCycles(roots []*StateDef, total int) error {
	visited := make(map[*StateDef]bool, total)
	var walk func(*StateDef) error
	walk = func(s *StateDef) error {
		if visited[s] {
			return illFormed("cyclic hierarchy detected at state %q", s.id)
		}
		visited[s] = true
		for _, child := range s.subStates {
			if err := walk(child); err != nil {
				return err
			}
		}
		return nil
	}
	for _, r := range roots {
		if err := walk(r); err != nil {
			return err
		}
	}
	if len(visited) != total {
		return illFormed("hierarchy is not a single forest of trees (disconnected or cyclic)")
	}
	return nil
}

func assignLevels(roots []*StateDef) error {
	var walk func(*StateDef, int)
	walk = func(s *StateDef, level int) {
		s.level = level
		for _, child := range s.subStates {
			walk(child, level+1)
		}
	}
	for _, r := range roots {
		walk(r, 0)
	}
	return nil
}
