package hfsm

import "github.com/orbitalstate/hfsm/internal/primitives"

// fire implements C4: walk the hierarchy from the current leaf up,
// trying each level's transition candidates for event in declaration
// order before bubbling to the next ancestor. The first candidate whose
// guard holds is executed; if none do, the event is declined.
func fire(c *Container, event Event) {
	s := c.Current()
	if s == nil {
		return
	}

	info := primitives.TransitionInfo{
		Event:         event,
		Originating:   s.ID(),
		ExtendedState: c.ExtendedState(),
	}
	tc := &transitionCtx{
		container: c,
		info:      info,
		notify: func(ev Event, phase string, err error) {
			notifyTransitionExceptionThrown(c.Extensions(), TransitionExceptionThrown{Event: ev, Phase: phase, Err: err})
		},
	}

	for level := s; level != nil; level = level.Super() {
		for _, t := range level.TransitionsFor(event.ID) {
			ok, err := evalGuard(t.Guard(), info)
			if err != nil {
				tc.notify(event, "guard", &GuardError{Event: event.ID, Err: err})
				continue
			}
			if !ok {
				continue
			}
			notifyTransitionBegin(c.Extensions(), TransitionBegin{Event: event, State: s.ID()})
			executeTransition(tc, c.Graph(), s, t)
			notifyTransitionCompleted(c.Extensions(), TransitionCompleted{Event: event, NewState: c.Current().ID()})
			return
		}
	}

	notifyTransitionDeclined(c.Extensions(), TransitionDeclined{Event: event, State: s.ID()})
}

func evalGuard(guard primitives.Guard, info primitives.TransitionInfo) (bool, error) {
	if guard == nil {
		return true, nil
	}
	return guard(info)
}

// executeTransition runs one matched transition: internal (actions only),
// self (exit, actions, re-entry), or external (exit chain up to the LCA,
// actions, entry chain down to the target).
func executeTransition(tc *transitionCtx, g *primitives.Graph, current *primitives.StateDef, t *primitives.TransitionDef) {
	src, tgt := t.Source(), t.Target()

	if t.IsInternal() {
		tc.runActions(t.Actions(), "action")
		return
	}

	// Self transitions (tgt == src) fall out of the general case below:
	// CommonAncestor(src, src) is src itself, so lca == tgt == src,
	// which exits current up through and including src, then fully
	// re-enters src — exactly the exit/actions/entry sequence a self
	// transition needs, bubbled or not.
	var lca *primitives.StateDef
	switch {
	case g.IsDescendantOf(src, tgt):
		lca = tgt
	case g.IsDescendantOf(tgt, src):
		lca = src
	default:
		lca, _ = g.CommonAncestor(src, tgt)
	}

	for cur := current; cur != lca; cur = cur.Super() {
		exitState(tc, cur)
	}
	if lca == tgt {
		// src is a descendant of tgt: exit up to and including tgt.
		exitState(tc, lca)
	}

	tc.runActions(t.Actions(), "action")

	enterToward(tc, g, lca, tgt)
}

// enterToward runs entry actions for every state strictly between lca and
// tgt (outer to inner, pass-through — their descent is dictated by the
// path to tgt, not their own initial/history), then fully enters tgt so
// its own initial-substate or history descent resolves the final leaf.
func enterToward(tc *transitionCtx, g *primitives.Graph, lca, tgt *primitives.StateDef) {
	path := g.PathToRoot(tgt) // [tgt, ..., lca, ..., root]
	idx := -1
	for i, s := range path {
		if s == lca {
			idx = i
			break
		}
	}
	if idx < 0 {
		enterState(tc, tgt)
		return
	}
	for i := idx - 1; i >= 1; i-- {
		tc.runActions(path[i].EntryActions(), "entry")
	}
	enterState(tc, tgt)
}
