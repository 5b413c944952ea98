package hfsm

import "github.com/orbitalstate/hfsm/internal/primitives"

// transitionCtx carries everything Entry/Exit/action execution needs for
// one firing: the container being mutated, the TransitionInfo exposed to
// user code, and where to send exception notifications.
type transitionCtx struct {
	container *Container
	info      primitives.TransitionInfo
	notify    func(Event, string, error)
}

func (tc *transitionCtx) runActions(actions []primitives.Action, phase string) {
	for _, action := range actions {
		if action == nil {
			continue
		}
		if err := action(tc.info); err != nil {
			tc.notify(tc.info.Event, phase, &ActionError{Event: tc.info.Event.ID, Phase: phase, Err: err})
		}
	}
}

// enterState runs state's entry actions and, if it is composite, selects
// and recurses into the appropriate substate: the recorded history
// descendant when the state's history kind is shallow or deep and an
// entry exists, otherwise the declared initial substate. Reaching a leaf
// sets the container's current_state.
func enterState(tc *transitionCtx, state *primitives.StateDef) {
	tc.runActions(state.EntryActions(), "entry")

	if state.IsLeaf() {
		tc.container.setCurrent(state)
		return
	}

	if state.History() != primitives.HistoryNone {
		if recordedID, ok := tc.container.LastActiveFor(state.ID()); ok {
			if recorded, ok := tc.container.graph.State(recordedID); ok {
				if state.History() == primitives.HistoryDeep {
					enterForcedPath(tc, state, recorded)
				} else {
					enterState(tc, recorded)
				}
				return
			}
		}
	}

	enterState(tc, state.InitialSubState())
}

// enterForcedPath enters every state strictly between ancestor and leaf
// (exclusive of ancestor) in outer-to-inner order, running only entry
// actions for the intermediate states — never their own initial/history
// resolution, since the path to leaf is already fixed — then fully
// enters leaf via enterState so it can run its own entry actions and set
// current_state.
func enterForcedPath(tc *transitionCtx, ancestor, leaf *primitives.StateDef) {
	path := tc.container.graph.PathToRoot(leaf) // [leaf, ..., ancestor, ..., root]
	idx := -1
	for i, s := range path {
		if s == ancestor {
			idx = i
			break
		}
	}
	if idx < 0 {
		// leaf is not actually a descendant of ancestor; fall back to a
		// plain entry of leaf rather than silently doing nothing.
		enterState(tc, leaf)
		return
	}
	for i := idx - 1; i >= 1; i-- {
		tc.runActions(path[i].EntryActions(), "entry")
	}
	enterState(tc, leaf)
}

// exitState records history (if state has a history kind) then runs
// state's exit actions. The recorded descendant is the container's
// current leaf for deep history, or the direct child of state on the
// path to that leaf for shallow history.
func exitState(tc *transitionCtx, state *primitives.StateDef) {
	if state.IsComposite() && state.History() != primitives.HistoryNone {
		active := tc.container.Current()
		if active != nil {
			switch state.History() {
			case primitives.HistoryDeep:
				tc.container.SetLastActiveFor(state.ID(), active.ID())
			default: // HistoryShallow
				if child := directChildTowards(state, active); child != nil {
					tc.container.SetLastActiveFor(state.ID(), child.ID())
				}
			}
		}
	}
	tc.runActions(state.ExitActions(), "exit")
}

// directChildTowards returns the child of ancestor that lies on the path
// up from descendant, or nil if descendant does not descend from
// ancestor.
func directChildTowards(ancestor, descendant *primitives.StateDef) *primitives.StateDef {
	cur := descendant
	for cur != nil {
		if cur.Super() == ancestor {
			return cur
		}
		cur = cur.Super()
	}
	return nil
}
