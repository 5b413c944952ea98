// Package report generates read-only views of a Graph — Graphviz DOT and
// JSON — in the style of a DefaultVisualizer's ExportDOT/ExportJSON, with
// the clustered-subgraph rendering borrowed from enetx-fsm's graphviz.go.
// Neither reporter touches a Container; both work directly off a Graph
// plus an optional current-state id.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/orbitalstate/hfsm"
)

// DOTReporter renders a Graph as Graphviz DOT source, clustering
// composite states into subgraphs the way enetx-fsm's graphviz
// generator does.
type DOTReporter struct{}

// Render writes DOT source for graph. If current is non-empty, that
// state (and each of its ancestors) is highlighted.
func (DOTReporter) Render(name string, graph *hfsm.Graph, current hfsm.StateID) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %s {\n", dotQuote(name))
	buf.WriteString("  rankdir=LR;\n  node [shape=box, fontsize=10, style=rounded];\n  edge [fontsize=9];\n")

	active := activeAncestors(graph, current)
	for _, root := range sortedRoots(graph) {
		renderState(&buf, root, active)
	}
	for _, edge := range collectEdges(graph) {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", edge.From, edge.To, edge.Label)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func dotQuote(s string) string {
	if s == "" {
		return "Statechart"
	}
	return s
}

func activeAncestors(graph *hfsm.Graph, current hfsm.StateID) map[hfsm.StateID]bool {
	active := map[hfsm.StateID]bool{}
	state, ok := graph.State(current)
	if !ok {
		return active
	}
	for s := state; s != nil; s = s.Super() {
		active[s.ID()] = true
	}
	return active
}

type edge struct {
	From, To, Label string
}

func collectEdges(graph *hfsm.Graph) []edge {
	var edges []edge
	walkGraph(graph, func(s *hfsm.StateDef) {
		for _, event := range sortedEvents(s) {
			for _, t := range s.TransitionsFor(event) {
				if t.IsInternal() {
					continue
				}
				edges = append(edges, edge{From: string(s.ID()), To: string(t.Target().ID()), Label: string(event)})
			}
		}
	})
	return edges
}

func sortedEvents(s *hfsm.StateDef) []hfsm.EventID {
	events := s.Events()
	sort.Slice(events, func(i, j int) bool { return events[i] < events[j] })
	return events
}

func renderState(buf *bytes.Buffer, state *hfsm.StateDef, active map[hfsm.StateID]bool) {
	if state.IsComposite() {
		fmt.Fprintf(buf, "  subgraph cluster_%s {\n", string(state.ID()))
		style := ""
		if active[state.ID()] {
			style = " style=filled fillcolor=orange"
		}
		fmt.Fprintf(buf, "    label=%q%s;\n", string(state.ID()), style)
		fmt.Fprintf(buf, "    %q [label=%q shape=ellipse%s];\n", state.ID(), state.ID(), style)
		for _, child := range sortedChildren(state) {
			renderState(buf, child, active)
		}
		buf.WriteString("  }\n")
		return
	}
	style := ""
	if active[state.ID()] {
		style = " style=filled fillcolor=lightgreen"
	}
	fmt.Fprintf(buf, "  %q [label=%q%s];\n", state.ID(), state.ID(), style)
}

func sortedRoots(graph *hfsm.Graph) []*hfsm.StateDef {
	roots := append([]*hfsm.StateDef{}, graph.Roots()...)
	sort.Slice(roots, func(i, j int) bool { return roots[i].ID() < roots[j].ID() })
	return roots
}

func sortedChildren(s *hfsm.StateDef) []*hfsm.StateDef {
	children := append([]*hfsm.StateDef{}, s.SubStates()...)
	sort.Slice(children, func(i, j int) bool { return children[i].ID() < children[j].ID() })
	return children
}

func walkGraph(graph *hfsm.Graph, fn func(*hfsm.StateDef)) {
	var walk func(*hfsm.StateDef)
	walk = func(s *hfsm.StateDef) {
		fn(s)
		for _, child := range s.SubStates() {
			walk(child)
		}
	}
	for _, root := range sortedRoots(graph) {
		walk(root)
	}
}

// JSONReporter serializes a Graph's structure to JSON.
type JSONReporter struct{}

// stateView is the serializable shape of one state, independent of the
// internal StateDef representation.
type stateView struct {
	ID       hfsm.StateID   `json:"id"`
	Super    hfsm.StateID   `json:"super,omitempty"`
	Initial  hfsm.StateID   `json:"initial,omitempty"`
	History  string         `json:"history,omitempty"`
	Children []hfsm.StateID `json:"children,omitempty"`
	Events   []hfsm.EventID `json:"events,omitempty"`
}

type graphView struct {
	Name    string       `json:"name"`
	Current hfsm.StateID `json:"current,omitempty"`
	States  []stateView  `json:"states"`
}

// Render serializes graph (and optionally the current state) to
// indented JSON.
func (JSONReporter) Render(name string, graph *hfsm.Graph, current hfsm.StateID) ([]byte, error) {
	view := graphView{Name: name, Current: current}
	walkGraph(graph, func(s *hfsm.StateDef) {
		sv := stateView{ID: s.ID()}
		if s.Super() != nil {
			sv.Super = s.Super().ID()
		}
		if s.InitialSubState() != nil {
			sv.Initial = s.InitialSubState().ID()
		}
		if s.History() != hfsm.HistoryNone {
			sv.History = s.History().String()
		}
		for _, child := range sortedChildren(s) {
			sv.Children = append(sv.Children, child.ID())
		}
		sv.Events = sortedEvents(s)
		view.States = append(view.States, sv)
	})
	return json.MarshalIndent(view, "", "  ")
}
