// Package benchmarks measures transition throughput and memory
// footprint for the root hfsm package using PassiveMachine/ActiveMachine
// and StateSpec/Build.
package benchmarks

import (
	"testing"

	"github.com/orbitalstate/hfsm"
)

func simpleGraph(b *testing.B) *hfsm.Graph {
	b.Helper()
	g, err := hfsm.Build([]hfsm.StateSpec{
		{ID: "idle", On: map[hfsm.EventID][]hfsm.TransitionSpec{
			"tick": {{Target: "idle"}},
		}},
	})
	if err != nil {
		b.Fatal(err)
	}
	return g
}

func BenchmarkSimpleTransition(b *testing.B) {
	g := simpleGraph(b)
	m := hfsm.NewPassiveMachine(g, "simple")
	if err := m.Initialize("idle"); err != nil {
		b.Fatal(err)
	}
	e := hfsm.NewEvent("tick", nil)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := m.FireSync(e); err != nil {
			b.Fatal(err)
		}
	}
}

func hierarchicalGraph(b *testing.B) *hfsm.Graph {
	b.Helper()
	g, err := hfsm.Build([]hfsm.StateSpec{
		{ID: "parent", Initial: "leaf1"},
		{ID: "leaf1", Super: "parent", On: map[hfsm.EventID][]hfsm.TransitionSpec{
			"tick": {{Target: "leaf2"}},
		}},
		{ID: "leaf2", Super: "parent", On: map[hfsm.EventID][]hfsm.TransitionSpec{
			"tick": {{Target: "leaf1"}},
		}},
	})
	if err != nil {
		b.Fatal(err)
	}
	return g
}

func BenchmarkHierarchicalTransition(b *testing.B) {
	g := hierarchicalGraph(b)
	m := hfsm.NewPassiveMachine(g, "hier")
	if err := m.Initialize("parent"); err != nil {
		b.Fatal(err)
	}
	e := hfsm.NewEvent("tick", nil)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := m.FireSync(e); err != nil {
			b.Fatal(err)
		}
	}
}

func guardedGraph(b *testing.B) *hfsm.Graph {
	b.Helper()
	g, err := hfsm.Build([]hfsm.StateSpec{
		{ID: "idle", On: map[hfsm.EventID][]hfsm.TransitionSpec{
			"tick": {{
				Guard:  func(hfsm.TransitionInfo) (bool, error) { return true, nil },
				Target: "idle",
			}},
		}},
	})
	if err != nil {
		b.Fatal(err)
	}
	return g
}

func BenchmarkGuardedTransition(b *testing.B) {
	g := guardedGraph(b)
	m := hfsm.NewPassiveMachine(g, "guarded")
	if err := m.Initialize("idle"); err != nil {
		b.Fatal(err)
	}
	e := hfsm.NewEvent("tick", nil)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := m.FireSync(e); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkDeepTransition fires a self-transition declared on the leaf
// at the bottom of a chain of nested compound states, so the ancestor
// walks of the LCA search cover the whole chain, unlike the shallow
// single level of BenchmarkHierarchicalTransition. No bubbling occurs.
func BenchmarkDeepTransition(b *testing.B) {
	specs := []hfsm.StateSpec{{ID: "d0", Initial: "d1"}}
	depth := 8
	for i := 1; i < depth; i++ {
		specs = append(specs, hfsm.StateSpec{
			ID: hfsm.StateID(idOf("d", i)), Super: hfsm.StateID(idOf("d", i-1)), Initial: hfsm.StateID(idOf("d", i+1)),
		})
	}
	specs = append(specs, hfsm.StateSpec{
		ID: hfsm.StateID(idOf("d", depth)), Super: hfsm.StateID(idOf("d", depth-1)),
		On: map[hfsm.EventID][]hfsm.TransitionSpec{"tick": {{Target: hfsm.StateID(idOf("d", depth))}}},
	})
	g, err := hfsm.Build(specs)
	if err != nil {
		b.Fatal(err)
	}
	m := hfsm.NewPassiveMachine(g, "deep")
	if err := m.Initialize("d0"); err != nil {
		b.Fatal(err)
	}
	e := hfsm.NewEvent("tick", nil)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := m.FireSync(e); err != nil {
			b.Fatal(err)
		}
	}
}

func idOf(prefix string, n int) string {
	digits := []byte(prefix)
	digits = append(digits, byte('0'+n%10))
	return string(digits)
}
