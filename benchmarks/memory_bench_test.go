package benchmarks

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/orbitalstate/hfsm"
)

func genFlatSpecs(n int) []hfsm.StateSpec {
	specs := make([]hfsm.StateSpec, 0, n+1)
	specs = append(specs, hfsm.StateSpec{ID: "root", Initial: "s0"})
	for i := 0; i < n; i++ {
		specs = append(specs, hfsm.StateSpec{ID: hfsm.StateID(fmt.Sprintf("s%d", i)), Super: "root"})
	}
	return specs
}

func genDeepSpecs(depth int) []hfsm.StateSpec {
	specs := []hfsm.StateSpec{{ID: "d0", Initial: "d1"}}
	for i := 1; i < depth; i++ {
		specs = append(specs, hfsm.StateSpec{
			ID: hfsm.StateID(fmt.Sprintf("d%d", i)), Super: hfsm.StateID(fmt.Sprintf("d%d", i-1)), Initial: hfsm.StateID(fmt.Sprintf("d%d", i+1)),
		})
	}
	specs = append(specs, hfsm.StateSpec{ID: hfsm.StateID(fmt.Sprintf("d%d", depth)), Super: hfsm.StateID(fmt.Sprintf("d%d", depth-1))})
	return specs
}

// BenchmarkMemoryFootprint reports bytes allocated per Container built
// over the same shared Graph. A Graph is immutable and shared across
// every PassiveMachine/ActiveMachine bound to it, so this isolates the
// per-runtime-instance cost rather than the (one-time) graph cost.
func BenchmarkMemoryFootprint(b *testing.B) {
	g, err := hfsm.Build([]hfsm.StateSpec{{ID: "idle"}})
	if err != nil {
		b.Fatal(err)
	}
	numMachines := 1000
	var before runtime.MemStats
	runtime.ReadMemStats(&before)
	machines := make([]*hfsm.PassiveMachine, numMachines)
	for i := 0; i < numMachines; i++ {
		machines[i] = hfsm.NewPassiveMachine(g, fmt.Sprintf("m%d", i))
	}
	runtime.GC()
	var after runtime.MemStats
	runtime.ReadMemStats(&after)
	bytesPerMachine := (after.TotalAlloc - before.TotalAlloc) / uint64(numMachines)
	b.ReportMetric(float64(bytesPerMachine)/1024, "KB/machine")
	runtime.KeepAlive(machines)
}

func BenchmarkMemoryFlat(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("states=%d", n), func(b *testing.B) {
			g, err := hfsm.Build(genFlatSpecs(n))
			if err != nil {
				b.Fatal(err)
			}
			numGraphs := 100
			var before runtime.MemStats
			runtime.ReadMemStats(&before)
			graphs := make([]*hfsm.Graph, numGraphs)
			for i := 0; i < numGraphs; i++ {
				gr, err := hfsm.Build(genFlatSpecs(n))
				if err != nil {
					b.Fatal(err)
				}
				graphs[i] = gr
			}
			runtime.GC()
			var after runtime.MemStats
			runtime.ReadMemStats(&after)
			bytesPerGraph := (after.TotalAlloc - before.TotalAlloc) / uint64(numGraphs)
			bytesPerState := bytesPerGraph / uint64(n+1)
			b.ReportMetric(float64(bytesPerGraph)/1024, "KB/graph")
			b.ReportMetric(float64(bytesPerState), "bytes/state")
			runtime.KeepAlive(g)
			runtime.KeepAlive(graphs)
		})
	}
}

func BenchmarkMemoryDeep(b *testing.B) {
	for _, depth := range []int{1, 3, 5} {
		b.Run(fmt.Sprintf("depth=%d", depth), func(b *testing.B) {
			numStates := depth + 1
			numGraphs := 100
			var before runtime.MemStats
			runtime.ReadMemStats(&before)
			graphs := make([]*hfsm.Graph, numGraphs)
			for i := 0; i < numGraphs; i++ {
				gr, err := hfsm.Build(genDeepSpecs(depth))
				if err != nil {
					b.Fatal(err)
				}
				graphs[i] = gr
			}
			runtime.GC()
			var after runtime.MemStats
			runtime.ReadMemStats(&after)
			bytesPerGraph := (after.TotalAlloc - before.TotalAlloc) / uint64(numGraphs)
			bytesPerState := bytesPerGraph / uint64(numStates)
			b.ReportMetric(float64(bytesPerGraph)/1024, "KB/graph")
			b.ReportMetric(float64(bytesPerState), "bytes/state")
			runtime.KeepAlive(graphs)
		})
	}
}
