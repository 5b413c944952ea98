package extension_test

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/orbitalstate/hfsm"
	"github.com/orbitalstate/hfsm/extension"
	dto "github.com/prometheus/client_model/go"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func buildGraph(t *testing.T) *hfsm.Graph {
	t.Helper()
	g, err := hfsm.Build([]hfsm.StateSpec{
		{ID: "A", On: map[hfsm.EventID][]hfsm.TransitionSpec{"e": {{Target: "B"}}}},
		{ID: "B"},
	})
	require.NoError(t, err)
	return g
}

func TestLoggingExtensionLogsTransitionCompleted(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ext := extension.NewLoggingExtension(logger)

	m := hfsm.NewPassiveMachine(buildGraph(t), "m")
	m.AddExtension(ext)
	require.NoError(t, m.Initialize("A"))
	require.NoError(t, m.FireSync(hfsm.NewEvent("e", nil)))

	require.Contains(t, buf.String(), "hfsm transition completed")
	require.Contains(t, buf.String(), "new_state=B")
}

func TestMetricsExtensionCountsCompletedAndDeclined(t *testing.T) {
	reg := prometheus.NewRegistry()
	ext, err := extension.NewMetricsExtension("m", reg)
	require.NoError(t, err)

	g := buildGraph(t)
	m := hfsm.NewPassiveMachine(g, "m")
	m.AddExtension(ext)
	require.NoError(t, m.Initialize("A"))
	require.NoError(t, m.FireSync(hfsm.NewEvent("e", nil)))   // completes
	require.NoError(t, m.FireSync(hfsm.NewEvent("nope", nil))) // declines, current=B has no transitions

	metricFamilies, err := reg.Gather()
	require.NoError(t, err)

	var sawCompleted, sawDeclined bool
	for _, mf := range metricFamilies {
		switch mf.GetName() {
		case "hfsm_transitions_completed_total":
			sawCompleted = true
		case "hfsm_transitions_declined_total":
			sawDeclined = true
		}
	}
	require.True(t, sawCompleted, "expected hfsm_transitions_completed_total to be registered")
	require.True(t, sawDeclined, "expected hfsm_transitions_declined_total to be registered")
	depth, ok := gaugeValue(metricFamilies, "hfsm_active_queue_depth")
	require.True(t, ok, "expected hfsm_active_queue_depth to be registered")
	require.Equal(t, float64(0), depth,
		"queue depth must stay at zero on a PassiveMachine, which never calls EventQueued")
}

func TestMetricsExtensionQueueDepthTracksActiveMachine(t *testing.T) {
	reg := prometheus.NewRegistry()
	ext, err := extension.NewMetricsExtension("m", reg)
	require.NoError(t, err)

	g := buildGraph(t)
	m := hfsm.NewActiveMachine(g, "m")
	m.AddExtension(ext)
	require.NoError(t, m.Initialize("A"))
	require.NoError(t, m.Start())
	defer m.Stop()
	require.NoError(t, m.Fire(hfsm.NewEvent("e", nil)))

	require.Eventually(t, func() bool {
		metricFamilies, err := reg.Gather()
		if err != nil {
			return false
		}
		v, ok := gaugeValue(metricFamilies, "hfsm_active_queue_depth")
		return ok && v == 0
	}, time.Second, 10*time.Millisecond, "queue depth should return to zero once the fired event is processed")
}

func gaugeValue(families []*dto.MetricFamily, name string) (float64, bool) {
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		if len(mf.GetMetric()) != 1 {
			return 0, false
		}
		return mf.GetMetric()[0].GetGauge().GetValue(), true
	}
	return 0, false
}
