package extension

import (
	"sync"

	"github.com/orbitalstate/hfsm"
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsExtension instruments an hfsm machine with Prometheus counters
// for completed/declined transitions and exceptions, plus a gauge for
// queue depth in active mode, grounded on the CounterVec/GaugeVec
// pattern the pack's only Prometheus-consuming repo uses.
type MetricsExtension struct {
	hfsm.BaseExtension

	completed  *prometheus.CounterVec
	declined   *prometheus.CounterVec
	exceptions *prometheus.CounterVec
	queueDepth prometheus.Gauge
	started    prometheus.Counter
	stopped    prometheus.Counter

	mu      sync.Mutex
	pending int
}

// NewMetricsExtension creates and registers the extension's metrics
// against reg. Metric names are fixed ("hfsm_..."); name is attached to
// every metric as the constant label "machine".
func NewMetricsExtension(name string, reg prometheus.Registerer) (*MetricsExtension, error) {
	m := &MetricsExtension{
		completed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "hfsm_transitions_completed_total",
			Help:        "Total number of transitions that completed entry/exit.",
			ConstLabels: prometheus.Labels{"machine": name},
		}, []string{"new_state"}),
		declined: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "hfsm_transitions_declined_total",
			Help:        "Total number of events for which no guard held.",
			ConstLabels: prometheus.Labels{"machine": name},
		}, []string{"state"}),
		exceptions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "hfsm_transition_exceptions_total",
			Help:        "Total number of guard/action errors captured during firing.",
			ConstLabels: prometheus.Labels{"machine": name},
		}, []string{"phase"}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "hfsm_active_queue_depth",
			Help:        "Number of events currently queued on an ActiveMachine.",
			ConstLabels: prometheus.Labels{"machine": name},
		}),
		started: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "hfsm_worker_started_total",
			Help:        "Total number of times the active worker started.",
			ConstLabels: prometheus.Labels{"machine": name},
		}),
		stopped: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "hfsm_worker_stopped_total",
			Help:        "Total number of times the active worker stopped.",
			ConstLabels: prometheus.Labels{"machine": name},
		}),
	}

	collectors := []prometheus.Collector{m.completed, m.declined, m.exceptions, m.queueDepth, m.started, m.stopped}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *MetricsExtension) StartedStateMachine() { m.started.Inc() }
func (m *MetricsExtension) StoppedStateMachine() { m.stopped.Inc() }

// EventQueued/EventQueuedWithPriority only fire on an ActiveMachine;
// the gauge stays at zero when this extension is registered on a
// PassiveMachine instead, since decrementPending never finds anything
// pending to take back off the gauge.
func (m *MetricsExtension) EventQueued(hfsm.Event) { m.incrementPending() }

func (m *MetricsExtension) EventQueuedWithPriority(hfsm.Event) { m.incrementPending() }

func (m *MetricsExtension) incrementPending() {
	m.mu.Lock()
	m.pending++
	m.mu.Unlock()
	m.queueDepth.Inc()
}

// decrementPending only touches the gauge for an event this extension
// actually saw queued, so a PassiveMachine firing (which never calls
// EventQueued) can never drive it negative.
func (m *MetricsExtension) decrementPending() {
	m.mu.Lock()
	if m.pending == 0 {
		m.mu.Unlock()
		return
	}
	m.pending--
	m.mu.Unlock()
	m.queueDepth.Dec()
}

func (m *MetricsExtension) OnTransitionCompleted(ev hfsm.TransitionCompleted) {
	m.completed.WithLabelValues(string(ev.NewState)).Inc()
	m.decrementPending()
}

func (m *MetricsExtension) OnTransitionDeclined(ev hfsm.TransitionDeclined) {
	m.declined.WithLabelValues(string(ev.State)).Inc()
	m.decrementPending()
}

func (m *MetricsExtension) OnTransitionExceptionThrown(ev hfsm.TransitionExceptionThrown) {
	m.exceptions.WithLabelValues(ev.Phase).Inc()
}
