// Package extension provides hfsm.Extension implementations for
// observability: LoggingExtension logs through structured log/slog
// fields in place of a plain log.Printf action runner, and
// MetricsExtension instruments transitions and queue depth with
// github.com/prometheus/client_golang.
package extension

import (
	"log/slog"

	"github.com/orbitalstate/hfsm"
)

// LoggingExtension logs worker lifecycle transitions, declined events,
// and captured guard/action exceptions through an *slog.Logger.
type LoggingExtension struct {
	hfsm.BaseExtension
	logger *slog.Logger
}

// NewLoggingExtension creates a LoggingExtension. A nil logger falls
// back to slog.Default().
func NewLoggingExtension(logger *slog.Logger) *LoggingExtension {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingExtension{logger: logger}
}

func (l *LoggingExtension) StartedStateMachine() {
	l.logger.Info("hfsm worker started")
}

func (l *LoggingExtension) StoppedStateMachine() {
	l.logger.Info("hfsm worker stopped")
}

func (l *LoggingExtension) EventQueued(e hfsm.Event) {
	l.logger.Debug("hfsm event queued", "event", e.ID)
}

func (l *LoggingExtension) EventQueuedWithPriority(e hfsm.Event) {
	l.logger.Debug("hfsm priority event queued", "event", e.ID)
}

func (l *LoggingExtension) Loaded(current hfsm.StateID, history map[hfsm.StateID]hfsm.StateID) {
	l.logger.Info("hfsm state loaded", "current", current, "history_entries", len(history))
}

func (l *LoggingExtension) OnTransitionBegin(ev hfsm.TransitionBegin) {
	l.logger.Debug("hfsm transition begin", "event", ev.Event.ID, "state", ev.State)
}

func (l *LoggingExtension) OnTransitionCompleted(ev hfsm.TransitionCompleted) {
	l.logger.Info("hfsm transition completed", "event", ev.Event.ID, "new_state", ev.NewState)
}

func (l *LoggingExtension) OnTransitionDeclined(ev hfsm.TransitionDeclined) {
	l.logger.Debug("hfsm transition declined", "event", ev.Event.ID, "state", ev.State)
}

func (l *LoggingExtension) OnTransitionExceptionThrown(ev hfsm.TransitionExceptionThrown) {
	l.logger.Error("hfsm transition exception", "event", ev.Event.ID, "phase", ev.Phase, "error", ev.Err)
}
