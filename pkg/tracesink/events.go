package tracesink

import (
	"github.com/daq-tools/tracesink/internal/app"
	"github.com/daq-tools/tracesink/internal/domain"
	"github.com/daq-tools/tracesink/internal/metrics"
)

// State represents the lifecycle state of a collector.
type State int

const (
	StateStopped State = iota
	StateStarting
	StateRunning
	StateStopping
	StateCrashed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	return convertedStateNames[s]
}

var convertedStateNames = map[State]string{
	StateStopped:  "Stopped",
	StateStarting: "Starting",
	StateRunning:  "Running",
	StateStopping: "Stopping",
	StateCrashed:  "Crashed",
}

func convertState(s app.State) State {
	switch s {
	case app.StateStarting:
		return StateStarting
	case app.StateRunning:
		return StateRunning
	case app.StateStopping:
		return StateStopping
	case app.StateCrashed:
		return StateCrashed
	default:
		return StateStopped
	}
}

// StateChangeEvent reports a lifecycle transition.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}

// BufferPersistedEvent reports one buffer written to disk.
type BufferPersistedEvent struct {
	Cycle uint64
	Kind  string
	Bytes int
	Path  string
}

// CycleCompleteEvent reports a fully persisted cycle (all three kinds).
type CycleCompleteEvent struct {
	Cycle uint64
}

// EventHandler receives collector events. Handlers are called synchronously
// from the session goroutine; keep them fast.
type EventHandler interface {
	OnStateChange(StateChangeEvent)
	OnBufferPersisted(BufferPersistedEvent)
	OnCycleComplete(CycleCompleteEvent)
}

// eventEmitter adapts EventHandler to the internal emitter interfaces and
// keeps the Prometheus counters in step with the session.
type eventEmitter struct {
	handler EventHandler
	metrics *metrics.Metrics
}

func (e *eventEmitter) OnStateChange(previous, current app.State, reason string) {
	if e.handler == nil {
		return
	}
	e.handler.OnStateChange(StateChangeEvent{
		Previous: convertState(previous),
		Current:  convertState(current),
		Reason:   reason,
	})
}

func (e *eventEmitter) OnBufferPersisted(cycle uint64, kind domain.BufferKind, bytes int, path string) {
	e.metrics.BufferPersisted(kind.String(), bytes)
	if e.handler == nil {
		return
	}
	e.handler.OnBufferPersisted(BufferPersistedEvent{
		Cycle: cycle,
		Kind:  kind.String(),
		Bytes: bytes,
		Path:  path,
	})
}

func (e *eventEmitter) OnCycleComplete(cycle uint64) {
	e.metrics.CycleCompleted()
	if e.handler == nil {
		return
	}
	e.handler.OnCycleComplete(CycleCompleteEvent{Cycle: cycle})
}
