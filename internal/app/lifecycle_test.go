package app

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/daq-tools/tracesink/internal/domain"
	"github.com/daq-tools/tracesink/internal/ports"
)

// mockLogger implements ports.Logger for testing.
type mockLogger struct{}

func (mockLogger) Debug(msg string, fields ...ports.Field) {}
func (mockLogger) Info(msg string, fields ...ports.Field)  {}
func (mockLogger) Warn(msg string, fields ...ports.Field)  {}
func (mockLogger) Error(msg string, fields ...ports.Field) {}

// mockEmitter tracks state change events for testing.
type mockEmitter struct {
	mu     sync.Mutex
	events []stateChange
}

type stateChange struct {
	previous State
	current  State
	reason   string
}

func (m *mockEmitter) OnStateChange(previous, current State, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, stateChange{previous, current, reason})
}

func (m *mockEmitter) Events() []stateChange {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]stateChange{}, m.events...)
}

func TestNewLifecycle(t *testing.T) {
	l := NewLifecycle(mockLogger{}, nil)

	if l.State() != StateStopped {
		t.Errorf("initial state = %v, want StateStopped", l.State())
	}
	if !l.CanStart() {
		t.Error("CanStart() = false for a stopped lifecycle")
	}
	if l.CanStop() {
		t.Error("CanStop() = true for a stopped lifecycle")
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateStopped, "Stopped"},
		{StateStarting, "Starting"},
		{StateRunning, "Running"},
		{StateStopping, "Stopping"},
		{StateCrashed, "Crashed"},
		{State(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestLifecycle_ValidTransitions(t *testing.T) {
	emitter := &mockEmitter{}
	l := NewLifecycle(mockLogger{}, emitter)

	steps := []State{StateStarting, StateRunning, StateStopping, StateStopped}
	for _, next := range steps {
		if err := l.TransitionTo(next, "test"); err != nil {
			t.Fatalf("TransitionTo(%v) returned error: %v", next, err)
		}
	}

	events := emitter.Events()
	if len(events) != len(steps) {
		t.Fatalf("expected %d state change events, got %d", len(steps), len(events))
	}
	if events[0].previous != StateStopped || events[0].current != StateStarting {
		t.Errorf("first event = %+v, want Stopped->Starting", events[0])
	}
}

func TestLifecycle_InvalidTransitions(t *testing.T) {
	l := NewLifecycle(mockLogger{}, nil)

	if err := l.TransitionTo(StateRunning, "skip starting"); !errors.Is(err, domain.ErrNotRunning) {
		t.Errorf("Stopped->Running error = %v, want ErrNotRunning", err)
	}

	if err := l.TransitionTo(StateStarting, "start"); err != nil {
		t.Fatalf("TransitionTo(Starting): %v", err)
	}
	if err := l.TransitionTo(StateStopped, "skip stopping"); !errors.Is(err, domain.ErrAlreadyRunning) {
		t.Errorf("Starting->Stopped error = %v, want ErrAlreadyRunning", err)
	}
}

func TestLifecycle_CrashedCanRestart(t *testing.T) {
	l := NewLifecycle(mockLogger{}, nil)

	if err := l.TransitionTo(StateStarting, "start"); err != nil {
		t.Fatal(err)
	}
	if err := l.TransitionTo(StateCrashed, "boom"); err != nil {
		t.Fatal(err)
	}
	if !l.CanStart() {
		t.Error("CanStart() = false for a crashed lifecycle")
	}
	if err := l.TransitionTo(StateStarting, "restart"); err != nil {
		t.Errorf("Crashed->Starting returned error: %v", err)
	}
}

func TestLifecycle_WaitWithTimeout(t *testing.T) {
	l := NewLifecycle(mockLogger{}, nil)

	l.AddWorker()
	go func() {
		time.Sleep(10 * time.Millisecond)
		l.WorkerDone()
	}()
	if err := l.WaitWithTimeout(time.Second); err != nil {
		t.Errorf("WaitWithTimeout returned error: %v", err)
	}

	l.AddWorker()
	defer l.WorkerDone()
	if err := l.WaitWithTimeout(10 * time.Millisecond); !errors.Is(err, domain.ErrShutdownTimeout) {
		t.Errorf("WaitWithTimeout error = %v, want ErrShutdownTimeout", err)
	}
}
