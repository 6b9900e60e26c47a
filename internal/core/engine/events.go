package engine

import "time"

// Phase identifies which pomodoro interval is active.
type Phase string

const (
	PhaseWork       Phase = "work"
	PhaseShortBreak Phase = "short_break"
	PhaseLongBreak  Phase = "long_break"
)

// Name returns the user-facing name of the phase.
func (phase Phase) Name() string {
	switch phase {
	case PhaseShortBreak:
		return "Short Break"
	case PhaseLongBreak:
		return "Long Break"
	default:
		return "Focus Time"
	}
}

// IsBreak reports whether the phase is one of the two break intervals.
func (phase Phase) IsBreak() bool {
	return phase == PhaseShortBreak || phase == PhaseLongBreak
}

// State represents the current transport state of the engine.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
)

// EventType defines the type of engine event.
type EventType string

const (
	EventStateChange   EventType = "state_change"
	EventProgress      EventType = "progress"
	EventPhaseComplete EventType = "phase_complete"
)

// Event represents an engine update for observers.
type Event struct {
	Type      EventType
	Phase     Phase
	State     State
	Remaining int
	Completed int
	At        time.Time
}

// Snapshot is a point-in-time view of the engine state.
type Snapshot struct {
	Phase     Phase
	State     State
	Remaining int
	Completed int
}
