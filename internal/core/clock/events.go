package clock

import "time"

// Phase represents the purpose of the current countdown.
type Phase string

const (
	PhaseWork       Phase = "work"
	PhaseShortBreak Phase = "short_break"
	PhaseLongBreak  Phase = "long_break"
)

// IsBreak reports whether the phase is one of the two breaks.
func (phase Phase) IsBreak() bool {
	return phase == PhaseShortBreak || phase == PhaseLongBreak
}

// EventType defines the type of clock event.
type EventType string

const (
	EventStateChange   EventType = "state_change"
	EventTick          EventType = "tick"
	EventPhaseComplete EventType = "phase_complete"
	EventSettings      EventType = "settings"
)

// Intent tells observers which notification a completed phase asks for.
type Intent string

const (
	IntentNone  Intent = ""
	IntentBreak Intent = "break"
	IntentWork  Intent = "work"
)

// Event represents a clock update for observers.
type Event struct {
	Type   EventType
	State  State
	Intent Intent
	At     time.Time
}
