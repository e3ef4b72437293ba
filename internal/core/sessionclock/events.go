package sessionclock

// Phase represents the current activity segment.
type Phase string

const (
	PhaseWork       Phase = "work"
	PhaseShortBreak Phase = "short_break"
	PhaseLongBreak  Phase = "long_break"
)

// Label returns the mode text shown next to the timer.
func (phase Phase) Label() string {
	switch phase {
	case PhaseShortBreak:
		return "Short Break"
	case PhaseLongBreak:
		return "Long Break"
	default:
		return "Work Time"
	}
}

// IsBreak reports whether the phase is one of the break phases.
func (phase Phase) IsBreak() bool {
	return phase == PhaseShortBreak || phase == PhaseLongBreak
}

// EventType defines the type of clock event.
type EventType string

const (
	EventStarted        EventType = "started"
	EventPaused         EventType = "paused"
	EventReset          EventType = "reset"
	EventTick           EventType = "tick"
	EventWorkCompleted  EventType = "work_completed"
	EventBreakCompleted EventType = "break_completed"
)

// Completion messages carried by phase completion events.
const (
	MessageWorkCompleted  = "Work session completed! Take a break."
	MessageBreakCompleted = "Break completed! Time to focus."
)

// HaltsTicks reports whether the driver must stop its tick source after this event.
func (eventType EventType) HaltsTicks() bool {
	switch eventType {
	case EventPaused, EventReset, EventWorkCompleted, EventBreakCompleted:
		return true
	default:
		return false
	}
}

// Event is emitted after every clock mutation.
type Event struct {
	Type     EventType
	Snapshot Snapshot
	Message  string
}

// Observer receives clock events synchronously.
type Observer func(Event)
