// Package sessionclock implements the focus/break countdown and the session
// cycling policy. A Clock holds no timer of its own: the owner calls Tick once
// per elapsed second while the clock is running and serialises all calls on a
// single goroutine.
package sessionclock

import (
	"time"

	"lofitimer/internal/core/model"
)

// Clock is the countdown state machine.
type Clock struct {
	config    model.ClockConfig
	phase     Phase
	remaining int
	running   bool
	completed int
	observers []Observer
}

// New creates a clock in the initial Work phase.
func New(config model.ClockConfig) *Clock {
	clock := &Clock{config: config.Normalize()}
	clock.resetState()
	return clock
}

// Observe registers an observer called after every mutation.
func (clock *Clock) Observe(observer Observer) {
	if observer == nil {
		return
	}
	clock.observers = append(clock.observers, observer)
}

// Start begins the countdown. It is a no-op while already running.
func (clock *Clock) Start() {
	if clock.running {
		return
	}
	clock.running = true
	clock.emit(EventStarted, "")
}

// Pause halts the countdown without losing progress. It is a no-op while paused.
func (clock *Clock) Pause() {
	if !clock.running {
		return
	}
	clock.running = false
	clock.emit(EventPaused, "")
}

// Reset returns to a fresh Work phase and clears the session count.
func (clock *Clock) Reset() {
	clock.resetState()
	clock.emit(EventReset, "")
}

// UpdateConfig replaces the durations and resets the clock.
func (clock *Clock) UpdateConfig(config model.ClockConfig) {
	clock.config = config.Normalize()
	clock.Reset()
}

// Tick advances the countdown by one second. Calls while paused are ignored.
func (clock *Clock) Tick() {
	if !clock.running || clock.remaining <= 0 {
		return
	}
	clock.remaining--
	if clock.remaining > 0 {
		clock.emit(EventTick, "")
		return
	}
	clock.completePhase()
}

// Snapshot returns the current state.
func (clock *Clock) Snapshot() Snapshot {
	return Snapshot{
		Phase:                 clock.phase,
		RemainingSeconds:      clock.remaining,
		PhaseSeconds:          clock.durationOf(clock.phase),
		CompletedWorkSessions: clock.completed,
		Running:               clock.running,
	}
}

// Phase returns the current phase.
func (clock *Clock) Phase() Phase {
	return clock.phase
}

// RemainingSeconds returns the countdown value for the current phase.
func (clock *Clock) RemainingSeconds() int {
	return clock.remaining
}

// Running reports whether the countdown is active.
func (clock *Clock) Running() bool {
	return clock.running
}

// CompletedWorkSessions returns the number of finished Work phases since the last reset.
func (clock *Clock) CompletedWorkSessions() int {
	return clock.completed
}

// Config returns the active configuration.
func (clock *Clock) Config() model.ClockConfig {
	return clock.config
}

func (clock *Clock) completePhase() {
	clock.running = false
	if clock.phase == PhaseWork {
		clock.completed++
		next := PhaseShortBreak
		if clock.completed%clock.config.LongBreakInterval == 0 {
			next = PhaseLongBreak
		}
		clock.enter(next)
		clock.emit(EventWorkCompleted, MessageWorkCompleted)
		return
	}
	clock.enter(PhaseWork)
	clock.emit(EventBreakCompleted, MessageBreakCompleted)
}

func (clock *Clock) resetState() {
	clock.running = false
	clock.completed = 0
	clock.enter(PhaseWork)
}

func (clock *Clock) enter(phase Phase) {
	clock.phase = phase
	clock.remaining = clock.durationOf(phase)
}

func (clock *Clock) durationOf(phase Phase) int {
	switch phase {
	case PhaseShortBreak:
		return seconds(clock.config.ShortBreak)
	case PhaseLongBreak:
		return seconds(clock.config.LongBreak)
	default:
		return seconds(clock.config.Work)
	}
}

func (clock *Clock) emit(eventType EventType, message string) {
	event := Event{
		Type:     eventType,
		Snapshot: clock.Snapshot(),
		Message:  message,
	}
	for _, observer := range clock.observers {
		observer(event)
	}
}

func seconds(value time.Duration) int {
	return int(value / time.Second)
}
