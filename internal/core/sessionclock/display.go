package sessionclock

import "fmt"

// Snapshot is a consistent copy of the clock state with the derived render values.
type Snapshot struct {
	Phase                 Phase
	RemainingSeconds      int
	PhaseSeconds          int
	CompletedWorkSessions int
	Running               bool
}

// Minutes returns the minute part of the remaining time.
func (snapshot Snapshot) Minutes() int {
	return snapshot.RemainingSeconds / 60
}

// Seconds returns the second part of the remaining time.
func (snapshot Snapshot) Seconds() int {
	return snapshot.RemainingSeconds % 60
}

// Display renders the remaining time as MM:SS.
func (snapshot Snapshot) Display() string {
	return fmt.Sprintf("%02d:%02d", snapshot.Minutes(), snapshot.Seconds())
}

// Progress returns how much of the current phase has elapsed, in [0,1].
func (snapshot Snapshot) Progress() float64 {
	if snapshot.PhaseSeconds <= 0 {
		return 0
	}
	progress := 1 - float64(snapshot.RemainingSeconds)/float64(snapshot.PhaseSeconds)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

// DashOffset returns the stroke offset of a circular indicator with the given circumference.
func (snapshot Snapshot) DashOffset(circumference float64) float64 {
	return circumference * (1 - snapshot.Progress())
}

// ModeLabel returns the human readable name of the phase.
func (snapshot Snapshot) ModeLabel() string {
	return snapshot.Phase.Label()
}
