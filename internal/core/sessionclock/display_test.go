package sessionclock

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapshotDisplay(t *testing.T) {
	cases := map[int]string{
		1500: "25:00",
		65:   "01:05",
		59:   "00:59",
		0:    "00:00",
		900:  "15:00",
	}
	for remaining, want := range cases {
		snapshot := Snapshot{RemainingSeconds: remaining}
		assert.Equal(t, want, snapshot.Display(), "remaining %d", remaining)
	}
}

func TestSnapshotProgress(t *testing.T) {
	assert.Equal(t, 0.0, Snapshot{RemainingSeconds: 1500, PhaseSeconds: 1500}.Progress())
	assert.InDelta(t, 0.5, Snapshot{RemainingSeconds: 150, PhaseSeconds: 300}.Progress(), 1e-9)
	assert.InDelta(t, 1-1.0/900, Snapshot{RemainingSeconds: 1, PhaseSeconds: 900}.Progress(), 1e-9)
	assert.Equal(t, 0.0, Snapshot{RemainingSeconds: 10}.Progress())
	assert.Equal(t, 0.0, Snapshot{RemainingSeconds: 20, PhaseSeconds: 10}.Progress())
}

func TestSnapshotDashOffset(t *testing.T) {
	circumference := 2 * math.Pi * 140

	start := Snapshot{RemainingSeconds: 300, PhaseSeconds: 300}
	assert.InDelta(t, circumference, start.DashOffset(circumference), 1e-9)

	half := Snapshot{RemainingSeconds: 750, PhaseSeconds: 1500}
	assert.InDelta(t, circumference/2, half.DashOffset(circumference), 1e-9)
}

func TestModeLabel(t *testing.T) {
	assert.Equal(t, "Work Time", Snapshot{Phase: PhaseWork}.ModeLabel())
	assert.Equal(t, "Short Break", Snapshot{Phase: PhaseShortBreak}.ModeLabel())
	assert.Equal(t, "Long Break", Snapshot{Phase: PhaseLongBreak}.ModeLabel())
}

func TestHaltsTicks(t *testing.T) {
	assert.False(t, EventStarted.HaltsTicks())
	assert.False(t, EventTick.HaltsTicks())
	assert.True(t, EventPaused.HaltsTicks())
	assert.True(t, EventReset.HaltsTicks())
	assert.True(t, EventWorkCompleted.HaltsTicks())
	assert.True(t, EventBreakCompleted.HaltsTicks())
}

func TestPhaseIsBreak(t *testing.T) {
	assert.False(t, PhaseWork.IsBreak())
	assert.True(t, PhaseShortBreak.IsBreak())
	assert.True(t, PhaseLongBreak.IsBreak())
}
