package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_FillsDefaults(t *testing.T) {
	assert.Equal(t, DefaultClockConfig(), ClockConfig{}.Normalize())
}

func TestNormalize_TruncatesToSeconds(t *testing.T) {
	config := ClockConfig{
		Work:              90*time.Second + 700*time.Millisecond,
		ShortBreak:        200 * time.Millisecond,
		LongBreak:         -time.Minute,
		LongBreakInterval: 3,
	}.Normalize()

	assert.Equal(t, 90*time.Second, config.Work)
	assert.Equal(t, time.Second, config.ShortBreak)
	assert.Equal(t, DefaultLongBreakDuration, config.LongBreak)
	assert.Equal(t, 3, config.LongBreakInterval)
}
