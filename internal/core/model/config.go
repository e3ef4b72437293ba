package model

import "time"

// Default clock values.
const (
	DefaultWorkDuration       = 25 * time.Minute
	DefaultShortBreakDuration = 5 * time.Minute
	DefaultLongBreakDuration  = 15 * time.Minute
	DefaultLongBreakInterval  = 4
)

// ClockConfig contains the phase durations and the session cycling policy.
type ClockConfig struct {
	Work              time.Duration
	ShortBreak        time.Duration
	LongBreak         time.Duration
	LongBreakInterval int
}

// DefaultClockConfig returns the classic 25/5/15 cycle with a long break every 4 sessions.
func DefaultClockConfig() ClockConfig {
	return ClockConfig{
		Work:              DefaultWorkDuration,
		ShortBreak:        DefaultShortBreakDuration,
		LongBreak:         DefaultLongBreakDuration,
		LongBreakInterval: DefaultLongBreakInterval,
	}
}

// Normalize replaces unusable values with defaults and truncates durations to whole seconds.
func (config ClockConfig) Normalize() ClockConfig {
	config.Work = normalizeDuration(config.Work, DefaultWorkDuration)
	config.ShortBreak = normalizeDuration(config.ShortBreak, DefaultShortBreakDuration)
	config.LongBreak = normalizeDuration(config.LongBreak, DefaultLongBreakDuration)
	if config.LongBreakInterval < 1 {
		config.LongBreakInterval = DefaultLongBreakInterval
	}
	return config
}

func normalizeDuration(value, fallback time.Duration) time.Duration {
	if value <= 0 {
		return fallback
	}
	value = value.Truncate(time.Second)
	if value < time.Second {
		return time.Second
	}
	return value
}
