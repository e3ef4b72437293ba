package preferences

import (
	"time"

	"lofitimer/internal/audio"
	"lofitimer/internal/core/model"
	"lofitimer/internal/ui/animation"
)

// Settings defines editable user preferences.
type Settings struct {
	WorkDuration       time.Duration
	ShortBreakDuration time.Duration
	LongBreakDuration  time.Duration
	LongBreakInterval  int

	Volume int
	Tracks []audio.Track

	Scene   string
	Weather animation.Weather

	IdlePauseEnabled     bool
	IdlePauseAfter       time.Duration
	NotificationsEnabled bool
	Autostart            bool
}

// DefaultSettings returns default settings for LofiTimer.
func DefaultSettings() Settings {
	clock := model.DefaultClockConfig()
	return Settings{
		WorkDuration:         clock.Work,
		ShortBreakDuration:   clock.ShortBreak,
		LongBreakDuration:    clock.LongBreak,
		LongBreakInterval:    clock.LongBreakInterval,
		Volume:               audio.DefaultVolume,
		Scene:                "dusk",
		Weather:              animation.WeatherNone,
		IdlePauseEnabled:     false,
		IdlePauseAfter:       5 * time.Minute,
		NotificationsEnabled: true,
	}
}

// ClockConfig converts settings to the session clock configuration.
func (settings Settings) ClockConfig() model.ClockConfig {
	return model.ClockConfig{
		Work:              settings.WorkDuration,
		ShortBreak:        settings.ShortBreakDuration,
		LongBreak:         settings.LongBreakDuration,
		LongBreakInterval: settings.LongBreakInterval,
	}.Normalize()
}

// ClockChanged reports whether the clock configuration differs between two settings.
func (settings Settings) ClockChanged(other Settings) bool {
	return settings.ClockConfig() != other.ClockConfig()
}
