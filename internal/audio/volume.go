package audio

import "math"

// Volume bounds in percent.
const (
	MinVolume     = 0
	MaxVolume     = 100
	DefaultVolume = 50
)

// Level buckets a volume for the speaker icon.
type Level int

const (
	LevelMuted Level = iota
	LevelLow
	LevelHigh
)

// LevelFor returns the icon bucket for a volume percentage.
func LevelFor(volume int) Level {
	switch {
	case volume <= MinVolume:
		return LevelMuted
	case volume < 50:
		return LevelLow
	default:
		return LevelHigh
	}
}

// ClampVolume bounds a percentage to [0,100].
func ClampVolume(volume int) int {
	if volume < MinVolume {
		return MinVolume
	}
	if volume > MaxVolume {
		return MaxVolume
	}
	return volume
}

// Mixer tracks the volume and the value to restore when unmuting.
type Mixer struct {
	volume int
	last   int
}

// NewMixer creates a mixer at the given volume.
func NewMixer(volume int) *Mixer {
	mixer := &Mixer{}
	mixer.Set(volume)
	return mixer
}

// Volume returns the current percentage.
func (mixer *Mixer) Volume() int {
	return mixer.volume
}

// Set changes the volume.
func (mixer *Mixer) Set(volume int) {
	mixer.volume = ClampVolume(volume)
}

// ToggleMute silences the output, or restores the last audible volume (DefaultVolume if none).
func (mixer *Mixer) ToggleMute() int {
	if mixer.volume > MinVolume {
		mixer.last = mixer.volume
		mixer.volume = MinVolume
		return mixer.volume
	}
	mixer.volume = mixer.last
	if mixer.volume <= MinVolume {
		mixer.volume = DefaultVolume
	}
	return mixer.volume
}

// Gain converts a percentage into the exponent used by a base-2 volume effect.
// The second result is true when the output must be silent.
func Gain(volume int) (float64, bool) {
	volume = ClampVolume(volume)
	if volume == MinVolume {
		return 0, true
	}
	return math.Log2(float64(volume) / MaxVolume), false
}
