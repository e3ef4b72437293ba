package animation

import (
	"math/rand"
	"time"
)

// Weather selects the particle overlay drawn over the scene.
type Weather string

const (
	WeatherNone Weather = "none"
	WeatherRain Weather = "rain"
	WeatherSnow Weather = "snow"
)

// Weathers lists the selectable overlays in menu order.
var Weathers = []Weather{WeatherNone, WeatherRain, WeatherSnow}

// ParseWeather maps a stored name to a Weather, defaulting to none.
func ParseWeather(value string) Weather {
	for _, weather := range Weathers {
		if string(weather) == value {
			return weather
		}
	}
	return WeatherNone
}

// Range defines a duration range with random sampling.
type Range struct {
	Min time.Duration
	Max time.Duration
}

// Random returns a random duration within the range.
func (value Range) Random(rng *rand.Rand) time.Duration {
	if value.Max <= value.Min {
		return value.Min
	}
	delta := value.Max - value.Min
	return value.Min + time.Duration(rng.Int63n(int64(delta)))
}

// ParticleConfig describes how one weather type spawns particles.
type ParticleConfig struct {
	Count int
	Fall  Range
	Delay Range
}

// ParticleSpec is one falling particle. Left is the horizontal position as a fraction of the width.
type ParticleSpec struct {
	Left  float64
	Fall  time.Duration
	Delay time.Duration
}

// Particle is a particle position for a single frame, in fractions of the overlay size.
type Particle struct {
	X       float32
	Y       float32
	Visible bool
}

// Position returns where the particle is after elapsed time. Particles stay
// hidden until their delay has passed and then loop from top to bottom.
func (spec ParticleSpec) Position(elapsed time.Duration) Particle {
	if elapsed < spec.Delay || spec.Fall <= 0 {
		return Particle{X: float32(spec.Left)}
	}
	cycle := (elapsed - spec.Delay) % spec.Fall
	return Particle{
		X:       float32(spec.Left),
		Y:       float32(float64(cycle) / float64(spec.Fall)),
		Visible: true,
	}
}
