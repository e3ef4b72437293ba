package animation

import "time"

// DefaultConfig returns 20 fast raindrops and 15 slow snowflakes at 30 frames per second.
func DefaultConfig() Config {
	return Config{
		FrameInterval: time.Second / 30,
		Rain: ParticleConfig{
			Count: 20,
			Fall:  Range{Min: time.Second, Max: 2 * time.Second},
			Delay: Range{Min: 0, Max: 2 * time.Second},
		},
		Snow: ParticleConfig{
			Count: 15,
			Fall:  Range{Min: 8 * time.Second, Max: 12 * time.Second},
			Delay: Range{Min: 0, Max: 5 * time.Second},
		},
	}
}
