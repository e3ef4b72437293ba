package animation

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Config contains the particle timing values.
type Config struct {
	FrameInterval time.Duration
	Rain          ParticleConfig
	Snow          ParticleConfig
}

// Engine animates one weather overlay at a time.
type Engine struct {
	mu      sync.Mutex
	config  Config
	render  func(Weather, []Particle)
	cancel  context.CancelFunc
	rng     *rand.Rand
	weather Weather
}

// New creates a new animation engine. render is called from the animation goroutine once per frame.
func New(config Config, render func(Weather, []Particle)) *Engine {
	if config.FrameInterval <= 0 {
		config.FrameInterval = time.Second / 30
	}
	return &Engine{
		config:  config,
		render:  render,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		weather: WeatherNone,
	}
}

// Weather returns the active overlay.
func (engine *Engine) Weather() Weather {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.weather
}

// Generate spawns the particle set for a weather type.
func (engine *Engine) Generate(weather Weather) []ParticleSpec {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.generateLocked(weather)
}

// Start replaces the running overlay with the given weather.
func (engine *Engine) Start(ctx context.Context, weather Weather) {
	engine.mu.Lock()
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
	engine.weather = weather
	specs := engine.generateLocked(weather)
	if len(specs) == 0 {
		engine.mu.Unlock()
		engine.render(weather, nil)
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	engine.cancel = cancel
	engine.mu.Unlock()

	go engine.run(runCtx, weather, specs)
}

// Stop terminates any active animation.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
}

func (engine *Engine) generateLocked(weather Weather) []ParticleSpec {
	var config ParticleConfig
	switch weather {
	case WeatherRain:
		config = engine.config.Rain
	case WeatherSnow:
		config = engine.config.Snow
	default:
		return nil
	}

	specs := make([]ParticleSpec, 0, config.Count)
	for i := 0; i < config.Count; i++ {
		specs = append(specs, ParticleSpec{
			Left:  engine.rng.Float64(),
			Fall:  config.Fall.Random(engine.rng),
			Delay: config.Delay.Random(engine.rng),
		})
	}
	return specs
}

func (engine *Engine) run(ctx context.Context, weather Weather, specs []ParticleSpec) {
	ticker := time.NewTicker(engine.config.FrameInterval)
	defer ticker.Stop()

	started := time.Now()
	frame := make([]Particle, len(specs))
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			elapsed := now.Sub(started)
			for i, spec := range specs {
				frame[i] = spec.Position(elapsed)
			}
			engine.render(weather, append([]Particle(nil), frame...))
		}
	}
}
