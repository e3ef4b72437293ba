// Package driver runs a session clock: it serialises user commands and the
// per-second tick on one goroutine, owns the tick source, and fans clock
// events out to subscribers.
package driver

import (
	"context"
	"errors"
	"sync"
	"time"

	"lofitimer/internal/core/model"
	"lofitimer/internal/core/sessionclock"

	"github.com/rs/zerolog"
)

// ErrIdleUnsupported indicates idle detection is not available on this system.
var ErrIdleUnsupported = errors.New("idle detection unsupported")

const (
	commandBuffer  = 64
	enqueueTimeout = 150 * time.Millisecond
	deliverTimeout = 250 * time.Millisecond
)

// IdleChecker reports the duration of user inactivity.
type IdleChecker interface {
	IdleDuration() (time.Duration, error)
}

// Options contains runtime options for the Driver.
type Options struct {
	TickInterval time.Duration
	NewTicker    TickerFactory
	Logger       zerolog.Logger

	// IdleChecker enables pausing a running work phase once the user has been
	// idle for IdlePauseAfter. Nil disables the check.
	IdleChecker       IdleChecker
	IdlePauseAfter    time.Duration
	IdleCheckInterval time.Duration
}

type commandType int

const (
	cmdStart commandType = iota
	cmdPause
	cmdToggle
	cmdReset
	cmdUpdateConfig
	cmdFlush
)

type command struct {
	kind   commandType
	config model.ClockConfig
	reply  chan struct{}
}

// Driver owns a session clock and its tick source.
type Driver struct {
	clock    *sessionclock.Clock
	options  Options
	logger   zerolog.Logger
	commands chan command

	mu          sync.Mutex
	subscribers []chan sessionclock.Event
	snapshot    sessionclock.Snapshot
	closed      bool

	// Owned by the Run goroutine.
	ticker        Ticker
	idleEnabled   bool
	lastIdleCheck time.Time
}

// New creates a Driver around the clock. The clock must not be used directly afterwards.
func New(clock *sessionclock.Clock, options Options) *Driver {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.NewTicker == nil {
		options.NewTicker = NewSystemTicker
	}
	if options.IdleCheckInterval <= 0 {
		options.IdleCheckInterval = 5 * time.Second
	}
	if options.IdlePauseAfter <= 0 {
		options.IdlePauseAfter = 5 * time.Minute
	}

	driver := &Driver{
		clock:       clock,
		options:     options,
		logger:      options.Logger,
		commands:    make(chan command, commandBuffer),
		snapshot:    clock.Snapshot(),
		idleEnabled: options.IdleChecker != nil,
	}
	clock.Observe(driver.handleEvent)
	return driver
}

// Subscribe registers a new observer channel.
func (driver *Driver) Subscribe(buffer int) <-chan sessionclock.Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan sessionclock.Event, buffer)
	driver.mu.Lock()
	defer driver.mu.Unlock()
	if driver.closed {
		close(ch)
		return ch
	}
	driver.subscribers = append(driver.subscribers, ch)
	return ch
}

// Snapshot returns the state published by the most recent event.
func (driver *Driver) Snapshot() sessionclock.Snapshot {
	driver.mu.Lock()
	defer driver.mu.Unlock()
	return driver.snapshot
}

// Start requests the countdown to begin.
func (driver *Driver) Start() {
	driver.enqueue(command{kind: cmdStart})
}

// Pause requests the countdown to halt.
func (driver *Driver) Pause() {
	driver.enqueue(command{kind: cmdPause})
}

// Toggle starts a paused clock or pauses a running one.
func (driver *Driver) Toggle() {
	driver.enqueue(command{kind: cmdToggle})
}

// Reset requests a fresh work phase with a cleared session count.
func (driver *Driver) Reset() {
	driver.enqueue(command{kind: cmdReset})
}

// UpdateConfig replaces the clock durations. The clock is reset.
func (driver *Driver) UpdateConfig(config model.ClockConfig) {
	driver.enqueue(command{kind: cmdUpdateConfig, config: config})
}

// Flush blocks until every previously enqueued command has been applied.
func (driver *Driver) Flush(ctx context.Context) error {
	reply := make(chan struct{})
	select {
	case driver.commands <- command{kind: cmdFlush, reply: reply}:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-reply:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes commands and ticks until ctx is done, then closes all subscriber channels.
func (driver *Driver) Run(ctx context.Context) error {
	defer driver.shutdown()

	for {
		var ticks <-chan time.Time
		if driver.ticker != nil {
			ticks = driver.ticker.C()
		}

		select {
		case <-ctx.Done():
			return nil
		case cmd := <-driver.commands:
			driver.apply(cmd)
		case now := <-ticks:
			driver.tick(now)
		}
	}
}

func (driver *Driver) enqueue(cmd command) {
	select {
	case driver.commands <- cmd:
	case <-time.After(enqueueTimeout):
		driver.logger.Warn().Int("command", int(cmd.kind)).Msg("command queue full, dropping command")
	}
}

func (driver *Driver) apply(cmd command) {
	switch cmd.kind {
	case cmdStart:
		driver.clock.Start()
	case cmdPause:
		driver.clock.Pause()
	case cmdToggle:
		if driver.clock.Running() {
			driver.clock.Pause()
		} else {
			driver.clock.Start()
		}
	case cmdReset:
		driver.clock.Reset()
	case cmdUpdateConfig:
		driver.clock.UpdateConfig(cmd.config)
		driver.logger.Info().
			Dur("work", driver.clock.Config().Work).
			Dur("short_break", driver.clock.Config().ShortBreak).
			Dur("long_break", driver.clock.Config().LongBreak).
			Int("long_break_interval", driver.clock.Config().LongBreakInterval).
			Msg("clock config updated")
	}
	if cmd.reply != nil {
		close(cmd.reply)
	}
}

func (driver *Driver) tick(now time.Time) {
	if !driver.clock.Running() {
		driver.stopTicker()
		return
	}
	if driver.pauseIfIdle(now) {
		return
	}
	driver.clock.Tick()
}

func (driver *Driver) pauseIfIdle(now time.Time) bool {
	if !driver.idleEnabled || driver.clock.Phase() != sessionclock.PhaseWork {
		return false
	}
	if !driver.lastIdleCheck.IsZero() && now.Sub(driver.lastIdleCheck) < driver.options.IdleCheckInterval {
		return false
	}
	driver.lastIdleCheck = now

	idle, err := driver.options.IdleChecker.IdleDuration()
	if err != nil {
		if errors.Is(err, ErrIdleUnsupported) {
			driver.idleEnabled = false
			driver.logger.Warn().Err(err).Msg("idle pause disabled")
			return false
		}
		driver.logger.Error().Err(err).Msg("idle check failed")
		return false
	}
	if idle < driver.options.IdlePauseAfter {
		return false
	}

	driver.logger.Info().Dur("idle", idle).Msg("pausing idle work session")
	driver.clock.Pause()
	return true
}

// handleEvent runs on the Run goroutine because only it mutates the clock.
func (driver *Driver) handleEvent(event sessionclock.Event) {
	switch {
	case event.Type == sessionclock.EventStarted:
		driver.startTicker()
	case event.Type.HaltsTicks():
		driver.stopTicker()
	}

	switch event.Type {
	case sessionclock.EventTick:
		driver.logger.Trace().Int("remaining", event.Snapshot.RemainingSeconds).Msg("tick")
	default:
		driver.logger.Debug().
			Str("event", string(event.Type)).
			Str("phase", string(event.Snapshot.Phase)).
			Int("remaining", event.Snapshot.RemainingSeconds).
			Int("sessions", event.Snapshot.CompletedWorkSessions).
			Msg("clock event")
	}

	driver.publish(event)
}

// publish fans an event out. Ticks are dropped for full subscribers; other
// events wait up to deliverTimeout in total before being dropped with a warning.
// Subscriber channels are only closed by shutdown on this goroutine, so sending
// outside the lock is safe.
func (driver *Driver) publish(event sessionclock.Event) {
	driver.mu.Lock()
	driver.snapshot = event.Snapshot
	subscribers := append([]chan sessionclock.Event(nil), driver.subscribers...)
	driver.mu.Unlock()

	var deadline *time.Timer
	expired := false
	for index, ch := range subscribers {
		select {
		case ch <- event:
			continue
		default:
		}
		if event.Type == sessionclock.EventTick {
			continue
		}
		if !expired {
			if deadline == nil {
				deadline = time.NewTimer(deliverTimeout)
				defer deadline.Stop()
			}
			select {
			case ch <- event:
				continue
			case <-deadline.C:
				expired = true
			}
		}
		driver.logger.Warn().
			Str("event", string(event.Type)).
			Int("subscriber", index).
			Msg("subscriber full, event dropped")
	}
}

func (driver *Driver) startTicker() {
	if driver.ticker != nil {
		return
	}
	driver.ticker = driver.options.NewTicker(driver.options.TickInterval)
	driver.lastIdleCheck = time.Time{}
}

func (driver *Driver) stopTicker() {
	if driver.ticker == nil {
		return
	}
	driver.ticker.Stop()
	driver.ticker = nil
}

func (driver *Driver) shutdown() {
	driver.stopTicker()

	driver.mu.Lock()
	subscribers := driver.subscribers
	driver.subscribers = nil
	driver.closed = true
	driver.mu.Unlock()

	for _, ch := range subscribers {
		close(ch)
	}
}
