// Package session reacts to clock events with side effects outside the clock.
package session

import (
	"errors"
	"sync/atomic"
	"time"

	"lofitimer/internal/audio"
	"lofitimer/internal/core/sessionclock"
	"lofitimer/internal/notify"

	"github.com/rs/zerolog"
)

// Ambient is the part of the audio player driven by the clock.
type Ambient interface {
	Play() error
	Pause()
}

// Reactor plays ambient audio while the clock runs and announces completed phases.
type Reactor struct {
	ambient       Ambient
	notifier      notify.Notifier
	logger        zerolog.Logger
	notifications atomic.Bool
	onCompleted   func(message string)
}

// NewReactor creates a reactor. ambient and notifier may be nil.
func NewReactor(ambient Ambient, notifier notify.Notifier, logger zerolog.Logger) *Reactor {
	reactor := &Reactor{
		ambient:  ambient,
		notifier: notifier,
		logger:   logger,
	}
	reactor.notifications.Store(true)
	return reactor
}

// SetNotificationsEnabled toggles completion notifications. Safe from any goroutine.
func (reactor *Reactor) SetNotificationsEnabled(enabled bool) {
	reactor.notifications.Store(enabled)
}

// SetOnCompleted registers a callback fired with the completion message of each phase.
func (reactor *Reactor) SetOnCompleted(handler func(message string)) {
	reactor.onCompleted = handler
}

// Handle applies the side effects of one event.
func (reactor *Reactor) Handle(event sessionclock.Event) {
	switch event.Type {
	case sessionclock.EventStarted:
		reactor.play()
	case sessionclock.EventPaused, sessionclock.EventReset:
		reactor.pause()
	case sessionclock.EventWorkCompleted, sessionclock.EventBreakCompleted:
		reactor.pause()
		reactor.announce(event)
	}
}

// Run handles events until the channel is closed.
func (reactor *Reactor) Run(events <-chan sessionclock.Event, each func(sessionclock.Event)) {
	for event := range events {
		reactor.Handle(event)
		if each != nil {
			each(event)
		}
	}
}

func (reactor *Reactor) play() {
	if reactor.ambient == nil {
		return
	}
	if err := reactor.ambient.Play(); err != nil {
		if errors.Is(err, audio.ErrNoTracks) {
			reactor.logger.Debug().Msg("no ambient tracks configured")
			return
		}
		reactor.logger.Warn().Err(err).Msg("ambient playback failed")
	}
}

func (reactor *Reactor) pause() {
	if reactor.ambient != nil {
		reactor.ambient.Pause()
	}
}

func (reactor *Reactor) announce(event sessionclock.Event) {
	reactor.logger.Info().
		Str("completed", string(event.Type)).
		Str("next_phase", string(event.Snapshot.Phase)).
		Int("sessions", event.Snapshot.CompletedWorkSessions).
		Msg(event.Message)

	if reactor.onCompleted != nil {
		reactor.onCompleted(event.Message)
	}
	if reactor.notifier == nil || !reactor.notifications.Load() {
		return
	}
	if err := reactor.notifier.Notify(notificationTitle(event.Type), event.Message); err != nil {
		reactor.logger.Warn().Err(err).Msg("notification failed")
	}
}

func notificationTitle(eventType sessionclock.EventType) string {
	if eventType == sessionclock.EventWorkCompleted {
		return "Focus session done"
	}
	return "Break over"
}

// IdleSwitch wraps an idle source so idle pausing can be toggled at runtime.
type IdleSwitch struct {
	source  interface{ IdleDuration() (time.Duration, error) }
	enabled atomic.Bool
}

// NewIdleSwitch creates a switch around source.
func NewIdleSwitch(source interface{ IdleDuration() (time.Duration, error) }, enabled bool) *IdleSwitch {
	idle := &IdleSwitch{source: source}
	idle.enabled.Store(enabled)
	return idle
}

// SetEnabled turns idle reporting on or off.
func (idle *IdleSwitch) SetEnabled(enabled bool) {
	idle.enabled.Store(enabled)
}

// IdleDuration reports zero idle time while disabled.
func (idle *IdleSwitch) IdleDuration() (time.Duration, error) {
	if !idle.enabled.Load() {
		return 0, nil
	}
	return idle.source.IdleDuration()
}
