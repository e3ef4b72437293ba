package session

import (
	"errors"
	"testing"
	"time"

	"lofitimer/internal/audio"
	"lofitimer/internal/core/driver"
	"lofitimer/internal/core/sessionclock"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAmbient struct {
	plays   int
	pauses  int
	playErr error
}

func (ambient *fakeAmbient) Play() error {
	ambient.plays++
	return ambient.playErr
}

func (ambient *fakeAmbient) Pause() { ambient.pauses++ }

type fakeNotifier struct {
	titles   []string
	messages []string
}

func (notifier *fakeNotifier) Notify(title, message string) error {
	notifier.titles = append(notifier.titles, title)
	notifier.messages = append(notifier.messages, message)
	return nil
}

func completion(eventType sessionclock.EventType, message string) sessionclock.Event {
	return sessionclock.Event{Type: eventType, Message: message}
}

func TestReactor_AmbientFollowsClock(t *testing.T) {
	ambient := &fakeAmbient{}
	reactor := NewReactor(ambient, nil, zerolog.Nop())

	reactor.Handle(sessionclock.Event{Type: sessionclock.EventStarted})
	reactor.Handle(sessionclock.Event{Type: sessionclock.EventTick})
	reactor.Handle(sessionclock.Event{Type: sessionclock.EventPaused})
	reactor.Handle(sessionclock.Event{Type: sessionclock.EventReset})
	reactor.Handle(completion(sessionclock.EventWorkCompleted, sessionclock.MessageWorkCompleted))

	assert.Equal(t, 1, ambient.plays)
	assert.Equal(t, 3, ambient.pauses)
}

func TestReactor_PlayErrorsAreSwallowed(t *testing.T) {
	for _, err := range []error{audio.ErrNoTracks, errors.New("speaker busy")} {
		ambient := &fakeAmbient{playErr: err}
		reactor := NewReactor(ambient, nil, zerolog.Nop())

		assert.NotPanics(t, func() {
			reactor.Handle(sessionclock.Event{Type: sessionclock.EventStarted})
		})
		assert.Equal(t, 1, ambient.plays)
	}
}

func TestReactor_NotifiesCompletions(t *testing.T) {
	notifier := &fakeNotifier{}
	var flashed []string
	reactor := NewReactor(nil, notifier, zerolog.Nop())
	reactor.SetOnCompleted(func(message string) { flashed = append(flashed, message) })

	reactor.Handle(completion(sessionclock.EventWorkCompleted, sessionclock.MessageWorkCompleted))
	reactor.Handle(completion(sessionclock.EventBreakCompleted, sessionclock.MessageBreakCompleted))

	assert.Equal(t, []string{"Focus session done", "Break over"}, notifier.titles)
	assert.Equal(t, []string{sessionclock.MessageWorkCompleted, sessionclock.MessageBreakCompleted}, notifier.messages)
	assert.Equal(t, notifier.messages, flashed)
}

func TestReactor_NotificationsDisabled(t *testing.T) {
	notifier := &fakeNotifier{}
	flashes := 0
	reactor := NewReactor(nil, notifier, zerolog.Nop())
	reactor.SetOnCompleted(func(string) { flashes++ })
	reactor.SetNotificationsEnabled(false)

	reactor.Handle(completion(sessionclock.EventWorkCompleted, sessionclock.MessageWorkCompleted))

	assert.Empty(t, notifier.messages)
	assert.Equal(t, 1, flashes)
}

func TestReactor_RunUntilClosed(t *testing.T) {
	ambient := &fakeAmbient{}
	reactor := NewReactor(ambient, nil, zerolog.Nop())
	events := make(chan sessionclock.Event, 2)
	events <- sessionclock.Event{Type: sessionclock.EventStarted}
	events <- sessionclock.Event{Type: sessionclock.EventPaused}
	close(events)

	var seen []sessionclock.EventType
	reactor.Run(events, func(event sessionclock.Event) { seen = append(seen, event.Type) })

	assert.Equal(t, []sessionclock.EventType{sessionclock.EventStarted, sessionclock.EventPaused}, seen)
	assert.Equal(t, 1, ambient.plays)
	assert.Equal(t, 1, ambient.pauses)
}

type stubIdle struct {
	idle time.Duration
	err  error
}

func (idle stubIdle) IdleDuration() (time.Duration, error) { return idle.idle, idle.err }

func TestIdleSwitch(t *testing.T) {
	idle := NewIdleSwitch(stubIdle{idle: 10 * time.Minute}, false)

	duration, err := idle.IdleDuration()
	require.NoError(t, err)
	assert.Zero(t, duration)

	idle.SetEnabled(true)
	duration, err = idle.IdleDuration()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, duration)
}

func TestIdleSwitch_PassesUnsupported(t *testing.T) {
	idle := NewIdleSwitch(stubIdle{err: driver.ErrIdleUnsupported}, true)

	_, err := idle.IdleDuration()
	assert.ErrorIs(t, err, driver.ErrIdleUnsupported)
}
