// Package notify shows phase completion messages as desktop notifications.
package notify

import (
	"errors"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"github.com/godbus/dbus/v5"
	"github.com/rs/zerolog"
)

// ErrUnavailable indicates the notification backend cannot be reached.
var ErrUnavailable = errors.New("notifications unavailable")

const (
	busName       = "org.freedesktop.Notifications"
	objectPath    = "/org/freedesktop/Notifications"
	notifyMethod  = busName + ".Notify"
	expireTimeout = 3 * time.Second
)

// Notifier delivers a short message to the user.
type Notifier interface {
	Notify(title, message string) error
}

// DBus sends notifications through the freedesktop notification service.
type DBus struct {
	appName string
	conn    *dbus.Conn
	lastID  uint32
}

// NewDBus connects to the session bus.
func NewDBus(appName string) (*DBus, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("%w: connect session bus: %v", ErrUnavailable, err)
	}
	return &DBus{appName: appName, conn: conn}, nil
}

// Notify replaces the previous notification of this app with a new one.
func (notifier *DBus) Notify(title, message string) error {
	object := notifier.conn.Object(busName, dbus.ObjectPath(objectPath))
	call := object.Call(notifyMethod, 0,
		notifier.appName,
		notifier.lastID,
		"",
		title,
		message,
		[]string{},
		map[string]dbus.Variant{},
		int32(expireTimeout/time.Millisecond),
	)
	if call.Err != nil {
		return fmt.Errorf("dbus notify: %w", call.Err)
	}
	if err := call.Store(&notifier.lastID); err != nil {
		return fmt.Errorf("dbus notify reply: %w", err)
	}
	return nil
}

// Fyne sends notifications through the fyne application.
type Fyne struct {
	app fyne.App
}

// NewFyne wraps a fyne application.
func NewFyne(app fyne.App) *Fyne {
	return &Fyne{app: app}
}

// Notify shows the notification.
func (notifier *Fyne) Notify(title, message string) error {
	if notifier.app == nil {
		return ErrUnavailable
	}
	notifier.app.SendNotification(fyne.NewNotification(title, message))
	return nil
}

// Chain tries each notifier in order until one succeeds.
type Chain struct {
	notifiers []Notifier
	logger    zerolog.Logger
}

// NewChain builds a fallback chain. Nil notifiers are skipped.
func NewChain(logger zerolog.Logger, notifiers ...Notifier) *Chain {
	chain := &Chain{logger: logger}
	for _, notifier := range notifiers {
		if notifier != nil {
			chain.notifiers = append(chain.notifiers, notifier)
		}
	}
	return chain
}

// Notify delivers the message through the first working notifier.
func (chain *Chain) Notify(title, message string) error {
	var errs []error
	for _, notifier := range chain.notifiers {
		err := notifier.Notify(title, message)
		if err == nil {
			return nil
		}
		chain.logger.Debug().Err(err).Msg("notifier failed, trying next")
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return ErrUnavailable
	}
	return errors.Join(errs...)
}

// Disabled drops every message.
type Disabled struct{}

// Notify does nothing.
func (Disabled) Notify(string, string) error {
	return nil
}
