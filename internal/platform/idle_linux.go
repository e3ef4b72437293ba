package platform

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	mutterIdleService = "org.gnome.Mutter.IdleMonitor"
	mutterIdlePath    = "/org/gnome/Mutter/IdleMonitor/Core"
	mutterIdleMethod  = "org.gnome.Mutter.IdleMonitor.GetIdletime"
)

type xprintidleProvider struct {
	path string
}

// mutterIdleProvider asks GNOME Shell over the session bus, which also works under Wayland.
type mutterIdleProvider struct {
	conn *dbus.Conn
}

func newIdleProvider() IdleProvider {
	if strings.EqualFold(os.Getenv("XDG_SESSION_TYPE"), "wayland") {
		if provider, ok := newMutterIdleProvider(); ok {
			return provider
		}
	}
	if path, err := exec.LookPath("xprintidle"); err == nil {
		return &xprintidleProvider{path: path}
	}
	if provider, ok := newMutterIdleProvider(); ok {
		return provider
	}
	return unsupportedIdleProvider{}
}

func newMutterIdleProvider() (*mutterIdleProvider, bool) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, false
	}
	provider := &mutterIdleProvider{conn: conn}
	if _, err := provider.IdleDuration(); err != nil {
		return nil, false
	}
	return provider, true
}

func (provider *xprintidleProvider) IdleDuration() (time.Duration, error) {
	output, err := exec.Command(provider.path).Output()
	if err != nil {
		return 0, fmt.Errorf("xprintidle: %w", err)
	}
	return parseIdleMillis(string(output))
}

func (provider *mutterIdleProvider) IdleDuration() (time.Duration, error) {
	var idleMillis uint64
	call := provider.conn.Object(mutterIdleService, dbus.ObjectPath(mutterIdlePath)).Call(mutterIdleMethod, 0)
	if err := call.Store(&idleMillis); err != nil {
		return 0, fmt.Errorf("mutter idle monitor: %w", err)
	}
	return time.Duration(idleMillis) * time.Millisecond, nil
}
