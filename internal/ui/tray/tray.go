package tray

import (
	"fmt"

	"lofitimer/internal/core/sessionclock"
	"lofitimer/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnToggle      func()
	OnReset       func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	resetItem  *fyne.MenuItem
	icon       resources.IconKind
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Ready", nil)
	manager.statusItem.Disabled = true
	manager.toggleItem = fyne.NewMenuItem("Start", invoke(&manager.callbacks.OnToggle))
	manager.resetItem = fyne.NewMenuItem("Reset", invoke(&manager.callbacks.OnReset))

	manager.refreshMenu()
	return manager
}

// Update reflects a clock snapshot in the tray menu and icon.
func (manager *Manager) Update(snapshot sessionclock.Snapshot) {
	manager.statusItem.Label = StatusText(snapshot)
	manager.toggleItem.Label = ToggleLabel(snapshot.Running)

	icon := IconFor(snapshot)
	if icon != manager.icon && manager.app != nil {
		manager.icon = icon
		manager.app.SetSystemTrayIcon(resources.MustIcon(icon))
	}
	manager.refreshMenu()
}

// StatusText formats the disabled status row of the tray menu.
func StatusText(snapshot sessionclock.Snapshot) string {
	status := fmt.Sprintf("%s %s", snapshot.ModeLabel(), snapshot.Display())
	if !snapshot.Running {
		status += " (paused)"
	}
	return status
}

// ToggleLabel returns the label of the start/pause item.
func ToggleLabel(running bool) string {
	if running {
		return "Pause"
	}
	return "Start"
}

// IconFor picks the tray icon tint for a snapshot.
func IconFor(snapshot sessionclock.Snapshot) resources.IconKind {
	switch {
	case !snapshot.Running:
		return resources.IconPaused
	case !snapshot.Phase.IsBreak():
		return resources.IconWork
	case snapshot.Phase == sessionclock.PhaseLongBreak:
		return resources.IconLongBreak
	default:
		return resources.IconShortBreak
	}
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("LofiTimer",
		manager.statusItem,
		fyne.NewMenuItem("Show timer", invoke(&manager.callbacks.OnShow)),
		fyne.NewMenuItemSeparator(),
		manager.toggleItem,
		manager.resetItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", invoke(&manager.callbacks.OnPreferences)),
		fyne.NewMenuItem("Quit", invoke(&manager.callbacks.OnQuit)),
	))
}

func invoke(handler *func()) func() {
	return func() {
		if *handler != nil {
			(*handler)()
		}
	}
}
