package preferences

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window        fyne.Window
	settings      Settings
	onSave        func(Settings)
	work          *widget.Entry
	shortBreak    *widget.Entry
	longBreak     *widget.Entry
	interval      *widget.Entry
	idleCheck     *widget.Check
	idleAfter     *widget.Entry
	notifications *widget.Check
	autostart     *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("LofiTimer Settings")

	prefs := &Window{
		window:        window,
		onSave:        onSave,
		work:          widget.NewEntry(),
		shortBreak:    widget.NewEntry(),
		longBreak:     widget.NewEntry(),
		interval:      widget.NewEntry(),
		idleCheck:     widget.NewCheck("Pause work when I'm away", nil),
		idleAfter:     widget.NewEntry(),
		notifications: widget.NewCheck("Show notifications", nil),
		autostart:     widget.NewCheck("Launch at login", nil),
	}

	form := container.NewVBox(
		widget.NewLabelWithStyle("Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Focus"), prefs.work, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Short break"), prefs.shortBreak, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Long break"), prefs.longBreak, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Long break every"), prefs.interval, widget.NewLabel("sessions")),
		widget.NewLabelWithStyle("General", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.idleCheck,
		container.NewHBox(widget.NewLabel("Away after"), prefs.idleAfter, widget.NewLabel("min")),
		prefs.notifications,
		prefs.autostart,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(380, 420))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.work.SetText(formatMinutes(settings.WorkDuration))
	prefs.shortBreak.SetText(formatMinutes(settings.ShortBreakDuration))
	prefs.longBreak.SetText(formatMinutes(settings.LongBreakDuration))
	prefs.interval.SetText(strconv.Itoa(settings.LongBreakInterval))
	prefs.idleCheck.SetChecked(settings.IdlePauseEnabled)
	prefs.idleAfter.SetText(formatMinutes(settings.IdlePauseAfter))
	prefs.notifications.SetChecked(settings.NotificationsEnabled)
	prefs.autostart.SetChecked(settings.Autostart)
}

func (prefs *Window) handleSave() {
	settings := Apply(prefs.settings, Form{
		Work:                 prefs.work.Text,
		ShortBreak:           prefs.shortBreak.Text,
		LongBreak:            prefs.longBreak.Text,
		LongBreakInterval:    prefs.interval.Text,
		IdlePauseEnabled:     prefs.idleCheck.Checked,
		IdlePauseAfter:       prefs.idleAfter.Text,
		NotificationsEnabled: prefs.notifications.Checked,
		Autostart:            prefs.autostart.Checked,
	})

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

// Form holds the raw values typed into the preferences window.
type Form struct {
	Work                 string
	ShortBreak           string
	LongBreak            string
	LongBreakInterval    string
	IdlePauseEnabled     bool
	IdlePauseAfter       string
	NotificationsEnabled bool
	Autostart            bool
}

// Apply merges form values into settings. Invalid numbers keep the previous value.
func Apply(settings Settings, form Form) Settings {
	if minutes, ok := parsePositiveInt(form.Work); ok {
		settings.WorkDuration = time.Duration(minutes) * time.Minute
	}
	if minutes, ok := parsePositiveInt(form.ShortBreak); ok {
		settings.ShortBreakDuration = time.Duration(minutes) * time.Minute
	}
	if minutes, ok := parsePositiveInt(form.LongBreak); ok {
		settings.LongBreakDuration = time.Duration(minutes) * time.Minute
	}
	if sessions, ok := parsePositiveInt(form.LongBreakInterval); ok {
		settings.LongBreakInterval = sessions
	}
	if minutes, ok := parsePositiveInt(form.IdlePauseAfter); ok {
		settings.IdlePauseAfter = time.Duration(minutes) * time.Minute
	}

	settings.IdlePauseEnabled = form.IdlePauseEnabled
	settings.NotificationsEnabled = form.NotificationsEnabled
	settings.Autostart = form.Autostart
	return settings
}

func formatMinutes(value time.Duration) string {
	return fmt.Sprintf("%d", int(value.Minutes()))
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
