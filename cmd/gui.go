package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"lofitimer/internal/core/sessionclock"
	"lofitimer/internal/logging"
	"lofitimer/internal/notify"
	"lofitimer/internal/platform"
	"lofitimer/internal/session"
	"lofitimer/internal/ui/animation"
	"lofitimer/internal/ui/preferences"
	"lofitimer/internal/ui/timerview"
	"lofitimer/internal/ui/tray"
	"lofitimer/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

func runGUI(opts *options) error {
	logCfg, err := loggingConfig(opts)
	if err != nil {
		return err
	}

	guard, err := platform.AcquireSingleInstance(appName)
	if errors.Is(err, platform.ErrAlreadyRunning) {
		return platform.ActivateRunning(appName)
	}
	if err != nil {
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	rt, err := newRuntime(opts, logCfg)
	if err != nil {
		return err
	}
	defer rt.close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	driverDone := rt.startDriver(ctx)

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustIcon(resources.IconApp))

	var notifier notify.Notifier = notify.NewFyne(fyneApp)
	if dbusNotifier, err := notify.NewDBus(appName); err == nil {
		notifier = notify.NewChain(logging.Component(rt.logger, "notify"), dbusNotifier, notifier)
	} else {
		rt.logger.Debug().Err(err).Msg("falling back to fyne notifications")
	}

	reactor := session.NewReactor(rt.ambient(), notifier, logging.Component(rt.logger, "session"))
	reactor.SetNotificationsEnabled(rt.settings.NotificationsEnabled)

	trackTitle := ""
	if rt.player != nil {
		trackTitle = rt.player.Title()
	}

	var prefsWindow *preferences.Window
	var view *timerview.Window
	view = timerview.New(fyneApp, timerview.State{
		Scene:   rt.settings.Scene,
		Weather: rt.settings.Weather,
		Volume:  rt.settings.Volume,
		Track:   trackTitle,
	}, rt.driver, timerview.Callbacks{
		OnToggle: rt.driver.Toggle,
		OnReset:  rt.driver.Reset,
		OnVolume: func(volume int) {
			rt.settings.Volume = volume
			if rt.player != nil {
				rt.player.SetVolume(volume)
			}
		},
		OnMute: func() {
			if rt.player == nil {
				return
			}
			volume := rt.player.ToggleMute()
			rt.settings.Volume = volume
			view.SetVolume(volume)
		},
		OnNextTrack: func() {
			if rt.player == nil {
				return
			}
			if err := rt.player.Next(); err != nil {
				rt.logger.Warn().Err(err).Msg("skip track")
			}
		},
		OnScene: func(name string) {
			rt.settings.Scene = name
		},
		OnWeather: func(weather animation.Weather) {
			rt.settings.Weather = weather
		},
		OnPreferences: func() {
			prefsWindow.Show()
		},
	})
	defer view.Close()

	if rt.player != nil {
		rt.player.SetOnTrackChange(view.SetTrackTitle)
	}
	reactor.SetOnCompleted(view.Flash)

	prefsWindow = preferences.New(fyneApp, rt.settings, func(updated preferences.Settings) {
		// Volume, scene and weather are owned by the timer window.
		updated.Volume = rt.settings.Volume
		updated.Scene = rt.settings.Scene
		updated.Weather = rt.settings.Weather
		reactor.SetNotificationsEnabled(updated.NotificationsEnabled)
		rt.applySettings(updated)
	})

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow:        view.Show,
			OnToggle:      rt.driver.Toggle,
			OnReset:       rt.driver.Reset,
			OnPreferences: prefsWindow.Show,
			OnQuit:        fyneApp.Quit,
		})
		trayManager.Update(rt.driver.Snapshot())
	} else {
		rt.logger.Info().Msg("system tray unsupported on this platform")
	}

	go guard.Serve(func() {
		fyne.Do(view.Show)
	})

	events := rt.driver.Subscribe(16)
	go reactor.Run(events, func(event sessionclock.Event) {
		view.Render(event.Snapshot)
		if trayManager != nil {
			fyne.Do(func() {
				trayManager.Update(event.Snapshot)
			})
		}
	})

	view.Render(rt.driver.Snapshot())
	view.Show()
	fyneApp.Run()

	cancel()
	if err := <-driverDone; err != nil {
		rt.logger.Error().Err(err).Msg("driver stopped")
	}
	rt.saveSettings()
	return nil
}

func executablePath() (string, error) {
	path, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(path)
}
