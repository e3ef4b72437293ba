package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"lofitimer/internal/audio"
	"lofitimer/internal/core/driver"
	"lofitimer/internal/core/sessionclock"
	"lofitimer/internal/logging"
	"lofitimer/internal/platform"
	"lofitimer/internal/session"
	"lofitimer/internal/storage"
	"lofitimer/internal/ui/preferences"

	"github.com/rs/zerolog"
)

// runtime bundles what both front ends share.
type runtime struct {
	opts         *options
	logger       zerolog.Logger
	service      platform.Service
	settingsPath string
	settings     preferences.Settings
	persist      bool
	idle         *session.IdleSwitch
	driver       *driver.Driver
	player       *audio.Player
}

func newRuntime(opts *options, logCfg logging.Config) (*runtime, error) {
	logger := logging.New(logCfg)
	service := platform.NewService()

	settingsPath, err := resolveSettingsPath(opts, service)
	if err != nil {
		return nil, err
	}
	settings, persist := loadSettings(logger, settingsPath)

	idle := session.NewIdleSwitch(platform.NewIdleProvider(), settings.IdlePauseEnabled)
	clock := sessionclock.New(settings.ClockConfig())
	drv := driver.New(clock, driver.Options{
		TickInterval:   time.Second,
		Logger:         logging.Component(logger, "driver"),
		IdleChecker:    idle,
		IdlePauseAfter: settings.IdlePauseAfter,
	})

	var player *audio.Player
	if !opts.noAudio {
		player = audio.NewPlayer(settings.Tracks, settings.Volume, logging.Component(logger, "audio"))
	}

	logger.Info().
		Str("settings", settingsPath).
		Int("work_seconds", clock.Snapshot().PhaseSeconds).
		Int("long_break_interval", settings.LongBreakInterval).
		Int("tracks", len(settings.Tracks)).
		Msg("session ready")

	return &runtime{
		opts:         opts,
		logger:       logger,
		service:      service,
		settingsPath: settingsPath,
		settings:     settings,
		persist:      persist,
		idle:         idle,
		driver:       drv,
		player:       player,
	}, nil
}

// ambient returns the player as a reactor dependency, keeping a nil player a nil interface.
func (rt *runtime) ambient() session.Ambient {
	if rt.player == nil {
		return nil
	}
	return rt.player
}

func (rt *runtime) startDriver(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- rt.driver.Run(ctx)
	}()
	return done
}

// loadSettings reads the settings file. When the file exists but cannot be
// loaded, it is copied to a .bak file first; if even that fails, persist is
// false so the defaults never overwrite the user's file.
func loadSettings(logger zerolog.Logger, settingsPath string) (preferences.Settings, bool) {
	settings, err := storage.LoadSettingsFrom(settingsPath)
	if err == nil {
		return settings, true
	}

	logger.Warn().Err(err).Str("path", settingsPath).Msg("using default settings")
	backupPath, backupErr := storage.BackupSettings(settingsPath)
	if backupErr != nil {
		logger.Error().Err(backupErr).Str("path", settingsPath).Msg("settings will not be saved this session")
		return settings, false
	}
	logger.Warn().Str("backup", backupPath).Msg("kept a copy of the unreadable settings file")
	return settings, true
}

func (rt *runtime) saveSettings() {
	if !rt.persist {
		rt.logger.Debug().Str("path", rt.settingsPath).Msg("skipping settings save")
		return
	}
	if err := storage.SaveSettingsTo(rt.settingsPath, rt.settings); err != nil {
		rt.logger.Error().Err(err).Msg("save settings")
	}
}

// applySettings pushes edited preferences into the running session.
func (rt *runtime) applySettings(updated preferences.Settings) {
	previous := rt.settings
	rt.settings = updated

	if previous.ClockChanged(updated) {
		rt.driver.UpdateConfig(updated.ClockConfig())
	}
	rt.idle.SetEnabled(updated.IdlePauseEnabled)
	if previous.Autostart != updated.Autostart {
		if err := rt.setAutostart(updated.Autostart); err != nil {
			rt.logger.Error().Err(err).Msg("update autostart")
		}
	}
	rt.saveSettings()
}

func (rt *runtime) setAutostart(enabled bool) error {
	if !enabled {
		return rt.service.DisableAutostart(appName)
	}
	execPath, err := executablePath()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}
	return rt.service.EnableAutostart(appName, execPath, autostartArgs(rt.opts)...)
}

func (rt *runtime) close() {
	if rt.player != nil {
		rt.player.Close()
	}
}

// autostartArgs carries flags that change where state lives into the login command.
func autostartArgs(opts *options) []string {
	var args []string
	if opts.settingsPath != "" {
		if absolute, err := filepath.Abs(opts.settingsPath); err == nil {
			args = append(args, "--settings", absolute)
		} else {
			args = append(args, "--settings", opts.settingsPath)
		}
	}
	if opts.noAudio {
		args = append(args, "--no-audio")
	}
	return args
}
