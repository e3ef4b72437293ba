package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"lofitimer/internal/logging"
	"lofitimer/internal/notify"
	"lofitimer/internal/platform"
	"lofitimer/internal/session"
	"lofitimer/internal/tui"

	"github.com/spf13/cobra"
)

const tuiLogFile = "tui.log"

func newTUICommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the timer in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}
}

func runTUI(parent context.Context, opts *options) error {
	if parent == nil {
		parent = context.Background()
	}
	logCfg, err := loggingConfig(opts)
	if err != nil {
		return err
	}

	guard, err := platform.AcquireSingleInstance(appName)
	if errors.Is(err, platform.ErrAlreadyRunning) {
		return fmt.Errorf("%s is already running", appName)
	}
	if err != nil {
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	// The terminal belongs to bubbletea, so logs go next to the settings file.
	logPath, err := resolveSettingsPath(opts, platform.NewService())
	if err != nil {
		return err
	}
	logPath = filepath.Join(filepath.Dir(logPath), tuiLogFile)
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	logCfg.Output = logFile
	logCfg.Format = "json"

	rt, err := newRuntime(opts, logCfg)
	if err != nil {
		return err
	}
	defer rt.close()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	driverCtx, cancelDriver := context.WithCancel(ctx)
	defer cancelDriver()

	var notifier notify.Notifier = notify.Disabled{}
	if dbusNotifier, err := notify.NewDBus(appName); err == nil {
		notifier = dbusNotifier
	}
	reactor := session.NewReactor(rt.ambient(), notifier, logging.Component(rt.logger, "session"))
	reactor.SetNotificationsEnabled(rt.settings.NotificationsEnabled)

	go reactor.Run(rt.driver.Subscribe(16), nil)
	viewEvents := rt.driver.Subscribe(16)
	driverDone := rt.startDriver(driverCtx)

	runErr := tui.Run(ctx, rt.driver, viewEvents)

	cancelDriver()
	if err := <-driverDone; err != nil {
		rt.logger.Error().Err(err).Msg("driver stopped")
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}
