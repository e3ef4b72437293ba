package main

import (
	"fmt"
	"os"

	"lofitimer/internal/logging"
	"lofitimer/internal/platform"
	"lofitimer/internal/storage"

	"github.com/spf13/cobra"
)

const (
	appName = "LofiTimer"
	appID   = "io.lofitimer.app"
)

type options struct {
	settingsPath string
	logLevel     string
	logFormat    string
	noAudio      bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "lofitimer",
		Short:         "A lofi pomodoro timer",
		Long:          "LofiTimer alternates focus sessions and breaks over ambient music and animated scenes.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.settingsPath, "settings", "", "path to settings.yaml (default: user config dir)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: trace, debug, info, warn, error, off")
	flags.StringVar(&opts.logFormat, "log-format", "", "log format: console or json")
	flags.BoolVar(&opts.noAudio, "no-audio", false, "disable ambient music")

	root.AddCommand(newTUICommand(opts))
	return root
}

// resolveSettingsPath picks the --settings flag or the OS config directory.
func resolveSettingsPath(opts *options, service platform.Service) (string, error) {
	if opts.settingsPath != "" {
		return opts.settingsPath, nil
	}
	configDir, err := service.GetConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve settings path: %w", err)
	}
	return storage.SettingsPath(configDir, appName), nil
}

// loggingConfig layers flags over LOFITIMER_LOG_* over the defaults.
func loggingConfig(opts *options) (logging.Config, error) {
	cfg := logging.ApplyEnv(logging.DefaultConfig())
	if opts.logLevel != "" {
		level, ok := logging.ParseLevel(opts.logLevel)
		if !ok {
			return cfg, fmt.Errorf("unknown log level %q", opts.logLevel)
		}
		cfg.Level = level
	}
	if opts.logFormat != "" {
		format, ok := logging.ParseFormat(opts.logFormat)
		if !ok {
			return cfg, fmt.Errorf("unknown log format %q", opts.logFormat)
		}
		cfg.Format = format
	}
	return cfg, nil
}
