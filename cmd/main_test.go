package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"lofitimer/internal/storage"
	"lofitimer/internal/ui/preferences"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	configDir string
	err       error
}

func (service stubService) GetConfigDir() (string, error) { return service.configDir, service.err }
func (stubService) EnableAutostart(appName, execPath string, args ...string) error {
	return nil
}
func (stubService) DisableAutostart(appName string) error { return nil }

func TestRootCommand_Flags(t *testing.T) {
	root := newRootCommand()

	require.NoError(t, root.ParseFlags([]string{"--settings", "/tmp/s.yaml", "--log-level", "debug", "--no-audio"}))

	for _, name := range []string{"settings", "log-level", "log-format", "no-audio"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(name), name)
	}
	tuiCmd, _, err := root.Find([]string{"tui"})
	require.NoError(t, err)
	assert.Equal(t, "tui", tuiCmd.Name())
}

func TestResolveSettingsPath(t *testing.T) {
	path, err := resolveSettingsPath(&options{settingsPath: "/custom/settings.yaml"}, stubService{})
	require.NoError(t, err)
	assert.Equal(t, "/custom/settings.yaml", path)

	path, err = resolveSettingsPath(&options{}, stubService{configDir: "/cfg"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/cfg", appName, "settings.yaml"), path)

	_, err = resolveSettingsPath(&options{}, stubService{err: errors.New("no home")})
	assert.Error(t, err)
}

func TestLoggingConfig(t *testing.T) {
	t.Setenv("LOFITIMER_LOG_LEVEL", "warn")
	t.Setenv("LOFITIMER_LOG_FORMAT", "")

	cfg, err := loggingConfig(&options{})
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, cfg.Level)
	assert.Equal(t, "console", cfg.Format)

	cfg, err = loggingConfig(&options{logLevel: "debug", logFormat: "json"})
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, cfg.Level)
	assert.Equal(t, "json", cfg.Format)

	_, err = loggingConfig(&options{logLevel: "loud"})
	assert.Error(t, err)
	_, err = loggingConfig(&options{logFormat: "xml"})
	assert.Error(t, err)
}

func TestLoadSettings_BrokenFileSurvivesSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	broken := []byte("work_minutes: [oops\ntracks:\n  - path: /music/keep.mp3\n")
	require.NoError(t, os.WriteFile(path, broken, 0o644))

	settings, persist := loadSettings(zerolog.Nop(), path)
	assert.True(t, persist)
	assert.Equal(t, preferences.DefaultSettings(), settings)

	rt := &runtime{logger: zerolog.Nop(), settingsPath: path, settings: settings, persist: persist}
	rt.saveSettings()

	backup, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, broken, backup)
	_, err = storage.LoadSettingsFrom(path)
	assert.NoError(t, err)
}

func TestLoadSettings_UnreadableFileIsNeverOverwritten(t *testing.T) {
	// A directory in place of the file makes both the read and the backup fail.
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.Mkdir(path, 0o755))

	settings, persist := loadSettings(zerolog.Nop(), path)
	assert.False(t, persist)

	rt := &runtime{logger: zerolog.Nop(), settingsPath: path, settings: settings, persist: persist}
	rt.saveSettings()

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLoadSettings_MissingFilePersists(t *testing.T) {
	_, persist := loadSettings(zerolog.Nop(), filepath.Join(t.TempDir(), "settings.yaml"))
	assert.True(t, persist)
}

func TestAutostartArgs(t *testing.T) {
	assert.Empty(t, autostartArgs(&options{}))

	args := autostartArgs(&options{settingsPath: "/etc/lofi/settings.yaml", noAudio: true})
	assert.Equal(t, []string{"--settings", "/etc/lofi/settings.yaml", "--no-audio"}, args)

	args = autostartArgs(&options{settingsPath: "relative.yaml"})
	require.Len(t, args, 2)
	assert.True(t, filepath.IsAbs(args[1]))
}
