package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"lofitimer/internal/audio"
	"lofitimer/internal/ui/animation"
	"lofitimer/internal/ui/preferences"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsFrom_MissingFileReturnsDefaults(t *testing.T) {
	settings, err := LoadSettingsFrom(filepath.Join(t.TempDir(), "nope", settingsFileName))

	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSaveAndLoadSettings(t *testing.T) {
	path := SettingsPath(t.TempDir(), "LofiTimer")
	original := preferences.DefaultSettings()
	original.WorkDuration = 50 * time.Minute
	original.ShortBreakDuration = 10 * time.Minute
	original.LongBreakDuration = 20 * time.Minute
	original.LongBreakInterval = 3
	original.Volume = 0
	original.Tracks = []audio.Track{{Title: "Lofi Study", Path: "/music/study.mp3"}, {Path: "/music/rain.ogg"}}
	original.Scene = "forest"
	original.Weather = animation.WeatherSnow
	original.IdlePauseEnabled = true
	original.IdlePauseAfter = 3 * time.Minute
	original.NotificationsEnabled = false
	original.Autostart = true

	require.NoError(t, SaveSettingsTo(path, original))
	loaded, err := LoadSettingsFrom(path)

	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestLoadSettingsFrom_IgnoresInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	content := `work_minutes: -3
short_break_minutes: 0
long_break_interval: 0
volume: 140
weather: hail
tracks:
  - title: empty
  - path: /music/ok.mp3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	settings, err := LoadSettingsFrom(path)

	require.NoError(t, err)
	defaults := preferences.DefaultSettings()
	assert.Equal(t, defaults.ClockConfig(), settings.ClockConfig())
	assert.Equal(t, defaults.Volume, settings.Volume)
	assert.Equal(t, animation.WeatherNone, settings.Weather)
	assert.True(t, settings.NotificationsEnabled)
	assert.Equal(t, []audio.Track{{Path: "/music/ok.mp3"}}, settings.Tracks)
}

func TestLoadSettingsFrom_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("work_minutes: [oops"), 0o644))

	settings, err := LoadSettingsFrom(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse settings yaml")
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSettingsPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/cfg", "LofiTimer", "settings.yaml"), SettingsPath("/cfg", "LofiTimer"))
}

func TestBackupSettings_KeepsBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	broken := []byte("work_minutes: [oops\ntracks:\n  - path: /music/keep.mp3\n")
	require.NoError(t, os.WriteFile(path, broken, 0o644))

	backupPath, err := BackupSettings(path)
	require.NoError(t, err)
	require.NoError(t, SaveSettingsTo(path, preferences.DefaultSettings()))

	assert.Equal(t, path+".bak", backupPath)
	saved, err := os.ReadFile(backupPath)
	require.NoError(t, err)
	assert.Equal(t, broken, saved)
}

func TestBackupSettings_MissingFile(t *testing.T) {
	_, err := BackupSettings(filepath.Join(t.TempDir(), settingsFileName))
	assert.Error(t, err)
}
