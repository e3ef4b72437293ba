package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"lofitimer/internal/audio"
	"lofitimer/internal/ui/animation"
	"lofitimer/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const (
	settingsFileName = "settings.yaml"
	backupSuffix     = ".bak"
)

type yamlTrack struct {
	Title string `yaml:"title,omitempty"`
	Path  string `yaml:"path"`
}

type yamlSettings struct {
	WorkMinutes           int         `yaml:"work_minutes"`
	ShortBreakMinutes     int         `yaml:"short_break_minutes"`
	LongBreakMinutes      int         `yaml:"long_break_minutes"`
	LongBreakInterval     int         `yaml:"long_break_interval"`
	Volume                *int        `yaml:"volume,omitempty"`
	Tracks                []yamlTrack `yaml:"tracks,omitempty"`
	Scene                 string      `yaml:"scene,omitempty"`
	Weather               string      `yaml:"weather,omitempty"`
	IdlePauseEnabled      bool        `yaml:"idle_pause_enabled"`
	IdlePauseAfterMinutes int         `yaml:"idle_pause_after_minutes"`
	NotificationsEnabled  *bool       `yaml:"notifications_enabled,omitempty"`
	Autostart             bool        `yaml:"autostart"`
}

// SettingsPath returns the settings file location inside a config directory.
func SettingsPath(configDir, appName string) string {
	return filepath.Join(configDir, appName, settingsFileName)
}

// LoadSettingsFrom reads user preferences from a YAML file.
// If the file does not exist, default settings are returned.
func LoadSettingsFrom(configPath string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettingsTo writes user preferences to a YAML file, creating its directory.
func SaveSettingsTo(configPath string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	volume := settings.Volume
	notifications := settings.NotificationsEnabled
	fileData := yamlSettings{
		WorkMinutes:           int(settings.WorkDuration / time.Minute),
		ShortBreakMinutes:     int(settings.ShortBreakDuration / time.Minute),
		LongBreakMinutes:      int(settings.LongBreakDuration / time.Minute),
		LongBreakInterval:     settings.LongBreakInterval,
		Volume:                &volume,
		Scene:                 settings.Scene,
		Weather:               string(settings.Weather),
		IdlePauseEnabled:      settings.IdlePauseEnabled,
		IdlePauseAfterMinutes: int(settings.IdlePauseAfter / time.Minute),
		NotificationsEnabled:  &notifications,
		Autostart:             settings.Autostart,
	}
	for _, track := range settings.Tracks {
		fileData.Tracks = append(fileData.Tracks, yamlTrack{Title: track.Title, Path: track.Path})
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

// BackupSettings copies the file at configPath next to it with a .bak suffix
// and returns the backup path. Used before overwriting a file that failed to load.
func BackupSettings(configPath string) (string, error) {
	rawData, err := os.ReadFile(configPath)
	if err != nil {
		return "", fmt.Errorf("read settings for backup: %w", err)
	}

	backupPath := configPath + backupSuffix
	if err := os.WriteFile(backupPath, rawData, 0o644); err != nil {
		return "", fmt.Errorf("write settings backup: %w", err)
	}
	return backupPath, nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.WorkMinutes > 0 {
		settings.WorkDuration = time.Duration(fileData.WorkMinutes) * time.Minute
	}
	if fileData.ShortBreakMinutes > 0 {
		settings.ShortBreakDuration = time.Duration(fileData.ShortBreakMinutes) * time.Minute
	}
	if fileData.LongBreakMinutes > 0 {
		settings.LongBreakDuration = time.Duration(fileData.LongBreakMinutes) * time.Minute
	}
	if fileData.LongBreakInterval > 0 {
		settings.LongBreakInterval = fileData.LongBreakInterval
	}
	if fileData.Volume != nil && *fileData.Volume >= audio.MinVolume && *fileData.Volume <= audio.MaxVolume {
		settings.Volume = *fileData.Volume
	}
	if fileData.IdlePauseAfterMinutes > 0 {
		settings.IdlePauseAfter = time.Duration(fileData.IdlePauseAfterMinutes) * time.Minute
	}
	if fileData.Scene != "" {
		settings.Scene = fileData.Scene
	}
	if fileData.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *fileData.NotificationsEnabled
	}

	for _, track := range fileData.Tracks {
		if track.Path == "" {
			continue
		}
		settings.Tracks = append(settings.Tracks, audio.Track{Title: track.Title, Path: track.Path})
	}

	settings.Weather = animation.ParseWeather(fileData.Weather)
	settings.IdlePauseEnabled = fileData.IdlePauseEnabled
	settings.Autostart = fileData.Autostart
}
