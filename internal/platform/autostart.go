package platform

import (
	"fmt"
	"os"
	"strings"
)

const defaultAutostartName = "lofitimer"

// Service defines OS-specific helpers needed by the application.
type Service interface {
	GetConfigDir() (string, error)
	// EnableAutostart registers execPath, followed by args, to launch at login.
	EnableAutostart(appName, execPath string, args ...string) error
	DisableAutostart(appName string) error
}

type platformService struct{}

// NewService returns a platform-specific implementation.
func NewService() Service {
	return &platformService{}
}

// GetConfigDir returns the OS-standard configuration directory.
func (service *platformService) GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}

// autostartSlug turns an app name into a lowercase, dash-separated identifier.
func autostartSlug(appName string) string {
	name := strings.Join(strings.Fields(appName), "-")
	if name == "" {
		return defaultAutostartName
	}
	return strings.ToLower(name)
}
