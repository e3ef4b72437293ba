//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

const registryRunKey = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`

func (service *platformService) EnableAutostart(appName, execPath string, args ...string) error {
	if appName == "" {
		return fmt.Errorf("enable autostart: app name is empty")
	}
	if execPath == "" {
		return fmt.Errorf("enable autostart: exec path is empty")
	}
	return runReg("enable autostart", registryAddArgs(appName, execPath, args))
}

func (service *platformService) DisableAutostart(appName string) error {
	if appName == "" {
		return fmt.Errorf("disable autostart: app name is empty")
	}
	return runReg("disable autostart", registryDeleteArgs(appName))
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "AppData", "Roaming")
}

func runReg(operation string, args []string) error {
	output, err := exec.Command("reg", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: reg %s failed: %w: %s", operation, args[0], err, strings.TrimSpace(string(output)))
	}
	return nil
}

// registryAddArgs builds the reg.exe arguments that store the launch command
// under the Run key, using the app slug as the value name.
func registryAddArgs(appName, execPath string, args []string) []string {
	return []string{
		"add", registryRunKey,
		"/v", autostartSlug(appName),
		"/t", "REG_SZ",
		"/d", windowsCommandLine(execPath, args),
		"/f",
	}
}

func registryDeleteArgs(appName string) []string {
	return []string{"delete", registryRunKey, "/v", autostartSlug(appName), "/f"}
}

// windowsCommandLine always quotes the executable and quotes arguments that contain spaces.
func windowsCommandLine(execPath string, args []string) string {
	parts := []string{`"` + strings.Trim(execPath, `"`) + `"`}
	for _, arg := range args {
		if strings.ContainsAny(arg, " \t") {
			arg = `"` + strings.Trim(arg, `"`) + `"`
		}
		parts = append(parts, arg)
	}
	return strings.Join(parts, " ")
}
