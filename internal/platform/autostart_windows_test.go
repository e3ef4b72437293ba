//go:build windows

package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryAddArgs(t *testing.T) {
	args := registryAddArgs("LofiTimer", `C:\Program Files\LofiTimer\lofitimer.exe`, []string{"--settings", `D:\My Config\settings.yaml`})

	assert.Equal(t, []string{
		"add", registryRunKey,
		"/v", "lofitimer",
		"/t", "REG_SZ",
		"/d", `"C:\Program Files\LofiTimer\lofitimer.exe" --settings "D:\My Config\settings.yaml"`,
		"/f",
	}, args)
}

func TestRegistryDeleteArgs(t *testing.T) {
	assert.Equal(t, []string{"delete", registryRunKey, "/v", "lofitimer", "/f"}, registryDeleteArgs("LofiTimer"))
}

func TestWindowsCommandLine(t *testing.T) {
	assert.Equal(t, `"C:\lofitimer.exe"`, windowsCommandLine(`"C:\lofitimer.exe"`, nil))
	assert.Equal(t, `"C:\lofitimer.exe" --no-audio`, windowsCommandLine(`C:\lofitimer.exe`, []string{"--no-audio"}))
}
