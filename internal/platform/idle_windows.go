package platform

import (
	"fmt"
	"syscall"
	"time"
	"unsafe"
)

var (
	getLastInputInfo = syscall.NewLazyDLL("user32.dll").NewProc("GetLastInputInfo")
	getTickCount     = syscall.NewLazyDLL("kernel32.dll").NewProc("GetTickCount")
)

type idleProvider struct{}

type lastInputInfo struct {
	cbSize uint32
	dwTime uint32
}

func newIdleProvider() IdleProvider {
	if err := getLastInputInfo.Find(); err != nil {
		return unsupportedIdleProvider{}
	}
	return &idleProvider{}
}

func (provider *idleProvider) IdleDuration() (time.Duration, error) {
	info := lastInputInfo{cbSize: uint32(unsafe.Sizeof(lastInputInfo{}))}

	result, _, err := getLastInputInfo.Call(uintptr(unsafe.Pointer(&info)))
	if result == 0 {
		if err != nil {
			return 0, fmt.Errorf("get last input info: %w", err)
		}
		return 0, fmt.Errorf("get last input info: unknown error")
	}

	tickResult, _, _ := getTickCount.Call()

	// GetTickCount and dwTime are both 32-bit and wrap together every 49.7 days.
	idleMillis := uint32(tickResult) - info.dwTime
	return time.Duration(idleMillis) * time.Millisecond, nil
}
