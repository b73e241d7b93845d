package platform

import (
	"fmt"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

type idleProvider struct {
	getLastInputInfo *windows.LazyProc
}

type lastInputInfo struct {
	cbSize uint32
	dwTime uint32
}

func newIdleProvider() IdleProvider {
	user32 := windows.NewLazySystemDLL("user32.dll")
	return &idleProvider{getLastInputInfo: user32.NewProc("GetLastInputInfo")}
}

func (provider *idleProvider) IdleDuration() (time.Duration, error) {
	if err := provider.getLastInputInfo.Find(); err != nil {
		return 0, ErrIdleUnsupported
	}
	info := lastInputInfo{cbSize: uint32(unsafe.Sizeof(lastInputInfo{}))}
	result, _, err := provider.getLastInputInfo.Call(uintptr(unsafe.Pointer(&info)))
	if result == 0 {
		return 0, fmt.Errorf("get last input info: %w", err)
	}

	// dwTime is the low 32 bits of the tick count at the last input.
	now := windows.GetTickCount64()
	idleMillis := uint32(now) - info.dwTime
	return time.Duration(idleMillis) * time.Millisecond, nil
}
