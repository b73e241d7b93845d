//go:build windows

package overlay

import (
	"fyne.io/fyne/v2/driver"
	"golang.org/x/sys/windows"
)

const (
	extendedStyleIndex = ^uintptr(19) // GWL_EXSTYLE (-20)
	layeredStyle       = 0x00080000   // WS_EX_LAYERED
	alphaFlag          = 0x2          // LWA_ALPHA
)

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	getWindowLongPtr     = user32.NewProc("GetWindowLongPtrW")
	setWindowLongPtr     = user32.NewProc("SetWindowLongPtrW")
	setLayeredAttributes = user32.NewProc("SetLayeredWindowAttributes")
)

// applyNativeOpacity makes the overlay a layered window with the given alpha.
func (overlay *Window) applyNativeOpacity(alpha uint8) {
	native, ok := overlay.window.(driver.NativeWindow)
	if !ok {
		return
	}
	native.RunNative(func(context any) {
		if hwnd := nativeHandle(context); hwnd != 0 {
			setLayeredAlpha(hwnd, alpha)
		}
	})
}

func nativeHandle(context any) uintptr {
	switch value := context.(type) {
	case driver.WindowsWindowContext:
		return value.HWND
	case *driver.WindowsWindowContext:
		return value.HWND
	}
	return 0
}

func setLayeredAlpha(hwnd uintptr, alpha uint8) {
	style, _, _ := getWindowLongPtr.Call(hwnd, extendedStyleIndex)
	if style&layeredStyle == 0 {
		_, _, _ = setWindowLongPtr.Call(hwnd, extendedStyleIndex, style|layeredStyle)
	}
	_, _, _ = setLayeredAttributes.Call(hwnd, 0, uintptr(alpha), alphaFlag)
}
