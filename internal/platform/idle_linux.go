package platform

import "os"

// Idle time comes from xprintidle, which needs an X display. Wayland-only
// sessions report unsupported.
func newIdleProvider() IdleProvider {
	if os.Getenv("DISPLAY") == "" {
		return IdleFunc(unsupportedIdle)
	}
	return lookupIdleCommand("xprintidle", parseIdleMillis)
}
