//go:build !windows

package overlay

// Other desktops honour the translucent background fill.
func (overlay *Window) applyNativeOpacity(uint8) {}
