package platform

func newIdleProvider() IdleProvider {
	return lookupIdleCommand("ioreg", parseHIDIdleTime, "-c", "IOHIDSystem", "-d", "4")
}
