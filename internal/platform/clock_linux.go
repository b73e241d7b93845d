package platform

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// CLOCK_BOOTTIME keeps counting while the machine is suspended.
func bootReading() (time.Duration, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_BOOTTIME, &ts); err != nil {
		return 0, fmt.Errorf("clock_gettime boottime: %w", err)
	}
	return time.Duration(ts.Nano()), nil
}
