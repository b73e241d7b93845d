package platform

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

func bootReading() (time.Duration, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return 0, fmt.Errorf("clock_gettime monotonic: %w", err)
	}
	return time.Duration(ts.Nano()), nil
}
