package timekeeper

import "time"

// Clock reports a monotonic reading measured from an arbitrary epoch. Readings
// never decrease and ignore wall-clock adjustments. Zero is never returned.
type Clock interface {
	Now() time.Duration
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Duration

// Now calls fn.
func (fn ClockFunc) Now() time.Duration { return fn() }

// processEpochOffset keeps process clock readings clear of the zero mark.
const processEpochOffset = time.Second

var processOrigin = time.Now()

type processClock struct{}

// NewProcessClock returns a Clock that counts milliseconds since the process
// started. Every process clock shares one origin, so snapshots taken from one
// machine restore correctly into another within the same process.
func NewProcessClock() Clock {
	return processClock{}
}

func (processClock) Now() time.Duration {
	return time.Since(processOrigin).Truncate(time.Millisecond) + processEpochOffset
}
