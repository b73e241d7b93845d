package platform

import (
	"sync/atomic"
	"time"

	"lemonclock/internal/core/timekeeper"

	"go.uber.org/zap"
)

// bootClock reads time since host boot. Readings never go backwards, even if
// a later system call fails.
type bootClock struct {
	last atomic.Int64
}

// BootClock returns the production clock: time since boot, truncated to
// milliseconds. Hosts without a boot clock get the process clock instead.
func BootClock(logger *zap.Logger) timekeeper.Clock {
	if logger == nil {
		logger = zap.NewNop()
	}
	reading, err := bootReading()
	if err != nil {
		logger.Warn("boot clock unavailable, using process clock", zap.Error(err))
		return timekeeper.NewProcessClock()
	}
	logger.Debug("boot clock ready", zap.Duration("uptime", reading))
	return newBootClock(reading)
}

func newBootClock(seed time.Duration) *bootClock {
	clock := &bootClock{}
	clock.last.Store(int64(seed.Truncate(time.Millisecond)))
	return clock
}

func (clock *bootClock) Now() time.Duration {
	reading, err := bootReading()
	if err != nil {
		return time.Duration(clock.last.Load())
	}
	reading = reading.Truncate(time.Millisecond)
	if reading < time.Millisecond {
		reading = time.Millisecond
	}
	for {
		last := clock.last.Load()
		if int64(reading) <= last {
			return time.Duration(last)
		}
		if clock.last.CompareAndSwap(last, int64(reading)) {
			return reading
		}
	}
}
