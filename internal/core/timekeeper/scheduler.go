package timekeeper

import (
	"time"

	"go.uber.org/zap"
)

// TickPeriod is the delay between two consecutive time updates.
const TickPeriod = 30 * time.Millisecond

// Handle posts callbacks onto the host's event loop.
type Handle interface {
	// Post runs fn on the event loop after delay. The returned function
	// cancels fn if it has not been dispatched yet.
	Post(delay time.Duration, fn func()) (cancel func())
}

// Scheduler drives a machine's periodic tick. It is live while it is attached,
// not suspended and the owning machine reports itself active, until a tick
// declines to continue. The next update re-evaluates and may arm it again.
//
// Each posted callback carries the generation it was posted in. Stopping the
// scheduler bumps the generation, so a callback that was already handed to the
// event loop when it was cancelled finds itself stale and does nothing.
type Scheduler struct {
	handle     Handle
	active     func() bool
	tick       func() bool
	logger     *zap.Logger
	suspended  bool
	live       bool
	generation uint64
	cancel     func()
}

func newScheduler(active func() bool, tick func() bool, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		active: active,
		tick:   tick,
		logger: logger,
	}
}

// Attach binds the scheduler to handle and clears any suspension.
func (scheduler *Scheduler) Attach(handle Handle) {
	scheduler.stop()
	scheduler.handle = handle
	scheduler.suspended = false
	scheduler.update()
}

// Detach suspends the scheduler, cancels the pending tick and releases the handle.
func (scheduler *Scheduler) Detach() {
	scheduler.suspended = true
	scheduler.stop()
	scheduler.handle = nil
}

// SetSuspend gates ticking on host visibility without touching machine state.
func (scheduler *Scheduler) SetSuspend(suspend bool) {
	if scheduler.suspended == suspend {
		return
	}
	scheduler.suspended = suspend
	scheduler.update()
}

// Suspended reports whether ticking is gated by the host.
func (scheduler *Scheduler) Suspended() bool {
	return scheduler.suspended
}

// Attached reports whether a handle is bound.
func (scheduler *Scheduler) Attached() bool {
	return scheduler.handle != nil
}

// Live reports whether the tick loop is armed.
func (scheduler *Scheduler) Live() bool {
	return scheduler.live
}

func (scheduler *Scheduler) running() bool {
	return scheduler.handle != nil && !scheduler.suspended && scheduler.active()
}

func (scheduler *Scheduler) update() {
	running := scheduler.running()
	if running == scheduler.live {
		return
	}
	if running {
		scheduler.live = true
		scheduler.logger.Debug("tick scheduler live")
		scheduler.post(0)
		return
	}
	scheduler.stop()
	scheduler.logger.Debug("tick scheduler idle")
}

func (scheduler *Scheduler) post(delay time.Duration) {
	generation := scheduler.generation
	scheduler.cancel = scheduler.handle.Post(delay, func() {
		scheduler.fire(generation)
	})
}

func (scheduler *Scheduler) fire(generation uint64) {
	if generation != scheduler.generation || !scheduler.live {
		return
	}
	scheduler.cancel = nil
	keepGoing := scheduler.tick()
	// The tick may have paused, reset or detached the machine.
	if generation != scheduler.generation || !scheduler.live {
		return
	}
	if !keepGoing {
		scheduler.stop()
		scheduler.logger.Debug("tick scheduler idle after final tick")
		return
	}
	scheduler.post(TickPeriod)
}

func (scheduler *Scheduler) stop() {
	scheduler.generation++
	if scheduler.cancel != nil {
		scheduler.cancel()
		scheduler.cancel = nil
	}
	scheduler.live = false
}
