package timekeeper

import (
	"time"

	"lemonclock/internal/core/model"

	"go.uber.org/zap"
)

// Timer counts down from a configured total and reports a timeout once the
// remaining time reaches zero. It stays running at zero until paused or reset.
type Timer struct {
	clock     Clock
	logger    *zap.Logger
	watcher   TimerWatcher
	scheduler *Scheduler
	base      time.Duration
	pause     time.Duration
	total     time.Duration
	started   bool
	timedOut  bool
}

// NewTimer creates an idle, unconfigured timer.
func NewTimer(options Options) *Timer {
	options = options.withDefaults()
	timer := &Timer{
		clock:  options.Clock,
		logger: options.Logger,
	}
	timer.scheduler = newScheduler(timer.ticking, timer.tick, options.Logger)
	return timer
}

// SetWatcher registers the single observer, replacing any previous one.
func (timer *Timer) SetWatcher(watcher TimerWatcher) {
	timer.watcher = watcher
}

// Attach binds the timer to the host event loop and starts ticking if running.
func (timer *Timer) Attach(handle Handle) {
	timer.scheduler.Attach(handle)
}

// Detach stops ticking and releases the handle and the watcher.
func (timer *Timer) Detach() {
	timer.scheduler.Detach()
	timer.watcher = nil
}

// SetSuspend pauses or resumes time updates while the host is not visible.
func (timer *Timer) SetSuspend(suspend bool) {
	timer.scheduler.SetSuspend(suspend)
}

// Scheduler exposes the tick scheduler for inspection.
func (timer *Timer) Scheduler() *Scheduler {
	return timer.scheduler
}

// SetTotal resets the timer and configures a new countdown length.
// Non-positive or unchanged totals are ignored.
func (timer *Timer) SetTotal(total time.Duration) {
	if total <= 0 || total == timer.total {
		return
	}
	timer.Reset()
	timer.total = total
	timer.logger.Debug("timer total set", zap.Duration("total", total))
	timer.notifyTime()
}

// Total returns the configured countdown length, or zero when unconfigured.
func (timer *Timer) Total() time.Duration {
	return timer.total
}

// StartOrResume starts an idle timer or resumes a paused one. Starting a timer
// without a total fails with ErrNotConfigured.
func (timer *Timer) StartOrResume() error {
	switch {
	case !timer.started:
		if timer.total <= 0 {
			return ErrNotConfigured
		}
		timer.started = true
		timer.base = timer.clock.Now()
		timer.pause = model.NoMark
		timer.timedOut = false
		timer.logger.Debug("timer started",
			zap.Duration("base", timer.base),
			zap.Duration("total", timer.total))
	case timer.pause != model.NoMark:
		pausedFor := timer.clock.Now() - timer.pause
		timer.base += pausedFor
		timer.pause = model.NoMark
		timer.logger.Debug("timer resumed", zap.Duration("paused_for", pausedFor))
	default:
		return nil
	}
	timer.notifyState()
	timer.scheduler.update()
	return nil
}

// Pause freezes the remaining time. Nothing happens unless the timer is running.
func (timer *Timer) Pause() {
	if !timer.started || timer.pause != model.NoMark {
		return
	}
	now := timer.clock.Now()
	expired := timer.total-(now-timer.base) <= 0
	if expired {
		// Hold an expired countdown at zero.
		now = timer.base + timer.total
	}
	timer.pause = now
	if expired {
		timer.expire()
	}
	timer.logger.Debug("timer paused", zap.Duration("rest", timer.Reading()))
	timer.notifyState()
	timer.scheduler.update()
}

// Reset returns the timer to idle. The configured total is kept.
func (timer *Timer) Reset() {
	wasStarted := timer.started
	timer.started = false
	timer.base = model.NoMark
	timer.pause = model.NoMark
	timer.timedOut = false
	if wasStarted {
		timer.logger.Debug("timer reset")
		timer.notifyState()
	}
	timer.scheduler.update()
	timer.notifyTime()
}

// Reading returns the remaining time. The first observation at or past the
// deadline reports the timeout to the watcher.
func (timer *Timer) Reading() time.Duration {
	if !timer.started {
		return 0
	}
	if timer.base == model.NoMark {
		violate(timer.logger, "timer.Reading", timer.Snapshot(), "base reading is not set")
	}
	if timer.total <= 0 {
		violate(timer.logger, "timer.Reading", timer.Snapshot(), "started without a total")
	}
	if timer.pause != model.NoMark {
		elapsed := timer.pause - timer.base
		if elapsed < 0 || elapsed > timer.total {
			violate(timer.logger, "timer.Reading", timer.Snapshot(),
				"paused elapsed %v outside [0, %v]", elapsed, timer.total)
		}
		return timer.total - elapsed
	}
	elapsed := timer.clock.Now() - timer.base
	if elapsed < 0 {
		violate(timer.logger, "timer.Reading", timer.Snapshot(), "negative elapsed time %v", elapsed)
	}
	rest := timer.total - elapsed
	if rest <= 0 {
		timer.expire()
		return 0
	}
	return rest
}

// IsStarted reports whether the timer was started since its last reset.
func (timer *Timer) IsStarted() bool {
	return timer.started
}

// IsPaused reports whether the timer is paused.
func (timer *Timer) IsPaused() bool {
	return timer.started && timer.pause != model.NoMark
}

// TimedOut reports whether the current countdown has reported its timeout.
func (timer *Timer) TimedOut() bool {
	return timer.timedOut
}

// State returns the current mode.
func (timer *Timer) State() State {
	return stateOf(timer.IsStarted(), timer.IsPaused())
}

// Snapshot returns a copy of the persisted fields.
func (timer *Timer) Snapshot() model.TimerState {
	return model.NewTimerState(timer.started, timer.base, timer.pause, timer.total)
}

// Restore replaces the timer fields with state, then notifies the watcher of
// the resulting mode and remaining time.
func (timer *Timer) Restore(state model.TimerState) {
	if err := state.Validate(); err != nil {
		violate(timer.logger, "timer.Restore", state, "%v", err)
	}
	timer.started = state.Started()
	timer.base = state.Base()
	timer.pause = state.PauseMark()
	timer.total = state.Total()
	timer.timedOut = false
	timer.logger.Debug("timer restored", zap.Stringer("state", state))
	timer.notifyState()
	timer.notifyTime()
	timer.scheduler.update()
}

func (timer *Timer) ticking() bool {
	return timer.started && timer.pause == model.NoMark
}

func (timer *Timer) tick() bool {
	rest := timer.Reading()
	if timer.watcher != nil {
		timer.watcher.OnTimeChanged(rest, timer.total)
	}
	return rest > 0
}

func (timer *Timer) expire() {
	if timer.timedOut {
		return
	}
	timer.timedOut = true
	timer.logger.Debug("timer timed out", zap.Duration("total", timer.total))
	if timer.watcher != nil {
		timer.watcher.OnTimeout()
	}
}

func (timer *Timer) notifyState() {
	if timer.watcher != nil {
		timer.watcher.OnStateChanged(timer.IsStarted(), timer.IsPaused())
	}
}

func (timer *Timer) notifyTime() {
	if timer.watcher != nil {
		timer.watcher.OnTimeChanged(timer.Reading(), timer.total)
	}
}
