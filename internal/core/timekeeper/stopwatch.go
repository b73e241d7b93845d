package timekeeper

import (
	"time"

	"lemonclock/internal/core/model"

	"go.uber.org/zap"
)

// Stopwatch counts up from zero across start, pause and resume cycles.
type Stopwatch struct {
	clock     Clock
	logger    *zap.Logger
	watcher   StopwatchWatcher
	scheduler *Scheduler
	base      time.Duration
	pause     time.Duration
	started   bool
}

// NewStopwatch creates an idle stopwatch.
func NewStopwatch(options Options) *Stopwatch {
	options = options.withDefaults()
	stopwatch := &Stopwatch{
		clock:  options.Clock,
		logger: options.Logger,
	}
	stopwatch.scheduler = newScheduler(stopwatch.ticking, stopwatch.tick, options.Logger)
	return stopwatch
}

// SetWatcher registers the single observer, replacing any previous one.
func (stopwatch *Stopwatch) SetWatcher(watcher StopwatchWatcher) {
	stopwatch.watcher = watcher
}

// Attach binds the stopwatch to the host event loop and starts ticking if running.
func (stopwatch *Stopwatch) Attach(handle Handle) {
	stopwatch.scheduler.Attach(handle)
}

// Detach stops ticking and releases the handle and the watcher.
func (stopwatch *Stopwatch) Detach() {
	stopwatch.scheduler.Detach()
	stopwatch.watcher = nil
}

// SetSuspend pauses or resumes time updates while the host is not visible.
func (stopwatch *Stopwatch) SetSuspend(suspend bool) {
	stopwatch.scheduler.SetSuspend(suspend)
}

// Scheduler exposes the tick scheduler for inspection.
func (stopwatch *Stopwatch) Scheduler() *Scheduler {
	return stopwatch.scheduler
}

// StartOrResume starts an idle stopwatch or resumes a paused one.
func (stopwatch *Stopwatch) StartOrResume() {
	switch {
	case !stopwatch.started:
		stopwatch.started = true
		stopwatch.base = stopwatch.clock.Now()
		stopwatch.pause = model.NoMark
		stopwatch.logger.Debug("stopwatch started", zap.Duration("base", stopwatch.base))
	case stopwatch.pause != model.NoMark:
		pausedFor := stopwatch.clock.Now() - stopwatch.pause
		stopwatch.base += pausedFor
		stopwatch.pause = model.NoMark
		stopwatch.logger.Debug("stopwatch resumed", zap.Duration("paused_for", pausedFor))
	default:
		return
	}
	stopwatch.notifyState()
	stopwatch.scheduler.update()
}

// Pause freezes the reading. Nothing happens unless the stopwatch is running.
func (stopwatch *Stopwatch) Pause() {
	if !stopwatch.started || stopwatch.pause != model.NoMark {
		return
	}
	stopwatch.pause = stopwatch.clock.Now()
	stopwatch.logger.Debug("stopwatch paused", zap.Duration("reading", stopwatch.Reading()))
	stopwatch.notifyState()
	stopwatch.scheduler.update()
}

// Reset returns the stopwatch to idle and reports a zero reading.
func (stopwatch *Stopwatch) Reset() {
	wasStarted := stopwatch.started
	stopwatch.started = false
	stopwatch.base = model.NoMark
	stopwatch.pause = model.NoMark
	if wasStarted {
		stopwatch.logger.Debug("stopwatch reset")
		stopwatch.notifyState()
	}
	stopwatch.scheduler.update()
	stopwatch.notifyTime()
}

// Lap reports the current reading to the watcher without changing any state.
func (stopwatch *Stopwatch) Lap() {
	if stopwatch.watcher != nil {
		stopwatch.watcher.OnLap(stopwatch.Reading())
	}
}

// Reading returns the elapsed time.
func (stopwatch *Stopwatch) Reading() time.Duration {
	if !stopwatch.started {
		return 0
	}
	if stopwatch.base == model.NoMark {
		violate(stopwatch.logger, "stopwatch.Reading", stopwatch.Snapshot(), "base reading is not set")
	}
	mark := stopwatch.pause
	if mark == model.NoMark {
		mark = stopwatch.clock.Now()
	}
	elapsed := mark - stopwatch.base
	if elapsed < 0 {
		violate(stopwatch.logger, "stopwatch.Reading", stopwatch.Snapshot(), "negative elapsed time %v", elapsed)
	}
	return elapsed
}

// IsStarted reports whether the stopwatch was started since its last reset.
func (stopwatch *Stopwatch) IsStarted() bool {
	return stopwatch.started
}

// IsPaused reports whether the stopwatch is paused.
func (stopwatch *Stopwatch) IsPaused() bool {
	return stopwatch.started && stopwatch.pause != model.NoMark
}

// State returns the current mode.
func (stopwatch *Stopwatch) State() State {
	return stateOf(stopwatch.IsStarted(), stopwatch.IsPaused())
}

// Snapshot returns a copy of the persisted fields.
func (stopwatch *Stopwatch) Snapshot() model.StopwatchState {
	return model.NewStopwatchState(stopwatch.started, stopwatch.base, stopwatch.pause)
}

// Restore replaces the stopwatch fields with state, then notifies the watcher
// of the resulting mode and reading.
func (stopwatch *Stopwatch) Restore(state model.StopwatchState) {
	if err := state.Validate(); err != nil {
		violate(stopwatch.logger, "stopwatch.Restore", state, "%v", err)
	}
	stopwatch.started = state.Started()
	stopwatch.base = state.Base()
	stopwatch.pause = state.PauseMark()
	stopwatch.logger.Debug("stopwatch restored", zap.Stringer("state", state))
	stopwatch.notifyState()
	stopwatch.notifyTime()
	stopwatch.scheduler.update()
}

func (stopwatch *Stopwatch) ticking() bool {
	return stopwatch.started && stopwatch.pause == model.NoMark
}

func (stopwatch *Stopwatch) tick() bool {
	stopwatch.notifyTime()
	return true
}

func (stopwatch *Stopwatch) notifyState() {
	if stopwatch.watcher != nil {
		stopwatch.watcher.OnStateChanged(stopwatch.IsStarted(), stopwatch.IsPaused())
	}
}

func (stopwatch *Stopwatch) notifyTime() {
	if stopwatch.watcher != nil {
		stopwatch.watcher.OnTimeChanged(stopwatch.Reading())
	}
}
