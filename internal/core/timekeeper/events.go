package timekeeper

import "time"

// State represents the user-visible mode of a stopwatch or timer.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
)

func stateOf(started, paused bool) State {
	switch {
	case !started:
		return StateIdle
	case paused:
		return StatePaused
	default:
		return StateRunning
	}
}

// StopwatchWatcher observes a Stopwatch.
type StopwatchWatcher interface {
	OnTimeChanged(reading time.Duration)
	OnStateChanged(started, paused bool)
	OnLap(reading time.Duration)
}

// TimerWatcher observes a Timer.
type TimerWatcher interface {
	OnTimeChanged(rest, total time.Duration)
	OnStateChanged(started, paused bool)
	OnTimeout()
}

// StopwatchFuncs implements StopwatchWatcher with optional callbacks.
type StopwatchFuncs struct {
	TimeChanged  func(reading time.Duration)
	StateChanged func(started, paused bool)
	Lap          func(reading time.Duration)
}

func (funcs StopwatchFuncs) OnTimeChanged(reading time.Duration) {
	if funcs.TimeChanged != nil {
		funcs.TimeChanged(reading)
	}
}

func (funcs StopwatchFuncs) OnStateChanged(started, paused bool) {
	if funcs.StateChanged != nil {
		funcs.StateChanged(started, paused)
	}
}

func (funcs StopwatchFuncs) OnLap(reading time.Duration) {
	if funcs.Lap != nil {
		funcs.Lap(reading)
	}
}

// TimerFuncs implements TimerWatcher with optional callbacks.
type TimerFuncs struct {
	TimeChanged  func(rest, total time.Duration)
	StateChanged func(started, paused bool)
	Timeout      func()
}

func (funcs TimerFuncs) OnTimeChanged(rest, total time.Duration) {
	if funcs.TimeChanged != nil {
		funcs.TimeChanged(rest, total)
	}
}

func (funcs TimerFuncs) OnStateChanged(started, paused bool) {
	if funcs.StateChanged != nil {
		funcs.StateChanged(started, paused)
	}
}

func (funcs TimerFuncs) OnTimeout() {
	if funcs.Timeout != nil {
		funcs.Timeout()
	}
}
