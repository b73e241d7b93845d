package timekeeper

import (
	"errors"
	"testing"
	"time"

	"lemonclock/internal/core/timekeeper/timekeepertest"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type stateChange struct {
	started bool
	paused  bool
}

type stopwatchRecorder struct {
	times  []time.Duration
	states []stateChange
	laps   []time.Duration
}

func (recorder *stopwatchRecorder) OnTimeChanged(reading time.Duration) {
	recorder.times = append(recorder.times, reading)
}

func (recorder *stopwatchRecorder) OnStateChanged(started, paused bool) {
	recorder.states = append(recorder.states, stateChange{started: started, paused: paused})
}

func (recorder *stopwatchRecorder) OnLap(reading time.Duration) {
	recorder.laps = append(recorder.laps, reading)
}

func (recorder *stopwatchRecorder) lastTime() time.Duration {
	if len(recorder.times) == 0 {
		return -1
	}
	return recorder.times[len(recorder.times)-1]
}

type timerRecorder struct {
	rests    []time.Duration
	totals   []time.Duration
	states   []stateChange
	timeouts int
}

func (recorder *timerRecorder) OnTimeChanged(rest, total time.Duration) {
	recorder.rests = append(recorder.rests, rest)
	recorder.totals = append(recorder.totals, total)
}

func (recorder *timerRecorder) OnStateChanged(started, paused bool) {
	recorder.states = append(recorder.states, stateChange{started: started, paused: paused})
}

func (recorder *timerRecorder) OnTimeout() {
	recorder.timeouts++
}

func (recorder *timerRecorder) lastRest() time.Duration {
	if len(recorder.rests) == 0 {
		return -1
	}
	return recorder.rests[len(recorder.rests)-1]
}

type fixture struct {
	clock  *timekeepertest.FakeClock
	looper *timekeepertest.FakeLooper
}

func newFixture(t *testing.T) (fixture, Options) {
	t.Helper()
	clock := timekeepertest.NewFakeClock()
	return fixture{
			clock:  clock,
			looper: timekeepertest.NewFakeLooper(clock),
		}, Options{
			Clock:  clock,
			Logger: zaptest.NewLogger(t),
		}
}

func newAttachedStopwatch(t *testing.T) (*Stopwatch, fixture, *stopwatchRecorder) {
	t.Helper()
	env, options := newFixture(t)
	stopwatch := NewStopwatch(options)
	recorder := &stopwatchRecorder{}
	stopwatch.SetWatcher(recorder)
	stopwatch.Attach(env.looper)
	return stopwatch, env, recorder
}

func newAttachedTimer(t *testing.T, total time.Duration) (*Timer, fixture, *timerRecorder) {
	t.Helper()
	env, options := newFixture(t)
	timer := NewTimer(options)
	timer.SetTotal(total)
	recorder := &timerRecorder{}
	timer.SetWatcher(recorder)
	timer.Attach(env.looper)
	return timer, env, recorder
}

// requireInvariantPanic runs fn and returns the InvariantError it panicked with.
func requireInvariantPanic(t *testing.T, fn func()) *InvariantError {
	t.Helper()
	var recovered any
	func() {
		defer func() {
			recovered = recover()
		}()
		fn()
	}()
	require.NotNil(t, recovered, "expected an invariant panic")
	err, ok := recovered.(*InvariantError)
	require.True(t, ok, "panic value %T is not *InvariantError", recovered)
	require.True(t, errors.Is(err, ErrInternal))
	return err
}
