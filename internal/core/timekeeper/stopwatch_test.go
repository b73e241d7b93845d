package timekeeper

import (
	"testing"
	"time"

	"lemonclock/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStopwatchScenario(t *testing.T) {
	stopwatch, env, recorder := newAttachedStopwatch(t)

	stopwatch.Reset()
	assert.Equal(t, time.Duration(0), recorder.lastTime())
	assert.Equal(t, StateIdle, stopwatch.State())

	stopwatch.StartOrResume()
	env.looper.Advance(1500 * time.Millisecond)
	stopwatch.Pause()
	assert.Equal(t, 1500*time.Millisecond, stopwatch.Reading())
	assert.Equal(t, StatePaused, stopwatch.State())

	stopwatch.StartOrResume()
	env.looper.Advance(500 * time.Millisecond)
	assert.Equal(t, 2000*time.Millisecond, stopwatch.Reading())

	stopwatch.Lap()
	assert.Equal(t, []time.Duration{2000 * time.Millisecond}, recorder.laps)
	assert.Equal(t, 2000*time.Millisecond, stopwatch.Reading(), "lap does not alter the reading")
	assert.Equal(t, StateRunning, stopwatch.State())
}

func TestStopwatchPauseConservesReading(t *testing.T) {
	for _, pausedFor := range []time.Duration{0, 30 * time.Millisecond, 10 * time.Second, 3 * time.Hour} {
		stopwatch, env, _ := newAttachedStopwatch(t)

		stopwatch.StartOrResume()
		env.looper.Advance(700 * time.Millisecond)
		stopwatch.Pause()
		env.looper.Advance(pausedFor)
		stopwatch.StartOrResume()

		assert.Equal(t, 700*time.Millisecond, stopwatch.Reading(), "paused for %v", pausedFor)
	}
}

func TestStopwatchTicksAreMonotonic(t *testing.T) {
	stopwatch, env, recorder := newAttachedStopwatch(t)

	stopwatch.StartOrResume()
	env.looper.Advance(time.Second)
	stopwatch.Pause()
	env.looper.Advance(time.Second)
	stopwatch.StartOrResume()
	env.looper.Advance(time.Second)

	require.NotEmpty(t, recorder.times)
	for i := 1; i < len(recorder.times); i++ {
		assert.GreaterOrEqual(t, recorder.times[i], recorder.times[i-1])
	}
	assert.Equal(t, 2*time.Second, stopwatch.Reading())
}

func TestStopwatchTicksEveryPeriod(t *testing.T) {
	stopwatch, env, recorder := newAttachedStopwatch(t)

	stopwatch.StartOrResume()
	env.looper.Advance(10 * TickPeriod)

	assert.Len(t, recorder.times, 11, "one immediate tick plus one per period")
	assert.True(t, stopwatch.Scheduler().Live())
	assert.Equal(t, 1, env.looper.Pending())
}

func TestStopwatchNoOps(t *testing.T) {
	stopwatch, env, recorder := newAttachedStopwatch(t)

	stopwatch.Pause()
	assert.Empty(t, recorder.states, "pause while idle")
	assert.False(t, stopwatch.IsStarted())

	stopwatch.StartOrResume()
	stopwatch.StartOrResume()
	assert.Len(t, recorder.states, 1, "start while running")

	env.looper.Advance(100 * time.Millisecond)
	stopwatch.Pause()
	stopwatch.Pause()
	assert.Len(t, recorder.states, 2, "pause while paused")
	assert.Equal(t, 100*time.Millisecond, stopwatch.Reading())
}

func TestStopwatchResetIsIdempotent(t *testing.T) {
	stopwatch, env, recorder := newAttachedStopwatch(t)
	stopwatch.StartOrResume()
	env.looper.Advance(time.Second)

	stopwatch.Reset()
	once := stopwatch.Snapshot()
	statesAfterOnce := len(recorder.states)

	stopwatch.Reset()

	assert.Equal(t, once, stopwatch.Snapshot())
	assert.Equal(t, model.StopwatchState{}, once)
	assert.Len(t, recorder.states, statesAfterOnce, "second reset changes no state")
	assert.Equal(t, time.Duration(0), recorder.lastTime())
	assert.False(t, stopwatch.Scheduler().Live())
	assert.Zero(t, env.looper.Pending())
}

func TestStopwatchRoundTrip(t *testing.T) {
	steps := map[string]func(*Stopwatch, fixture){
		"idle": func(*Stopwatch, fixture) {},
		"running": func(stopwatch *Stopwatch, env fixture) {
			stopwatch.StartOrResume()
			env.looper.Advance(1234 * time.Millisecond)
		},
		"paused": func(stopwatch *Stopwatch, env fixture) {
			stopwatch.StartOrResume()
			env.looper.Advance(time.Second)
			stopwatch.Pause()
			env.looper.Advance(time.Minute)
		},
	}
	for name, step := range steps {
		t.Run(name, func(t *testing.T) {
			stopwatch, env, recorder := newAttachedStopwatch(t)
			step(stopwatch, env)
			reading, started, paused := stopwatch.Reading(), stopwatch.IsStarted(), stopwatch.IsPaused()

			stopwatch.Restore(stopwatch.Snapshot())

			assert.Equal(t, reading, stopwatch.Reading())
			assert.Equal(t, started, stopwatch.IsStarted())
			assert.Equal(t, paused, stopwatch.IsPaused())
			require.NotEmpty(t, recorder.states)
			assert.Equal(t, stateChange{started, paused}, recorder.states[len(recorder.states)-1])
			assert.Equal(t, reading, recorder.lastTime())
		})
	}
}

func TestStopwatchSnapshotIsACopy(t *testing.T) {
	stopwatch, env, _ := newAttachedStopwatch(t)
	stopwatch.StartOrResume()
	snapshot := stopwatch.Snapshot()

	env.looper.Advance(time.Second)
	stopwatch.Pause()
	stopwatch.Reset()

	assert.True(t, snapshot.Started())
	assert.False(t, snapshot.Paused())
	assert.NotEqual(t, model.NoMark, snapshot.Base())
}

func TestStopwatchRestoreIntoFreshMachine(t *testing.T) {
	stopwatch, env, _ := newAttachedStopwatch(t)
	stopwatch.StartOrResume()
	env.looper.Advance(3 * time.Second)
	snapshot := stopwatch.Snapshot()
	stopwatch.Detach()

	rebuilt := NewStopwatch(Options{Clock: env.clock})
	recorder := &stopwatchRecorder{}
	rebuilt.SetWatcher(recorder)
	rebuilt.Restore(snapshot)
	rebuilt.Attach(env.looper)
	env.looper.Advance(900 * time.Millisecond)

	assert.Equal(t, 3900*time.Millisecond, rebuilt.Reading())
	assert.Equal(t, 3900*time.Millisecond, recorder.lastTime())
}

func TestStopwatchSuspendIndependence(t *testing.T) {
	t.Run("paused", func(t *testing.T) {
		stopwatch, env, _ := newAttachedStopwatch(t)
		stopwatch.StartOrResume()
		env.looper.Advance(time.Second)
		stopwatch.Pause()

		stopwatch.SetSuspend(true)
		stopwatch.SetSuspend(false)

		assert.True(t, stopwatch.IsPaused())
		assert.False(t, stopwatch.Scheduler().Live())
		assert.Equal(t, time.Second, stopwatch.Reading())
	})

	t.Run("running", func(t *testing.T) {
		stopwatch, env, recorder := newAttachedStopwatch(t)
		stopwatch.StartOrResume()
		env.looper.Advance(time.Second)

		stopwatch.SetSuspend(true)
		ticks := len(recorder.times)
		env.looper.Advance(5 * time.Second)
		assert.Len(t, recorder.times, ticks, "no ticks while suspended")
		assert.Zero(t, env.looper.Pending())

		stopwatch.SetSuspend(false)
		env.looper.RunDue()
		assert.Len(t, recorder.times, ticks+1)
		assert.Equal(t, 6*time.Second, stopwatch.Reading(), "reading follows real elapsed time")
		assert.False(t, stopwatch.IsPaused())
	})
}

func TestStopwatchDetach(t *testing.T) {
	stopwatch, env, recorder := newAttachedStopwatch(t)
	stopwatch.StartOrResume()
	env.looper.RunDue()
	ticks := len(recorder.times)

	stopwatch.Detach()
	env.looper.Advance(time.Second)

	assert.Len(t, recorder.times, ticks)
	assert.True(t, stopwatch.Scheduler().Suspended())
	assert.False(t, stopwatch.Scheduler().Attached())

	stopwatch.SetWatcher(recorder)
	stopwatch.Attach(env.looper)
	assert.False(t, stopwatch.Scheduler().Suspended(), "attach clears suspension")
	env.looper.RunDue()
	assert.Len(t, recorder.times, ticks+1)
}

func TestStopwatchStaleCallbackDoesNotFire(t *testing.T) {
	stopwatch, env, recorder := newAttachedStopwatch(t)
	env.looper.IgnoreCancel = true
	stopwatch.StartOrResume()
	env.looper.RunDue()
	ticks := len(recorder.times)
	posts := env.looper.Posts

	stopwatch.Pause()
	env.looper.Advance(time.Second)

	assert.Len(t, recorder.times, ticks, "queued tick is stale after pause")
	assert.Equal(t, posts, env.looper.Posts, "stale tick does not repost")
}

func TestStopwatchWatcherCanPauseFromTick(t *testing.T) {
	env, options := newFixture(t)
	stopwatch := NewStopwatch(options)
	stopwatch.SetWatcher(StopwatchFuncs{
		TimeChanged: func(reading time.Duration) {
			if reading >= 90*time.Millisecond {
				stopwatch.Pause()
			}
		},
	})
	stopwatch.Attach(env.looper)
	stopwatch.StartOrResume()

	env.looper.Advance(time.Second)

	assert.True(t, stopwatch.IsPaused())
	assert.Equal(t, 90*time.Millisecond, stopwatch.Reading())
	assert.Zero(t, env.looper.Pending())
}

func TestStopwatchCorruptSnapshot(t *testing.T) {
	stopwatch, env, _ := newAttachedStopwatch(t)

	err := requireInvariantPanic(t, func() {
		stopwatch.Restore(model.NewStopwatchState(true, model.NoMark, model.NoMark))
	})
	assert.Equal(t, "stopwatch.Restore", err.Op)

	future := env.clock.Now() + time.Minute
	err = requireInvariantPanic(t, func() {
		stopwatch.Restore(model.NewStopwatchState(true, future, model.NoMark))
	})
	assert.Equal(t, "stopwatch.Reading", err.Op)
	assert.Contains(t, err.Error(), "negative elapsed time")
}

func TestStopwatchRejectsPauseBeforeBase(t *testing.T) {
	stopwatch, env, recorder := newAttachedStopwatch(t)
	stopwatch.StartOrResume()
	env.looper.Advance(300 * time.Millisecond)
	before := stopwatch.Snapshot()
	statesBefore := len(recorder.states)

	now := env.clock.Now()
	err := requireInvariantPanic(t, func() {
		stopwatch.Restore(model.NewStopwatchState(true, now, now-100*time.Millisecond))
	})

	assert.Equal(t, "stopwatch.Restore", err.Op)
	assert.Equal(t, before, stopwatch.Snapshot())
	assert.Len(t, recorder.states, statesBefore)
}

func TestStopwatchWithoutWatcherOrHandle(t *testing.T) {
	clock := ClockFunc(func() time.Duration { return 5 * time.Second })
	stopwatch := NewStopwatch(Options{Clock: clock})

	stopwatch.StartOrResume()
	stopwatch.Lap()
	stopwatch.Pause()
	stopwatch.Reset()

	assert.Equal(t, StateIdle, stopwatch.State())
	assert.False(t, stopwatch.Scheduler().Live())
}
