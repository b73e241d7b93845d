package timekeeper

import (
	"testing"
	"time"

	"lemonclock/internal/core/timekeeper/timekeepertest"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

type fakeMachine struct {
	active    bool
	ticks     int
	keepGoing bool
}

func newFakeMachineScheduler(t *testing.T) (*Scheduler, *fakeMachine) {
	machine := &fakeMachine{keepGoing: true}
	scheduler := newScheduler(
		func() bool { return machine.active },
		func() bool {
			machine.ticks++
			return machine.keepGoing
		},
		zaptest.NewLogger(t),
	)
	return scheduler, machine
}

func TestSchedulerRunningRequiresAllConditions(t *testing.T) {
	clock := timekeepertest.NewFakeClock()
	looper := timekeepertest.NewFakeLooper(clock)
	scheduler, machine := newFakeMachineScheduler(t)

	machine.active = true
	scheduler.update()
	assert.False(t, scheduler.Live(), "no handle")

	scheduler.Attach(looper)
	assert.True(t, scheduler.Live())

	scheduler.SetSuspend(true)
	assert.False(t, scheduler.Live(), "suspended")

	scheduler.SetSuspend(false)
	machine.active = false
	scheduler.update()
	assert.False(t, scheduler.Live(), "machine inactive")

	machine.active = true
	scheduler.update()
	assert.True(t, scheduler.Live())
	assert.Equal(t, 1, looper.Pending())
}

func TestSchedulerStopsWhenTickDeclines(t *testing.T) {
	clock := timekeepertest.NewFakeClock()
	looper := timekeepertest.NewFakeLooper(clock)
	scheduler, machine := newFakeMachineScheduler(t)
	machine.active = true
	scheduler.Attach(looper)

	looper.Advance(3 * TickPeriod)
	assert.Equal(t, 4, machine.ticks)

	machine.keepGoing = false
	looper.Advance(TickPeriod)
	assert.Equal(t, 5, machine.ticks)
	looper.Advance(time.Second)
	assert.Equal(t, 5, machine.ticks)
	assert.False(t, scheduler.Live(), "a declined tick leaves nothing queued")
	assert.Zero(t, looper.Pending())

	scheduler.SetSuspend(true)
	scheduler.SetSuspend(false)
	looper.RunDue()
	assert.Equal(t, 6, machine.ticks, "the next update arms the loop again")
	assert.False(t, scheduler.Live())
}

func TestSchedulerSingleOutstandingTick(t *testing.T) {
	clock := timekeepertest.NewFakeClock()
	looper := timekeepertest.NewFakeLooper(clock)
	looper.IgnoreCancel = true
	scheduler, machine := newFakeMachineScheduler(t)
	machine.active = true

	scheduler.Attach(looper)
	scheduler.SetSuspend(true)
	scheduler.SetSuspend(false)
	scheduler.SetSuspend(true)
	scheduler.SetSuspend(false)
	assert.Equal(t, 3, looper.Pending(), "cancellation ignored by the loop")

	looper.RunDue()
	assert.Equal(t, 1, machine.ticks, "only the current generation ticks")
	looper.Advance(TickPeriod)
	assert.Equal(t, 2, machine.ticks)
}

func TestSchedulerAttachReplacesHandle(t *testing.T) {
	clock := timekeepertest.NewFakeClock()
	first := timekeepertest.NewFakeLooper(clock)
	second := timekeepertest.NewFakeLooper(clock)
	scheduler, machine := newFakeMachineScheduler(t)
	machine.active = true

	scheduler.Attach(first)
	scheduler.Attach(second)

	assert.Zero(t, first.Pending())
	assert.Equal(t, 1, second.Pending())
	second.RunDue()
	assert.Equal(t, 1, machine.ticks)
}
