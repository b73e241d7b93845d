package timekeepertest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFakeClockAdvance(t *testing.T) {
	clock := NewFakeClock()
	start := clock.Now()

	clock.Advance(100 * time.Millisecond)

	assert.Equal(t, 100*time.Millisecond, clock.Now()-start)
	assert.NotZero(t, start, "fake readings never start at the zero mark")
}

func TestFakeLooperRunsInDueOrder(t *testing.T) {
	clock := NewFakeClock()
	looper := NewFakeLooper(clock)
	var order []string
	var seenAt []time.Duration

	looper.Post(50*time.Millisecond, func() {
		order = append(order, "late")
		seenAt = append(seenAt, clock.Now())
	})
	looper.Post(10*time.Millisecond, func() {
		order = append(order, "early")
		seenAt = append(seenAt, clock.Now())
	})

	start := clock.Now()
	fired := looper.Advance(100 * time.Millisecond)

	assert.Equal(t, 2, fired)
	assert.Equal(t, []string{"early", "late"}, order)
	assert.Equal(t, []time.Duration{start + 10*time.Millisecond, start + 50*time.Millisecond}, seenAt)
	assert.Equal(t, start+100*time.Millisecond, clock.Now())
}

func TestFakeLooperRepostsDuringAdvance(t *testing.T) {
	clock := NewFakeClock()
	looper := NewFakeLooper(clock)
	ticks := 0
	var tick func()
	tick = func() {
		ticks++
		looper.Post(30*time.Millisecond, tick)
	}
	looper.Post(0, tick)

	looper.Advance(90 * time.Millisecond)

	assert.Equal(t, 4, ticks, "ticks at 0, 30, 60 and 90ms")
	assert.Equal(t, 1, looper.Pending())
}

func TestFakeLooperCancel(t *testing.T) {
	clock := NewFakeClock()
	looper := NewFakeLooper(clock)
	ran := false
	cancel := looper.Post(0, func() { ran = true })

	cancel()
	looper.RunDue()
	assert.False(t, ran)
	assert.Zero(t, looper.Pending())

	looper.IgnoreCancel = true
	cancel = looper.Post(0, func() { ran = true })
	cancel()
	looper.RunDue()
	assert.True(t, ran, "ignored cancel still dispatches the callback")
}
