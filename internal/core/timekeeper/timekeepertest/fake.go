// Package timekeepertest provides a controllable clock and event loop for
// deterministic tests of the timekeeper machines.
package timekeepertest

import (
	"sort"
	"sync"
	"time"
)

// FakeClock provides controllable monotonic readings.
// All methods are safe for concurrent use.
type FakeClock struct {
	mu  sync.Mutex
	now time.Duration
}

// NewFakeClock returns a FakeClock reading one hour, as if the host booted an
// hour ago.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Hour}
}

// Now returns the current fake reading.
func (c *FakeClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += d
}

// Set sets the clock to an exact reading.
func (c *FakeClock) Set(now time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

type pendingCall struct {
	due       time.Duration
	seq       uint64
	fn        func()
	cancelled bool
}

// FakeLooper is a single-threaded event loop driven by a FakeClock. It
// implements timekeeper.Handle. Callbacks run only from Advance or RunDue.
type FakeLooper struct {
	clock   *FakeClock
	pending []*pendingCall
	seq     uint64

	// IgnoreCancel makes cancel functions no-ops, modelling a callback that
	// had already been handed to the host loop when it was cancelled.
	IgnoreCancel bool

	// Posts counts every Post call.
	Posts int
}

// NewFakeLooper returns a looper scheduling against clock.
func NewFakeLooper(clock *FakeClock) *FakeLooper {
	return &FakeLooper{clock: clock}
}

// Post queues fn to run once the clock reaches now+delay.
func (l *FakeLooper) Post(delay time.Duration, fn func()) func() {
	l.seq++
	l.Posts++
	call := &pendingCall{due: l.clock.Now() + delay, seq: l.seq, fn: fn}
	l.pending = append(l.pending, call)
	return func() {
		if !l.IgnoreCancel {
			call.cancelled = true
		}
	}
}

// Pending returns the number of queued, uncancelled callbacks.
func (l *FakeLooper) Pending() int {
	count := 0
	for _, call := range l.pending {
		if !call.cancelled {
			count++
		}
	}
	return count
}

// RunDue runs every callback due at the current reading, including ones
// those callbacks post with no delay. It returns the number of callbacks run.
func (l *FakeLooper) RunDue() int {
	return l.runUntil(l.clock.Now())
}

// Advance moves the clock forward by d, running each callback at its due
// reading in posting order. It returns the number of callbacks run.
func (l *FakeLooper) Advance(d time.Duration) int {
	target := l.clock.Now() + d
	fired := l.runUntil(target)
	l.clock.Set(target)
	return fired
}

func (l *FakeLooper) runUntil(target time.Duration) int {
	fired := 0
	for {
		call := l.next(target)
		if call == nil {
			return fired
		}
		if call.due > l.clock.Now() {
			l.clock.Set(call.due)
		}
		call.fn()
		fired++
	}
}

func (l *FakeLooper) next(target time.Duration) *pendingCall {
	live := l.pending[:0]
	for _, call := range l.pending {
		if !call.cancelled {
			live = append(live, call)
		}
	}
	l.pending = live
	if len(l.pending) == 0 {
		return nil
	}
	sort.SliceStable(l.pending, func(i, j int) bool {
		if l.pending[i].due != l.pending[j].due {
			return l.pending[i].due < l.pending[j].due
		}
		return l.pending[i].seq < l.pending[j].seq
	})
	call := l.pending[0]
	if call.due > target {
		return nil
	}
	l.pending = l.pending[1:]
	return call
}
