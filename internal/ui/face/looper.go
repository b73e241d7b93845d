package face

import (
	"time"

	"fyne.io/fyne/v2"
)

// Looper posts tick callbacks onto the fyne main goroutine. It implements
// timekeeper.Handle.
type Looper struct {
	dispatch func(func())
}

// NewLooper returns a looper dispatching through fyne.Do.
func NewLooper() *Looper {
	return &Looper{dispatch: fyne.Do}
}

// Post runs fn on the main goroutine after delay. Cancelling stops the timer;
// a callback already queued on the main goroutine still runs.
func (looper *Looper) Post(delay time.Duration, fn func()) func() {
	timer := time.AfterFunc(delay, func() {
		looper.dispatch(fn)
	})
	return func() {
		timer.Stop()
	}
}
