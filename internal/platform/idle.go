package platform

import (
	"errors"
	"time"
)

// ErrIdleUnsupported indicates idle detection is not available on this system.
var ErrIdleUnsupported = errors.New("idle detection unsupported")

// IdleProvider returns the duration since last user input.
type IdleProvider interface {
	IdleDuration() (time.Duration, error)
}

// IdleFunc adapts a function to IdleProvider.
type IdleFunc func() (time.Duration, error)

// IdleDuration calls fn.
func (fn IdleFunc) IdleDuration() (time.Duration, error) {
	return fn()
}

// NewIdleProvider returns a platform-specific idle provider.
func NewIdleProvider() IdleProvider {
	return newIdleProvider()
}
