// Package timekeeper implements the elapsed-time machines behind the stopwatch
// and timer faces.
//
// Machines are single threaded. Every method, and every callback posted
// through the attached Handle, must run on the host's event loop. Watchers are
// notified synchronously from inside the call that caused the change.
package timekeeper

import "go.uber.org/zap"

// Options contains collaborators shared by both machine kinds.
type Options struct {
	Clock  Clock
	Logger *zap.Logger
}

func (options Options) withDefaults() Options {
	if options.Clock == nil {
		options.Clock = NewProcessClock()
	}
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}
	return options
}
