package model

import (
	"image/color"
	"time"
)

// FaceConfig defines the visuals shared by the stopwatch and timer faces.
type FaceConfig struct {
	Accent  color.NRGBA
	Compact bool
}

// AlertConfig defines how a timer timeout is announced.
type AlertConfig struct {
	Sound  bool
	Volume float64
	Pulses int
}

// IdleConfig controls suspending face updates while the user is away.
type IdleConfig struct {
	Enabled       bool
	SuspendAfter  time.Duration
	CheckInterval time.Duration
}
