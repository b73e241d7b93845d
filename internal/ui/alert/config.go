package alert

import (
	"math/rand"
	"time"

	"lemonclock/internal/core/model"
)

// Range defines a duration range with random sampling.
type Range struct {
	Min time.Duration
	Max time.Duration
}

// Random returns a random duration within the range.
func (value Range) Random(rng *rand.Rand) time.Duration {
	if value.Max <= value.Min {
		return value.Min
	}
	delta := value.Max - value.Min
	return value.Min + time.Duration(rng.Int63n(int64(delta)))
}

// Config contains alert timing and sound options.
type Config struct {
	Pulses   int
	PulseOn  Range
	PulseOff Range
	Sound    bool
	Volume   float64
}

// DefaultConfig returns the alert used when a countdown runs out.
func DefaultConfig() Config {
	return Config{
		Pulses: 3,
		PulseOn: Range{
			Min: 450 * time.Millisecond,
			Max: 450 * time.Millisecond,
		},
		PulseOff: Range{
			Min: 300 * time.Millisecond,
			Max: 350 * time.Millisecond,
		},
		Sound:  true,
		Volume: 0.6,
	}
}

// FromModel applies user alert settings to the defaults.
func FromModel(alert model.AlertConfig) Config {
	config := DefaultConfig()
	if alert.Pulses > 0 {
		config.Pulses = alert.Pulses
	}
	config.Sound = alert.Sound
	config.Volume = alert.Volume
	return config
}
