package preferences

import (
	"image/color"
	"strings"
	"time"

	"lemonclock/internal/core/model"

	"golang.org/x/image/colornames"
)

// DefaultAccent is the accent colour name used when none is configured.
const DefaultAccent = "gold"

// Timer total bounds accepted from the settings window and file.
const (
	MinTimerTotal = time.Second
	MaxTimerTotal = 100*time.Hour - time.Second
)

// Settings defines editable user preferences.
type Settings struct {
	TimerTotal  time.Duration
	AccentColor string
	Compact     bool

	AlertSound  bool
	AlertVolume float64

	SuspendWhenIdle  bool
	IdleSuspendAfter time.Duration

	OverlayFullscreen bool
}

// DefaultSettings returns default settings for LemonClock.
func DefaultSettings() Settings {
	return Settings{
		TimerTotal:        5 * time.Minute,
		AccentColor:       DefaultAccent,
		AlertSound:        true,
		AlertVolume:       0.6,
		SuspendWhenIdle:   true,
		IdleSuspendAfter:  2 * time.Minute,
		OverlayFullscreen: false,
	}
}

// ResolveAccent looks up a CSS colour name.
func ResolveAccent(name string) (color.NRGBA, bool) {
	rgba, ok := colornames.Map[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: rgba.R, G: rgba.G, B: rgba.B, A: rgba.A}, true
}

// AccentNames lists the accent colours offered in the settings window.
func AccentNames() []string {
	return []string{"gold", "orange", "tomato", "crimson", "orchid", "royalblue", "teal", "seagreen", "slategray"}
}

// FaceConfig converts settings to the face visuals.
func (settings Settings) FaceConfig() model.FaceConfig {
	accent, ok := ResolveAccent(settings.AccentColor)
	if !ok {
		accent, _ = ResolveAccent(DefaultAccent)
	}
	return model.FaceConfig{
		Accent:  accent,
		Compact: settings.Compact,
	}
}

// AlertConfig converts settings to the timeout alert options.
func (settings Settings) AlertConfig() model.AlertConfig {
	return model.AlertConfig{
		Sound:  settings.AlertSound && settings.AlertVolume > 0,
		Volume: settings.AlertVolume,
		Pulses: 3,
	}
}

// IdleConfig converts settings to the idle suspension options.
func (settings Settings) IdleConfig() model.IdleConfig {
	return model.IdleConfig{
		Enabled:       settings.SuspendWhenIdle,
		SuspendAfter:  settings.IdleSuspendAfter,
		CheckInterval: 5 * time.Second,
	}
}
