// Package face hosts the stopwatch and timer machines in fyne widgets.
package face

import (
	"image/color"

	"lemonclock/internal/core/timekeeper"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
)

// Face IDs used when saving state across a rebuild.
const (
	StopwatchID = "stopwatch"
	TimerID     = "timer"
)

// Face is a widget tree hosting one machine.
type Face interface {
	ID() string
	CanvasObject() fyne.CanvasObject
	Attach(handle timekeeper.Handle)
	Detach()
	SetSuspend(suspend bool)
	SaveState() ([]byte, error)
	RestoreState(data []byte) error
}

// newDigits builds the readout shown instead of the dial in compact mode.
func newDigits(text string, accent color.Color) *canvas.Text {
	digits := canvas.NewText(text, accent)
	digits.TextStyle = fyne.TextStyle{Monospace: true, Bold: true}
	digits.TextSize = theme.TextSize() * 2.5
	digits.Alignment = fyne.TextAlignCenter
	return digits
}
