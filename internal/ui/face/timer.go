package face

import (
	"fmt"
	"time"

	"lemonclock/internal/core/model"
	"lemonclock/internal/core/timekeeper"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// TimerFace shows a countdown with a sweep of the remaining share.
type TimerFace struct {
	machine  *timekeeper.Timer
	config   model.FaceConfig
	listener timekeeper.TimerWatcher

	// OnError receives failures from user actions, such as starting an
	// unconfigured timer.
	OnError func(error)

	dial        *Dial
	digits      *canvas.Text
	totalLabel  *widget.Label
	startButton *widget.Button
	resetButton *widget.Button
	content     fyne.CanvasObject
}

// NewTimerFace builds a timer face around a new machine.
func NewTimerFace(options timekeeper.Options, config model.FaceConfig) *TimerFace {
	face := &TimerFace{
		machine: timekeeper.NewTimer(options),
		config:  config,
	}

	face.dial = NewDial(config.Accent, false)
	face.digits = newDigits(FormatRest(0), config.Accent)
	face.totalLabel = widget.NewLabel("")
	face.totalLabel.Alignment = fyne.TextAlignCenter

	face.startButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), face.toggleFromButton)
	face.startButton.Importance = widget.HighImportance
	face.resetButton = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), face.Reset)

	var readout fyne.CanvasObject = face.dial
	if config.Compact {
		readout = container.NewCenter(face.digits)
	}
	controls := container.NewGridWithColumns(2, face.startButton, face.resetButton)
	face.content = container.NewBorder(nil, container.NewVBox(face.totalLabel, controls), nil, nil, readout)

	face.machine.SetWatcher(face.watcher())
	face.showTime(0, 0)
	face.showState(false, false)
	return face
}

// ID implements Face.
func (face *TimerFace) ID() string {
	return TimerID
}

// CanvasObject returns the root of the widget tree.
func (face *TimerFace) CanvasObject() fyne.CanvasObject {
	return face.content
}

// Machine exposes the hosted timer.
func (face *TimerFace) Machine() *timekeeper.Timer {
	return face.machine
}

// SetListener registers an observer notified after the face has updated.
func (face *TimerFace) SetListener(listener timekeeper.TimerWatcher) {
	face.listener = listener
}

// Attach starts driving the face from handle.
func (face *TimerFace) Attach(handle timekeeper.Handle) {
	face.machine.SetWatcher(face.watcher())
	face.machine.Attach(handle)
}

// Detach stops ticking and releases the handle.
func (face *TimerFace) Detach() {
	face.machine.Detach()
}

// SetSuspend gates ticking while the face is not visible.
func (face *TimerFace) SetSuspend(suspend bool) {
	face.machine.SetSuspend(suspend)
}

// SetTotal configures the countdown length, resetting the timer.
func (face *TimerFace) SetTotal(total time.Duration) {
	face.machine.SetTotal(total)
}

// Toggle starts, pauses or resumes the countdown.
func (face *TimerFace) Toggle() error {
	if face.machine.State() == timekeeper.StateRunning {
		face.machine.Pause()
		return nil
	}
	if err := face.machine.StartOrResume(); err != nil {
		return fmt.Errorf("start timer: %w", err)
	}
	return nil
}

// Reset stops the countdown and restores the full total.
func (face *TimerFace) Reset() {
	face.machine.Reset()
}

// Restart resets the countdown and starts it again.
func (face *TimerFace) Restart() error {
	face.machine.Reset()
	return face.Toggle()
}

// SaveState encodes the machine snapshot.
func (face *TimerFace) SaveState() ([]byte, error) {
	data, err := face.machine.Snapshot().MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("save timer face: %w", err)
	}
	return data, nil
}

// RestoreState replaces the machine state with an encoded snapshot.
func (face *TimerFace) RestoreState(data []byte) error {
	var state model.TimerState
	if err := state.UnmarshalBinary(data); err != nil {
		return fmt.Errorf("restore timer face: %w", err)
	}
	face.machine.Restore(state)
	return nil
}

// Readout returns the text currently displayed.
func (face *TimerFace) Readout() string {
	return face.digits.Text
}

func (face *TimerFace) toggleFromButton() {
	if err := face.Toggle(); err != nil && face.OnError != nil {
		face.OnError(err)
	}
}

func (face *TimerFace) watcher() timekeeper.TimerWatcher {
	return timekeeper.TimerFuncs{
		TimeChanged:  face.showTime,
		StateChanged: face.showState,
		Timeout:      face.showTimeout,
	}
}

// An idle timer shows its full total rather than zero.
func (face *TimerFace) showTime(rest, total time.Duration) {
	shown := rest
	if !face.machine.IsStarted() {
		shown = total
	}
	text := FormatRest(shown)
	face.digits.Text = text
	if face.config.Compact {
		face.digits.Refresh()
	} else {
		fraction := SweepFraction(shown, total)
		face.dial.SetReading(text, fraction, 0, 0)
	}
	if total > 0 {
		face.totalLabel.SetText("of " + FormatRest(total))
	} else {
		face.totalLabel.SetText("Set a time in Preferences")
	}
	if face.listener != nil {
		face.listener.OnTimeChanged(rest, total)
	}
}

func (face *TimerFace) showState(started, paused bool) {
	if started && !paused {
		face.startButton.SetText("Pause")
		face.startButton.SetIcon(theme.MediaPauseIcon())
	} else {
		face.startButton.SetIcon(theme.MediaPlayIcon())
		if paused {
			face.startButton.SetText("Resume")
		} else {
			face.startButton.SetText("Start")
		}
	}
	if started {
		face.resetButton.Enable()
	} else {
		face.resetButton.Disable()
	}
	if face.listener != nil {
		face.listener.OnStateChanged(started, paused)
	}
}

func (face *TimerFace) showTimeout() {
	if face.listener != nil {
		face.listener.OnTimeout()
	}
}
