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

// StopwatchFace shows a stopwatch as a dial, or as digits when compact.
type StopwatchFace struct {
	machine  *timekeeper.Stopwatch
	config   model.FaceConfig
	listener timekeeper.StopwatchWatcher

	dial        *Dial
	digits      *canvas.Text
	lapLabel    *widget.Label
	startButton *widget.Button
	lapButton   *widget.Button
	resetButton *widget.Button
	content     fyne.CanvasObject
	laps        int
}

// NewStopwatchFace builds a stopwatch face around a new machine.
func NewStopwatchFace(options timekeeper.Options, config model.FaceConfig) *StopwatchFace {
	face := &StopwatchFace{
		machine: timekeeper.NewStopwatch(options),
		config:  config,
	}

	face.dial = NewDial(config.Accent, true)
	face.digits = newDigits(FormatStopwatch(0), config.Accent)
	face.lapLabel = widget.NewLabel("")
	face.lapLabel.Alignment = fyne.TextAlignCenter

	face.startButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), face.Toggle)
	face.startButton.Importance = widget.HighImportance
	face.lapButton = widget.NewButtonWithIcon("Lap", theme.MediaSkipNextIcon(), face.Lap)
	face.resetButton = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), face.Reset)

	var readout fyne.CanvasObject = face.dial
	if config.Compact {
		readout = container.NewCenter(face.digits)
	}
	controls := container.NewGridWithColumns(3, face.startButton, face.lapButton, face.resetButton)
	face.content = container.NewBorder(nil, container.NewVBox(face.lapLabel, controls), nil, nil, readout)

	face.machine.SetWatcher(face.watcher())
	face.showReading(0)
	face.showState(false, false)
	return face
}

// ID implements Face.
func (face *StopwatchFace) ID() string {
	return StopwatchID
}

// CanvasObject returns the root of the widget tree.
func (face *StopwatchFace) CanvasObject() fyne.CanvasObject {
	return face.content
}

// Machine exposes the hosted stopwatch.
func (face *StopwatchFace) Machine() *timekeeper.Stopwatch {
	return face.machine
}

// SetListener registers an observer notified after the face has updated.
func (face *StopwatchFace) SetListener(listener timekeeper.StopwatchWatcher) {
	face.listener = listener
}

// Attach starts driving the face from handle.
func (face *StopwatchFace) Attach(handle timekeeper.Handle) {
	face.machine.SetWatcher(face.watcher())
	face.machine.Attach(handle)
}

// Detach stops ticking and releases the handle.
func (face *StopwatchFace) Detach() {
	face.machine.Detach()
}

// SetSuspend gates ticking while the face is not visible.
func (face *StopwatchFace) SetSuspend(suspend bool) {
	face.machine.SetSuspend(suspend)
}

// Toggle starts, pauses or resumes the stopwatch.
func (face *StopwatchFace) Toggle() {
	if face.machine.State() == timekeeper.StateRunning {
		face.machine.Pause()
		return
	}
	face.machine.StartOrResume()
}

// Lap reports the current reading as a lap.
func (face *StopwatchFace) Lap() {
	face.machine.Lap()
}

// Reset returns the stopwatch to zero.
func (face *StopwatchFace) Reset() {
	face.machine.Reset()
}

// SaveState encodes the machine snapshot.
func (face *StopwatchFace) SaveState() ([]byte, error) {
	data, err := face.machine.Snapshot().MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("save stopwatch face: %w", err)
	}
	return data, nil
}

// RestoreState replaces the machine state with an encoded snapshot.
func (face *StopwatchFace) RestoreState(data []byte) error {
	var state model.StopwatchState
	if err := state.UnmarshalBinary(data); err != nil {
		return fmt.Errorf("restore stopwatch face: %w", err)
	}
	face.machine.Restore(state)
	return nil
}

// Readout returns the text currently displayed.
func (face *StopwatchFace) Readout() string {
	return face.digits.Text
}

// LapText returns the last lap line.
func (face *StopwatchFace) LapText() string {
	return face.lapLabel.Text
}

func (face *StopwatchFace) watcher() timekeeper.StopwatchWatcher {
	return timekeeper.StopwatchFuncs{
		TimeChanged:  face.showReading,
		StateChanged: face.showState,
		Lap:          face.showLap,
	}
}

func (face *StopwatchFace) showReading(reading time.Duration) {
	text := FormatStopwatch(reading)
	face.digits.Text = text
	if face.config.Compact {
		face.digits.Refresh()
	} else {
		seconds, minutes := HandAngles(reading)
		face.dial.SetReading(text, SecondsFraction(reading), seconds, minutes)
	}
	if face.listener != nil {
		face.listener.OnTimeChanged(reading)
	}
}

func (face *StopwatchFace) showState(started, paused bool) {
	running := started && !paused
	if running {
		face.startButton.SetText("Pause")
		face.startButton.SetIcon(theme.MediaPauseIcon())
		face.lapButton.Enable()
	} else {
		face.startButton.SetIcon(theme.MediaPlayIcon())
		if paused {
			face.startButton.SetText("Resume")
		} else {
			face.startButton.SetText("Start")
		}
		face.lapButton.Disable()
	}
	if started {
		face.resetButton.Enable()
	} else {
		face.resetButton.Disable()
		face.laps = 0
		face.lapLabel.SetText("")
	}
	if face.listener != nil {
		face.listener.OnStateChanged(started, paused)
	}
}

func (face *StopwatchFace) showLap(reading time.Duration) {
	face.laps++
	face.lapLabel.SetText(fmt.Sprintf("Lap %d  %s", face.laps, FormatStopwatch(reading)))
	if face.listener != nil {
		face.listener.OnLap(reading)
	}
}
