package preferences

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window     fyne.Window
	settings   Settings
	onSave     func(Settings)
	timerTotal *widget.Entry
	accent     *widget.Select
	compact    *widget.Check
	sound      *widget.Check
	volume     *widget.Slider
	idleCheck  *widget.Check
	idleAfter  *widget.Entry
	fullscreen *widget.Check
	errorLabel *widget.Label
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("LemonClock Settings")

	prefs := &Window{
		window:     window,
		onSave:     onSave,
		timerTotal: widget.NewEntry(),
		accent:     widget.NewSelect(AccentNames(), nil),
		compact:    widget.NewCheck("Compact faces (digits only)", nil),
		sound:      widget.NewCheck("Play a chime", nil),
		volume:     widget.NewSlider(0, 1),
		idleCheck:  widget.NewCheck("Pause display updates while I'm away", nil),
		idleAfter:  widget.NewEntry(),
		fullscreen: widget.NewCheck("Fullscreen \"time's up\" overlay", nil),
		errorLabel: widget.NewLabel(""),
	}
	prefs.timerTotal.SetPlaceHolder("mm:ss")
	prefs.volume.Step = 0.05
	prefs.errorLabel.Importance = widget.DangerImportance

	form := container.NewVBox(
		widget.NewLabelWithStyle("Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Countdown length"), prefs.timerTotal),
		widget.NewLabelWithStyle("Appearance", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Accent colour"), prefs.accent),
		prefs.compact,
		prefs.fullscreen,
		widget.NewLabelWithStyle("Alert", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.sound,
		widget.NewLabel("Volume"),
		prefs.volume,
		widget.NewLabelWithStyle("Idle", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.idleCheck,
		container.NewHBox(widget.NewLabel("Away after"), prefs.idleAfter, widget.NewLabel("min")),
		prefs.errorLabel,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	saveButton.Importance = widget.HighImportance
	cancelButton := widget.NewButton("Cancel", func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(420, 460))
	window.SetCloseIntercept(cancelButton.OnTapped)

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.timerTotal.SetText(FormatTotal(settings.TimerTotal))
	prefs.accent.SetSelected(settings.AccentColor)
	prefs.compact.SetChecked(settings.Compact)
	prefs.sound.SetChecked(settings.AlertSound)
	prefs.volume.Value = settings.AlertVolume
	prefs.volume.Refresh()
	prefs.idleCheck.SetChecked(settings.SuspendWhenIdle)
	prefs.idleAfter.SetText(strconv.Itoa(int(settings.IdleSuspendAfter / time.Minute)))
	prefs.fullscreen.SetChecked(settings.OverlayFullscreen)
	prefs.errorLabel.SetText("")
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	total, err := ParseTotal(prefs.timerTotal.Text)
	if err != nil {
		prefs.errorLabel.SetText(err.Error())
		return
	}
	settings.TimerTotal = total

	if _, ok := ResolveAccent(prefs.accent.Selected); ok {
		settings.AccentColor = prefs.accent.Selected
	}
	if minutes, ok := parsePositiveInt(prefs.idleAfter.Text); ok && minutes <= 60 {
		settings.IdleSuspendAfter = time.Duration(minutes) * time.Minute
	}

	settings.Compact = prefs.compact.Checked
	settings.AlertSound = prefs.sound.Checked
	settings.AlertVolume = prefs.volume.Value
	settings.SuspendWhenIdle = prefs.idleCheck.Checked
	settings.OverlayFullscreen = prefs.fullscreen.Checked

	prefs.settings = settings
	prefs.errorLabel.SetText("")
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

// ParseTotal reads a countdown length written as seconds, mm:ss or h:mm:ss.
func ParseTotal(value string) (time.Duration, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("countdown length %q: use mm:ss", value)
	}
	var total time.Duration
	for index, part := range parts {
		number, err := strconv.Atoi(part)
		if err != nil || number < 0 || (index > 0 && number > 59) {
			return 0, fmt.Errorf("countdown length %q: use mm:ss", value)
		}
		total = total*60 + time.Duration(number)*time.Second
	}
	if total < MinTimerTotal || total > MaxTimerTotal {
		return 0, fmt.Errorf("countdown length %q: must be between 1 second and 99:59:59", value)
	}
	return total, nil
}

// FormatTotal writes a countdown length the way ParseTotal reads it.
func FormatTotal(total time.Duration) string {
	seconds := int(total / time.Second)
	if seconds >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", seconds/3600, seconds/60%60, seconds%60)
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
