package overlay

import (
	"fmt"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Config defines overlay visuals.
type Config struct {
	Opacity    uint8
	Fullscreen bool
	Accent     color.NRGBA
}

// Window manages the "time's up" overlay shown when a countdown ends.
type Window struct {
	app           fyne.App
	window        fyne.Window
	config        Config
	background    *canvas.Rectangle
	titleLabel    *canvas.Text
	subtitleLabel *canvas.Text
	detailLabel   *canvas.Text
	dismissButton *widget.Button
	restartButton *widget.Button
	onDismiss     func()
	onRestart     func()
	visible       bool
	pulsing       bool
}

const (
	overlayWidthFraction  = float32(0.22)
	overlayHeightFraction = float32(0.2)
	defaultScreenWidth    = float32(1920)
	defaultScreenHeight   = float32(1080)
)

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates a hidden overlay window.
func New(app fyne.App, config Config) *Window {
	window := app.NewWindow("LemonClock")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	background := canvas.NewRectangle(color.NRGBA{A: config.Opacity})

	titleLabel := canvas.NewText("LemonClock", config.Accent)
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.TextSize = 21

	subtitleLabel := canvas.NewText("Time's up", white)
	subtitleLabel.TextStyle = fyne.TextStyle{Bold: true}
	subtitleLabel.TextSize = 28

	detailLabel := canvas.NewText("", white)
	detailLabel.TextSize = 15

	overlay := &Window{
		app:           app,
		window:        window,
		config:        config,
		background:    background,
		titleLabel:    titleLabel,
		subtitleLabel: subtitleLabel,
		detailLabel:   detailLabel,
	}

	overlay.dismissButton = widget.NewButton("Dismiss", func() {
		overlay.Hide()
		if overlay.onDismiss != nil {
			overlay.onDismiss()
		}
	})
	overlay.restartButton = widget.NewButton("Restart", func() {
		overlay.Hide()
		if overlay.onRestart != nil {
			overlay.onRestart()
		}
	})
	overlay.restartButton.Importance = widget.HighImportance

	buttons := container.NewHBox(overlay.restartButton, overlay.dismissButton)
	content := container.New(&messageLayout{}, titleLabel, subtitleLabel, detailLabel, buttons)
	window.SetContent(container.NewStack(background, content))
	window.SetCloseIntercept(overlay.dismissButton.OnTapped)

	overlay.applyWindowMode()
	return overlay
}

// SetOnDismiss sets the handler run after the user dismisses the overlay.
func (overlay *Window) SetOnDismiss(handler func()) {
	overlay.onDismiss = handler
}

// SetOnRestart sets the handler run when the user asks for another round.
func (overlay *Window) SetOnRestart(handler func()) {
	overlay.onRestart = handler
}

// Show displays the overlay for a countdown of total.
func (overlay *Window) Show(total time.Duration) {
	overlay.detailLabel.Text = describeTotal(total)
	overlay.detailLabel.Refresh()
	overlay.SetPulse(false)
	overlay.applyWindowMode()
	overlay.window.Show()
	overlay.window.RequestFocus()
	overlay.applyNativeOpacity(overlay.config.Opacity)
	overlay.visible = true
}

// Hide closes the overlay.
func (overlay *Window) Hide() {
	if overlay.config.Fullscreen {
		overlay.window.SetFullScreen(false)
	}
	overlay.window.Hide()
	overlay.visible = false
}

// Visible reports whether the overlay is showing.
func (overlay *Window) Visible() bool {
	return overlay.visible
}

// SetPulse flashes the background in the accent colour.
func (overlay *Window) SetPulse(on bool) {
	overlay.pulsing = on
	if on {
		accent := overlay.config.Accent
		accent.A = overlay.config.Opacity
		overlay.background.FillColor = accent
	} else {
		overlay.background.FillColor = color.NRGBA{A: overlay.config.Opacity}
	}
	canvas.Refresh(overlay.background)
}

// Pulsing reports whether the background currently shows the accent.
func (overlay *Window) Pulsing() bool {
	return overlay.pulsing
}

// Detail returns the line describing the finished countdown.
func (overlay *Window) Detail() string {
	return overlay.detailLabel.Text
}

// UpdateConfig updates overlay visuals.
func (overlay *Window) UpdateConfig(config Config) {
	overlay.config = config
	overlay.titleLabel.Color = config.Accent
	overlay.titleLabel.Refresh()
	overlay.SetPulse(overlay.pulsing)
	if overlay.visible {
		overlay.applyWindowMode()
	}
}

func (overlay *Window) applyWindowMode() {
	if overlay.config.Fullscreen {
		overlay.window.SetFullScreen(true)
		return
	}
	overlay.window.SetFullScreen(false)
	overlay.resizeToScreenFraction()
}

func (overlay *Window) resizeToScreenFraction() {
	screenSize := fyne.NewSize(defaultScreenWidth, defaultScreenHeight)
	canvasSize := overlay.window.Canvas().Size()
	// Canvas size can be reused as a proxy for monitor size when it is clearly screen-like.
	if canvasSize.Width >= 1024 && canvasSize.Height >= 720 {
		screenSize = canvasSize
	}

	width := screenSize.Width * overlayWidthFraction
	height := screenSize.Height * overlayHeightFraction
	minSize := overlay.window.Content().MinSize()
	if width < minSize.Width {
		width = minSize.Width
	}
	if height < minSize.Height {
		height = minSize.Height
	}

	overlay.window.Resize(fyne.NewSize(width, height))
	overlay.window.CenterOnScreen()
}

func describeTotal(total time.Duration) string {
	if total <= 0 {
		return "The countdown has finished."
	}
	seconds := int(total.Round(time.Second).Seconds())
	hours := seconds / 3600
	minutes := seconds / 60 % 60
	seconds %= 60
	if hours > 0 {
		return fmt.Sprintf("Your %d:%02d:%02d countdown has finished.", hours, minutes, seconds)
	}
	return fmt.Sprintf("Your %02d:%02d countdown has finished.", minutes, seconds)
}

// messageLayout stacks the title, subtitle and detail from the top and puts
// the buttons in the bottom right corner.
type messageLayout struct{}

func (layout *messageLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 4 {
		return
	}
	title := objects[0]
	subtitle := objects[1]
	detail := objects[2]
	buttons := objects[3]

	pad := size.Height * 0.08
	availableWidth := size.Width - pad*2
	if availableWidth < 0 {
		availableWidth = 0
	}

	titleSize := title.MinSize()
	title.Move(fyne.NewPos(pad, pad))
	title.Resize(fyne.NewSize(availableWidth, titleSize.Height))

	subtitleSize := subtitle.MinSize()
	subtitleY := pad + titleSize.Height + 6
	subtitle.Move(fyne.NewPos(pad, subtitleY))
	subtitle.Resize(fyne.NewSize(availableWidth, subtitleSize.Height))

	detailSize := detail.MinSize()
	detailY := subtitleY + subtitleSize.Height + 8
	detail.Move(fyne.NewPos(pad, detailY))
	detail.Resize(fyne.NewSize(availableWidth, detailSize.Height))

	buttonsSize := buttons.MinSize()
	buttonsX := size.Width - pad - buttonsSize.Width
	if buttonsX < 0 {
		buttonsX = 0
	}
	buttonsY := size.Height - pad - buttonsSize.Height
	if buttonsY < 0 {
		buttonsY = 0
	}
	buttons.Move(fyne.NewPos(buttonsX, buttonsY))
	buttons.Resize(buttonsSize)
}

func (layout *messageLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 4 {
		return fyne.NewSize(0, 0)
	}
	width := float32(0)
	height := float32(40)
	for _, object := range objects {
		size := object.MinSize()
		if size.Width > width {
			width = size.Width
		}
		height += size.Height
	}
	return fyne.NewSize(width+20, height)
}
