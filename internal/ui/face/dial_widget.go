package face

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const dialMinSide = 180

// Dial draws a ring of sixty marks, optional hands and a centred readout.
type Dial struct {
	widget.BaseWidget

	accent    color.Color
	showHands bool
	text      string
	lit       int
	secondDeg float64
	minuteDeg float64
}

// NewDial creates a dial in the given accent colour.
func NewDial(accent color.Color, showHands bool) *Dial {
	dial := &Dial{accent: accent, showHands: showHands}
	dial.ExtendBaseWidget(dial)
	return dial
}

// SetReading updates the readout, the lit share of the ring and the hands.
func (dial *Dial) SetReading(text string, fraction, secondDeg, minuteDeg float64) {
	dial.text = text
	dial.lit = LitMarks(fraction)
	dial.secondDeg = secondDeg
	dial.minuteDeg = minuteDeg
	dial.Refresh()
}

// Text returns the current readout.
func (dial *Dial) Text() string {
	return dial.text
}

// Lit returns the number of highlighted marks.
func (dial *Dial) Lit() int {
	return dial.lit
}

// CreateRenderer implements fyne.Widget.
func (dial *Dial) CreateRenderer() fyne.WidgetRenderer {
	renderer := &dialRenderer{
		dial:   dial,
		rim:    canvas.NewCircle(color.Transparent),
		second: canvas.NewLine(dial.accent),
		minute: canvas.NewLine(theme.Color(theme.ColorNameForeground)),
		text:   canvas.NewText(dial.text, theme.Color(theme.ColorNameForeground)),
	}
	renderer.rim.StrokeWidth = 2
	renderer.second.StrokeWidth = 2
	renderer.minute.StrokeWidth = 4
	renderer.text.TextStyle = fyne.TextStyle{Monospace: true, Bold: true}
	renderer.text.Alignment = fyne.TextAlignCenter

	renderer.objects = append(renderer.objects, renderer.rim)
	for index := range renderer.marks {
		renderer.marks[index] = canvas.NewLine(color.Transparent)
		renderer.objects = append(renderer.objects, renderer.marks[index])
	}
	if dial.showHands {
		renderer.objects = append(renderer.objects, renderer.minute, renderer.second)
	}
	renderer.objects = append(renderer.objects, renderer.text)
	renderer.Refresh()
	return renderer
}

type dialRenderer struct {
	dial    *Dial
	rim     *canvas.Circle
	marks   [markCount]*canvas.Line
	second  *canvas.Line
	minute  *canvas.Line
	text    *canvas.Text
	objects []fyne.CanvasObject
}

func (renderer *dialRenderer) Layout(size fyne.Size) {
	side := size.Width
	if size.Height < side {
		side = size.Height
	}
	radius := side/2 - theme.Padding()
	if radius < 0 {
		radius = 0
	}
	center := fyne.NewPos(size.Width/2, size.Height/2)

	renderer.rim.Move(fyne.NewPos(center.X-radius, center.Y-radius))
	renderer.rim.Resize(fyne.NewSize(radius*2, radius*2))

	for index, mark := range renderer.marks {
		inner := radius * 0.9
		if index%5 == 0 {
			inner = radius * 0.8
		}
		degrees := float64(index) * 360 / markCount
		mark.Position1 = pointOnDial(center, inner, degrees)
		mark.Position2 = pointOnDial(center, radius*0.97, degrees)
	}

	renderer.second.Position1 = center
	renderer.second.Position2 = pointOnDial(center, radius*0.85, renderer.dial.secondDeg)
	renderer.minute.Position1 = center
	renderer.minute.Position2 = pointOnDial(center, radius*0.6, renderer.dial.minuteDeg)

	renderer.text.TextSize = radius / 4
	if renderer.text.TextSize < theme.TextSize() {
		renderer.text.TextSize = theme.TextSize()
	}
	textSize := renderer.text.MinSize()
	renderer.text.Move(fyne.NewPos(center.X-textSize.Width/2, center.Y+radius/3-textSize.Height/2))
	renderer.text.Resize(textSize)
}

func (renderer *dialRenderer) MinSize() fyne.Size {
	return fyne.NewSize(dialMinSide, dialMinSide)
}

func (renderer *dialRenderer) Refresh() {
	foreground := theme.Color(theme.ColorNameForeground)
	faint := theme.Color(theme.ColorNameDisabled)

	renderer.rim.StrokeColor = faint
	for index, mark := range renderer.marks {
		mark.StrokeWidth = 1
		mark.StrokeColor = faint
		if index < renderer.dial.lit {
			mark.StrokeWidth = 3
			mark.StrokeColor = renderer.dial.accent
		}
	}
	renderer.second.StrokeColor = renderer.dial.accent
	renderer.minute.StrokeColor = foreground
	renderer.text.Color = foreground
	renderer.text.Text = renderer.dial.text

	renderer.Layout(renderer.dial.Size())
	for _, object := range renderer.objects {
		canvas.Refresh(object)
	}
}

func (renderer *dialRenderer) Objects() []fyne.CanvasObject {
	return renderer.objects
}

func (renderer *dialRenderer) Destroy() {}
