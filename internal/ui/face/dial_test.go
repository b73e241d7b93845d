package face

import (
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
)

func TestFormatStopwatch(t *testing.T) {
	cases := map[time.Duration]string{
		0:                                       "00:00.00",
		-time.Second:                            "00:00.00",
		1500 * time.Millisecond:                 "00:01.50",
		2009 * time.Millisecond:                 "00:02.00",
		59*time.Minute + 59990*time.Millisecond: "59:59.99",
		time.Hour:                               "01:00:00.00",
		26*time.Hour + 3*time.Minute + 4*time.Second + 560*time.Millisecond: "26:03:04.56",
	}
	for reading, want := range cases {
		assert.Equal(t, want, FormatStopwatch(reading), "reading %v", reading)
	}
}

func TestFormatRestRoundsUp(t *testing.T) {
	cases := map[time.Duration]string{
		0:                             "00:00",
		-time.Second:                  "00:00",
		time.Millisecond:              "00:01",
		5 * time.Second:               "00:05",
		4200 * time.Millisecond:       "00:05",
		5 * time.Minute:               "05:00",
		time.Hour + 30*time.Second:    "1:00:30",
		99*time.Hour + 59*time.Minute: "99:59:00",
	}
	for rest, want := range cases {
		assert.Equal(t, want, FormatRest(rest), "rest %v", rest)
	}
}

func TestHandAngles(t *testing.T) {
	seconds, minutes := HandAngles(15 * time.Second)
	assert.InDelta(t, 90, seconds, 1e-9)
	assert.InDelta(t, 1.5, minutes, 1e-9)

	seconds, minutes = HandAngles(time.Hour + 30*time.Minute + 45*time.Second)
	assert.InDelta(t, 270, seconds, 1e-9)
	assert.InDelta(t, 184.5, minutes, 1e-9)

	seconds, minutes = HandAngles(-time.Second)
	assert.Zero(t, seconds)
	assert.Zero(t, minutes)
}

func TestSweepFraction(t *testing.T) {
	assert.Equal(t, 0.0, SweepFraction(time.Second, 0))
	assert.Equal(t, 0.0, SweepFraction(0, time.Minute))
	assert.Equal(t, 1.0, SweepFraction(2*time.Minute, time.Minute))
	assert.InDelta(t, 0.25, SweepFraction(15*time.Second, time.Minute), 1e-9)
}

func TestLitMarks(t *testing.T) {
	assert.Equal(t, 0, LitMarks(-1))
	assert.Equal(t, 30, LitMarks(0.5))
	assert.Equal(t, 60, LitMarks(1.2))
	assert.Equal(t, 15, LitMarks(SecondsFraction(75*time.Second)))
}

func TestPointOnDial(t *testing.T) {
	center := fyne.NewPos(100, 100)

	top := pointOnDial(center, 50, 0)
	assert.InDelta(t, 100, top.X, 1e-3)
	assert.InDelta(t, 50, top.Y, 1e-3)

	right := pointOnDial(center, 50, 90)
	assert.InDelta(t, 150, right.X, 1e-3)
	assert.InDelta(t, 100, right.Y, 1e-3)
}
