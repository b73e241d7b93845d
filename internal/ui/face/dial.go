package face

import (
	"fmt"
	"math"
	"time"

	"fyne.io/fyne/v2"
)

const markCount = 60

// HandAngles returns the second and minute hand angles of a reading, in
// degrees clockwise from twelve o'clock.
func HandAngles(reading time.Duration) (seconds, minutes float64) {
	if reading < 0 {
		reading = 0
	}
	seconds = float64(reading%time.Minute) / float64(time.Minute) * 360
	minutes = float64(reading%time.Hour) / float64(time.Hour) * 360
	return seconds, minutes
}

// SweepFraction returns the share of the countdown still remaining, in [0, 1].
func SweepFraction(rest, total time.Duration) float64 {
	if total <= 0 || rest <= 0 {
		return 0
	}
	if rest >= total {
		return 1
	}
	return float64(rest) / float64(total)
}

// SecondsFraction returns how far the reading is through its current minute.
func SecondsFraction(reading time.Duration) float64 {
	if reading <= 0 {
		return 0
	}
	return float64(reading%time.Minute) / float64(time.Minute)
}

// LitMarks converts a fraction into the number of highlighted dial marks.
func LitMarks(fraction float64) int {
	lit := int(math.Round(fraction * markCount))
	if lit < 0 {
		return 0
	}
	if lit > markCount {
		return markCount
	}
	return lit
}

// FormatStopwatch renders a reading as mm:ss.cc, or hh:mm:ss.cc from one hour.
func FormatStopwatch(reading time.Duration) string {
	if reading < 0 {
		reading = 0
	}
	centis := int64(reading / (10 * time.Millisecond))
	hours := centis / 360000
	minutes := centis / 6000 % 60
	seconds := centis / 100 % 60
	centis %= 100
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d.%02d", hours, minutes, seconds, centis)
	}
	return fmt.Sprintf("%02d:%02d.%02d", minutes, seconds, centis)
}

// FormatRest renders remaining time rounded up to whole seconds, so a
// countdown shows 00:00 only once it is over.
func FormatRest(rest time.Duration) string {
	if rest < 0 {
		rest = 0
	}
	total := int64((rest + time.Second - 1) / time.Second)
	hours := total / 3600
	minutes := total / 60 % 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// pointOnDial returns the point at radius from center along angle degrees
// clockwise from twelve o'clock.
func pointOnDial(center fyne.Position, radius float32, degrees float64) fyne.Position {
	radians := degrees * math.Pi / 180
	return fyne.NewPos(
		center.X+radius*float32(math.Sin(radians)),
		center.Y-radius*float32(math.Cos(radians)),
	)
}
