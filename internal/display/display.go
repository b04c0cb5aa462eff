// Package display holds the pure rules that turn console state into what the
// dashboard shows: quota bars and status labels.
package display

import (
	"math"
	"strconv"
)

// DefaultWarningPercent is the usage above which a limit bar is critical.
const DefaultWarningPercent = 80.0

// Bar is a rendered quota: usage over maximum.
type Bar struct {
	Label    string
	Current  int
	Max      int
	Percent  float64
	Critical bool
}

// LimitBar computes a bar for current usage against max. Percent is clamped
// to [0, 100] and a bar is critical strictly above threshold. A non-positive
// max reads as full when anything is in use and empty otherwise.
func LimitBar(label string, current, max int, threshold float64) Bar {
	b := Bar{Label: label, Current: current, Max: max}

	switch {
	case max <= 0 && current > 0:
		b.Percent = 100
	case max <= 0:
		b.Percent = 0
	default:
		b.Percent = math.Max(math.Min(float64(current)*100/float64(max), 100), 0)
	}

	b.Critical = b.Percent > threshold
	return b
}

// Width renders the percentage for a CSS width, e.g. "66.7%".
func (b Bar) Width() string {
	return strconv.FormatFloat(math.Round(b.Percent*10)/10, 'f', -1, 64) + "%"
}
