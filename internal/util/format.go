package util

import (
	"fmt"
	"math"
)

// FormatClock formats a number of seconds as a clock reading, h:mm:ss above an
// hour and m:ss below. Fractional seconds are truncated; negative values keep
// a leading sign so offset labels read naturally.
func FormatClock(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "-:--"
	}

	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}

	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60

	if h > 0 {
		return fmt.Sprintf("%s%d:%02d:%02d", sign, h, m, s)
	}
	return fmt.Sprintf("%s%d:%02d", sign, m, s)
}

// FormatOffset formats an offset in seconds with an explicit sign and a tenth
// of a second of precision, e.g. "+12.5s".
func FormatOffset(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "?"
	}
	return fmt.Sprintf("%+.1fs", seconds)
}
