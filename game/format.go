package game

import (
	"fmt"
	"time"
)

// FormatClock renders d as "MMSS" for the 4-digit display, truncating to
// whole seconds. Minutes clamp at 99.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	minutes := secs / 60
	seconds := secs % 60
	if minutes > 99 {
		minutes = 99
	}
	return fmt.Sprintf("%02d%02d", minutes, seconds)
}

// FormatNumber right-aligns n on the 4-digit display.
func FormatNumber(n int) string {
	return fmt.Sprintf("%4d", n)
}
