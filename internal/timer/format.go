package timer

import (
	"fmt"
	"time"
)

// FormatElapsed renders d as HH:MM:SS. Hours grow past 99 without wrapping.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	seconds := d.Milliseconds() / 1000
	minutes := seconds / 60
	hours := minutes / 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes%60, seconds%60)
}
