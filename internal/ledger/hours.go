package ledger

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// maxHours keeps the converted duration inside time.Duration.
var maxHours = float64(math.MaxInt64/int64(time.Millisecond)) / msPerHour

// ParseHours converts user input such as "1.5" into a duration rounded to the
// millisecond. Anything that is not a finite, non-negative number yields
// ErrInvalidNumericInput.
func ParseHours(input string) (time.Duration, error) {
	hours, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil || math.IsNaN(hours) || math.IsInf(hours, 0) || hours < 0 || hours > maxHours {
		return 0, ErrInvalidNumericInput
	}
	ms := math.Round(hours * msPerHour)
	return time.Duration(ms) * time.Millisecond, nil
}
