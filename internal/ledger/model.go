package ledger

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

const msPerHour = float64(time.Hour / time.Millisecond)

// DefaultDescription is recorded when the user supplies no description.
const DefaultDescription = "Automatic tracking"

// TimeEntry is one recorded block of work.
type TimeEntry struct {
	// Date is the instant the entry was finalized, kept in UTC.
	Date time.Time `json:"date"`
	// Duration is the length of the work in milliseconds.
	Duration    int64  `json:"duration"`
	Description string `json:"description"`
}

// Hours expresses the duration in fractional hours.
func (e TimeEntry) Hours() float64 {
	return float64(e.Duration) / msPerHour
}

// Elapsed returns the duration as a time.Duration.
func (e TimeEntry) Elapsed() time.Duration {
	return time.Duration(e.Duration) * time.Millisecond
}

// UnmarshalJSON accepts fractional millisecond durations, which older blobs
// contain for manual entries (hours * 3600000 computed in floating point).
func (e *TimeEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Date        time.Time   `json:"date"`
		Duration    json.Number `json:"duration"`
		Description string      `json:"description"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var ms int64
	if raw.Duration != "" {
		f, err := raw.Duration.Float64()
		if err != nil {
			return fmt.Errorf("parse duration %q: %w", raw.Duration, err)
		}
		if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("invalid duration %q", raw.Duration)
		}
		ms = int64(math.Round(f))
	}

	*e = TimeEntry{
		Date:        raw.Date,
		Duration:    ms,
		Description: raw.Description,
	}
	return nil
}

// Report aggregates the entries recorded on one calendar day.
type Report struct {
	Day        time.Time
	Entries    []TimeEntry
	TotalHours float64
}
