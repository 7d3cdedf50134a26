package ledger

import (
	"fmt"
	"strings"
	"time"
)

// FormatHours renders an hour total the way every report shows it.
func FormatHours(hours float64) string {
	return fmt.Sprintf("%.2f", hours)
}

// Text renders the report as one line per entry followed by the day total.
func (r Report) Text() string {
	var b strings.Builder
	for _, entry := range r.Entries {
		fmt.Fprintf(&b, "- %s hours: %s\n", FormatHours(entry.Hours()), entry.Description)
	}
	fmt.Fprintf(&b, "Total time: %s hours", FormatHours(r.TotalHours))
	return b.String()
}

// FormatEntries renders the all-entries view: each entry prefixed with its
// local date and time, then the overall total.
func FormatEntries(entries []TimeEntry, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}

	var (
		b     strings.Builder
		total float64
	)
	for _, entry := range entries {
		fmt.Fprintf(&b, "%s - %s hours: %s\n",
			entry.Date.In(loc).Format("2006-01-02 15:04"),
			FormatHours(entry.Hours()),
			entry.Description,
		)
		total += entry.Hours()
	}
	fmt.Fprintf(&b, "Total time: %s hours", FormatHours(total))
	return b.String()
}
