package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/faizmokh/jam/internal/ledger"
)

// ErrInvalidDate is returned for --date values that name no calendar day.
var ErrInvalidDate = errors.New("invalid date")

const dateLayout = "2006-01-02"

// dayValue is a pflag.Value resolving YYYY-MM-DD, today, yesterday or a
// natural-language phrase to midnight of that day in loc.
type dayValue struct {
	raw string
	day time.Time
	now func() time.Time
	loc *time.Location
}

var _ pflag.Value = (*dayValue)(nil)

func newDayValue(now func() time.Time, loc *time.Location) *dayValue {
	return &dayValue{now: now, loc: loc}
}

func (v *dayValue) String() string {
	return v.raw
}

func (v *dayValue) Set(s string) error {
	day, err := resolveDay(s, v.now(), v.loc)
	if err != nil {
		return err
	}
	v.raw = s
	v.day = day
	return nil
}

func (v *dayValue) Type() string {
	return "date"
}

// Day is the parsed value, or today when the flag was not given.
func (v *dayValue) Day() time.Time {
	if v.raw == "" {
		return midnight(v.now().In(v.loc))
	}
	return v.day
}

func resolveDay(input string, now time.Time, loc *time.Location) (time.Time, error) {
	now = now.In(loc)
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "today":
		return midnight(now), nil
	case "yesterday":
		return midnight(now).AddDate(0, 0, -1), nil
	}

	if parsed, err := time.ParseInLocation(dateLayout, strings.TrimSpace(input), loc); err == nil {
		return parsed, nil
	}

	cfg := &dateparser.Configuration{
		CurrentTime:     now,
		DefaultTimezone: loc,
	}
	parsed, err := dateparser.Parse(cfg, input)
	if err != nil || parsed.Time.IsZero() {
		return time.Time{}, fmt.Errorf("%w %q (expected YYYY-MM-DD, today, yesterday or a phrase like \"2 days ago\")", ErrInvalidDate, input)
	}
	return midnight(parsed.Time.In(loc)), nil
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func printReport(cmd *cobra.Command, report ledger.Report) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, report.Day.Format(dateLayout))
	fmt.Fprintln(out, report.Text())
}

func printEntriesTable(out io.Writer, entries []ledger.TimeEntry, loc *time.Location) error {
	data := pterm.TableData{{"#", "Date", "Hours", "Description"}}
	var total float64
	for i, entry := range entries {
		data = append(data, []string{
			fmt.Sprintf("%d", i+1),
			entry.Date.In(loc).Format("2006-01-02 15:04"),
			ledger.FormatHours(entry.Hours()),
			entry.Description,
		})
		total += entry.Hours()
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(out).Render(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	fmt.Fprintf(out, "Total time: %s hours\n", ledger.FormatHours(total))
	return nil
}

func printRecorded(cmd *cobra.Command, entry ledger.TimeEntry, err error) error {
	out := cmd.OutOrStdout()
	if err != nil {
		if !errors.Is(err, ledger.ErrStorageUnavailable) {
			return err
		}
		pterm.Warning.WithWriter(out).Printfln("Entry kept for this run only: %v", err)
	}
	pterm.Success.WithWriter(out).Printfln("Recorded %s hours: %s", ledger.FormatHours(entry.Hours()), entry.Description)
	return nil
}
