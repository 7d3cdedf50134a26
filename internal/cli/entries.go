package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/faizmokh/jam/internal/ledger"
)

func newEntriesCommand(ctx context.Context, app *App) *cobra.Command {
	var (
		outputJSON bool
		asTable    bool
		search     string
		daysFlag   int
	)

	cmd := &cobra.Command{
		Use:   "entries",
		Short: "List every recorded entry.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Tracker.AllEntries(ctx)
			if err != nil {
				return err
			}

			loc := app.Tracker.Location()
			if daysFlag > 0 {
				since := midnight(app.Clock.Now().In(loc)).AddDate(0, 0, -(daysFlag - 1))
				entries = filterEntries(entries, func(e ledger.TimeEntry) bool {
					return !e.Date.In(loc).Before(since)
				})
			}
			if term := strings.TrimSpace(search); term != "" {
				needle := strings.ToLower(term)
				entries = filterEntries(entries, func(e ledger.TimeEntry) bool {
					return strings.Contains(strings.ToLower(e.Description), needle)
				})
			}

			switch {
			case outputJSON:
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			case asTable:
				return printEntriesTable(cmd.OutOrStdout(), entries, loc)
			default:
				fmt.Fprintln(cmd.OutOrStdout(), ledger.FormatEntries(entries, loc))
				return nil
			}
		},
	}

	cmd.Flags().BoolVar(&outputJSON, "json", false, "Emit entries as a JSON array")
	cmd.Flags().BoolVar(&asTable, "table", false, "Render entries as a table")
	cmd.Flags().StringVar(&search, "search", "", "Only entries whose description contains this text")
	cmd.Flags().IntVar(&daysFlag, "days", 0, "Only entries from the last N days, today included")
	cmd.MarkFlagsMutuallyExclusive("json", "table")

	return cmd
}

func filterEntries(entries []ledger.TimeEntry, keep func(ledger.TimeEntry) bool) []ledger.TimeEntry {
	out := make([]ledger.TimeEntry, 0, len(entries))
	for _, e := range entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
