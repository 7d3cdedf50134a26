package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func newReportCommand(ctx context.Context, app *App) *cobra.Command {
	date := newDayValue(app.Clock.Now, app.Tracker.Location())

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the hours recorded on a day.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := app.Tracker.DailyReport(ctx, date.Day())
			if err != nil {
				return err
			}
			printReport(cmd, report)
			return nil
		},
	}

	cmd.Flags().Var(date, "date", "Day as YYYY-MM-DD, today, yesterday or e.g. \"last monday\" (default: today)")

	return cmd
}
