package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/faizmokh/jam/internal/tracker"
)

func newAddCommand(ctx context.Context, app *App) *cobra.Command {
	var (
		hoursFlag       string
		descriptionFlag string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record hours worked without running the timer.",
		Long: "add records a manual entry dated now. Values missing from flags are " +
			"prompted for when running in a terminal.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &flagPrompter{values: map[tracker.Question]string{}}
			if cmd.Flags().Changed("hours") {
				p.values[tracker.HoursQuestion] = hoursFlag
			}
			if cmd.Flags().Changed("description") {
				p.values[tracker.DescriptionQuestion] = descriptionFlag
			}
			if app.IsInteractive() {
				p.next = app.Prompter
			}

			entry, err := app.Tracker.AddManualEntry(ctx, p)
			if errors.Is(err, tracker.ErrUserCancelled) {
				return nil
			}
			return printRecorded(cmd, entry, err)
		},
	}

	cmd.Flags().StringVar(&hoursFlag, "hours", "", "Hours worked, e.g. 1.5")
	cmd.Flags().StringVarP(&descriptionFlag, "description", "d", "", "What the work was (default from config)")

	return cmd
}

// flagPrompter answers from flag values and defers the rest to next. Without
// next, a missing description falls back to the default and missing hours is
// an error.
type flagPrompter struct {
	values map[tracker.Question]string
	next   tracker.Prompter
}

func (p *flagPrompter) Prompt(ctx context.Context, q tracker.Question) (string, bool, error) {
	if v, ok := p.values[q]; ok {
		return v, true, nil
	}
	if p.next != nil {
		return p.next.Prompt(ctx, q)
	}
	if q == tracker.HoursQuestion {
		return "", false, fmt.Errorf("--hours is required when not running in a terminal")
	}
	return "", true, nil
}
