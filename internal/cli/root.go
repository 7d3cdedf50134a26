package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/faizmokh/jam/internal/ledger"
	"github.com/faizmokh/jam/internal/ui"
	"github.com/faizmokh/jam/internal/version"
)

// NewRootCommand creates the top-level Cobra command to host subcommands and TUI launcher.
func NewRootCommand(ctx context.Context, app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "jam",
		Short:   "Track work sessions and review daily hours from your terminal.",
		Version: version.Info(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.IsInteractive() {
				// Without a terminal there is nothing to drive the timer; show today instead.
				report, err := app.Tracker.DailyReport(ctx, midnight(app.Clock.Now().In(app.Tracker.Location())))
				if err != nil {
					return err
				}
				printReport(cmd, report)
				return nil
			}
			return runTUI(ctx, app)
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				app.Logger.DebugContext(ctx, "command", "op", cmd.CommandPath())
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		newStartCommand(ctx, app),
		newAddCommand(ctx, app),
		newReportCommand(ctx, app),
		newEntriesCommand(ctx, app),
		newVersionCommand(),
	)

	return cmd
}

func newStartCommand(ctx context.Context, app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Open the timer with a session already running.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.IsInteractive() {
				return fmt.Errorf("start needs a terminal to show the running timer")
			}
			return runTUI(ctx, app, ui.WithStartOnInit())
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "jam %s\n", version.Info())
		},
	}
}

// runTUI runs the timer UI. Quitting with a session still running records it.
func runTUI(ctx context.Context, app *App, opts ...ui.Option) error {
	opts = append([]ui.Option{ui.WithClock(app.Clock)}, opts...)
	m := ui.NewModel(ctx, app.Tracker, app.Feed, opts...)
	runErr := app.RunTUI(ctx, m)

	// Record the session even when the program failed.
	if err := app.Tracker.Close(context.WithoutCancel(ctx)); err != nil {
		if !errors.Is(err, ledger.ErrStorageUnavailable) {
			return errors.Join(runErr, err)
		}
		pterm.Warning.Printfln("Last session was not saved: %v", err)
	}
	if runErr != nil {
		return fmt.Errorf("run TUI: %w", runErr)
	}
	return nil
}

// ExecuteCommand wires the application and executes the Cobra root command.
func ExecuteCommand(ctx context.Context) (err error) {
	app, closeApp, err := Bootstrap(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := closeApp(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return NewRootCommand(ctx, app).ExecuteContext(ctx)
}

// Main is a helper used by cmd/jam/main.go to keep wiring contained in one package.
func Main(ctx context.Context) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	err := ExecuteCommand(ctx)
	stop()
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
