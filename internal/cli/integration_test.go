package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/faizmokh/jam/internal/clock"
	"github.com/faizmokh/jam/internal/ledger"
	"github.com/faizmokh/jam/internal/logging"
	"github.com/faizmokh/jam/internal/store"
	"github.com/faizmokh/jam/internal/timer"
	"github.com/faizmokh/jam/internal/tracker"
	"github.com/faizmokh/jam/internal/ui"
)

var now = time.Date(2025, time.November, 21, 17, 30, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	os.Exit(m.Run())
}

func TestCLIWorkflowEndToEnd(t *testing.T) {
	ctx := context.Background()
	app, _ := newTestApp(t, store.NewMemory())

	// 1. Record a manual entry from flags.
	addOut := executeCommand(t, NewRootCommand(ctx, app),
		"add", "--hours", "1.5", "--description", "Working on feature X",
	)
	assertContains(t, addOut, "Recorded 1.50 hours: Working on feature X")

	// 2. A second entry without a description gets the default.
	addOut = executeCommand(t, NewRootCommand(ctx, app), "add", "--hours", "0.25")
	assertContains(t, addOut, "Recorded 0.25 hours: Automatic tracking")

	// 3. Today's report lists both with the total.
	reportOut := executeCommand(t, NewRootCommand(ctx, app), "report")
	assertContains(t, reportOut, "2025-11-21")
	assertContains(t, reportOut, "- 1.50 hours: Working on feature X")
	assertContains(t, reportOut, "- 0.25 hours: Automatic tracking")
	assertContains(t, reportOut, "Total time: 1.75 hours")

	// 4. Yesterday is empty.
	reportOut = executeCommand(t, NewRootCommand(ctx, app), "report", "--date", "yesterday")
	assertContains(t, reportOut, "2025-11-20")
	assertContains(t, reportOut, "Total time: 0.00 hours")
	assertNotContains(t, reportOut, "Working on feature X")

	// 5. All entries.
	entriesOut := executeCommand(t, NewRootCommand(ctx, app), "entries")
	assertContains(t, entriesOut, "2025-11-21 17:30 - 1.50 hours: Working on feature X")
	assertContains(t, entriesOut, "Total time: 1.75 hours")

	// 6. Search narrows the list.
	entriesOut = executeCommand(t, NewRootCommand(ctx, app), "entries", "--search", "FEATURE")
	assertContains(t, entriesOut, "Working on feature X")
	assertNotContains(t, entriesOut, "Automatic tracking")
}

func TestAddRejectsNonNumericHours(t *testing.T) {
	ctx := context.Background()
	app, _ := newTestApp(t, store.NewMemory())

	out, err := executeCommandErr(t, NewRootCommand(ctx, app), "add", "--hours", "abc")
	if err == nil {
		t.Fatalf("expected error, got output %q", out)
	}
	if !errors.Is(err, ledger.ErrInvalidNumericInput) {
		t.Fatalf("error = %v, want %v", err, ledger.ErrInvalidNumericInput)
	}
	assertEntryCount(t, app, 0)
}

func TestAddNeedsHoursWithoutTerminal(t *testing.T) {
	ctx := context.Background()
	app, _ := newTestApp(t, store.NewMemory())

	_, err := executeCommandErr(t, NewRootCommand(ctx, app), "add", "--description", "x")
	if err == nil || !strings.Contains(err.Error(), "--hours is required") {
		t.Fatalf("error = %v, want missing hours", err)
	}
	assertEntryCount(t, app, 0)
}

func TestAddPromptsInTerminal(t *testing.T) {
	ctx := context.Background()
	app, _ := newTestApp(t, store.NewMemory())
	app.IsInteractive = func() bool { return true }
	app.Prompter = tracker.Answers("2", "Pairing")

	out := executeCommand(t, NewRootCommand(ctx, app), "add")
	assertContains(t, out, "Recorded 2.00 hours: Pairing")
}

func TestAddCancelledPromptIsSilent(t *testing.T) {
	ctx := context.Background()
	app, _ := newTestApp(t, store.NewMemory())
	app.IsInteractive = func() bool { return true }
	app.Prompter = tracker.Answers()

	out := executeCommand(t, NewRootCommand(ctx, app), "add")
	if strings.TrimSpace(out) != "" {
		t.Fatalf("expected no output, got %q", out)
	}
	assertEntryCount(t, app, 0)
}

func TestAddWarnsWhenStorageFails(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	app, _ := newTestApp(t, mem)
	if err := mem.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	out := executeCommand(t, NewRootCommand(ctx, app), "add", "--hours", "1")
	assertContains(t, out, "Entry kept for this run only")
	assertContains(t, out, "Recorded 1.00 hours")
}

func TestEntriesJSON(t *testing.T) {
	ctx := context.Background()
	app, _ := newTestApp(t, store.NewMemory())
	executeCommand(t, NewRootCommand(ctx, app), "add", "--hours", "1.5", "-d", "Review")

	out := executeCommand(t, NewRootCommand(ctx, app), "entries", "--json")

	var got []map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("Unmarshal(%q): %v", out, err)
	}
	if len(got) != 1 {
		t.Fatalf("entries = %d, want 1", len(got))
	}
	if got[0]["description"] != "Review" || got[0]["duration"] != float64(5_400_000) {
		t.Fatalf("unexpected entry %#v", got[0])
	}
	if got[0]["date"] != "2025-11-21T17:30:00Z" {
		t.Fatalf("date = %v", got[0]["date"])
	}
}

func TestEntriesTable(t *testing.T) {
	ctx := context.Background()
	app, _ := newTestApp(t, store.NewMemory())
	executeCommand(t, NewRootCommand(ctx, app), "add", "--hours", "3", "-d", "Deploy")

	out := executeCommand(t, NewRootCommand(ctx, app), "entries", "--table")
	assertContains(t, out, "Description")
	assertContains(t, out, "Deploy")
	assertContains(t, out, "Total time: 3.00 hours")
}

func TestEntriesDaysFilter(t *testing.T) {
	ctx := context.Background()
	app, fake := newTestApp(t, store.NewMemory())
	executeCommand(t, NewRootCommand(ctx, app), "add", "--hours", "1", "-d", "Old work")
	fake.Advance(72 * time.Hour)
	executeCommand(t, NewRootCommand(ctx, app), "add", "--hours", "1", "-d", "Fresh work")

	out := executeCommand(t, NewRootCommand(ctx, app), "entries", "--days", "2")
	assertContains(t, out, "Fresh work")
	assertNotContains(t, out, "Old work")
}

func TestReportRejectsBadDate(t *testing.T) {
	ctx := context.Background()
	app, _ := newTestApp(t, store.NewMemory())

	_, err := executeCommandErr(t, NewRootCommand(ctx, app), "report", "--date", "not a date at all ###")
	if err == nil {
		t.Fatal("expected error for bad date")
	}
}

func TestRootWithoutTerminalPrintsToday(t *testing.T) {
	ctx := context.Background()
	app, _ := newTestApp(t, store.NewMemory())
	executeCommand(t, NewRootCommand(ctx, app), "add", "--hours", "2", "-d", "Support")

	out := executeCommand(t, NewRootCommand(ctx, app))
	assertContains(t, out, "- 2.00 hours: Support")
}

func TestStartRecordsSessionOnQuit(t *testing.T) {
	ctx := context.Background()
	app, fake := newTestApp(t, store.NewMemory())
	app.IsInteractive = func() bool { return true }

	var ran bool
	app.RunTUI = func(ctx context.Context, m ui.Model) error {
		ran = true
		// Stand in for the program: start, let time pass, quit.
		if _, err := app.Tracker.Start(ctx); err != nil {
			return err
		}
		fake.Advance(45 * time.Minute)
		return nil
	}

	executeCommand(t, NewRootCommand(ctx, app), "start")
	if !ran {
		t.Fatal("TUI was not launched")
	}

	entries, err := app.Tracker.AllEntries(ctx)
	if err != nil {
		t.Fatalf("AllEntries: %v", err)
	}
	if len(entries) != 1 || entries[0].Duration != (45*time.Minute).Milliseconds() {
		t.Fatalf("unexpected entries %#v", entries)
	}
	if entries[0].Description != ledger.DefaultDescription {
		t.Fatalf("description = %q", entries[0].Description)
	}
}

func TestStartRecordsSessionWhenTUIFails(t *testing.T) {
	ctx := context.Background()
	app, fake := newTestApp(t, store.NewMemory())
	app.IsInteractive = func() bool { return true }

	errTerminal := errors.New("terminal went away")
	app.RunTUI = func(ctx context.Context, m ui.Model) error {
		if _, err := app.Tracker.Start(ctx); err != nil {
			return err
		}
		fake.Advance(10 * time.Minute)
		return errTerminal
	}

	_, err := executeCommandErr(t, NewRootCommand(ctx, app), "start")
	if !errors.Is(err, errTerminal) {
		t.Fatalf("err = %v, want %v", err, errTerminal)
	}
	assertEntryCount(t, app, 1)

	// Nothing is left for a second close to record.
	if err := app.Tracker.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
	assertEntryCount(t, app, 1)
}

func TestStartNeedsTerminal(t *testing.T) {
	ctx := context.Background()
	app, _ := newTestApp(t, store.NewMemory())

	if _, err := executeCommandErr(t, NewRootCommand(ctx, app), "start"); err == nil {
		t.Fatal("expected error without a terminal")
	}
}

func TestVersionCommand(t *testing.T) {
	app, _ := newTestApp(t, store.NewMemory())
	out := executeCommand(t, NewRootCommand(context.Background(), app), "version")
	assertContains(t, out, "jam dev")
}

func TestEntriesSurviveRestartWithBolt(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "jam.db")

	first, err := store.OpenBolt(path)
	if err != nil {
		t.Fatalf("OpenBolt: %v", err)
	}
	app, _ := newTestApp(t, first)
	executeCommand(t, NewRootCommand(ctx, app), "add", "--hours", "1.5", "-d", "Persisted")
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second, err := store.OpenBolt(path)
	if err != nil {
		t.Fatalf("OpenBolt again: %v", err)
	}
	t.Cleanup(func() { second.Close() })
	reopened, _ := newTestApp(t, second)

	out := executeCommand(t, NewRootCommand(ctx, reopened), "entries")
	assertContains(t, out, "1.50 hours: Persisted")
}

func newTestApp(t *testing.T, s store.Store) (*App, *clock.Fake) {
	t.Helper()
	fake := clock.NewFake(now)
	l := ledger.New(s, ledger.WithClock(fake), ledger.WithLocation(time.UTC))
	if err := l.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	feed := ui.NewFeed()
	tr := tracker.New(timer.New(fake, timer.WithObserver(feed.Observe)), l)
	return &App{
		Tracker:       tr,
		Feed:          feed,
		Clock:         fake,
		Logger:        logging.Discard(),
		Prompter:      tracker.Answers(),
		IsInteractive: func() bool { return false },
		RunTUI: func(ctx context.Context, m ui.Model) error {
			t.Fatal("unexpected TUI launch")
			return nil
		},
	}, fake
}

func assertEntryCount(t *testing.T, app *App, want int) {
	t.Helper()
	entries, err := app.Tracker.AllEntries(context.Background())
	if err != nil {
		t.Fatalf("AllEntries: %v", err)
	}
	if len(entries) != want {
		t.Fatalf("entries = %d, want %d", len(entries), want)
	}
}

func executeCommand(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()
	out, err := executeCommandErr(t, cmd, args...)
	if err != nil {
		t.Fatalf("cmd.Execute(%q): %v\n%s", args, err, out)
	}
	return out
}

func executeCommandErr(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func assertContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("output %q missing substring %q", output, want)
	}
}

func assertNotContains(t *testing.T, output, want string) {
	t.Helper()
	if strings.Contains(output, want) {
		t.Fatalf("output %q unexpectedly contained substring %q", output, want)
	}
}
