package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"

	"github.com/faizmokh/jam/internal/clock"
	"github.com/faizmokh/jam/internal/config"
	"github.com/faizmokh/jam/internal/files"
	"github.com/faizmokh/jam/internal/ledger"
	"github.com/faizmokh/jam/internal/logging"
	"github.com/faizmokh/jam/internal/store"
	"github.com/faizmokh/jam/internal/timer"
	"github.com/faizmokh/jam/internal/tracker"
	"github.com/faizmokh/jam/internal/ui"
)

// App bundles the collaborators every command needs.
type App struct {
	Tracker *tracker.Tracker
	Feed    *ui.Feed
	Clock   clock.Clock
	Logger  *slog.Logger

	// Prompter asks for values missing from flags.
	Prompter tracker.Prompter
	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool
	// RunTUI runs the Bubble Tea program until the user quits.
	RunTUI func(ctx context.Context, m ui.Model) error
}

// Bootstrap resolves paths and config, opens the store and loads the ledger.
// The returned close func records a running session and releases the store.
func Bootstrap(ctx context.Context) (*App, func() error, error) {
	manager, err := files.NewManager("")
	if err != nil {
		return nil, nil, err
	}
	if err := manager.EnsureDirs(); err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load(manager.ConfigPath())
	if err != nil {
		return nil, nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}

	logger, logCloser, err := logging.New(logging.Options{
		Path:       manager.LogPath(),
		Level:      cfg.Log.Level,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	if err != nil {
		return nil, nil, err
	}

	dbPath := cfg.Storage.Path
	if dbPath == "" {
		dbPath = manager.DBPath(cfg.Storage.Driver)
	}
	st, err := store.Open(cfg.Storage.Driver, dbPath)
	if err != nil {
		_ = logCloser.Close()
		if errors.Is(err, store.ErrLocked) {
			return nil, nil, fmt.Errorf("%w: is jam already running?", err)
		}
		return nil, nil, err
	}

	clk := clock.Real()
	l := ledger.New(st, ledger.WithClock(clk), ledger.WithLocation(loc))
	if err := l.Load(ctx); err != nil {
		logger.WarnContext(ctx, "load entries", "error", err, "path", dbPath)
		pterm.Warning.Printfln("Stored entries could not be read; new entries will not be saved this run (%v)", err)
	}

	feed := ui.NewFeed()
	tm := timer.New(clk,
		timer.WithTickInterval(cfg.Tracker.TickInterval),
		timer.WithObserver(feed.Observe),
	)
	tr := tracker.New(tm, l,
		tracker.WithDefaultDescription(cfg.Tracker.DefaultDescription),
		tracker.WithLogger(logger),
	)

	app := &App{
		Tracker:  tr,
		Feed:     feed,
		Clock:    clk,
		Logger:   logger,
		Prompter: ui.FormPrompter{},
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
		RunTUI: runProgram,
	}
	logger.DebugContext(ctx, "jam ready", "driver", cfg.Storage.Driver, "db", dbPath, "config", cfg.Path)

	// runTUI records a session left running; only the storage and log
	// handles are released here.
	closeFn := func() error {
		return closeAll(st.Close, logCloser.Close)
	}
	return app, closeFn, nil
}

func runProgram(ctx context.Context, m ui.Model) error {
	if _, err := tea.NewProgram(m, tea.WithContext(ctx)).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func closeAll(fns ...func() error) error {
	var errs []error
	for _, fn := range fns {
		if err := fn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

