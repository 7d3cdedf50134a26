// Package tracker pairs one session timer with one entry ledger and runs every
// user command against them one at a time.
package tracker

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/faizmokh/jam/internal/ledger"
	"github.com/faizmokh/jam/internal/timer"
)

// Pending is a finalized session waiting for its description.
type Pending struct {
	Session  string
	Duration time.Duration
}

// Tracker serialises start, stop, manual entries and reports. Ticks only touch
// the timer, which guards itself.
type Tracker struct {
	mu      sync.Mutex
	timer   *timer.Timer
	ledger  *ledger.Ledger
	pending *Pending

	defaultDescription string
	logger             *slog.Logger
}

// Option customises a Tracker.
type Option func(*Tracker)

// WithDefaultDescription replaces ledger.DefaultDescription.
func WithDefaultDescription(desc string) Option {
	return func(t *Tracker) {
		if strings.TrimSpace(desc) != "" {
			t.defaultDescription = desc
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// New wires a tracker. The ledger must already be loaded.
func New(tm *timer.Timer, l *ledger.Ledger, opts ...Option) *Tracker {
	t := &Tracker{
		timer:              tm,
		ledger:             l,
		defaultDescription: ledger.DefaultDescription,
		logger:             slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// State returns the timer snapshot.
func (t *Tracker) State() timer.State {
	return t.timer.State()
}

// Location is the timezone reports group days in.
func (t *Tracker) Location() *time.Location {
	return t.ledger.Location()
}

// DefaultDescription is recorded when the user gives none.
func (t *Tracker) DefaultDescription() string {
	return t.defaultDescription
}

// Start begins a session. It reports false when one is already running.
func (t *Tracker) Start(ctx context.Context) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pending != nil {
		return false, ErrStopPending
	}
	if !t.timer.Start() {
		return false, nil
	}
	state := t.timer.State()
	t.logger.InfoContext(ctx, "session started", "session", state.Session, "started_at", state.StartedAt)
	return true, nil
}

// Stop finalizes the running session, asks p for a description and records
// the entry. A dismissed or empty answer records the default description. It
// reports false, recording nothing, when no session is running.
func (t *Tracker) Stop(ctx context.Context, p Prompter) (ledger.TimeEntry, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pending != nil {
		return ledger.TimeEntry{}, false, ErrStopPending
	}
	if _, ok := t.finalizeLocked(ctx); !ok {
		return ledger.TimeEntry{}, false, nil
	}

	var description string
	if p != nil {
		answer, ok, err := p.Prompt(ctx, DescriptionQuestion)
		if err != nil {
			t.logger.WarnContext(ctx, "description prompt failed", "error", err)
		} else if ok {
			description = answer
		}
	}

	entry, err := t.commitLocked(ctx, description)
	return entry, true, err
}

// Finalize stops the running session and holds its duration until Commit. It
// is the first half of Stop for callers whose prompt is not a blocking call.
// Start and manual entries are refused until Commit runs.
func (t *Tracker) Finalize(ctx context.Context) (Pending, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pending != nil {
		return *t.pending, true
	}
	return t.finalizeLocked(ctx)
}

// Commit records the session held by Finalize.
func (t *Tracker) Commit(ctx context.Context, description string) (ledger.TimeEntry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pending == nil {
		return ledger.TimeEntry{}, ErrNothingPending
	}
	return t.commitLocked(ctx, description)
}

// Pending reports the finalized session awaiting Commit, if any.
func (t *Tracker) Pending() (Pending, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pending == nil {
		return Pending{}, false
	}
	return *t.pending, true
}

// AddManualEntry asks p for hours and a description and records them.
// Dismissing either prompt returns ErrUserCancelled; hours that are not a
// number return ledger.ErrInvalidNumericInput. Neither touches the ledger.
func (t *Tracker) AddManualEntry(ctx context.Context, p Prompter) (ledger.TimeEntry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pending != nil {
		return ledger.TimeEntry{}, ErrStopPending
	}

	hours, ok, err := p.Prompt(ctx, HoursQuestion)
	if err != nil {
		return ledger.TimeEntry{}, err
	}
	if !ok {
		return ledger.TimeEntry{}, ErrUserCancelled
	}
	duration, err := ledger.ParseHours(hours)
	if err != nil {
		t.logger.InfoContext(ctx, "manual entry rejected", "hours", hours)
		return ledger.TimeEntry{}, err
	}

	description, ok, err := p.Prompt(ctx, DescriptionQuestion)
	if err != nil {
		return ledger.TimeEntry{}, err
	}
	if !ok {
		return ledger.TimeEntry{}, ErrUserCancelled
	}

	return t.appendLocked(ctx, "manual", description, duration)
}

// Record adds a manual entry from already collected values.
func (t *Tracker) Record(ctx context.Context, hours, description string) (ledger.TimeEntry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pending != nil {
		return ledger.TimeEntry{}, ErrStopPending
	}
	duration, err := ledger.ParseHours(hours)
	if err != nil {
		return ledger.TimeEntry{}, err
	}
	return t.appendLocked(ctx, "manual", description, duration)
}

// DailyReport aggregates the entries recorded on day.
func (t *Tracker) DailyReport(ctx context.Context, day time.Time) (ledger.Report, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ledger.DailyReport(ctx, day)
}

// AllEntries returns every entry in ledger order.
func (t *Tracker) AllEntries(ctx context.Context) ([]ledger.TimeEntry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ledger.Entries(ctx)
}

// Close stops a running session, recording it with the default description.
func (t *Tracker) Close(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pending == nil {
		if _, ok := t.finalizeLocked(ctx); !ok {
			return nil
		}
	}
	_, err := t.commitLocked(ctx, "")
	return err
}

func (t *Tracker) finalizeLocked(ctx context.Context) (Pending, bool) {
	session := t.timer.State().Session
	duration, ok := t.timer.Stop()
	if !ok {
		return Pending{}, false
	}
	t.pending = &Pending{Session: session, Duration: duration}
	t.logger.InfoContext(ctx, "session stopped", "session", session, "duration_ms", duration.Milliseconds())
	return *t.pending, true
}

func (t *Tracker) commitLocked(ctx context.Context, description string) (ledger.TimeEntry, error) {
	p := *t.pending
	t.pending = nil
	return t.appendLocked(ctx, p.Session, description, p.Duration)
}

func (t *Tracker) appendLocked(ctx context.Context, source, description string, duration time.Duration) (ledger.TimeEntry, error) {
	if strings.TrimSpace(description) == "" {
		description = t.defaultDescription
	}

	entry, err := t.ledger.Append(ctx, description, duration)
	if err != nil {
		if errors.Is(err, ledger.ErrStorageUnavailable) {
			t.logger.WarnContext(ctx, "entry kept in memory", "source", source, "error", err)
		} else {
			t.logger.ErrorContext(ctx, "append entry", "source", source, "error", err)
		}
		return entry, err
	}

	t.logger.InfoContext(ctx, "entry recorded",
		"source", source,
		"duration_ms", entry.Duration,
		"description", entry.Description,
	)
	return entry, nil
}
