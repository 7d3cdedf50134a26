// Package ledger keeps the append-only history of time entries and
// aggregates it into reports.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/faizmokh/jam/internal/clock"
	"github.com/faizmokh/jam/internal/store"
)

// StorageKey is the single key the whole entry sequence is stored under.
const StorageKey = "timeEntries"

var emptyBlob = []byte("[]")

// Ledger is the in-memory entry sequence mirrored to a Store.
type Ledger struct {
	mu    sync.Mutex
	store store.Store
	key   string
	clock clock.Clock
	loc   *time.Location

	entries  []TimeEntry
	loaded   bool
	detached bool
}

// Option customises a Ledger.
type Option func(*Ledger)

// WithClock sets the clock used to date new entries.
func WithClock(c clock.Clock) Option {
	return func(l *Ledger) {
		l.clock = c
	}
}

// WithLocation sets the timezone calendar days are evaluated in. The default
// is the host's local timezone.
func WithLocation(loc *time.Location) Option {
	return func(l *Ledger) {
		if loc != nil {
			l.loc = loc
		}
	}
}

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(l *Ledger) {
		l.key = key
	}
}

// New wires a ledger to s. Call Load before anything else.
func New(s store.Store, opts ...Option) *Ledger {
	l := &Ledger{
		store: s,
		key:   StorageKey,
		clock: clock.Real(),
		loc:   time.Local,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Location reports the timezone used for calendar-day grouping.
func (l *Ledger) Location() *time.Location {
	return l.loc
}

// Load reads the persisted sequence. A store that has never been written
// yields an empty ledger. On failure the ledger still becomes usable, but it
// stops persisting so the unreadable data is never overwritten; every later
// Append then reports ErrStorageUnavailable.
func (l *Ledger) Load(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.loaded {
		return ErrAlreadyLoaded
	}
	l.loaded = true
	l.entries = nil

	data, err := l.store.Get(ctx, l.key, emptyBlob)
	if err != nil {
		l.detached = true
		return fmt.Errorf("%w: load entries: %v", ErrStorageUnavailable, err)
	}

	var entries []TimeEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		l.detached = true
		return fmt.Errorf("%w: decode entries: %v", ErrStorageUnavailable, err)
	}
	l.entries = entries
	return nil
}

// Append records a new entry dated now and persists the whole sequence. When
// persisting fails the entry is kept in memory and the error wraps
// ErrStorageUnavailable.
func (l *Ledger) Append(ctx context.Context, description string, duration time.Duration) (TimeEntry, error) {
	if duration < 0 {
		return TimeEntry{}, ErrNegativeDuration
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.loaded {
		return TimeEntry{}, ErrNotLoaded
	}

	entry := TimeEntry{
		Date:        l.clock.Now().UTC(),
		Duration:    duration.Milliseconds(),
		Description: description,
	}
	l.entries = append(l.entries, entry)

	if l.detached {
		return entry, fmt.Errorf("%w: entry kept in memory only", ErrStorageUnavailable)
	}
	if err := l.save(ctx); err != nil {
		return entry, err
	}
	return entry, nil
}

// Entries returns a copy of the full sequence in ledger order.
func (l *Ledger) Entries(ctx context.Context) ([]TimeEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.loaded {
		return nil, ErrNotLoaded
	}
	out := make([]TimeEntry, len(l.entries))
	copy(out, l.entries)
	return out, nil
}

// DailyReport collects the entries whose date, seen in the ledger's timezone,
// falls on the calendar date of day. The calendar fields of day are used as
// given.
func (l *Ledger) DailyReport(ctx context.Context, day time.Time) (Report, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.loaded {
		return Report{}, ErrNotLoaded
	}

	year, month, dom := day.Date()
	report := Report{
		Day:     time.Date(year, month, dom, 0, 0, 0, 0, l.loc),
		Entries: []TimeEntry{},
	}
	for _, entry := range l.entries {
		if !sameDay(entry.Date.In(l.loc), year, month, dom) {
			continue
		}
		report.Entries = append(report.Entries, entry)
		report.TotalHours += entry.Hours()
	}
	return report, nil
}

func (l *Ledger) save(ctx context.Context) error {
	data, err := json.Marshal(l.entries)
	if err != nil {
		return fmt.Errorf("encode entries: %w", err)
	}
	if err := l.store.Update(ctx, l.key, data); err != nil {
		return fmt.Errorf("%w: save entries: %v", ErrStorageUnavailable, err)
	}
	return nil
}

func sameDay(t time.Time, year int, month time.Month, day int) bool {
	y, m, d := t.Date()
	return y == year && m == month && d == day
}
