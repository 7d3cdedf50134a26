// Package timer implements the session timer: a two-state (idle, running)
// machine that measures one work session at a time.
package timer

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/faizmokh/jam/internal/clock"
)

// DefaultTickInterval drives the live elapsed display.
const DefaultTickInterval = time.Second

// State is a snapshot of the timer.
type State struct {
	Running bool
	// Session identifies the current run; empty while idle.
	Session   string
	StartedAt time.Time
	Elapsed   time.Duration
	// Seq orders snapshots of one timer; a larger Seq was taken later.
	Seq uint64
}

// Display renders the elapsed time as HH:MM:SS.
func (s State) Display() string {
	return FormatElapsed(s.Elapsed)
}

// Observer receives a snapshot on every tick and every transition. It is
// called without the timer's lock held, so snapshots may arrive out of order;
// compare Seq to discard stale ones.
type Observer func(State)

// Timer tracks whether a session is running and for how long.
type Timer struct {
	mu       sync.Mutex
	clock    clock.Clock
	interval time.Duration
	observer Observer

	running   bool
	session   string
	startedAt time.Time
	elapsed   time.Duration
	// generation invalidates ticks scheduled by an earlier run.
	generation uint64
	seq        uint64
	cancelTick func()
}

// Option customises a Timer.
type Option func(*Timer)

// WithTickInterval sets how often elapsed time is recomputed while running.
func WithTickInterval(d time.Duration) Option {
	return func(t *Timer) {
		if d > 0 {
			t.interval = d
		}
	}
}

// WithObserver registers the status display callback.
func WithObserver(o Observer) Option {
	return func(t *Timer) {
		t.observer = o
	}
}

// New returns an idle timer reading time from c.
func New(c clock.Clock, opts ...Option) *Timer {
	t := &Timer{
		clock:    c,
		interval: DefaultTickInterval,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start begins a session. It reports false, changing nothing, when a session
// is already running.
func (t *Timer) Start() bool {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		return false
	}

	t.running = true
	t.session = uuid.NewString()
	t.startedAt = t.clock.Now()
	t.elapsed = 0
	t.generation++
	gen := t.generation
	t.cancelTick = t.clock.Every(t.interval, func() { t.tick(gen) })
	state := t.stateLocked()
	t.mu.Unlock()

	t.notify(state)
	return true
}

// Stop ends the running session and returns its finalized duration,
// truncated to the millisecond. It reports false when no session is running.
func (t *Timer) Stop() (time.Duration, bool) {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return 0, false
	}

	final := t.sinceStart()
	t.cancelTick()
	t.cancelTick = nil
	t.generation++
	t.running = false
	t.session = ""
	t.startedAt = time.Time{}
	t.elapsed = 0
	state := t.stateLocked()
	t.mu.Unlock()

	t.notify(state)
	return final, true
}

// State returns a snapshot of the timer.
func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stateLocked()
}

// Running reports whether a session is active.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Elapsed returns the elapsed time as of the last tick.
func (t *Timer) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.elapsed
}

// ElapsedDisplay formats Elapsed as HH:MM:SS.
func (t *Timer) ElapsedDisplay() string {
	return FormatElapsed(t.Elapsed())
}

func (t *Timer) tick(gen uint64) {
	t.mu.Lock()
	if !t.running || gen != t.generation {
		// Late tick from a stopped or replaced run.
		t.mu.Unlock()
		return
	}
	t.elapsed = t.sinceStart()
	state := t.stateLocked()
	t.mu.Unlock()

	t.notify(state)
}

func (t *Timer) sinceStart() time.Duration {
	d := t.clock.Now().Sub(t.startedAt).Truncate(time.Millisecond)
	if d < 0 {
		return 0
	}
	return d
}

func (t *Timer) stateLocked() State {
	t.seq++
	return State{
		Running:   t.running,
		Session:   t.session,
		StartedAt: t.startedAt,
		Elapsed:   t.elapsed,
		Seq:       t.seq,
	}
}

func (t *Timer) notify(state State) {
	if t.observer != nil {
		t.observer(state)
	}
}
