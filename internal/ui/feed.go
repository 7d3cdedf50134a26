package ui

import (
	"sync"

	"github.com/faizmokh/jam/internal/timer"
)

// Feed carries timer states from the tick goroutine into the Bubble Tea
// program. Only the latest state is kept; a slow reader never blocks the
// timer.
type Feed struct {
	mu     sync.Mutex
	latest uint64
	ch     chan timer.State
}

// NewFeed returns an empty feed.
func NewFeed() *Feed {
	return &Feed{ch: make(chan timer.State, 1)}
}

// Observe is a timer.Observer. A state older than one already observed is
// dropped, so a tick that loses the race with Stop cannot resurrect a
// running display.
func (f *Feed) Observe(s timer.State) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if s.Seq != 0 && s.Seq <= f.latest {
		return
	}
	if s.Seq > f.latest {
		f.latest = s.Seq
	}
	for {
		select {
		case f.ch <- s:
			return
		default:
		}
		// Drop the stale state and retry.
		select {
		case <-f.ch:
		default:
		}
	}
}

// C delivers states in order, newest wins.
func (f *Feed) C() <-chan timer.State {
	return f.ch
}
