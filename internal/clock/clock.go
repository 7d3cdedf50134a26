// Package clock abstracts wall-clock reads and periodic callbacks so the
// session timer can run against virtual time in tests.
package clock

import (
	"sync"
	"time"
)

// Clock reports the current instant and schedules periodic work.
type Clock interface {
	Now() time.Time
	// Every calls fn once per interval until the returned stop function is
	// called. Stop is idempotent and never blocks on a running fn.
	Every(interval time.Duration, fn func()) (stop func())
}

type realClock struct{}

// Real returns the wall clock.
func Real() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) Every(interval time.Duration, fn func()) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				select {
				case <-done:
					return
				default:
				}
				fn()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}
