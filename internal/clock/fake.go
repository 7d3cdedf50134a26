package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake is a manually advanced Clock. Scheduled callbacks fire synchronously
// from Advance, in due order.
type Fake struct {
	mu        sync.Mutex
	now       time.Time
	nextID    int
	schedules map[int]*schedule
}

type schedule struct {
	id       int
	interval time.Duration
	next     time.Time
	fn       func()
}

// NewFake returns a Fake clock reading start.
func NewFake(start time.Time) *Fake {
	return &Fake{
		now:       start,
		schedules: make(map[int]*schedule),
	}
}

// Now returns the virtual instant.
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Every registers fn to run each time Advance crosses another interval.
func (f *Fake) Every(interval time.Duration, fn func()) func() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	id := f.nextID
	f.schedules[id] = &schedule{
		id:       id,
		interval: interval,
		next:     f.now.Add(interval),
		fn:       fn,
	}

	return func() {
		f.mu.Lock()
		delete(f.schedules, id)
		f.mu.Unlock()
	}
}

// Advance moves the clock forward by d, firing every callback that comes due
// along the way. Callbacks run without the clock's lock held, so they may
// read Now or stop their own schedule.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now.Add(d)
	f.mu.Unlock()

	for {
		f.mu.Lock()
		due := f.nextDue(target)
		if due == nil {
			f.now = target
			f.mu.Unlock()
			return
		}
		f.now = due.next
		due.next = due.next.Add(due.interval)
		fn := due.fn
		f.mu.Unlock()

		fn()
	}
}

// Pending reports how many schedules are still registered.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.schedules)
}

func (f *Fake) nextDue(target time.Time) *schedule {
	candidates := make([]*schedule, 0, len(f.schedules))
	for _, s := range f.schedules {
		if !s.next.After(target) {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].next.Equal(candidates[j].next) {
			return candidates[i].id < candidates[j].id
		}
		return candidates[i].next.Before(candidates[j].next)
	})
	return candidates[0]
}
