package counter

import (
	"sort"
	"time"
)

// Timers is an AfterFunc for hosts that poll a clock once per frame, such as
// the window hosts. Callbacks run inside Advance on the caller's goroutine.
type Timers struct {
	now     time.Duration
	pending []timer
}

type timer struct {
	at time.Duration
	fn func()
}

// After schedules fn to run d after the last Advance.
func (t *Timers) After(d time.Duration, fn func()) {
	t.pending = append(t.pending, timer{at: t.now + d, fn: fn})
}

// Advance moves the clock to now and runs every due callback in deadline
// order. It returns how many ran. A clock that goes backwards is ignored.
func (t *Timers) Advance(now time.Duration) int {
	if now > t.now {
		t.now = now
	}
	sort.SliceStable(t.pending, func(i, j int) bool { return t.pending[i].at < t.pending[j].at })

	n := 0
	for n < len(t.pending) && t.pending[n].at <= t.now {
		n++
	}
	due := t.pending[:n:n]
	t.pending = append([]timer(nil), t.pending[n:]...)
	for _, d := range due {
		d.fn()
	}
	return n
}

func (t *Timers) Pending() int { return len(t.pending) }
