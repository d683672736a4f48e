package realtime

import (
	"sync"
	"time"

	"github.com/comalice/typewriterx"
)

// Clock is a virtual clock. Its zero time is the moment it was created;
// Now reports the elapsed virtual duration.
type Clock struct {
	mu      sync.Mutex
	now     time.Duration
	seq     uint64
	pending []*timer
}

type timer struct {
	c   *Clock
	due time.Duration
	seq uint64
	f   func()
}

var _ typewriterx.Scheduler = (*Clock)(nil)

// NewClock creates a clock at virtual time zero.
func NewClock() *Clock {
	return &Clock{}
}

// AfterFunc schedules f to run d after the current virtual time. Negative
// delays are treated as zero.
func (c *Clock) AfterFunc(d time.Duration, f func()) typewriterx.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	if d < 0 {
		d = 0
	}
	t := &timer{c: c, due: c.now + d, seq: c.seq, f: f}
	c.seq++
	c.pending = append(c.pending, t)
	return t
}

// Stop removes the timer. It reports false if the timer already fired or
// was stopped.
func (t *timer) Stop() bool {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()

	for i, p := range t.c.pending {
		if p == t {
			t.c.pending = append(t.c.pending[:i], t.c.pending[i+1:]...)
			return true
		}
	}
	return false
}

// Now returns the current virtual time.
func (c *Clock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Pending returns the number of scheduled callbacks.
func (c *Clock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Advance moves virtual time forward by d, firing every callback that falls
// due on the way, including callbacks scheduled by those callbacks. It
// returns the number of callbacks fired.
func (c *Clock) Advance(d time.Duration) int {
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()

	fired := 0
	for {
		t, ok := c.popDue(target)
		if !ok {
			break
		}
		t.f() // Outside the lock: callbacks reschedule on this clock.
		fired++
	}

	c.mu.Lock()
	if c.now < target {
		c.now = target
	}
	c.mu.Unlock()
	return fired
}

// Next advances to the earliest pending due time and fires everything due
// at that instant. It reports the new virtual time, or false when nothing is
// pending.
func (c *Clock) Next() (time.Duration, bool) {
	c.mu.Lock()
	if len(c.pending) == 0 {
		now := c.now
		c.mu.Unlock()
		return now, false
	}
	sortTimers(c.pending)
	due := c.pending[0].due
	c.mu.Unlock()

	c.Advance(due - c.Now())
	return due, true
}

// popDue removes and returns the earliest timer due at or before target,
// moving the clock to its due time.
func (c *Clock) popDue(target time.Duration) (*timer, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.pending) == 0 {
		return nil, false
	}
	sortTimers(c.pending)
	t := c.pending[0]
	if t.due > target {
		return nil, false
	}
	c.pending = c.pending[1:]
	c.now = t.due
	return t, true
}
