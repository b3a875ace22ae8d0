package game

import "time"

// Clock is the driver's wall-clock. The post-goal freeze is measured against
// it so tests can step time explicitly.
type Clock interface {
	Now() time.Time
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

// ManualClock is a Clock that only moves when told to.
type ManualClock struct {
	now time.Time
}

// NewManualClock starts a manual clock at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time { return c.now }

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// Set jumps the clock to t.
func (c *ManualClock) Set(t time.Time) { c.now = t }

// celebration is the pending "end of freeze" continuation. It only fires for
// the round it was scheduled in: every reset bumps the round epoch, which
// turns any older token into a no-op.
type celebration struct {
	pending  bool
	epoch    uint64
	deadline time.Time
}

func (c *celebration) schedule(epoch uint64, deadline time.Time) {
	c.pending = true
	c.epoch = epoch
	c.deadline = deadline
}

func (c *celebration) cancel() {
	c.pending = false
}

// due reports whether the continuation should run now for round epoch.
func (c *celebration) due(epoch uint64, now time.Time) bool {
	return c.pending && c.epoch == epoch && !now.Before(c.deadline)
}
