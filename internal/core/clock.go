package core

import "time"

// Tick is one simulation step handed out by a Clock.
type Tick struct {
	Seq uint64
	// Missed marks a catch-up tick; only the last tick of a batch is drawn.
	Missed bool
}

// Clock converts elapsed wall time into simulation ticks of a fixed period.
// When the host falls behind, the owed ticks are returned together with all
// but the last marked missed. A frozen clock produces nothing except the
// single ticks requested with Step.
type Clock struct {
	period     time.Duration
	maxCatchUp int
	owed       time.Duration
	seq        uint64
	frozen     bool
	stepping   int
}

// NewClock returns a running clock. maxCatchUp below 1 means 1.
func NewClock(period time.Duration, maxCatchUp int) *Clock {
	if period <= 0 {
		period = 20 * time.Millisecond
	}
	return &Clock{period: period, maxCatchUp: max(maxCatchUp, 1)}
}

// Period returns the tick period.
func (c *Clock) Period() time.Duration { return c.period }

// Seq returns the number of ticks handed out so far.
func (c *Clock) Seq() uint64 { return c.seq }

// Frozen reports whether the clock is frozen.
func (c *Clock) Frozen() bool { return c.frozen }

// Advance accounts for elapsed time and returns the ticks now due. Time
// beyond the catch-up limit is dropped.
func (c *Clock) Advance(elapsed time.Duration) []Tick {
	if c.frozen {
		if c.stepping == 0 {
			return nil
		}
		n := c.stepping
		c.stepping = 0
		return c.emit(n)
	}
	if elapsed > 0 {
		c.owed += elapsed
	}
	n := int(c.owed / c.period)
	if n == 0 {
		return nil
	}
	c.owed -= time.Duration(n) * c.period
	if n > c.maxCatchUp {
		n = c.maxCatchUp
		c.owed = 0
	}
	return c.emit(n)
}

func (c *Clock) emit(n int) []Tick {
	ticks := make([]Tick, n)
	for i := range ticks {
		c.seq++
		ticks[i] = Tick{Seq: c.seq, Missed: i < n-1}
	}
	return ticks
}

// Freeze stops the clock. Time passing while frozen is never owed.
func (c *Clock) Freeze() {
	c.frozen = true
	c.owed = 0
}

// Thaw restarts a frozen clock.
func (c *Clock) Thaw() {
	c.frozen = false
	c.stepping = 0
	c.owed = 0
}

// Toggle freezes a running clock or thaws a frozen one and reports whether
// it is now frozen.
func (c *Clock) Toggle() bool {
	if c.frozen {
		c.Thaw()
	} else {
		c.Freeze()
	}
	return c.frozen
}

// Step queues one tick for the next Advance of a frozen clock. It has no
// effect on a running clock.
func (c *Clock) Step() {
	if c.frozen {
		c.stepping++
	}
}
