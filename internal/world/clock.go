package world

import "time"

// Clock tracks the world's simulation-tick counter and the wall-clock
// pacing of the Run loop (spec.md 5: "tick rate from policy; default
// 64 000 simulation-ticks/second, batched").
type Clock struct {
	Ticks uint64

	tickRate  uint64
	overclock float64
}

func NewClock(tickRate uint64, overclock float64) *Clock {
	return &Clock{tickRate: tickRate, overclock: overclock}
}

// Advance increments the tick counter.
func (c *Clock) Advance() {
	c.Ticks++
}

// Period is the wall-clock duration one simulation tick should occupy at
// the current rate and overclock factor. It never returns zero: a
// non-positive rate (an exotic SetOverclock value), or one so high that a
// tick would be shorter than a nanosecond, still yields the smallest
// representable tick rather than a duration time.Ticker rejects.
func (c *Clock) Period() time.Duration {
	rate := float64(c.tickRate) * c.overclock
	if rate <= 0 {
		return time.Nanosecond
	}
	d := time.Duration(float64(time.Second) / rate)
	if d <= 0 {
		return time.Nanosecond
	}
	return d
}

func (c *Clock) SetOverclock(factor float64) {
	c.overclock = factor
}
