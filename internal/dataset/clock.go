package dataset

import "sync/atomic"

// Clock is a monotonic logical clock for row ordering.
//
// Every emitted row is stamped with a strictly increasing seq number so the
// dataset has a total order that survives storage and re-export. Wall-clock
// time never participates.
//
// Thread-safety: Clock is safe for concurrent use (atomic operations),
// though a build stamps rows from a single goroutine.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a new clock starting at a specific sequence number.
// Used to resume stamping into an existing dataset.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number and increments the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
