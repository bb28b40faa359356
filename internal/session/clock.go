package session

import "sync/atomic"

// Clock is a monotonic logical clock for trace ordering.
//
// All trace events are stamped with a strictly increasing seq number from
// this clock. Wall-clock timestamps are never used for ordering, so
// traces replay identically regardless of when they run.
//
// Thread-safety: Clock is safe for concurrent use (atomic operations),
// though a session drives it from a single goroutine.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// Next returns the next sequence number and increments the clock.
// Each call returns a unique, increasing value.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
