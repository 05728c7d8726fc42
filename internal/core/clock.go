package core

import (
	"sync/atomic"
	"time"
)

// Clock returns the current wall-clock time in unix seconds.
type Clock interface {
	Now() int64
}

// SystemClock reads time.Now.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() int64 {
	return time.Now().Unix()
}

// ManualClock is a Clock that only moves when told to. Safe for concurrent use.
type ManualClock struct {
	now atomic.Int64
}

// NewManualClock returns a clock frozen at start.
func NewManualClock(start int64) *ManualClock {
	c := &ManualClock{}
	c.now.Store(start)
	return c
}

// Now implements Clock.
func (c *ManualClock) Now() int64 {
	return c.now.Load()
}

// Advance moves the clock forward by d, truncated to whole seconds.
func (c *ManualClock) Advance(d time.Duration) {
	c.now.Add(int64(d / time.Second))
}

// Set pins the clock to ts.
func (c *ManualClock) Set(ts int64) {
	c.now.Store(ts)
}
