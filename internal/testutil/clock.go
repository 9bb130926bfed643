// Package testutil holds deterministic helpers shared by the harness and
// package tests.
package testutil

import "sync"

// SeqClock hands out logical sequence numbers for conversion records.
// The first call to Next returns 1. Safe for concurrent use.
type SeqClock struct {
	mu  sync.Mutex
	seq int64
}

// NewSeqClock returns a clock starting at 0.
func NewSeqClock() *SeqClock {
	return &SeqClock{}
}

// Next advances the clock and returns the new value.
func (c *SeqClock) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

// Current returns the last value handed out, 0 before the first Next.
func (c *SeqClock) Current() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

// Reset rewinds the clock so the next call to Next returns 1 again.
func (c *SeqClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq = 0
}
