// Package clocktest provides a deterministic Clock for tests.
package clocktest

import (
	"sync"
	"time"
)

// Fixed is a thread-safe Clock that returns a pinned time.
//
// Unlike clock.System, Fixed only moves when a test advances it.
// This enables asserting exact completion timestamps and timer
// end-times without sleeping.
//
// Thread-safety: all methods are safe for concurrent use via
// internal mutex.
type Fixed struct {
	mu  sync.Mutex
	now time.Time
}

// At creates a Fixed clock pinned to t.
func At(t time.Time) *Fixed {
	return &Fixed{now: t}
}

// Now returns the pinned time.
func (c *Fixed) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Fixed) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set pins the clock to t.
//
// Used for test reuse. Later calls to Now return t until the next
// Advance or Set.
func (c *Fixed) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
