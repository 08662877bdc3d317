// Package clock abstracts wall-clock access so stores and handlers can be
// tested with a fixed time source.
package clock

import "time"

// Clock supplies the current wall-clock time.
//
// Completion records and timer end-times are the only places the
// application reads the clock; both take a Clock so tests can pin time.
type Clock interface {
	Now() time.Time
}

// System is a Clock backed by time.Now.
type System struct{}

// Now returns the current wall-clock time.
func (System) Now() time.Time {
	return time.Now()
}
