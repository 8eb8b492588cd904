package testutil

import "time"

// FakeClock is a Clock returning a fixed time, advancing by a fixed step on
// each call so durations are deterministic.
type FakeClock struct {
	T    time.Time
	Step time.Duration
}

// NewFakeClock creates a FakeClock starting at a fixed instant.
func NewFakeClock() *FakeClock {
	return &FakeClock{T: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

// Now returns the current fake time and advances it by Step.
func (c *FakeClock) Now() time.Time {
	now := c.T
	c.T = c.T.Add(c.Step)
	return now
}
