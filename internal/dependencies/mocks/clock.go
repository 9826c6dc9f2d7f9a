package mocks

import "time"

// MockClock is a mock implementation of Clock for testing.
type MockClock struct {
	now time.Time
}

// NewMockClock creates a MockClock set to the given time.
func NewMockClock(now time.Time) *MockClock {
	return &MockClock{now: now}
}

// Now returns the mock's current time.
func (c *MockClock) Now() time.Time {
	return c.now
}

// After returns a channel that already holds the mock's current time, so
// paced callbacks run immediately in tests.
func (c *MockClock) After(d time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- c.now.Add(d)
	return ch
}

// Advance moves the mock's time forward.
func (c *MockClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// Set sets the mock's time.
func (c *MockClock) Set(t time.Time) {
	c.now = t
}
