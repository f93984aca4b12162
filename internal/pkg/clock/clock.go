package clock

import "time"

// Clock is an interface for time operations to enable testability.
type Clock interface {
	Now() time.Time
}

// RealClock is the production implementation using actual system time.
type RealClock struct {
	loc *time.Location
}

// NewRealClock creates a RealClock reporting time in loc (UTC when nil).
func NewRealClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return &RealClock{loc: loc}
}

// Now returns the current system time.
func (c *RealClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// MockClock is a test implementation that allows setting the current time.
type MockClock struct {
	current time.Time
}

// NewMockClock creates a new MockClock starting at the given time.
func NewMockClock(startTime time.Time) *MockClock {
	return &MockClock{current: startTime}
}

// Now returns the mock current time.
func (m *MockClock) Now() time.Time {
	return m.current
}

// Set sets the mock current time.
func (m *MockClock) Set(t time.Time) {
	m.current = t
}

// Advance advances the mock clock by the given duration.
func (m *MockClock) Advance(d time.Duration) {
	m.current = m.current.Add(d)
}

// Today returns the calendar date of c.Now().
func Today(c Clock) time.Time {
	return Date(c.Now())
}

// Date drops the time of day, keeping the calendar date of t in its own location.
// The result is expressed as midnight UTC so dates from different zones compare by calendar day.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from a to b (negative when b is before a).
func DaysBetween(a, b time.Time) int {
	return int(Date(b).Sub(Date(a)).Hours() / 24)
}

// MonthStart returns the first day of t's month.
func MonthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}
