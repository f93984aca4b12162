package testutil

import (
	"time"

	"github.com/light-bringer/classfin-service/internal/pkg/clock"
)

// ReportDate is the "today" every fixture is written against.
var ReportDate = time.Date(2025, time.June, 15, 9, 30, 0, 0, time.UTC)

// NewFixedClock creates a mock clock fixed at the given time.
func NewFixedClock(t time.Time) clock.Clock {
	return clock.NewMockClock(t)
}

// NewMockClock creates a mock clock set to ReportDate that can be controlled in tests.
func NewMockClock() *clock.MockClock {
	return clock.NewMockClock(ReportDate)
}
