package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMockClock(t *testing.T) {
	start := time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)
	c := NewMockClock(start)

	assert.Equal(t, start, c.Now())

	c.Advance(36 * time.Hour)
	assert.Equal(t, time.Date(2025, 6, 16, 21, 30, 0, 0, time.UTC), c.Now())

	c.Set(start)
	assert.Equal(t, start, c.Now())
}

func TestToday(t *testing.T) {
	bangkok := time.FixedZone("ICT", 7*60*60)
	c := NewMockClock(time.Date(2025, 6, 15, 23, 45, 0, 0, bangkok))

	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), Today(c))
}

func TestDaysBetween(t *testing.T) {
	due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("forward", func(t *testing.T) {
		assert.Equal(t, 14, DaysBetween(due, time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)))
	})

	t.Run("same day", func(t *testing.T) {
		assert.Equal(t, 0, DaysBetween(due, due.Add(23*time.Hour)))
	})

	t.Run("backward", func(t *testing.T) {
		assert.Equal(t, -3, DaysBetween(due, time.Date(2025, 5, 29, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("across DST-free month boundary", func(t *testing.T) {
		assert.Equal(t, 31, DaysBetween(time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)))
	})
}

func TestMonthStart(t *testing.T) {
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), MonthStart(time.Date(2025, 2, 28, 13, 0, 0, 0, time.UTC)))
}
