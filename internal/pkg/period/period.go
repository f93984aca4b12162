// Package period resolves reporting presets such as "this_month" into date ranges.
package period

import (
	"errors"
	"fmt"
	"time"

	"github.com/light-bringer/classfin-service/internal/pkg/clock"
)

// Supported presets.
const (
	ThisMonth   = "this_month"
	LastMonth   = "last_month"
	ThisQuarter = "this_quarter"
	ThisYear    = "this_year"
	All         = "all"
)

var (
	ErrUnknownPreset = errors.New("unknown period preset")
	ErrInvalidRange  = errors.New("period end is before start")
)

// Range is an inclusive calendar-day range. A zero Start or End leaves that side open.
type Range struct {
	Start time.Time `json:"start,omitempty"`
	End   time.Time `json:"end,omitempty"`
}

// Contains reports whether the calendar day of t falls inside the range.
func (r Range) Contains(t time.Time) bool {
	d := clock.Date(t)
	if !r.Start.IsZero() && d.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && d.After(r.End) {
		return false
	}
	return true
}

// IsOpen reports whether the range has no bounds at all.
func (r Range) IsOpen() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Resolve builds a range from a preset relative to now. An explicit start or end
// overrides the matching side of the preset.
func Resolve(preset string, start, end *time.Time, now time.Time) (Range, error) {
	r, err := fromPreset(preset, clock.Date(now))
	if err != nil {
		return Range{}, err
	}

	if start != nil && !start.IsZero() {
		r.Start = clock.Date(*start)
	}
	if end != nil && !end.IsZero() {
		r.End = clock.Date(*end)
	}
	if !r.Start.IsZero() && !r.End.IsZero() && r.End.Before(r.Start) {
		return Range{}, fmt.Errorf("%w: %s < %s", ErrInvalidRange, r.End.Format(time.DateOnly), r.Start.Format(time.DateOnly))
	}
	return r, nil
}

func fromPreset(preset string, today time.Time) (Range, error) {
	switch preset {
	case "", All, "custom":
		return Range{}, nil
	case ThisMonth:
		start := clock.MonthStart(today)
		return Range{Start: start, End: start.AddDate(0, 1, -1)}, nil
	case LastMonth:
		start := clock.MonthStart(today).AddDate(0, -1, 0)
		return Range{Start: start, End: start.AddDate(0, 1, -1)}, nil
	case ThisQuarter:
		q := (int(today.Month()) - 1) / 3
		start := time.Date(today.Year(), time.Month(q*3+1), 1, 0, 0, 0, 0, time.UTC)
		return Range{Start: start, End: start.AddDate(0, 3, -1)}, nil
	case ThisYear:
		start := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return Range{Start: start, End: start.AddDate(1, 0, -1)}, nil
	}
	return Range{}, fmt.Errorf("%w: %q", ErrUnknownPreset, preset)
}
