package contracts

import (
	"time"

	"github.com/light-bringer/classfin-service/internal/pkg/period"
)

// Scope carries the raw report filters as received from a caller.
type Scope struct {
	ClassID         string
	Segment         string
	Channel         string
	Status          string
	Preset          string
	Start           *time.Time
	End             *time.Time
	IncludeArchived bool
}

// Filter validates the scope and resolves its period relative to now.
func (s Scope) Filter(now time.Time) (Filter, error) {
	segment, err := ParseSegment(s.Segment)
	if err != nil {
		return Filter{}, err
	}
	status, err := ParseStatus(s.Status)
	if err != nil {
		return Filter{}, err
	}
	r, err := period.Resolve(s.Preset, s.Start, s.End, now)
	if err != nil {
		return Filter{}, err
	}

	return Filter{
		ClassID:         s.ClassID,
		Segment:         segment,
		Channel:         s.Channel,
		Status:          status,
		Period:          r,
		IncludeArchived: s.IncludeArchived,
	}, nil
}
