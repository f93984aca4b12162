package contracts

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/light-bringer/classfin-service/internal/app/registration/domain"
	"github.com/light-bringer/classfin-service/internal/pkg/period"
)

var (
	ErrInvalidStatus  = errors.New("invalid status filter")
	ErrInvalidSegment = errors.New("invalid segment filter")
)

// Status narrows lines by payment or document state.
type Status string

const (
	StatusAny        Status = ""
	StatusPaid       Status = "paid"
	StatusPending    Status = "pending"
	StatusOverdue    Status = "overdue"
	StatusNoDocument Status = "no_document"
)

// ParseStatus parses a status filter. An empty string or "all" matches everything.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusAny, StatusPaid, StatusPending, StatusOverdue, StatusNoDocument:
		return st, nil
	case "all":
		return StatusAny, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// ParseSegment parses a participant segment. An empty string or "all" matches everything.
func ParseSegment(s string) (domain.ParticipantType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return "", nil
	}
	pt, err := domain.ParseParticipantType(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidSegment, s)
	}
	return pt, nil
}

// Filter selects the registration lines a report covers. Zero fields match everything.
type Filter struct {
	ClassID         string
	Segment         domain.ParticipantType
	Channel         string
	Status          Status
	Period          period.Range // applied to the class date
	IncludeArchived bool
}

// Match reports whether the line passes the filter. asOf is used for the overdue status.
func (f Filter) Match(l *domain.RegistrationLine, asOf time.Time) bool {
	if l == nil {
		return false
	}
	if l.IsArchived() && !f.IncludeArchived {
		return false
	}
	if f.ClassID != "" && l.Class().ID != f.ClassID {
		return false
	}
	if f.Segment != "" && l.ParticipantType() != f.Segment {
		return false
	}
	if f.Channel != "" && !strings.EqualFold(l.ChannelKey(), f.Channel) {
		return false
	}
	if !f.Period.IsOpen() {
		classDate := l.Class().Date
		if classDate.IsZero() || !f.Period.Contains(classDate) {
			return false
		}
	}

	switch f.Status {
	case StatusPaid:
		return l.IsPaid()
	case StatusPending:
		return l.IsPending()
	case StatusOverdue:
		return l.IsOverdue(asOf)
	case StatusNoDocument:
		return l.DocumentStatus() == domain.DocumentNone
	}
	return true
}

// Apply returns the lines that pass the filter, preserving order.
func (f Filter) Apply(lines []*domain.RegistrationLine, asOf time.Time) []*domain.RegistrationLine {
	out := make([]*domain.RegistrationLine, 0, len(lines))
	for _, l := range lines {
		if f.Match(l, asOf) {
			out = append(out, l)
		}
	}
	return out
}
