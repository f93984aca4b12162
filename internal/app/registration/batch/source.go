package batch

import (
	"context"

	"github.com/light-bringer/classfin-service/internal/app/registration/domain"
)

// Source is an in-memory LineSource backed by a loaded batch. It is read-only after construction.
type Source struct {
	lines      []*domain.RegistrationLine
	promotions []*domain.Promotion
}

// NewSource creates a Source over the given lines and promotions.
func NewSource(lines []*domain.RegistrationLine, promotions []*domain.Promotion) *Source {
	return &Source{
		lines:      append([]*domain.RegistrationLine(nil), lines...),
		promotions: append([]*domain.Promotion(nil), promotions...),
	}
}

// Lines returns a snapshot of all registration lines.
func (s *Source) Lines(ctx context.Context) ([]*domain.RegistrationLine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]*domain.RegistrationLine(nil), s.lines...), nil
}

// Promotions returns a snapshot of the promotion catalogue.
func (s *Source) Promotions(ctx context.Context) ([]*domain.Promotion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]*domain.Promotion(nil), s.promotions...), nil
}
