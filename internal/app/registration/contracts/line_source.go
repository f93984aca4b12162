package contracts

import (
	"context"

	"github.com/light-bringer/classfin-service/internal/app/registration/domain"
)

// LineSource supplies registration lines and the promotion catalogue.
// Implementations return already-loaded domain objects; the finance queries never persist.
type LineSource interface {
	// Lines returns every registration line, archived ones included.
	Lines(ctx context.Context) ([]*domain.RegistrationLine, error)

	// Promotions returns the promotion catalogue, inactive promotions included.
	Promotions(ctx context.Context) ([]*domain.Promotion, error)
}
