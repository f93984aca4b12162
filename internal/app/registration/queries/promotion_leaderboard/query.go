package promotion_leaderboard

import (
	"context"
	"fmt"

	"github.com/light-bringer/classfin-service/internal/app/registration/contracts"
	"github.com/light-bringer/classfin-service/internal/app/registration/domain"
	"github.com/light-bringer/classfin-service/internal/app/registration/finance"
	"github.com/light-bringer/classfin-service/internal/pkg/clock"
)

// Request contains the report filters. Inactive promotions are left out unless asked for.
type Request struct {
	contracts.Scope
	IncludeInactive bool
}

// Query handles the promotion leaderboard query use case.
type Query struct {
	source     contracts.LineSource
	aggregator *finance.Aggregator
	clock      clock.Clock
}

// NewQuery creates a new promotion leaderboard query.
func NewQuery(source contracts.LineSource, aggregator *finance.Aggregator, clk clock.Clock) *Query {
	return &Query{
		source:     source,
		aggregator: aggregator,
		clock:      clk,
	}
}

// Execute ranks promotions by the revenue of the lines matching the request.
func (q *Query) Execute(ctx context.Context, req *Request) ([]finance.PromotionRow, error) {
	today := clock.Today(q.clock)
	filter, err := req.Filter(today)
	if err != nil {
		return nil, err
	}

	promotions, err := q.source.Promotions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load promotions: %w", err)
	}
	lines, err := q.source.Lines(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load lines: %w", err)
	}

	if !req.IncludeInactive {
		active := make([]*domain.Promotion, 0, len(promotions))
		for _, p := range promotions {
			if p.IsActive() {
				active = append(active, p)
			}
		}
		promotions = active
	}

	return q.aggregator.Leaderboard(promotions, filter.Apply(lines, today)), nil
}
