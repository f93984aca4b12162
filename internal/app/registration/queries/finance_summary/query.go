package finance_summary

import (
	"context"
	"fmt"
	"time"

	"github.com/light-bringer/classfin-service/internal/app/registration/contracts"
	"github.com/light-bringer/classfin-service/internal/app/registration/finance"
	"github.com/light-bringer/classfin-service/internal/pkg/clock"
	"github.com/light-bringer/classfin-service/internal/pkg/period"
)

// Request contains the report filters. AsOf defaults to today.
type Request struct {
	contracts.Scope
	AsOf *time.Time
}

// Result is the dashboard summary for the filtered lines.
type Result struct {
	Period period.Range `json:"period"`
	finance.Summary
}

// Query handles the finance summary query use case.
type Query struct {
	source     contracts.LineSource
	aggregator *finance.Aggregator
	clock      clock.Clock
}

// NewQuery creates a new finance summary query.
func NewQuery(source contracts.LineSource, aggregator *finance.Aggregator, clk clock.Clock) *Query {
	return &Query{
		source:     source,
		aggregator: aggregator,
		clock:      clk,
	}
}

// Execute summarises the lines matching the request.
func (q *Query) Execute(ctx context.Context, req *Request) (*Result, error) {
	asOf := clock.Today(q.clock)
	if req.AsOf != nil {
		asOf = clock.Date(*req.AsOf)
	}

	filter, err := req.Filter(asOf)
	if err != nil {
		return nil, err
	}

	lines, err := q.source.Lines(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load lines: %w", err)
	}

	return &Result{
		Period:  filter.Period,
		Summary: q.aggregator.Summarize(filter.Apply(lines, asOf), asOf),
	}, nil
}
