package revenue_breakdown

import (
	"context"
	"fmt"

	"github.com/light-bringer/classfin-service/internal/app/registration/contracts"
	"github.com/light-bringer/classfin-service/internal/app/registration/finance"
	"github.com/light-bringer/classfin-service/internal/pkg/clock"
	"github.com/light-bringer/classfin-service/internal/pkg/period"
)

// Request contains the report filters and the grouping dimension.
type Request struct {
	contracts.Scope
	Dimension string
}

// Result holds one rollup per group plus the overall total.
type Result struct {
	Dimension finance.Dimension `json:"dimension"`
	Period    period.Range      `json:"period"`
	Total     finance.Rollup    `json:"total"`
	Groups    []finance.Group   `json:"groups"`
}

// Query handles the revenue breakdown query use case.
type Query struct {
	source     contracts.LineSource
	aggregator *finance.Aggregator
	clock      clock.Clock
}

// NewQuery creates a new revenue breakdown query.
func NewQuery(source contracts.LineSource, aggregator *finance.Aggregator, clk clock.Clock) *Query {
	return &Query{
		source:     source,
		aggregator: aggregator,
		clock:      clk,
	}
}

// Execute groups the lines matching the request by the requested dimension.
func (q *Query) Execute(ctx context.Context, req *Request) (*Result, error) {
	dim := finance.ByClass
	if req.Dimension != "" {
		d, err := finance.ParseDimension(req.Dimension)
		if err != nil {
			return nil, err
		}
		dim = d
	}

	today := clock.Today(q.clock)
	filter, err := req.Filter(today)
	if err != nil {
		return nil, err
	}

	lines, err := q.source.Lines(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load lines: %w", err)
	}
	lines = filter.Apply(lines, today)

	groups, err := q.aggregator.GroupBy(lines, dim)
	if err != nil {
		return nil, err
	}

	return &Result{
		Dimension: dim,
		Period:    filter.Period,
		Total:     q.aggregator.Aggregate(lines),
		Groups:    groups,
	}, nil
}
