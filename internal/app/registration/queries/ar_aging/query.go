package ar_aging

import (
	"context"
	"fmt"
	"time"

	"github.com/light-bringer/classfin-service/internal/app/registration/aging"
	"github.com/light-bringer/classfin-service/internal/app/registration/contracts"
	"github.com/light-bringer/classfin-service/internal/pkg/clock"
)

// Request contains the report filters. AsOf defaults to today.
type Request struct {
	contracts.Scope
	AsOf *time.Time
}

// Query handles the accounts receivable aging query use case.
type Query struct {
	source   contracts.LineSource
	bucketer *aging.Bucketer
	clock    clock.Clock
}

// NewQuery creates a new AR aging query.
func NewQuery(source contracts.LineSource, bucketer *aging.Bucketer, clk clock.Clock) *Query {
	return &Query{
		source:   source,
		bucketer: bucketer,
		clock:    clk,
	}
}

// Execute buckets the outstanding balance of the lines matching the request.
func (q *Query) Execute(ctx context.Context, req *Request) (*aging.Report, error) {
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

	report := q.bucketer.Age(filter.Apply(lines, asOf), asOf)
	return &report, nil
}
