package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/light-bringer/classfin-service/internal/app/registration/aging"
	"github.com/light-bringer/classfin-service/internal/app/registration/batch"
	"github.com/light-bringer/classfin-service/internal/app/registration/contracts"
	"github.com/light-bringer/classfin-service/internal/app/registration/domain"
	"github.com/light-bringer/classfin-service/internal/app/registration/finance"
	"github.com/light-bringer/classfin-service/internal/app/registration/queries/ar_aging"
	"github.com/light-bringer/classfin-service/internal/app/registration/queries/finance_summary"
	"github.com/light-bringer/classfin-service/internal/app/registration/queries/promotion_leaderboard"
	"github.com/light-bringer/classfin-service/internal/app/registration/queries/revenue_breakdown"
	"github.com/light-bringer/classfin-service/internal/config"
	"github.com/light-bringer/classfin-service/internal/pkg/clock"
)

// ErrNoInput is returned when neither a source nor FINREPORT_INPUT is provided.
var ErrNoInput = errors.New("no input batch configured (set FINREPORT_INPUT)")

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	Clock  clock.Clock
	Source contracts.LineSource

	FinanceSummary       *finance_summary.Query
	ARAging              *ar_aging.Query
	RevenueBreakdown     *revenue_breakdown.Query
	PromotionLeaderboard *promotion_leaderboard.Query
}

// NewServiceOptions creates and wires up all application dependencies.
// The batch at cfg.Input is loaded unless source is given.
func NewServiceOptions(ctx context.Context, cfg *config.Config, logger *slog.Logger, source contracts.LineSource) (*ServiceOptions, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 1. Create infrastructure components
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	clk := clock.NewRealClock(loc)

	// 2. Load registrations
	if source == nil {
		if cfg.Input == "" {
			return nil, ErrNoInput
		}
		src, err := batch.LoadFile(cfg.Input, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to load batch: %w", err)
		}
		source = src
	}

	return NewServiceOptionsWithSource(cfg, clk, source)
}

// NewServiceOptionsWithSource wires the finance queries over an existing source and clock.
func NewServiceOptionsWithSource(cfg *config.Config, clk clock.Clock, source contracts.LineSource) (*ServiceOptions, error) {
	// 3. Create pricing components
	calc, err := domain.NewPricingCalculatorWithVAT(cfg.VAT())
	if err != nil {
		return nil, fmt.Errorf("failed to create pricing calculator: %w", err)
	}
	aggregator := finance.NewAggregator(calc)
	bucketer := aging.NewBucketer(calc)

	// 4. Create query use cases
	return &ServiceOptions{
		Clock:                clk,
		Source:               source,
		FinanceSummary:       finance_summary.NewQuery(source, aggregator, clk),
		ARAging:              ar_aging.NewQuery(source, bucketer, clk),
		RevenueBreakdown:     revenue_breakdown.NewQuery(source, aggregator, clk),
		PromotionLeaderboard: promotion_leaderboard.NewQuery(source, aggregator, clk),
	}, nil
}
