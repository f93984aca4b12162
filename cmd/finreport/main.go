package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/light-bringer/classfin-service/internal/app/registration/contracts"
	"github.com/light-bringer/classfin-service/internal/app/registration/queries/ar_aging"
	"github.com/light-bringer/classfin-service/internal/app/registration/queries/finance_summary"
	"github.com/light-bringer/classfin-service/internal/app/registration/queries/promotion_leaderboard"
	"github.com/light-bringer/classfin-service/internal/app/registration/queries/revenue_breakdown"
	"github.com/light-bringer/classfin-service/internal/config"
	"github.com/light-bringer/classfin-service/internal/services"
)

// Reports
const (
	reportSummary     = "summary"
	reportAging       = "aging"
	reportBreakdown   = "breakdown"
	reportLeaderboard = "leaderboard"
)

var errUsage = errors.New("usage: finreport [flags] summary|aging|breakdown|leaderboard")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "finreport: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configPath      string
	input           string
	dimension       string
	asOf            string
	includeInactive bool
	scope           contracts.Scope
	start, end      string
}

func parseFlags(args []string, stderr io.Writer) (*options, string, error) {
	fs := flag.NewFlagSet("finreport", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.StringVar(&opts.configPath, "config", "", "config file (defaults to ./.env when present)")
	fs.StringVar(&opts.input, "input", "", "registration batch YAML, overrides FINREPORT_INPUT")
	fs.StringVar(&opts.dimension, "by", "", "breakdown dimension: class, company, channel, participant_type, month")
	fs.StringVar(&opts.asOf, "as-of", "", "report date YYYY-MM-DD (summary, aging)")
	fs.BoolVar(&opts.includeInactive, "include-inactive", false, "list inactive promotions on the leaderboard")
	fs.StringVar(&opts.scope.ClassID, "class", "", "only this class id")
	fs.StringVar(&opts.scope.Segment, "segment", "", "corporate or individual")
	fs.StringVar(&opts.scope.Channel, "channel", "", "only this channel")
	fs.StringVar(&opts.scope.Status, "status", "", "paid, pending, overdue or no_document")
	fs.StringVar(&opts.scope.Preset, "period", "", "this_month, last_month, this_quarter or this_year")
	fs.StringVar(&opts.start, "start", "", "period start YYYY-MM-DD")
	fs.StringVar(&opts.end, "end", "", "period end YYYY-MM-DD")
	fs.BoolVar(&opts.scope.IncludeArchived, "include-archived", false, "include archived registrations")

	if err := fs.Parse(args); err != nil {
		return nil, "", err
	}
	if fs.NArg() != 1 {
		return nil, "", errUsage
	}

	var err error
	if opts.scope.Start, err = parseDay(opts.start); err != nil {
		return nil, "", err
	}
	if opts.scope.End, err = parseDay(opts.end); err != nil {
		return nil, "", err
	}
	return opts, fs.Arg(0), nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// 1. Parse flags and load configuration
	opts, report, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.input != "" {
		cfg.Input = opts.input
	}

	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewJSONHandler(stderr, &slog.HandlerOptions{Level: level})).With("service", "finreport")

	logger.Info("starting report",
		"report", report,
		"input", cfg.Input,
		"vat_percent", cfg.VATPercent,
	)

	// 2. Initialize service dependencies (DI container)
	svc, err := services.NewServiceOptions(ctx, cfg, logger, nil)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}

	// 3. Run the report
	result, err := execute(ctx, svc, report, opts)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	logger.Debug("report written", "report", report)
	return nil
}

func execute(ctx context.Context, svc *services.ServiceOptions, report string, opts *options) (any, error) {
	asOf, err := parseDay(opts.asOf)
	if err != nil {
		return nil, err
	}

	switch report {
	case reportSummary:
		return svc.FinanceSummary.Execute(ctx, &finance_summary.Request{Scope: opts.scope, AsOf: asOf})
	case reportAging:
		return svc.ARAging.Execute(ctx, &ar_aging.Request{Scope: opts.scope, AsOf: asOf})
	case reportBreakdown:
		return svc.RevenueBreakdown.Execute(ctx, &revenue_breakdown.Request{Scope: opts.scope, Dimension: opts.dimension})
	case reportLeaderboard:
		return svc.PromotionLeaderboard.Execute(ctx, &promotion_leaderboard.Request{
			Scope:           opts.scope,
			IncludeInactive: opts.includeInactive,
		})
	}
	return nil, fmt.Errorf("unknown report %q: %w", report, errUsage)
}

func parseDay(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return &t, nil
}
