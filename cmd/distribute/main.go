// Command distribute previews or runs a dividend distribution from the command line.
//
//	distribute -project <uuid> [-amount 125.50] [-dry-run]
//	distribute -all
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/app"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/config"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/logging"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/scheduler"
)

func main() {
	projectID := flag.String("project", "", "project ID to distribute for")
	amount := flag.String("amount", "", "revenue amount to distribute (defaults to all pending revenue)")
	dryRun := flag.Bool("dry-run", false, "print the allocation without persisting anything")
	all := flag.Bool("all", false, "distribute pending revenue for every project once")
	timeout := flag.Duration("timeout", 5*time.Minute, "maximum run time")
	flag.Parse()

	if *all == (*projectID != "") {
		fmt.Fprintln(os.Stderr, "exactly one of -project or -all is required")
		flag.Usage()
		os.Exit(2)
	}
	if *projectID != "" {
		if _, err := uuid.Parse(*projectID); err != nil {
			log.Fatalf("invalid project ID %q: %v", *projectID, err)
		}
	}

	var revenue *decimal.Decimal
	if *amount != "" {
		d, err := decimal.NewFromString(*amount)
		if err != nil {
			log.Fatalf("invalid amount %q: %v", *amount, err)
		}
		revenue = &d
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(logging.Config{Level: cfg.Log.Level, Encoding: "console", File: cfg.Log.File})
	defer logger.Sync() //nolint:errcheck // nothing useful to do on exit

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, cfg, logger, *projectID, revenue, *dryRun, *all); err != nil {
		logger.Error("distribution failed", zap.Error(err))
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger, projectID string, revenue *decimal.Decimal, dryRun, all bool) error {
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	if all {
		summary, err := scheduler.NewDividendJob(a.ProjectService, a.DividendService, logger).Run(ctx)
		if err != nil {
			return err
		}
		return printJSON(summary)
	}

	if dryRun {
		calc, err := a.DividendService.CalculateDividends(ctx, projectID, revenue)
		if err != nil {
			return err
		}
		return printJSON(calc)
	}

	result, err := a.DividendService.DistributeDividends(ctx, projectID, revenue)
	if err != nil {
		return err
	}
	return printJSON(result)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
