package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bobmcallan/kessan/internal/app"
	"github.com/bobmcallan/kessan/internal/common"
	"github.com/bobmcallan/kessan/internal/interfaces"
	"github.com/bobmcallan/kessan/internal/models"
)

const usage = `kessan - financial metrics derivation pipeline

Usage:
  kessan <command> [flags]

Commands:
  history      refresh daily price history for the roster
  financials   refresh financial documents for the roster
  analyst      refresh analyst consensus documents for the roster
  publish      push stored financial documents to the CMS
  serve        run the scheduler daemon
  version      print version information

Flags:
  -config string   config file path (default: kessan.toml beside the binary)
  -ticker string   process a single company
  -limit int       cap the number of companies processed
  -skip int        skip companies from the front of the roster
  -force           ignore freshness and re-fetch everything
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	command := os.Args[1]

	if command == "version" {
		common.LoadVersionFromFile()
		fmt.Printf("kessan %s (build %s, commit %s)\n",
			common.GetVersion(), common.GetBuild(), common.GetGitCommit())
		return
	}

	flags := flag.NewFlagSet(command, flag.ExitOnError)
	configPath := flags.String("config", "", "config file path")
	ticker := flags.String("ticker", "", "process a single company")
	limit := flags.Int("limit", 0, "cap the number of companies processed")
	skip := flags.Int("skip", 0, "skip companies from the front of the roster")
	force := flags.Bool("force", false, "ignore freshness and re-fetch")
	flags.Parse(os.Args[2:])

	a, err := app.NewApp(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize app: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	opts := interfaces.BatchOptions{
		Ticker: *ticker,
		Limit:  *limit,
		Skip:   *skip,
		Force:  *force,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch command {
	case "history":
		runBatch(a, func() (*models.BatchSummary, error) {
			return a.Collector.CollectHistory(ctx, opts)
		})
	case "financials":
		runBatch(a, func() (*models.BatchSummary, error) {
			return a.Collector.CollectFinancials(ctx, opts)
		})
	case "analyst":
		runBatch(a, func() (*models.BatchSummary, error) {
			return a.Collector.CollectAnalyst(ctx, opts)
		})
	case "publish":
		runBatch(a, func() (*models.BatchSummary, error) {
			return a.Collector.PublishFinancials(ctx, opts)
		})
	case "serve":
		serve(ctx, a)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", command, usage)
		os.Exit(2)
	}
}

func runBatch(a *app.App, run func() (*models.BatchSummary, error)) {
	summary, err := run()
	if err != nil {
		a.Logger.Error().Err(err).Msg("batch failed")
		os.Exit(1)
	}
	if summary.Failed > 0 {
		os.Exit(1)
	}
}

func serve(ctx context.Context, a *app.App) {
	common.PrintBanner(a.Config)

	if err := a.StartScheduler(); err != nil {
		a.Logger.Error().Err(err).Msg("failed to start scheduler")
		os.Exit(1)
	}
	a.Logger.Info().Msg("scheduler running, press Ctrl+C to stop")

	<-ctx.Done()
	a.Logger.Info().Msg("shutdown signal received")
}
