package interfaces

import (
	"context"

	"github.com/bobmcallan/kessan/internal/models"
)

// BatchOptions selects and bounds the companies processed in one run.
type BatchOptions struct {
	Ticker string // single company only, overrides Limit/Skip
	Limit  int    // cap on companies processed (0 = all)
	Skip   int    // companies skipped from the front of the roster
	Force  bool   // ignore freshness and re-fetch
}

// CollectorService runs the per-company harvest and derivation pipeline.
type CollectorService interface {
	// CollectHistory refreshes the daily price history dataset.
	CollectHistory(ctx context.Context, opts BatchOptions) (*models.BatchSummary, error)

	// CollectFinancials refreshes the financial document dataset.
	CollectFinancials(ctx context.Context, opts BatchOptions) (*models.BatchSummary, error)

	// CollectAnalyst refreshes the analyst consensus dataset.
	CollectAnalyst(ctx context.Context, opts BatchOptions) (*models.BatchSummary, error)

	// PublishFinancials pushes stored financial documents to the CMS.
	PublishFinancials(ctx context.Context, opts BatchOptions) (*models.BatchSummary, error)

	// ResolveRoster returns the working company roster (CMS first, CSV fallback).
	ResolveRoster(ctx context.Context) ([]models.Company, error)
}
