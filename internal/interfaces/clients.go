// Package interfaces defines service contracts for Kessan
package interfaces

import (
	"context"

	"github.com/bobmcallan/kessan/internal/models"
)

// MarketDataClient provides access to the market-data provider
type MarketDataClient interface {
	// GetPriceHistory retrieves the daily price series and dividend events
	GetPriceHistory(ctx context.Context, symbol string, opts ...HistoryOption) ([]models.RawPriceBar, []models.RawDividendEvent, error)

	// GetCompanyProfile retrieves descriptive company fields
	GetCompanyProfile(ctx context.Context, symbol string) (*models.RawCompanyInfo, error)

	// GetStatements retrieves the annual statement tables
	GetStatements(ctx context.Context, symbol string) (*models.RawStatements, error)

	// GetAnalystData retrieves recommendation counts, price targets, and earnings dates
	GetAnalystData(ctx context.Context, symbol string) (*models.RawAnalystPayload, error)
}

// HistoryOption configures price history requests
type HistoryOption func(*HistoryParams)

// HistoryParams holds price history query parameters
type HistoryParams struct {
	Range    string // e.g. "1y", "5y"
	Interval string // e.g. "1d"
}

// WithRange sets the lookback range for the price history query
func WithRange(r string) HistoryOption {
	return func(p *HistoryParams) {
		p.Range = r
	}
}

// WithInterval sets the bar interval for the price history query
func WithInterval(interval string) HistoryOption {
	return func(p *HistoryParams) {
		p.Interval = interval
	}
}

// RosterClient provides access to the CMS company roster
type RosterClient interface {
	// FetchRoster retrieves the published company roster
	FetchRoster(ctx context.Context) ([]models.Company, error)

	// UpdateCompany pushes a company's document and flattened screening
	// fields back to the CMS
	UpdateCompany(ctx context.Context, company models.Company, fields map[string]any) error
}
