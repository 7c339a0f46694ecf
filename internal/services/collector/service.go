// Package collector runs the per-company harvest and derivation pipeline.
package collector

import (
	"context"
	"fmt"

	"github.com/bobmcallan/kessan/internal/common"
	"github.com/bobmcallan/kessan/internal/interfaces"
	"github.com/bobmcallan/kessan/internal/metrics"
	"github.com/bobmcallan/kessan/internal/models"
)

// Service implements the CollectorService interface.
type Service struct {
	config    *common.Config
	market    interfaces.MarketDataClient
	roster    interfaces.RosterClient
	store     interfaces.RecordStore
	assembler *metrics.Assembler
	logger    *common.Logger
}

// NewService creates a collector service.
func NewService(
	config *common.Config,
	market interfaces.MarketDataClient,
	roster interfaces.RosterClient,
	store interfaces.RecordStore,
	logger *common.Logger,
) *Service {
	return &Service{
		config:    config,
		market:    market,
		roster:    roster,
		store:     store,
		assembler: metrics.NewAssembler(config.Roster.MarketSuffix),
		logger:    logger,
	}
}

// ResolveRoster returns the working company roster. The CMS is the
// source of truth; a successful fetch refreshes the CSV fallback, and a
// failed one falls back to the last saved CSV.
func (s *Service) ResolveRoster(ctx context.Context) ([]models.Company, error) {
	if s.roster != nil {
		companies, err := s.roster.FetchRoster(ctx)
		if err == nil && len(companies) > 0 {
			if s.config.Roster.CSVPath != "" {
				if err := s.store.WriteRosterCSV(s.config.Roster.CSVPath, companies); err != nil {
					s.logger.Warn().Err(err).Msg("failed to refresh roster CSV")
				}
			}
			return companies, nil
		}
		if err != nil {
			s.logger.Warn().Err(err).Msg("CMS roster unavailable, trying CSV fallback")
		}
	}

	if s.config.Roster.CSVPath == "" {
		return nil, fmt.Errorf("no roster source available")
	}
	return s.store.ReadRosterCSV(s.config.Roster.CSVPath)
}

// selectCompanies applies the batch ticker/skip/limit selection.
func selectCompanies(companies []models.Company, opts interfaces.BatchOptions) []models.Company {
	if opts.Ticker != "" {
		code := common.NormalizeCode(opts.Ticker)
		for _, c := range companies {
			if c.Code == code {
				return []models.Company{c}
			}
		}
		// Unknown to the roster, still processable on its own.
		return []models.Company{{Code: code}}
	}

	if opts.Skip > 0 {
		if opts.Skip >= len(companies) {
			return nil
		}
		companies = companies[opts.Skip:]
	}
	if opts.Limit > 0 && opts.Limit < len(companies) {
		companies = companies[:opts.Limit]
	}
	return companies
}

// Ensure Service implements CollectorService
var _ interfaces.CollectorService = (*Service)(nil)
