package collector

import (
	"context"

	"github.com/bobmcallan/kessan/internal/common"
	"github.com/bobmcallan/kessan/internal/interfaces"
	"github.com/bobmcallan/kessan/internal/metrics"
	"github.com/bobmcallan/kessan/internal/models"
)

const historyRange = "5y"

// CollectHistory refreshes the daily price history dataset.
func (s *Service) CollectHistory(ctx context.Context, opts interfaces.BatchOptions) (*models.BatchSummary, error) {
	companies, err := s.ResolveRoster(ctx)
	if err != nil {
		return nil, err
	}
	companies = selectCompanies(companies, opts)

	return s.runBatch(ctx, "history", companies, func(ctx context.Context, company models.Company) outcome {
		if !opts.Force {
			if existing, err := s.store.GetPriceHistory(ctx, company.Code); err == nil &&
				common.IsFresh(existing.LastUpdated, common.FreshnessHistory) {
				return outcomeSkipped
			}
		}

		symbol := common.FullTicker(company.Code, s.config.Roster.MarketSuffix)
		bars, _, err := s.market.GetPriceHistory(ctx, symbol, interfaces.WithRange(historyRange))
		if err != nil {
			s.logger.Warn().Err(err).Str("code", company.Code).Msg("price history fetch failed")
			return outcomeFailed
		}

		points := metrics.NormalizePrices(bars)
		if len(points) == 0 {
			s.logger.Warn().Str("code", company.Code).Msg("no usable price data")
			return outcomeFailed
		}

		history := s.assembler.BuildPriceHistory(company.Code, historyRange, points)
		if err := s.store.SavePriceHistory(ctx, history); err != nil {
			s.logger.Error().Err(err).Str("code", company.Code).Msg("price history save failed")
			return outcomeFailed
		}
		return outcomeSucceeded
	})
}

// CollectFinancials refreshes the financial document dataset. Each
// company gets a document even on failure so downstream consumers see a
// stable file set.
func (s *Service) CollectFinancials(ctx context.Context, opts interfaces.BatchOptions) (*models.BatchSummary, error) {
	companies, err := s.ResolveRoster(ctx)
	if err != nil {
		return nil, err
	}
	companies = selectCompanies(companies, opts)

	return s.runBatch(ctx, "financials", companies, func(ctx context.Context, company models.Company) outcome {
		if !opts.Force {
			if existing, err := s.store.GetFinancialRecord(ctx, company.Code); err == nil &&
				existing.Success && common.IsFresh(existing.FetchedAt, common.FreshnessFinancials) {
				return outcomeSkipped
			}
		}

		payload, err := s.fetchCompanyPayload(ctx, company)
		if err != nil {
			s.logger.Warn().Err(err).Str("code", company.Code).Msg("financials fetch failed")
			record := s.assembler.FailedCompanyRecord(company, err)
			if saveErr := s.store.SaveFinancialRecord(ctx, record); saveErr != nil {
				s.logger.Error().Err(saveErr).Str("code", company.Code).Msg("failure record save failed")
			}
			return outcomeFailed
		}

		record := s.assembler.BuildCompanyRecord(company, payload)
		if err := s.store.SaveFinancialRecord(ctx, record); err != nil {
			s.logger.Error().Err(err).Str("code", company.Code).Msg("financial record save failed")
			return outcomeFailed
		}
		return outcomeSucceeded
	})
}

// CollectAnalyst refreshes the analyst consensus dataset.
func (s *Service) CollectAnalyst(ctx context.Context, opts interfaces.BatchOptions) (*models.BatchSummary, error) {
	companies, err := s.ResolveRoster(ctx)
	if err != nil {
		return nil, err
	}
	companies = selectCompanies(companies, opts)

	return s.runBatch(ctx, "analyst", companies, func(ctx context.Context, company models.Company) outcome {
		if !opts.Force {
			if existing, err := s.store.GetAnalystRecord(ctx, company.Code); err == nil &&
				existing.Success && common.IsFresh(existing.FetchedAt, common.FreshnessAnalyst) {
				return outcomeSkipped
			}
		}

		symbol := common.FullTicker(company.Code, s.config.Roster.MarketSuffix)
		payload, err := s.market.GetAnalystData(ctx, symbol)
		if err != nil {
			s.logger.Warn().Err(err).Str("code", company.Code).Msg("analyst fetch failed")
			record := s.assembler.FailedAnalystRecord(company, err)
			if saveErr := s.store.SaveAnalystRecord(ctx, record); saveErr != nil {
				s.logger.Error().Err(saveErr).Str("code", company.Code).Msg("failure record save failed")
			}
			return outcomeFailed
		}

		record := s.assembler.BuildAnalystRecord(company, *payload)
		if err := s.store.SaveAnalystRecord(ctx, record); err != nil {
			s.logger.Error().Err(err).Str("code", company.Code).Msg("analyst record save failed")
			return outcomeFailed
		}
		return outcomeSucceeded
	})
}

// fetchCompanyPayload gathers the inputs for one financial document.
// Prices, statements, and profile degrade independently; only a total
// miss fails the company.
func (s *Service) fetchCompanyPayload(ctx context.Context, company models.Company) (*models.RawCompanyPayload, error) {
	symbol := common.FullTicker(company.Code, s.config.Roster.MarketSuffix)

	payload := &models.RawCompanyPayload{
		Code: company.Code,
		Statement: models.RawStatements{
			Income:   models.RawStatementTable{},
			Balance:  models.RawStatementTable{},
			CashFlow: models.RawStatementTable{},
		},
	}

	bars, dividends, priceErr := s.market.GetPriceHistory(ctx, symbol, interfaces.WithRange("5y"))
	if priceErr == nil {
		payload.Prices = bars
		payload.Dividends = dividends
	}

	statements, stmtErr := s.market.GetStatements(ctx, symbol)
	if stmtErr == nil && statements != nil {
		payload.Statement = *statements
	}

	info, infoErr := s.market.GetCompanyProfile(ctx, symbol)
	if infoErr == nil {
		payload.Info = info
	}

	if priceErr != nil && stmtErr != nil && infoErr != nil {
		return nil, priceErr
	}
	return payload, nil
}
