package collector

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bobmcallan/kessan/internal/interfaces"
	"github.com/bobmcallan/kessan/internal/models"
)

// PublishFinancials pushes stored financial documents back to the CMS.
// Each post receives the full document plus flattened latest-year
// fields for template rendering and screening queries.
func (s *Service) PublishFinancials(ctx context.Context, opts interfaces.BatchOptions) (*models.BatchSummary, error) {
	if s.roster == nil {
		return nil, fmt.Errorf("no CMS client configured")
	}

	companies, err := s.ResolveRoster(ctx)
	if err != nil {
		return nil, err
	}
	companies = selectCompanies(companies, opts)

	return s.runBatch(ctx, "publish", companies, func(ctx context.Context, company models.Company) outcome {
		record, err := s.store.GetFinancialRecord(ctx, company.Code)
		if err != nil {
			s.logger.Warn().Str("code", company.Code).Msg("no financial record to publish")
			return outcomeSkipped
		}
		if !record.Success {
			return outcomeSkipped
		}

		fields, err := publishFields(record, s.analystRecordFor(ctx, company.Code))
		if err != nil {
			s.logger.Error().Err(err).Str("code", company.Code).Msg("failed to build publish fields")
			return outcomeFailed
		}

		if err := s.roster.UpdateCompany(ctx, company, fields); err != nil {
			s.logger.Warn().Err(err).Str("code", company.Code).Msg("CMS update failed")
			return outcomeFailed
		}
		return outcomeSucceeded
	})
}

func (s *Service) analystRecordFor(ctx context.Context, code string) *models.AnalystRecord {
	record, err := s.store.GetAnalystRecord(ctx, code)
	if err != nil || !record.Success {
		return nil
	}
	return record
}

// publishFields flattens a record into CMS meta fields alongside the
// full document JSON.
func publishFields(record *models.CompanyRecord, analyst *models.AnalystRecord) (map[string]any, error) {
	doc, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal financial document: %w", err)
	}

	fields := map[string]any{
		"financial_data":        string(doc),
		"financials_fetched_at": record.FetchedAt.Format("2006-01-02"),
		"financials_has_data":   record.Financials.HasData,
		"price_trend_ma25":      string(record.PriceTrend.MA25.Trend),
		"price_trend_ma75":      string(record.PriceTrend.MA75.Trend),
	}

	if len(record.Financials.Years) > 0 {
		latest := record.Financials.Years[0]
		fields["latest_fiscal_year"] = latest.Year
		fields["latest_revenue"] = latest.RevenueFmt
		fields["latest_operating_income"] = latest.OperatingIncomeFmt
		fields["latest_net_income"] = latest.NetIncomeFmt
		if latest.ROE != nil {
			fields["latest_roe"] = *latest.ROE
		}
		if latest.EquityRatio != nil {
			fields["latest_equity_ratio"] = *latest.EquityRatio
		}
	}

	if record.Dividends.Latest != nil {
		fields["latest_dividend"] = *record.Dividends.Latest
	}

	if analyst != nil {
		if analyst.Recommendations.HasData {
			fields["recommendation_key"] = analyst.Recommendations.RecommendationKey
			fields["total_analysts"] = analyst.Recommendations.TotalAnalysts
		}
		if analyst.TargetPrices.HasData && analyst.TargetPrices.Mean != nil {
			fields["target_mean_price"] = *analyst.TargetPrices.Mean
		}
	}

	return fields, nil
}
