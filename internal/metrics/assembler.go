package metrics

import (
	"time"

	"github.com/bobmcallan/kessan/internal/common"
	"github.com/bobmcallan/kessan/internal/models"
)

// Assembler builds the persisted documents from raw provider payloads.
// The clock is injectable for tests.
type Assembler struct {
	suffix string
	now    func() time.Time
}

// NewAssembler creates an assembler for the given market suffix.
func NewAssembler(suffix string) *Assembler {
	return &Assembler{suffix: suffix, now: time.Now}
}

// WithClock overrides the assembler clock.
func (a *Assembler) WithClock(now func() time.Time) *Assembler {
	a.now = now
	return a
}

// BuildCompanyRecord assembles the financial document for one company.
// Sections degrade independently: missing statements or dividends leave
// their section empty without failing the record.
func (a *Assembler) BuildCompanyRecord(company models.Company, payload *models.RawCompanyPayload) *models.CompanyRecord {
	record := &models.CompanyRecord{
		Success:     true,
		FetchedAt:   a.now().UTC(),
		Ticker:      company.Code,
		TickerFull:  common.FullTicker(company.Code, a.suffix),
		CompanyName: company.Name,
	}

	if payload.Info != nil {
		if payload.Info.Name != "" {
			record.CompanyName = payload.Info.Name
		}
		record.CompanyInfo = &models.CompanyInfo{
			Name:      payload.Info.Name,
			Sector:    payload.Info.Sector,
			Industry:  payload.Info.Industry,
			Website:   payload.Info.Website,
			MarketCap: payload.Info.MarketCap,
		}
	}

	record.PriceTrend = PriceTrend(NormalizePrices(payload.Prices))
	record.Financials = AlignStatements(payload.Statement)
	record.Dividends = BuildDividendHistory(payload.Dividends)
	return record
}

// BuildAnalystRecord assembles the consensus document for one company.
func (a *Assembler) BuildAnalystRecord(company models.Company, payload models.RawAnalystPayload) *models.AnalystRecord {
	return &models.AnalystRecord{
		Success:         true,
		FetchedAt:       a.now().UTC(),
		Ticker:          company.Code,
		TickerFull:      common.FullTicker(company.Code, a.suffix),
		CompanyName:     company.Name,
		Recommendations: BuildRecommendations(payload.Recommendations),
		TargetPrices:    BuildTargetPrices(payload.Targets),
		EarningsDates:   BuildEarningsCalendar(payload.Earnings, a.now()),
	}
}

// BuildPriceHistory wraps a normalized series in its storage envelope.
func (a *Assembler) BuildPriceHistory(code, period string, points []models.PricePoint) *models.PriceHistory {
	return &models.PriceHistory{
		Code:        code,
		Ticker:      common.FullTicker(code, a.suffix),
		LastUpdated: a.now().UTC(),
		Period:      period,
		DataPoints:  len(points),
		Data:        points,
	}
}

// FailedCompanyRecord marks a financial document as failed so a bad
// company never blocks the rest of a batch.
func (a *Assembler) FailedCompanyRecord(company models.Company, err error) *models.CompanyRecord {
	return &models.CompanyRecord{
		Success:     false,
		Error:       err.Error(),
		FetchedAt:   a.now().UTC(),
		Ticker:      company.Code,
		TickerFull:  common.FullTicker(company.Code, a.suffix),
		CompanyName: company.Name,
		Financials:  models.Financials{Years: []models.StatementYear{}},
		Dividends:   models.DividendHistory{History: []models.DividendYear{}},
	}
}

// FailedAnalystRecord marks a consensus document as failed.
func (a *Assembler) FailedAnalystRecord(company models.Company, err error) *models.AnalystRecord {
	return &models.AnalystRecord{
		Success:     false,
		Error:       err.Error(),
		FetchedAt:   a.now().UTC(),
		Ticker:      company.Code,
		TickerFull:  common.FullTicker(company.Code, a.suffix),
		CompanyName: company.Name,
		EarningsDates: models.EarningsCalendar{
			Past: []models.EarningsEvent{},
		},
	}
}
