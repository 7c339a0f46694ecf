// Package models defines data structures for Kessan
package models

import (
	"strings"
	"time"
)

// Date is a calendar date serialized as "2006-01-02" in JSON documents.
type Date struct {
	time.Time
}

// NewDate builds a Date from year, month, day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a timestamp to its calendar date.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// MarshalJSON renders the date as "2006-01-02".
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}

// UnmarshalJSON parses "2006-01-02" dates.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// Trend classifies the latest close relative to a moving average.
type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = "neutral"
)

// PricePoint is one day of canonical OHLCV data. The normalizer guarantees
// a close price; the remaining fields may be absent in the provider feed.
type PricePoint struct {
	Date   Date     `json:"date"`
	Open   *float64 `json:"open"`
	High   *float64 `json:"high"`
	Low    *float64 `json:"low"`
	Close  float64  `json:"close"`
	Volume *int64   `json:"volume"`
}

// MovingAverageResult holds one window's moving average and deviation.
// MAValue and Deviation are null when the series is shorter than the window.
type MovingAverageResult struct {
	MAValue   *float64 `json:"ma_value"`
	Deviation *float64 `json:"deviation"`
	Trend     Trend    `json:"trend"`
}

// PriceTrend maps the four standard windows to their results.
type PriceTrend struct {
	MA5   MovingAverageResult `json:"ma_5"`
	MA25  MovingAverageResult `json:"ma_25"`
	MA75  MovingAverageResult `json:"ma_75"`
	MA200 MovingAverageResult `json:"ma_200"`
}

// DerivedRatios holds percentage and multiple ratios computed per statement
// year. Each value is null when an operand is missing or the denominator is
// zero, never defaulted to zero.
type DerivedRatios struct {
	OperatingMargin *float64 `json:"operating_margin"`
	NetMargin       *float64 `json:"net_margin"`
	ROE             *float64 `json:"roe"`
	ROA             *float64 `json:"roa"`
	EquityRatio     *float64 `json:"equity_ratio"`
	DERatio         *float64 `json:"de_ratio"`
	CurrentRatio    *float64 `json:"current_ratio"`
}

// StatementYear is one fiscal year's aligned income/balance/cash-flow
// figures. Absent fields stay null; *_fmt fields carry the human-readable
// rendering used by the published pages.
type StatementYear struct {
	Year int `json:"year"`

	Revenue            *float64 `json:"revenue"`
	RevenueFmt         string   `json:"revenue_fmt"`
	GrossProfit        *float64 `json:"gross_profit"`
	GrossProfitFmt     string   `json:"gross_profit_fmt"`
	OperatingIncome    *float64 `json:"operating_income"`
	OperatingIncomeFmt string   `json:"operating_income_fmt"`
	EBIT               *float64 `json:"ebit"`
	EBITFmt            string   `json:"ebit_fmt"`
	NetIncome          *float64 `json:"net_income"`
	NetIncomeFmt       string   `json:"net_income_fmt"`
	EPS                *float64 `json:"eps"`

	TotalAssets    *float64 `json:"total_assets"`
	TotalAssetsFmt string   `json:"total_assets_fmt"`
	TotalEquity    *float64 `json:"total_equity"`
	TotalEquityFmt string   `json:"total_equity_fmt"`
	TotalDebt      *float64 `json:"total_debt"`
	TotalDebtFmt   string   `json:"total_debt_fmt"`
	TotalCash      *float64 `json:"total_cash"`
	TotalCashFmt   string   `json:"total_cash_fmt"`

	OperatingCF    *float64 `json:"operating_cf"`
	OperatingCFFmt string   `json:"operating_cf_fmt"`
	InvestingCF    *float64 `json:"investing_cf"`
	InvestingCFFmt string   `json:"investing_cf_fmt"`
	FinancingCF    *float64 `json:"financing_cf"`
	FinancingCFFmt string   `json:"financing_cf_fmt"`
	FreeCF         *float64 `json:"free_cf"`
	FreeCFFmt      string   `json:"free_cf_fmt"`

	// Balance-sheet granularity needed for current_ratio only; not part of
	// the published document schema.
	CurrentAssets      *float64 `json:"-"`
	CurrentLiabilities *float64 `json:"-"`

	DerivedRatios
}

// Financials wraps the aligned statement years.
type Financials struct {
	Years   []StatementYear `json:"years"`
	HasData bool            `json:"has_data"`
}

// DividendYear is one fiscal year's summed dividend amount.
type DividendYear struct {
	Year   int     `json:"year"`
	Amount float64 `json:"amount"`
}

// DividendHistory is the per-year dividend rollup, newest first.
// Latest is the total for the most recent year present.
type DividendHistory struct {
	History []DividendYear `json:"history"`
	Latest  *float64       `json:"latest"`
	HasData bool           `json:"has_data"`
}

// CompanyInfo carries descriptive fields from the provider summary.
type CompanyInfo struct {
	Name      string   `json:"name"`
	Sector    string   `json:"sector"`
	Industry  string   `json:"industry"`
	Website   string   `json:"website"`
	MarketCap *float64 `json:"market_cap"`
}

// CompanyRecord is the assembled financial document for one company.
// Optional numerics serialize as JSON null so the schema stays stable
// across companies.
type CompanyRecord struct {
	Success     bool            `json:"success"`
	Error       string          `json:"error,omitempty"`
	FetchedAt   time.Time       `json:"fetched_at"`
	Ticker      string          `json:"ticker"`
	TickerFull  string          `json:"ticker_full"`
	CompanyName string          `json:"company_name"`
	CompanyInfo *CompanyInfo    `json:"company_info"`
	PriceTrend  PriceTrend      `json:"price_trend"`
	Financials  Financials      `json:"financials"`
	Dividends   DividendHistory `json:"dividends"`
}

// RecommendationSummary aggregates analyst recommendation counts.
// Bucket pointers are null when the provider supplied only a key/mean.
type RecommendationSummary struct {
	HasData            bool     `json:"has_data"`
	StrongBuy          *int     `json:"strong_buy"`
	Buy                *int     `json:"buy"`
	Hold               *int     `json:"hold"`
	Sell               *int     `json:"sell"`
	StrongSell         *int     `json:"strong_sell"`
	TotalAnalysts      int      `json:"total_analysts"`
	RecommendationKey  string   `json:"recommendation_key"`
	RecommendationMean *float64 `json:"recommendation_mean"`
}

// TargetPrices holds the analyst price-target distribution.
type TargetPrices struct {
	HasData bool     `json:"has_data"`
	Current *float64 `json:"current"`
	High    *float64 `json:"high"`
	Low     *float64 `json:"low"`
	Mean    *float64 `json:"mean"`
	Median  *float64 `json:"median"`
}

// EarningsEvent is a single earnings date with estimates and results.
type EarningsEvent struct {
	Date        Date     `json:"date"`
	EPSEstimate *float64 `json:"eps_estimate"`
	EPSActual   *float64 `json:"eps_actual"`
	SurprisePct *float64 `json:"surprise_pct"`
}

// EarningsCalendar partitions the earnings-date table at the current time.
type EarningsCalendar struct {
	HasData bool            `json:"has_data"`
	Next    *EarningsEvent  `json:"next_earnings"`
	Past    []EarningsEvent `json:"past_earnings"`
}

// AnalystRecord is the assembled consensus document for one company.
type AnalystRecord struct {
	Success         bool                  `json:"success"`
	Error           string                `json:"error,omitempty"`
	FetchedAt       time.Time             `json:"fetched_at"`
	Ticker          string                `json:"ticker"`
	TickerFull      string                `json:"ticker_full"`
	CompanyName     string                `json:"company_name"`
	Recommendations RecommendationSummary `json:"analyst_recommendations"`
	TargetPrices    TargetPrices          `json:"target_prices"`
	EarningsDates   EarningsCalendar      `json:"earnings_dates"`
}

// PriceHistory is the persisted daily price series for one company.
type PriceHistory struct {
	Code        string       `json:"code"`
	Ticker      string       `json:"ticker"`
	LastUpdated time.Time    `json:"last_updated"`
	Period      string       `json:"period"`
	DataPoints  int          `json:"data_points"`
	Data        []PricePoint `json:"data"`
}
