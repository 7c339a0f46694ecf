package models

import "time"

// Raw provider payloads. Every field is optional: the provider omits,
// renames, or nulls fields freely, and the metrics engine treats absent
// and zero as distinct.

// RawPriceBar is one uncleaned row of the provider price table.
type RawPriceBar struct {
	Date   time.Time
	Open   *float64
	High   *float64
	Low    *float64
	Close  *float64
	Volume *int64
}

// RawStatementTable maps a provider field name to per-fiscal-year values.
// Field names vary across provider versions; the statement aligner resolves
// them through its alias table.
type RawStatementTable map[string]map[int]float64

// Set records a value for a field/year pair, allocating as needed.
func (t RawStatementTable) Set(field string, year int, value float64) {
	byYear, ok := t[field]
	if !ok {
		byYear = make(map[int]float64)
		t[field] = byYear
	}
	byYear[year] = value
}

// RawStatements groups the three statement tables from the provider.
type RawStatements struct {
	Income   RawStatementTable
	Balance  RawStatementTable
	CashFlow RawStatementTable
}

// RawDividendEvent is a single dividend payment.
type RawDividendEvent struct {
	Date   time.Time
	Amount float64
}

// RawRecommendationCounts carries the analyst recommendation buckets and
// the provider's own summary key/mean. Buckets are nil when the provider
// returned only the summary fields.
type RawRecommendationCounts struct {
	StrongBuy          *int
	Buy                *int
	Hold               *int
	Sell               *int
	StrongSell         *int
	RecommendationKey  string
	RecommendationMean *float64
	TotalAnalysts      *int // provider-supplied count, used only when buckets are absent
}

// RawTargetPrices is the analyst price-target distribution.
type RawTargetPrices struct {
	Current *float64
	High    *float64
	Low     *float64
	Mean    *float64
	Median  *float64
}

// RawEarningsDate is one row of the provider earnings-date table.
type RawEarningsDate struct {
	Date        time.Time
	EPSEstimate *float64
	EPSActual   *float64
	SurprisePct *float64
}

// RawCompanyInfo is the descriptive slice of the provider summary payload.
type RawCompanyInfo struct {
	Name         string
	Sector       string
	Industry     string
	Website      string
	MarketCap    *float64
	CurrentPrice *float64
}

// RawAnalystPayload groups the three independent analyst inputs. Any of
// them may be nil/empty without blocking assembly of the others.
type RawAnalystPayload struct {
	Recommendations *RawRecommendationCounts
	Targets         *RawTargetPrices
	Earnings        []RawEarningsDate
}

// RawCompanyPayload is everything fetched for one company in one run.
type RawCompanyPayload struct {
	Code      string
	Info      *RawCompanyInfo
	Prices    []RawPriceBar
	Statement RawStatements
	Dividends []RawDividendEvent
	Analyst   RawAnalystPayload
}
