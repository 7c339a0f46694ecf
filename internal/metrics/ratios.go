package metrics

import "github.com/bobmcallan/kessan/internal/models"

// ComputeRatios derives the per-year ratio set. A ratio is null whenever
// an operand is missing or its denominator is zero; zero is a legitimate
// numerator.
func ComputeRatios(row models.StatementYear) models.DerivedRatios {
	return models.DerivedRatios{
		OperatingMargin: percentOf(row.OperatingIncome, row.Revenue),
		NetMargin:       percentOf(row.NetIncome, row.Revenue),
		ROE:             percentOf(row.NetIncome, row.TotalEquity),
		ROA:             percentOf(row.NetIncome, row.TotalAssets),
		EquityRatio:     percentOf(row.TotalEquity, row.TotalAssets),
		DERatio:         ratioOf(row.TotalDebt, row.TotalEquity),
		CurrentRatio:    ratioOf(row.CurrentAssets, row.CurrentLiabilities),
	}
}

func percentOf(numerator, denominator *float64) *float64 {
	if numerator == nil || denominator == nil || *denominator == 0 {
		return nil
	}
	v := round2(*numerator / *denominator * 100)
	return &v
}

func ratioOf(numerator, denominator *float64) *float64 {
	if numerator == nil || denominator == nil || *denominator == 0 {
		return nil
	}
	v := round2(*numerator / *denominator)
	return &v
}
