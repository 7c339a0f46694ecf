package metrics

import (
	"sort"

	"github.com/bobmcallan/kessan/internal/models"
)

// maxDividendYears caps the reported dividend history.
const maxDividendYears = 5

// BuildDividendHistory rolls dividend events up to per-year totals,
// newest year first, at most five years. Latest is the total for the
// most recent year, so a company paying interim and final dividends
// reports the full-year sum.
func BuildDividendHistory(events []models.RawDividendEvent) models.DividendHistory {
	if len(events) == 0 {
		return models.DividendHistory{History: []models.DividendYear{}}
	}

	totals := make(map[int]float64)
	for _, ev := range events {
		totals[ev.Date.Year()] += ev.Amount
	}

	history := make([]models.DividendYear, 0, len(totals))
	for year, amount := range totals {
		history = append(history, models.DividendYear{Year: year, Amount: round2(amount)})
	}
	sort.Slice(history, func(i, j int) bool {
		return history[i].Year > history[j].Year
	})
	if len(history) > maxDividendYears {
		history = history[:maxDividendYears]
	}

	latest := history[0].Amount
	return models.DividendHistory{
		History: history,
		Latest:  &latest,
		HasData: true,
	}
}
