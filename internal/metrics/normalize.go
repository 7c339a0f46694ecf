// Package metrics derives trend, statement, dividend, and consensus
// figures from raw provider payloads
package metrics

import (
	"sort"

	"github.com/bobmcallan/kessan/internal/models"
)

// NormalizePrices turns raw provider bars into a canonical daily series:
// ascending by date, one row per date (first kept), rows without a close
// price dropped.
func NormalizePrices(bars []models.RawPriceBar) []models.PricePoint {
	byDate := make(map[models.Date]models.PricePoint, len(bars))
	for _, bar := range bars {
		if bar.Close == nil {
			continue
		}
		date := models.DateOf(bar.Date)
		if _, seen := byDate[date]; seen {
			continue
		}
		byDate[date] = models.PricePoint{
			Date:   date,
			Open:   bar.Open,
			High:   bar.High,
			Low:    bar.Low,
			Close:  *bar.Close,
			Volume: bar.Volume,
		}
	}

	points := make([]models.PricePoint, 0, len(byDate))
	for _, p := range byDate {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date.Time)
	})
	return points
}
