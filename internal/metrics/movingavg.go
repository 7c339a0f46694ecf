package metrics

import (
	"math"

	"github.com/bobmcallan/kessan/internal/models"
)

// Standard moving average windows in trading days.
const (
	WindowShort    = 5
	WindowMonth    = 25
	WindowQuarter  = 75
	WindowLongTerm = 200
)

// MovingAverage computes the simple moving average over the most recent
// window of an ascending series, the percentage deviation of the latest
// close from it, and the trend classification. Both values are rounded to
// two decimals. A series shorter than the window yields nulls and a
// neutral trend.
func MovingAverage(points []models.PricePoint, window int) models.MovingAverageResult {
	if window <= 0 || len(points) < window {
		return models.MovingAverageResult{Trend: models.TrendNeutral}
	}

	sum := 0.0
	for i := len(points) - window; i < len(points); i++ {
		sum += points[i].Close
	}
	ma := sum / float64(window)
	if ma == 0 {
		return models.MovingAverageResult{Trend: models.TrendNeutral}
	}

	current := points[len(points)-1].Close
	deviation := round2((current - ma) / ma * 100)
	maValue := round2(ma)

	trend := models.TrendNeutral
	switch {
	case deviation > 0:
		trend = models.TrendUp
	case deviation < 0:
		trend = models.TrendDown
	}

	return models.MovingAverageResult{
		MAValue:   &maValue,
		Deviation: &deviation,
		Trend:     trend,
	}
}

// PriceTrend evaluates the four standard windows over an ascending series.
func PriceTrend(points []models.PricePoint) models.PriceTrend {
	return models.PriceTrend{
		MA5:   MovingAverage(points, WindowShort),
		MA25:  MovingAverage(points, WindowMonth),
		MA75:  MovingAverage(points, WindowQuarter),
		MA200: MovingAverage(points, WindowLongTerm),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
