package metrics

import (
	"math"
	"sort"
	"time"

	"github.com/bobmcallan/kessan/internal/models"
)

// maxPastEarnings caps the reported past earnings events.
const maxPastEarnings = 5

// BuildRecommendations summarizes analyst recommendation counts. When
// the provider supplies per-bucket counts the total is their sum; when
// only the summary key/mean came back, the buckets stay null and the
// provider's own total is used if present.
func BuildRecommendations(raw *models.RawRecommendationCounts) models.RecommendationSummary {
	if raw == nil {
		return models.RecommendationSummary{}
	}

	summary := models.RecommendationSummary{
		StrongBuy:          raw.StrongBuy,
		Buy:                raw.Buy,
		Hold:               raw.Hold,
		Sell:               raw.Sell,
		StrongSell:         raw.StrongSell,
		RecommendationKey:  raw.RecommendationKey,
		RecommendationMean: raw.RecommendationMean,
	}

	if hasBuckets(raw) {
		summary.TotalAnalysts = bucketSum(raw)
		summary.HasData = true
		return summary
	}

	if raw.TotalAnalysts != nil {
		summary.TotalAnalysts = *raw.TotalAnalysts
	}
	summary.HasData = raw.RecommendationKey != "" || raw.RecommendationMean != nil
	return summary
}

func hasBuckets(raw *models.RawRecommendationCounts) bool {
	return raw.StrongBuy != nil || raw.Buy != nil || raw.Hold != nil ||
		raw.Sell != nil || raw.StrongSell != nil
}

func bucketSum(raw *models.RawRecommendationCounts) int {
	total := 0
	for _, b := range []*int{raw.StrongBuy, raw.Buy, raw.Hold, raw.Sell, raw.StrongSell} {
		if b != nil {
			total += *b
		}
	}
	return total
}

// BuildTargetPrices carries the price-target distribution through. At
// least one populated field marks the section as having data.
func BuildTargetPrices(raw *models.RawTargetPrices) models.TargetPrices {
	if raw == nil {
		return models.TargetPrices{}
	}
	targets := models.TargetPrices{
		Current: raw.Current,
		High:    raw.High,
		Low:     raw.Low,
		Mean:    raw.Mean,
		Median:  raw.Median,
	}
	targets.HasData = targets.Current != nil || targets.High != nil ||
		targets.Low != nil || targets.Mean != nil || targets.Median != nil
	return targets
}

// BuildEarningsCalendar partitions the earnings-date table at now. The
// next event is the earliest future date; past events keep the most
// recent five, newest first. A missing surprise percentage is derived
// from the estimate and actual when both are present.
func BuildEarningsCalendar(raws []models.RawEarningsDate, now time.Time) models.EarningsCalendar {
	if len(raws) == 0 {
		return models.EarningsCalendar{Past: []models.EarningsEvent{}}
	}

	var future, past []models.EarningsEvent
	for _, raw := range raws {
		event := models.EarningsEvent{
			Date:        models.DateOf(raw.Date),
			EPSEstimate: raw.EPSEstimate,
			EPSActual:   raw.EPSActual,
			SurprisePct: surprisePct(raw),
		}
		if raw.Date.After(now) {
			future = append(future, event)
		} else {
			past = append(past, event)
		}
	}

	sort.Slice(future, func(i, j int) bool {
		return future[i].Date.Before(future[j].Date.Time)
	})
	sort.Slice(past, func(i, j int) bool {
		return past[i].Date.After(past[j].Date.Time)
	})
	if len(past) > maxPastEarnings {
		past = past[:maxPastEarnings]
	}
	if past == nil {
		past = []models.EarningsEvent{}
	}

	calendar := models.EarningsCalendar{Past: past, HasData: true}
	if len(future) > 0 {
		calendar.Next = &future[0]
	}
	return calendar
}

func surprisePct(raw models.RawEarningsDate) *float64 {
	if raw.SurprisePct != nil {
		return raw.SurprisePct
	}
	if raw.EPSEstimate == nil || raw.EPSActual == nil || *raw.EPSEstimate == 0 {
		return nil
	}
	v := round2((*raw.EPSActual - *raw.EPSEstimate) / math.Abs(*raw.EPSEstimate) * 100)
	return &v
}
