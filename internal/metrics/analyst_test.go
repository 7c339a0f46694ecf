package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/kessan/internal/models"
)

func TestBuildRecommendationsFromBuckets(t *testing.T) {
	raw := &models.RawRecommendationCounts{
		StrongBuy:          intPtr(3),
		Buy:                intPtr(4),
		Hold:               intPtr(2),
		Sell:               intPtr(1),
		StrongSell:         intPtr(0),
		RecommendationKey:  "buy",
		RecommendationMean: floatPtr(2.1),
	}

	summary := BuildRecommendations(raw)
	require.True(t, summary.HasData)
	assert.Equal(t, 10, summary.TotalAnalysts)
	assert.Equal(t, "buy", summary.RecommendationKey)
}

func TestBuildRecommendationsSummaryOnly(t *testing.T) {
	raw := &models.RawRecommendationCounts{
		RecommendationKey:  "hold",
		RecommendationMean: floatPtr(2.8),
		TotalAnalysts:      intPtr(7),
	}

	summary := BuildRecommendations(raw)
	require.True(t, summary.HasData)
	assert.Nil(t, summary.StrongBuy)
	assert.Nil(t, summary.Hold)
	assert.Equal(t, 7, summary.TotalAnalysts)
	assert.Equal(t, "hold", summary.RecommendationKey)
}

func TestBuildRecommendationsAbsent(t *testing.T) {
	summary := BuildRecommendations(nil)
	assert.False(t, summary.HasData)
	assert.Zero(t, summary.TotalAnalysts)
}

func TestBuildTargetPrices(t *testing.T) {
	targets := BuildTargetPrices(&models.RawTargetPrices{
		Mean: floatPtr(1500),
		High: floatPtr(1800),
	})
	assert.True(t, targets.HasData)
	require.NotNil(t, targets.Mean)
	assert.Equal(t, 1500.0, *targets.Mean)
	assert.Nil(t, targets.Low)

	assert.False(t, BuildTargetPrices(nil).HasData)
	assert.False(t, BuildTargetPrices(&models.RawTargetPrices{}).HasData)
}

func TestBuildEarningsCalendar(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	raws := []models.RawEarningsDate{
		{Date: day(2025, 8, 5), EPSEstimate: floatPtr(50)},
		{Date: day(2025, 11, 4)},
		{Date: day(2025, 5, 10), EPSEstimate: floatPtr(48), EPSActual: floatPtr(52.8)},
		{Date: day(2025, 2, 7), EPSEstimate: floatPtr(45), EPSActual: floatPtr(44), SurprisePct: floatPtr(-2.22)},
		{Date: day(2024, 11, 5)},
		{Date: day(2024, 8, 6)},
		{Date: day(2024, 5, 9)},
		{Date: day(2024, 2, 8)},
	}

	calendar := BuildEarningsCalendar(raws, now)
	require.True(t, calendar.HasData)

	// Next is the nearest future event, not the furthest.
	require.NotNil(t, calendar.Next)
	assert.Equal(t, "2025-08-05", calendar.Next.Date.Format("2006-01-02"))

	// Past keeps the five most recent, newest first.
	require.Len(t, calendar.Past, 5)
	assert.Equal(t, "2025-05-10", calendar.Past[0].Date.Format("2006-01-02"))
	assert.Equal(t, "2024-05-09", calendar.Past[4].Date.Format("2006-01-02"))

	// Derived surprise when the provider omitted it.
	require.NotNil(t, calendar.Past[0].SurprisePct)
	assert.InDelta(t, 10.0, *calendar.Past[0].SurprisePct, 0.01)

	// Provider-supplied surprise passes through unchanged.
	require.NotNil(t, calendar.Past[1].SurprisePct)
	assert.Equal(t, -2.22, *calendar.Past[1].SurprisePct)
}

func TestBuildEarningsCalendarNoFuture(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	calendar := BuildEarningsCalendar([]models.RawEarningsDate{
		{Date: time.Date(2025, 2, 7, 0, 0, 0, 0, time.UTC)},
	}, now)

	assert.True(t, calendar.HasData)
	assert.Nil(t, calendar.Next)
	assert.Len(t, calendar.Past, 1)
}

func TestBuildEarningsCalendarEmpty(t *testing.T) {
	calendar := BuildEarningsCalendar(nil, time.Now())
	assert.False(t, calendar.HasData)
	assert.Nil(t, calendar.Next)
	assert.Empty(t, calendar.Past)
}

func TestSurprisePctZeroEstimate(t *testing.T) {
	got := surprisePct(models.RawEarningsDate{
		EPSEstimate: floatPtr(0),
		EPSActual:   floatPtr(5),
	})
	assert.Nil(t, got)
}
