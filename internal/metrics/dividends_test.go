package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/kessan/internal/models"
)

func TestBuildDividendHistory(t *testing.T) {
	events := []models.RawDividendEvent{
		{Date: time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC), Amount: 50},
		{Date: time.Date(2024, 12, 27, 0, 0, 0, 0, time.UTC), Amount: 45},
		{Date: time.Date(2023, 6, 29, 0, 0, 0, 0, time.UTC), Amount: 40},
		{Date: time.Date(2023, 12, 28, 0, 0, 0, 0, time.UTC), Amount: 40},
	}

	dividends := BuildDividendHistory(events)
	require.True(t, dividends.HasData)
	require.Len(t, dividends.History, 2)

	assert.Equal(t, 2024, dividends.History[0].Year)
	assert.Equal(t, 95.0, dividends.History[0].Amount)
	assert.Equal(t, 2023, dividends.History[1].Year)
	assert.Equal(t, 80.0, dividends.History[1].Amount)

	// Latest is the most recent year's total, not the last single payment.
	require.NotNil(t, dividends.Latest)
	assert.Equal(t, 95.0, *dividends.Latest)
}

func TestBuildDividendHistoryYearCap(t *testing.T) {
	var events []models.RawDividendEvent
	for year := 2017; year <= 2024; year++ {
		events = append(events, models.RawDividendEvent{
			Date:   time.Date(year, 6, 28, 0, 0, 0, 0, time.UTC),
			Amount: 10,
		})
	}

	dividends := BuildDividendHistory(events)
	require.Len(t, dividends.History, 5)
	assert.Equal(t, 2024, dividends.History[0].Year)
	assert.Equal(t, 2020, dividends.History[4].Year)
}

func TestBuildDividendHistoryEmpty(t *testing.T) {
	dividends := BuildDividendHistory(nil)
	assert.False(t, dividends.HasData)
	assert.Empty(t, dividends.History)
	assert.Nil(t, dividends.Latest)
}
