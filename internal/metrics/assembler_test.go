package metrics

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/kessan/internal/models"
)

func fixedClock() func() time.Time {
	at := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func TestBuildCompanyRecord(t *testing.T) {
	assembler := NewAssembler(".T").WithClock(fixedClock())

	statements := newRawStatements()
	statements.Income.Set("Total Revenue", 2024, 5e11)

	payload := &models.RawCompanyPayload{
		Code: "7203",
		Info: &models.RawCompanyInfo{
			Name:      "Toyota Motor Corporation",
			Sector:    "Consumer Cyclical",
			MarketCap: floatPtr(4.5e13),
		},
		Prices: []models.RawPriceBar{
			{Date: time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC), Close: floatPtr(2800)},
		},
		Statement: statements,
		Dividends: []models.RawDividendEvent{
			{Date: time.Date(2024, 9, 27, 0, 0, 0, 0, time.UTC), Amount: 40},
		},
	}

	record := assembler.BuildCompanyRecord(models.Company{Code: "7203", Name: "Roster Name"}, payload)

	assert.True(t, record.Success)
	assert.Equal(t, "7203", record.Ticker)
	assert.Equal(t, "7203.T", record.TickerFull)
	assert.Equal(t, "Toyota Motor Corporation", record.CompanyName, "provider name wins over roster")
	require.NotNil(t, record.CompanyInfo)
	assert.Equal(t, "Consumer Cyclical", record.CompanyInfo.Sector)
	assert.True(t, record.Financials.HasData)
	assert.True(t, record.Dividends.HasData)
	// One bar cannot fill any window.
	assert.Nil(t, record.PriceTrend.MA5.MAValue)
}

func TestBuildCompanyRecordRosterNameFallback(t *testing.T) {
	assembler := NewAssembler(".T").WithClock(fixedClock())
	record := assembler.BuildCompanyRecord(
		models.Company{Code: "6758", Name: "Sony Group"},
		&models.RawCompanyPayload{Code: "6758", Statement: newRawStatements()},
	)
	assert.Equal(t, "Sony Group", record.CompanyName)
	assert.Nil(t, record.CompanyInfo)
}

func TestBuildAnalystRecord(t *testing.T) {
	assembler := NewAssembler(".T").WithClock(fixedClock())
	record := assembler.BuildAnalystRecord(models.Company{Code: "7203", Name: "Toyota"}, models.RawAnalystPayload{
		Recommendations: &models.RawRecommendationCounts{
			StrongBuy: intPtr(5),
			Buy:       intPtr(5),
		},
	})

	assert.True(t, record.Success)
	assert.Equal(t, "7203.T", record.TickerFull)
	assert.Equal(t, 10, record.Recommendations.TotalAnalysts)
	assert.False(t, record.TargetPrices.HasData)
	assert.False(t, record.EarningsDates.HasData)
}

func TestFailedRecordsKeepStableSchema(t *testing.T) {
	assembler := NewAssembler(".T").WithClock(fixedClock())
	record := assembler.FailedCompanyRecord(models.Company{Code: "9999", Name: "Ghost"}, errors.New("no data"))

	assert.False(t, record.Success)
	assert.Equal(t, "no data", record.Error)

	// A failed record still serializes with empty sections, not missing keys.
	data, err := json.Marshal(record)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"years":[]`)
	assert.Contains(t, string(data), `"history":[]`)
}

func TestBuildPriceHistory(t *testing.T) {
	assembler := NewAssembler(".T").WithClock(fixedClock())
	points := generatePoints([]float64{100, 101, 102})

	history := assembler.BuildPriceHistory("7203", "1y", points)
	assert.Equal(t, "7203", history.Code)
	assert.Equal(t, "7203.T", history.Ticker)
	assert.Equal(t, "1y", history.Period)
	assert.Equal(t, 3, history.DataPoints)
	assert.Len(t, history.Data, 3)
}
