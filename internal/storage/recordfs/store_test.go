package recordfs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/kessan/internal/common"
	"github.com/bobmcallan/kessan/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(common.NewSilentLogger(), t.TempDir())
	require.NoError(t, err)
	return store
}

func TestFinancialRecordRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	record := &models.CompanyRecord{
		Success:     true,
		FetchedAt:   time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		Ticker:      "7203",
		TickerFull:  "7203.T",
		CompanyName: "Toyota Motor Corporation",
		Financials:  models.Financials{Years: []models.StatementYear{{Year: 2024}}, HasData: true},
	}
	require.NoError(t, store.SaveFinancialRecord(ctx, record))

	loaded, err := store.GetFinancialRecord(ctx, "7203")
	require.NoError(t, err)
	assert.Equal(t, "7203.T", loaded.TickerFull)
	assert.True(t, loaded.Financials.HasData)
	require.Len(t, loaded.Financials.Years, 1)
	assert.Equal(t, 2024, loaded.Financials.Years[0].Year)
}

func TestGetFinancialRecordMissing(t *testing.T) {
	store := newTestStore(t)
	_, err := store.GetFinancialRecord(context.Background(), "9999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListFinancialCodesSorted(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, code := range []string{"9984", "7203", "6758"} {
		require.NoError(t, store.SaveFinancialRecord(ctx, &models.CompanyRecord{Ticker: code}))
	}

	codes, err := store.ListFinancialCodes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"6758", "7203", "9984"}, codes)
}

func TestListCodesEmptyDir(t *testing.T) {
	store := newTestStore(t)
	codes, err := store.ListAnalystCodes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, codes)
}

func TestPriceHistoryRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	history := &models.PriceHistory{
		Code:       "7203",
		Ticker:     "7203.T",
		Period:     "1y",
		DataPoints: 1,
		Data: []models.PricePoint{
			{Date: models.NewDate(2025, 5, 30), Close: 2800},
		},
	}
	require.NoError(t, store.SavePriceHistory(ctx, history))

	loaded, err := store.GetPriceHistory(ctx, "7203")
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.DataPoints)
	assert.Equal(t, "2025-05-30", loaded.Data[0].Date.Format("2006-01-02"))
	assert.False(t, loaded.LastUpdated.IsZero(), "save stamps the update time")
}

func TestAnalystRecordRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	record := &models.AnalystRecord{
		Success:    true,
		Ticker:     "7203",
		TickerFull: "7203.T",
		Recommendations: models.RecommendationSummary{
			HasData:       true,
			TotalAnalysts: 10,
		},
	}
	require.NoError(t, store.SaveAnalystRecord(ctx, record))

	loaded, err := store.GetAnalystRecord(ctx, "7203")
	require.NoError(t, err)
	assert.Equal(t, 10, loaded.Recommendations.TotalAnalysts)
}

func TestPurge(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveFinancialRecord(ctx, &models.CompanyRecord{Ticker: "7203"}))
	require.NoError(t, store.SaveFinancialRecord(ctx, &models.CompanyRecord{Ticker: "6758"}))

	assert.Equal(t, 2, store.PurgeFinancials())
	codes, err := store.ListFinancialCodes(ctx)
	require.NoError(t, err)
	assert.Empty(t, codes)
}

func TestSanitizeKey(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveFinancialRecord(ctx, &models.CompanyRecord{Ticker: "../7203"}))

	entries, err := os.ReadDir(filepath.Join(store.DataPath(), "financials"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0].Name(), "..")
}

func TestRosterCSVRoundTrip(t *testing.T) {
	store := newTestStore(t)
	path := filepath.Join(t.TempDir(), "roster.csv")

	companies := []models.Company{
		{Code: "7203", Name: "Toyota Motor Corporation"},
		{Code: "6758", Name: "Sony Group"},
	}
	require.NoError(t, store.WriteRosterCSV(path, companies))

	loaded, err := store.ReadRosterCSV(path)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "7203", loaded[0].Code)
	assert.Equal(t, "Sony Group", loaded[1].Name)
}

func TestRosterCSVSkipsInvalidRows(t *testing.T) {
	store := newTestStore(t)
	path := filepath.Join(t.TempDir(), "roster.csv")
	require.NoError(t, os.WriteFile(path, []byte("code,company_name\n7203,Toyota\nbadcode!,Broken\n,Empty\n"), 0644))

	loaded, err := store.ReadRosterCSV(path)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "7203", loaded[0].Code)
}
