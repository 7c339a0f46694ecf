package collector

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/kessan/internal/common"
	"github.com/bobmcallan/kessan/internal/interfaces"
	"github.com/bobmcallan/kessan/internal/models"
	"github.com/bobmcallan/kessan/internal/storage/recordfs"
)

// mockMarket serves canned payloads and fails listed codes.
type mockMarket struct {
	mu        sync.Mutex
	failing   map[string]bool
	histCalls int
}

func floatPtr(v float64) *float64 { return &v }

func (m *mockMarket) fails(symbol string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.failing[symbol]
}

func (m *mockMarket) GetPriceHistory(_ context.Context, symbol string, _ ...interfaces.HistoryOption) ([]models.RawPriceBar, []models.RawDividendEvent, error) {
	m.mu.Lock()
	m.histCalls++
	m.mu.Unlock()
	if m.fails(symbol) {
		return nil, nil, errors.New("provider unavailable")
	}
	bars := make([]models.RawPriceBar, 10)
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		bars[i] = models.RawPriceBar{
			Date:  base.AddDate(0, 0, i),
			Close: floatPtr(100 + float64(i)),
		}
	}
	dividends := []models.RawDividendEvent{
		{Date: time.Date(2024, 9, 27, 0, 0, 0, 0, time.UTC), Amount: 40},
	}
	return bars, dividends, nil
}

func (m *mockMarket) GetCompanyProfile(_ context.Context, symbol string) (*models.RawCompanyInfo, error) {
	if m.fails(symbol) {
		return nil, errors.New("provider unavailable")
	}
	return &models.RawCompanyInfo{Name: "Company " + symbol}, nil
}

func (m *mockMarket) GetStatements(_ context.Context, symbol string) (*models.RawStatements, error) {
	if m.fails(symbol) {
		return nil, errors.New("provider unavailable")
	}
	statements := &models.RawStatements{
		Income:   models.RawStatementTable{},
		Balance:  models.RawStatementTable{},
		CashFlow: models.RawStatementTable{},
	}
	statements.Income.Set("Total Revenue", 2024, 1e9)
	return statements, nil
}

func (m *mockMarket) GetAnalystData(_ context.Context, symbol string) (*models.RawAnalystPayload, error) {
	if m.fails(symbol) {
		return nil, errors.New("provider unavailable")
	}
	return &models.RawAnalystPayload{
		Recommendations: &models.RawRecommendationCounts{
			StrongBuy: intPtr(3),
			Buy:       intPtr(2),
		},
	}, nil
}

func intPtr(v int) *int { return &v }

// mockRoster serves a fixed roster and records updates.
type mockRoster struct {
	mu        sync.Mutex
	companies []models.Company
	err       error
	updates   map[string]map[string]any
}

func (m *mockRoster) FetchRoster(_ context.Context) ([]models.Company, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.companies, nil
}

func (m *mockRoster) UpdateCompany(_ context.Context, company models.Company, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updates == nil {
		m.updates = make(map[string]map[string]any)
	}
	m.updates[company.Code] = fields
	return nil
}

func newTestService(t *testing.T, market *mockMarket, roster *mockRoster) (*Service, *recordfs.Store) {
	t.Helper()
	dir := t.TempDir()

	cfg := common.NewDefaultConfig()
	cfg.Storage.Data.Path = dir
	cfg.Roster.CSVPath = filepath.Join(dir, "roster.csv")
	cfg.Collector.Workers = 2
	cfg.Collector.ProgressInterval = 0

	store, err := recordfs.NewStore(common.NewSilentLogger(), dir)
	require.NoError(t, err)

	var rosterClient interfaces.RosterClient
	if roster != nil {
		rosterClient = roster
	}
	return NewService(cfg, market, rosterClient, store, common.NewSilentLogger()), store
}

func testRoster() *mockRoster {
	return &mockRoster{companies: []models.Company{
		{Code: "7203", Name: "Toyota", PostID: 1},
		{Code: "6758", Name: "Sony", PostID: 2},
		{Code: "9984", Name: "SoftBank", PostID: 3},
	}}
}

func TestCollectHistory(t *testing.T) {
	market := &mockMarket{}
	svc, store := newTestService(t, market, testRoster())

	summary, err := svc.CollectHistory(context.Background(), interfaces.BatchOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 3, summary.Succeeded)
	assert.Zero(t, summary.Failed)

	history, err := store.GetPriceHistory(context.Background(), "7203")
	require.NoError(t, err)
	assert.Equal(t, "7203.T", history.Ticker)
	assert.Equal(t, 10, history.DataPoints)
}

func TestCollectHistorySkipsFresh(t *testing.T) {
	market := &mockMarket{}
	svc, _ := newTestService(t, market, testRoster())
	ctx := context.Background()

	_, err := svc.CollectHistory(ctx, interfaces.BatchOptions{})
	require.NoError(t, err)
	callsAfterFirst := market.histCalls

	summary, err := svc.CollectHistory(ctx, interfaces.BatchOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Skipped)
	assert.Equal(t, callsAfterFirst, market.histCalls, "fresh documents must not refetch")

	summary, err = svc.CollectHistory(ctx, interfaces.BatchOptions{Force: true})
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Succeeded)
	assert.Greater(t, market.histCalls, callsAfterFirst)
}

func TestCollectFinancialsFailureIsolation(t *testing.T) {
	market := &mockMarket{failing: map[string]bool{"6758.T": true}}
	svc, store := newTestService(t, market, testRoster())
	ctx := context.Background()

	summary, err := svc.CollectFinancials(ctx, interfaces.BatchOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)

	// The failing company still gets a document, marked unsuccessful.
	record, err := store.GetFinancialRecord(ctx, "6758")
	require.NoError(t, err)
	assert.False(t, record.Success)
	assert.NotEmpty(t, record.Error)

	good, err := store.GetFinancialRecord(ctx, "7203")
	require.NoError(t, err)
	assert.True(t, good.Success)
	assert.True(t, good.Financials.HasData)
}

func TestCollectAnalyst(t *testing.T) {
	market := &mockMarket{}
	svc, store := newTestService(t, market, testRoster())

	summary, err := svc.CollectAnalyst(context.Background(), interfaces.BatchOptions{Ticker: "7203"})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Total)
	assert.Equal(t, 1, summary.Succeeded)

	record, err := store.GetAnalystRecord(context.Background(), "7203")
	require.NoError(t, err)
	assert.Equal(t, 5, record.Recommendations.TotalAnalysts)
}

func TestSelectCompanies(t *testing.T) {
	companies := []models.Company{
		{Code: "7203"}, {Code: "6758"}, {Code: "9984"}, {Code: "8035"},
	}

	tests := []struct {
		name     string
		opts     interfaces.BatchOptions
		expected []string
	}{
		{"all", interfaces.BatchOptions{}, []string{"7203", "6758", "9984", "8035"}},
		{"limit", interfaces.BatchOptions{Limit: 2}, []string{"7203", "6758"}},
		{"skip", interfaces.BatchOptions{Skip: 3}, []string{"8035"}},
		{"skip and limit", interfaces.BatchOptions{Skip: 1, Limit: 2}, []string{"6758", "9984"}},
		{"skip past end", interfaces.BatchOptions{Skip: 10}, nil},
		{"ticker", interfaces.BatchOptions{Ticker: "9984"}, []string{"9984"}},
		{"ticker with suffix", interfaces.BatchOptions{Ticker: "9984.T"}, []string{"9984"}},
		{"unknown ticker", interfaces.BatchOptions{Ticker: "1111"}, []string{"1111"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := selectCompanies(companies, tt.opts)
			var codes []string
			for _, c := range got {
				codes = append(codes, c.Code)
			}
			assert.Equal(t, tt.expected, codes)
		})
	}
}

func TestResolveRosterCSVFallback(t *testing.T) {
	market := &mockMarket{}
	roster := testRoster()
	svc, store := newTestService(t, market, roster)
	ctx := context.Background()

	// A successful CMS fetch refreshes the CSV fallback.
	companies, err := svc.ResolveRoster(ctx)
	require.NoError(t, err)
	require.Len(t, companies, 3)

	saved, err := store.ReadRosterCSV(svc.config.Roster.CSVPath)
	require.NoError(t, err)
	assert.Len(t, saved, 3)

	// With the CMS down, the saved CSV keeps the pipeline running.
	roster.err = fmt.Errorf("cms down")
	companies, err = svc.ResolveRoster(ctx)
	require.NoError(t, err)
	assert.Len(t, companies, 3)
	assert.Equal(t, "7203", companies[0].Code)
}

func TestPublishFinancials(t *testing.T) {
	market := &mockMarket{}
	roster := testRoster()
	svc, store := newTestService(t, market, roster)
	ctx := context.Background()

	_, err := svc.CollectFinancials(ctx, interfaces.BatchOptions{})
	require.NoError(t, err)
	_, err = svc.CollectAnalyst(ctx, interfaces.BatchOptions{})
	require.NoError(t, err)

	summary, err := svc.PublishFinancials(ctx, interfaces.BatchOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Succeeded)

	fields := roster.updates["7203"]
	require.NotNil(t, fields)
	assert.Contains(t, fields, "financial_data")
	assert.Equal(t, 2024, fields["latest_fiscal_year"])
	assert.Equal(t, 5, fields["total_analysts"])

	// A failed record is skipped, not published.
	record, err := store.GetFinancialRecord(ctx, "9984")
	require.NoError(t, err)
	record.Success = false
	require.NoError(t, store.SaveFinancialRecord(ctx, record))
	roster.updates = nil

	summary, err = svc.PublishFinancials(ctx, interfaces.BatchOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Skipped)
	assert.NotContains(t, roster.updates, "9984")
}
