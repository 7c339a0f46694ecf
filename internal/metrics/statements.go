package metrics

import (
	"sort"

	"github.com/bobmcallan/kessan/internal/common"
	"github.com/bobmcallan/kessan/internal/models"
)

// maxStatementYears caps the aligned output at five fiscal years.
const maxStatementYears = 5

// Provider field names drift between versions, so each canonical field
// resolves through an ordered alias list. First alias with a value wins.
var (
	incomeAliases = map[string][]string{
		"revenue":          {"Total Revenue"},
		"gross_profit":     {"Gross Profit"},
		"operating_income": {"Operating Income"},
		"ebit":             {"EBIT"},
		"net_income":       {"Net Income"},
		"eps":              {"Basic EPS", "Diluted EPS"},
	}
	balanceAliases = map[string][]string{
		"total_assets":        {"Total Assets"},
		"total_equity":        {"Stockholders Equity", "Total Stockholder Equity"},
		"total_debt":          {"Total Debt"},
		"total_cash":          {"Cash And Cash Equivalents", "Cash Cash Equivalents And Short Term Investments"},
		"current_assets":      {"Current Assets", "Total Current Assets"},
		"current_liabilities": {"Current Liabilities", "Total Current Liabilities"},
	}
	cashFlowAliases = map[string][]string{
		"operating_cf": {"Operating Cash Flow", "Total Cash From Operating Activities"},
		"investing_cf": {"Investing Cash Flow", "Total Cashflows From Investing Activities"},
		"financing_cf": {"Financing Cash Flow", "Total Cash From Financing Activities"},
		"free_cf":      {"Free Cash Flow"},
	}
)

// AlignStatements merges the three raw statement tables into per-year
// rows, newest first, at most five years. A field absent from the
// provider stays null for that year rather than defaulting to zero.
func AlignStatements(raw models.RawStatements) models.Financials {
	years := collectYears(raw)
	if len(years) == 0 {
		return models.Financials{Years: []models.StatementYear{}}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	if len(years) > maxStatementYears {
		years = years[:maxStatementYears]
	}

	rows := make([]models.StatementYear, 0, len(years))
	for _, year := range years {
		row := models.StatementYear{Year: year}

		row.Revenue = lookup(raw.Income, year, incomeAliases["revenue"])
		row.GrossProfit = lookup(raw.Income, year, incomeAliases["gross_profit"])
		row.OperatingIncome = lookup(raw.Income, year, incomeAliases["operating_income"])
		row.EBIT = lookup(raw.Income, year, incomeAliases["ebit"])
		row.NetIncome = lookup(raw.Income, year, incomeAliases["net_income"])
		row.EPS = lookup(raw.Income, year, incomeAliases["eps"])

		row.TotalAssets = lookup(raw.Balance, year, balanceAliases["total_assets"])
		row.TotalEquity = lookup(raw.Balance, year, balanceAliases["total_equity"])
		row.TotalDebt = lookup(raw.Balance, year, balanceAliases["total_debt"])
		row.TotalCash = lookup(raw.Balance, year, balanceAliases["total_cash"])
		row.CurrentAssets = lookup(raw.Balance, year, balanceAliases["current_assets"])
		row.CurrentLiabilities = lookup(raw.Balance, year, balanceAliases["current_liabilities"])

		row.OperatingCF = lookup(raw.CashFlow, year, cashFlowAliases["operating_cf"])
		row.InvestingCF = lookup(raw.CashFlow, year, cashFlowAliases["investing_cf"])
		row.FinancingCF = lookup(raw.CashFlow, year, cashFlowAliases["financing_cf"])
		row.FreeCF = freeCashFlow(raw.CashFlow, year, row.OperatingCF, row.InvestingCF)

		row.DerivedRatios = ComputeRatios(row)
		formatRow(&row)
		rows = append(rows, row)
	}

	return models.Financials{Years: rows, HasData: true}
}

// freeCashFlow prefers the provider figure and falls back to the sum of
// operating and investing cash flow when both are present.
func freeCashFlow(table models.RawStatementTable, year int, operating, investing *float64) *float64 {
	if v := lookup(table, year, cashFlowAliases["free_cf"]); v != nil {
		return v
	}
	if operating == nil || investing == nil {
		return nil
	}
	sum := *operating + *investing
	return &sum
}

func lookup(table models.RawStatementTable, year int, aliases []string) *float64 {
	for _, alias := range aliases {
		byYear, ok := table[alias]
		if !ok {
			continue
		}
		if v, ok := byYear[year]; ok {
			value := v
			return &value
		}
	}
	return nil
}

func collectYears(raw models.RawStatements) []int {
	seen := make(map[int]bool)
	for _, table := range []models.RawStatementTable{raw.Income, raw.Balance, raw.CashFlow} {
		for _, byYear := range table {
			for year := range byYear {
				seen[year] = true
			}
		}
	}
	years := make([]int, 0, len(seen))
	for year := range seen {
		years = append(years, year)
	}
	return years
}

func formatRow(row *models.StatementYear) {
	row.RevenueFmt = formatAmount(row.Revenue)
	row.GrossProfitFmt = formatAmount(row.GrossProfit)
	row.OperatingIncomeFmt = formatAmount(row.OperatingIncome)
	row.EBITFmt = formatAmount(row.EBIT)
	row.NetIncomeFmt = formatAmount(row.NetIncome)
	row.TotalAssetsFmt = formatAmount(row.TotalAssets)
	row.TotalEquityFmt = formatAmount(row.TotalEquity)
	row.TotalDebtFmt = formatAmount(row.TotalDebt)
	row.TotalCashFmt = formatAmount(row.TotalCash)
	row.OperatingCFFmt = formatAmount(row.OperatingCF)
	row.InvestingCFFmt = formatAmount(row.InvestingCF)
	row.FinancingCFFmt = formatAmount(row.FinancingCF)
	row.FreeCFFmt = formatAmount(row.FreeCF)
}

func formatAmount(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return common.FormatLargeNumber(*v)
}
