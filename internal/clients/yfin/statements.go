package yfin

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/bobmcallan/kessan/internal/models"
)

// statementLookback bounds the fundamentals timeseries query.
const statementLookback = 6 * 365 * 24 * time.Hour

// Timeseries type names per statement. The "annual" prefix is stripped
// and the camel-case remainder split into the display field names the
// aligner matches on, mirroring how the provider's own tooling labels
// its rows.
var (
	incomeTypes   = []string{"annualTotalRevenue", "annualGrossProfit", "annualOperatingIncome", "annualEBIT", "annualNetIncome", "annualBasicEPS", "annualDilutedEPS"}
	balanceTypes  = []string{"annualTotalAssets", "annualStockholdersEquity", "annualTotalDebt", "annualCashAndCashEquivalents", "annualCurrentAssets", "annualCurrentLiabilities"}
	cashFlowTypes = []string{"annualOperatingCashFlow", "annualInvestingCashFlow", "annualFinancingCashFlow", "annualFreeCashFlow"}
)

// GetStatements retrieves the annual statement tables from the
// fundamentals timeseries endpoint.
func (c *Client) GetStatements(ctx context.Context, symbol string) (*models.RawStatements, error) {
	now := time.Now()
	params := url.Values{}
	params.Set("type", strings.Join(allStatementTypes(), ","))
	params.Set("period1", strconv.FormatInt(now.Add(-statementLookback).Unix(), 10))
	params.Set("period2", strconv.FormatInt(now.Unix(), 10))
	params.Set("merge", "false")

	path := fmt.Sprintf("/ws/fundamentals-timeseries/v1/finance/timeseries/%s", url.PathEscape(symbol))
	body, err := c.get(ctx, path, params)
	if err != nil {
		return nil, err
	}

	if apiErr := gjson.GetBytes(body, "timeseries.error.description"); apiErr.Exists() {
		return nil, &APIError{Message: apiErr.String(), Endpoint: path}
	}

	statements := &models.RawStatements{
		Income:   models.RawStatementTable{},
		Balance:  models.RawStatementTable{},
		CashFlow: models.RawStatementTable{},
	}

	gjson.GetBytes(body, "timeseries.result").ForEach(func(_, result gjson.Result) bool {
		typeName := result.Get("meta.type.0").String()
		table := tableFor(statements, typeName)
		if table == nil {
			return true
		}

		field := displayName(typeName)
		result.Get(typeName).ForEach(func(_, row gjson.Result) bool {
			value := row.Get("reportedValue.raw")
			asOf := row.Get("asOfDate").String()
			if !value.Exists() || len(asOf) < 4 {
				return true
			}
			year, err := strconv.Atoi(asOf[:4])
			if err != nil {
				return true
			}
			table.Set(field, year, value.Float())
			return true
		})
		return true
	})

	c.logger.Debug().Str("symbol", symbol).Msg("statement tables retrieved")
	return statements, nil
}

func allStatementTypes() []string {
	types := make([]string, 0, len(incomeTypes)+len(balanceTypes)+len(cashFlowTypes))
	types = append(types, incomeTypes...)
	types = append(types, balanceTypes...)
	types = append(types, cashFlowTypes...)
	return types
}

func tableFor(statements *models.RawStatements, typeName string) models.RawStatementTable {
	for _, t := range incomeTypes {
		if t == typeName {
			return statements.Income
		}
	}
	for _, t := range balanceTypes {
		if t == typeName {
			return statements.Balance
		}
	}
	for _, t := range cashFlowTypes {
		if t == typeName {
			return statements.CashFlow
		}
	}
	return nil
}

// displayName converts "annualTotalRevenue" to "Total Revenue" and
// keeps acronym runs intact, so "annualEBIT" becomes "EBIT" and
// "annualBasicEPS" becomes "Basic EPS".
func displayName(typeName string) string {
	name := strings.TrimPrefix(typeName, "annual")
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if i > 0 && r >= 'A' && r <= 'Z' {
			prevUpper := runes[i-1] >= 'A' && runes[i-1] <= 'Z'
			nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
			if !prevUpper || nextLower {
				b.WriteRune(' ')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}
