package yfin

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/tidwall/gjson"

	"github.com/bobmcallan/kessan/internal/models"
)

// quoteSummary fetches the requested modules and returns the first result.
func (c *Client) quoteSummary(ctx context.Context, symbol, modules string) (gjson.Result, error) {
	params := url.Values{}
	params.Set("modules", modules)

	path := fmt.Sprintf("/v10/finance/quoteSummary/%s", url.PathEscape(symbol))
	body, err := c.get(ctx, path, params)
	if err != nil {
		return gjson.Result{}, err
	}

	if apiErr := gjson.GetBytes(body, "quoteSummary.error.description"); apiErr.Exists() {
		return gjson.Result{}, &APIError{Message: apiErr.String(), Endpoint: path}
	}

	result := gjson.GetBytes(body, "quoteSummary.result.0")
	if !result.Exists() {
		return gjson.Result{}, &APIError{Message: "empty quote summary result", Endpoint: path}
	}
	return result, nil
}

// GetCompanyProfile retrieves descriptive company fields
func (c *Client) GetCompanyProfile(ctx context.Context, symbol string) (*models.RawCompanyInfo, error) {
	result, err := c.quoteSummary(ctx, symbol, "assetProfile,price")
	if err != nil {
		return nil, err
	}

	name := result.Get("price.longName").String()
	if name == "" {
		name = result.Get("price.shortName").String()
	}

	info := &models.RawCompanyInfo{
		Name:         name,
		Sector:       result.Get("assetProfile.sector").String(),
		Industry:     result.Get("assetProfile.industry").String(),
		Website:      result.Get("assetProfile.website").String(),
		MarketCap:    floatPtr(result.Get("price.marketCap.raw")),
		CurrentPrice: floatPtr(result.Get("price.regularMarketPrice.raw")),
	}

	c.logger.Debug().Str("symbol", symbol).Str("name", info.Name).Msg("company profile retrieved")
	return info, nil
}

// GetAnalystData retrieves recommendation counts, price targets, and
// earnings dates. The three sections come from independent modules and
// any of them may be empty for thinly covered companies.
func (c *Client) GetAnalystData(ctx context.Context, symbol string) (*models.RawAnalystPayload, error) {
	result, err := c.quoteSummary(ctx, symbol, "recommendationTrend,financialData,calendarEvents,earningsHistory")
	if err != nil {
		return nil, err
	}

	payload := &models.RawAnalystPayload{
		Recommendations: parseRecommendations(result),
		Targets:         parseTargets(result.Get("financialData")),
		Earnings:        parseEarnings(result),
	}
	return payload, nil
}

// parseRecommendations reads the current-month trend row plus the
// summary key and mean. Nil when neither module returned anything.
func parseRecommendations(result gjson.Result) *models.RawRecommendationCounts {
	trend := result.Get(`recommendationTrend.trend.#(period=="0m")`)
	financial := result.Get("financialData")
	if !trend.Exists() && !financial.Exists() {
		return nil
	}

	counts := &models.RawRecommendationCounts{
		RecommendationKey:  financial.Get("recommendationKey").String(),
		RecommendationMean: floatPtr(financial.Get("recommendationMean.raw")),
		TotalAnalysts:      intPtr(financial.Get("numberOfAnalystOpinions.raw")),
	}
	if trend.Exists() {
		counts.StrongBuy = intPtr(trend.Get("strongBuy"))
		counts.Buy = intPtr(trend.Get("buy"))
		counts.Hold = intPtr(trend.Get("hold"))
		counts.Sell = intPtr(trend.Get("sell"))
		counts.StrongSell = intPtr(trend.Get("strongSell"))
	}
	return counts
}

func parseTargets(financial gjson.Result) *models.RawTargetPrices {
	if !financial.Exists() {
		return nil
	}
	return &models.RawTargetPrices{
		Current: floatPtr(financial.Get("currentPrice.raw")),
		High:    floatPtr(financial.Get("targetHighPrice.raw")),
		Low:     floatPtr(financial.Get("targetLowPrice.raw")),
		Mean:    floatPtr(financial.Get("targetMeanPrice.raw")),
		Median:  floatPtr(financial.Get("targetMedianPrice.raw")),
	}
}

// parseEarnings merges upcoming dates from the calendar with reported
// quarters from the history module. The history surprise comes back as
// a fraction and is scaled to a percentage.
func parseEarnings(result gjson.Result) []models.RawEarningsDate {
	var earnings []models.RawEarningsDate

	calendar := result.Get("calendarEvents.earnings")
	calendar.Get("earningsDate").ForEach(func(_, value gjson.Result) bool {
		ts := value.Get("raw")
		if !ts.Exists() {
			ts = value
		}
		earnings = append(earnings, models.RawEarningsDate{
			Date:        time.Unix(ts.Int(), 0).UTC(),
			EPSEstimate: floatPtr(calendar.Get("earningsAverage.raw")),
		})
		return true
	})

	result.Get("earningsHistory.history").ForEach(func(_, value gjson.Result) bool {
		row := models.RawEarningsDate{
			Date:        time.Unix(value.Get("quarter.raw").Int(), 0).UTC(),
			EPSEstimate: floatPtr(value.Get("epsEstimate.raw")),
			EPSActual:   floatPtr(value.Get("epsActual.raw")),
		}
		if surprise := floatPtr(value.Get("surprisePercent.raw")); surprise != nil {
			pct := *surprise * 100
			row.SurprisePct = &pct
		}
		earnings = append(earnings, row)
		return true
	})

	return earnings
}
