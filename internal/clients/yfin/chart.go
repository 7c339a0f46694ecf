package yfin

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/tidwall/gjson"

	"github.com/bobmcallan/kessan/internal/interfaces"
	"github.com/bobmcallan/kessan/internal/models"
)

// GetPriceHistory retrieves the daily price series and dividend events
// from the chart endpoint. Defaults to five years of daily bars.
func (c *Client) GetPriceHistory(ctx context.Context, symbol string, opts ...interfaces.HistoryOption) ([]models.RawPriceBar, []models.RawDividendEvent, error) {
	histParams := &interfaces.HistoryParams{
		Range:    "5y",
		Interval: "1d",
	}
	for _, opt := range opts {
		opt(histParams)
	}

	params := url.Values{}
	params.Set("range", histParams.Range)
	params.Set("interval", histParams.Interval)
	params.Set("events", "div")

	path := fmt.Sprintf("/v8/finance/chart/%s", url.PathEscape(symbol))
	body, err := c.get(ctx, path, params)
	if err != nil {
		return nil, nil, err
	}

	if apiErr := gjson.GetBytes(body, "chart.error.description"); apiErr.Exists() {
		return nil, nil, &APIError{Message: apiErr.String(), Endpoint: path}
	}

	result := gjson.GetBytes(body, "chart.result.0")
	if !result.Exists() {
		return nil, nil, &APIError{Message: "empty chart result", Endpoint: path}
	}

	timestamps := result.Get("timestamp").Array()
	quote := result.Get("indicators.quote.0")
	opens := quote.Get("open").Array()
	highs := quote.Get("high").Array()
	lows := quote.Get("low").Array()
	closes := quote.Get("close").Array()
	volumes := quote.Get("volume").Array()

	bars := make([]models.RawPriceBar, 0, len(timestamps))
	for i, ts := range timestamps {
		bar := models.RawPriceBar{
			Date: time.Unix(ts.Int(), 0).UTC(),
		}
		if i < len(opens) {
			bar.Open = floatPtr(opens[i])
		}
		if i < len(highs) {
			bar.High = floatPtr(highs[i])
		}
		if i < len(lows) {
			bar.Low = floatPtr(lows[i])
		}
		if i < len(closes) {
			bar.Close = floatPtr(closes[i])
		}
		if i < len(volumes) {
			bar.Volume = int64Ptr(volumes[i])
		}
		bars = append(bars, bar)
	}

	var dividends []models.RawDividendEvent
	result.Get("events.dividends").ForEach(func(_, value gjson.Result) bool {
		dividends = append(dividends, models.RawDividendEvent{
			Date:   time.Unix(value.Get("date").Int(), 0).UTC(),
			Amount: value.Get("amount").Float(),
		})
		return true
	})

	c.logger.Debug().
		Str("symbol", symbol).
		Int("bars", len(bars)).
		Int("dividends", len(dividends)).
		Msg("chart data retrieved")

	return bars, dividends, nil
}
