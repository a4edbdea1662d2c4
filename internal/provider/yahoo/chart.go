package yahoo

import (
	"context"
	"fmt"
	"maps"
	"net/url"

	"github.com/tidwall/gjson"

	"quantpulse/internal/provider"
)

// FetchChart retrieves daily closes for symbol over period ("5d", "1mo", ...).
// An unknown symbol yields an empty Chart and a nil error.
func (c *Client) FetchChart(ctx context.Context, symbol, period string) (provider.Chart, error) {
	query := maps.Clone(c.query)
	query.Set("range", period)
	query.Set("interval", "1d")

	body, found, err := c.get(ctx, "/v8/finance/chart/"+url.PathEscape(symbol), query)
	if err != nil {
		return provider.Chart{}, err
	}
	if !found {
		return provider.Chart{}, nil
	}

	if !gjson.ValidBytes(body) {
		return provider.Chart{}, fmt.Errorf("decoding chart response: invalid JSON")
	}
	if desc := errorDescription(body); desc != "" {
		return provider.Chart{}, fmt.Errorf("provider error: %s", desc)
	}

	// {
	//   "chart": {
	//     "result": [{
	//       "meta": {"symbol": "TCS.NS", "regularMarketPrice": 3912.4, ...},
	//       "timestamp": [1714540500, ...],
	//       "indicators": {"quote": [{"close": [3850.1, null, 3912.4], ...}]}
	//     }],
	//     "error": null
	//   }
	// }
	result := gjson.GetBytes(body, "chart.result.0")
	if !result.Exists() {
		return provider.Chart{}, nil
	}
	if !result.IsObject() {
		return provider.Chart{}, fmt.Errorf("decoding chart: unexpected %s", result.Type)
	}

	var chart provider.Chart
	for _, v := range result.Get("indicators.quote.0.close").Array() {
		if v.Type == gjson.Number {
			chart.Closes = append(chart.Closes, v.Float())
		}
	}
	if price := result.Get("meta.regularMarketPrice"); price.Type == gjson.Number {
		chart.Price = price.Float()
	} else if n := len(chart.Closes); n > 0 {
		chart.Price = chart.Closes[n-1]
	}
	return chart, nil
}
