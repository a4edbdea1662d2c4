package yahoo

import (
	"context"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"

	"quantpulse/internal/provider"
)

const maxResponseBytes = 4 << 20

// FetchQuote retrieves the raw quote fields for one exchange-qualified symbol.
// An unknown symbol yields an empty RawQuote and a nil error.
func (c *Client) FetchQuote(ctx context.Context, symbol string) (provider.RawQuote, error) {
	query := maps.Clone(c.query)
	query.Set("symbols", symbol)

	body, found, err := c.get(ctx, "/v7/finance/quote", query)
	if err != nil {
		return nil, err
	}
	if !found {
		return provider.RawQuote{}, nil
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("decoding quote response: invalid JSON")
	}
	if desc := errorDescription(body); desc != "" {
		return nil, fmt.Errorf("provider error: %s", desc)
	}

	// {
	//   "quoteResponse": {
	//     "result": [{"symbol": "TCS.NS", "regularMarketPrice": 3912.4, ...}],
	//     "error": null
	//   }
	// }
	result := gjson.GetBytes(body, "quoteResponse.result.0")
	if !result.Exists() {
		return provider.RawQuote{}, nil
	}
	if !result.IsObject() {
		return nil, fmt.Errorf("decoding quote: unexpected %s", result.Type)
	}
	fields, ok := result.Value().(map[string]any)
	if !ok {
		return nil, fmt.Errorf("decoding quote: unexpected value %T", result.Value())
	}
	return provider.RawQuote(fields), nil
}

// get performs a GET against the API and returns the body of a 200 response.
// found is false when Yahoo answers 404.
func (c *Client) get(ctx context.Context, path string, query url.Values) (body []byte, found bool, err error) {
	endpoint := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, false, fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.header.Clone()
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	body, err = io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return nil, false, fmt.Errorf("reading response: %w", err)
	}

	switch res.StatusCode {
	case http.StatusOK:
		return body, true, nil

	case http.StatusNotFound:
		return nil, false, nil

	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, false, fmt.Errorf("unauthorized: %s", errorDescription(body))

	case http.StatusTooManyRequests:
		return nil, false, fmt.Errorf("rate limited")

	default:
		return nil, false, fmt.Errorf("unexpected status code: %d", res.StatusCode)
	}
}

// errorDescription extracts the provider-side error message, if any.
// Yahoo reports errors under quoteResponse.error, chart.error or finance.error.
func errorDescription(body []byte) string {
	for _, path := range []string{"quoteResponse.error", "chart.error", "finance.error"} {
		e := gjson.GetBytes(body, path)
		if !e.Exists() || e.Type == gjson.Null {
			continue
		}
		if d := e.Get("description"); d.Exists() {
			return d.String()
		}
		return e.Raw
	}
	return ""
}
