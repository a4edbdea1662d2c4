package provider

import (
	"context"
	"encoding/json"
	"math"
	"strings"
)

// RawQuote is the unshaped field mapping returned by a quote provider.
// Any field may be missing or null; read it through the typed accessors.
type RawQuote map[string]any

// QuoteFetcher fetches raw quote fields for an exchange-qualified symbol.
// An unknown symbol yields an empty RawQuote, not an error.
type QuoteFetcher interface {
	Name() string
	FetchQuote(ctx context.Context, symbol string) (RawQuote, error)
}

// Chart is a daily price history for one symbol, oldest close first.
// Closes skips sessions the provider reported without a close.
type Chart struct {
	Price  float64
	Closes []float64
}

// ChartFetcher fetches daily closes for an exchange-qualified symbol over a
// provider range such as "1mo". An unknown symbol yields an empty Chart.
type ChartFetcher interface {
	FetchChart(ctx context.Context, symbol, period string) (Chart, error)
}

// Empty reports whether the quote carries no fields at all.
func (q RawQuote) Empty() bool { return len(q) == 0 }

// Float returns the numeric value stored under key.
func (q RawQuote) Float(key string) (float64, bool) {
	switch v := q[key].(type) {
	case float64:
		if math.IsNaN(v) {
			return 0, false
		}
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Int returns the value under key truncated to an integer.
func (q RawQuote) Int(key string) (int64, bool) {
	switch v := q[key].(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, true
		}
	}
	f, ok := q.Float(key)
	if !ok {
		return 0, false
	}
	return int64(f), true
}

// String returns the non-blank string under key.
func (q RawQuote) String(key string) (string, bool) {
	s, ok := q[key].(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}
