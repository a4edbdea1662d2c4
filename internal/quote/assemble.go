package quote

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"quantpulse/internal/provider"
)

// Yahoo quote field names.
const (
	fieldPrice         = "regularMarketPrice"
	fieldPreviousClose = "regularMarketPreviousClose"
	fieldVolume        = "regularMarketVolume"
	fieldMarketCap     = "marketCap"
	fieldLongName      = "longName"
	fieldShortName     = "shortName"
	fieldCurrency      = "currency"
	fieldExchange      = "exchange"
	fieldMarketState   = "marketState"
)

// TimestampLayout is the sortable local time format used in responses.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// Formatted is the display-ready quote returned by GET /stock/{symbol}.
type Formatted struct {
	Symbol             string   `json:"symbol"`
	YahooSymbol        string   `json:"yahooSymbol"`
	CompanyName        string   `json:"companyName"`
	CurrentPrice       float64  `json:"currentPrice"`
	PreviousClose      float64  `json:"previousClose"`
	Change             float64  `json:"change"`
	ChangePercent      float64  `json:"changePercent"`
	Volume             *int64   `json:"volume"`
	VolumeFormatted    string   `json:"volumeFormatted"`
	MarketCap          *float64 `json:"marketCap"`
	MarketCapFormatted string   `json:"marketCapFormatted"`
	Currency           string   `json:"currency"`
	Exchange           string   `json:"exchange"`
	Timestamp          string   `json:"timestamp"`
	MarketState        string   `json:"marketState"`
}

// Assemble folds a raw provider quote into a Formatted quote for ticker.
// It returns *NotFoundError when raw has no live price.
func Assemble(raw provider.RawQuote, ticker string, now time.Time) (Formatted, error) {
	price, ok := raw.Float(fieldPrice)
	if raw.Empty() || !ok {
		return Formatted{}, &NotFoundError{Symbol: ticker, Hint: SymbolHint}
	}

	// A missing or zero previous close yields a flat change instead of a
	// division by zero.
	prevClose, _ := raw.Float(fieldPreviousClose)
	var change, changePct float64
	if prevClose != 0 {
		change = price - prevClose
		changePct = change / prevClose * 100
	}

	upper := strings.ToUpper(ticker)
	out := Formatted{
		Symbol:        upper,
		YahooSymbol:   NormalizeSymbol(ticker),
		CompanyName:   firstString(raw, upper, fieldLongName, fieldShortName),
		CurrentPrice:  Round2(price),
		PreviousClose: Round2(prevClose),
		Change:        Round2(change),
		ChangePercent: Round2(changePct),
		Currency:      firstString(raw, "INR", fieldCurrency),
		Exchange:      firstString(raw, "NSE", fieldExchange),
		MarketState:   firstString(raw, "UNKNOWN", fieldMarketState),
		Timestamp:     now.Format(TimestampLayout),
	}

	out.Volume = volume(raw)
	out.VolumeFormatted = FormatVolume(out.Volume)

	out.MarketCapFormatted = "N/A"
	if mc, ok := raw.Float(fieldMarketCap); ok {
		out.MarketCap = &mc
		if mc != 0 {
			out.MarketCapFormatted = FormatCurrency(&mc)
		}
	}
	return out, nil
}

// volume is zero when the provider omits the field and nil when it reports
// an explicit null.
func volume(raw provider.RawQuote) *int64 {
	if v, ok := raw.Int(fieldVolume); ok {
		return &v
	}
	if _, present := raw[fieldVolume]; present {
		return nil
	}
	var zero int64
	return &zero
}

func firstString(raw provider.RawQuote, def string, keys ...string) string {
	for _, k := range keys {
		if s, ok := raw.String(k); ok {
			return s
		}
	}
	return def
}

// Round2 rounds the exact binary value of v to two decimals, ties to even.
// 2.675 is stored as 2.67499... and rounds to 2.67.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.RequireFromString(strconv.FormatFloat(v, 'f', 2, 64)).InexactFloat64()
}
