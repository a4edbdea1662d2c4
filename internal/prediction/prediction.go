package prediction

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"quantpulse/internal/provider"
	"quantpulse/internal/quote"
)

const (
	// SMAWindow is the number of daily closes averaged into the trend line.
	SMAWindow = 5
	// SidewaysBand is the deviation, in percent, inside which price is flat.
	SidewaysBand = 1.0

	chartPeriod = "1mo"
)

// Direction values.
const (
	Up       = "UP"
	Down     = "DOWN"
	Sideways = "SIDEWAYS"
)

// Disclaimer accompanies every prediction.
const Disclaimer = "This signal is derived from recent price action only. It is not financial advice."

// Technical is the moving-average signal for one symbol.
type Technical struct {
	Direction        string  `json:"direction"`
	TrendLabel       string  `json:"trendLabel"`
	CurrentPrice     float64 `json:"currentPrice"`
	SMA5Day          float64 `json:"sma5Day"`
	DeviationPercent float64 `json:"deviationPercent"`
}

// Prediction is the response of GET /ai-prediction/{symbol}.
type Prediction struct {
	Symbol     string    `json:"symbol"`
	Timestamp  string    `json:"timestamp"`
	Technical  Technical `json:"technical"`
	Disclaimer string    `json:"disclaimer"`
}

// Service derives a trend signal from daily closes.
type Service struct {
	charts provider.ChartFetcher
	log    logrus.FieldLogger
	now    func() time.Time
}

// NewService builds a Service. A nil logger discards output.
func NewService(charts provider.ChartFetcher, log logrus.FieldLogger) *Service {
	if log == nil {
		l := logrus.New()
		l.Out = io.Discard
		log = l
	}
	return &Service{charts: charts, log: log, now: time.Now}
}

// Predict compares the current price with the SMAWindow-day average.
// It returns *quote.NotFoundError when fewer than SMAWindow closes exist and
// *quote.ProviderError for any fetch failure.
func (s *Service) Predict(ctx context.Context, ticker string) (Prediction, error) {
	symbol := quote.NormalizeSymbol(ticker)
	base := quote.BaseSymbol(ticker)
	entry := s.log.WithFields(logrus.Fields{"symbol": base, "yahoo_symbol": symbol})

	chart, err := s.charts.FetchChart(ctx, symbol, chartPeriod)
	if err != nil {
		entry.WithError(err).Error("error fetching price history")
		return Prediction{}, &quote.ProviderError{Symbol: ticker, Err: fmt.Errorf("chart: %w", err)}
	}
	if len(chart.Closes) < SMAWindow || chart.Price <= 0 {
		entry.WithField("closes", len(chart.Closes)).Info("not enough price history")
		return Prediction{}, &quote.NotFoundError{Symbol: ticker, Hint: quote.SymbolHint}
	}

	return Prediction{
		Symbol:     base,
		Timestamp:  s.now().Format(quote.TimestampLayout),
		Technical:  Analyze(chart.Price, chart.Closes[len(chart.Closes)-SMAWindow:]),
		Disclaimer: Disclaimer,
	}, nil
}

// Analyze classifies price against the average of closes. closes must be
// non-empty with a positive mean.
func Analyze(price float64, closes []float64) Technical {
	values := make([]decimal.Decimal, len(closes))
	for i, c := range closes {
		values[i] = decimal.NewFromFloat(c)
	}
	sma := decimal.Avg(values[0], values[1:]...)
	deviation := decimal.NewFromFloat(price).Sub(sma).Div(sma).Mul(decimal.NewFromInt(100))

	dev := quote.Round2(deviation.InexactFloat64())
	t := Technical{
		Direction:        Sideways,
		TrendLabel:       "Neutral",
		CurrentPrice:     quote.Round2(price),
		SMA5Day:          quote.Round2(sma.InexactFloat64()),
		DeviationPercent: dev,
	}
	switch {
	case dev > SidewaysBand:
		t.Direction, t.TrendLabel = Up, "Bullish"
	case dev < -SidewaysBand:
		t.Direction, t.TrendLabel = Down, "Bearish"
	}
	return t
}
