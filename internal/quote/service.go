package quote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"quantpulse/internal/provider"
)

// Service resolves a ticker into a Formatted quote through a QuoteFetcher.
// Every failure leaves Get as either *NotFoundError or *ProviderError.
type Service struct {
	fetcher provider.QuoteFetcher
	log     logrus.FieldLogger
	now     func() time.Time
}

// NewService builds a Service. A nil logger discards output.
func NewService(fetcher provider.QuoteFetcher, log logrus.FieldLogger) *Service {
	if log == nil {
		l := logrus.New()
		l.Out = io.Discard
		log = l
	}
	return &Service{fetcher: fetcher, log: log, now: time.Now}
}

// Get fetches and formats the quote for ticker.
func (s *Service) Get(ctx context.Context, ticker string) (q Formatted, err error) {
	symbol := NormalizeSymbol(ticker)
	entry := s.log.WithFields(logrus.Fields{
		"symbol":       ticker,
		"yahoo_symbol": symbol,
		"provider":     s.fetcher.Name(),
	})

	defer func() {
		if rec := recover(); rec != nil {
			q, err = Formatted{}, s.fail(entry, ticker, fmt.Errorf("panic: %v", rec))
		}
	}()

	raw, err := s.fetcher.FetchQuote(ctx, symbol)
	if err != nil {
		return Formatted{}, s.fail(entry, ticker, err)
	}

	q, err = Assemble(raw, ticker, s.now())
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			entry.Info("quote not found")
			return Formatted{}, nf
		}
		return Formatted{}, s.fail(entry, ticker, err)
	}
	entry.WithField("price", q.CurrentPrice).Debug("quote fetched")
	return q, nil
}

func (s *Service) fail(entry *logrus.Entry, ticker string, cause error) error {
	entry.WithError(cause).Error("error fetching stock data")
	return &ProviderError{Symbol: ticker, Err: cause}
}
