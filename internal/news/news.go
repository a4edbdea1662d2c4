package news

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"quantpulse/internal/provider/newsapi"
	"quantpulse/internal/quote"
)

const (
	// DefaultDays is the look-back window used when the caller passes 0.
	DefaultDays = 7
	// MaxDays is the longest look-back window served.
	MaxDays = 30

	pageSize   = 20
	sampleSize = 5
)

// Disclaimer accompanies every news report.
const Disclaimer = "News coverage is shown for information only and is not investment advice."

// ErrNotConfigured is returned when no NewsAPI key was provided.
var ErrNotConfigured = errors.New("news provider not configured")

// Searcher is the subset of the NewsAPI client used here.
type Searcher interface {
	Everything(ctx context.Context, q newsapi.Query) ([]newsapi.Article, error)
}

// QuoteLookup resolves a ticker to its quote, used for the company name.
type QuoteLookup interface {
	Get(ctx context.Context, ticker string) (quote.Formatted, error)
}

// SampleArticle is one headline included in a Report.
type SampleArticle struct {
	Title       string `json:"title"`
	Source      string `json:"source"`
	PublishedAt string `json:"publishedAt"`
}

// Report is the response of GET /news-sentiment/{symbol}.
type Report struct {
	Symbol           string          `json:"symbol"`
	CompanyName      string          `json:"companyName"`
	ArticlesAnalyzed int             `json:"articlesAnalyzed"`
	DaysAnalyzed     int             `json:"daysAnalyzed"`
	Timestamp        string          `json:"timestamp"`
	SampleArticles   []SampleArticle `json:"sampleArticles"`
	Disclaimer       string          `json:"disclaimer"`
}

// Service looks up recent articles for a ticker.
type Service struct {
	searcher Searcher
	quotes   QuoteLookup
	log      logrus.FieldLogger
	now      func() time.Time
}

// NewService builds a Service. A nil searcher makes every call fail with
// ErrNotConfigured; a nil quotes falls back to the ticker as company name.
func NewService(searcher Searcher, quotes QuoteLookup, log logrus.FieldLogger) *Service {
	if log == nil {
		l := logrus.New()
		l.Out = io.Discard
		log = l
	}
	return &Service{searcher: searcher, quotes: quotes, log: log, now: time.Now}
}

// ClampDays bounds the look-back window to [1, MaxDays]; 0 means DefaultDays.
func ClampDays(days int) int {
	switch {
	case days == 0:
		return DefaultDays
	case days < 1:
		return 1
	case days > MaxDays:
		return MaxDays
	}
	return days
}

// Report collects articles mentioning ticker from the last days days.
// Provider failures come back as *quote.ProviderError.
func (s *Service) Report(ctx context.Context, ticker string, days int) (Report, error) {
	if s.searcher == nil {
		return Report{}, ErrNotConfigured
	}
	days = ClampDays(days)
	base := quote.BaseSymbol(ticker)
	now := s.now()
	entry := s.log.WithFields(logrus.Fields{"symbol": base, "days": days})

	company := s.companyName(ctx, entry, ticker, base)
	q := base
	if company != base {
		q = fmt.Sprintf(`%s OR "%s"`, base, company)
	}

	articles, err := s.searcher.Everything(ctx, newsapi.Query{
		Q:        q,
		From:     now.AddDate(0, 0, -days),
		PageSize: pageSize,
		Language: "en",
	})
	if err != nil {
		entry.WithError(err).Error("error fetching news")
		return Report{}, &quote.ProviderError{Symbol: ticker, Err: fmt.Errorf("news search: %w", err)}
	}

	samples := make([]SampleArticle, 0, min(len(articles), sampleSize))
	for _, a := range articles[:min(len(articles), sampleSize)] {
		samples = append(samples, sample(a))
	}
	return Report{
		Symbol:           base,
		CompanyName:      company,
		ArticlesAnalyzed: len(articles),
		DaysAnalyzed:     days,
		Timestamp:        now.Format(quote.TimestampLayout),
		SampleArticles:   samples,
		Disclaimer:       Disclaimer,
	}, nil
}

// companyName prefers the quote's company name and falls back to base.
func (s *Service) companyName(ctx context.Context, entry logrus.FieldLogger, ticker, base string) string {
	if s.quotes == nil {
		return base
	}
	q, err := s.quotes.Get(ctx, ticker)
	if err != nil || q.CompanyName == "" {
		entry.WithError(err).Debug("company name unavailable, using symbol")
		return base
	}
	return q.CompanyName
}

func sample(a newsapi.Article) SampleArticle {
	out := SampleArticle{Title: a.Title, Source: a.Source}
	if !a.PublishedAt.IsZero() {
		out.PublishedAt = a.PublishedAt.UTC().Format(time.RFC3339)
	}
	return out
}
