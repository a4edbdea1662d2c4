package news

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"quantpulse/internal/provider/newsapi"
	"quantpulse/internal/quote"
)

type fakeSearcher struct {
	articles []newsapi.Article
	err      error
	got      newsapi.Query
}

func (f *fakeSearcher) Everything(_ context.Context, q newsapi.Query) ([]newsapi.Article, error) {
	f.got = q
	return f.articles, f.err
}

type fakeQuotes struct {
	name string
	err  error
}

func (f fakeQuotes) Get(_ context.Context, ticker string) (quote.Formatted, error) {
	return quote.Formatted{Symbol: ticker, CompanyName: f.name}, f.err
}

func TestClampDays(t *testing.T) {
	t.Parallel()

	require.Equal(t, DefaultDays, ClampDays(0))
	require.Equal(t, 1, ClampDays(-3))
	require.Equal(t, 14, ClampDays(14))
	require.Equal(t, MaxDays, ClampDays(365))
}

func TestReport(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)
	published := time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)
	f := &fakeSearcher{articles: []newsapi.Article{{Title: "TCS wins deal", Source: "Mint", PublishedAt: published}}}
	svc := NewService(f, fakeQuotes{name: "Tata Consultancy Services Limited"}, nil)
	svc.now = func() time.Time { return now }

	got, err := svc.Report(testContext(t), "tcs.ns", 3)
	require.NoError(t, err)
	require.Equal(t, `TCS OR "Tata Consultancy Services Limited"`, f.got.Q)
	require.True(t, f.got.From.Equal(now.AddDate(0, 0, -3)))
	require.Equal(t, "TCS", got.Symbol)
	require.Equal(t, "Tata Consultancy Services Limited", got.CompanyName)
	require.Equal(t, 3, got.DaysAnalyzed)
	require.Equal(t, 1, got.ArticlesAnalyzed)
	require.Equal(t, []SampleArticle{{Title: "TCS wins deal", Source: "Mint", PublishedAt: "2024-05-01T08:30:00Z"}}, got.SampleArticles)
	require.Equal(t, Disclaimer, got.Disclaimer)
	require.Equal(t, "2024-05-02T10:00:00.000000", got.Timestamp)
}

func TestReport_CompanyNameFallsBackToSymbol(t *testing.T) {
	t.Parallel()

	for name, quotes := range map[string]QuoteLookup{
		"no lookup":     nil,
		"lookup failed": fakeQuotes{err: &quote.NotFoundError{Symbol: "INFY"}},
		"empty name":    fakeQuotes{},
	} {
		f := &fakeSearcher{}
		got, err := NewService(f, quotes, nil).Report(testContext(t), "INFY", 7)
		require.NoErrorf(t, err, name)
		require.Equalf(t, "INFY", got.CompanyName, name)
		require.Equalf(t, "INFY", f.got.Q, name)
	}
}

func TestReport_SamplesAreCapped(t *testing.T) {
	t.Parallel()

	articles := make([]newsapi.Article, 12)
	for i := range articles {
		articles[i] = newsapi.Article{Title: "headline"}
	}
	got, err := NewService(&fakeSearcher{articles: articles}, nil, nil).Report(testContext(t), "SBIN", 7)
	require.NoError(t, err)
	require.Equal(t, 12, got.ArticlesAnalyzed)
	require.Len(t, got.SampleArticles, sampleSize)
	require.Empty(t, got.SampleArticles[0].PublishedAt)
}

func TestReport_EmptyIsNotNil(t *testing.T) {
	t.Parallel()

	got, err := NewService(&fakeSearcher{}, nil, nil).Report(testContext(t), "INFY", 0)
	require.NoError(t, err)
	require.NotNil(t, got.SampleArticles)
	require.Zero(t, got.ArticlesAnalyzed)
	require.Equal(t, DefaultDays, got.DaysAnalyzed)
}

func TestReport_Errors(t *testing.T) {
	t.Parallel()

	_, err := NewService(nil, nil, nil).Report(testContext(t), "INFY", 7)
	require.ErrorIs(t, err, ErrNotConfigured)

	cause := &newsapi.APIError{Code: "rateLimited", Message: "too many requests"}
	_, err = NewService(&fakeSearcher{err: cause}, nil, nil).Report(testContext(t), "INFY", 7)
	var pe *quote.ProviderError
	require.True(t, errors.As(err, &pe))
	require.ErrorIs(t, err, cause)
}
