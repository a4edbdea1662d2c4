package newsapi

import (
	"context"
	"fmt"
	"io"
	"maps"
	"net/http"
	"strconv"
	"time"

	"github.com/tidwall/gjson"
)

const maxResponseBytes = 4 << 20

// Article is a single news item returned by the /v2/everything endpoint.
type Article struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Source      string    `json:"source"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"publishedAt"`
}

// Query narrows an /v2/everything search.
type Query struct {
	Q        string
	From     time.Time
	PageSize int
	Language string
}

// APIError is returned when NewsAPI answers with status "error".
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("newsapi %s: %s", e.Code, e.Message)
}

// Everything searches all indexed articles matching q, newest first.
func (c *Client) Everything(ctx context.Context, q Query) ([]Article, error) {
	query := maps.Clone(c.query)
	query.Set("q", q.Q)
	query.Set("sortBy", "publishedAt")
	if !q.From.IsZero() {
		query.Set("from", q.From.UTC().Format(time.RFC3339))
	}
	if q.PageSize > 0 {
		query.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	if q.Language != "" {
		query.Set("language", q.Language)
	}

	url := fmt.Sprintf("%s/v2/everything?%s", c.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.header.Clone()

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading news response: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("decoding news response: status %d", res.StatusCode)
	}

	parsed := gjson.ParseBytes(body)
	if parsed.Get("status").String() != "ok" {
		return nil, &APIError{
			Code:    parsed.Get("code").String(),
			Message: parsed.Get("message").String(),
		}
	}

	raw := parsed.Get("articles").Array()
	articles := make([]Article, 0, len(raw))
	for _, a := range raw {
		// {
		//   "source": {"id": null, "name": "Moneycontrol"},
		//   "title": "...",
		//   "description": "...",
		//   "url": "https://...",
		//   "publishedAt": "2024-05-02T09:15:00Z"
		// }
		published, _ := time.Parse(time.RFC3339, a.Get("publishedAt").String())
		articles = append(articles, Article{
			Title:       a.Get("title").String(),
			Description: a.Get("description").String(),
			Source:      a.Get("source.name").String(),
			URL:         a.Get("url").String(),
			PublishedAt: published,
		})
	}
	return articles, nil
}
