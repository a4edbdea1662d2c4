package yahoo

import (
	"net/http"
	"net/url"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=yahoo_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a client for the Yahoo Finance quote API.
type Client struct {
	// baseURL is the base URL for the API.
	baseURL string
	// httpClient is the HTTP client.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
	// query contains additional query parameters to be sent with each request.
	query url.Values
}

// ClientOption is a configuration option for the Yahoo Finance client.
type ClientOption func(*Client)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) ClientOption {
	return func(c *Client) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// WithCrumb attaches the session crumb Yahoo requires on the v7 endpoints.
// The crumb is only valid together with the cookie it was issued for, so
// pass that cookie as well.
func WithCrumb(crumb, cookie string) ClientOption {
	return func(c *Client) {
		if crumb != "" {
			c.query.Set("crumb", crumb)
		}
		if cookie != "" {
			c.header.Set("Cookie", cookie)
		}
	}
}

// NewClient creates a new Yahoo Finance client.
func NewClient(options ...ClientOption) *Client {
	var client = &Client{
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
		query:      url.Values{},
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// Name implements provider.QuoteFetcher.
func (c *Client) Name() string { return "YahooFinance" }
