package newsapi

import (
	"net/http"
	"net/url"
)

const defaultBaseURL = "https://newsapi.org"

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=newsapi_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a client for the NewsAPI.org REST API.
type Client struct {
	baseURL    string
	httpClient HTTPClient
	header     http.Header
	query      url.Values
}

// ClientOption is a configuration option for the NewsAPI client.
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

// NewClient creates a new NewsAPI client authenticated with key.
func NewClient(key string, options ...ClientOption) *Client {
	var client = &Client{
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
		query:      url.Values{},
	}
	if key != "" {
		// https://newsapi.org/docs/authentication
		client.header.Set("X-Api-Key", key)
	}
	for _, option := range options {
		option(client)
	}
	return client
}
